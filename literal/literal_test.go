package literal

import "testing"

func TestPositiveNegative(t *testing.T) {
	tests := []struct {
		name string
		lit  Literal
		want string
	}{
		{"positive", Positive(0), "v0"},
		{"negative", Negative(3), "v3'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lit.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNegate(t *testing.T) {
	l := Positive(2)
	n := l.Negate()
	if !n.IsNegative() || n.Var != l.Var {
		t.Errorf("Negate() = %+v, want negative literal on var 2", n)
	}
	if !n.Negate().IsPositive() {
		t.Errorf("double Negate() did not return to positive")
	}
}
