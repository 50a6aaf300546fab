package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/go-sop/gosop/kernel"
	"github.com/go-sop/gosop/sop"
)

// weightSchema validates a user-supplied best-kernel value-function
// weight file (SPEC_FULL.md §3's generalisation of spec.md §4.5's
// pluggable value function): four non-negative weights, one for each of the
// four factors in kernel.Value's two product terms.
const weightSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["kernel_cubes_weight", "cokernel_literals_weight", "cokernel_cubes_weight", "kernel_literals_weight"],
  "properties": {
    "kernel_cubes_weight":      {"type": "number", "minimum": 0},
    "cokernel_literals_weight": {"type": "number", "minimum": 0},
    "cokernel_cubes_weight":    {"type": "number", "minimum": 0},
    "kernel_literals_weight":   {"type": "number", "minimum": 0}
  },
  "additionalProperties": false
}`

// Weights is the decoded, schema-validated weight file.
type Weights struct {
	KernelCubesWeight      float64 `json:"kernel_cubes_weight"`
	CoKernelLiteralsWeight float64 `json:"cokernel_literals_weight"`
	CoKernelCubesWeight    float64 `json:"cokernel_cubes_weight"`
	KernelLiteralsWeight   float64 `json:"kernel_literals_weight"`
}

// ErrSchemaViolation wraps a jsonschema validation failure so
// cmd/genfactor can map it to exit code 4 (SPEC_FULL.md §6).
type ErrSchemaViolation struct{ Detail string }

func (e *ErrSchemaViolation) Error() string {
	return fmt.Sprintf("config: value-config schema violation: %s", e.Detail)
}

// LoadWeights reads, schema-validates, and decodes the weight file at
// path, returning a kernel.ValueFunc built from it.
func LoadWeights(path string) (kernel.ValueFunc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("weights.json", strings.NewReader(weightSchema)); err != nil {
		return nil, fmt.Errorf("config: compiling weight schema: %w", err)
	}
	schema, err := compiler.Compile("weights.json")
	if err != nil {
		return nil, fmt.Errorf("config: compiling weight schema: %w", err)
	}

	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &ErrSchemaViolation{Detail: err.Error()}
	}

	var w Weights
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}

	return func(k, c sop.Cover) int {
		term1 := w.KernelCubesWeight * float64(k.CubeNum()-1) * w.CoKernelLiteralsWeight * float64(c.LiteralNum())
		term2 := w.CoKernelCubesWeight * float64(c.CubeNum()-1) * w.KernelLiteralsWeight * float64(k.LiteralNum())
		return int(term1 + term2)
	}, nil
}
