package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sop/gosop/sop"
)

func writeTempCover(t *testing.T, text string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cover.txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunGoodFactorDefault(t *testing.T) {
	path := writeTempCover(t, "1010\n1001\n0110\n0101\n")
	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), path}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() exit code = %d, want %d; stderr=%s", code, exitOK, stderr.String())
	}
	if stdout.Len() == 0 {
		t.Errorf("run() produced no output")
	}
}

func TestRunQuickFlag(t *testing.T) {
	path := writeTempCover(t, "10\n01\n")
	var stdout, stderr bytes.Buffer
	code := run([]string{"-q", "--config", filepath.Join(t.TempDir(), "missing.yaml"), path}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() exit code = %d, want %d; stderr=%s", code, exitOK, stderr.String())
	}
}

func TestRunKernelFlag(t *testing.T) {
	path := writeTempCover(t, "10\n01\n")
	var stdout, stderr bytes.Buffer
	code := run([]string{"-k", "--config", filepath.Join(t.TempDir(), "missing.yaml"), path}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() exit code = %d, want %d; stderr=%s", code, exitOK, stderr.String())
	}
}

func TestRunMutuallyExclusiveFlags(t *testing.T) {
	path := writeTempCover(t, "10\n01\n")
	var stdout, stderr bytes.Buffer
	code := run([]string{"-q", "-g", "--config", filepath.Join(t.TempDir(), "missing.yaml"), path}, &stdout, &stderr)
	if code == exitOK {
		t.Errorf("run() with both -q and -g should fail, got exit code %d", code)
	}
}

func TestRunMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), filepath.Join(t.TempDir(), "does-not-exist.txt")}, &stdout, &stderr)
	if code != exitFileError {
		t.Errorf("run() exit code = %d, want %d (file error)", code, exitFileError)
	}
}

func TestRunParseError(t *testing.T) {
	path := writeTempCover(t, "10\n0x\n")
	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), path}, &stdout, &stderr)
	if code != exitParseError {
		t.Errorf("run() exit code = %d, want %d (parse error)", code, exitParseError)
	}
}

// TestRunCoverOutText checks that the default text --cover-out format
// round-trips through sop.ParseCover, per SPEC_FULL.md §6.
func TestRunCoverOutText(t *testing.T) {
	path := writeTempCover(t, "10\n01\n")
	outPath := filepath.Join(t.TempDir(), "out.txt")
	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "--cover-out", outPath, path}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() exit code = %d, want %d; stderr=%s", code, exitOK, stderr.String())
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	back, err := sop.ParseCover(string(data))
	if err != nil {
		t.Fatalf("cover-out text %q did not round-trip through ParseCover: %v", string(data), err)
	}
	if back.VariableNum() != 2 || back.CubeNum() != 2 {
		t.Errorf("cover-out round trip = V=%d N=%d, want V=2 N=2", back.VariableNum(), back.CubeNum())
	}
}
