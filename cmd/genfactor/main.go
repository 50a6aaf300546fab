// Command genfactor is the CLI driver of spec.md §6.3 (gen_factor),
// extended per SPEC_FULL.md §6: YAML defaults, watch mode, a binary
// output format, and a schema-validated value-function weight file. Cobra
// wiring follows opal-lang-opal/runtime/cli/harness.go's shape.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/go-sop/gosop/cmd/genfactor/internal/config"
	"github.com/go-sop/gosop/expr"
	"github.com/go-sop/gosop/factor"
	"github.com/go-sop/gosop/kernel"
	"github.com/go-sop/gosop/sop"
)

// Exit codes, per spec.md §6.3 plus SPEC_FULL.md §6's additions.
const (
	exitOK          = 0
	exitUsageError  = 1
	exitFileError   = 2
	exitParseError  = 3
	exitSchemaError = 4
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		quick, good, bool_, kernelMode bool
		format                         string
		coverOut                       string
		watch                          bool
		configPath                     string
		valueConfigPath                string
		debug                          bool
	)

	root := &cobra.Command{
		Use:           "genfactor [cover-file]",
		Short:         "Factor a sum-of-products cover into an algebraic expression",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.Flags().BoolVarP(&quick, "quick", "q", false, "use quick_factor")
	root.Flags().BoolVarP(&good, "good", "g", false, "use good_factor (default)")
	root.Flags().BoolVarP(&bool_, "bool", "b", false, "use bool_factor")
	root.Flags().BoolVarP(&kernelMode, "kernel", "k", false, "factor via best_kernel, honoring --value-config")
	root.MarkFlagsMutuallyExclusive("quick", "good", "bool", "kernel")
	root.Flags().StringVar(&format, "format", "text", `output format for --cover-out: "text" (fixed-width, spec.md §6.2, re-readable by ParseCover) or "cbor"`)
	root.Flags().StringVar(&coverOut, "cover-out", "", "also dump the input cover, re-serialised, to this path")
	root.Flags().BoolVar(&watch, "watch", false, "re-run on input file change (fsnotify)")
	root.Flags().StringVar(&configPath, "config", ".genfactor.yaml", "YAML defaults file")
	root.Flags().StringVar(&valueConfigPath, "value-config", "", "JSON best-kernel value-function weights")
	root.Flags().BoolVar(&debug, "debug", false, "verbose kernel-enumeration trace")

	code := exitOK
	root.RunE = func(cmd *cobra.Command, posArgs []string) error {
		logger := newLogger(stderr, debug)
		cfg, err := config.Load(configPath)
		if err != nil {
			code = exitUsageError
			return err
		}

		mode := resolveMode(quick, good, bool_, kernelMode, cfg.Mode)
		if !cmd.Flags().Changed("format") && cfg.Format != "" {
			format = cfg.Format
		}
		vcPath := valueConfigPath
		if vcPath == "" {
			vcPath = cfg.ValueConfig
		}

		var vf kernel.ValueFunc
		if vcPath != "" {
			vf, err = config.LoadWeights(vcPath)
			if err != nil {
				var pathErr *fs.PathError
				if errors.As(err, &pathErr) {
					code = exitFileError
				} else {
					code = exitSchemaError
				}
				return err
			}
		}

		path := posArgs[0]
		runOnce := func() error {
			return factorFile(path, mode, format, coverOut, vf, logger, stdout)
		}

		if err := classifyAndRun(runOnce, &code); err != nil {
			return err
		}
		if code != exitOK || !watch {
			return nil
		}
		return watchLoop(path, runOnce, &code, stderr)
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "genfactor:", err)
		if code == exitOK {
			code = exitUsageError
		}
	}
	return code
}

// classifyAndRun runs fn, classifying any returned error into *code per
// SPEC_FULL.md §6's exit-code table (file errors, parse errors, or a
// generic usage error).
func classifyAndRun(fn func() error, code *int) error {
	err := fn()
	if err == nil {
		*code = exitOK
		return nil
	}
	switch {
	case os.IsNotExist(err):
		*code = exitFileError
	case isParseError(err):
		*code = exitParseError
	default:
		*code = exitUsageError
	}
	return err
}

func isParseError(err error) bool {
	var pe sop.ParseErrors
	if asParseErrors(err, &pe) {
		return true
	}
	return false
}

func asParseErrors(err error, target *sop.ParseErrors) bool {
	pe, ok := err.(sop.ParseErrors)
	if ok {
		*target = pe
		return true
	}
	return false
}

func resolveMode(quick, good, boolMode, kernelMode bool, cfgMode string) string {
	switch {
	case quick:
		return "quick"
	case good:
		return "good"
	case boolMode:
		return "bool"
	case kernelMode:
		return "kernel"
	case cfgMode != "":
		return cfgMode
	default:
		return "good"
	}
}

func factorFile(path, mode, format, coverOut string, vf kernel.ValueFunc, logger *slog.Logger, stdout io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cover, err := sop.ParseCover(string(data))
	if err != nil {
		return err
	}

	var e expr.Expr
	switch mode {
	case "quick":
		e, err = factor.QuickFactor(cover)
	case "bool":
		e, err = factor.BoolFactor(cover)
	case "kernel":
		gen := kernel.NewGenerator()
		gen.Logger = logger
		var best sop.Cover
		best, err = gen.BestKernel(context.Background(), cover, vf)
		if err == nil {
			e = best.Expr()
		}
	default:
		e, err = factor.GoodFactor(cover)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, e.String())

	if coverOut != "" {
		return writeCoverOut(cover, coverOut, format)
	}
	return nil
}

// writeCoverOut persists cover to path. The default "text" format is the
// fixed-width format of spec.md §6.2, the only format ParseCover can read
// back, so passing this file as the cover-file argument of a later run
// round-trips per SPEC_FULL.md §6.
func writeCoverOut(cover sop.Cover, path, format string) error {
	switch format {
	case "cbor":
		data, err := cover.MarshalCBOR()
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0o644)
	default:
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return cover.PrintFixed(f)
	}
}

func watchLoop(path string, runOnce func() error, code *int, stderr io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return err
	}
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := classifyAndRun(runOnce, code); err != nil {
				fmt.Fprintln(stderr, "genfactor:", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(stderr, "genfactor: watch:", err)
		}
	}
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
