package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cxxpy/internal/astio"
	"cxxpy/internal/diag"
	"cxxpy/internal/diagfmt"
	"cxxpy/internal/driver"
	"cxxpy/internal/observ"
	"cxxpy/internal/pipeline"
	"cxxpy/internal/trace"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [flags] <file|directory>...",
	Short: "Lower exported syntax trees into Python",
	Long: `Lower reads AST exports and prints the generated Python. A single input
is printed to stdout unless --out is given; several inputs need --out`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLower,
}

func init() {
	lowerCmd.Flags().StringP("out", "o", "", "output directory for generated scripts")
	lowerCmd.Flags().String("format", "auto", "input format (auto|json|msgpack|cbor)")
	lowerCmd.Flags().Bool("headers", true, "emit \"# Declared <Kind> at L:C\" before each declaration")
	lowerCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	lowerCmd.Flags().String("config", "", "path to cxxpy.toml (default: search upwards from the input)")
	lowerCmd.Flags().Bool("no-cache", false, "bypass the disk cache")
	lowerCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	lowerCmd.Flags().String("diagnostics", "pretty", "diagnostics format on stderr (pretty|json|none)")
	lowerCmd.Flags().String("path-mode", "auto", "paths in diagnostics (auto|absolute|relative|basename)")
}

func runLower(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := astio.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}
	diagFormat, err := cmd.Flags().GetString("diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	switch diagFormat {
	case "pretty", "json", "none":
	default:
		return fmt.Errorf("unknown diagnostics format: %s", diagFormat)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return fmt.Errorf("unknown path mode: %s", pathModeStr)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet := quietFlag(cmd)

	files, err := pipeline.ListInputs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no input files found")
	}
	if outDir == "" && len(files) > 1 {
		return fmt.Errorf("%d inputs need --out", len(files))
	}

	cfg, err := loadConfig(cmd, filepath.Dir(files[0]))
	if err != nil {
		return err
	}
	lopts, err := cfg.LowerOptions()
	if err != nil {
		return err
	}
	headers := cfg.Output.Headers
	if cmd.Flags().Changed("headers") {
		if headers, err = cmd.Flags().GetBool("headers"); err != nil {
			return fmt.Errorf("failed to get headers flag: %w", err)
		}
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}
	opts := driver.Options{
		Lower:          lopts,
		Format:         format,
		Headers:        headers,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Fingerprint:    cfg.Fingerprint(),
		Timer:          timer,
	}
	if !noCache {
		cache, err := driver.OpenDiskCache("cxxpy")
		if err != nil {
			if !quiet {
				fmt.Fprintf(os.Stderr, "warning: disk cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = cache
		}
	}

	span := trace.Begin(trace.FromContext(cmd.Context()), trace.ScopeCommand, "lower", 0).
		WithExtra("files", fmt.Sprint(len(files)))
	defer span.End("")
	ctx := trace.WithSpanContext(cmd.Context(), trace.SpanContext{SpanID: span.ID()})

	diagOut := diagWriter{
		format: diagFormat,
		quiet:  quiet,
		pretty: diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), PathMode: pathMode},
		json:   diagfmt.JSONOpts{PathMode: pathMode, Max: maxDiagnostics},
	}

	if outDir == "" {
		res, err := driver.LowerFile(ctx, files[0], opts)
		if err != nil {
			return err
		}
		if _, err := res.WriteTo(cmd.OutOrStdout()); err != nil {
			return err
		}
		if err := diagOut.write(os.Stderr, res.Bag); err != nil {
			return err
		}
		printTimings(os.Stderr, timer, nil)
		return nil
	}

	req := &pipeline.Request{Files: files, OutDir: outDir, Driver: opts, Jobs: jobs}
	var results []pipeline.FileResult
	withUI := useProgressUI(mode, quiet, len(files))
	if withUI {
		results, err = runLowerWithUI(ctx, "lowering", req)
	} else {
		results, err = pipeline.LowerFiles(ctx, req)
	}
	if err != nil {
		return err
	}

	merged := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", r.Err)
			continue
		}
		merged.Merge(r.Result.Bag)
		if !quiet && !withUI {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", r.OutPath)
		}
	}
	if err := diagOut.write(os.Stderr, merged); err != nil {
		return err
	}
	if showTimings {
		printTimings(os.Stderr, timer, results)
	}
	if failed := pipeline.Failed(results); len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed", len(failed), len(results))
	}
	return nil
}

// diagWriter prints a bag in the format chosen by --diagnostics.
type diagWriter struct {
	format string
	quiet  bool
	pretty diagfmt.PrettyOpts
	json   diagfmt.JSONOpts
}

func (d diagWriter) write(w io.Writer, bag *diag.Bag) error {
	if bag == nil || d.format == "none" {
		return nil
	}
	if d.quiet {
		bag.Filter(diag.SevWarning)
	}
	bag.Sort()
	bag.Dedup()
	if bag.Len() == 0 {
		return nil
	}
	if d.format == "json" {
		return diagfmt.JSON(w, bag, d.json)
	}
	return diagfmt.Pretty(w, bag, d.pretty)
}
