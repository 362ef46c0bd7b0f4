package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"cxxpy/internal/diag"
	"cxxpy/internal/driver"
)

// Request configures a batch run.
type Request struct {
	Files    []string
	OutDir   string // scripts are not written when empty
	Driver   driver.Options
	Jobs     int // files lowered at once, <=0 means GOMAXPROCS
	Progress ProgressSink
}

// FileResult is the outcome for one input.
type FileResult struct {
	Path    string
	OutPath string
	Result  *driver.Result
	Err     error
	Elapsed time.Duration
}

// Failed returns the results whose file could not be lowered.
func Failed(results []FileResult) []FileResult {
	var out []FileResult
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// LowerFiles lowers every file of req. A failing file does not stop the
// others; its error is stored in its FileResult. The returned error is set
// only when the batch as a whole cannot run.
func LowerFiles(ctx context.Context, req *Request) ([]FileResult, error) {
	if req == nil {
		return nil, errors.New("missing lower request")
	}
	if req.OutDir != "" {
		if err := checkCollisions(req.OutDir, req.Files); err != nil {
			return nil, err
		}
		if err := os.MkdirAll(req.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	results := make([]FileResult, len(req.Files))
	if len(req.Files) == 0 {
		return results, nil
	}
	emitQueued(req.Progress, req.Files)

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Files)))
	for i, path := range req.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = lowerOne(gctx, req, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func lowerOne(ctx context.Context, req *Request, path string) FileResult {
	start := time.Now()
	fr := FileResult{Path: path}
	stage := StageDecode

	opts := req.Driver
	opts.OnPhase = func(phase string) {
		switch phase {
		case "decode":
			stage = StageDecode
		case "lower":
			stage = StageLower
		default:
			return
		}
		emit(req.Progress, Event{File: path, Stage: stage, Status: StatusWorking})
	}

	fail := func(err error) FileResult {
		fr.Err = err
		fr.Elapsed = time.Since(start)
		emit(req.Progress, Event{File: path, Stage: stage, Status: StatusError, Err: err, Elapsed: fr.Elapsed})
		return fr
	}

	res, err := driver.LowerFile(ctx, path, opts)
	if err != nil {
		return fail(err)
	}
	fr.Result = res

	if req.OutDir != "" {
		stage = StageWrite
		emit(req.Progress, Event{File: path, Stage: stage, Status: StatusWorking})
		fr.OutPath = OutputPath(req.OutDir, path)
		if err := writeAtomic(fr.OutPath, res); err != nil {
			return fail(fmt.Errorf("failed to write %s: %w", fr.OutPath, err))
		}
	}
	fr.Elapsed = time.Since(start)
	emit(req.Progress, Event{
		File:     path,
		Stage:    stage,
		Status:   StatusDone,
		Elapsed:  fr.Elapsed,
		Units:    len(res.Units),
		Warnings: countWarnings(res.Bag),
		Cached:   res.Cached,
	})
	return fr
}

func countWarnings(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevWarning {
			n++
		}
	}
	return n
}

// writeAtomic writes src to a temp file next to path and renames it into
// place.
func writeAtomic(path string, src io.WriterTo) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".cxxpy-*")
	if err != nil {
		return err
	}
	if _, err := src.WriteTo(f); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), path)
}
