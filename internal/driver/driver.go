// Package driver lowers whole input files: it reads an AST export, decodes
// it, lowers every top-level declaration and assembles the output.
package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"cxxpy/internal/ast"
	"cxxpy/internal/astio"
	"cxxpy/internal/diag"
	"cxxpy/internal/lines"
	"cxxpy/internal/lower"
	"cxxpy/internal/observ"
	"cxxpy/internal/trace"
)

// Options configures one driver run.
type Options struct {
	Lower          lower.Options // Reporter and Tracer are set per unit
	Format         astio.Format  // auto picks by extension
	Headers        bool          // emit "# Declared <Kind> at L:C"
	Jobs           int           // <=0 means GOMAXPROCS
	MaxDiagnostics int
	Cache          *DiskCache    // nil disables caching
	Fingerprint    string        // config fingerprint, part of the cache key
	Timer          *observ.Timer // optional
	// OnPhase is called when a file enters a phase: "read", "decode",
	// "lower". May be nil.
	OnPhase func(phase string)
}

func (o Options) phase(name string) {
	if o.OnPhase != nil {
		o.OnPhase(name)
	}
}

// Unit is the output of one top-level declaration.
type Unit struct {
	Kind  string
	Pos   ast.Pos
	Lines lines.Lines
}

// Header is the comment printed before the unit.
func (u Unit) Header() string {
	return fmt.Sprintf("# Declared %s at %s", u.Kind, u.Pos)
}

// Result is the lowered file.
type Result struct {
	Path    string
	Units   []Unit
	Bag     *diag.Bag
	Headers bool
	Cached  bool
}

// Lines assembles the output: optional header, unit lines and one blank
// separator line per unit.
func (r *Result) Lines() lines.Lines {
	if r == nil {
		return nil
	}
	var out lines.Lines
	for _, u := range r.Units {
		if r.Headers {
			out.Add(u.Header())
		}
		out.Append(u.Lines)
		out.Add("")
	}
	return out
}

// WriteTo prints the assembled output, every line newline-terminated. Both
// stdout and output files are written through it.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	return r.Lines().WriteTo(w)
}

// Render returns exactly what WriteTo prints.
func (r *Result) Render() string {
	var sb strings.Builder
	_, _ = r.WriteTo(&sb) //nolint:errcheck // strings.Builder never fails
	return sb.String()
}

// LowerFile reads, decodes and lowers one file.
func LowerFile(ctx context.Context, path string, opts Options) (*Result, error) {
	tracer := trace.FromContext(ctx)
	fileSpan := trace.Begin(tracer, trace.ScopeFile, "file", trace.CurrentSpan(ctx).SpanID).
		WithExtra("path", path)
	defer fileSpan.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: fileSpan.ID()})

	opts.phase("read")
	var data []byte
	if err := opts.Timer.Measure("read "+path, func() error {
		var err error
		data, err = os.ReadFile(path)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	format := opts.Format
	if format == "" || format == astio.FormatAuto {
		format = astio.FormatFromPath(path)
	}

	var key Digest
	if opts.Cache != nil {
		key = CacheKey(data, format, opts.Fingerprint, opts.Headers, opts.MaxDiagnostics)
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			if res := payloadToResult(path, &payload, opts); res != nil {
				fileSpan.WithExtra("cache", "hit")
				return res, nil
			}
		}
	}

	opts.phase("decode")
	var decls []*ast.Decl
	decodeBag := diag.NewBag(opts.MaxDiagnostics)
	decodeSpan := trace.Begin(tracer, trace.ScopeStage, "decode", fileSpan.ID())
	err := opts.Timer.Measure("decode "+path, func() error {
		var err error
		decls, err = astio.DecodeReport(data, format, diag.BagReporter{Bag: decodeBag})
		return err
	})
	decodeSpan.WithExtra("decls", strconv.Itoa(len(decls))).End("")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	opts.phase("lower")
	var res *Result
	err = opts.Timer.Measure("lower "+path, func() error {
		var err error
		res, err = LowerDecls(ctx, decls, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	res.Path = path
	decodeBag.Merge(res.Bag)
	res.Bag = decodeBag

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, resultToPayload(res)); err != nil {
			diag.ReportInfo(diag.BagReporter{Bag: res.Bag}, diag.DrvInfo, ast.Pos{File: path},
				"disk cache write failed: "+err.Error())
		}
	}
	return res, nil
}

// LowerDecls lowers top-level declarations in parallel. Declarations from
// system headers or without a valid position are skipped. Output order
// equals input order.
func LowerDecls(ctx context.Context, decls []*ast.Decl, opts Options) (*Result, error) {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID
	span := trace.Begin(tracer, trace.ScopeStage, "lower", parent)
	defer span.End("")

	res := &Result{Bag: diag.NewBag(opts.MaxDiagnostics), Headers: opts.Headers}
	rep := diag.BagReporter{Bag: res.Bag}

	kept := make([]*ast.Decl, 0, len(decls))
	system := 0
	var systemFile string
	for _, d := range decls {
		switch {
		case d == nil:
			continue
		case d.Pos.System:
			system++
			if systemFile == "" {
				systemFile = d.Pos.File
			}
		case !d.Pos.IsValid():
			diag.ReportInfo(rep, diag.DrvNoPosition, d.Pos,
				fmt.Sprintf("%s %q has no source position, skipped", d.ClassName(), d.Name))
		default:
			kept = append(kept, d)
		}
	}
	if system > 0 {
		diag.ReportInfo(rep, diag.DrvSkippedSystem, ast.Pos{File: systemFile},
			fmt.Sprintf("skipped %d declarations from system headers", system))
	}
	span.WithExtra("units", strconv.Itoa(len(kept)))
	if len(kept) == 0 {
		return res, nil
	}

	lopts := opts.Lower
	lopts.Tracer = tracer
	base := lower.New(lopts)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	units := make([]Unit, len(kept))
	bags := make([]*diag.Bag, len(kept))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(kept)))
	for i, d := range kept {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			bag := diag.NewBag(opts.MaxDiagnostics)
			declSpan := trace.Begin(tracer, trace.ScopeDecl, "decl "+d.ClassName(), span.ID()).
				WithExtra("name", d.Name)
			l := base.WithReporter(diag.BagReporter{Bag: bag}).WithSpan(declSpan.ID())
			units[i] = Unit{Kind: d.ClassName(), Pos: d.Pos, Lines: l.Decl(d)}
			bags[i] = bag
			declSpan.End("")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Units = units
	for _, b := range bags {
		res.Bag.Merge(b)
	}
	return res, nil
}
