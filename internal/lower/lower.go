// Package lower turns resolved source trees into lines of Python.
//
// The engine is a set of pure functions over the ast package: Decl and Stmt
// return line sequences, Expr returns inline text with a precedence tier.
// Nothing it meets can make it fail. Unsupported constructs come back as
// recognisable placeholder text, are reported through diag.Reporter and, at
// debug trace level, are dumped as node-scope trace points.
package lower

import (
	"fmt"

	"cxxpy/internal/ast"
	"cxxpy/internal/diag"
	"cxxpy/internal/lines"
	"cxxpy/internal/naming"
	"cxxpy/internal/trace"
)

// Placeholder markers. Tests and users grep for these.
const (
	NullExpr         = "<null expression>"
	UnknownVar       = "<unknown variable>"
	UnknownExpr      = "<unknown expression>"
	UnknownCall      = "<unknown call>"
	UnknownUnary     = "<unknown unary operator>"
	UnknownBinary    = "<unknown binary operator>"
	MultilineLambda  = "<multiline lambda>"
	EmptyBlock       = "pass  # empty block"
	MissingBody      = "pass  # missing body"
	CannotStmt       = "# cannot process statement: "
	CannotDecl       = "# cannot process declaration: "
	ForwardDecl      = "# forward declaration: "
	SkippedMember    = "# skipped member: "
	SkippedClass     = "# declaration skipped, missing bodies: "
	DefaultCtor      = "# default constructor ignored"
	ExternalDecl     = "# external declaration: "
	DeclaredNoInit   = "# declared without initializer: "
	NoBodyDestructor = "# destructor without body ignored: "

	// EmptyExprClass names an expression statement with no expression.
	EmptyExprClass = "EmptyExpr"
)

// Options configures a Lowerer. Zero values select defaults.
type Options struct {
	IndentUnit string          // one nesting level, "\t" when empty
	Renamer    *naming.Renamer // naming.Default() when nil
	Reporter   diag.Reporter   // placeholders are reported here
	Tracer     trace.Tracer    // fallback dumps go here at debug level
	// StrictMulParens wraps compound operands of *, / and % too.
	StrictMulParens bool
}

// Lowerer holds the immutable lowering configuration. Every method is a
// pure function of its argument, so one Lowerer may be shared by goroutines
// as long as its Reporter is safe for that; see WithReporter.
type Lowerer struct {
	unit      string
	names     *naming.Renamer
	rep       diag.Reporter
	tr        trace.Tracer
	span      uint64
	strictMul bool
}

// New builds a Lowerer from opts.
func New(opts Options) *Lowerer {
	l := &Lowerer{
		unit:      opts.IndentUnit,
		names:     opts.Renamer,
		rep:       opts.Reporter,
		tr:        opts.Tracer,
		strictMul: opts.StrictMulParens,
	}
	if l.unit == "" {
		l.unit = lines.DefaultUnit
	}
	if l.names == nil {
		l.names = naming.Default()
	}
	if l.rep == nil {
		l.rep = diag.NopReporter{}
	}
	if l.tr == nil {
		l.tr = trace.Nop
	}
	return l
}

// WithReporter returns a copy that reports into r.
func (l *Lowerer) WithReporter(r diag.Reporter) *Lowerer {
	cp := *l
	if r == nil {
		r = diag.NopReporter{}
	}
	cp.rep = r
	return &cp
}

// WithSpan returns a copy whose trace points are parented to span.
func (l *Lowerer) WithSpan(span uint64) *Lowerer {
	cp := *l
	cp.span = span
	return &cp
}

// IndentUnit reports the configured indentation unit.
func (l *Lowerer) IndentUnit() string { return l.unit }

func (l *Lowerer) indent(src lines.Lines) lines.Lines {
	return lines.Indent(src, l.unit)
}

func (l *Lowerer) warn(code diag.Code, pos ast.Pos, format string, args ...any) {
	diag.ReportWarning(l.rep, code, pos, fmt.Sprintf(format, args...))
}

func (l *Lowerer) info(code diag.Code, pos ast.Pos, format string, args ...any) {
	diag.ReportInfo(l.rep, code, pos, fmt.Sprintf(format, args...))
}

// dump sends a debug view of an untranslated node to the tracer.
func (l *Lowerer) dump(class string, node any) {
	if !l.tr.Enabled() || !l.tr.Level().ShouldEmit(trace.ScopeDecl) {
		return
	}
	trace.Point(l.tr, trace.ScopeDecl, "fallback:"+class, ast.Sprint(node), l.span)
}
