// Package mdcase extracts lowering fixtures from Markdown documents.
//
// A fixture starts at a heading "Test: <name>" and holds one `json` fence
// with the AST export, one `python` fence with the expected output and an
// optional `diagnostics` fence listing expected diagnostic IDs, one per line.
package mdcase

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fence languages.
const (
	FenceInput       = "json"
	FenceExpected    = "python"
	FenceDiagnostics = "diagnostics"
)

// Case is one fixture.
type Case struct {
	Name        string
	Line        int // line of the heading, 1-based
	Input       string
	Expected    string
	Diagnostics []string // nil when the fence is absent
}

// Extract parses a Markdown document and returns its fixtures in order.
func Extract(markdown []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(markdown))

	var cases []Case
	var cur *Case
	flush := func() error {
		if cur == nil {
			return nil
		}
		if err := validate(cur); err != nil {
			return err
		}
		cases = append(cases, *cur)
		cur = nil
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			title := headingText(n, markdown)
			if !strings.HasPrefix(title, "Test: ") {
				return ast.WalkSkipChildren, nil
			}
			if err := flush(); err != nil {
				return ast.WalkStop, err
			}
			cur = &Case{
				Name: strings.TrimSpace(strings.TrimPrefix(title, "Test: ")),
				Line: lineOf(n, markdown),
			}
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			lang := string(n.Language(markdown))
			line := lineOf(n, markdown)
			if cur == nil {
				if lang != "" {
					return ast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test", line, lang)
				}
				return ast.WalkContinue, nil
			}
			content := fenceContent(n, markdown)
			switch lang {
			case FenceInput:
				if cur.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: second %s fence in test %q", line, lang, cur.Name)
				}
				cur.Input = content
			case FenceExpected:
				if cur.Expected != "" {
					return ast.WalkStop, fmt.Errorf("line %d: second %s fence in test %q", line, lang, cur.Name)
				}
				cur.Expected = strings.TrimRight(content, "\n")
			case FenceDiagnostics:
				cur.Diagnostics = []string{}
				for _, l := range strings.Split(content, "\n") {
					if l = strings.TrimSpace(l); l != "" {
						cur.Diagnostics = append(cur.Diagnostics, l)
					}
				}
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language %q in test %q", line, lang, cur.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

func validate(c *Case) error {
	if c.Name == "" {
		return fmt.Errorf("line %d: test without a name", c.Line)
	}
	if strings.TrimSpace(c.Input) == "" {
		return fmt.Errorf("test %q has no %s fence", c.Name, FenceInput)
	}
	if c.Expected == "" {
		return fmt.Errorf("test %q has no %s fence", c.Name, FenceExpected)
	}
	return nil
}

func headingText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(n *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// lineOf counts newlines before the node's first segment.
func lineOf(n ast.Node, source []byte) int {
	start := -1
	if n.Lines().Len() > 0 {
		start = n.Lines().At(0).Start
	} else if h, ok := n.(*ast.Heading); ok && h.HasChildren() {
		if t, ok := h.FirstChild().(*ast.Text); ok {
			start = t.Segment.Start
		}
	}
	if start < 0 {
		return 1
	}
	return bytes.Count(source[:min(start, len(source))], []byte("\n")) + 1
}
