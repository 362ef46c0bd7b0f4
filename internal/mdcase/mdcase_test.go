package mdcase

import (
	"testing"

	"github.com/nalgeon/be"
)

const doc = "# Fixtures\n\nSome prose.\n\n" +
	"## Test: variable\n\n" +
	"```json\n{\"kind\": \"VarDecl\", \"name\": \"x\"}\n```\n\n" +
	"```python\nx = None\n```\n\n" +
	"```diagnostics\nLOW2015\n```\n\n" +
	"## Test: nested lines\n\n" +
	"```json\n{}\n```\n\n" +
	"```python\ndef f():\n    return 1\n```\n"

func TestExtract(t *testing.T) {
	cases, err := Extract([]byte(doc))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	be.Equal(t, cases[0].Name, "variable")
	be.Equal(t, cases[0].Line, 5)
	be.Equal(t, cases[0].Input, "{\"kind\": \"VarDecl\", \"name\": \"x\"}\n")
	be.Equal(t, cases[0].Expected, "x = None")
	be.Equal(t, cases[0].Diagnostics, []string{"LOW2015"})

	be.Equal(t, cases[1].Name, "nested lines")
	be.Equal(t, cases[1].Expected, "def f():\n    return 1")
	be.True(t, cases[1].Diagnostics == nil)
}

func TestExtractErrors(t *testing.T) {
	tests := map[string]string{
		"missing expected": "## Test: a\n\n```json\n{}\n```\n",
		"missing input":    "## Test: a\n\n```python\npass\n```\n",
		"unknown fence":    "## Test: a\n\n```json\n{}\n```\n\n```go\nx\n```\n",
		"outside test":     "```json\n{}\n```\n",
		"two inputs":       "## Test: a\n\n```json\n{}\n```\n\n```json\n{}\n```\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Extract([]byte(src))
			be.True(t, err != nil)
		})
	}
}

func TestUnlabelledFencesOutsideTestsAreProse(t *testing.T) {
	cases, err := Extract([]byte("```\nanything\n```\n"))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 0)
}
