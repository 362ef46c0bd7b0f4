package lower

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"cxxpy/internal/astio"
	"cxxpy/internal/diag"
	"cxxpy/internal/lines"
	"cxxpy/internal/mdcase"
	"cxxpy/internal/testkit"
)

const fixtureUnit = "    "

func TestMarkdownFixtures(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.md"))
	be.Err(t, err, nil)
	be.True(t, len(files) > 0)

	for _, file := range files {
		src, err := os.ReadFile(file)
		be.Err(t, err, nil)
		cases, err := mdcase.Extract(src)
		if err != nil {
			t.Fatalf("%s: %v", file, err)
		}
		for _, tc := range cases {
			t.Run(filepath.Base(file)+"/"+tc.Name, func(t *testing.T) {
				runFixture(t, tc)
			})
		}
	}
}

func runFixture(t *testing.T, tc mdcase.Case) {
	t.Helper()
	decls, err := astio.Decode([]byte(tc.Input), astio.FormatJSON)
	if err != nil {
		t.Fatalf("line %d: decode: %v", tc.Line, err)
	}

	bag := diag.NewBag(0)
	l := New(Options{IndentUnit: fixtureUnit, Reporter: diag.BagReporter{Bag: bag}})
	var out lines.Lines
	for i, d := range decls {
		if i > 0 {
			out.Add("")
		}
		got := l.Decl(d)
		be.Err(t, testkit.CheckLines(got, fixtureUnit), nil)
		out.Append(got)
	}

	if got := out.Render(); got != tc.Expected {
		t.Fatalf("line %d: output mismatch\n--- got\n%s\n--- want\n%s", tc.Line, got, tc.Expected)
	}
	if tc.Diagnostics != nil {
		be.Equal(t, reportedIDs(bag), sortedUnique(tc.Diagnostics))
	}
}

func reportedIDs(bag *diag.Bag) []string {
	ids := []string{}
	for _, d := range bag.Items() {
		ids = append(ids, d.Code.ID())
	}
	return sortedUnique(ids)
}

func sortedUnique(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strings.TrimSpace(id))
	}
	slices.Sort(out)
	return slices.Compact(out)
}
