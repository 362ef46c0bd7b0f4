package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"cxxpy/internal/ast"
	"cxxpy/internal/diag"
	"cxxpy/internal/diagfmt"
	"cxxpy/internal/version"
)

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		input   string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{" ON ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.input)
		if (err != nil) != tc.wantErr {
			t.Fatalf("readUIMode(%q) error = %v, wantErr %t", tc.input, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("readUIMode(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestUseProgressUIForcedModes(t *testing.T) {
	if !useProgressUI(uiModeOn, false, 1) {
		t.Fatal("on must force the progress view")
	}
	if useProgressUI(uiModeOn, true, 5) {
		t.Fatal("quiet must disable the progress view")
	}
	if useProgressUI(uiModeOff, false, 5) || useProgressUI(uiModeAuto, false, 1) {
		t.Fatal("off and single-file auto runs stay plain")
	}
}

func TestRenderVersionJSON(t *testing.T) {
	info := version.Info{Version: "1.2.3", GitCommit: "abc123"}
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, info, versionOptions{format: "json", showHash: true, showDate: true}); err != nil {
		t.Fatalf("renderVersionJSON: %v", err)
	}
	var got versionPayload
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode payload: %v\n%s", err, buf.String())
	}
	if got.Tool != "cxxpy" || got.Version != "1.2.3" || got.Tagline != versionTagline {
		t.Fatalf("unexpected payload %+v", got)
	}
	if got.GitCommit != "abc123" || got.BuildDate != "unknown" || got.GitMessage != "" {
		t.Fatalf("unexpected metadata %+v", got)
	}
}

func sampleBag() *diag.Bag {
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	pos := ast.Pos{File: "a.json", Line: 3, Col: 1}
	diag.ReportWarning(rep, diag.LowUnknownStmt, pos, "cannot process statement GotoStmt")
	diag.ReportInfo(rep, diag.LowLoopFallback, pos, "loop does not match the counting pattern")
	diag.ReportWarning(rep, diag.LowUnknownStmt, pos, "cannot process statement GotoStmt")
	return bag
}

func TestDiagWriterQuietKeepsWarnings(t *testing.T) {
	var buf bytes.Buffer
	w := diagWriter{format: "json", quiet: true, json: diagfmt.JSONOpts{PathMode: diagfmt.PathModeAbsolute}}
	if err := w.write(&buf, sampleBag()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("want one deduplicated warning, got %+v", out)
	}
	if out.Diagnostics[0].Code != "LOW2002" {
		t.Fatalf("code = %q", out.Diagnostics[0].Code)
	}
}

func TestDiagWriterPrettyAndNone(t *testing.T) {
	var buf bytes.Buffer
	w := diagWriter{format: "pretty", pretty: diagfmt.PrettyOpts{PathMode: diagfmt.PathModeBasename}}
	if err := w.write(&buf, sampleBag()); err != nil {
		t.Fatalf("write: %v", err)
	}
	text := buf.String()
	if !strings.Contains(text, "LOW2002") || !strings.Contains(text, "LOW2010") {
		t.Fatalf("pretty output misses codes:\n%s", text)
	}

	buf.Reset()
	none := diagWriter{format: "none"}
	if err := none.write(&buf, sampleBag()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("format none wrote %q", buf.String())
	}
}
