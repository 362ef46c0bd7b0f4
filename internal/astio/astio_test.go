package astio

import (
	"strings"
	"testing"

	"cxxpy/internal/ast"
	"cxxpy/internal/diag"
)

const sampleJSON = `{
  "kind": "TranslationUnitDecl",
  "items": [
    {"kind": "FunctionDecl", "name": "sum", "file": "a.cpp", "line": 3, "col": 5,
     "params": [{"kind": "ParmVarDecl", "name": "n", "type": "int"}],
     "body": {"kind": "CompoundStmt", "items": [
       {"kind": "DeclStmt", "items": [
         {"kind": "VarDecl", "name": "s", "type": "int", "init": {"kind": "IntegerLiteral", "value": "0"}}
       ]},
       {"kind": "ForStmt",
        "init": {"kind": "DeclStmt", "items": [
          {"kind": "VarDecl", "name": "i", "type": "int", "init": {"kind": "IntegerLiteral", "value": "0"}}
        ]},
        "cond": {"kind": "BinaryOperator", "op": "<", "args": [
          {"kind": "ImplicitCastExpr", "sub": {"kind": "DeclRefExpr", "name": "i"}},
          {"kind": "ImplicitCastExpr", "sub": {"kind": "DeclRefExpr", "name": "n"}}
        ]},
        "inc": {"kind": "UnaryOperator", "op": "++", "flags": ["postfix"], "sub": {"kind": "DeclRefExpr", "name": "i"}},
        "body": {"kind": "CompoundStmt", "items": [
          {"kind": "CompoundAssignOperator", "op": "+=", "args": [
            {"kind": "DeclRefExpr", "name": "s"},
            {"kind": "DeclRefExpr", "name": "i"}
          ]}
        ]}
       },
       {"kind": "ReturnStmt", "sub": {"kind": "DeclRefExpr", "name": "s"}},
       {"kind": "GotoStmt"}
     ]}
    },
    {"kind": "EnumDecl", "name": "Color", "line": 10, "col": 1, "items": [
      {"kind": "EnumConstantDecl", "name": "Red"},
      {"kind": "EnumConstantDecl", "name": "Green", "flags": ["has_value"], "value": "7",
       "init": {"kind": "IntegerLiteral", "value": "7"}}
    ]},
    {"kind": "TypedefDecl", "name": "T", "line": 12, "col": 1, "system": true}
  ]
}`

func TestDecodeJSON(t *testing.T) {
	decls, err := Decode([]byte(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decls) != 3 {
		t.Fatalf("got %d decls, want 3", len(decls))
	}

	fn := decls[0]
	if fn.Kind != ast.DeclFunction || fn.Name != "sum" || fn.Pos.String() != "3:5" || fn.Pos.File != "a.cpp" {
		t.Fatalf("function = %+v", fn)
	}
	data := fn.Data.(ast.FunctionData)
	if len(data.Params) != 1 || data.Params[0] != (ast.Param{Name: "n", Type: "int"}) {
		t.Fatalf("params = %+v", data.Params)
	}
	body := data.Body.Data.(ast.CompoundData).Stmts
	if len(body) != 4 {
		t.Fatalf("body has %d statements", len(body))
	}
	loop := body[1].Data.(ast.ForData)
	inc := loop.Inc.Data.(ast.UnaryData)
	if inc.Op != ast.UnPostInc {
		t.Errorf("inc op = %v", inc.Op)
	}
	if body[1].Kind != ast.StmtFor || loop.Body.Data.(ast.CompoundData).Stmts[0].Kind != ast.StmtExpr {
		t.Error("compound assignment in statement position must become an expression statement")
	}
	if body[3].Kind != ast.StmtUnknown || body[3].ClassName() != "GotoStmt" {
		t.Errorf("unknown stmt = %+v", body[3])
	}

	enum := decls[1].Data.(ast.EnumData)
	if enum.Enumerators[0].HasValue || !enum.Enumerators[1].HasValue || enum.Enumerators[1].Value != 7 {
		t.Errorf("enumerators = %+v", enum.Enumerators)
	}

	if decls[2].Kind != ast.DeclUnknown || decls[2].ClassName() != "TypedefDecl" || !decls[2].Pos.System {
		t.Errorf("unknown decl = %+v", decls[2])
	}
}

func TestDecodeReportsUnmodelledKinds(t *testing.T) {
	doc := `{"kind": "TranslationUnitDecl", "items": [
	  {"kind": "FunctionDecl", "name": "f", "line": 1, "col": 1, "body": {"kind": "CompoundStmt", "items": [
	    {"kind": "GotoStmt", "line": 2, "col": 3},
	    {"kind": "GotoStmt", "line": 4, "col": 3},
	    {"kind": "ReturnStmt", "sub": {"kind": "CXXThrowExpr", "line": 5, "col": 10}}
	  ]}},
	  {"kind": "TypedefDecl", "name": "T", "line": 9, "col": 1, "system": true}
	]}`
	bag := diag.NewBag(0)
	if _, err := DecodeReport([]byte(doc), FormatJSON, diag.BagReporter{Bag: bag}); err != nil {
		t.Fatalf("DecodeReport: %v", err)
	}
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %+v", len(items), items)
	}
	tests := []struct {
		msg  string
		line uint32
	}{
		{"unmodelled node kind GotoStmt (2 occurrences)", 2},
		{"unmodelled node kind CXXThrowExpr (1 occurrences)", 5},
	}
	for i, tt := range tests {
		d := items[i]
		if d.Code != diag.DecUnknownKind || d.Severity != diag.SevInfo || d.Message != tt.msg || d.Primary.Line != tt.line {
			t.Errorf("diagnostic %d = %+v", i, d)
		}
	}

	if _, err := Decode([]byte(doc), FormatJSON); err != nil {
		t.Fatalf("Decode without reporter: %v", err)
	}
}

func TestDecodeSingleDecl(t *testing.T) {
	decls, err := Decode([]byte(`{"kind":"VarDecl","name":"x","type":"int"}`), FormatAuto)
	if err != nil || len(decls) != 1 || decls[0].Kind != ast.DeclVar {
		t.Fatalf("Decode = %+v, %v", decls, err)
	}
}

func TestDecodeRejectsBadCoordinates(t *testing.T) {
	_, err := Decode([]byte(`{"kind":"VarDecl","name":"x","line":-1}`), FormatJSON)
	if err == nil || !strings.Contains(err.Error(), "line -1") {
		t.Fatalf("expected line error, got %v", err)
	}
	_, err = Decode([]byte(`{"kind":"VarDecl","name":"x","line":1,"col":5000000000}`), FormatJSON)
	if err == nil {
		t.Fatal("expected column overflow error")
	}
	if _, err := Decode([]byte(`{`), FormatJSON); err == nil {
		t.Fatal("expected syntax error")
	}
}

func TestRoundTripAllFormats(t *testing.T) {
	decls, err := Decode([]byte(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := dumpAll(decls)
	for _, f := range []Format{FormatJSON, FormatMsgpack, FormatCBOR} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(decls, f)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			back, err := Decode(data, f)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got := dumpAll(back); got != want {
				t.Fatalf("round trip differs:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestCBOREncodingIsCanonical(t *testing.T) {
	decls := []*ast.Decl{ast.NewVar(ast.Pos{Line: 1, Col: 1}, "x", "int", ast.NewIntLit(ast.Pos{}, "1"))}
	a, err := Encode(decls, FormatCBOR)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Encode(decls, FormatCBOR)
	if string(a) != string(b) {
		t.Fatal("CBOR encoding is not deterministic")
	}
}

func TestFormats(t *testing.T) {
	tests := map[string]Format{
		"tree.json":    FormatJSON,
		"tree.msgpack": FormatMsgpack,
		"tree.MP":      FormatMsgpack,
		"tree.cbor":    FormatCBOR,
		"tree":         FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
	if f, err := ParseFormat("mp"); err != nil || f != FormatMsgpack {
		t.Errorf("ParseFormat(mp) = %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("xml must be rejected")
	}
	if FormatCBOR.Extension() != ".cbor" {
		t.Error("wrong extension")
	}
}

func dumpAll(decls []*ast.Decl) string {
	var sb strings.Builder
	for _, d := range decls {
		sb.WriteString(ast.Sprint(d))
	}
	return sb.String()
}
