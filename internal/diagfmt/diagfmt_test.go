package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"dac/internal/diag"
	"dac/internal/source"
)

func testBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("greeter.toml", []byte("name = \"Greeter\"\nother = 1\n"))

	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.DistModuleNotLoaded,
		Message:  "distributed actor 'Greeter' requires the 'Distributed' module",
		Primary:  source.Span{File: id, Start: 8, End: 15},
		Notes: []diag.Note{{
			Span: source.Span{File: id, Start: 8, End: 15},
			Msg:  "add 'import Distributed'",
		}},
	})
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.DistInfo,
		Message:  "check completed",
		Primary:  source.Span{File: id, Start: 17, End: 22},
	})
	return bag, fs
}

func TestPrettyHeadingAndUnderline(t *testing.T) {
	bag, fs := testBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, Summary: true})
	out := buf.String()

	if !strings.Contains(out, "greeter.toml:1:9: ERROR DIST3001:") {
		t.Fatalf("missing heading:\n%s", out)
	}
	if !strings.Contains(out, `name = "Greeter"`) {
		t.Fatalf("missing source line:\n%s", out)
	}
	// Span covers "Greeter" (7 cells) starting at column 9.
	if !strings.Contains(out, "          ^~~~~~") {
		t.Fatalf("missing underline:\n%s", out)
	}
	if !strings.Contains(out, "NOTE: add 'import Distributed'") {
		t.Fatalf("missing note:\n%s", out)
	}
	if !strings.Contains(out, "1 error, 1 warning") {
		t.Fatalf("missing summary:\n%s", out)
	}
}

func TestPrettyWithoutNotes(t *testing.T) {
	bag, fs := testBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	out := buf.String()
	if strings.Contains(out, "NOTE") {
		t.Fatalf("notes must be suppressed:\n%s", out)
	}
	if strings.Contains(out, "error,") {
		t.Fatalf("summary must be suppressed:\n%s", out)
	}
}

func TestPrettyPathModeBasename(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("fixtures/deep/app.toml", []byte("x = 1\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.DistUserDefinedSpecialProperty,
		Message:  "property 'id' is reserved",
		Primary:  source.Span{File: id, Start: 0, End: 1},
	})
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if !strings.HasPrefix(buf.String(), "app.toml:1:1:") {
		t.Fatalf("basename mode output:\n%s", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := testBag(t)
	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true})
	if err != nil {
		t.Fatalf("json: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count: %+v", out)
	}
	first := out.Diagnostics[0]
	if first.Code != "DIST3001" || first.Severity != "ERROR" {
		t.Fatalf("first diagnostic: %+v", first)
	}
	if first.Location.StartLine != 1 || first.Location.StartCol != 9 {
		t.Fatalf("location: %+v", first.Location)
	}
	if len(first.Notes) != 1 || first.Notes[0].Message != "add 'import Distributed'" {
		t.Fatalf("notes: %+v", first.Notes)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	bag, fs := testBag(t)
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("truncation failed: %+v", out)
	}
	if bag.Len() != 2 {
		t.Fatal("truncation must not mutate the bag")
	}
}
