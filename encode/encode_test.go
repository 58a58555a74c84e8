package encode_test

import (
	"strings"
	"testing"

	"github.com/signadot/go-tap/encode"
	"github.com/signadot/go-tap/ir"
	"github.com/signadot/go-tap/parse"
	"github.com/signadot/go-tap/token"
)

func TestEncodeOrder(t *testing.T) {
	d := &ir.Document{
		Version: 13,
		Plan:    &ir.Plan{First: 1, Last: 2},
		Cases: []*ir.TestCase{
			{Num: 1, OK: true, Description: "alpha", Comments: []string{"note"}},
			{
				Num: 2, Description: "beta",
				Directive: token.Todo, Reason: "later",
				DiagRaw: []string{"got: 0", "want: 1"},
			},
		},
		Bailout:  &ir.Bailout{Reason: "enough"},
		Comments: []ir.Comment{{Text: "loose end"}},
	}
	want := `TAP version 13
1..2
ok 1 - alpha
# note
not ok 2 - beta # TODO later
  ---
  got: 0
  want: 1
  ...
Bail out! enough

# loose end
`
	got, err := encode.String(d)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got != want {
		t.Errorf("encoded:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeDefaultVersionElided(t *testing.T) {
	d := &ir.Document{
		Version: ir.DefaultVersion,
		Plan:    &ir.Plan{First: 1, Last: 1},
		Cases:   []*ir.TestCase{{Num: 1, OK: true}},
	}
	got := encode.MustString(d)
	if strings.Contains(got, "TAP version") {
		t.Errorf("version line emitted for default version:\n%s", got)
	}
}

func TestEncodeSkipAllPlan(t *testing.T) {
	d := &ir.Document{
		Version: ir.DefaultVersion,
		Plan:    &ir.Plan{First: 1, Last: 0, SkipReason: "no tests to run"},
	}
	if got := encode.MustString(d); got != "1..0 # SKIP no tests to run\n" {
		t.Errorf("got %q", got)
	}
	bare := &ir.Document{
		Version: ir.DefaultVersion,
		Plan:    &ir.Plan{First: 1, Last: 0, Skip: true},
	}
	if got := encode.MustString(bare); got != "1..0 # SKIP\n" {
		t.Errorf("bare skip got %q", got)
	}
}

func TestEncodeLeadingDashDescription(t *testing.T) {
	d := &ir.Document{
		Version: ir.DefaultVersion,
		Plan:    &ir.Plan{First: 1, Last: 1},
		Cases: []*ir.TestCase{
			{Num: 1, OK: true, Description: "- foo"},
		},
	}
	out := encode.MustString(d)
	if want := "1..1\nok 1 - - foo\n"; out != want {
		t.Fatalf("encoded %q, want %q", out, want)
	}
	redoc, err := parse.ParseString(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if got := redoc.Cases[0].Description; got != "- foo" {
		t.Errorf("description came back as %q", got)
	}
	if !ir.Equal(d, redoc) {
		t.Errorf("round trip changed the document")
	}
}

func TestEncodeEscapesDescription(t *testing.T) {
	d := &ir.Document{
		Version: ir.DefaultVersion,
		Cases: []*ir.TestCase{
			{Num: 1, OK: true, Description: "tricky # description"},
		},
	}
	out := encode.MustString(d)
	redoc, err := parse.ParseString(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if got := redoc.Cases[0].Description; got != "tricky # description" {
		t.Errorf("description came back as %q", got)
	}
	if redoc.Cases[0].Directive != token.NoDirective {
		t.Errorf("hash in description reparsed as a directive")
	}
}

func TestEncodeDiagYAML(t *testing.T) {
	d := &ir.Document{
		Version: 13,
		Cases: []*ir.TestCase{{
			Num: 1, Description: "x",
			Diag:    map[string]any{"message": "boom"},
			DiagRaw: []string{"# original text"},
		}},
	}
	// default replays the raw block
	if out := encode.MustString(d); !strings.Contains(out, "# original text") {
		t.Errorf("raw block not replayed:\n%s", out)
	}
	// EncodeDiagYAML re-marshals the decoded form
	out := encode.MustString(d, encode.EncodeDiagYAML(true))
	if !strings.Contains(out, "message: boom") {
		t.Errorf("decoded block not marshaled:\n%s", out)
	}
}

func TestEncodeColorsPaintLines(t *testing.T) {
	d := &ir.Document{
		Version: ir.DefaultVersion,
		Plan:    &ir.Plan{First: 1, Last: 2},
		Cases: []*ir.TestCase{
			{Num: 1, OK: true},
			{Num: 2},
		},
	}
	colors := encode.NewColors()
	painted := map[encode.ColorAttr]int{}
	for a, f := range colors.Map {
		a, f := a, f
		colors.Map[a] = func(format string, args ...any) string {
			painted[a]++
			return f(format, args...)
		}
	}
	encode.MustString(d, encode.EncodeColors(colors))
	for _, a := range []encode.ColorAttr{encode.PlanColor, encode.OKColor, encode.NotOKColor} {
		if painted[a] == 0 {
			t.Errorf("attr %d never painted", a)
		}
	}
}
