package ir

import (
	"errors"
	"testing"

	"github.com/signadot/go-tap/token"
)

func sample() *Document {
	return &Document{
		Version: 13,
		Plan:    &Plan{First: 1, Last: 2},
		Cases: []*TestCase{
			{Num: 1, OK: true, Description: "alpha"},
			{
				Num: 2, Description: "beta",
				Directive: token.Skip, Reason: "no tty",
				Diag:    map[string]any{"elapsed": "3s", "nested": map[string]any{"k": "v"}},
				DiagRaw: []string{"elapsed: 3s", "nested:", "  k: v"},
			},
		},
		Comments: []Comment{{Text: "hello"}},
	}
}

func TestEqual(t *testing.T) {
	a, b := sample(), sample()
	if !Equal(a, b) {
		t.Fatalf("identical documents unequal")
	}
	muts := []struct {
		name string
		mut  func(*Document)
	}{
		{"version", func(d *Document) { d.Version = 12 }},
		{"plan", func(d *Document) { d.Plan.Last = 3 }},
		{"plan skip", func(d *Document) { d.Plan.Skip = true }},
		{"plan gone", func(d *Document) { d.Plan = nil }},
		{"outcome", func(d *Document) { d.Cases[0].OK = false }},
		{"description", func(d *Document) { d.Cases[0].Description = "x" }},
		{"directive", func(d *Document) { d.Cases[1].Directive = token.Todo }},
		{"reason", func(d *Document) { d.Cases[1].Reason = "" }},
		{"diag", func(d *Document) { d.Cases[1].Diag["elapsed"] = "4s" }},
		{"bailout", func(d *Document) { d.Bailout = &Bailout{} }},
		{"comment", func(d *Document) { d.Comments[0].Text = "bye" }},
		{"case count", func(d *Document) { d.Cases = d.Cases[:1] }},
	}
	for _, m := range muts {
		c := sample()
		m.mut(c)
		if Equal(a, c) {
			t.Errorf("%s mutation not detected", m.name)
		}
	}
}

func TestEqualIgnoresWarningsAndProvenance(t *testing.T) {
	a, b := sample(), sample()
	b.Warnings = append(b.Warnings, NewLineErr(ErrDuplicatePlan, 4, "1..9"))
	b.Comments[0].Source = 3
	if !Equal(a, b) {
		t.Errorf("warnings or provenance leaked into equality")
	}
}

func TestCloneIndependent(t *testing.T) {
	a := sample()
	c := a.Clone()
	if !Equal(a, c) {
		t.Fatalf("clone unequal to original")
	}
	c.Cases[1].Diag["elapsed"] = "99s"
	nested := c.Cases[1].Diag["nested"].(map[string]any)
	nested["k"] = "scribbled"
	c.Cases[0].Comments = append(c.Cases[0].Comments, "added")
	c.Plan.Last = 7

	if a.Cases[1].Diag["elapsed"] != "3s" {
		t.Errorf("clone aliases top-level diag")
	}
	if a.Cases[1].Diag["nested"].(map[string]any)["k"] != "v" {
		t.Errorf("clone aliases nested diag")
	}
	if len(a.Cases[0].Comments) != 0 {
		t.Errorf("clone aliases comments")
	}
	if a.Plan.Last != 2 {
		t.Errorf("clone aliases plan")
	}
}

func TestCounts(t *testing.T) {
	d := &Document{
		Plan: &Plan{First: 1, Last: 5},
		Cases: []*TestCase{
			{Num: 1, OK: true},
			{Num: 2},
			{Num: 3, Directive: token.Skip},
			{Num: 4, Directive: token.Todo},
		},
	}
	if d.Len() != 5 || d.ActualLen() != 4 {
		t.Errorf("Len = %d, ActualLen = %d", d.Len(), d.ActualLen())
	}
	if d.PassedLen() != 3 || d.FailedLen() != 1 {
		t.Errorf("passed = %d, failed = %d", d.PassedLen(), d.FailedLen())
	}
	if d.SkipLen() != 1 || d.TodoLen() != 1 {
		t.Errorf("skip = %d, todo = %d", d.SkipLen(), d.TodoLen())
	}
	if d.AllOK() {
		t.Errorf("AllOK with a failing case")
	}
	if tc := d.Case(3); tc == nil || tc.Num != 3 {
		t.Errorf("Case(3) = %+v", tc)
	}
	if d.Case(9) != nil {
		t.Errorf("Case(9) found something")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	a := sample()
	a.Warnings = append(a.Warnings, NewLineErr(ErrOutOfOrderNumbering, 7, "ok 5"))
	d, err := ToJSON(a)
	if err != nil {
		t.Fatal(err)
	}
	b, err := FromJSON(d)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(a, b) {
		t.Errorf("JSON round trip changed the document")
	}
	if len(b.Warnings) != 1 {
		t.Fatalf("warnings lost: %+v", b.Warnings)
	}
	// sentinel identity survives the trip
	if !errors.Is(b.Warnings[0], ErrOutOfOrderNumbering) {
		t.Errorf("warning sentinel lost: %v", b.Warnings[0])
	}
	if b.Warnings[0].Line != 7 {
		t.Errorf("warning line = %d", b.Warnings[0].Line)
	}
}

func TestFromJSONDefaultVersion(t *testing.T) {
	b, err := FromJSON([]byte(`{"cases":[{"num":1,"ok":true}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if b.Version != DefaultVersion {
		t.Errorf("version = %d", b.Version)
	}
}
