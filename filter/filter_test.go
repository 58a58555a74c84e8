package filter

import (
	"testing"

	"github.com/signadot/go-tap/ir"
	"github.com/signadot/go-tap/parse"
	"github.com/signadot/go-tap/validate"
)

const runText = `TAP version 13
1..5
ok 1 login works
not ok 2 logout hangs
  ---
  elapsed: 30
  ...
ok 3 signup # SKIP no smtp
not ok 4 reset # TODO flaky
ok 5 profile
`

func run(t *testing.T) *ir.Document {
	t.Helper()
	doc, err := parse.ParseString(runText)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestSelect(t *testing.T) {
	tests := []struct {
		pred string
		want []string
	}{
		{"!ok", []string{"logout hangs", "reset"}},
		{"!passed", []string{"logout hangs"}},
		{"todo", []string{"reset"}},
		{"skipped || todo", []string{"signup", "reset"}},
		{"has_diag", []string{"logout hangs"}},
		{"num > 3", []string{"reset", "profile"}},
		{`description matches "^log"`, []string{"login works", "logout hangs"}},
		{`directive == "SKIP"`, []string{"signup"}},
	}
	for _, tt := range tests {
		res, err := SelectString(run(t), tt.pred)
		if err != nil {
			t.Errorf("%s: %v", tt.pred, err)
			continue
		}
		var got []string
		for _, tc := range res.Cases {
			got = append(got, tc.Description)
		}
		if len(got) != len(tt.want) {
			t.Errorf("%s: selected %v, want %v", tt.pred, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: selected %v, want %v", tt.pred, got, tt.want)
				break
			}
		}
		if v := validate.Check(res); !v.Valid {
			t.Errorf("%s: selection invalid: %v", tt.pred, v.Reasons)
		}
	}
}

func TestSelectRenumbers(t *testing.T) {
	res, err := SelectString(run(t), "num >= 4")
	if err != nil {
		t.Fatal(err)
	}
	for i, tc := range res.Cases {
		if tc.Num != i+1 {
			t.Errorf("case %d numbered %d", i+1, tc.Num)
		}
	}
	if res.Plan == nil || res.Plan.Last != 2 {
		t.Errorf("plan = %+v", res.Plan)
	}
}

func TestSelectNothing(t *testing.T) {
	res, err := SelectString(run(t), "num > 100")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Cases) != 0 {
		t.Fatalf("selected %d cases", len(res.Cases))
	}
	if res.Plan == nil || !res.Plan.SkipAll() {
		t.Errorf("empty selection plan = %+v, want skip-all", res.Plan)
	}
}

func TestSelectLeavesInputAlone(t *testing.T) {
	doc := run(t)
	before := doc.Clone()
	if _, err := SelectString(doc, "!ok"); err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(before, doc) {
		t.Errorf("input document changed by selection")
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{
		"num +",         // syntax
		"description",   // not boolean
		"nosuchfield>1", // unknown name
	} {
		if _, err := Compile(src); err == nil {
			t.Errorf("Compile(%q) succeeded", src)
		}
	}
}
