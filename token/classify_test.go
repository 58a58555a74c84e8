package token

import "testing"

func TestClassifyKinds(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{"", LBlank},
		{"   \t", LBlank},
		{"TAP version 13", LVersion},
		{"tap Version 13", LVersion},
		{"1..5", LPlan},
		{"1..0", LPlan},
		{"  1..3  ", LPlan},
		{"ok", LTest},
		{"ok 1", LTest},
		{"not ok 2 something", LTest},
		{"Bail out!", LBailOut},
		{"Bail out! disk full", LBailOut},
		{"---", LDiagStart},
		{"  ---", LDiagStart},
		{"...", LDiagEnd},
		{"# a comment", LComment},
		{"some stray output", LUnknown},
		{"okay then", LUnknown},
	}
	for _, tt := range tests {
		lin := Classify(tt.in)
		if lin.Kind != tt.kind {
			t.Errorf("Classify(%q).Kind = %s, want %s", tt.in, lin.Kind, tt.kind)
		}
		if lin.Raw != tt.in {
			t.Errorf("Classify(%q) did not preserve Raw", tt.in)
		}
	}
}

func TestClassifyTest(t *testing.T) {
	tests := []struct {
		in        string
		ok        bool
		num       int
		hasNum    bool
		desc      string
		directive Directive
		reason    string
	}{
		{in: "ok", ok: true},
		{in: "ok 1", ok: true, num: 1, hasNum: true},
		{in: "not ok 2", num: 2, hasNum: true},
		{in: "ok 1 foo", ok: true, num: 1, hasNum: true, desc: "foo"},
		{in: "ok 3 - foo bar", ok: true, num: 3, hasNum: true, desc: "foo bar"},
		{in: "ok no number here", ok: true, desc: "no number here"},
		{
			in: "ok 1 foo # TODO not yet implemented",
			ok: true, num: 1, hasNum: true, desc: "foo",
			directive: Todo, reason: "not yet implemented",
		},
		{
			in: "not ok 4 db # skip no database",
			num: 4, hasNum: true, desc: "db",
			directive: Skip, reason: "no database",
		},
		{
			in: "ok 5 legacy # SKIPPED: no tty",
			ok: true, num: 5, hasNum: true, desc: "legacy",
			directive: Skip, reason: "no tty",
		},
		{
			// a # that introduces no directive stays in the description
			in: "ok 6 measure #4 of op",
			ok: true, num: 6, hasNum: true, desc: "measure #4 of op",
		},
		{
			in: `ok 7 escaped \# here # TODO x`,
			ok: true, num: 7, hasNum: true, desc: "escaped # here",
			directive: Todo, reason: "x",
		},
		{
			// 2x is a description, not an ordinal
			in: "ok 2x marks", ok: true, desc: "2x marks",
		},
	}
	for _, tt := range tests {
		lin := Classify(tt.in)
		if lin.Kind != LTest {
			t.Errorf("Classify(%q).Kind = %s, want Test", tt.in, lin.Kind)
			continue
		}
		if lin.OK != tt.ok {
			t.Errorf("Classify(%q).OK = %t", tt.in, lin.OK)
		}
		if lin.HasNum != tt.hasNum || lin.Num != tt.num {
			t.Errorf("Classify(%q) num = (%d, %t), want (%d, %t)",
				tt.in, lin.Num, lin.HasNum, tt.num, tt.hasNum)
		}
		if lin.Description != tt.desc {
			t.Errorf("Classify(%q).Description = %q, want %q", tt.in, lin.Description, tt.desc)
		}
		if lin.Directive != tt.directive || lin.Reason != tt.reason {
			t.Errorf("Classify(%q) directive = (%s, %q), want (%s, %q)",
				tt.in, lin.Directive, lin.Reason, tt.directive, tt.reason)
		}
	}
}

func TestClassifyPlan(t *testing.T) {
	tests := []struct {
		in          string
		first, last int
		skipped     bool
		skip        string
		text        string
	}{
		{in: "1..5", first: 1, last: 5},
		{in: "1..0", first: 1, last: 0},
		{in: "1..0 # SKIP no tests to run", first: 1, last: 0, skipped: true, skip: "no tests to run"},
		{in: "1..0 # SKIP", first: 1, last: 0, skipped: true},
		{in: "1..2 # skipped: out of budget", first: 1, last: 2, skipped: true, skip: "out of budget"},
		{in: "1..3 # a remark", first: 1, last: 3, text: "a remark"},
	}
	for _, tt := range tests {
		lin := Classify(tt.in)
		if lin.Kind != LPlan {
			t.Errorf("Classify(%q).Kind = %s, want Plan", tt.in, lin.Kind)
			continue
		}
		if lin.First != tt.first || lin.Last != tt.last {
			t.Errorf("Classify(%q) = %d..%d, want %d..%d",
				tt.in, lin.First, lin.Last, tt.first, tt.last)
		}
		if lin.Skip != tt.skipped {
			t.Errorf("Classify(%q).Skip = %v, want %v", tt.in, lin.Skip, tt.skipped)
		}
		if lin.SkipReason != tt.skip {
			t.Errorf("Classify(%q).SkipReason = %q, want %q", tt.in, lin.SkipReason, tt.skip)
		}
		if lin.Text != tt.text {
			t.Errorf("Classify(%q).Text = %q, want %q", tt.in, lin.Text, tt.text)
		}
	}
}

func TestClassifyLookalikes(t *testing.T) {
	tests := []struct {
		in   string
		look Lookalike
	}{
		{"TAP version thirteen", VersionLookalike},
		{"1..x", PlanLookalike},
		{"2 ..5", PlanLookalike},
		{"ok\ttab then junk that is fine", NoLookalike},
		{"not  ok 3 double space", TestLookalike},
		{"plain words", NoLookalike},
	}
	for _, tt := range tests {
		lin := Classify(tt.in)
		if tt.look == NoLookalike && lin.Kind == LUnknown && lin.Lookalike != NoLookalike {
			t.Errorf("Classify(%q) unexpectedly a %s lookalike", tt.in, lin.Lookalike)
		}
		if tt.look != NoLookalike {
			if lin.Kind != LUnknown {
				t.Errorf("Classify(%q).Kind = %s, want Unknown", tt.in, lin.Kind)
				continue
			}
			if lin.Lookalike != tt.look {
				t.Errorf("Classify(%q).Lookalike = %s, want %s", tt.in, lin.Lookalike, tt.look)
			}
		}
	}
}

func TestEscapeDescriptionRoundTrip(t *testing.T) {
	for _, desc := range []string{
		"plain",
		"has # hash",
		`back \ slash`,
		`both \# of them`,
	} {
		lin := Classify("ok 1 " + EscapeDescription(desc))
		if lin.Kind != LTest {
			t.Fatalf("escaped %q did not classify as a test line", desc)
		}
		if lin.Description != desc {
			t.Errorf("description %q round-tripped to %q", desc, lin.Description)
		}
	}
}
