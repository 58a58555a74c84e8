package ir

import "reflect"

// Equal reports semantic equality of two documents: versions, plans,
// bail-out state, and cases with their ordinals, outcomes,
// descriptions, directives, and diagnostics.  Warnings and comment
// provenance are not part of the text representation and do not
// participate.
func Equal(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Version != b.Version {
		return false
	}
	if !planEqual(a.Plan, b.Plan) {
		return false
	}
	if !bailoutEqual(a.Bailout, b.Bailout) {
		return false
	}
	if len(a.Cases) != len(b.Cases) {
		return false
	}
	for i := range a.Cases {
		if !CaseEqual(a.Cases[i], b.Cases[i]) {
			return false
		}
	}
	if len(a.Comments) != len(b.Comments) {
		return false
	}
	for i := range a.Comments {
		if a.Comments[i].Text != b.Comments[i].Text {
			return false
		}
	}
	return true
}

// CaseEqual reports semantic equality of two test cases.
func CaseEqual(a, b *TestCase) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Num != b.Num || a.OK != b.OK {
		return false
	}
	if a.Description != b.Description {
		return false
	}
	if a.Directive != b.Directive || a.Reason != b.Reason {
		return false
	}
	if !stringsEqual(a.Comments, b.Comments) {
		return false
	}
	return diagEqual(a, b)
}

// diagEqual compares decoded diagnostics when both sides decoded, and
// raw block lines otherwise.  A decoded block and its own raw lines
// compare equal through the decoded form.
func diagEqual(a, b *TestCase) bool {
	if a.Diag != nil && b.Diag != nil {
		return reflect.DeepEqual(a.Diag, b.Diag)
	}
	if a.Diag == nil && b.Diag == nil {
		return stringsEqual(a.DiagRaw, b.DiagRaw)
	}
	return false
}

func planEqual(a, b *Plan) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.First == b.First && a.Last == b.Last &&
		a.Skip == b.Skip && a.SkipReason == b.SkipReason
}

func bailoutEqual(a, b *Bailout) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Reason == b.Reason && stringsEqual(a.Data, b.Data)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
