package token

import "fmt"

type Kind int

const (
	LUnknown Kind = iota
	LVersion
	LPlan
	LTest
	LBailOut
	LDiagStart
	LDiagEnd
	LComment
	LBlank
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		LUnknown:   "Unknown",
		LVersion:   "Version",
		LPlan:      "Plan",
		LTest:      "Test",
		LBailOut:   "BailOut",
		LDiagStart: "DiagStart",
		LDiagEnd:   "DiagEnd",
		LComment:   "Comment",
		LBlank:     "Blank",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Unknown":   LUnknown,
		"Version":   LVersion,
		"Plan":      LPlan,
		"Test":      LTest,
		"BailOut":   LBailOut,
		"DiagStart": LDiagStart,
		"DiagEnd":   LDiagEnd,
		"Comment":   LComment,
		"Blank":     LBlank,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized line kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		LUnknown,
		LVersion,
		LPlan,
		LTest,
		LBailOut,
		LDiagStart,
		LDiagEnd,
		LComment,
		LBlank,
	}
}

// Line is the result of classifying one line of TAP text.  Kind selects
// which of the remaining fields are meaningful.
type Line struct {
	Kind Kind
	Raw  string

	// LVersion
	Version int

	// LPlan.  Skip is set when the plan carries a skip directive,
	// with the reason (possibly empty) in SkipReason; any other
	// plan comment lands in Text.
	First, Last int
	Skip        bool
	SkipReason  string

	// LTest
	OK          bool
	Num         int
	HasNum      bool
	Description string
	Directive   Directive
	Reason      string

	// LBailOut
	Bailout string

	// LComment, and plan comments that are not skip directives
	Text string

	// set on LUnknown lines that begin like a recognized construct
	// but fail its grammar
	Lookalike Lookalike
}

func (l *Line) Info() string {
	return fmt.Sprintf("%s %q", l.Kind, l.Raw)
}

type Lookalike int

const (
	NoLookalike Lookalike = iota
	VersionLookalike
	PlanLookalike
	TestLookalike
)

func (l Lookalike) String() string {
	s, ok := map[Lookalike]string{
		NoLookalike:      "none",
		VersionLookalike: "version",
		PlanLookalike:    "plan",
		TestLookalike:    "test",
	}[l]
	if ok {
		return s
	}
	return "<unknown lookalike>"
}
