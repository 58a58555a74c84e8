package token

import (
	"fmt"
	"strings"
)

// Directive is a TODO or SKIP annotation on a test line, modifying how
// its outcome is interpreted.
type Directive int

const (
	NoDirective Directive = iota
	Todo
	Skip
)

func (d Directive) String() string {
	s, ok := map[Directive]string{
		NoDirective: "",
		Todo:        "TODO",
		Skip:        "SKIP",
	}[d]
	if ok {
		return s
	}
	return "<unknown directive>"
}

func (d Directive) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Directive) UnmarshalText(b []byte) error {
	dd, ok := map[string]Directive{
		"":     NoDirective,
		"TODO": Todo,
		"SKIP": Skip,
	}[strings.ToUpper(string(b))]
	if !ok {
		return fmt.Errorf("unrecognized directive %q", b)
	}
	*d = dd
	return nil
}

func Directives() []Directive {
	return []Directive{
		NoDirective,
		Todo,
		Skip,
	}
}
