// Package token classifies single lines of TAP text.
//
// Classify is context-free: it looks at one line at a time and never
// consults surrounding lines.  Multi-line constructs (YAML diagnostic
// blocks) are delimited by the LDiagStart and LDiagEnd kinds and
// assembled by the parser.
package token

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	versionRegexp  = regexp.MustCompile(`^(?i:TAP version) (\d+)$`)
	planRegexp     = regexp.MustCompile(`^(\d+)\.\.(\d+)\s*(?:#\s*(.*))?$`)
	planLookRegexp = regexp.MustCompile(`^\d+\s*\.\.`)
	testRegexp     = regexp.MustCompile(`^(not )?ok\b`)
	testLookRegexp = regexp.MustCompile(`^(?i:not\s+ok|ok)(\s|$)`)
	skipWordRegexp = regexp.MustCompile(`^(?i:skip)\S*\s*`)
)

// Classify maps one line of TAP text, without its trailing newline, to
// a tagged Line.  Leading and trailing whitespace is tolerated on every
// construct.  Lines that match nothing come back as LUnknown with Raw
// preserved verbatim; near misses of the version, plan, and test
// grammars additionally carry a Lookalike mark.
func Classify(raw string) *Line {
	lin := &Line{Raw: raw}
	s := strings.TrimSpace(raw)

	if s == "" {
		lin.Kind = LBlank
		return lin
	}
	if s == "---" {
		lin.Kind = LDiagStart
		return lin
	}
	if s == "..." {
		lin.Kind = LDiagEnd
		return lin
	}
	if strings.HasPrefix(s, "#") {
		lin.Kind = LComment
		lin.Text = strings.TrimSpace(s[1:])
		return lin
	}
	if m := versionRegexp.FindStringSubmatch(s); m != nil {
		v, err := strconv.Atoi(m[1])
		if err == nil {
			lin.Kind = LVersion
			lin.Version = v
			return lin
		}
	}
	if m := planRegexp.FindStringSubmatch(s); m != nil {
		first, err1 := strconv.Atoi(m[1])
		last, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil {
			lin.Kind = LPlan
			lin.First, lin.Last = first, last
			classifyPlanComment(lin, m[3])
			return lin
		}
	}
	if strings.HasPrefix(s, "Bail out!") {
		lin.Kind = LBailOut
		lin.Bailout = strings.TrimSpace(s[len("Bail out!"):])
		return lin
	}
	if testRegexp.MatchString(s) {
		classifyTest(lin, s)
		return lin
	}

	lin.Kind = LUnknown
	switch {
	case strings.HasPrefix(strings.ToLower(s), "tap version"):
		lin.Lookalike = VersionLookalike
	case planLookRegexp.MatchString(s):
		lin.Lookalike = PlanLookalike
	case testLookRegexp.MatchString(s):
		lin.Lookalike = TestLookalike
	}
	return lin
}

// classifyPlanComment splits a plan's trailing comment into a skip
// directive with reason, or an ordinary comment in Text.
func classifyPlanComment(lin *Line, comment string) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return
	}
	if loc := skipWordRegexp.FindStringIndex(comment); loc != nil {
		lin.Skip = true
		lin.SkipReason = comment[loc[1]:]
		return
	}
	lin.Text = comment
}

func classifyTest(lin *Line, s string) {
	lin.Kind = LTest
	rest := s
	if strings.HasPrefix(rest, "not ok") {
		lin.OK = false
		rest = rest[len("not ok"):]
	} else {
		lin.OK = true
		rest = rest[len("ok"):]
	}
	rest = strings.TrimLeft(rest, " \t")

	if len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
		end := 0
		for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
			end++
		}
		if end == len(rest) || rest[end] == ' ' || rest[end] == '\t' {
			lin.Num, _ = strconv.Atoi(rest[:end])
			lin.HasNum = true
			rest = rest[end:]
		}
	}

	switch {
	case strings.HasPrefix(rest, " - "):
		rest = rest[3:]
	case strings.HasPrefix(rest, "- "):
		rest = rest[2:]
	case strings.HasPrefix(rest, " "):
		rest = rest[1:]
	}

	desc, dir, reason := splitDirective(rest)
	lin.Description = unescapeDescription(strings.TrimSpace(desc))
	lin.Directive = dir
	lin.Reason = reason
}

// splitDirective finds the first unescaped # introducing a TODO or SKIP
// directive.  A # followed by anything else belongs to the description.
func splitDirective(s string) (desc string, dir Directive, reason string) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			continue
		}
		if s[i] != '#' {
			continue
		}
		if i > 0 && s[i-1] != ' ' && s[i-1] != '\t' {
			continue
		}
		after := strings.TrimSpace(s[i+1:])
		upper := strings.ToUpper(after)
		var kw Directive
		switch {
		case strings.HasPrefix(upper, "TODO"):
			kw = Todo
		case strings.HasPrefix(upper, "SKIP"):
			kw = Skip
		default:
			continue
		}
		// swallow the rest of the directive word, as in "SKIPPED:"
		rest := after[4:]
		for len(rest) > 0 && rest[0] != ' ' && rest[0] != '\t' {
			rest = rest[1:]
		}
		return s[:i], kw, strings.TrimSpace(rest)
	}
	return s, NoDirective, ""
}

func unescapeDescription(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			next := s[i+1]
			if next == '#' || next == '\\' {
				b.WriteByte(next)
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// EscapeDescription makes a description safe for a test line by
// escaping backslashes and hash marks, so the encoder's output
// classifies back to the same description.
func EscapeDescription(s string) string {
	if !strings.ContainsAny(s, "\\#") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '#':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
