package main

import (
	"context"
	"fmt"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/signadot/go-tap/ir"
	"github.com/signadot/go-tap/token"
	"github.com/signadot/go-tap/validate"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.doc == nil {
		return nil, nil
	}

	line := int(params.Position.Line)
	lines := strings.Split(doc.content, "\n")
	if line >= len(lines) {
		return nil, nil
	}

	hoverText := buildHoverText(doc.doc, lines[line])
	if hoverText == "" {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText,
		},
	}, nil
}

// buildHoverText describes the construct on the hovered line: a test
// case by its ordinal, the plan, or the bail-out, each followed by the
// run summary.
func buildHoverText(d *ir.Document, raw string) string {
	lin := token.Classify(raw)
	var sb strings.Builder
	switch lin.Kind {
	case token.LTest:
		tc := d.Case(lin.Num)
		if tc == nil && !lin.HasNum {
			// unnumbered test lines are matched by description
			for _, c := range d.Cases {
				if c.Description == lin.Description {
					tc = c
					break
				}
			}
		}
		if tc == nil {
			return ""
		}
		fmt.Fprintf(&sb, "**test %d**: %s", tc.Num, caseStatus(tc))
		if tc.Description != "" {
			fmt.Fprintf(&sb, "\n\n%s", tc.Description)
		}
		if tc.Reason != "" {
			fmt.Fprintf(&sb, "\n\n_%s_", tc.Reason)
		}
	case token.LPlan:
		fmt.Fprintf(&sb, "**plan**: %d of %d tests present",
			d.ActualLen(), d.Len())
	case token.LBailOut:
		sb.WriteString("**bail out**: the run terminated before completing its plan")
	default:
		return ""
	}
	fmt.Fprintf(&sb, "\n\n---\n\n%s", validate.Summary(d))
	return sb.String()
}

func caseStatus(tc *ir.TestCase) string {
	switch {
	case tc.Skipped():
		return "skipped"
	case tc.Todo() && !tc.OK:
		return "failing, marked TODO"
	case tc.Todo():
		return "passing, marked TODO"
	case tc.OK:
		return "passing"
	default:
		return "failing"
	}
}
