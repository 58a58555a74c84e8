package encode

import (
	"fmt"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	OKColor ColorAttr = iota
	NotOKColor
	DirectiveColor
	PlanColor
	VersionColor
	CommentColor
	DiagColor
	BailOutColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[ColorAttr]func(string, ...any) string{},
	}
	colors.Map[OKColor] = color.GreenString
	colors.Map[NotOKColor] = color.RedString
	colors.Map[DirectiveColor] = color.YellowString
	colors.Map[PlanColor] = color.CyanString
	colors.Map[VersionColor] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[CommentColor] = color.BlueString
	colors.Map[DiagColor] = color.RGB(128, 128, 128).SprintfFunc()
	colors.Map[BailOutColor] = color.HiRedString
	return colors
}

func colorDefault(f string, args ...any) string {
	return fmt.Sprintf(f, args...)
}

func (c *Colors) Color(a ColorAttr, s string) string {
	f := c.Map[a]
	if f == nil {
		f = c.Default
	}
	return f("%s", s)
}
