package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Merge bool
	LSP   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("TAP_DEBUG_PARSE")
	d.Merge = boolEnv("TAP_DEBUG_MERGE")
	d.LSP = boolEnv("TAP_DEBUG_LSP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Merge() bool {
	return d.Merge
}
func LSP() bool {
	return d.LSP
}
