package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/go-tap/encode"
	"github.com/signadot/go-tap/ir"
)

// Logf writes a debug message to stderr, rendering ir.Document
// arguments in TAP form and maps as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Document:
			buf := bytes.NewBuffer(nil)
			if err := encode.Encode(x, buf); err != nil {
				args[i] = fmt.Sprintf("[raw document] %v", x)
				continue
			}
			args[i] = buf.String()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
