package debug

import (
	"encoding/json"
	"fmt"
	"os"
)

// Logf writes a debug line to stderr. Arguments which marshal to JSON,
// such as document fields and change records, are rendered as indented
// JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case bool, string, float64, int, int64, error:
			continue
		case json.Marshaler, map[string]any, []any, json.Number:
		default:
			if _, ok := a.(fmt.Stringer); ok {
				continue
			}
		}
		d, err := json.MarshalIndent(a, "   |", "  ")
		if err != nil {
			args[i] = fmt.Sprintf("%v", a)
			continue
		}
		args[i] = string(d)
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
