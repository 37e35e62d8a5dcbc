package eval

import (
	"encoding/json"

	"github.com/signadot/notelog/doc"
)

// ToValue converts a document value into the plain Go values expressions
// operate on. Integral numbers become int, other numbers float64 and
// objects map[string]any.
func ToValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i)
		}
		f, err := x.Float64()
		if err != nil {
			return x.String()
		}
		return f
	case *doc.Fields:
		res := make(map[string]any, x.Len())
		for k, fv := range x.All() {
			res[k] = ToValue(fv)
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = ToValue(x[i])
		}
		return res
	default:
		return v
	}
}

// Env returns the expression environment for f: one variable per field.
func Env(f *doc.Fields) map[string]any {
	env := make(map[string]any, f.Len())
	for k, v := range f.All() {
		env[k] = ToValue(v)
	}
	return env
}
