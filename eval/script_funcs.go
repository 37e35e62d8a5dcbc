package eval

import (
	"os"

	"github.com/signadot/notelog/doc"

	"github.com/expr-lang/expr"
)

func exprOpts(f *doc.Fields, env map[string]any) []expr.Option {
	return []expr.Option{
		expr.Env(env),
		expr.Function("has", func(params ...any) (any, error) {
			return f.Has(params[0].(string)), nil
		},
			new(func(string) bool)),
		expr.Function("field", func(params ...any) (any, error) {
			v, _ := f.Get(params[0].(string))
			return ToValue(v), nil
		},
			new(func(string) any)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
