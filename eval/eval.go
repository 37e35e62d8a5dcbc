// Package eval evaluates expr-lang expressions against document fields.
//
// Every field is visible as a variable of the same name. Fields whose names
// are not valid identifiers are reachable with field("name"), and has("name")
// reports whether a field exists.
//
//	v, err := eval.Eval(d.Fields, `energy * 2 + offset`)
package eval

import (
	"fmt"

	"github.com/signadot/notelog/debug"
	"github.com/signadot/notelog/doc"

	"github.com/expr-lang/expr"
)

// Eval compiles src against the fields of f and runs it.
func Eval(f *doc.Fields, src string) (any, error) {
	if debug.Eval() {
		debug.Logf("eval %q over %d fields\n", src, f.Len())
	}
	env := Env(f)
	prg, err := expr.Compile(src, exprOpts(f, env)...)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", src, err)
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return nil, fmt.Errorf("running %q: %w", src, err)
	}
	return res, nil
}
