package doc

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"

	"github.com/google/go-cmp/cmp"
)

var equalOpts = cmp.Options{
	cmp.Comparer(numbersEqual),
}

// Equal reports whether a and b are structurally equal JSON values.
// Numbers compare by value so 1 and 1.0 are equal, objects compare
// without regard to key order.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, equalOpts)
}

// numbersEqual compares integer literals exactly and floats as float64. An
// integer and a float compare by exact value, so an integer beyond float64
// precision differs from its nearest float.
func numbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	ai, aInt := parseInt(a)
	bi, bInt := parseInt(b)
	if aInt && bInt {
		return ai.Cmp(bi) == 0
	}
	af, aErr := a.Float64()
	bf, bErr := b.Float64()
	if aErr != nil || bErr != nil {
		return false
	}
	switch {
	case aInt:
		return exactEqual(ai, bf)
	case bInt:
		return exactEqual(bi, af)
	default:
		return af == bf
	}
}

func parseInt(n json.Number) (*big.Int, bool) {
	if strings.ContainsAny(string(n), ".eE") {
		return nil, false
	}
	return new(big.Int).SetString(string(n), 10)
}

func exactEqual(i *big.Int, f float64) bool {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return false
	}
	r := new(big.Rat).SetFloat64(f)
	return r.IsInt() && r.Num().Cmp(i) == 0
}
