package merge

import (
	"github.com/signadot/notelog/debug"
	"github.com/signadot/notelog/doc"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff computes the changes taking from to to. The key sequences are
// aligned like lines of text: deleted keys are Removed, inserted keys are
// Added and keys on both sides with unequal values are Updated. A key
// which only moved is reported where it was inserted, as an update if its
// value changed and not at all otherwise.
func Diff(from, to *doc.Fields) []Change {
	fieldMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapFieldsTo(fieldMap, runeMap, from)
	toRunes := mapFieldsTo(fieldMap, runeMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	var res []Change
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for _, r := range diff.Text {
				k := runeMap[r]
				if to.Has(k) {
					continue
				}
				old, _ := from.Get(k)
				res = append(res, Change{Kind: Removed, Key: k, Old: old})
			}
		case diffpatch.DiffEqual, diffpatch.DiffInsert:
			for _, r := range diff.Text {
				k := runeMap[r]
				v, _ := to.Get(k)
				old, ok := from.Get(k)
				switch {
				case !ok:
					res = append(res, Change{Kind: Added, Key: k, New: v})
				case !doc.Equal(old, v):
					res = append(res, Change{Kind: Updated, Key: k, Old: old, New: v})
				}
			}
		}
	}
	if debug.Merge() {
		debug.Logf("diff: %d changes over %d diff hunks\n", len(res), len(diffs))
	}
	return res
}

func mapFieldsTo(m map[string]rune, im map[rune]string, f *doc.Fields) []rune {
	rs := make([]rune, 0, f.Len())
	for k := range f.All() {
		r, ok := m[k]
		if !ok {
			r = keyRune(len(m))
			m[k] = r
			im[r] = k
		}
		rs = append(rs, r)
	}
	return rs
}

// keyRune skips the surrogate range, which does not survive conversion to
// string.
func keyRune(n int) rune {
	if n >= 0xD800 {
		n += 0x800
	}
	return rune(n)
}

// Reorder returns the content of to laid out in the key order of from, with
// keys new in to appended in their order in to.
func Reorder(from, to *doc.Fields) *doc.Fields {
	res := doc.NewFields()
	for k := range from.All() {
		if v, ok := to.Get(k); ok {
			res.Set(k, v)
		}
	}
	for k, v := range to.All() {
		if !from.Has(k) {
			res.Set(k, v)
		}
	}
	return res
}
