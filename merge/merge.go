package merge

import (
	"github.com/signadot/notelog/debug"
	"github.com/signadot/notelog/doc"
)

// Merge applies updates to current in the order of updates and returns
// the resulting changes in the same order. Keys whose value is already
// structurally equal produce no change, so merging the same updates twice
// is a no-op the second time.
func Merge(current, updates *doc.Fields) []Change {
	var res []Change
	for k, v := range updates.All() {
		old, ok := current.Get(k)
		switch {
		case !ok:
			res = append(res, Change{Kind: Added, Key: k, New: v})
		case !doc.Equal(old, v):
			res = append(res, Change{Kind: Updated, Key: k, Old: old, New: v})
		default:
			if debug.Merge() {
				debug.Logf("merge: %s unchanged\n", k)
			}
			continue
		}
		current.Set(k, v)
	}
	if debug.Merge() {
		debug.Logf("merge: %d changes from %d updates\n", len(res), updates.Len())
	}
	return res
}
