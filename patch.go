package notelog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/signadot/notelog/debug"
	"github.com/signadot/notelog/doc"
	"github.com/signadot/notelog/merge"

	jsonpatch "github.com/evanphx/json-patch"
)

// Patch applies a JSON patch to the document fields. A JSON array is taken
// as an RFC 6902 patch, anything else as an RFC 7386 merge patch. Fields
// keep their prior order; new fields are appended.
func (l *Log) Patch(patch []byte, message string) (*Summary, error) {
	d, err := l.store.Load()
	if err != nil {
		return nil, err
	}
	cur, err := json.Marshal(d.Fields)
	if err != nil {
		return nil, err
	}
	out, err := applyPatch(cur, patch)
	if err != nil {
		return nil, fmt.Errorf("applying patch to %s: %w", l.path, err)
	}
	v, err := doc.DecodeValue(out)
	if err != nil {
		return nil, err
	}
	to, ok := v.(*doc.Fields)
	if !ok {
		return nil, fmt.Errorf("patch of %s: %w", l.path, doc.ErrNotObject)
	}
	if err := doc.CheckKeys(to); err != nil {
		return nil, err
	}
	changes := merge.Diff(d.Fields, to)
	d.ReplaceFields(merge.Reorder(d.Fields, to))
	sum := &Summary{
		Path:      l.path,
		Changes:   changes,
		Narrative: merge.WithMessage(message, merge.Narrative(changes, l.verbose)),
	}
	l.logger.Debug("patch", "path", l.path, "changes", len(changes))
	return l.commit(d, sum)
}

func applyPatch(docData, patch []byte) ([]byte, error) {
	patch = bytes.TrimSpace(patch)
	if len(patch) > 0 && patch[0] == '[' {
		if debug.Patch() {
			debug.Logf("json-patch %s\n", string(patch))
		}
		ops, err := jsonpatch.DecodePatch(patch)
		if err != nil {
			return nil, err
		}
		return ops.Apply(docData)
	}
	if debug.Patch() {
		debug.Logf("merge-patch %s\n", string(patch))
	}
	return jsonpatch.MergePatch(docData, patch)
}
