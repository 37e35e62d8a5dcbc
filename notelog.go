// Package notelog keeps a persistent key-value note log in a single JSON
// file.
//
// Each mutation loads the file, applies the change in memory, appends a
// timestamped note describing it to the document history and rewrites the
// file atomically. A mutation which changes nothing writes nothing.
//
//	l := notelog.New(notelog.WithPath("notes.json"))
//	sum, err := l.UpdateMap(map[string]any{"a": 1}, "")
//	// sum.Narrative == "added a"
//
// A Log assumes it is the only writer of its file while an operation runs.
package notelog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/signadot/notelog/doc"
	"github.com/signadot/notelog/eval"
	"github.com/signadot/notelog/merge"
	"github.com/signadot/notelog/storage"
	"github.com/signadot/notelog/storage/dfile"
)

// NothingChanged is printed when an operation has nothing to record.
const NothingChanged = "nothing changed in log"

// Log is the entry point to one document file.
type Log struct {
	path    string
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	now     func() time.Time

	store *storage.Store
}

func New(opts ...Option) *Log {
	l := &Log{
		path:   DefaultPath,
		logger: slog.Default(),
		out:    io.Discard,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.store = storage.New(l.path, l.logger, l.now)
	return l
}

// Path returns the document path.
func (l *Log) Path() string {
	return l.path
}

// Summary describes the outcome of a mutating operation.
type Summary struct {
	Path      string
	Narrative string
	Changes   []merge.Change

	// Changed is set when a history entry was recorded and written.
	Changed bool
	Entry   *doc.HistoryEntry

	// Found and Removed are set by Remove.
	Found   bool
	Removed any
}

// Update merges updates into the document in the order of updates.
// A non empty message is prepended to the narrative. When neither the
// fields nor a message produce a narrative, nothing is written and the
// summary has Changed unset.
func (l *Log) Update(updates *doc.Fields, message string) (*Summary, error) {
	if err := doc.CheckKeys(updates); err != nil {
		return nil, err
	}
	norm := doc.NewFields()
	for k, v := range updates.All() {
		nv, err := doc.Normalize(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		norm.Set(k, nv)
	}
	d, err := l.store.Load()
	if err != nil {
		return nil, err
	}
	changes := merge.Merge(d.Fields, norm)
	sum := &Summary{
		Path:      l.path,
		Changes:   changes,
		Narrative: merge.WithMessage(message, merge.Narrative(changes, l.verbose)),
	}
	l.logger.Debug("update", "path", l.path, "updates", norm.Len(), "changes", len(changes))
	return l.commit(d, sum)
}

// UpdateMap is Update for a Go map. Maps are unordered, so keys are
// applied in sorted order.
func (l *Log) UpdateMap(m map[string]any, message string) (*Summary, error) {
	f, err := doc.FromMap(m)
	if err != nil {
		return nil, err
	}
	return l.Update(f, message)
}

// Remove deletes key from the document. The narrative records the removed
// value since the history is the only place it survives. Removing an
// absent key writes nothing and returns a summary with Found unset.
func (l *Log) Remove(key, message string) (*Summary, error) {
	d, err := l.store.Load()
	if err != nil {
		return nil, err
	}
	val, ok := d.Delete(key)
	if !ok {
		sum := &Summary{Path: l.path, Narrative: "no such key " + key}
		fmt.Fprintln(l.out, sum.Narrative)
		return sum, nil
	}
	note := fmt.Sprintf("popped key %s storing: %s", key, doc.FormatValue(val))
	sum := &Summary{
		Path:      l.path,
		Changes:   []merge.Change{{Kind: merge.Removed, Key: key, Old: val}},
		Narrative: merge.WithMessage(message, note),
		Found:     true,
		Removed:   val,
	}
	l.logger.Debug("remove", "path", l.path, "key", key)
	return l.commit(d, sum)
}

// Show returns the current document, creating it if needed.
func (l *Log) Show() (*doc.Document, error) {
	return l.store.Load()
}

// Eval evaluates an expression over the document fields.
func (l *Log) Eval(src string) (any, error) {
	d, err := l.store.Load()
	if err != nil {
		return nil, err
	}
	return eval.Eval(d.Fields, src)
}

func (l *Log) commit(d *doc.Document, sum *Summary) (*Summary, error) {
	if sum.Narrative == "" {
		fmt.Fprintln(l.out, NothingChanged)
		return sum, nil
	}
	fmt.Fprintln(l.out, sum.Narrative)
	d.Record(sum.Narrative, l.now())
	if err := l.store.Write(d); err != nil {
		var wf *dfile.WriteFailure
		if errors.As(err, &wf) {
			fmt.Fprintf(l.out, "write failed, see %s\n", wf.TempPath)
		}
		return nil, err
	}
	entry := d.History[len(d.History)-1]
	sum.Entry = &entry
	sum.Changed = true
	return sum, nil
}
