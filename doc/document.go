package doc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"
)

// HistoryKey is the reserved top level key holding the history on disk.
const HistoryKey = "history"

// CreatedNote is the note of the first history entry of every document.
const CreatedNote = "created"

// TimestampLayout formats history timestamps: local time, second
// precision, no zone, lexicographically sortable.
const TimestampLayout = "2006-01-02T15-04-05"

var (
	ErrReservedKey = errors.New("reserved key " + HistoryKey)
	ErrNotObject   = errors.New("document is not a JSON object")
	ErrBadHistory  = errors.New("malformed history")
)

func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.Local)
}

// HistoryEntry is one audit record. It is encoded as a two element array
// [timestamp, note].
type HistoryEntry struct {
	Timestamp string
	Note      string
}

func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.Timestamp, e.Note})
}

func (e *HistoryEntry) UnmarshalJSON(d []byte) error {
	var pair []string
	if err := json.Unmarshal(d, &pair); err != nil {
		return fmt.Errorf("%w: %w", ErrBadHistory, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: entry has %d elements", ErrBadHistory, len(pair))
	}
	e.Timestamp, e.Note = pair[0], pair[1]
	return nil
}

// Document is the full persisted state of one log file.
type Document struct {
	Fields  *Fields
	History []HistoryEntry

	// position of the history key among the top level keys on disk
	historyAt int
}

// New returns a fresh document whose history holds a single "created"
// entry stamped ts.
func New(ts time.Time) *Document {
	d := &Document{Fields: NewFields()}
	return d.Record(CreatedNote, ts)
}

// Record appends a history entry and returns d.
func (d *Document) Record(note string, ts time.Time) *Document {
	d.History = append(d.History, HistoryEntry{Timestamp: FormatTimestamp(ts), Note: note})
	return d
}

// Set sets a user field, refusing the reserved history key.
func (d *Document) Set(k string, v any) error {
	if k == HistoryKey {
		return ErrReservedKey
	}
	d.Fields.Set(k, v)
	return nil
}

// Delete removes user field k. The history key keeps its place relative to
// the remaining fields.
func (d *Document) Delete(k string) (any, bool) {
	i := slices.Index(d.Fields.keys, k)
	if i < 0 {
		return nil, false
	}
	if i < d.historyAt {
		d.historyAt--
	}
	return d.Fields.Delete(k)
}

// ReplaceFields replaces the user fields with f. The history key stays
// after the fields which preceded it and survive in f.
func (d *Document) ReplaceFields(f *Fields) {
	at := 0
	for _, k := range d.Fields.keys[:min(max(d.historyAt, 0), len(d.Fields.keys))] {
		if f.Has(k) {
			at++
		}
	}
	d.Fields = f
	d.historyAt = at
}

// CheckKeys returns ErrReservedKey if f holds the reserved history key.
func CheckKeys(f *Fields) error {
	if f.Has(HistoryKey) {
		return ErrReservedKey
	}
	return nil
}

// Decode parses the on disk form of a document. Errors wrap ErrNotObject or
// ErrBadHistory when the content is JSON of the wrong shape.
func Decode(data []byte) (*Document, error) {
	v, err := DecodeValue(data)
	if err != nil {
		return nil, err
	}
	top, ok := v.(*Fields)
	if !ok {
		return nil, fmt.Errorf("%w: top level is %s", ErrNotObject, typeName(v))
	}
	res := &Document{Fields: NewFields(), historyAt: -1}
	for i, k := range top.keys {
		if k != HistoryKey {
			res.Fields.Set(k, top.vals[k])
			continue
		}
		res.historyAt = i
		hist, err := decodeHistory(top.vals[k])
		if err != nil {
			return nil, err
		}
		res.History = hist
	}
	if res.historyAt < 0 {
		res.historyAt = res.Fields.Len()
	}
	return res, nil
}

func decodeHistory(v any) ([]HistoryEntry, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %s, not array", ErrBadHistory, HistoryKey, typeName(v))
	}
	res := make([]HistoryEntry, 0, len(arr))
	for i, x := range arr {
		pair, ok := x.([]any)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("%w: entry %d is not a [timestamp, note] pair", ErrBadHistory, i)
		}
		ts, tsOK := pair[0].(string)
		note, noteOK := pair[1].(string)
		if !tsOK || !noteOK {
			return nil, fmt.Errorf("%w: entry %d has non string elements", ErrBadHistory, i)
		}
		res = append(res, HistoryEntry{Timestamp: ts, Note: note})
	}
	return res, nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	keys := d.Fields.Keys()
	at := min(max(d.historyAt, 0), len(keys))
	history := d.History
	if history == nil {
		history = []HistoryEntry{}
	}
	buf := bytes.NewBuffer(nil)
	buf.WriteByte('{')
	n := 0
	sep := func() {
		if n > 0 {
			buf.WriteByte(',')
		}
		n++
	}
	writeKV := func(k string, v any) error {
		sep()
		if err := writeCompact(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		return writeCompact(buf, v)
	}
	for i := 0; i <= len(keys); i++ {
		if i == at {
			if err := writeKV(HistoryKey, history); err != nil {
				return nil, err
			}
		}
		if i == len(keys) {
			break
		}
		v, _ := d.Fields.Get(keys[i])
		if err := writeKV(keys[i], v); err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", keys[i], err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode writes d to w as 2-space indented JSON followed by a newline.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Bytes returns the encoded form of d.
func (d *Document) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := d.Encode(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
