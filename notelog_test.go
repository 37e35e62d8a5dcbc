package notelog

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/notelog/doc"
	"github.com/signadot/notelog/storage"
	"github.com/signadot/notelog/storage/dfile"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// tick returns a clock which advances one second per call.
func tick() func() time.Time {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	return func() time.Time {
		res := ts
		ts = ts.Add(time.Second)
		return res
	}
}

func newTestLog(t *testing.T, opts ...Option) (*Log, *bytes.Buffer) {
	t.Helper()
	out := bytes.NewBuffer(nil)
	p := filepath.Join(t.TempDir(), "notes.json")
	base := []Option{WithPath(p), WithClock(tick()), WithOutput(out), WithLogger(quiet)}
	return New(append(base, opts...)...), out
}

func load(t *testing.T, l *Log) *doc.Document {
	t.Helper()
	d, err := dfile.Read(l.Path())
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestScenario(t *testing.T) {
	l, out := newTestLog(t)

	sum, err := l.UpdateMap(map[string]any{"a": 1}, "")
	if err != nil {
		t.Fatal(err)
	}
	if !sum.Changed || sum.Narrative != "added a" {
		t.Errorf("first update: %+v", sum)
	}
	want := []doc.HistoryEntry{
		{Timestamp: "2024-03-01T10-00-00", Note: "created"},
		{Timestamp: "2024-03-01T10-00-01", Note: "added a"},
	}
	d := load(t, l)
	if diff := cmp.Diff(want, d.History); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if v, _ := d.Fields.Get("a"); !doc.Equal(v, doc.ParseValue("1")) {
		t.Errorf("a = %v, want 1", v)
	}

	sum, err = l.UpdateMap(map[string]any{"a": 1}, "")
	if err != nil {
		t.Fatal(err)
	}
	if sum.Changed || sum.Narrative != "" || len(sum.Changes) != 0 {
		t.Errorf("second update: %+v", sum)
	}
	if diff := cmp.Diff(want, load(t, l).History); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}

	sum, err = l.UpdateMap(map[string]any{"a": 2}, "bump")
	if err != nil {
		t.Fatal(err)
	}
	if sum.Narrative != "bump; updated a" {
		t.Errorf("narrative %q", sum.Narrative)
	}
	d = load(t, l)
	if got := d.History[len(d.History)-1].Note; got != "bump; updated a" {
		t.Errorf("last note %q", got)
	}
	if diff := cmp.Diff(*sum.Entry, d.History[len(d.History)-1]); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}

	sum, err = l.Remove("a", "")
	if err != nil {
		t.Fatal(err)
	}
	if !sum.Found || sum.Narrative != "popped key a storing: 2" {
		t.Errorf("remove: %+v", sum)
	}
	d = load(t, l)
	if d.Fields.Has("a") {
		t.Error("a still present")
	}
	if n := len(d.History); n != 4 {
		t.Errorf("history has %d entries, want 4", n)
	}

	wantOut := "added a\nnothing changed in log\nbump; updated a\npopped key a storing: 2\n"
	if diff := cmp.Diff(wantOut, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateOrderAndVerbose(t *testing.T) {
	l, _ := newTestLog(t, WithVerbose(true))
	updates := doc.NewFields()
	updates.Set("z", 1)
	updates.Set("m", "text")
	updates.Set("a", []int{1, 2})
	sum, err := l.Update(updates, "")
	if err != nil {
		t.Fatal(err)
	}
	if want := "added z (1); added m (text); added a ([1,2])"; sum.Narrative != want {
		t.Errorf("narrative %q, want %q", sum.Narrative, want)
	}
	if diff := cmp.Diff([]string{"z", "m", "a"}, load(t, l).Fields.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	updates = doc.NewFields()
	updates.Set("m", "other")
	sum, err = l.Update(updates, "")
	if err != nil {
		t.Fatal(err)
	}
	if want := "updated m -> other"; sum.Narrative != want {
		t.Errorf("narrative %q, want %q", sum.Narrative, want)
	}
}

func TestNoopDoesNotTouchFile(t *testing.T) {
	l, out := newTestLog(t)
	if _, err := l.UpdateMap(map[string]any{"a": 1}, ""); err != nil {
		t.Fatal(err)
	}
	before, err := os.Stat(l.Path())
	if err != nil {
		t.Fatal(err)
	}
	beforeBytes, _ := os.ReadFile(l.Path())
	out.Reset()

	sum, err := l.Update(doc.NewFields(), "")
	if err != nil {
		t.Fatal(err)
	}
	if sum.Changed {
		t.Error("empty update reported a change")
	}
	if got := out.String(); got != NothingChanged+"\n" {
		t.Errorf("output %q", got)
	}
	after, err := os.Stat(l.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Errorf("mod time changed from %v to %v", before.ModTime(), after.ModTime())
	}
	afterBytes, _ := os.ReadFile(l.Path())
	if !bytes.Equal(beforeBytes, afterBytes) {
		t.Error("file content changed")
	}
	if _, err := os.Stat(dfile.TempPath(l.Path())); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("sidecar created by a no-op: %v", err)
	}
}

func TestMessageOnly(t *testing.T) {
	l, _ := newTestLog(t)
	sum, err := l.Update(doc.NewFields(), "checkpoint")
	if err != nil {
		t.Fatal(err)
	}
	if !sum.Changed || sum.Narrative != "checkpoint" {
		t.Errorf("summary %+v", sum)
	}
	d := load(t, l)
	if got := d.History[len(d.History)-1].Note; got != "checkpoint" {
		t.Errorf("last note %q", got)
	}
}

func TestWriteFailureKeepsLog(t *testing.T) {
	l, out := newTestLog(t)
	if _, err := l.UpdateMap(map[string]any{"a": 1}, ""); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(l.Path())
	if err := os.Mkdir(dfile.TempPath(l.Path()), 0755); err != nil {
		t.Fatal(err)
	}
	out.Reset()

	sum, err := l.UpdateMap(map[string]any{"b": 2}, "")
	var wf *dfile.WriteFailure
	if !errors.As(err, &wf) {
		t.Fatalf("Update() = %v, want *WriteFailure", err)
	}
	if sum != nil {
		t.Errorf("summary returned with error: %+v", sum)
	}
	after, _ := os.ReadFile(l.Path())
	if !bytes.Equal(before, after) {
		t.Errorf("log changed by failed write:\n%s", after)
	}
	if !strings.Contains(out.String(), "write failed, see "+wf.TempPath) {
		t.Errorf("output %q does not point at the sidecar", out.String())
	}

	if _, err := l.Remove("a", ""); !errors.As(err, &wf) {
		t.Fatalf("Remove() = %v, want *WriteFailure", err)
	}
	after, _ = os.ReadFile(l.Path())
	if !bytes.Equal(before, after) {
		t.Errorf("log changed by failed remove:\n%s", after)
	}
}

func TestHistoryAppendOnly(t *testing.T) {
	l, _ := newTestLog(t)
	var snapshots [][]doc.HistoryEntry
	ops := []func() error{
		func() error { _, err := l.UpdateMap(map[string]any{"a": 1}, ""); return err },
		func() error { _, err := l.UpdateMap(map[string]any{"b": true}, "note"); return err },
		func() error { _, err := l.Remove("a", "drop"); return err },
		func() error { _, err := l.UpdateMap(map[string]any{"a": "again"}, ""); return err },
		func() error { _, err := l.Patch([]byte(`{"b": false}`), ""); return err },
	}
	for i, op := range ops {
		if err := op(); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
		snapshots = append(snapshots, load(t, l).History)
	}
	final := snapshots[len(snapshots)-1]
	if len(final) != len(ops)+1 {
		t.Errorf("history has %d entries, want %d", len(final), len(ops)+1)
	}
	for i, snap := range snapshots {
		if diff := cmp.Diff(snap, final[:len(snap)]); diff != "" {
			t.Errorf("snapshot %d altered (-then +now):\n%s", i, diff)
		}
	}
}

func TestRemoveAbsent(t *testing.T) {
	l, out := newTestLog(t)
	if _, err := l.UpdateMap(map[string]any{"a": 1}, ""); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(l.Path())
	out.Reset()
	sum, err := l.Remove("zz", "msg")
	if err != nil {
		t.Fatal(err)
	}
	if sum.Found || sum.Changed {
		t.Errorf("summary %+v", sum)
	}
	if sum.Narrative != "no such key zz" {
		t.Errorf("narrative %q", sum.Narrative)
	}
	after, _ := os.ReadFile(l.Path())
	if !bytes.Equal(before, after) {
		t.Error("log changed by removing an absent key")
	}
	if got := out.String(); got != "no such key zz\n" {
		t.Errorf("output %q", got)
	}
}

func TestRemoveWithMessage(t *testing.T) {
	l, _ := newTestLog(t)
	if _, err := l.UpdateMap(map[string]any{"k": map[string]any{"x": 1}}, ""); err != nil {
		t.Fatal(err)
	}
	sum, err := l.Remove("k", "cleanup")
	if err != nil {
		t.Fatal(err)
	}
	if want := `cleanup; popped key k storing: {"x":1}`; sum.Narrative != want {
		t.Errorf("narrative %q, want %q", sum.Narrative, want)
	}
}

func TestReservedKey(t *testing.T) {
	l, _ := newTestLog(t)
	_, err := l.UpdateMap(map[string]any{"history": 1}, "")
	if !errors.Is(err, doc.ErrReservedKey) {
		t.Errorf("Update(history) = %v, want %v", err, doc.ErrReservedKey)
	}
	if _, err := os.Stat(l.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("rejected update created the log: %v", err)
	}
}

func TestCorruptLog(t *testing.T) {
	l, _ := newTestLog(t)
	if err := os.WriteFile(l.Path(), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := l.UpdateMap(map[string]any{"a": 1}, "")
	var ce *storage.CorruptStoreError
	if !errors.As(err, &ce) {
		t.Fatalf("Update() = %v, want *CorruptStoreError", err)
	}
	got, _ := os.ReadFile(l.Path())
	if string(got) != "not json" {
		t.Errorf("corrupt log modified: %q", got)
	}
}

func TestPatch(t *testing.T) {
	l, _ := newTestLog(t)
	if _, err := l.UpdateMap(map[string]any{"a": 1, "b": 2}, ""); err != nil {
		t.Fatal(err)
	}

	sum, err := l.Patch([]byte(`[
  {"op": "add", "path": "/c", "value": 3},
  {"op": "remove", "path": "/a"}
]`), "rfc6902")
	if err != nil {
		t.Fatal(err)
	}
	if want := "rfc6902; removed a; added c"; sum.Narrative != want {
		t.Errorf("narrative %q, want %q", sum.Narrative, want)
	}
	if diff := cmp.Diff([]string{"b", "c"}, load(t, l).Fields.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	sum, err = l.Patch([]byte(`{"b": null, "d": {"x": 1}}`), "")
	if err != nil {
		t.Fatal(err)
	}
	if want := "removed b; added d"; sum.Narrative != want {
		t.Errorf("narrative %q, want %q", sum.Narrative, want)
	}

	sum, err = l.Patch([]byte(`{"c": 3}`), "")
	if err != nil {
		t.Fatal(err)
	}
	if sum.Changed {
		t.Errorf("idempotent patch recorded %q", sum.Narrative)
	}

	before, _ := os.ReadFile(l.Path())
	if _, err := l.Patch([]byte(`{"history": []}`), ""); !errors.Is(err, doc.ErrReservedKey) {
		t.Errorf("Patch(history) = %v, want %v", err, doc.ErrReservedKey)
	}
	if _, err := l.Patch([]byte(`[{"op": "test", "path": "/c", "value": 99}]`), ""); err == nil {
		t.Error("expected failed test op")
	}
	after, _ := os.ReadFile(l.Path())
	if !bytes.Equal(before, after) {
		t.Error("failed patches changed the log")
	}
}

func TestEval(t *testing.T) {
	l, _ := newTestLog(t)
	if _, err := l.UpdateMap(map[string]any{"a": 2, "b": 3.5, "name": "run"}, ""); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		src  string
		want any
	}{
		{`a * 2`, 4},
		{`a + b`, 5.5},
		{`name + "-1"`, "run-1"},
		{`has("a") && !has("zz")`, true},
	}
	for _, tt := range tests {
		got, err := l.Eval(tt.src)
		if err != nil {
			t.Errorf("Eval(%q): %v", tt.src, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Eval(%q) mismatch (-want +got):\n%s", tt.src, diff)
		}
	}
	if _, err := l.Eval(`nope +`); err == nil {
		t.Error("expected compile error")
	}
}

func TestIndependentLogs(t *testing.T) {
	dir := t.TempDir()
	a := New(WithPath(filepath.Join(dir, "a.json")), WithLogger(quiet))
	b := New(WithPath(filepath.Join(dir, "b.json")), WithLogger(quiet))
	if _, err := a.UpdateMap(map[string]any{"x": 1}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := b.UpdateMap(map[string]any{"y": 1}, ""); err != nil {
		t.Fatal(err)
	}
	if load(t, a).Fields.Has("y") || load(t, b).Fields.Has("x") {
		t.Error("logs interfere")
	}
	if New().Path() != DefaultPath {
		t.Errorf("default path %q", New().Path())
	}
}

func TestMutationsKeepHistoryPosition(t *testing.T) {
	const orig = `{
  "a": 1,
  "b": 2,
  "history": [
    ["2024-03-01T09-00-00", "created"]
  ],
  "c": 3
}
`
	tests := []struct {
		name string
		op   func(l *Log) error
		want []string
	}{
		{
			name: "remove",
			op:   func(l *Log) error { _, err := l.Remove("a", ""); return err },
			want: []string{"b", "history", "c"},
		},
		{
			name: "patch",
			op:   func(l *Log) error { _, err := l.Patch([]byte(`{"a": null, "d": 4}`), ""); return err },
			want: []string{"b", "history", "c", "d"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLog(t)
			if err := os.WriteFile(l.Path(), []byte(orig), 0644); err != nil {
				t.Fatal(err)
			}
			if err := tt.op(l); err != nil {
				t.Fatal(err)
			}
			data, err := os.ReadFile(l.Path())
			if err != nil {
				t.Fatal(err)
			}
			top, err := doc.DecodeValue(data)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, top.(*doc.Fields).Keys()); diff != "" {
				t.Errorf("top level keys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
