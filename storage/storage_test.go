package storage

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/notelog/doc"
)

var (
	quiet = slog.New(slog.NewTextHandler(io.Discard, nil))
	t0    = time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
)

func fixedClock() time.Time { return t0 }

func TestLoadCreates(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "notes.json")
	s := New(p, quiet, fixedClock)
	d, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := []doc.HistoryEntry{{Timestamp: "2024-03-01T10-00-00", Note: doc.CreatedNote}}
	if diff := cmp.Diff(want, d.History); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if d.Fields.Len() != 0 {
		t.Errorf("expected no fields, got %v", d.Fields.Keys())
	}
	onDisk, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("new log not persisted: %v", err)
	}
	created, _ := d.Bytes()
	if !bytes.Equal(onDisk, created) {
		t.Errorf("on disk %s, want %s", onDisk, created)
	}

	// a second load reads rather than recreates
	again, err := New(p, quiet, func() time.Time { return t0.Add(time.Hour) }).Load()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, again.History); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "a: 1\n"},
		{name: "not object", content: "[1, 2]"},
		{name: "bad history", content: `{"history": {"x": 1}}`},
		{name: "empty", content: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "notes.json")
			if err := os.WriteFile(p, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := New(p, quiet, fixedClock).Load()
			var ce *CorruptStoreError
			if !errors.As(err, &ce) {
				t.Fatalf("Load() = %v, want *CorruptStoreError", err)
			}
			if ce.Path != p {
				t.Errorf("Path = %q, want %q", ce.Path, p)
			}
			got, _ := os.ReadFile(p)
			if string(got) != tt.content {
				t.Errorf("corrupt file was modified: %q", got)
			}
		})
	}
}

func TestRoundTripThroughStore(t *testing.T) {
	p := filepath.Join(t.TempDir(), "notes.json")
	in := `{
  "b": [1, {"z": 1, "y": 2}],
  "history": [
    ["2024-03-01T10-00-00", "created"],
    ["2024-03-01T10-00-01", "added b; added a"]
  ],
  "a": "text"
}`
	if err := os.WriteFile(p, []byte(in), 0644); err != nil {
		t.Fatal(err)
	}
	s := New(p, quiet, fixedClock)
	first, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Write(first); err != nil {
		t.Fatal(err)
	}
	second, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	a, _ := first.Bytes()
	b, _ := second.Bytes()
	if diff := cmp.Diff(string(a), string(b)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "a"}, second.Fields.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}
