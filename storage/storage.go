package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/signadot/notelog/debug"
	"github.com/signadot/notelog/doc"
	"github.com/signadot/notelog/storage/dfile"
)

// CorruptStoreError reports a document file which exists but does not hold
// a JSON object of the expected shape.
type CorruptStoreError struct {
	Path string
	Err  error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("corrupt log %s: %v", e.Path, e.Err)
}

func (e *CorruptStoreError) Unwrap() error {
	return e.Err
}

// Store is the on disk ground truth for one document file.
type Store struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// New returns a Store for the document at path.
// If logger is nil, slog.Default() will be used; if now is nil, time.Now.
func New(path string, logger *slog.Logger, now func() time.Time) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Store{path: path, logger: logger, now: now}
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. When the file does not exist a new document
// holding only the "created" history entry is written and returned.
func (s *Store) Load() (*doc.Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.create()
	}
	if err != nil {
		return nil, fmt.Errorf("reading log %s: %w", s.path, err)
	}
	d, err := doc.Decode(data)
	if err != nil {
		return nil, &CorruptStoreError{Path: s.path, Err: err}
	}
	if debug.Store() {
		debug.Logf("loaded %s: %d fields, %d history entries\n", s.path, d.Fields.Len(), len(d.History))
	}
	return d, nil
}

func (s *Store) create() (*doc.Document, error) {
	s.logger.Info("log not found, starting a new log", "path", s.path)
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	d := doc.New(s.now())
	if err := s.Write(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Write persists d through the two phase protocol of dfile.Write.
func (s *Store) Write(d *doc.Document) error {
	if err := dfile.Write(s.path, d); err != nil {
		var wf *dfile.WriteFailure
		if errors.As(err, &wf) {
			s.logger.Error("write failed", "path", wf.Path, "tmp", wf.TempPath, "op", wf.Op, "error", wf.Err)
		}
		return err
	}
	return nil
}
