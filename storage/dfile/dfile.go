// Package dfile reads and atomically writes notelog document files.
//
// Write uses a two phase protocol. The document is first serialized into a
// sidecar file next to the target, named by TempPath, and synced to storage.
// Only once that succeeds is the sidecar renamed over the target. A failure
// in the first phase leaves the target untouched and the sidecar on disk for
// inspection; a failure of the rename leaves the target holding either the
// old or the new content, never a mix.
package dfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/signadot/notelog/debug"
	"github.com/signadot/notelog/doc"
)

// TempPrefix is prepended to the base name of a document to form its
// sidecar.
const TempPrefix = "tmp_"

// WriteFailure reports a failed write of Path. TempPath names the
// residual sidecar, if any.
type WriteFailure struct {
	Path     string
	TempPath string
	Op       string // serialize, create, write, sync, close or replace
	Err      error
}

func (e *WriteFailure) Error() string {
	return fmt.Sprintf("write %s failed during %s, see %s: %v", e.Path, e.Op, e.TempPath, e.Err)
}

func (e *WriteFailure) Unwrap() error {
	return e.Err
}

// TempPath returns the sidecar path used when writing p.
func TempPath(p string) string {
	dir, base := filepath.Split(p)
	return filepath.Join(dir, TempPrefix+base)
}

// Read reads and decodes the document at p.
func Read(p string) (*doc.Document, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	return doc.Decode(data)
}

// Write writes d to the sidecar of p and then renames the sidecar to p.
func Write(p string, d *doc.Document) error {
	tmpFile := TempPath(p)
	fail := func(op string, err error) error {
		return &WriteFailure{Path: p, TempPath: tmpFile, Op: op, Err: err}
	}
	data, err := d.Bytes()
	if err != nil {
		return fail("serialize", err)
	}
	if debug.Write() {
		debug.Logf("writing %d bytes to %s via %s\n", len(data), p, tmpFile)
	}
	// the replacement keeps the permissions of the file it replaces
	mode, keep := os.FileMode(0644), false
	if fi, err := os.Stat(p); err == nil {
		mode, keep = fi.Mode().Perm(), true
	}
	f, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return fail("create", err)
	}
	if keep {
		if err := f.Chmod(mode); err != nil {
			f.Close()
			return fail("create", err)
		}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fail("write", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fail("sync", err)
	}
	if err := f.Close(); err != nil {
		return fail("close", err)
	}

	// Atomic rename
	if err := os.Rename(tmpFile, p); err != nil {
		return fail("replace", err)
	}
	syncDir(filepath.Dir(p))
	return nil
}

// syncDir makes the rename durable where the platform allows it.
func syncDir(dir string) {
	f, err := os.Open(dir)
	if err != nil {
		return
	}
	defer f.Close()
	if err := f.Sync(); err != nil && debug.Write() {
		debug.Logf("sync of %s: %v\n", dir, err)
	}
}
