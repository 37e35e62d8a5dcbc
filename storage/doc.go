// Package storage loads notelog documents from disk and writes them back.
//
// There is no caching: every Load reads the file afresh, and every Write
// replaces it completely through dfile.Write. A Store assumes it is the only
// writer of its path for the duration of an operation; no file locking is
// done.
//
// # Related Packages
//
//   - github.com/signadot/notelog/storage/dfile - the atomic writer
//   - github.com/signadot/notelog/doc - the document model
package storage
