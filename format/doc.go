// Package format encodes notelog documents and values for display.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	err = format.EncodeDocument(os.Stdout, d, f)
//
// JSON output is the on disk encoding. YAML output keeps the key order of
// the document, including the position of the history.
package format
