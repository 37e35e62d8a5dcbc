// Package doc provides the document model for notelog files.
//
// A Document is a set of ordered user fields plus an append-only history of
// timestamped notes. On disk the two are joined into a single JSON object in
// which the reserved key "history" holds the audit trail:
//
//	{
//	  "history": [
//	    ["2024-03-01T10-00-00", "created"],
//	    ["2024-03-01T10-00-05", "added a"]
//	  ],
//	  "a": 1
//	}
//
// In memory the user fields and the history are kept apart so that a user key
// can never collide with the reserved name.
//
// # Values
//
// Field values are normalized to the JSON value set: nil, bool, json.Number,
// string, []any and *Fields. Nested objects are *Fields as well so that their
// key order survives a load/write cycle.
//
// # Related Packages
//
//   - github.com/signadot/notelog/merge - change records between field sets
//   - github.com/signadot/notelog/storage - loading documents from disk
package doc
