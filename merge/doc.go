// Package merge computes change records between field sets.
//
// # Usage
//
//	// Apply updates in place and collect what changed
//	changes := merge.Merge(current, updates)
//
//	// Compare two field sets without mutating either
//	changes := merge.Diff(from, to)
//
//	// Render changes for a history note
//	note := merge.WithMessage(msg, merge.Narrative(changes, verbose))
//
// Compact narratives name the keys only ("added a; updated b"), verbose ones
// include the values ("added a (1); updated b -> 2").
package merge
