// Package typewriter turns a start record into a target record one character
// at a time.
//
// # Overview
//
// [New] returns a [Sequence]: a lazy, single-pass source of snapshots that
// grows a private working copy of start until it matches target. Every step
// either extends one text value by one character or finishes a structural
// change, and every pulled snapshot is a deep copy of the whole top-level
// record, regardless of how deep the change happened:
//
//	seq := typewriter.New(
//	    record.Of("a", ""),
//	    record.Of("a", "abc"),
//	)
//	seq.Next() // {"a":"a"}
//	seq.Next() // {"a":"ab"}
//	seq.Next() // {"a":"abc"}
//	seq.Next() // nil, false
//
// # Traversal Order
//
// Keys are visited in the key order of target, depth first. Lists are grown
// by appending an empty placeholder ("" for text, {} for records) and then
// filling it in, so an element is visibly under construction before the next
// one starts. Text grows through every prefix of the target string.
//
// # Shapes
//
// start and target are expected to have the same shape (see
// [record.SameShape]). The sequence does not check it: a key whose working
// value has a different kind than its target is skipped, and lists longer
// than their target are left alone. The sequence never panics on such input.
//
// # Batching
//
// [Sequence.Pull] advances several steps at once and copies only the last
// snapshot, which is what a fixed-rate consumer needs.
package typewriter
