// Package record provides the structured record model animated by autotype.
//
// # Overview
//
// A [Record] is an ordered mapping from string keys to values. Every value is
// one of three kinds:
//
//   - [Text]: a string
//   - [*List]: an ordered sequence of values
//   - [*Record]: a nested record
//
// [Value] is a sealed interface, so a type switch over these three types is
// exhaustive. Numbers, booleans and nulls cannot be represented; decoders in
// [github.com/matzehuels/autotype/pkg/io] reject them instead of coercing.
//
// # Key Order
//
// Records remember insertion order. Decoded records keep the order of the
// source document, and the typewriter walks keys in that order, so the order
// in which fields appear on screen is the order they are written in the file.
//
// # Copies
//
// [Clone] and [CloneRecord] produce deep, independent copies. Snapshots handed
// out by the typewriter are always clones: mutating one never affects another
// snapshot or the records it was derived from.
//
// # Paths
//
// [Lookup] and [SetPath] address nested record fields with dot-separated
// paths such as "profile.name" or "skills.featuredSkills". Paths only descend
// through records, never into list elements.
package record
