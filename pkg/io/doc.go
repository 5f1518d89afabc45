// Package io reads and writes record files.
//
// # Overview
//
// Records are stored as YAML or JSON. Both are decoded through the same
// YAML node tree, so key order in the file becomes the key order of the
// [record.Record], which is the order the typewriter walks.
//
// # Pair Files
//
// A pair file holds the two records an animation runs between, plus an
// optional autofill list:
//
//	start:
//	  profile: {name: "", email: ""}
//	target:
//	  profile: {name: "Frans Mattsson", email: "frans@example.com"}
//	autofill:
//	  - path: profile.name
//	    value: "Frans Mattsson"
//	  - path: skills
//	    guard: skills.featuredSkills
//	    value: {featuredSkills: [], categories: []}
//
// Only strings, lists and mappings are accepted. Numbers, booleans and null
// are rejected with [apperr.ErrCodeUnsupportedKind] and the path of the
// offending value; quote them ("4") to store them as text.
//
// # Import
//
// Use [ImportPair] or [ImportRecord] to read a file by path, or [ReadPair] and
// [ReadRecord] to read from any io.Reader:
//
//	pair, err := io.ImportPair("resume.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
// Use [ExportJSON] to write a record to a file, or [WriteJSON] to write to any
// io.Writer. Key order is preserved, so an exported record can be re-imported
// and animated identically.
//
// [apperr.ErrCodeUnsupportedKind]: github.com/matzehuels/autotype/pkg/errors.ErrCodeUnsupportedKind
package io
