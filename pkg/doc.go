// Package pkg provides the core libraries for autotype.
//
// # Overview
//
// Autotype grows a start record into a target record one character at a
// time and publishes every intermediate snapshot, so a document appears to
// type itself. The pkg directory is organized into four areas:
//
//  1. [record] and [typewriter] - the data model and the snapshot sequence
//  2. [animation] and [publish] - cadence and delivery of snapshots
//  3. [io], [resume] and [render] - reading pairs and presenting snapshots
//  4. [pipeline], [cache], [config], [errors] and [observability] - plumbing
//
// # Architecture
//
// The typical data flow:
//
//	pair file (YAML or JSON)
//	         ↓
//	    [io] package (start, target, autofill)
//	         ↓
//	    [typewriter] package (one snapshot per character)
//	         ↓
//	    [animation] package (batches on a ticker, resets, autofill)
//	         ↓
//	    [publish] package (hub for HTTP subscribers, Redis)
//	         ↓
//	    [render] package (markdown, terminal, JSON)
//
// # Quick Start
//
// Play a pair into a publisher:
//
//	pair, err := io.ImportPair("pair.yaml")
//	if err != nil {
//	    return err
//	}
//	anim := animation.New(pair.Start, pair.Target, animation.DefaultConfig(),
//	    animation.WithFiller(animation.NewFiller(pair.Autofill...)),
//	)
//	hub := publish.NewHub()
//	go anim.Run(ctx, hub)
//
// Walk the snapshot sequence directly:
//
//	seq := typewriter.New(pair.Start, pair.Target)
//	for snap := range seq.All() {
//	    fmt.Println(snap)
//	}
//
// # Main Packages
//
// [record] - Ordered records of text, lists and nested records, with path
// lookup, deep copy, equality and shape comparison.
//
// [typewriter] - The lazy snapshot sequence. Text grows through every prefix,
// lists grow by appending placeholders, keys follow the target's order.
//
// [animation] - Drives a sequence at a fixed cadence, restarts it on a reset
// interval and applies autofill steps.
//
// [publish] - Snapshot sinks: an in-process hub with bounded subscriber
// queues, and a Redis publisher under [publish/redis].
//
// [io] - Decoding of record and pair files, JSON export.
//
// [resume] - The resume shape the demo and the renderer use, and the
// embedded demo pair.
//
// [render] - Markdown layout and glamour terminal rendering.
//
// [pipeline] - Option validation and cached rendering shared by the CLI and
// the HTTP server.
//
// [cache] - Null, memory and file caches with scoped keys.
//
// [config] - The TOML configuration file.
//
// [errors] - Coded errors with user-facing messages.
//
// [observability] - Hook registries the metrics package plugs into.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/typewriter/...         # Specific package
//
// [record]: https://pkg.go.dev/github.com/matzehuels/autotype/pkg/record
// [typewriter]: https://pkg.go.dev/github.com/matzehuels/autotype/pkg/typewriter
// [animation]: https://pkg.go.dev/github.com/matzehuels/autotype/pkg/animation
// [publish]: https://pkg.go.dev/github.com/matzehuels/autotype/pkg/publish
// [publish/redis]: https://pkg.go.dev/github.com/matzehuels/autotype/pkg/publish/redis
// [io]: https://pkg.go.dev/github.com/matzehuels/autotype/pkg/io
// [resume]: https://pkg.go.dev/github.com/matzehuels/autotype/pkg/resume
// [render]: https://pkg.go.dev/github.com/matzehuels/autotype/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/autotype/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/autotype/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/autotype/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/autotype/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/autotype/pkg/observability
package pkg
