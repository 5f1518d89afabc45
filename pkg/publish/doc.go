// Package publish delivers animation snapshots to their consumers.
//
// A [Publisher] receives every snapshot the animation driver publishes. The
// driver calls it from a single goroutine; implementations that are read
// concurrently, such as [Hub], do their own locking.
//
// [Hub] keeps the latest snapshot as JSON and fans it out to live
// subscribers (the HTTP server streams them as server-sent events). Slow
// subscribers miss intermediate snapshots rather than block the driver; since
// every snapshot is a complete record, a subscriber is never left with a
// partial view. The redis subpackage mirrors snapshots to Redis for other
// processes.
package publish
