// Package animation drives a typewriter sequence at a fixed cadence.
//
// An [Animator] owns one [typewriter.Sequence] and the record it last
// published. Three cadences act on it:
//
//   - every TickInterval, [Animator.Tick] pulls ElementsPerTick steps and
//     publishes only the last one;
//   - every ResetInterval, [Animator.Reset] throws the sequence away and starts
//     a fresh one from the original start record;
//   - every FillInterval, [Animator.Fill] applies the next autofill step to
//     the published record.
//
// When a batch runs out before it is complete, the animator publishes the
// literal target and stops pulling until the next reset. The sequence always
// converges to the target, so this only guards against a final snapshot that
// differs from it.
//
// # Ownership
//
// An Animator is not safe for concurrent use. Drive it from one goroutine:
// either [Animator.Run], which serves all three cadences from a single select
// loop, or an event loop that calls Tick, Reset and Fill itself (the terminal
// preview does this with bubbletea tick messages).
//
// # Failures
//
// A panic inside Tick, Reset or Fill is recovered and logged; the animator
// then publishes the target and enters [StateCompleted], so the next reset
// starts over cleanly.
package animation
