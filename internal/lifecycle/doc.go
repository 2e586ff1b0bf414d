// Package lifecycle drives the daemon from bootstrap through the capture
// loop to shutdown.
//
// The bootstrap sequence is linear: configuration, PID lock, privilege drop,
// working directory, signal gate, capture source. Any fatal failure after the
// lock is taken releases it before returning, so no partial daemon is left
// behind. The loop itself is single-threaded; the only concurrency is signal
// delivery, funneled through the Gate.
package lifecycle
