// Package instance enforces single-instance execution through an advisory
// lock on the daemon PID file.
//
// Exclusivity comes from the lock primitive, not from file presence: if the
// process dies without releasing, the kernel drops the lock and only the
// stale file remains, so the next acquire still succeeds.
package instance
