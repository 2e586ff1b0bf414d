// Package privileges resolves the daemon's target identity and performs the
// ordered de-escalation from root to that identity.
//
// The PID file may live under a root-only path, so the caller must finish all
// elevated work before DropTo; conversely nothing under the user's home is
// touched until after the drop, so the elevated identity never owns
// user-scoped files.
package privileges
