// Package config owns the daemon configuration file.
//
// The file is TOML with four recognized top-level keys; anything else in the
// document is carried through rewrites untouched. Loading never hard-fails:
// an unreadable or malformed file is reported to the caller for logging and
// the returned Config falls back to defaults, matching the daemon's
// best-effort bootstrap policy.
package config
