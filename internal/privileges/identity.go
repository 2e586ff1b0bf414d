package privileges

import (
	"errors"
	"fmt"
	"os/user"
	"path/filepath"
	"strconv"
)

// ErrUnknownUser reports that the configured user is absent from the identity
// database.
var ErrUnknownUser = errors.New("user not present in identity database")

// Identity is the resolved unprivileged account the daemon runs as. It is
// built once after configuration load and immutable afterward.
type Identity struct {
	Username string
	UID      int
	GID      int
	Home     string
}

// ResolveIdentity looks up uid, gid, and home directory for the named user.
func ResolveIdentity(username string) (Identity, error) {
	u, err := user.Lookup(username)
	if err != nil {
		var unknown user.UnknownUserError
		if errors.As(err, &unknown) {
			return Identity{}, fmt.Errorf("%w: %q", ErrUnknownUser, username)
		}
		return Identity{}, fmt.Errorf("lookup user %q: %w", username, err)
	}

	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return Identity{}, fmt.Errorf("user %q: parse uid %q: %w", username, u.Uid, err)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return Identity{}, fmt.Errorf("user %q: parse gid %q: %w", username, u.Gid, err)
	}

	return Identity{Username: username, UID: uid, GID: gid, Home: u.HomeDir}, nil
}

// WorkdirPath derives the per-user data directory: $XDG_DATA_HOME/sidewinderd
// when the environment provides it, <home>/.sidewinderd otherwise.
func (id Identity) WorkdirPath(xdgDataHome string) string {
	if xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "sidewinderd")
	}
	return filepath.Join(id.Home, ".sidewinderd")
}
