package privileges

import (
	"fmt"
	"os"
)

// PrepareWorkdir creates the per-user working directory for the identity and
// makes it the process working directory. Both steps are safe to repeat: an
// existing directory is fine and the chdir is absolute. Runs after DropTo so
// the directory is owned by the unprivileged user.
func PrepareWorkdir(id Identity) (string, error) {
	dir := id.WorkdirPath(os.Getenv("XDG_DATA_HOME"))

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return dir, fmt.Errorf("create workdir %s: %w", dir, err)
	}
	if err := os.Chdir(dir); err != nil {
		return dir, fmt.Errorf("enter workdir %s: %w", dir, err)
	}
	return dir, nil
}
