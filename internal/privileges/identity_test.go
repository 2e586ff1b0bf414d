package privileges_test

import (
	"errors"
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"sidewinderd/internal/privileges"
)

func TestResolveIdentityCurrentUser(t *testing.T) {
	current, err := user.Current()
	if err != nil {
		t.Skipf("no current user: %v", err)
	}

	id, err := privileges.ResolveIdentity(current.Username)
	if err != nil {
		t.Fatalf("ResolveIdentity: %v", err)
	}
	if id.Username != current.Username {
		t.Errorf("username: got %q want %q", id.Username, current.Username)
	}
	if id.Home != current.HomeDir {
		t.Errorf("home: got %q want %q", id.Home, current.HomeDir)
	}
	if id.UID < 0 || id.GID < 0 {
		t.Errorf("implausible ids: uid=%d gid=%d", id.UID, id.GID)
	}
}

func TestResolveIdentityUnknownUser(t *testing.T) {
	_, err := privileges.ResolveIdentity("sidewinderd-no-such-user-84f2")
	if !errors.Is(err, privileges.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestWorkdirPath(t *testing.T) {
	id := privileges.Identity{Home: "/home/gamer"}

	if got := id.WorkdirPath(""); got != filepath.Join("/home/gamer", ".sidewinderd") {
		t.Errorf("fallback path: %q", got)
	}
	if got := id.WorkdirPath("/home/gamer/.local/share"); got != filepath.Join("/home/gamer", ".local", "share", "sidewinderd") {
		t.Errorf("xdg path: %q", got)
	}
}

func TestPrepareWorkdirIsIdempotent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", "")
	chdir(t, home)

	id := privileges.Identity{Home: home}

	first, err := privileges.PrepareWorkdir(id)
	if err != nil {
		t.Fatalf("first PrepareWorkdir: %v", err)
	}
	infoFirst, err := os.Stat(first)
	if err != nil {
		t.Fatalf("stat workdir: %v", err)
	}

	second, err := privileges.PrepareWorkdir(id)
	if err != nil {
		t.Fatalf("second PrepareWorkdir: %v", err)
	}
	if first != second {
		t.Fatalf("paths differ: %q vs %q", first, second)
	}

	infoSecond, err := os.Stat(second)
	if err != nil {
		t.Fatalf("stat workdir again: %v", err)
	}
	if infoFirst.Mode() != infoSecond.Mode() {
		t.Errorf("mode changed between calls: %v vs %v", infoFirst.Mode(), infoSecond.Mode())
	}
	if infoFirst.Mode().Perm() != 0o700 {
		t.Errorf("workdir permissions: got %v want 0700", infoFirst.Mode().Perm())
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if cwd != first {
		t.Errorf("cwd: got %q want %q", cwd, first)
	}
}

func TestPrepareWorkdirHonorsXDGDataHome(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	chdir(t, data)

	dir, err := privileges.PrepareWorkdir(privileges.Identity{Home: "/nonexistent"})
	if err != nil {
		t.Fatalf("PrepareWorkdir: %v", err)
	}
	if dir != filepath.Join(data, "sidewinderd") {
		t.Errorf("workdir: got %q", dir)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring the previous one on cleanup (t.Chdir needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restore cwd: %v", err)
		}
	})
}
