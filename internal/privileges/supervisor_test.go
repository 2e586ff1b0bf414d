package privileges

import (
	"errors"
	"testing"
)

type recordingIDs struct {
	calls   []string
	egidErr error
	euidErr error
}

func (r *recordingIDs) Setegid(gid int) error {
	r.calls = append(r.calls, "setegid")
	return r.egidErr
}

func (r *recordingIDs) Seteuid(uid int) error {
	r.calls = append(r.calls, "seteuid")
	return r.euidErr
}

func TestDropToSetsGroupBeforeUser(t *testing.T) {
	rec := &recordingIDs{}
	s := &Supervisor{sys: rec}

	if err := s.DropTo(Identity{UID: 1000, GID: 1000}); err != nil {
		t.Fatalf("DropTo: %v", err)
	}

	if len(rec.calls) != 2 || rec.calls[0] != "setegid" || rec.calls[1] != "seteuid" {
		t.Fatalf("unexpected syscall order: %v", rec.calls)
	}
}

func TestDropToRefusedGroupChangeIsPermissionError(t *testing.T) {
	rec := &recordingIDs{egidErr: errors.New("operation not permitted")}
	s := &Supervisor{sys: rec}

	err := s.DropTo(Identity{UID: 1000, GID: 1000})
	if !errors.Is(err, ErrPermission) {
		t.Fatalf("expected ErrPermission, got %v", err)
	}
	// The user id must not change after the group change was refused.
	if len(rec.calls) != 1 {
		t.Fatalf("unexpected syscalls after refused setegid: %v", rec.calls)
	}
}

func TestDropToRefusedUserChangeIsPermissionError(t *testing.T) {
	rec := &recordingIDs{euidErr: errors.New("operation not permitted")}
	s := &Supervisor{sys: rec}

	err := s.DropTo(Identity{UID: 1000, GID: 1000})
	if !errors.Is(err, ErrPermission) {
		t.Fatalf("expected ErrPermission, got %v", err)
	}
}

func TestElevateAndLowerBeforeDropAreNoops(t *testing.T) {
	rec := &recordingIDs{}
	s := &Supervisor{sys: rec}

	if err := s.Elevate(); err != nil {
		t.Fatalf("Elevate: %v", err)
	}
	if err := s.Lower(); err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if len(rec.calls) != 0 {
		t.Fatalf("expected no syscalls before DropTo, got %v", rec.calls)
	}
}

func TestElevateAndLowerToggleEffectiveUser(t *testing.T) {
	rec := &recordingIDs{}
	s := &Supervisor{sys: rec}

	if err := s.DropTo(Identity{UID: 1000, GID: 1000}); err != nil {
		t.Fatalf("DropTo: %v", err)
	}
	if err := s.Elevate(); err != nil {
		t.Fatalf("Elevate: %v", err)
	}
	if err := s.Lower(); err != nil {
		t.Fatalf("Lower: %v", err)
	}

	want := []string{"setegid", "seteuid", "seteuid", "seteuid"}
	if len(rec.calls) != len(want) {
		t.Fatalf("unexpected syscalls: %v", rec.calls)
	}
	for i, call := range want {
		if rec.calls[i] != call {
			t.Fatalf("call %d: got %s want %s (%v)", i, rec.calls[i], call, rec.calls)
		}
	}
}
