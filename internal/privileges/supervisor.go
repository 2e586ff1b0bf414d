package privileges

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrPermission reports the kernel refused an effective-id change.
var ErrPermission = errors.New("privilege drop refused")

// effectiveIDs abstracts the two syscalls involved in the drop so their
// ordering stays observable in tests.
type effectiveIDs interface {
	Setegid(gid int) error
	Seteuid(uid int) error
}

type unixEffectiveIDs struct{}

func (unixEffectiveIDs) Setegid(gid int) error { return syscall.Setegid(gid) }
func (unixEffectiveIDs) Seteuid(uid int) error { return syscall.Seteuid(uid) }

// Supervisor performs ordered privilege de-escalation to a resolved identity
// and can briefly restore the elevated user id for callers that must touch
// root-owned paths after the drop.
type Supervisor struct {
	sys     effectiveIDs
	target  Identity
	dropped bool
}

// NewSupervisor returns a Supervisor backed by the real syscalls.
func NewSupervisor() *Supervisor {
	return &Supervisor{sys: unixEffectiveIDs{}}
}

// DropTo lowers the effective group id and then the effective user id to the
// target identity. The group must drop first: once the user id is lowered the
// process may no longer be permitted to change its group.
func (s *Supervisor) DropTo(id Identity) error {
	if err := s.sys.Setegid(id.GID); err != nil {
		return fmt.Errorf("%w: setegid %d: %w", ErrPermission, id.GID, err)
	}
	if err := s.sys.Seteuid(id.UID); err != nil {
		return fmt.Errorf("%w: seteuid %d: %w", ErrPermission, id.UID, err)
	}
	s.target = id
	s.dropped = true
	return nil
}

// Elevate temporarily restores the elevated effective user id. A no-op before
// DropTo has run.
func (s *Supervisor) Elevate() error {
	if !s.dropped {
		return nil
	}
	if err := s.sys.Seteuid(0); err != nil {
		return fmt.Errorf("%w: seteuid 0: %w", ErrPermission, err)
	}
	return nil
}

// Lower re-drops the effective user id to the target after Elevate.
func (s *Supervisor) Lower() error {
	if !s.dropped {
		return nil
	}
	if err := s.sys.Seteuid(s.target.UID); err != nil {
		return fmt.Errorf("%w: seteuid %d: %w", ErrPermission, s.target.UID, err)
	}
	return nil
}
