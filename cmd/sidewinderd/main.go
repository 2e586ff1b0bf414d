package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"sidewinderd/internal/instance"
	"sidewinderd/internal/privileges"
)

// Bootstrap failure kinds map to distinct exit statuses so service managers
// can tell them apart.
const (
	exitFailure     = 1
	exitLockHeld    = 2
	exitLockIO      = 3
	exitUnknownUser = 4
	exitDropRefused = 5
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, instance.ErrAlreadyRunning):
		return exitLockHeld
	case errors.Is(err, instance.ErrIO):
		return exitLockIO
	case errors.Is(err, privileges.ErrUnknownUser):
		return exitUnknownUser
	case errors.Is(err, privileges.ErrPermission):
		return exitDropRefused
	default:
		return exitFailure
	}
}
