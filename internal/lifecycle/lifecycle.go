package lifecycle

import (
	"context"
	"errors"
	"log/slog"

	"sidewinderd/internal/config"
	"sidewinderd/internal/instance"
	"sidewinderd/internal/logging"
	"sidewinderd/internal/privileges"
)

// Source is the device-facing collaborator the capture loop delegates to.
// Each call blocks until one unit of input has been processed. Prompt
// shutdown relies on the implementation honoring ctx cancellation or
// blocking boundedly; the loop itself only reevaluates the gate between
// calls.
type Source interface {
	ProcessNextInput(ctx context.Context) error
}

// SourceFactory builds the capture collaborator once bootstrap has produced
// the final configuration and identity.
type SourceFactory func(cfg *config.Config, id privileges.Identity, logger *slog.Logger) (Source, error)

// Daemon owns the bootstrap sequence and the capture loop.
type Daemon struct {
	configPath string
	logger     *slog.Logger
	supervisor *privileges.Supervisor
	newSource  SourceFactory
}

// New assembles a daemon reading its configuration from configPath.
func New(configPath string, logger *slog.Logger, factory SourceFactory) *Daemon {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Daemon{
		configPath: configPath,
		logger:     logger,
		supervisor: privileges.NewSupervisor(),
		newSource:  factory,
	}
}

// Run drives the daemon from bootstrap through the capture loop. Recoverable
// bootstrap problems are logged and bootstrap continues on defaults; fatal
// ones are returned after releasing whatever was already acquired, notably
// the PID lock.
func (d *Daemon) Run(ctx context.Context) error {
	if d.newSource == nil {
		return errors.New("capture source factory is required")
	}

	cfg, err := config.Load(d.configPath)
	if err != nil {
		d.logger.Warn("configuration unavailable, continuing with defaults",
			logging.Error(err),
			logging.String("path", d.configPath),
		)
	}
	if cfg.EnsureDefaults() {
		if err := cfg.Save(d.configPath); err != nil {
			d.logger.Warn("unable to rewrite configuration", logging.Error(err))
		}
	}

	// The PID file may live under a root-only path, so it is created before
	// the privilege drop.
	lock, err := instance.Acquire(cfg.PIDFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			d.logger.Warn("release pid file", logging.Error(err))
		}
	}()
	d.logger.Info("pid file locked", logging.String("path", lock.Path()))

	id, err := privileges.ResolveIdentity(cfg.User)
	if err != nil {
		return err
	}
	if err := d.supervisor.DropTo(id); err != nil {
		return err
	}
	d.logger.Info("privileges dropped",
		logging.String("user", id.Username),
		logging.Int("uid", id.UID),
		logging.Int("gid", id.GID),
	)

	// Nothing under the user's home is touched before the drop, so the user
	// owns everything in there.
	if dir, err := privileges.PrepareWorkdir(id); err != nil {
		d.logger.Warn("working directory unavailable, staying put",
			logging.Error(err),
			logging.String("dir", dir),
		)
	} else {
		d.logger.Info("working directory ready", logging.String("dir", dir))
	}

	gate := InstallGate(ctx)
	defer gate.Stop()

	source, err := d.newSource(cfg, id, d.logger)
	if err != nil {
		return err
	}
	if closer, ok := source.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	d.logger.Info("entering capture loop",
		logging.Int("profile", cfg.Profile),
		logging.Bool("capture_delays", cfg.CaptureDelays),
	)
	for gate.Running() {
		if err := source.ProcessNextInput(gate.Context()); err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			d.logger.Warn("input iteration failed", logging.Error(err))
		}
	}

	d.logger.Info("shutting down")
	return nil
}
