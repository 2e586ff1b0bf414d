package device

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pilebones/go-udev/netlink"

	"sidewinderd/internal/config"
	"sidewinderd/internal/logging"
	"sidewinderd/internal/privileges"
)

// Monitor subscribes to udev hidraw events and records attach/detach of
// supported keyboards, one event per capture-loop iteration.
type Monitor struct {
	profile       int
	captureDelays bool
	logger        *slog.Logger
	sysfs         string

	conn   *netlink.UEventConn
	events chan netlink.UEvent
	errs   chan error
	quit   chan struct{}
}

// NewMonitor connects to the udev netlink socket and starts buffering
// matched events. The daemon cannot observe its device without this socket,
// so a connect failure is returned rather than degraded around.
func NewMonitor(cfg *config.Config, id privileges.Identity, logger *slog.Logger) (*Monitor, error) {
	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return nil, fmt.Errorf("connect udev netlink socket: %w", err)
	}

	m := &Monitor{
		profile:       cfg.Profile,
		captureDelays: cfg.CaptureDelays,
		logger:        logging.NewComponentLogger(logger, "device-monitor"),
		sysfs:         "/sys",
		conn:          conn,
		events:        make(chan netlink.UEvent),
		errs:          make(chan error),
	}
	m.quit = conn.Monitor(m.events, m.errs, buildMatcher())

	m.logger.Info("udev monitor started",
		logging.String("user", id.Username),
		logging.Int("profile", m.profile),
	)
	return m, nil
}

// ProcessNextInput blocks until the next hidraw event arrives or ctx is
// cancelled, then handles it.
func (m *Monitor) ProcessNextInput(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-m.errs:
		return fmt.Errorf("udev monitor: %w", err)
	case ev := <-m.events:
		m.handleEvent(ev)
		return nil
	}
}

// Close shuts down the netlink subscription.
func (m *Monitor) Close() error {
	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}
	if m.conn != nil {
		err := m.conn.Close()
		m.conn = nil
		return err
	}
	return nil
}

// buildMatcher selects hidraw add/remove events.
func buildMatcher() netlink.Matcher {
	action := "add|remove"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "hidraw",
		},
	})
	return rules
}

func (m *Monitor) handleEvent(ev netlink.UEvent) {
	devname := ev.Env["DEVNAME"]
	if devname == "" {
		m.logger.Debug("ignoring event without device node",
			logging.String("action", string(ev.Action)),
			logging.String("kobj", ev.KObj),
		)
		return
	}

	switch ev.Action {
	case netlink.ADD:
		model, ok := m.lookupModel(ev.Env["DEVPATH"])
		if !ok {
			m.logger.Debug("ignoring unsupported hidraw device",
				logging.String(logging.FieldDevice, devname),
			)
			return
		}
		m.logger.Info("keyboard attached",
			logging.String(logging.FieldDevice, devname),
			logging.String("model", model.Name),
			logging.Int("profile", m.profile),
			logging.Bool("capture_delays", m.captureDelays),
		)
	case netlink.REMOVE:
		// Sysfs is already gone for removals, so no model lookup.
		m.logger.Info("hidraw device detached",
			logging.String(logging.FieldDevice, devname),
		)
	default:
		m.logger.Debug("ignoring hidraw event",
			logging.String("action", string(ev.Action)),
			logging.String(logging.FieldDevice, devname),
		)
	}
}

// lookupModel resolves the HID parent of a hidraw node via sysfs and matches
// its HID_ID against the supported models. devpath looks like
// /devices/.../0003:045E:0768.0001/hidraw/hidraw0; the uevent two levels up
// carries HID_ID.
func (m *Monitor) lookupModel(devpath string) (Model, bool) {
	if devpath == "" {
		return Model{}, false
	}

	ueventPath := filepath.Join(m.sysfs, devpath, "..", "..", "uevent")
	data, err := os.ReadFile(ueventPath)
	if err != nil {
		m.logger.Debug("hid uevent unreadable",
			logging.Error(err),
			logging.String("path", ueventPath),
		)
		return Model{}, false
	}

	for _, line := range strings.Split(string(data), "\n") {
		if hid, ok := strings.CutPrefix(line, "HID_ID="); ok {
			return modelForHID(hid)
		}
	}
	return Model{}, false
}
