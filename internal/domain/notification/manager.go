package notification

import (
	"fmt"
	"log/slog"
	"strings"

	"folio/internal/clock"
	"folio/internal/common"
	"folio/internal/ui"

	"github.com/google/uuid"
)

// Manager shows transient notifications on a surface and removes them once
// they have faded. Its methods must be called from the event loop.
type Manager struct {
	surface ui.Surface
	clock   clock.Clock
	config  Config
	active  map[string]*Notification
	order   []string
}

// NewManager creates a notification manager.
func NewManager(surface ui.Surface, c clock.Clock, cfg Config) (*Manager, error) {
	def := DefaultConfig()
	if cfg.DisplayFor == 0 {
		cfg.DisplayFor = def.DisplayFor
	}
	if cfg.FadeFor == 0 {
		cfg.FadeFor = def.FadeFor
	}
	if cfg.Container == "" {
		cfg.Container = def.Container
	}
	if cfg.DisplayFor < 0 || cfg.FadeFor < 0 {
		return nil, common.NewValidationError("notification durations must not be negative")
	}

	return &Manager{
		surface: surface,
		clock:   c,
		config:  cfg,
		active:  make(map[string]*Notification),
	}, nil
}

// Show appends a notification for message and schedules its dismissal.
// Unknown severities are shown as SeverityInfo. A blank message is
// rejected with a ValidationError.
func (m *Manager) Show(message string, severity Severity) (*Notification, error) {
	if strings.TrimSpace(message) == "" {
		return nil, common.NewValidationError("notification message is required")
	}
	severity = severity.Normalize()

	n := &Notification{
		id:       "notification-" + uuid.NewString(),
		message:  message,
		severity: severity,
		state:    StateVisible,
		manager:  m,
	}
	n.createdAt = m.clock.Now()
	n.deadline = n.createdAt.Add(m.config.DisplayFor)

	if err := m.surface.Append(m.config.Container, n.element()); err != nil {
		return nil, fmt.Errorf("appending notification: %w", err)
	}

	unlisten, err := m.surface.Listen(n.closeSelector(), ui.EventClick, ui.ListenOptions{}, func(ui.Event) {
		n.Dismiss()
	})
	if err != nil {
		// The notification still times out on its own.
		slog.Warn("notification close control unavailable", "id", n.id, "error", err)
	} else {
		n.unlisten = unlisten
	}

	n.autoTimer = m.clock.AfterFunc(m.config.DisplayFor, func() {
		n.autoDismiss()
	})

	m.active[n.id] = n
	m.order = append(m.order, n.id)

	slog.Debug("notification shown", "id", n.id, "severity", severity, "display_for", m.config.DisplayFor)
	return n, nil
}

// Active returns the notifications that have not been removed, oldest first.
func (m *Manager) Active() []*Notification {
	out := make([]*Notification, 0, len(m.order))
	for _, id := range m.order {
		if n, ok := m.active[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// DismissAll starts the fade of every visible notification.
func (m *Manager) DismissAll() {
	for _, n := range m.Active() {
		n.Dismiss()
	}
}

// RemoveAll detaches every notification now, skipping the fade. Pending
// timers are stopped so nothing fires after the loop stops.
func (m *Manager) RemoveAll() {
	for _, n := range m.Active() {
		n.dismissed = true
		if n.autoTimer != nil {
			n.autoTimer.Stop()
		}
		if n.fadeTimer != nil {
			n.fadeTimer.Stop()
		}
		n.remove()
	}
}

// Config returns the manager's effective configuration.
func (m *Manager) Config() Config {
	return m.config
}

func (m *Manager) forget(id string) {
	delete(m.active, id)
	for i, other := range m.order {
		if other == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
