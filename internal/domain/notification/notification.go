package notification

import (
	"log/slog"
	"time"

	"folio/internal/clock"
	"folio/internal/ui"
)

// Notification is one transient message on the page.
//
// Lifecycle: visible -> fading -> removed. Exactly one dismissal takes
// effect; whichever of the auto timer and the close control comes first
// wins and the other becomes a no-op.
type Notification struct {
	id        string
	message   string
	severity  Severity
	createdAt time.Time
	deadline  time.Time

	manager   *Manager
	state     State
	dismissed bool
	autoTimer clock.Timer
	fadeTimer clock.Timer
	unlisten  func()
}

// ID returns the element id of the notification.
func (n *Notification) ID() string { return n.id }

// Message returns the displayed text.
func (n *Notification) Message() string { return n.message }

// Severity returns the normalized severity.
func (n *Notification) Severity() Severity { return n.severity }

// State returns the lifecycle state.
func (n *Notification) State() State { return n.state }

// Deadline returns when the notification starts fading on its own.
func (n *Notification) Deadline() time.Time { return n.deadline }

// Selector addresses the notification element.
func (n *Notification) Selector() string { return "#" + n.id }

func (n *Notification) closeSelector() string {
	return n.Selector() + " ." + ClassClose
}

// Dismiss starts the fade immediately and cancels the auto timer. It
// reports false if the notification was already dismissed.
func (n *Notification) Dismiss() bool {
	if !n.begin() {
		return false
	}
	if n.autoTimer != nil {
		n.autoTimer.Stop()
	}
	slog.Debug("notification dismissed", "id", n.id)
	return true
}

func (n *Notification) autoDismiss() {
	if n.begin() {
		slog.Debug("notification expired", "id", n.id)
	}
}

// begin consumes the dismissal and starts the fade-then-remove sequence.
func (n *Notification) begin() bool {
	if n.dismissed {
		return false
	}
	n.dismissed = true
	n.state = StateFading

	m := n.manager
	if err := m.surface.AddClass(n.Selector(), ClassFading); err != nil {
		slog.Warn("notification fade failed", "id", n.id, "error", err)
	}
	n.fadeTimer = m.clock.AfterFunc(m.config.FadeFor, n.remove)
	return true
}

func (n *Notification) remove() {
	if n.state == StateRemoved {
		return
	}
	n.state = StateRemoved

	if n.unlisten != nil {
		n.unlisten()
		n.unlisten = nil
	}
	if err := n.manager.surface.Remove(n.Selector()); err != nil {
		slog.Warn("notification removal failed", "id", n.id, "error", err)
	}
	n.manager.forget(n.id)
}

func (n *Notification) element() *ui.Element {
	return &ui.Element{
		Tag:     "div",
		ID:      n.id,
		Classes: []string{ClassNotification, ClassNotification + "-" + string(n.severity)},
		Attrs: map[string]string{
			"role":      "alert",
			"aria-live": "polite",
		},
		Children: []*ui.Element{
			{
				Tag:     "div",
				Classes: []string{ClassContent},
				Children: []*ui.Element{
					{Tag: "i", Classes: []string{n.severity.Icon()}, Attrs: map[string]string{"aria-hidden": "true"}},
					{Tag: "span", Classes: []string{ClassMessage}, Text: n.message},
				},
			},
			{
				Tag:     "button",
				Classes: []string{ClassClose},
				Attrs: map[string]string{
					"type":       "button",
					"aria-label": "Close notification",
				},
				Text: "×",
			},
		},
	}
}
