// Package behavior wires the interactive behaviors of the portfolio page:
// navigation toggle, scroll effects, smooth anchor scrolling, the contact
// form, lazy images and focus management.
//
// Everything here runs on the event loop. Timers come from the injected
// clock, and asynchronous results are handed back through Deps.Post.
package behavior

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"folio/internal/clock"
	"folio/internal/common"
	"folio/internal/domain/notification"
	"folio/internal/ui"
)

// Notifier surfaces transient messages.
type Notifier interface {
	Show(message string, severity notification.Severity) (*notification.Notification, error)
}

// ContactMessage is a validated contact form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Submitter delivers contact messages.
type Submitter interface {
	Submit(ctx context.Context, msg ContactMessage) error
}

// Options tunes the behaviors. Start from DefaultOptions; zero durations
// fall back to the defaults, zero distances do not.
type Options struct {
	ScrollThrottle        time.Duration
	InputDebounce         time.Duration
	HeaderScrollThreshold float64
	BackToTopThreshold    float64
	LazyMargin            float64
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		ScrollThrottle:        100 * time.Millisecond,
		InputDebounce:         300 * time.Millisecond,
		HeaderScrollThreshold: 50,
		BackToTopThreshold:    300,
		LazyMargin:            50,
	}
}

// withDefaults fills zero durations from DefaultOptions. Thresholds and the
// lazy margin are used as given, so zero means "from the top".
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.ScrollThrottle == 0 {
		o.ScrollThrottle = def.ScrollThrottle
	}
	if o.InputDebounce == 0 {
		o.InputDebounce = def.InputDebounce
	}
	return o
}

// Deps are the collaborators of the behaviors.
type Deps struct {
	Surface   ui.Surface
	Clock     clock.Clock
	Notifier  Notifier
	Submitter Submitter

	// Post hands work back to the event loop. When nil, submissions run
	// inline on the caller's goroutine.
	Post func(func()) bool

	Options Options
}

// Page is the set of behaviors attached to one surface.
type Page struct {
	surface   ui.Surface
	clock     clock.Clock
	notifier  Notifier
	submitter Submitter
	post      func(func()) bool
	opts      Options

	ctx    context.Context
	cancel context.CancelFunc

	unlisteners []func()
	form        *contactForm
	menuOpen    bool
	detached    bool
}

// Attach wires every behavior whose hooks exist in the page.
func Attach(ctx context.Context, deps Deps) (*Page, error) {
	if deps.Surface == nil || deps.Clock == nil || deps.Notifier == nil {
		return nil, common.NewValidationError("surface, clock and notifier are required")
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Page{
		surface:   deps.Surface,
		clock:     deps.Clock,
		notifier:  deps.Notifier,
		submitter: deps.Submitter,
		post:      deps.Post,
		opts:      deps.Options.withDefaults(),
		ctx:       ctx,
		cancel:    cancel,
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"navigation", p.attachNavigation},
		{"focus", p.attachFocus},
		{"anchors", p.attachAnchors},
		{"scroll", p.attachScroll},
		{"contact form", p.attachForm},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			p.Detach()
			return nil, fmt.Errorf("attaching %s: %w", step.name, err)
		}
	}

	slog.Info("page behaviors attached", "listeners", len(p.unlisteners))
	return p, nil
}

// Detach removes every listener, cancels pending timers and abandons any
// submission in flight.
func (p *Page) Detach() {
	if p.detached {
		return
	}
	p.detached = true
	p.cancel()
	for _, off := range p.unlisteners {
		off()
	}
	p.unlisteners = nil
	if p.form != nil {
		p.form.cancelPending()
	}
	slog.Debug("page behaviors detached")
}

// MenuOpen reports whether the navigation menu is open.
func (p *Page) MenuOpen() bool {
	return p.menuOpen
}

func (p *Page) listen(target string, event ui.EventType, opts ui.ListenOptions, fn func(ui.Event)) error {
	off, err := p.surface.Listen(target, event, opts, fn)
	if err != nil {
		return err
	}
	p.unlisteners = append(p.unlisteners, off)
	return nil
}

// has reports whether every selector matches; missing hooks are logged
// and the behavior skipped.
func (p *Page) has(behavior string, selectors ...string) bool {
	for _, sel := range selectors {
		if !p.surface.Exists(sel) {
			slog.Debug("behavior skipped, hook missing", "behavior", behavior, "selector", sel)
			return false
		}
	}
	return true
}

func (p *Page) warn(op string, err error) {
	if err != nil {
		slog.Warn("page update failed", "op", op, "error", err)
	}
}

func (p *Page) notify(message string, severity notification.Severity) {
	if _, err := p.notifier.Show(message, severity); err != nil {
		slog.Warn("notification failed", "error", err)
	}
}

// setClass adds or removes class depending on on.
func (p *Page) setClass(selector, class string, on bool) {
	if on {
		p.warn("add class", p.surface.AddClass(selector, class))
		return
	}
	p.warn("remove class", p.surface.RemoveClass(selector, class))
}

func (p *Page) headerHeight() float64 {
	if !p.surface.Exists(SelHeader) {
		return 0
	}
	r, err := p.surface.Rect(SelHeader)
	if err != nil {
		p.warn("header rect", err)
		return 0
	}
	return r.Height
}
