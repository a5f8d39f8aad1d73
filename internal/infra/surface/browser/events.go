package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"folio/internal/ui"
)

// pageEvent is one entry of the in-page event buffer.
type pageEvent struct {
	ID     int    `json:"id"`
	Target string `json:"target"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// Listen registers fn for event on every element matching target. The
// page buffers occurrences; Poll delivers them.
func (s *Surface) Listen(target string, event ui.EventType, opts ui.ListenOptions, fn func(ui.Event)) (func(), error) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.handlers[id] = func(e ui.Event) {
		e.Type = event
		fn(e)
	}
	s.mu.Unlock()

	if _, err := s.on(jsListen, target, true, nil, id, string(event), opts.PreventDefault); err != nil {
		s.forget(id)
		return nil, err
	}

	return func() {
		s.forget(id)
		if _, err := s.eval(jsUnlisten, id); err != nil {
			slog.Debug("removing page listener failed", "id", id, "error", err)
		}
	}, nil
}

func (s *Surface) forget(id int) {
	s.mu.Lock()
	delete(s.handlers, id)
	s.mu.Unlock()
}

func (s *Surface) handler(id int) func(ui.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handlers[id]
}

// Poll drains the page's event buffer every interval and posts each event
// to its handler through post. It blocks until ctx is cancelled.
func (s *Surface) Poll(ctx context.Context, interval time.Duration, post func(func()) bool) {
	slog.Info("browser event poller started", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("browser event poller stopped")
			return
		case <-ticker.C:
			s.drain(post)
		}
	}
}

func (s *Surface) drain(post func(func()) bool) {
	raw, err := s.eval(jsDrain)
	if err != nil {
		slog.Warn("draining page events failed", "error", err)
		return
	}
	events, err := decodeEvents(raw)
	if err != nil {
		slog.Warn("decoding page events failed", "error", err)
		return
	}
	s.deliver(events, post)
}

// deliver posts one handler call per event. It stops when post refuses.
func (s *Surface) deliver(events []pageEvent, post func(func()) bool) {
	for _, pe := range events {
		ev := ui.Event{Target: pe.Target, Key: pe.Key, Value: pe.Value}
		id := pe.ID
		// Handlers are looked up on the loop so unlisten wins over
		// events already queued.
		if !post(func() {
			if fn := s.handler(id); fn != nil {
				fn(ev)
			}
		}) {
			return
		}
	}
}

func decodeEvents(raw []byte) ([]pageEvent, error) {
	var events []pageEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("decoding events: %w", err)
	}
	return events, nil
}
