package htmldoc

import (
	"folio/internal/ui"

	"golang.org/x/net/html"
)

// Listen registers fn on target for event.
func (d *Document) Listen(target string, event ui.EventType, opts ui.ListenOptions, fn func(ui.Event)) (func(), error) {
	var added []*listener

	switch target {
	case ui.Window, ui.Document:
		added = append(added, d.addListener(nil, target, event, opts, fn))
	default:
		nodes, err := d.mustMatch(target)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			added = append(added, d.addListener(n, "", event, opts, fn))
		}
	}

	return func() {
		for _, l := range added {
			d.removeListener(l.id)
		}
	}, nil
}

func (d *Document) addListener(n *html.Node, scope string, event ui.EventType, opts ui.ListenOptions, fn func(ui.Event)) *listener {
	d.nextListen++
	l := &listener{id: d.nextListen, node: n, scope: scope, event: event, opts: opts, fn: fn}
	d.listeners = append(d.listeners, l)
	return l
}

func (d *Document) removeListener(id int) {
	for i, l := range d.listeners {
		if l.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

func (d *Document) dropListenersUnder(root *html.Node) {
	kept := d.listeners[:0]
	for _, l := range d.listeners {
		if l.node != nil && isWithin(l.node, root) {
			continue
		}
		kept = append(kept, l)
	}
	d.listeners = kept
}

// ListenerCount returns the number of registered listeners.
func (d *Document) ListenerCount() int {
	return len(d.listeners)
}

// Dispatch fires ev at target and reports whether a listener prevented the
// default action. Element events bubble to ancestors, then to the document
// and the window. A target matching nothing dispatches nothing.
func (d *Document) Dispatch(target string, ev ui.Event) bool {
	var path []*html.Node
	scopes := []string{ui.Document, ui.Window}

	switch target {
	case ui.Window:
		scopes = []string{ui.Window}
	case ui.Document:
	default:
		nodes, err := d.match(target)
		if err != nil || len(nodes) == 0 {
			return false
		}
		for n := nodes[0]; n != nil; n = n.Parent {
			if n.Type == html.ElementNode {
				path = append(path, n)
			}
		}
		if ev.Type == ui.EventInput && ev.Value == "" {
			ev.Value = valueOf(nodes[0])
		}
	}
	ev.Target = ""

	prevented := false
	for _, n := range path {
		for _, l := range d.snapshot() {
			if l.node == n && l.event == ev.Type {
				e := ev
				e.Target = d.ref(n)
				l.fn(e)
				prevented = prevented || l.opts.PreventDefault
			}
		}
	}
	for _, scope := range scopes {
		for _, l := range d.snapshot() {
			if l.node == nil && l.scope == scope && l.event == ev.Type {
				e := ev
				e.Target = scope
				l.fn(e)
				prevented = prevented || l.opts.PreventDefault
			}
		}
	}
	return prevented
}

// snapshot copies the listener list so handlers may add or remove
// listeners while an event is being dispatched.
func (d *Document) snapshot() []*listener {
	out := make([]*listener, len(d.listeners))
	copy(out, d.listeners)
	return out
}
