// Package ui defines the page the behaviors operate on.
//
// A Surface is addressed with CSS selectors. All methods are called from the
// event loop goroutine and listeners are invoked on it as well.
package ui

// Event targets that are not elements.
const (
	Window   = "window"
	Document = "document"
)

// EventType names a DOM event.
type EventType string

const (
	EventClick     EventType = "click"
	EventInput     EventType = "input"
	EventSubmit    EventType = "submit"
	EventScroll    EventType = "scroll"
	EventKeyDown   EventType = "keydown"
	EventMouseDown EventType = "mousedown"
)

// Event is the part of a DOM event the behaviors look at.
type Event struct {
	Type EventType
	// Target is a selector for the element the listener was attached to.
	Target string
	// Key is set for keyboard events.
	Key string
	// Value is the target's value for input events.
	Value string
}

// ListenOptions tunes a listener.
type ListenOptions struct {
	// PreventDefault cancels the browser's default action for the event.
	PreventDefault bool
}

// Rect is an element's box in document coordinates.
type Rect struct {
	Top    float64
	Height float64
}

// Viewport describes the visible part of the document.
type Viewport struct {
	ScrollY float64
	Height  float64
}

// Surface is the page: element lookup, events, class and attribute
// mutation, element creation and removal, focus and scrolling.
type Surface interface {
	// Select returns one stable selector per element matching selector,
	// in document order.
	Select(selector string) ([]string, error)
	// Exists reports whether selector matches any element.
	Exists(selector string) bool

	// Listen registers fn for event on every element matching target, or on
	// Window or Document. The returned function removes the listener.
	Listen(target string, event EventType, opts ListenOptions, fn func(Event)) (func(), error)

	AddClass(selector string, classes ...string) error
	RemoveClass(selector string, classes ...string) error
	HasClass(selector, class string) (bool, error)

	Attr(selector, name string) (string, bool, error)
	SetAttr(selector, name, value string) error
	RemoveAttr(selector, name string) error

	Text(selector string) (string, error)
	SetText(selector, text string) error
	Value(selector string) (string, error)
	SetValue(selector, value string) error

	// Append builds el and appends it as the last child of parent.
	Append(parent string, el *Element) error
	// Remove detaches every element matching selector.
	Remove(selector string) error

	Focus(selector string) error
	Rect(selector string) (Rect, error)
	Viewport() (Viewport, error)
	ScrollTo(y float64, smooth bool) error
}
