// Package htmldoc implements ui.Surface over a parsed HTML document.
//
// There is no layout engine: element boxes default to zero and are set with
// SetRect. Events are dispatched synchronously with Dispatch and bubble from
// the target element up to the document and window.
package htmldoc

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"folio/internal/common"
	"folio/internal/ui"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

const refAttr = "data-folio-ref"

var _ ui.Surface = (*Document)(nil)

// Document is an in-memory page.
type Document struct {
	root      *html.Node
	selectors map[string]cascadia.Selector
	nextRef   int

	listeners  []*listener
	nextListen int

	rects          map[*html.Node]ui.Rect
	scrollY        float64
	viewportHeight float64
	lastSmooth     bool
	focused        *html.Node
}

type listener struct {
	id    int
	node  *html.Node // nil for window and document
	scope string     // ui.Window or ui.Document when node is nil
	event ui.EventType
	opts  ui.ListenOptions
	fn    func(ui.Event)
}

// Parse builds a Document from markup.
func Parse(markup string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	return &Document{
		root:           root,
		selectors:      make(map[string]cascadia.Selector),
		rects:          make(map[*html.Node]ui.Rect),
		viewportHeight: 800,
	}, nil
}

// Load reads and parses an HTML file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(string(data))
}

// HTML renders the current document.
func (d *Document) HTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, d.root)
	return buf.String()
}

func (d *Document) compile(selector string) (cascadia.Selector, error) {
	if sel, ok := d.selectors[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, common.NewValidationError(fmt.Sprintf("invalid selector %q: %v", selector, err))
	}
	d.selectors[selector] = sel
	return sel, nil
}

func (d *Document) match(selector string) ([]*html.Node, error) {
	sel, err := d.compile(selector)
	if err != nil {
		return nil, err
	}
	return sel.MatchAll(d.root), nil
}

// mustMatch is match that treats an empty result as a NotFoundError.
func (d *Document) mustMatch(selector string) ([]*html.Node, error) {
	nodes, err := d.match(selector)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, common.NewNotFoundError("element", selector)
	}
	return nodes, nil
}

// ref returns a selector that addresses n alone.
func (d *Document) ref(n *html.Node) string {
	if id, ok := getAttr(n, "id"); ok && id != "" {
		return "#" + id
	}
	if r, ok := getAttr(n, refAttr); ok {
		return fmt.Sprintf(`[%s="%s"]`, refAttr, r)
	}
	d.nextRef++
	r := strconv.Itoa(d.nextRef)
	setAttr(n, refAttr, r)
	return fmt.Sprintf(`[%s="%s"]`, refAttr, r)
}

// Select returns one selector per matching element.
func (d *Document) Select(selector string) ([]string, error) {
	nodes, err := d.match(selector)
	if err != nil {
		return nil, err
	}
	refs := make([]string, len(nodes))
	for i, n := range nodes {
		refs[i] = d.ref(n)
	}
	return refs, nil
}

// Exists reports whether selector matches any element.
func (d *Document) Exists(selector string) bool {
	nodes, err := d.match(selector)
	return err == nil && len(nodes) > 0
}

// AddClass adds classes to every matching element.
func (d *Document) AddClass(selector string, classes ...string) error {
	nodes, err := d.mustMatch(selector)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		list := classList(n)
		for _, c := range classes {
			if !contains(list, c) {
				list = append(list, c)
			}
		}
		setAttr(n, "class", strings.Join(list, " "))
	}
	return nil
}

// RemoveClass removes classes from every matching element.
func (d *Document) RemoveClass(selector string, classes ...string) error {
	nodes, err := d.mustMatch(selector)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		list := classList(n)
		kept := list[:0]
		for _, c := range list {
			if !contains(classes, c) {
				kept = append(kept, c)
			}
		}
		setAttr(n, "class", strings.Join(kept, " "))
	}
	return nil
}

// HasClass reports whether the first matching element has class.
func (d *Document) HasClass(selector, class string) (bool, error) {
	nodes, err := d.mustMatch(selector)
	if err != nil {
		return false, err
	}
	return contains(classList(nodes[0]), class), nil
}

// Attr returns an attribute of the first matching element.
func (d *Document) Attr(selector, name string) (string, bool, error) {
	nodes, err := d.mustMatch(selector)
	if err != nil {
		return "", false, err
	}
	v, ok := getAttr(nodes[0], name)
	return v, ok, nil
}

// SetAttr sets an attribute on every matching element.
func (d *Document) SetAttr(selector, name, value string) error {
	nodes, err := d.mustMatch(selector)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		setAttr(n, name, value)
	}
	return nil
}

// RemoveAttr removes an attribute from every matching element.
func (d *Document) RemoveAttr(selector, name string) error {
	nodes, err := d.mustMatch(selector)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		removeAttr(n, name)
	}
	return nil
}

// SetText replaces the children of every matching element with text.
func (d *Document) SetText(selector, text string) error {
	nodes, err := d.mustMatch(selector)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		replaceText(n, text)
	}
	return nil
}

// Text returns the text content of the first matching element.
func (d *Document) Text(selector string) (string, error) {
	nodes, err := d.mustMatch(selector)
	if err != nil {
		return "", err
	}
	return textContent(nodes[0]), nil
}

// Value returns the value of the first matching form control.
func (d *Document) Value(selector string) (string, error) {
	nodes, err := d.mustMatch(selector)
	if err != nil {
		return "", err
	}
	return valueOf(nodes[0]), nil
}

// SetValue sets the value of every matching form control.
func (d *Document) SetValue(selector, value string) error {
	nodes, err := d.mustMatch(selector)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		if n.Data == "textarea" {
			replaceText(n, value)
			continue
		}
		setAttr(n, "value", value)
	}
	return nil
}

// Append builds el and appends it to the first element matching parent.
func (d *Document) Append(parent string, el *ui.Element) error {
	nodes, err := d.mustMatch(parent)
	if err != nil {
		return err
	}
	nodes[0].AppendChild(el.Node())
	return nil
}

// Remove detaches every matching element and drops its listeners.
func (d *Document) Remove(selector string) error {
	nodes, err := d.mustMatch(selector)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		d.dropListenersUnder(n)
		if d.focused != nil && isWithin(d.focused, n) {
			d.focused = nil
		}
	}
	return nil
}

// Focus moves focus to the first matching element.
func (d *Document) Focus(selector string) error {
	nodes, err := d.mustMatch(selector)
	if err != nil {
		return err
	}
	d.focused = nodes[0]
	return nil
}

// Focused returns a selector for the focused element, or "".
func (d *Document) Focused() string {
	if d.focused == nil {
		return ""
	}
	return d.ref(d.focused)
}

// Rect returns the box recorded for the first matching element.
func (d *Document) Rect(selector string) (ui.Rect, error) {
	nodes, err := d.mustMatch(selector)
	if err != nil {
		return ui.Rect{}, err
	}
	return d.rects[nodes[0]], nil
}

// SetRect records the box of every matching element.
func (d *Document) SetRect(selector string, r ui.Rect) error {
	nodes, err := d.mustMatch(selector)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		d.rects[n] = r
	}
	return nil
}

// Viewport returns the scroll offset and viewport height.
func (d *Document) Viewport() (ui.Viewport, error) {
	return ui.Viewport{ScrollY: d.scrollY, Height: d.viewportHeight}, nil
}

// SetViewportHeight changes the viewport height.
func (d *Document) SetViewportHeight(h float64) {
	d.viewportHeight = h
}

// ScrollTo moves the scroll offset and fires scroll on the window.
func (d *Document) ScrollTo(y float64, smooth bool) error {
	if y < 0 {
		y = 0
	}
	d.scrollY = y
	d.lastSmooth = smooth
	d.Dispatch(ui.Window, ui.Event{Type: ui.EventScroll})
	return nil
}

// ScrollY returns the scroll offset.
func (d *Document) ScrollY() float64 {
	return d.scrollY
}

// LastScrollSmooth reports whether the last ScrollTo asked for smooth
// scrolling.
func (d *Document) LastScrollSmooth() bool {
	return d.lastSmooth
}
