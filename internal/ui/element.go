package ui

import (
	"bytes"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element describes a DOM subtree to create.
type Element struct {
	Tag      string
	ID       string
	Classes  []string
	Attrs    map[string]string
	Text     string
	Children []*Element
}

// Selector returns "#id" for elements with an id, or "" otherwise.
func (e *Element) Selector() string {
	if e.ID == "" {
		return ""
	}
	return "#" + e.ID
}

// Node converts the element into an x/net/html node tree.
func (e *Element) Node() *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     e.Tag,
		DataAtom: atom.Lookup([]byte(e.Tag)),
	}
	if e.ID != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: e.ID})
	}
	if len(e.Classes) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: strings.Join(e.Classes, " ")})
	}

	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.Attr = append(n.Attr, html.Attribute{Key: k, Val: e.Attrs[k]})
	}

	if e.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: e.Text})
	}
	for _, child := range e.Children {
		n.AppendChild(child.Node())
	}
	return n
}

// Render returns the element as HTML.
func (e *Element) Render() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.Node()); err != nil {
		return "", err
	}
	return buf.String(), nil
}
