package behavior

import (
	"fmt"
	"strings"

	"folio/internal/ui"
)

// Selectors the behaviors look for in the page markup.
const (
	SelNavToggle   = "#nav-toggle"
	SelNavMenu     = "#nav-menu"
	SelNavLink     = ".nav-link"
	SelHeader      = "#header"
	SelBackToTop   = "#back-to-top"
	SelAnchor      = `a[href^="#"]`
	SelSection     = "section[id]"
	SelContactForm = "#contact-form"
	SelSubmit      = `#contact-form [type="submit"]`
	SelLazyImage   = "img[data-src]"
	SelBody        = "body"
)

// Classes the behaviors toggle.
const (
	ClassActive      = "active"
	ClassScrolled    = "scrolled"
	ClassVisible     = "visible"
	ClassError       = "error"
	ClassLoaded      = "loaded"
	ClassKeyboardNav = "keyboard-nav"
)

// Contact form field names.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

var formFields = []string{FieldName, FieldEmail, FieldSubject, FieldMessage}

// FieldSelector addresses a contact form control by name.
func FieldSelector(name string) string {
	return fmt.Sprintf(`%s [name="%s"]`, SelContactForm, name)
}

// ErrorSelector addresses the element that shows a field's error.
func ErrorSelector(name string) string {
	return "#" + name + "-error"
}

var attrEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// IDSelector addresses the element whose id is exactly id. Ids that are not
// valid CSS identifiers, such as "2024" or "a.b", are matched too.
func IDSelector(id string) string {
	return `[id="` + attrEscaper.Replace(id) + `"]`
}

// Hook is an element the behaviors attach to.
type Hook struct {
	Name     string
	Selector string
	Optional bool
}

// Hooks lists every element the behaviors use.
var Hooks = []Hook{
	{Name: "navigation toggle", Selector: SelNavToggle},
	{Name: "navigation menu", Selector: SelNavMenu},
	{Name: "navigation links", Selector: SelNavLink},
	{Name: "header", Selector: SelHeader},
	{Name: "back to top button", Selector: SelBackToTop, Optional: true},
	{Name: "page sections", Selector: SelSection, Optional: true},
	{Name: "contact form", Selector: SelContactForm},
	{Name: "name field", Selector: FieldSelector(FieldName)},
	{Name: "email field", Selector: FieldSelector(FieldEmail)},
	{Name: "subject field", Selector: FieldSelector(FieldSubject), Optional: true},
	{Name: "message field", Selector: FieldSelector(FieldMessage)},
	{Name: "submit button", Selector: SelSubmit},
	{Name: "lazy images", Selector: SelLazyImage, Optional: true},
}

// Verify returns the required hooks missing from the page.
func Verify(s ui.Surface) []Hook {
	var missing []Hook
	for _, h := range Hooks {
		if !h.Optional && !s.Exists(h.Selector) {
			missing = append(missing, h)
		}
	}
	return missing
}
