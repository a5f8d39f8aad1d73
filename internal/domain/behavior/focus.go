package behavior

import "folio/internal/ui"

// attachFocus closes the menu on Escape and marks keyboard navigation so
// the stylesheet can show focus rings only to keyboard users.
func (p *Page) attachFocus() error {
	if err := p.listen(ui.Document, ui.EventKeyDown, ui.ListenOptions{}, p.onKeyDown); err != nil {
		return err
	}
	return p.listen(ui.Document, ui.EventMouseDown, ui.ListenOptions{}, func(ui.Event) {
		if p.surface.Exists(SelBody) {
			p.setClass(SelBody, ClassKeyboardNav, false)
		}
	})
}

func (p *Page) onKeyDown(e ui.Event) {
	switch e.Key {
	case "Escape":
		if p.menuOpen {
			p.closeMenu()
			p.warn("focus toggle", p.surface.Focus(SelNavToggle))
		}
	case "Tab":
		if p.surface.Exists(SelBody) {
			p.setClass(SelBody, ClassKeyboardNav, true)
		}
	}
}
