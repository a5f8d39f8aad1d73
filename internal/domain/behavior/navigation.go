package behavior

import "folio/internal/ui"

func (p *Page) attachNavigation() error {
	if !p.has("navigation", SelNavToggle, SelNavMenu) {
		return nil
	}

	if err := p.listen(SelNavToggle, ui.EventClick, ui.ListenOptions{}, func(ui.Event) {
		p.toggleMenu()
	}); err != nil {
		return err
	}

	if p.surface.Exists(SelNavLink) {
		if err := p.listen(SelNavLink, ui.EventClick, ui.ListenOptions{}, func(ui.Event) {
			p.closeMenu()
		}); err != nil {
			return err
		}
	}
	return nil
}

func (p *Page) toggleMenu() {
	if p.menuOpen {
		p.closeMenu()
		return
	}
	p.openMenu()
}

func (p *Page) openMenu() {
	p.menuOpen = true
	p.setClass(SelNavMenu, ClassActive, true)
	p.setClass(SelNavToggle, ClassActive, true)
	p.warn("aria-expanded", p.surface.SetAttr(SelNavToggle, "aria-expanded", "true"))
}

func (p *Page) closeMenu() {
	if !p.menuOpen {
		return
	}
	p.menuOpen = false
	p.setClass(SelNavMenu, ClassActive, false)
	p.setClass(SelNavToggle, ClassActive, false)
	p.warn("aria-expanded", p.surface.SetAttr(SelNavToggle, "aria-expanded", "false"))
}
