package behavior

import (
	"strings"

	"folio/internal/domain/ratelimit"
	"folio/internal/ui"
)

func (p *Page) attachScroll() error {
	th, err := ratelimit.NewThrottle(p.clock, p.opts.ScrollThrottle, func(struct{}) {
		p.onScroll()
	})
	if err != nil {
		return err
	}

	if err := p.listen(ui.Window, ui.EventScroll, ui.ListenOptions{}, func(ui.Event) {
		th.Call(struct{}{})
	}); err != nil {
		return err
	}

	// Apply the state for the initial scroll position.
	p.onScroll()
	return nil
}

func (p *Page) onScroll() {
	vp, err := p.surface.Viewport()
	if err != nil {
		p.warn("viewport", err)
		return
	}

	if p.surface.Exists(SelHeader) {
		p.setClass(SelHeader, ClassScrolled, vp.ScrollY > p.opts.HeaderScrollThreshold)
	}
	if p.surface.Exists(SelBackToTop) {
		p.setClass(SelBackToTop, ClassVisible, vp.ScrollY > p.opts.BackToTopThreshold)
	}
	p.highlightSection(vp)
	p.loadVisibleImages(vp)
}

// highlightSection marks the nav link of the section under the header.
func (p *Page) highlightSection(vp ui.Viewport) {
	if !p.surface.Exists(SelSection) || !p.surface.Exists(SelNavLink) {
		return
	}

	sections, err := p.surface.Select(SelSection)
	if err != nil {
		p.warn("select sections", err)
		return
	}

	line := vp.ScrollY + p.headerHeight()
	current := ""
	for _, sec := range sections {
		r, err := p.surface.Rect(sec)
		if err != nil {
			p.warn("section rect", err)
			continue
		}
		if line >= r.Top && line < r.Top+r.Height {
			current, _, _ = p.surface.Attr(sec, "id")
			break
		}
	}

	links, err := p.surface.Select(SelNavLink)
	if err != nil {
		p.warn("select nav links", err)
		return
	}
	for _, link := range links {
		href, _, _ := p.surface.Attr(link, "href")
		on := current != "" && strings.TrimPrefix(href, "#") == current
		p.setClass(link, ClassActive, on)
	}
}
