package behavior

import (
	"math"
	"net/url"
	"strings"

	"folio/internal/ui"
)

func (p *Page) attachAnchors() error {
	if p.surface.Exists(SelAnchor) {
		if err := p.listen(SelAnchor, ui.EventClick, ui.ListenOptions{PreventDefault: true}, p.onAnchorClick); err != nil {
			return err
		}
	}

	if p.surface.Exists(SelBackToTop) {
		return p.listen(SelBackToTop, ui.EventClick, ui.ListenOptions{PreventDefault: true}, func(ui.Event) {
			p.warn("scroll to top", p.surface.ScrollTo(0, true))
		})
	}
	return nil
}

func (p *Page) onAnchorClick(e ui.Event) {
	href, ok, err := p.surface.Attr(e.Target, "href")
	if err != nil || !ok || href == "#" || href == "" {
		return
	}
	if e.Target == SelBackToTop {
		return
	}
	id := strings.TrimPrefix(href, "#")
	if decoded, err := url.PathUnescape(id); err == nil {
		id = decoded
	}
	// Unknown fragments are ignored.
	target := IDSelector(id)
	if !p.surface.Exists(target) {
		return
	}

	r, err := p.surface.Rect(target)
	if err != nil {
		p.warn("anchor rect", err)
		return
	}
	y := math.Max(0, r.Top-p.headerHeight())
	p.warn("smooth scroll", p.surface.ScrollTo(y, true))
}
