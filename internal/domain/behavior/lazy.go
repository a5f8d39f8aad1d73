package behavior

import "folio/internal/ui"

// loadVisibleImages swaps data-src into src for images near the viewport.
func (p *Page) loadVisibleImages(vp ui.Viewport) {
	if !p.surface.Exists(SelLazyImage) {
		return
	}

	imgs, err := p.surface.Select(SelLazyImage)
	if err != nil {
		p.warn("select lazy images", err)
		return
	}

	limit := vp.ScrollY + vp.Height + p.opts.LazyMargin
	for _, img := range imgs {
		r, err := p.surface.Rect(img)
		if err != nil {
			p.warn("image rect", err)
			continue
		}
		if r.Top > limit {
			continue
		}

		src, ok, err := p.surface.Attr(img, "data-src")
		if err != nil || !ok {
			continue
		}
		p.warn("image src", p.surface.SetAttr(img, "src", src))
		p.warn("image data-src", p.surface.RemoveAttr(img, "data-src"))
		p.setClass(img, ClassLoaded, true)
	}
}
