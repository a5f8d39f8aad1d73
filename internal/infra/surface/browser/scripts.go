package browser

import "fmt"

// prelude installs window.__folio: selector helpers, stable refs, the
// listener table and the event buffer drained by the poller.
const prelude = `() => {
	if (window.__folio) return true;
	let next = 0;
	const f = {
		events: [],
		listeners: {},
		all(sel) {
			if (sel === 'window') return [window];
			if (sel === 'document') return [document];
			try {
				return Array.from(document.querySelectorAll(sel));
			} catch (e) {
				return null;
			}
		},
		ref(el) {
			if (el === window) return 'window';
			if (el === document) return 'document';
			if (el.id) return '#' + CSS.escape(el.id);
			let r = el.getAttribute('data-folio-ref');
			if (!r) {
				r = String(++next);
				el.setAttribute('data-folio-ref', r);
			}
			return '[data-folio-ref="' + r + '"]';
		},
	};
	window.__folio = f;
	return true;
}`

// onElements wraps body, a function of (els, ...args), so that it runs
// against the elements matching its first argument. The wrapper returns
// {n, v}: n is -1 for an invalid selector, otherwise the match count, and
// v is body's result when anything matched.
func onElements(body string) string {
	return fmt.Sprintf(`(sel, ...args) => {
	const f = window.__folio;
	const els = f.all(sel);
	if (els === null) return {n: -1, v: null};
	if (els.length === 0) return {n: 0, v: null};
	const v = (%s)(els, ...args);
	return {n: els.length, v: v === undefined ? null : v};
}`, body)
}

var (
	jsSelect      = onElements(`(els) => els.map((e) => window.__folio.ref(e))`)
	jsAddClass    = onElements(`(els, cls) => els.forEach((e) => e.classList.add(...cls))`)
	jsRemoveClass = onElements(`(els, cls) => els.forEach((e) => e.classList.remove(...cls))`)
	jsHasClass    = onElements(`(els, c) => els[0].classList.contains(c)`)
	jsAttr        = onElements(`(els, name) => els[0].getAttribute(name)`)
	jsSetAttr     = onElements(`(els, name, value) => els.forEach((e) => e.setAttribute(name, value))`)
	jsRemoveAttr  = onElements(`(els, name) => els.forEach((e) => e.removeAttribute(name))`)
	jsText        = onElements(`(els) => els[0].textContent`)
	jsSetText     = onElements(`(els, t) => els.forEach((e) => { e.textContent = t; })`)
	jsValue       = onElements(`(els) => ('value' in els[0] ? String(els[0].value) : '')`)
	jsSetValue    = onElements(`(els, v) => els.forEach((e) => { e.value = v; })`)
	jsAppend      = onElements(`(els, markup) => els[0].insertAdjacentHTML('beforeend', markup)`)
	jsRemove      = onElements(`(els) => els.forEach((e) => e.remove())`)
	jsFocus       = onElements(`(els) => els[0].focus()`)
	jsRect        = onElements(`(els) => {
		const r = els[0].getBoundingClientRect();
		return {top: r.top + window.scrollY, height: r.height};
	}`)

	jsListen = onElements(`(els, id, type, prevent) => {
		const f = window.__folio;
		f.listeners[id] = els.map((el) => {
			const h = (ev) => {
				if (prevent) ev.preventDefault();
				f.events.push({
					id: id,
					target: f.ref(el),
					key: ev.key || '',
					value: (el !== window && el !== document && 'value' in el) ? String(el.value) : '',
				});
			};
			el.addEventListener(type, h);
			return [el, type, h];
		});
	}`)
)

const jsUnlisten = `(id) => {
	const f = window.__folio;
	(f.listeners[id] || []).forEach(([el, type, h]) => el.removeEventListener(type, h));
	delete f.listeners[id];
}`

const jsDrain = `() => {
	const f = window.__folio;
	if (!f) return [];
	const buf = f.events;
	f.events = [];
	return buf;
}`

const jsViewport = `() => ({scrollY: window.scrollY, height: window.innerHeight})`

const jsScrollTo = `(y, smooth) => window.scrollTo({top: y, behavior: smooth ? 'smooth' : 'auto'})`
