package behavior

import (
	"log/slog"
	"strings"

	"folio/internal/domain/notification"
	"folio/internal/domain/ratelimit"
	"folio/internal/ui"
)

const (
	msgFixErrors  = "Please fix the errors in the form."
	msgSent       = "Message sent successfully!"
	msgSendFailed = "Failed to send message. Please try again."
	labelSending  = "Sending..."
)

type contactForm struct {
	page       *Page
	fields     []string
	debouncers map[string]*ratelimit.Debouncer[string]
	submitting bool

	// label is the idle caption of the submit control. Input controls
	// carry it in their value instead of their text.
	label        string
	labelIsValue bool
}

func (p *Page) attachForm() error {
	if !p.has("contact form", SelContactForm, SelSubmit) {
		return nil
	}
	if p.submitter == nil {
		slog.Debug("behavior skipped, no submitter", "behavior", "contact form")
		return nil
	}

	f := &contactForm{
		page:       p,
		debouncers: make(map[string]*ratelimit.Debouncer[string]),
	}
	for _, field := range formFields {
		sel := FieldSelector(field)
		if !p.surface.Exists(sel) {
			continue
		}
		field := field
		d, err := ratelimit.NewDebounce(p.clock, p.opts.InputDebounce, func(value string) {
			f.showError(field, validateField(field, value))
		})
		if err != nil {
			return err
		}
		f.fields = append(f.fields, field)
		f.debouncers[field] = d
		if err := p.listen(sel, ui.EventInput, ui.ListenOptions{}, func(e ui.Event) {
			d.Call(e.Value)
		}); err != nil {
			return err
		}
	}

	if err := p.listen(SelContactForm, ui.EventSubmit, ui.ListenOptions{PreventDefault: true}, func(ui.Event) {
		f.submit()
	}); err != nil {
		return err
	}
	f.readLabel()
	p.form = f
	return nil
}

// readLabel captures the submit caption. On failure the previous caption is
// kept.
func (f *contactForm) readLabel() {
	p := f.page
	text, err := p.surface.Text(SelSubmit)
	if err != nil {
		p.warn("read submit label", err)
		return
	}
	if strings.TrimSpace(text) == "" {
		if v, err := p.surface.Value(SelSubmit); err == nil && v != "" {
			f.label, f.labelIsValue = v, true
			return
		}
	}
	f.label, f.labelIsValue = text, false
}

func (f *contactForm) setLabel(text string) error {
	if f.labelIsValue {
		return f.page.surface.SetValue(SelSubmit, text)
	}
	return f.page.surface.SetText(SelSubmit, text)
}

func (f *contactForm) cancelPending() {
	for _, d := range f.debouncers {
		d.Cancel()
	}
}

func (f *contactForm) value(field string) string {
	if _, ok := f.debouncers[field]; !ok {
		return ""
	}
	v, err := f.page.surface.Value(FieldSelector(field))
	if err != nil {
		f.page.warn("field value", err)
		return ""
	}
	return strings.TrimSpace(v)
}

func (f *contactForm) read() ContactMessage {
	return ContactMessage{
		Name:    f.value(FieldName),
		Email:   f.value(FieldEmail),
		Subject: f.value(FieldSubject),
		Message: f.value(FieldMessage),
	}
}

func (f *contactForm) submit() {
	if f.submitting {
		return
	}
	p := f.page

	// A pending input validation would race the full check below.
	f.cancelPending()

	msg := f.read()
	errs := ValidateContact(msg)
	for _, field := range f.fields {
		f.showError(field, errs[field])
	}
	if len(errs) > 0 {
		slog.Debug("contact form invalid", "fields", len(errs))
		p.notify(msgFixErrors, notification.SeverityError)
		return
	}

	f.submitting = true
	f.readLabel()
	p.warn("disable submit", p.surface.SetAttr(SelSubmit, "disabled", "disabled"))
	p.warn("submit label", f.setLabel(labelSending))

	ctx := p.ctx
	deliver := func(err error) {
		if p.detached {
			return
		}
		f.finish(err)
	}

	if p.post == nil {
		deliver(p.submitter.Submit(ctx, msg))
		return
	}
	go func() {
		err := p.submitter.Submit(ctx, msg)
		if !p.post(func() { deliver(err) }) {
			slog.Debug("submission result dropped, loop stopped")
		}
	}()
}

func (f *contactForm) finish(err error) {
	p := f.page
	f.submitting = false
	p.warn("enable submit", p.surface.RemoveAttr(SelSubmit, "disabled"))
	p.warn("submit label", f.setLabel(f.label))

	if err != nil {
		slog.Warn("contact submission failed", "error", err)
		p.notify(msgSendFailed, notification.SeverityError)
		return
	}

	slog.Info("contact message sent")
	p.notify(msgSent, notification.SeveritySuccess)
	for _, field := range f.fields {
		p.warn("clear field", p.surface.SetValue(FieldSelector(field), ""))
		f.showError(field, "")
	}
}

// showError marks a field invalid with text, or clears it when text is empty.
func (f *contactForm) showError(field, text string) {
	p := f.page
	sel := FieldSelector(field)
	if text != "" {
		p.setClass(sel, ClassError, true)
		p.warn("aria-invalid", p.surface.SetAttr(sel, "aria-invalid", "true"))
	} else {
		p.setClass(sel, ClassError, false)
		p.warn("aria-invalid", p.surface.RemoveAttr(sel, "aria-invalid"))
	}

	if errSel := ErrorSelector(field); p.surface.Exists(errSel) {
		p.warn("error text", p.surface.SetText(errSel, text))
	}
}
