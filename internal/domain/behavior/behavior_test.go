package behavior

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"folio/internal/clock"
	"folio/internal/common"
	"folio/internal/domain/notification"
	"folio/internal/infra/surface/htmldoc"
	"folio/internal/ui"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const page = `<!DOCTYPE html>
<html><body>
<header id="header">
  <nav>
    <button id="nav-toggle" aria-expanded="false">Menu</button>
    <ul id="nav-menu">
      <li><a class="nav-link" href="#home">Home</a></li>
      <li><a class="nav-link" href="#about">About</a></li>
      <li><a class="nav-link" href="#contact">Contact</a></li>
    </ul>
  </nav>
</header>
<section id="home"><a id="cta" href="#contact">Hire me</a><a id="dead" href="#nowhere">?</a><a id="bare" href="#">top</a></section>
<section id="about">
  <img id="near" data-src="/img/near.png" alt="near">
  <img id="far" data-src="/img/far.png" alt="far">
</section>
<section id="contact">
  <form id="contact-form">
    <input name="name" type="text">
    <span id="name-error"></span>
    <input name="email" type="email">
    <span id="email-error"></span>
    <input name="subject" type="text">
    <textarea name="message"></textarea>
    <span id="message-error"></span>
    <button type="submit">Send Message</button>
  </form>
</section>
<a id="back-to-top" href="#">Top</a>
</body></html>`

type stubSubmitter struct {
	mu    sync.Mutex
	err   error
	got   []ContactMessage
	hook  func()
	block chan struct{}
}

func (s *stubSubmitter) Submit(ctx context.Context, msg ContactMessage) error {
	s.mu.Lock()
	s.got = append(s.got, msg)
	hook := s.hook
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.err
}

func (s *stubSubmitter) calls() []ContactMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ContactMessage(nil), s.got...)
}

type fixture struct {
	page  *Page
	doc   *htmldoc.Document
	clock *clock.Fake
	sub   *stubSubmitter
}

func setup(t *testing.T, post func(func()) bool) *fixture {
	t.Helper()
	return setupWith(t, post, DefaultOptions())
}

func setupWith(t *testing.T, post func(func()) bool, opts Options) *fixture {
	t.Helper()
	doc := parsePage(t, page)
	return attachTo(t, doc, doc, post, opts)
}

func parsePage(t *testing.T, markup string) *htmldoc.Document {
	t.Helper()
	doc, err := htmldoc.Parse(markup)
	require.NoError(t, err)
	require.NoError(t, doc.SetRect(SelHeader, ui.Rect{Top: 0, Height: 60}))
	require.NoError(t, doc.SetRect("#home", ui.Rect{Top: 0, Height: 500}))
	require.NoError(t, doc.SetRect("#about", ui.Rect{Top: 500, Height: 600}))
	require.NoError(t, doc.SetRect("#contact", ui.Rect{Top: 1100, Height: 900}))
	require.NoError(t, doc.SetRect("#near", ui.Rect{Top: 700, Height: 100}))
	require.NoError(t, doc.SetRect("#far", ui.Rect{Top: 2000, Height: 100}))
	return doc
}

// attachTo attaches the behaviors to surface, which wraps doc.
func attachTo(t *testing.T, doc *htmldoc.Document, surface ui.Surface, post func(func()) bool, opts Options) *fixture {
	t.Helper()
	c := clock.NewFake(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	mgr, err := notification.NewManager(doc, c, notification.DefaultConfig())
	require.NoError(t, err)

	sub := &stubSubmitter{}
	p, err := Attach(context.Background(), Deps{
		Surface:   surface,
		Clock:     c,
		Notifier:  mgr,
		Submitter: sub,
		Post:      post,
		Options:   opts,
	})
	require.NoError(t, err)
	t.Cleanup(p.Detach)
	return &fixture{page: p, doc: doc, clock: c, sub: sub}
}

func hasClass(t *testing.T, doc *htmldoc.Document, sel, class string) bool {
	t.Helper()
	ok, err := doc.HasClass(sel, class)
	require.NoError(t, err)
	return ok
}

func notices(t *testing.T, doc *htmldoc.Document) []string {
	t.Helper()
	refs, err := doc.Select("." + notification.ClassMessage)
	require.NoError(t, err)
	var out []string
	for _, ref := range refs {
		text, err := doc.Text(ref)
		require.NoError(t, err)
		out = append(out, text)
	}
	return out
}

func attr(doc *htmldoc.Document, sel, name string) (string, bool) {
	v, ok, _ := doc.Attr(sel, name)
	return v, ok
}

func TestAttach_RequiresCollaborators(t *testing.T) {
	_, err := Attach(context.Background(), Deps{})
	var verr *common.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestAttach_SkipsMissingHooks(t *testing.T) {
	doc, err := htmldoc.Parse(`<html><body><p>plain</p></body></html>`)
	require.NoError(t, err)
	c := clock.NewFake(time.Now())
	mgr, err := notification.NewManager(doc, c, notification.DefaultConfig())
	require.NoError(t, err)

	p, err := Attach(context.Background(), Deps{Surface: doc, Clock: c, Notifier: mgr, Options: DefaultOptions()})
	require.NoError(t, err)
	defer p.Detach()

	assert.False(t, doc.Dispatch("#nowhere", ui.Event{Type: ui.EventClick}))
	require.NoError(t, doc.ScrollTo(400, false))
	assert.NotEmpty(t, Verify(doc))
}

func TestVerify_CompletePage(t *testing.T) {
	doc, err := htmldoc.Parse(page)
	require.NoError(t, err)
	assert.Empty(t, Verify(doc))

	doc, err = htmldoc.Parse(`<html><body><header id="header"></header></body></html>`)
	require.NoError(t, err)
	missing := Verify(doc)
	names := make([]string, 0, len(missing))
	for _, h := range missing {
		names = append(names, h.Name)
		assert.False(t, h.Optional)
	}
	assert.Contains(t, names, "contact form")
	assert.NotContains(t, names, "header")
}

func TestNavigation_ToggleAndClose(t *testing.T) {
	f := setup(t, nil)

	f.doc.Dispatch(SelNavToggle, ui.Event{Type: ui.EventClick})
	assert.True(t, hasClass(t, f.doc, SelNavMenu, ClassActive))
	assert.True(t, hasClass(t, f.doc, SelNavToggle, ClassActive))
	v, _ := attr(f.doc, SelNavToggle, "aria-expanded")
	assert.Equal(t, "true", v)
	assert.True(t, f.page.MenuOpen())

	f.doc.Dispatch(SelNavToggle, ui.Event{Type: ui.EventClick})
	assert.False(t, hasClass(t, f.doc, SelNavMenu, ClassActive))
	v, _ = attr(f.doc, SelNavToggle, "aria-expanded")
	assert.Equal(t, "false", v)

	f.doc.Dispatch(SelNavToggle, ui.Event{Type: ui.EventClick})
	f.doc.Dispatch(`.nav-link[href="#about"]`, ui.Event{Type: ui.EventClick})
	assert.False(t, hasClass(t, f.doc, SelNavMenu, ClassActive))
	assert.False(t, f.page.MenuOpen())
}

func TestFocus_EscapeClosesMenu(t *testing.T) {
	f := setup(t, nil)

	f.doc.Dispatch(SelNavToggle, ui.Event{Type: ui.EventClick})
	f.doc.Dispatch(ui.Document, ui.Event{Type: ui.EventKeyDown, Key: "Escape"})

	assert.False(t, f.page.MenuOpen())
	assert.False(t, hasClass(t, f.doc, SelNavMenu, ClassActive))
	assert.Equal(t, SelNavToggle, f.doc.Focused())
}

func TestFocus_EscapeWithClosedMenuKeepsFocus(t *testing.T) {
	f := setup(t, nil)

	f.doc.Dispatch(ui.Document, ui.Event{Type: ui.EventKeyDown, Key: "Escape"})
	assert.Empty(t, f.doc.Focused())
}

func TestFocus_KeyboardNavigationClass(t *testing.T) {
	f := setup(t, nil)

	f.doc.Dispatch(ui.Document, ui.Event{Type: ui.EventKeyDown, Key: "Tab"})
	assert.True(t, hasClass(t, f.doc, SelBody, ClassKeyboardNav))

	f.doc.Dispatch(ui.Document, ui.Event{Type: ui.EventMouseDown})
	assert.False(t, hasClass(t, f.doc, SelBody, ClassKeyboardNav))
}

func TestScroll_HeaderAndBackToTop(t *testing.T) {
	f := setup(t, nil)
	assert.False(t, hasClass(t, f.doc, SelHeader, ClassScrolled))

	require.NoError(t, f.doc.ScrollTo(100, false))
	assert.True(t, hasClass(t, f.doc, SelHeader, ClassScrolled))
	assert.False(t, hasClass(t, f.doc, SelBackToTop, ClassVisible))

	f.clock.Advance(100 * time.Millisecond)
	require.NoError(t, f.doc.ScrollTo(600, false))
	assert.True(t, hasClass(t, f.doc, SelBackToTop, ClassVisible))

	f.clock.Advance(100 * time.Millisecond)
	require.NoError(t, f.doc.ScrollTo(0, false))
	assert.False(t, hasClass(t, f.doc, SelHeader, ClassScrolled))
	assert.False(t, hasClass(t, f.doc, SelBackToTop, ClassVisible))
}

func TestScroll_ZeroThresholdsAreKept(t *testing.T) {
	opts := DefaultOptions()
	opts.HeaderScrollThreshold = 0
	opts.BackToTopThreshold = 0
	opts.ScrollThrottle = 0
	f := setupWith(t, nil, opts)

	assert.False(t, hasClass(t, f.doc, SelHeader, ClassScrolled))
	require.NoError(t, f.doc.ScrollTo(10, false))
	assert.True(t, hasClass(t, f.doc, SelHeader, ClassScrolled))
	assert.True(t, hasClass(t, f.doc, SelBackToTop, ClassVisible))
	assert.Equal(t, 100*time.Millisecond, f.page.opts.ScrollThrottle)
}

func TestScroll_Throttled(t *testing.T) {
	f := setup(t, nil)

	require.NoError(t, f.doc.ScrollTo(10, false))
	f.clock.Advance(40 * time.Millisecond)
	require.NoError(t, f.doc.ScrollTo(400, false))
	assert.False(t, hasClass(t, f.doc, SelHeader, ClassScrolled), "second scroll inside the interval is dropped")

	f.clock.Advance(60 * time.Millisecond)
	require.NoError(t, f.doc.ScrollTo(400, false))
	assert.True(t, hasClass(t, f.doc, SelHeader, ClassScrolled))
}

func TestScroll_HighlightsCurrentSection(t *testing.T) {
	f := setup(t, nil)
	assert.True(t, hasClass(t, f.doc, `.nav-link[href="#home"]`, ClassActive))

	require.NoError(t, f.doc.ScrollTo(700, false))
	assert.True(t, hasClass(t, f.doc, `.nav-link[href="#about"]`, ClassActive))
	assert.False(t, hasClass(t, f.doc, `.nav-link[href="#home"]`, ClassActive))

	f.clock.Advance(time.Second)
	require.NoError(t, f.doc.ScrollTo(1050, false))
	assert.True(t, hasClass(t, f.doc, `.nav-link[href="#contact"]`, ClassActive), "the header line is past the contact top")
	assert.False(t, hasClass(t, f.doc, `.nav-link[href="#about"]`, ClassActive))
}

func TestAnchors_SmoothScrollBelowHeader(t *testing.T) {
	f := setup(t, nil)

	prevented := f.doc.Dispatch("#cta", ui.Event{Type: ui.EventClick})
	assert.True(t, prevented)
	assert.Equal(t, float64(1100-60), f.doc.ScrollY())
	assert.True(t, f.doc.LastScrollSmooth())
}

func TestAnchors_IgnoresBareAndUnknownTargets(t *testing.T) {
	f := setup(t, nil)
	f.clock.Advance(time.Second)
	require.NoError(t, f.doc.ScrollTo(300, false))

	f.doc.Dispatch("#dead", ui.Event{Type: ui.EventClick})
	assert.Equal(t, float64(300), f.doc.ScrollY())

	f.doc.Dispatch("#bare", ui.Event{Type: ui.EventClick})
	assert.Equal(t, float64(300), f.doc.ScrollY())
}

func TestAnchors_TargetsAnyID(t *testing.T) {
	doc, err := htmldoc.Parse(`<html><body>
<header id="header"></header>
<a id="to-year" href="#2024">2024</a>
<a id="to-dotted" href="#a.b">a.b</a>
<a id="to-quoted" href='#say"hi"'>quoted</a>
<a id="to-encoded" href="#caf%C3%A9">cafe</a>
<section id="2024"></section>
<section id="a.b"></section>
<section id='say"hi"'></section>
<section id="café"></section>
</body></html>`)
	require.NoError(t, err)
	require.NoError(t, doc.SetRect(SelHeader, ui.Rect{Top: 0, Height: 60}))
	require.NoError(t, doc.SetRect(IDSelector("2024"), ui.Rect{Top: 800, Height: 400}))
	require.NoError(t, doc.SetRect(IDSelector("a.b"), ui.Rect{Top: 1400, Height: 400}))
	require.NoError(t, doc.SetRect(IDSelector(`say"hi"`), ui.Rect{Top: 2000, Height: 400}))
	require.NoError(t, doc.SetRect(IDSelector("café"), ui.Rect{Top: 2600, Height: 400}))
	attachTo(t, doc, doc, nil, DefaultOptions())

	tests := []struct {
		link string
		want float64
	}{
		{"#to-year", 800 - 60},
		{"#to-dotted", 1400 - 60},
		{"#to-quoted", 2000 - 60},
		{"#to-encoded", 2600 - 60},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			assert.True(t, doc.Dispatch(tt.link, ui.Event{Type: ui.EventClick}))
			assert.Equal(t, tt.want, doc.ScrollY())
		})
	}
}

func TestIDSelector(t *testing.T) {
	assert.Equal(t, `[id="contact"]`, IDSelector("contact"))
	assert.Equal(t, `[id="say\"hi\""]`, IDSelector(`say"hi"`))
	assert.Equal(t, `[id="a\\b"]`, IDSelector(`a\b`))
}

func TestAnchors_BackToTop(t *testing.T) {
	f := setup(t, nil)
	require.NoError(t, f.doc.ScrollTo(900, false))

	f.doc.Dispatch(SelBackToTop, ui.Event{Type: ui.EventClick})
	assert.Equal(t, float64(0), f.doc.ScrollY())
	assert.True(t, f.doc.LastScrollSmooth())
}

func TestLazy_LoadsImagesNearViewport(t *testing.T) {
	f := setup(t, nil)

	src, _ := attr(f.doc, "#near", "src")
	assert.Equal(t, "/img/near.png", src)
	_, pending := attr(f.doc, "#near", "data-src")
	assert.False(t, pending)
	assert.True(t, hasClass(t, f.doc, "#near", ClassLoaded))

	_, loaded := attr(f.doc, "#far", "src")
	assert.False(t, loaded)

	require.NoError(t, f.doc.ScrollTo(1200, false))
	src, _ = attr(f.doc, "#far", "src")
	assert.Equal(t, "/img/far.png", src)
	assert.False(t, f.doc.Exists(SelLazyImage))
}

func TestForm_InputValidationIsDebounced(t *testing.T) {
	f := setup(t, nil)
	name := FieldSelector(FieldName)

	require.NoError(t, f.doc.SetValue(name, "a"))
	f.doc.Dispatch(name, ui.Event{Type: ui.EventInput})
	f.clock.Advance(299 * time.Millisecond)
	assert.False(t, hasClass(t, f.doc, name, ClassError))

	f.clock.Advance(time.Millisecond)
	assert.True(t, hasClass(t, f.doc, name, ClassError))
	v, _ := attr(f.doc, name, "aria-invalid")
	assert.Equal(t, "true", v)
	text, err := f.doc.Text(ErrorSelector(FieldName))
	require.NoError(t, err)
	assert.Equal(t, "Name must be at least 2 characters", text)

	require.NoError(t, f.doc.SetValue(name, "Ada"))
	f.doc.Dispatch(name, ui.Event{Type: ui.EventInput})
	f.clock.Advance(300 * time.Millisecond)
	assert.False(t, hasClass(t, f.doc, name, ClassError))
	_, invalid := attr(f.doc, name, "aria-invalid")
	assert.False(t, invalid)
	text, _ = f.doc.Text(ErrorSelector(FieldName))
	assert.Empty(t, text)
}

func TestForm_OnlyLastInputValidated(t *testing.T) {
	f := setup(t, nil)
	email := FieldSelector(FieldEmail)

	f.doc.Dispatch(email, ui.Event{Type: ui.EventInput, Value: "ada@"})
	f.clock.Advance(200 * time.Millisecond)
	f.doc.Dispatch(email, ui.Event{Type: ui.EventInput, Value: "ada@example.com"})
	f.clock.Advance(200 * time.Millisecond)
	assert.False(t, hasClass(t, f.doc, email, ClassError))

	f.clock.Advance(100 * time.Millisecond)
	assert.False(t, hasClass(t, f.doc, email, ClassError))
}

func fill(t *testing.T, doc *htmldoc.Document, name, email, message string) {
	t.Helper()
	require.NoError(t, doc.SetValue(FieldSelector(FieldName), name))
	require.NoError(t, doc.SetValue(FieldSelector(FieldEmail), email))
	require.NoError(t, doc.SetValue(FieldSelector(FieldSubject), "Hello"))
	require.NoError(t, doc.SetValue(FieldSelector(FieldMessage), message))
}

func TestForm_InvalidSubmitShowsErrors(t *testing.T) {
	f := setup(t, nil)
	fill(t, f.doc, "A", "not-an-email", "short")

	prevented := f.doc.Dispatch(SelContactForm, ui.Event{Type: ui.EventSubmit})
	assert.True(t, prevented)
	assert.Empty(t, f.sub.calls())

	for _, field := range []string{FieldName, FieldEmail, FieldMessage} {
		assert.True(t, hasClass(t, f.doc, FieldSelector(field), ClassError), field)
	}
	assert.False(t, hasClass(t, f.doc, FieldSelector(FieldSubject), ClassError))
	assert.Equal(t, []string{"Please fix the errors in the form."}, notices(t, f.doc))
}

func TestForm_SuccessfulSubmit(t *testing.T) {
	f := setup(t, nil)
	fill(t, f.doc, "Ada Lovelace", "ada@example.com", "Let's build an engine together.")

	var during string
	var disabled bool
	f.sub.hook = func() {
		during, _ = f.doc.Text(SelSubmit)
		_, disabled = attr(f.doc, SelSubmit, "disabled")
	}

	f.doc.Dispatch(SelContactForm, ui.Event{Type: ui.EventSubmit})

	require.Len(t, f.sub.calls(), 1)
	assert.Equal(t, ContactMessage{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Hello",
		Message: "Let's build an engine together.",
	}, f.sub.calls()[0])
	assert.Equal(t, "Sending...", during)
	assert.True(t, disabled)

	label, _ := f.doc.Text(SelSubmit)
	assert.Equal(t, "Send Message", label)
	_, disabled = attr(f.doc, SelSubmit, "disabled")
	assert.False(t, disabled)

	assert.Equal(t, []string{"Message sent successfully!"}, notices(t, f.doc))
	v, _ := f.doc.Value(FieldSelector(FieldName))
	assert.Empty(t, v)
	v, _ = f.doc.Value(FieldSelector(FieldMessage))
	assert.Empty(t, v)
}

func TestForm_FailedSubmitKeepsFields(t *testing.T) {
	f := setup(t, nil)
	fill(t, f.doc, "Ada Lovelace", "ada@example.com", "Let's build an engine together.")
	f.sub.err = common.NewSubmissionError("stub", "network error")

	f.doc.Dispatch(SelContactForm, ui.Event{Type: ui.EventSubmit})

	assert.Equal(t, []string{"Failed to send message. Please try again."}, notices(t, f.doc))
	v, _ := f.doc.Value(FieldSelector(FieldName))
	assert.Equal(t, "Ada Lovelace", v)
	label, _ := f.doc.Text(SelSubmit)
	assert.Equal(t, "Send Message", label)
	_, disabled := attr(f.doc, SelSubmit, "disabled")
	assert.False(t, disabled)
}

// textFailingSurface fails Text on the submit button once armed.
type textFailingSurface struct {
	*htmldoc.Document
	fail bool
}

func (s *textFailingSurface) Text(selector string) (string, error) {
	if s.fail && selector == SelSubmit {
		return "", errors.New("node detached")
	}
	return s.Document.Text(selector)
}

func TestForm_LabelKeptWhenTextFails(t *testing.T) {
	doc := parsePage(t, page)
	surface := &textFailingSurface{Document: doc}
	f := attachTo(t, doc, surface, nil, DefaultOptions())
	fill(t, doc, "Ada Lovelace", "ada@example.com", "Let's build an engine together.")

	surface.fail = true
	doc.Dispatch(SelContactForm, ui.Event{Type: ui.EventSubmit})

	require.Len(t, f.sub.calls(), 1)
	label, err := doc.Text(SelSubmit)
	require.NoError(t, err)
	assert.Equal(t, "Send Message", label)
}

func TestForm_InputSubmitLabelRestored(t *testing.T) {
	markup := strings.Replace(page,
		`<button type="submit">Send Message</button>`,
		`<input type="submit" value="Send Message">`, 1)
	doc := parsePage(t, markup)
	f := attachTo(t, doc, doc, nil, DefaultOptions())
	fill(t, doc, "Ada Lovelace", "ada@example.com", "Let's build an engine together.")

	var during string
	f.sub.hook = func() {
		during, _ = doc.Value(SelSubmit)
	}
	doc.Dispatch(SelContactForm, ui.Event{Type: ui.EventSubmit})

	require.Len(t, f.sub.calls(), 1)
	assert.Equal(t, "Sending...", during)
	label, err := doc.Value(SelSubmit)
	require.NoError(t, err)
	assert.Equal(t, "Send Message", label)
}

func TestForm_AsyncSubmitIgnoresDoubleSubmit(t *testing.T) {
	posted := make(chan func(), 1)
	f := setup(t, func(fn func()) bool {
		posted <- fn
		return true
	})
	f.sub.block = make(chan struct{})
	fill(t, f.doc, "Ada Lovelace", "ada@example.com", "Let's build an engine together.")

	f.doc.Dispatch(SelContactForm, ui.Event{Type: ui.EventSubmit})
	f.doc.Dispatch(SelContactForm, ui.Event{Type: ui.EventSubmit})

	label, _ := f.doc.Text(SelSubmit)
	assert.Equal(t, "Sending...", label)

	close(f.sub.block)
	fn := <-posted
	fn()

	assert.Len(t, f.sub.calls(), 1)
	label, _ = f.doc.Text(SelSubmit)
	assert.Equal(t, "Send Message", label)
	assert.Equal(t, []string{"Message sent successfully!"}, notices(t, f.doc))
}

func TestDetach_RemovesListenersAndTimers(t *testing.T) {
	f := setup(t, nil)
	name := FieldSelector(FieldName)

	f.doc.Dispatch(name, ui.Event{Type: ui.EventInput, Value: "a"})
	require.Equal(t, 1, f.clock.Pending())

	f.page.Detach()
	assert.Zero(t, f.doc.ListenerCount())
	assert.Zero(t, f.clock.Pending())

	f.clock.Advance(time.Second)
	assert.False(t, hasClass(t, f.doc, name, ClassError))

	f.doc.Dispatch(SelNavToggle, ui.Event{Type: ui.EventClick})
	assert.False(t, hasClass(t, f.doc, SelNavMenu, ClassActive))

	f.page.Detach()
}

func TestDetach_DropsInFlightResult(t *testing.T) {
	posted := make(chan func(), 1)
	f := setup(t, func(fn func()) bool {
		posted <- fn
		return true
	})
	f.sub.block = make(chan struct{})
	fill(t, f.doc, "Ada Lovelace", "ada@example.com", "Let's build an engine together.")

	f.doc.Dispatch(SelContactForm, ui.Event{Type: ui.EventSubmit})
	f.page.Detach()

	fn := <-posted
	fn()

	assert.Empty(t, notices(t, f.doc))
	label, _ := f.doc.Text(SelSubmit)
	assert.Equal(t, "Sending...", label)
}

func TestValidateContact(t *testing.T) {
	tests := []struct {
		name string
		msg  ContactMessage
		want map[string]string
	}{
		{
			name: "valid without subject",
			msg:  ContactMessage{Name: "Al", Email: "al@b.co", Message: "0123456789"},
			want: map[string]string{},
		},
		{
			name: "all empty",
			msg:  ContactMessage{},
			want: map[string]string{
				FieldName:    "Name is required",
				FieldEmail:   "Email is required",
				FieldMessage: "Message is required",
			},
		},
		{
			name: "too short and malformed",
			msg:  ContactMessage{Name: "A", Email: "a@b", Message: "hi there"},
			want: map[string]string{
				FieldName:    "Name must be at least 2 characters",
				FieldEmail:   "Please enter a valid email address",
				FieldMessage: "Message must be at least 10 characters",
			},
		},
		{
			name: "whitespace only counts as empty",
			msg:  ContactMessage{Name: "  ", Email: "a b@c.d", Message: "          "},
			want: map[string]string{
				FieldName:    "Name is required",
				FieldEmail:   "Please enter a valid email address",
				FieldMessage: "Message is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateContact(tt.msg))
		})
	}
}
