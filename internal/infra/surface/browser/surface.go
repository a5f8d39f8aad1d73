// Package browser implements ui.Surface over a live Chrome page driven
// through the DevTools protocol.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"folio/internal/common"
	"folio/internal/config"
	"folio/internal/ui"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

var _ ui.Surface = (*Surface)(nil)

const defaultTimeout = 30 * time.Second

// Surface is a rod page addressed by CSS selectors.
type Surface struct {
	ctx      context.Context
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration

	mu       sync.Mutex
	handlers map[int]func(ui.Event)
	nextID   int
}

// Open connects to the browser at cfg.ControlURL, or launches one, and
// loads url in a new page.
func Open(ctx context.Context, cfg config.BrowserConfig, url string) (*Surface, error) {
	s := &Surface{
		ctx:      ctx,
		timeout:  cfg.Timeout(),
		handlers: make(map[int]func(ui.Event)),
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}

	controlURL := cfg.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(cfg.Headless)
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		s.launcher = l
		controlURL = u
	}

	s.browser = rod.New().ControlURL(controlURL).Context(ctx)
	if err := s.browser.Connect(); err != nil {
		s.killLauncher()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open page %s: %w", url, err)
	}
	if err := page.Timeout(s.timeout).WaitLoad(); err != nil {
		s.Close()
		return nil, fmt.Errorf("load page %s: %w", url, err)
	}
	s.page = page

	if _, err := s.eval(prelude); err != nil {
		s.Close()
		return nil, fmt.Errorf("install page hooks: %w", err)
	}

	slog.Info("browser page opened", "url", url, "launched", s.launcher != nil)
	return s, nil
}

// Close shuts the browser down. A launched browser process is killed.
func (s *Surface) Close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}
	s.killLauncher()
	return err
}

func (s *Surface) killLauncher() {
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher = nil
	}
}

// eval runs js with args and returns the JSON encoding of its result.
func (s *Surface) eval(js string, args ...any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	res, err := s.page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:           js,
		JSArgs:       args,
		ByValue:      true,
		AwaitPromise: true,
	})
	if err != nil {
		return nil, err
	}
	if res == nil || res.Value.Nil() {
		return []byte("null"), nil
	}
	return res.Value.MarshalJSON()
}

// matchResult is what every onElements script returns.
type matchResult struct {
	N int             `json:"n"`
	V json.RawMessage `json:"v"`
}

// on runs an onElements script against selector and decodes its value
// into out when out is non-nil. With must set, an empty match is a
// NotFoundError.
func (s *Surface) on(js, selector string, must bool, out any, args ...any) (int, error) {
	raw, err := s.eval(js, append([]any{selector}, args...)...)
	if err != nil {
		return 0, fmt.Errorf("evaluating on %q: %w", selector, err)
	}

	var r matchResult
	if err := json.Unmarshal(raw, &r); err != nil {
		return 0, fmt.Errorf("decoding result for %q: %w", selector, err)
	}
	if err := matchError(r.N, selector, must); err != nil {
		return r.N, err
	}
	if out != nil && r.N > 0 && len(r.V) > 0 {
		if err := json.Unmarshal(r.V, out); err != nil {
			return r.N, fmt.Errorf("decoding value for %q: %w", selector, err)
		}
	}
	return r.N, nil
}

func matchError(n int, selector string, must bool) error {
	switch {
	case n < 0:
		return common.NewValidationError(fmt.Sprintf("invalid selector %q", selector))
	case n == 0 && must:
		return common.NewNotFoundError("element", selector)
	}
	return nil
}

func (s *Surface) Select(selector string) ([]string, error) {
	refs := []string{}
	if _, err := s.on(jsSelect, selector, false, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func (s *Surface) Exists(selector string) bool {
	n, err := s.on(jsSelect, selector, false, nil)
	return err == nil && n > 0
}

func (s *Surface) AddClass(selector string, classes ...string) error {
	_, err := s.on(jsAddClass, selector, true, nil, classes)
	return err
}

func (s *Surface) RemoveClass(selector string, classes ...string) error {
	_, err := s.on(jsRemoveClass, selector, true, nil, classes)
	return err
}

func (s *Surface) HasClass(selector, class string) (bool, error) {
	var ok bool
	_, err := s.on(jsHasClass, selector, true, &ok, class)
	return ok, err
}

func (s *Surface) Attr(selector, name string) (string, bool, error) {
	var v *string
	if _, err := s.on(jsAttr, selector, true, &v, name); err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

func (s *Surface) SetAttr(selector, name, value string) error {
	_, err := s.on(jsSetAttr, selector, true, nil, name, value)
	return err
}

func (s *Surface) RemoveAttr(selector, name string) error {
	_, err := s.on(jsRemoveAttr, selector, true, nil, name)
	return err
}

func (s *Surface) Text(selector string) (string, error) {
	var t string
	_, err := s.on(jsText, selector, true, &t)
	return t, err
}

func (s *Surface) SetText(selector, text string) error {
	_, err := s.on(jsSetText, selector, true, nil, text)
	return err
}

func (s *Surface) Value(selector string) (string, error) {
	var v string
	_, err := s.on(jsValue, selector, true, &v)
	return v, err
}

func (s *Surface) SetValue(selector, value string) error {
	_, err := s.on(jsSetValue, selector, true, nil, value)
	return err
}

func (s *Surface) Append(parent string, el *ui.Element) error {
	markup, err := el.Render()
	if err != nil {
		return err
	}
	_, err = s.on(jsAppend, parent, true, nil, markup)
	return err
}

func (s *Surface) Remove(selector string) error {
	_, err := s.on(jsRemove, selector, true, nil)
	return err
}

func (s *Surface) Focus(selector string) error {
	_, err := s.on(jsFocus, selector, true, nil)
	return err
}

func (s *Surface) Rect(selector string) (ui.Rect, error) {
	var r struct {
		Top    float64 `json:"top"`
		Height float64 `json:"height"`
	}
	if _, err := s.on(jsRect, selector, true, &r); err != nil {
		return ui.Rect{}, err
	}
	return ui.Rect{Top: r.Top, Height: r.Height}, nil
}

func (s *Surface) Viewport() (ui.Viewport, error) {
	raw, err := s.eval(jsViewport)
	if err != nil {
		return ui.Viewport{}, fmt.Errorf("reading viewport: %w", err)
	}
	var v struct {
		ScrollY float64 `json:"scrollY"`
		Height  float64 `json:"height"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return ui.Viewport{}, fmt.Errorf("decoding viewport: %w", err)
	}
	return ui.Viewport{ScrollY: v.ScrollY, Height: v.Height}, nil
}

func (s *Surface) ScrollTo(y float64, smooth bool) error {
	if y < 0 {
		y = 0
	}
	if _, err := s.eval(jsScrollTo, y, smooth); err != nil {
		return fmt.Errorf("scrolling to %.0f: %w", y, err)
	}
	return nil
}
