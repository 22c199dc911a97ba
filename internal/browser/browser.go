package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"

	"zender/internal/cookies"
)

// Options configures a browser session.
type Options struct {
	// Headless runs the browser without a visible window.
	Headless bool
	// ExecPath overrides the Chromium binary location. Empty means
	// chromedp's own lookup order.
	ExecPath string
	// UserAgent replaces the browser's default user agent when non-empty.
	UserAgent string
	// Locale is passed as the browser UI language and Accept-Language
	// header, e.g. "nl-BE".
	Locale string
	// ProbeTimeout bounds DOM-presence probes. Zero means 2 seconds.
	ProbeTimeout time.Duration
	// Logger receives session lifecycle events. Nil discards them.
	Logger *slog.Logger
}

func (o Options) probeTimeout() time.Duration {
	if o.ProbeTimeout <= 0 {
		return 2 * time.Second
	}
	return o.ProbeTimeout
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Session is a live browser with one open tab. It is not safe for
// concurrent use.
type Session struct {
	ctx          context.Context
	cancel       context.CancelFunc
	probeTimeout time.Duration
	logger       *slog.Logger
}

// Start launches the browser and opens a tab. The session inherits
// cancellation from parent; Close releases it either way.
func Start(parent context.Context, opts Options) (*Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("window-size", "1920,1080"),
	)
	if opts.Locale != "" {
		allocOpts = append(allocOpts, chromedp.Flag("lang", opts.Locale))
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	session := &Session{
		ctx: tabCtx,
		cancel: func() {
			cancelTab()
			cancelAlloc()
		},
		probeTimeout: opts.probeTimeout(),
		logger:       opts.logger(),
	}

	actions := chromedp.Tasks{network.Enable()}
	if opts.Locale != "" {
		actions = append(actions, network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": opts.Locale,
		}))
	}
	if err := chromedp.Run(tabCtx, actions); err != nil {
		session.Close()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	session.logger.Debug("browser session started",
		slog.Bool("headless", opts.Headless),
		slog.String("locale", opts.Locale))
	return session, nil
}

// Close shuts down the tab and the browser process.
func (s *Session) Close() {
	s.cancel()
}

// Run executes chromedp actions against the session's tab.
func (s *Session) Run(actions ...chromedp.Action) error {
	return chromedp.Run(s.ctx, actions...)
}

// Navigate loads a URL and waits for the load to settle.
func (s *Session) Navigate(url string, settle time.Duration) error {
	if err := chromedp.Run(s.ctx,
		chromedp.Navigate(url),
		chromedp.Sleep(settle),
	); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// Probe reports whether a selector becomes visible within the configured
// probe timeout. Elements that never appear are a normal outcome, not an
// error.
func (s *Session) Probe(selector string) bool {
	probeCtx, cancel := context.WithTimeout(s.ctx, s.probeTimeout)
	defer cancel()

	err := chromedp.Run(probeCtx, chromedp.WaitVisible(selector, chromedp.ByQuery))
	if err != nil {
		s.logger.Debug("probe missed", slog.String("selector", selector))
		return false
	}
	return true
}

// ProbeFrame reports whether a selector becomes visible inside any iframe
// within the probe timeout.
func (s *Session) ProbeFrame(selector string) bool {
	probeCtx, cancel := context.WithTimeout(s.ctx, s.probeTimeout)
	defer cancel()

	err := chromedp.Run(probeCtx, chromedp.WaitVisible(selector, chromedp.BySearch))
	if err != nil {
		s.logger.Debug("frame probe missed", slog.String("selector", selector))
		return false
	}
	return true
}

// RestoreCookies installs a persisted session's cookies before navigation.
func (s *Session) RestoreCookies(list []cookies.Cookie) error {
	if len(list) == 0 {
		return nil
	}
	params := ToCookieParams(list)
	if err := chromedp.Run(s.ctx, network.SetCookies(params)); err != nil {
		return fmt.Errorf("set cookies: %w", err)
	}
	s.logger.Debug("cookies restored", slog.Int("count", len(list)))
	return nil
}

// Cookies reads the browser's full cookie jar.
func (s *Session) Cookies() ([]cookies.Cookie, error) {
	var raw []*network.Cookie
	err := chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var actionErr error
		raw, actionErr = storage.GetCookies().Do(ctx)
		return actionErr
	}))
	if err != nil {
		return nil, fmt.Errorf("read cookies: %w", err)
	}
	return FromNetworkCookies(raw), nil
}

// Location returns the tab's current URL.
func (s *Session) Location() (string, error) {
	var current string
	if err := chromedp.Run(s.ctx, chromedp.Location(&current)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return current, nil
}
