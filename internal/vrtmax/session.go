package vrtmax

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/gofrs/flock"

	"zender/internal/browser"
	"zender/internal/config"
	"zender/internal/cookies"
	"zender/internal/platform"
)

// identityCookieName is the cookie carrying the platform identity token
// after authentication.
const identityCookieName = "vrtnu-site_profile_vt"

// DOM markers of the login and consent flow.
const (
	consentFrameSelector  = `iframe[src*="consent"]`
	consentAcceptSelector = `button[aria-label="Alles accepteren"]`
	loginWidgetSelector   = `sso-login`
	loggedInSelector      = `li.menu-link a.afmelden`
	loginLinkSelector     = `a.realAanmelden`
	emailInputSelector    = `input#email-id-email`
	passwordInputSelector = `input#password-id-password`
	loginSubmitSelector   = `form button[type="submit"]`
)

// navigationSettle is the pause after a navigation before probing the DOM.
const navigationSettle = 3 * time.Second

// SessionProvider walks the VRT MAX login flow in a headless browser and
// yields an authenticated cookie session. One provider owns one browser
// at a time; a file lock serializes login rounds across processes
// sharing a cookie directory.
type SessionProvider struct {
	platformCfg config.VRTMax
	browserOpts browser.Options
	store       *cookies.Store
	lock        *flock.Flock
	logger      *slog.Logger
}

// NewSessionProvider builds a provider over the shared cookie store.
func NewSessionProvider(cfg *config.Config, store *cookies.Store, logger *slog.Logger) *SessionProvider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SessionProvider{
		platformCfg: cfg.VRTMax,
		browserOpts: browser.Options{
			Headless:     cfg.Browser.Headless,
			ExecPath:     cfg.Browser.ExecPath,
			UserAgent:    cfg.Browser.UserAgent,
			Locale:       cfg.Browser.Locale,
			ProbeTimeout: time.Duration(cfg.Browser.ProbeTimeoutSeconds) * time.Second,
			Logger:       logger,
		},
		store:  store,
		lock:   flock.New(store.Path(string(platform.VRTMax)) + ".lock"),
		logger: logger,
	}
}

// Authenticate drives the login flow and returns the persisted session
// plus the identity token extracted from it. Cookies are saved back to
// the store on every successful round-trip, including the
// already-logged-in path, because some carry rotating values.
func (p *SessionProvider) Authenticate(ctx context.Context) (cookies.Session, string, error) {
	// Credential submission may turn out unnecessary, but a run that
	// needs it must not discover the gap after the browser is already
	// talking to the platform.
	if p.platformCfg.Email == "" || p.platformCfg.Password == "" {
		return cookies.Session{}, "", ErrMissingCredentials
	}

	locked, err := p.lock.TryLockContext(ctx, 500*time.Millisecond)
	if err != nil {
		return cookies.Session{}, "", fmt.Errorf("acquire login lock: %w", err)
	}
	if !locked {
		return cookies.Session{}, "", fmt.Errorf("login lock %s held elsewhere", p.lock.Path())
	}
	defer func() {
		_ = p.lock.Unlock()
	}()

	saved, err := p.store.Load(string(platform.VRTMax))
	if err != nil {
		p.logger.Debug("no saved session, starting unauthenticated")
	}

	sess, err := browser.Start(ctx, p.browserOpts)
	if err != nil {
		return cookies.Session{}, "", err
	}
	defer sess.Close()

	if err := sess.RestoreCookies(saved.Cookies); err != nil {
		return cookies.Session{}, "", err
	}
	if err := sess.Navigate(p.platformCfg.BaseURL+"/vrtmax/", navigationSettle); err != nil {
		return cookies.Session{}, "", err
	}

	p.dismissConsent(sess)

	if p.isLoggedIn(sess) {
		p.logger.Info("already authenticated")
	} else {
		if err := p.submitCredentials(sess); err != nil {
			return cookies.Session{}, "", err
		}
		p.logger.Info("authenticated with credentials")
	}

	return p.persistSession(sess)
}

// dismissConsent clears the cookie consent overlay when present. Its
// absence is the steady state after first dismissal, not an error.
func (p *SessionProvider) dismissConsent(sess *browser.Session) {
	if !sess.Probe(consentFrameSelector) {
		p.logger.Debug("no consent overlay")
		return
	}
	err := sess.Run(
		chromedp.Click(consentAcceptSelector, chromedp.BySearch),
		chromedp.Sleep(time.Second),
	)
	if err != nil {
		p.logger.Debug("consent dismissal failed", slog.String("error", err.Error()))
		return
	}
	p.logger.Debug("consent overlay dismissed")
}

// isLoggedIn probes for the sign-out affordance that only renders for an
// authenticated profile. The widget materializes its menu on hover.
func (p *SessionProvider) isLoggedIn(sess *browser.Session) bool {
	if err := sess.Run(hover(loginWidgetSelector)); err != nil {
		p.logger.Debug("login widget hover failed", slog.String("error", err.Error()))
		return false
	}
	return sess.ProbeFrame(loggedInSelector)
}

// submitCredentials fills in the login form. An absent sign-out marker
// afterwards is a protocol error. Credentials were verified present
// before the browser launched.
func (p *SessionProvider) submitCredentials(sess *browser.Session) error {
	err := sess.Run(
		hover(loginWidgetSelector),
		chromedp.Click(loginLinkSelector, chromedp.BySearch),
		chromedp.WaitVisible(emailInputSelector, chromedp.BySearch),
		chromedp.SendKeys(emailInputSelector, p.platformCfg.Email, chromedp.BySearch),
		chromedp.WaitVisible(passwordInputSelector, chromedp.BySearch),
		chromedp.SendKeys(passwordInputSelector, p.platformCfg.Password, chromedp.BySearch),
		chromedp.Click(loginSubmitSelector, chromedp.BySearch),
		chromedp.Sleep(navigationSettle),
	)
	if err != nil {
		return fmt.Errorf("submit credentials: %w", err)
	}

	if !p.isLoggedIn(sess) {
		return fmt.Errorf("sign-out marker %q absent after credential submission", loggedInSelector)
	}
	return nil
}

// cookieSource yields the authenticated browser's cookie jar. It exists
// so session persistence can be exercised without a live browser.
type cookieSource interface {
	Cookies() ([]cookies.Cookie, error)
}

// persistSession reads the cookie jar back, saves it, and extracts the
// identity token. Saving happens before the token check: cookies carry
// rotating values worth keeping even when the identity cookie is gone.
func (p *SessionProvider) persistSession(src cookieSource) (cookies.Session, string, error) {
	jar, err := src.Cookies()
	if err != nil {
		return cookies.Session{}, "", err
	}

	session := cookies.Session{Platform: string(platform.VRTMax), Cookies: jar}
	if err := p.store.Save(session.Platform, session); err != nil {
		return cookies.Session{}, "", err
	}
	p.logger.Debug("session persisted", slog.Int("cookies", len(jar)))

	token, ok := session.Value(identityCookieName)
	if !ok || token == "" {
		return cookies.Session{}, "", ErrIdentityCookie
	}
	return session, token, nil
}

// IdentityToken satisfies IdentityProvider by running a full
// authentication round-trip.
func (p *SessionProvider) IdentityToken(ctx context.Context) (string, error) {
	_, token, err := p.Authenticate(ctx)
	return token, err
}

// hover dispatches a mouseover on the first element matching the
// selector. The login widget renders its menu only on hover, so a plain
// visibility probe never sees the sign-out link without this.
func hover(selector string) chromedp.Action {
	script := fmt.Sprintf(
		`document.querySelector(%q)?.dispatchEvent(new MouseEvent("mouseover", {bubbles: true}))`,
		selector)
	return chromedp.Evaluate(script, nil)
}
