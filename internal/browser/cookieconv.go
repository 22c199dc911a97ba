package browser

import (
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"

	"zender/internal/cookies"
)

// ToCookieParams converts persisted cookies into the DevTools parameters
// used to install them in a live browser.
func ToCookieParams(list []cookies.Cookie) []*network.CookieParam {
	params := make([]*network.CookieParam, 0, len(list))
	for _, c := range list {
		param := &network.CookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
		}
		if c.SameSite != "" {
			param.SameSite = network.CookieSameSite(c.SameSite)
		}
		// Expires <= 0 marks a session cookie; the protocol expects the
		// field to be absent in that case.
		if c.Expires > 0 {
			expiry := cdp.TimeSinceEpoch(time.Unix(0, int64(c.Expires*float64(time.Second))))
			param.Expires = &expiry
		}
		params = append(params, param)
	}
	return params
}

// FromNetworkCookies converts a live browser's cookie jar into the
// persisted model.
func FromNetworkCookies(raw []*network.Cookie) []cookies.Cookie {
	list := make([]cookies.Cookie, 0, len(raw))
	for _, nc := range raw {
		c := cookies.Cookie{
			Name:     nc.Name,
			Value:    nc.Value,
			Domain:   nc.Domain,
			Path:     nc.Path,
			HTTPOnly: nc.HTTPOnly,
			Secure:   nc.Secure,
			SameSite: string(nc.SameSite),
		}
		if !nc.Session {
			c.Expires = nc.Expires
		}
		list = append(list, c)
	}
	return list
}
