// Package browser manages headless Chromium sessions for platform drivers.
//
// A Session owns the allocator and tab contexts for one browser run and
// tears both down on Close. Cookie state moves between the on-disk model
// in internal/cookies and the DevTools protocol types, so drivers can
// restore a persisted session before the first navigation and read the
// full cookie jar back after authenticating.
package browser
