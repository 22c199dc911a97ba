package vrtmax

import (
	"errors"
	"fmt"
)

// Step names the resolution phase an error occurred in, so callers can
// tell an authentication failure from a missing manifest.
type Step string

const (
	// StepMetadata covers the metadata query resolving title and stream id.
	StepMetadata Step = "metadata"
	// StepToken covers the player token exchange.
	StepToken Step = "token"
	// StepManifest covers the media aggregator call and manifest selection.
	StepManifest Step = "manifest"
	// StepBody covers the optional manifest body fetch.
	StepBody Step = "body"
)

// ResolveError tags a resolution failure with the step it occurred in.
type ResolveError struct {
	Step Step
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Step, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

func resolveErr(step Step, err error) error {
	return &ResolveError{Step: step, Err: err}
}

// ErrNoManifest reports an aggregator response without an adaptive
// streaming manifest entry. There is no fallback format.
var ErrNoManifest = errors.New("no MPEG-DASH manifest in aggregator response")

// ErrMissingCredentials reports that credential submission is required
// but email or password is not configured.
var ErrMissingCredentials = errors.New("vrtmax email and password not configured")

// ErrIdentityCookie reports that the identity cookie was absent after an
// otherwise successful authentication round-trip.
var ErrIdentityCookie = errors.New("identity cookie " + identityCookieName + " missing after login")
