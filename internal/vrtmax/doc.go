// Package vrtmax drives the VRT MAX platform: authenticated browser
// sessions, player token derivation, manifest and DRM resolution, and
// catalog traversal over the platform's GraphQL component tree.
//
// The package splits into four cooperating pieces:
//
//   - SessionProvider walks the login/consent flow in a headless browser
//     and yields a persisted cookie session plus the identity token.
//   - Client is the shared HTTP surface: the GraphQL endpoint, the token
//     issuer, the media aggregator, and the player bundle.
//   - Resolver turns an episode page URL into a playable manifest URL
//     with its optional DRM token.
//   - Scraper enumerates all series, seasons, and episodes through the
//     cursor-paginated listing and per-series component trees.
//
// All network calls run sequentially on purpose: parallel traffic against
// the platform trips its rate limiting.
package vrtmax
