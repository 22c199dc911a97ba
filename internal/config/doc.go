// Package config loads, normalizes, and validates Zender configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ZENDER_VRTMAX_EMAIL. The Config type centralizes every knob the CLI needs,
// so cookie/state directories and platform credentials are discovered in one
// pass.
package config
