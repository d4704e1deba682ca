// Package config loads, normalizes, and validates ema-avatar configuration.
//
// It supplies defaults, reads TOML files from an explicit path,
// ~/.config/ema-avatar/config.toml or ./ema-avatar.toml, and honours the
// EMA_AVATAR_BASE_URL, EMA_AVATAR_ENDPOINT and EMA_AVATAR_ACTOR environment
// overrides. Downstream code converts the values into client options through
// the helper methods instead of reading raw fields.
package config
