// Package config loads, normalizes, and validates subfix configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// AAIKEY. The Config type centralizes every knob the CLI needs, so the
// AssemblyAI credential, polling cadence, prompt behaviour, and cache location
// are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
