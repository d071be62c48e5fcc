// Package config loads, normalizes, and validates snapsort's TOML
// configuration. Defaults apply when no config file exists; path fields are
// tilde-expanded during Load so the rest of the code only sees absolute
// paths.
package config
