// Package config loads and validates subtrack configuration.
//
// Configuration lives in a TOML file resolved from an explicit path, then
// ~/.config/subtrack/config.toml, then ./subtrack.toml. A missing file is not
// an error; defaults apply and the file only overrides what it sets. All path
// fields are expanded (~ and relative forms) before use.
package config
