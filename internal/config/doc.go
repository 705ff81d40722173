// Package config manages user-level settings stored at ~/.platshim/config.yaml.
// Values can be overridden with PLATSHIM_* environment variables; command
// flags bound with BindFlag take precedence over both.
package config
