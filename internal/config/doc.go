// Package config manages user-level settings stored at
// ~/.machine-creator/config.yaml. Values can be overridden through
// MACHINE_CREATOR_* environment variables; command-line flags take
// precedence over both.
package config
