// Package cli defines the Cobra commands behind the init-machine and
// validate-machine binaries. Commands only handle flag parsing, output
// formatting, and exit status; creation and validation live in the scaffold
// and validate packages.
package cli
