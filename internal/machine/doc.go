// Package machine defines the shape of a machine template: the file layout
// every template directory shares and the naming convention for machine
// names. Both the creator and the validator apply these rules.
package machine
