// Package utils hosts configuration loading, logger construction, and small
// shared helpers used by the y2m command-line application.
package utils
