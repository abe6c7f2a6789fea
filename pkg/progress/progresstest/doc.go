// Package progresstest provides a strictly validating in-memory monitor and a
// capturing configuration for testing code that reports progress.
package progresstest
