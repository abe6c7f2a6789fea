// Package progress defines the monitor contract that long-running tasks report
// progress through, plus the deferred-construction layer that lets callers pick a
// display backend without knowing the total ahead of time.
//
// A library function accepts an Arg, learns its total inside the function body,
// and turns the Arg into a Monitor with Registry.Acquire (or wraps its loop with
// Iterate). Applications decide which backend an Arg means by populating a
// Registry during setup; see package monitors for the stock backends.
package progress
