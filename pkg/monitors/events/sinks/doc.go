// Package sinks provides events.Sink implementations.
package sinks
