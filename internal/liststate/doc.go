// Package liststate holds the per-module list state of the console: the raw
// collection, the loading flag, the search/category filter, the visibility
// toggle and the current page.
//
// State is an immutable value. Every change is a named transition
// (LoadStarted, LoadSucceeded, LoadFailed, FilterChanged, GoToPage, ...)
// returning a new State, so the transition table can be tested without any
// rendering. Store wraps a State for callers that load asynchronously and
// discards responses that were superseded by a newer request.
package liststate
