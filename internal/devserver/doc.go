// Package devserver is an in-memory implementation of the backend REST
// contract the console talks to. It serves every registered resource under
// /{resource} with soft delete and restore, exposes request counters at
// /metrics, and is used both by `schoolconsole dev-server` and as the
// end-to-end fixture in tests.
package devserver
