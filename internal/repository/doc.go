// Package repository implements the REST contract every school module shares:
// list active, list inactive, get, create, update, logical delete and restore,
// each wrapped in a {"data": ...} envelope.
//
// Responses are decoded defensively. A list whose data field is not a
// sequence yields an empty slice together with ErrEnvelopeShape so callers can
// render an empty list and surface a diagnostic instead of failing.
package repository
