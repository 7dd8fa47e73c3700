// Package console erases the entity type of the generic list and lifecycle
// core so the CLI and the interactive console can drive any registered
// module by name.
//
// A Definition[T] describes one entity module (its REST resource, search
// fields, category field and table columns). Opening a definition against
// an Env yields a Session that owns the module's liststate.Store and
// lifecycle.Controller for as long as the module is on screen.
package console
