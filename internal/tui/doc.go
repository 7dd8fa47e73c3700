// Package tui implements the interactive Bubble Tea console.
//
// The console shows one module at a time as a paged table. Loads and
// lifecycle actions run as commands against a console.Session; confirmations
// requested by the lifecycle controller arrive through Gateway and are
// answered from a modal.
package tui
