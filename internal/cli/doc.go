// Package cli implements the schoolconsole command tree.
package cli
