// Package modules implements the bulk checkout commands: listing the
// available repositories, cloning a module set over ssh or read-only
// transport, pulling updates, and switching branches across checkouts.
package modules
