// Package workspace models the flat checkout directory holding one
// subdirectory per module. All module discovery goes through explicit
// directory enumeration rather than shell globbing.
package workspace
