// Package gitrepo wraps the git operations needed for module checkouts:
// shallow clones, conversion to full history, pulls, and branch switches.
package gitrepo
