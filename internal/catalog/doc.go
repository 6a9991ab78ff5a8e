// Package catalog maintains the locally cached repository listings for the
// configured hosting organizations. It fetches paginated listings with
// conditional requests, persists per-page snapshots alongside a merged name
// list, and resolves user-facing module short names against those listings.
package catalog
