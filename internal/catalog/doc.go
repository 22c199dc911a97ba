// Package catalog holds the series/season/episode model produced by
// platform traversal and persists snapshots of it in SQLite.
//
// Each traversal run is stored as one scrape run keyed by a UUID, so
// successive runs can be compared and the CLI can always show the most
// recent complete snapshot.
package catalog
