// Package repositories provides SQLite-backed persistence for booktrack.
//
// # Book Lookup Cache
//
// [BookRepository] caches resolved book metadata keyed by a normalized
// title/author lookup key so repeated runs against the same book skip the
// upstream catalog call. It satisfies the cache interface the books client
// accepts, so wiring is a single SetCache call at startup.
//
// Entries never expire; the `cache clear` command empties the table.
package repositories
