// Package models defines the plain data records exchanged between pipeline stages.
//
// The pipeline stages communicate only through these values:
//   - [BookRecord] : Canonical book metadata from the catalog lookup
//   - [SearchQuery] : One weighted music search request
//   - [Track] : Normalized music catalog item with identity and popularity
//   - [Playlist] : A playlist created on the streaming service
//
// Each pipeline run operates on its own values with no cross-run sharing.
package models
