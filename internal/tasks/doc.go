// Package tasks orchestrates the book-to-soundtrack pipeline with real-time progress reporting.
//
// # Core Operations
//
// The [SoundtrackEngine] interface defines the pipeline operations:
//
//  1. [SoundtrackEngine.Run] : Full book → soundtrack generation
//     - Looks up the book's metadata
//     - Analyzes the book into a mood profile via the generative-text service
//     - Searches the music catalog with weighted queries and ranks the results
//
//  2. [SoundtrackEngine.Match] : Profile → ranked track list
//     - Builds weighted search queries from the profile categories
//     - Issues each query in turn, skipping failed queries with a warning
//     - Deduplicates by track ID and sorts by popularity
//
//  3. [SoundtrackEngine.CreatePlaylist] : Persist a soundtrack to the user's account
//     - Composes the playlist name and description from the book and profile
//     - Adds tracks in batches of 50 in ranked order
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, and messages for display.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [BookEngine] implements [SoundtrackEngine] with dependencies on:
//   - a book metadata lookup client (internal/books)
//   - a profile analyzer backed by a generative-text completer (internal/profile)
//   - [services.Service] : the music catalog client
package tasks
