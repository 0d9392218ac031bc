package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	LookupBook Phase = iota
	AnalyzeBook
	SearchTracks
	RankTracks
	CreatePlaylist
	AddTracks
)

func (p Phase) String() string {
	switch p {
	case LookupBook:
		return "lookup_book"
	case AnalyzeBook:
		return "analyze_book"
	case SearchTracks:
		return "search_tracks"
	case RankTracks:
		return "rank_tracks"
	case CreatePlaylist:
		return "create_playlist"
	case AddTracks:
		return "add_tracks"
	default:
		return ""
	}
}

func lookupUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LookupBook,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Looking up book (%s)...", title),
	}
}

func analyzeUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AnalyzeBook,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Analyzing mood and themes (%s)...", title),
	}
}

func searchUpdate(step, total int, terms string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Searching catalog (%s)...", terms),
	}
}

func rankUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RankTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Ranking %d candidate tracks...", count),
	}
}

func createPlaylistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Creating playlist (%s)...", name),
	}
}

func addTracksUpdate(step, total, batch, batches int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Adding tracks (batch %d/%d)...", batch, batches),
	}
}
