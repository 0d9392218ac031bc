package tasks

import (
	"fmt"

	"booktrack/internal/models"
	"booktrack/internal/profile"
)

// Category weights for query limit calculation. Each query's limit is the
// floor of maxTracks multiplied by its category weight.
const (
	genreWeight     = 0.25
	toneGenreWeight = 0.3
	moodWeight      = 0.3
	keywordWeight   = 0.15
)

// BuildQueries derives the weighted catalog search queries for a profile.
//
// Query construction is deterministic: genre queries use the catalog's field
// syntax, tone-genre pairs combine the first two entries of each category,
// mood queries use the first three moods, and keyword queries use every
// keyword. Categories absent from the profile simply generate no queries.
func BuildQueries(p profile.Profile, maxTracks int) []models.SearchQuery {
	var queries []models.SearchQuery

	genres := p.Terms(profile.CategoryGenres)
	for _, genre := range genres {
		queries = append(queries, models.SearchQuery{
			Terms: fmt.Sprintf("genre:%q", genre),
			Limit: int(float64(maxTracks) * genreWeight),
		})
	}

	tones := p.First(profile.CategoryEmotionalTones, 2)
	if len(tones) > 0 && len(genres) > 0 {
		for _, tone := range tones {
			for _, genre := range p.First(profile.CategoryGenres, 2) {
				queries = append(queries, models.SearchQuery{
					Terms: fmt.Sprintf("%s %s", tone, genre),
					Limit: int(float64(maxTracks) * toneGenreWeight),
				})
			}
		}
	}

	for _, mood := range p.First(profile.CategoryMoods, 3) {
		queries = append(queries, models.SearchQuery{
			Terms: mood,
			Limit: int(float64(maxTracks) * moodWeight),
		})
	}

	for _, keyword := range p.Terms(profile.CategoryKeywords) {
		queries = append(queries, models.SearchQuery{
			Terms: keyword,
			Limit: int(float64(maxTracks) * keywordWeight),
		})
	}

	return queries
}
