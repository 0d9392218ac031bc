// Package profile derives a structured musical mood profile from book
// metadata using a generative text model.
//
// The profile is a category → ordered term list mapping parsed out of the
// model's free-text response. Order within a category is significant: it
// reflects the model's stated priority and drives search query construction.
package profile

import (
	"fmt"
	"sort"
	"strings"
)

// Fixed category names requested from the generative model.
const (
	CategoryEmotionalTones = "Emotional Tones"
	CategoryGenres         = "Genres"
	CategoryMoods          = "Moods"
	CategoryTimePeriod     = "Time Period/Cultural Context"
	CategoryKeywords       = "Keywords"
)

// Categories returns the expected category names in canonical order.
func Categories() []string {
	return []string{
		CategoryEmotionalTones,
		CategoryGenres,
		CategoryMoods,
		CategoryTimePeriod,
		CategoryKeywords,
	}
}

// Profile maps a category name to its ordered list of terms. A category the
// model omitted has no entry. Read-only once derived.
type Profile map[string][]string

// Terms returns the term list for a category, or nil when absent.
func (p Profile) Terms(category string) []string {
	return p[category]
}

// Has reports whether a category is present.
func (p Profile) Has(category string) bool {
	_, ok := p[category]
	return ok
}

// First returns at most n leading terms of a category.
func (p Profile) First(category string, n int) []string {
	terms := p[category]
	if len(terms) <= n {
		return terms
	}
	return terms[:n]
}

// Format re-serializes the profile into the canonical `Label: [a, b, c]` line
// format. Known categories come first in canonical order, any extra labels
// follow sorted. Parse(Format(p)) yields a profile equal to p.
func (p Profile) Format() string {
	known := make(map[string]bool)
	var lines []string

	for _, category := range Categories() {
		known[category] = true
		if terms, ok := p[category]; ok {
			lines = append(lines, formatLine(category, terms))
		}
	}

	var extra []string
	for category := range p {
		if !known[category] {
			extra = append(extra, category)
		}
	}
	sort.Strings(extra)
	for _, category := range extra {
		lines = append(lines, formatLine(category, p[category]))
	}

	return strings.Join(lines, "\n")
}

func formatLine(category string, terms []string) string {
	return fmt.Sprintf("%s: [%s]", category, strings.Join(terms, ", "))
}
