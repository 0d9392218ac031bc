package profile

import (
	"fmt"
	"strings"

	"booktrack/internal/shared"
)

// Parse turns the model's free-text response into a Profile.
//
// Grammar per line: `Label: [comma, separated, items]`. The brackets are
// optional; exactly one surrounding pair is stripped when both are present.
// A line without a colon continues the most recent category. Terms are
// trimmed and empty pieces dropped. A later line with the same label replaces
// the earlier entry.
//
// Returns [shared.ErrParse] when the text contains no labeled section at all.
func Parse(text string) (Profile, error) {
	sections := Profile{}
	current := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if idx := strings.Index(line, ":"); idx >= 0 {
			name := strings.TrimSpace(line[:idx])
			content := strings.TrimSpace(line[idx+1:])

			if len(content) >= 2 && strings.HasPrefix(content, "[") && strings.HasSuffix(content, "]") {
				content = content[1 : len(content)-1]
			}

			sections[name] = splitTerms(content)
			current = name
		} else if current != "" {
			sections[current] = append(sections[current], splitTerms(line)...)
		}
	}

	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no labeled sections in model output", shared.ErrParse)
	}

	return sections, nil
}

// splitTerms splits content on commas, trims each piece, and keeps only the
// non-empty ones. Order is preserved.
func splitTerms(content string) []string {
	terms := []string{}
	for _, piece := range strings.Split(content, ",") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			terms = append(terms, piece)
		}
	}
	return terms
}
