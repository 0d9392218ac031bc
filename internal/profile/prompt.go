package profile

import (
	"fmt"
	"strings"

	"booktrack/internal/models"
)

// promptTemplate asks the model for exactly five labeled sections in a strict
// `Label: [comma, separated, items]` line format so Parse can recover them.
const promptTemplate = `You are a music and literature expert. Based on the book details below, extract musical insights that would help create a fitting and emotionally resonant soundtrack.

Title: %s
Author(s): %s
Summary: %s

Please analyze the story and return:

1. **Emotional Tones** - The dominant emotional qualities of the book
2. **Genres** - Suitable music genres that match the overall tone and pacing
3. **Moods** - Key moods or emotional shifts across the book
4. **Time Period / Cultural Context** - Historical or cultural elements
5. **Keywords** - 5-7 vivid, descriptive words ideal for searching music

Respond strictly in this format:
Emotional Tones: [comma-separated list]
Genres: [comma-separated list]
Moods: [comma-separated list]
Time Period/Cultural Context: [comma-separated list]
Keywords: [comma-separated list]`

// BuildPrompt renders the fixed analysis prompt for a book record.
func BuildPrompt(book *models.BookRecord) string {
	return fmt.Sprintf(promptTemplate, book.Title, strings.Join(book.Authors, ", "), book.Summary)
}
