package profile

import (
	"context"
	"fmt"

	"booktrack/internal/models"
	"booktrack/internal/shared"
)

// Completer abstracts the generative text service so the analyzer can be
// exercised against a test double.
type Completer interface {
	// Complete sends a single prompt and returns the raw completion text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Analyzer turns a BookRecord into a Profile via one model round trip.
type Analyzer struct {
	completer Completer
}

// NewAnalyzer creates an Analyzer backed by the given completer.
func NewAnalyzer(completer Completer) *Analyzer {
	return &Analyzer{completer: completer}
}

// Analyze prompts the model with the book's metadata and parses the response.
//
// The raw completion text is returned alongside the profile so callers can
// surface it for debugging. An upstream failure maps to [shared.ErrGeneration];
// a malformed response maps to [shared.ErrParse] via Parse.
func (a *Analyzer) Analyze(ctx context.Context, book *models.BookRecord) (Profile, string, error) {
	if a.completer == nil {
		return nil, "", fmt.Errorf("%w: completer not configured", shared.ErrServiceUnavailable)
	}

	raw, err := a.completer.Complete(ctx, BuildPrompt(book))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", shared.ErrGeneration, err)
	}

	parsed, err := Parse(raw)
	if err != nil {
		return nil, raw, err
	}

	return parsed, raw, nil
}
