package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"
)

// Lookup resolves book metadata and prints the record.
func (r *Runner) Lookup(ctx context.Context, cmd *cli.Command) error {
	title := cmd.String("title")
	author := cmd.String("author")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	lookup, err := r.ensureBooks()
	if err != nil {
		return err
	}

	r.logger.Infof("looking up %q", title)

	book, err := lookup.Lookup(ctx, title, author)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(book, pretty)
	}

	r.writePlainHeader(book.Title)
	r.writePlain("Authors: %s\n", strings.Join(book.Authors, ", "))
	if book.CoverImageURL != "" {
		r.writePlain("Cover: %s\n", book.CoverImageURL)
	}
	r.writePlain("\n%s\n", book.Summary)

	return nil
}

// Analyze resolves book metadata and extracts its mood profile.
func (r *Runner) Analyze(ctx context.Context, cmd *cli.Command) error {
	title := cmd.String("title")
	author := cmd.String("author")
	showRaw := cmd.Bool("raw")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	lookup, err := r.ensureBooks()
	if err != nil {
		return err
	}

	analyzer, err := r.ensureAnalyzer()
	if err != nil {
		return err
	}

	r.logger.Infof("analyzing %q", title)

	book, err := lookup.Lookup(ctx, title, author)
	if err != nil {
		return err
	}

	profile, raw, err := analyzer.Analyze(ctx, book)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(map[string]any{
			"book":         book,
			"profile":      profile,
			"raw_analysis": raw,
		}, pretty)
	}

	r.writePlainHeader(book.Title)
	if showRaw {
		r.writePlain("%s\n", raw)
		return nil
	}

	r.writePlain("%s\n", profile.Format())
	return nil
}
