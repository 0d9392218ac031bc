package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"booktrack/internal/shared"
)

// CacheShow lists the cached book records.
func (r *Runner) CacheShow(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	repo := r.openBookCache()
	if repo == nil {
		return fmt.Errorf("%w: book cache not initialized, run 'booktrack setup' first", shared.ErrServiceUnavailable)
	}

	records, err := repo.List()
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(records, true)
	}

	count, err := repo.Count()
	if err != nil {
		return err
	}

	r.writePlain("Cached books: %d\n\n", count)
	for i, record := range records {
		r.writePlain("%d. %s - %s\n", i+1, record.Title, strings.Join(record.Authors, ", "))
	}

	return nil
}

// CacheClear removes every cached book record.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	repo := r.openBookCache()
	if repo == nil {
		return fmt.Errorf("%w: book cache not initialized, run 'booktrack setup' first", shared.ErrServiceUnavailable)
	}

	count, err := repo.Count()
	if err != nil {
		return err
	}

	if err := repo.Clear(); err != nil {
		return err
	}

	r.logger.Infof("cleared %d cached books", count)
	r.writePlain("%s Cleared %d cached books\n", r.palette.OK("✓"), count)

	return nil
}
