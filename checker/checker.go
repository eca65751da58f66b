// Package checker runs the per-author catalog queries and prints the titles
// each author published in the target year.
package checker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/newbooks/catalog"
	"github.com/pevans/newbooks/config"
	"github.com/pevans/newbooks/layout"
	"github.com/pevans/newbooks/records"
)

// DefaultDelay is the pause between two author queries.
const DefaultDelay = 2 * time.Second

// Fetcher retrieves and parses one catalog page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Options controls a run.
type Options struct {
	Year        string
	SortByMedia bool
	Delay       time.Duration
	Layout      layout.Descriptor
}

// AuthorResult is the outcome for one author. Recognized is false when the
// results page had an unexpected shape and the author needs a manual search.
type AuthorResult struct {
	Author     string
	URL        string
	Titles     []string
	Recognized bool
}

// Summary counts what a run did.
type Summary struct {
	AuthorsChecked int
	TitlesFound    int
	ManualSearch   []string
}

// Checker queries the catalog for each configured author in turn.
type Checker struct {
	cfg     *config.Config
	fetcher Fetcher
	opts    Options
	out     io.Writer
	logger  *slog.Logger
	pacer   *pacer
}

// New creates a checker writing results to out. cfg must already be
// validated.
func New(cfg *config.Config, fetcher Fetcher, opts Options, out io.Writer, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Year == "" {
		opts.Year = DefaultYear(time.Now())
	}
	if len(opts.Layout.Blocks) == 0 {
		opts.Layout = layout.Classic
	}

	return &Checker{
		cfg:     cfg,
		fetcher: fetcher,
		opts:    opts,
		out:     out,
		logger:  logger,
		pacer:   newPacer(opts.Delay),
	}
}

// Run checks every author in order, one at a time. A transport error stops
// the run; an unrecognized page only skips that author.
func (c *Checker) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	for _, author := range c.cfg.Authors {
		result, err := c.CheckAuthor(ctx, author)
		if err != nil {
			return summary, err
		}
		summary.AuthorsChecked++

		if !result.Recognized {
			c.logger.Warn("results page not recognized", "author", result.Author, "url", result.URL)
			summary.ManualSearch = append(summary.ManualSearch, result.Author)
			if err := RenderManualSearch(c.out, result.Author); err != nil {
				return summary, fmt.Errorf("failed to write output: %w", err)
			}
			continue
		}

		summary.TitlesFound += len(result.Titles)
		if err := RenderTitles(c.out, result.Author, result.Titles); err != nil {
			return summary, fmt.Errorf("failed to write output: %w", err)
		}
	}

	return summary, nil
}

// CheckAuthor fetches and processes the results page for one author. It
// first waits until the courtesy delay has passed since the previous query
// finished.
func (c *Checker) CheckAuthor(ctx context.Context, author config.Author) (AuthorResult, error) {
	name := author.DisplayName()
	url := config.BuildQueryURL(c.cfg.URL, author, author.Media(c.cfg.MediaType), c.opts.SortByMedia)
	result := AuthorResult{Author: name, URL: url}

	if err := c.pacer.Wait(ctx); err != nil {
		return result, err
	}

	doc, err := c.fetcher.Fetch(ctx, url)
	c.pacer.Done(time.Now())
	if err != nil {
		return result, fmt.Errorf("failed to check %s: %w", name, err)
	}

	located := catalog.LocateRecords(doc, c.opts.Layout)
	c.logger.Debug("located records",
		"author", name,
		"layout", c.opts.Layout.Name,
		"recognized", located.Recognized,
		"records", len(located.Records),
	)
	if !located.Recognized {
		return result, nil
	}

	ignore, err := author.IgnoreSet()
	if err != nil {
		return result, fmt.Errorf("failed to compile ignore patterns for %s: %w", name, err)
	}

	result.Recognized = true
	result.Titles = records.ExtractAndFilter(located.Records, name, c.opts.Year, ignore)
	c.logger.Debug("filtered titles", "author", name, "year", c.opts.Year, "titles", len(result.Titles))

	return result, nil
}
