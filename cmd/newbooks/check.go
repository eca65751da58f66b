package main

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pevans/newbooks/catalog"
	"github.com/pevans/newbooks/checker"
	"github.com/pevans/newbooks/config"
	"github.com/pevans/newbooks/layout"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// newLogger returns a text logger on w; debug lowers the level to Debug.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// targetYear returns the configured year, or the current one.
func targetYear(year string, now time.Time) (string, error) {
	if year == "" {
		return checker.DefaultYear(now), nil
	}
	if !yearPattern.MatchString(year) {
		return "", fmt.Errorf("invalid --year %q: must be four digits", year)
	}
	return year, nil
}

// loadConfig reads the config file, registers its layouts, and resolves the
// layout selected with --layout.
func loadConfig() (*config.Config, layout.Descriptor, error) {
	cfg, err := config.LoadConfigFile(viper.GetString("config"))
	if err != nil {
		return nil, layout.Descriptor{}, err
	}

	if err := cfg.RegisterLayouts(); err != nil {
		return nil, layout.Descriptor{}, err
	}

	descriptor, err := layout.Lookup(viper.GetString("layout"))
	if err != nil {
		return nil, layout.Descriptor{}, err
	}

	return cfg, descriptor, nil
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, descriptor, err := loadConfig()
	if err != nil {
		return err
	}

	year, err := targetYear(viper.GetString("year"), time.Now())
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), viper.GetBool("debug")).With("run", uuid.NewString())
	logger.Debug("starting check",
		"authors", len(cfg.Authors),
		"year", year,
		"layout", descriptor.Name,
		"sort_by_media", viper.GetBool("sort-by-media"),
	)

	opts := checker.Options{
		Year:        year,
		SortByMedia: viper.GetBool("sort-by-media"),
		Delay:       viper.GetDuration("delay"),
		Layout:      descriptor,
	}
	c := checker.New(cfg, catalog.NewFetcher(logger), opts, cmd.OutOrStdout(), logger)

	summary, err := c.Run(cmd.Context())
	if err != nil {
		return err
	}

	logger.Debug("check finished",
		"authors_checked", summary.AuthorsChecked,
		"titles", summary.TitlesFound,
		"manual_search", len(summary.ManualSearch),
	)
	return nil
}
