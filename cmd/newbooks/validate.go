package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pevans/newbooks/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config file and print the query for each author",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, descriptor, err := loadConfig()
		if err != nil {
			return err
		}

		sortByMedia := viper.GetBool("sort-by-media")
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Config OK: %d author(s)\n", len(cfg.Authors))
		fmt.Fprintf(out, "  layout: %s (v%d)\n", descriptor.Name, descriptor.Version)
		for _, author := range cfg.Authors {
			media := author.Media(cfg.MediaType)
			fmt.Fprintf(out, "  %s [%s]\n", author.DisplayName(), config.KnownMediaCodes[media.Code])
			fmt.Fprintf(out, "    %s\n", config.BuildQueryURL(cfg.URL, author, media, sortByMedia))
			if len(author.Ignore) > 0 {
				fmt.Fprintf(out, "    ignore: %v\n", []string(author.Ignore))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
