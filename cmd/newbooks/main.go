// Package main is the newbooks CLI: it asks a library catalog which of the
// configured authors have new titles this year.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pevans/newbooks/checker"
	"github.com/pevans/newbooks/layout"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "newbooks",
	Short: "List this year's catalog titles for your favorite authors",
	Long: `newbooks queries a library's online catalog once per configured author,
reads the results page, and prints the titles published in the target year.

Authors whose results page cannot be read (author not found, a list of
authors instead of titles, or a changed page layout) are reported for a
manual search and the run continues. A network failure stops the run.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	Version:      version,
	RunE:         runCheck,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ~/.newbooks/config.yaml)")
	flags.Bool("debug", false, "log fetch and parse traces to stderr")
	flags.Bool("sort-by-media", false, "limit each query to the author's media type")
	flags.Duration("delay", checker.DefaultDelay, "pause between author queries")
	flags.String("year", "", "publication year to look for (default: current year)")
	flags.String("layout", layout.Classic.Name, "results page layout")

	cobra.CheckErr(viper.BindPFlags(flags))
}

func initConfig() {
	viper.SetEnvPrefix("NEWBOOKS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// run executes the CLI with args and returns the process exit code. Cobra
// reports any error on stderr as "Error: ...".
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
