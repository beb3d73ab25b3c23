package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type options struct {
	location    string
	keywords    string
	company     string
	maxResults  int
	boards      []string
	discover    bool
	fromCache   bool
	useURLCache bool
	noCache     bool
	days        int
	undated     bool
	exportDir   string
	export      string
	markdown    string
	configPath  string
	verbose     bool
}

func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "jobcurator <job title>",
		Short: "Find and curate job postings from Greenhouse boards",
		Long: `jobcurator searches for Greenhouse job pages matching a job title, extracts
title, company, location and compensation from each page, filters the results
and prints them as a table. Every run also writes a timestamped CSV export.

Job pages come from Google Custom Search by default. Use --board to read
specific Greenhouse boards instead, --discover to probe the known boards from
the config file, or --from-cache to work offline from previously fetched pages.`,
		Example: `  jobcurator "backend engineer" --location remote --keywords go,kubernetes
  jobcurator "designer" --board figma --board airbnb --days 14
  jobcurator "data scientist" --from-cache --markdown report.md`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCurate(cmd, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.location, "location", "", "keep jobs whose location contains this text")
	f.StringVar(&opts.keywords, "keywords", "", "comma-separated keywords; keep jobs whose description has any")
	f.StringVar(&opts.company, "company", "", "keep jobs whose company contains this text")
	f.IntVar(&opts.maxResults, "max-results", 0, "maximum search results to process (default from config)")
	f.StringArrayVar(&opts.boards, "board", nil, "Greenhouse board slug to list instead of searching (repeatable)")
	f.BoolVar(&opts.discover, "discover", false, "probe the known boards from the config and list the active ones")
	f.BoolVar(&opts.fromCache, "from-cache", false, "process the cached HTML pages without touching the network")
	f.BoolVar(&opts.useURLCache, "use-url-cache", false, "reuse the URLs from the last search instead of searching")
	f.BoolVar(&opts.noCache, "no-cache", false, "do not read or write the HTML cache")
	f.IntVar(&opts.days, "days", 0, "keep only jobs posted within this many days")
	f.BoolVar(&opts.undated, "include-undated", false, "with --days, also keep jobs without a posting date")
	f.StringVar(&opts.exportDir, "export-dir", "", "directory for the timestamped CSV export (default from config)")
	f.StringVar(&opts.export, "export", "", "CSV export file (overrides the timestamped name)")
	f.StringVar(&opts.markdown, "markdown", "", "also write a Markdown report to this file")

	cmd.MarkFlagsMutuallyExclusive("from-cache", "use-url-cache")
	cmd.MarkFlagsMutuallyExclusive("from-cache", "no-cache")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/jobcurator/config.yml)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newCredentialsCmd())

	return cmd
}

// Execute runs the root command; any error exits with status 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
