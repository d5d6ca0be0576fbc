package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"nitharvest/internal/export"
	"nitharvest/internal/harvest"
)

var version = "dev"

var (
	outputFile   string
	outputFormat string
	instanceURL  string
	staticMode   bool
	showUI       bool
	proxyURL     string
	timeout      time.Duration
	pollInterval time.Duration
	retryBudget  int
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "nitharvest",
		Short:   "Harvest tweets from a Nitter search for sentiment analysis",
		Version: version,
		Long: `nitharvest drives a headless browser through a Nitter search page,
repeatedly triggering the "Load more" control and collecting the rendered
tweets until the content is exhausted or the iteration ceiling is reached.
The deduplicated result is written to a file (tweets.json by default) for
downstream sentiment classification.`,
		SilenceUsage: true,
	}

	runCmd := &cobra.Command{
		Use:   "run <search-term> [max-iterations]",
		Short: "Run a harvest for a search term",
		Example: `  # Harvest with the default pagination depth
  nitharvest run "climate change"

  # Paginate up to 20 times and export as CSV
  nitharvest run golang 20 -o tweets.csv

  # Use a server-rendered instance without a browser
  nitharvest run golang --static --instance https://nitter.example.org`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runHarvest,
	}

	runCmd.Flags().StringVarP(&outputFile, "output", "o", "tweets.json", "Output file path")
	runCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format (json, csv, text); inferred from extension if omitted")
	runCmd.Flags().StringVar(&instanceURL, "instance", "", "Nitter instance base URL")
	runCmd.Flags().BoolVar(&staticMode, "static", false, "Fetch over plain HTTP instead of a headless browser")
	runCmd.Flags().BoolVar(&showUI, "showui", false, "Show browser UI (disable headless mode)")
	runCmd.Flags().StringVarP(&proxyURL, "proxy", "p", os.Getenv("NITHARVEST_PROXY"), "Proxy URL, defaults to NITHARVEST_PROXY env var")
	runCmd.Flags().DurationVar(&timeout, "timeout", 0, "Navigation timeout")
	runCmd.Flags().DurationVar(&pollInterval, "poll-interval", 0, "Spacing between growth-wait polls")
	runCmd.Flags().IntVar(&retryBudget, "retry-budget", 0, "Growth-wait polls per cycle before giving up")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runHarvest(cmd *cobra.Command, args []string) error {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	maxIterations := harvest.DefaultMaxIterations
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid max-iterations %q: %w", args[1], err)
		}
		maxIterations = n
	}

	query, err := harvest.NewQuery(args[0], maxIterations)
	if err != nil {
		return err
	}

	cfg := harvest.DefaultConfig()
	if instanceURL != "" {
		cfg.BaseURL = instanceURL
	}
	if timeout > 0 {
		cfg.NavTimeout = timeout
	}
	if pollInterval > 0 {
		cfg.PollInterval = pollInterval
	}
	if retryBudget > 0 {
		cfg.RetryBudget = retryBudget
	}
	cfg.ShowUI = showUI
	cfg.ProxyURL = proxyURL

	if outputFormat == "" {
		outputFormat = export.InferFormat(outputFile)
		if outputFormat == "" {
			outputFormat = "json"
		}
	}
	exporter, err := export.ForFormat(outputFormat)
	if err != nil {
		return err
	}

	var h harvest.Harvester
	if staticMode {
		h = harvest.NewStatic(query, cfg)
	} else {
		h = harvest.NewSession(query, cfg)
	}

	var spin *spinner.Spinner
	if !verbose {
		spin = spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = fmt.Sprintf(" harvesting %q...", query.SearchTerm)
		spin.Start()
	}

	entries := h.Run(context.Background())

	if spin != nil {
		spin.Stop()
	}

	// A run that accumulated nothing still produces a (possibly empty)
	// artifact; only a failed write fails the process.
	if err := exporter.Export(entries, outputFile); err != nil {
		return err
	}

	log.Info("harvest complete", "unique", len(entries), "output", outputFile, "format", outputFormat)
	return nil
}
