// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-screen/internal/classify"
	"github.com/pdiddy/pubmed-screen/internal/eutils"
	"github.com/pdiddy/pubmed-screen/internal/report"
	"github.com/pdiddy/pubmed-screen/internal/screen"
	"github.com/pdiddy/pubmed-screen/internal/secrets"
	"github.com/pdiddy/pubmed-screen/internal/store"
	"github.com/pdiddy/pubmed-screen/pkg/types"
)

const (
	defaultTimeout    = 60 * time.Second
	defaultFetchDelay = 350 * time.Millisecond
	defaultOutput     = "pubmed_industry_results.csv"
)

// partialDatePattern accepts YYYY, YYYY/MM, or YYYY/MM/DD.
var partialDatePattern = regexp.MustCompile(`^\d{4}(/\d{1,2}(/\d{1,2})?)?$`)

var screenCmd = &cobra.Command{
	Use:   "screen [query]",
	Short: "Search PubMed and report articles with industry-affiliated authors",
	Long: `Screen runs a PubMed search, fetches each matching record, and keeps the
articles where at least one author classifies as industry-affiliated.
The query supports full PubMed syntax: field tags ("cancer[Title/Abstract]"),
boolean operators (AND, OR, NOT), MeSH terms, and date ranges.

By default results are written to a CSV file; --no-file prints a console
listing instead, and --json emits the articles as JSON. --save persists the
run to the local results database.`,
	Args: cobra.ExactArgs(1),
	RunE: runScreen,
}

func init() {
	screenCmd.Flags().IntP("max-results", "n", 20, "maximum number of search results to process")
	screenCmd.Flags().Int("retstart", 0, "index of the first search result, for pagination")
	screenCmd.Flags().String("mindate", "", "minimum publication date (YYYY, YYYY/MM, or YYYY/MM/DD)")
	screenCmd.Flags().String("maxdate", "", "maximum publication date (YYYY, YYYY/MM, or YYYY/MM/DD)")
	screenCmd.Flags().String("api-key", "", "NCBI API key for higher rate limits (default: .secrets/ncbi-api-key)")
	screenCmd.Flags().String("email", "", "contact email sent to NCBI (default: .secrets/ncbi-email)")
	screenCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	screenCmd.Flags().Duration("delay", 0, "delay between consecutive record fetches (default 350ms)")
	screenCmd.Flags().String("lexicon", "", "YAML file of extra classifier keywords")
	screenCmd.Flags().StringP("output", "o", defaultOutput, "output CSV file")
	screenCmd.Flags().Bool("no-file", false, "print results to the console instead of a file")
	screenCmd.Flags().Bool("json", false, "output results as JSON")
	screenCmd.Flags().Bool("save", false, "persist the run to the local results database")
	screenCmd.Flags().String("results-dir", "results", "base directory for the results database")
	screenCmd.Flags().BoolP("verbose", "d", false, "print per-record screening status to stderr")

	viper.BindPFlag("search.max_results", screenCmd.Flags().Lookup("max-results"))
	viper.BindPFlag("search.timeout", screenCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("screen.fetch_delay", screenCmd.Flags().Lookup("delay"))
	viper.BindPFlag("screen.lexicon_path", screenCmd.Flags().Lookup("lexicon"))
	viper.BindPFlag("store.results_dir", screenCmd.Flags().Lookup("results-dir"))

	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	term := args[0]

	minDate, _ := cmd.Flags().GetString("mindate")
	maxDate, _ := cmd.Flags().GetString("maxdate")
	for flag, v := range map[string]string{"mindate": minDate, "maxdate": maxDate} {
		if v != "" && !partialDatePattern.MatchString(v) {
			return fmt.Errorf("invalid --%s %q: use YYYY, YYYY/MM, or YYYY/MM/DD", flag, v)
		}
	}

	timeout := viper.GetDuration("search.timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	fetchDelay := viper.GetDuration("screen.fetch_delay")
	if fetchDelay == 0 {
		fetchDelay = defaultFetchDelay
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	email, _ := cmd.Flags().GetString("email")
	retStart, _ := cmd.Flags().GetInt("retstart")

	searchCfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: "pubmed-screen/" + version,
		},
		MaxResults: viper.GetInt("search.max_results"),
		RetStart:   retStart,
		MinDate:    minDate,
		MaxDate:    maxDate,
		APIKey:     secretDefault(secrets.KeyNCBIAPIKey, apiKey),
		Email:      secretDefault(secrets.KeyNCBIEmail, email),
	}
	screenCfg := types.ScreenConfig{
		FetchDelay:  fetchDelay,
		LexiconPath: viper.GetString("screen.lexicon_path"),
	}

	lex := classify.DefaultLexicon()
	if screenCfg.LexiconPath != "" {
		var err error
		if lex, err = classify.LoadLexicon(screenCfg.LexiconPath); err != nil {
			return err
		}
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	statusW := io.Writer(io.Discard)
	if verbose {
		statusW = os.Stderr
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client := &eutils.Client{HTTP: &http.Client{Timeout: searchCfg.Timeout}}

	fmt.Printf("Searching PubMed for: %s\n", term)
	pmids, err := client.Search(ctx, term, searchCfg)
	if err != nil {
		return err
	}
	if len(pmids) == 0 {
		fmt.Println("No articles found matching the query.")
		return nil
	}
	fmt.Printf("Processing %d result(s)...\n", len(pmids))

	result, err := screen.Run(ctx, client, pmids, lex, searchCfg, screenCfg, statusW)
	if err != nil {
		return err
	}

	if err := writeOutput(cmd, result); err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		st, err := store.NewStore(types.StoreConfig{ResultsDir: viper.GetString("store.results_dir")})
		if err != nil {
			return err
		}
		defer st.Close()

		runID, err := st.Save(ctx, term, result.Articles, store.Summary{
			Included: result.Included,
			Excluded: result.Excluded,
			Failed:   result.Failed,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Run saved to results database (run %d).\n", runID)
	}

	fmt.Printf("\nScreen complete: %d of %d article(s) had industry affiliations (%d failed).\n",
		result.Included, result.Total(), result.Failed)
	return nil
}

func writeOutput(cmd *cobra.Command, result screen.BatchResult) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	noFile, _ := cmd.Flags().GetBool("no-file")

	switch {
	case jsonOut:
		return report.FormatJSON(result.Articles, os.Stdout)
	case noFile:
		report.FormatTable(result.Articles, os.Stdout)
		return nil
	default:
		if len(result.Articles) == 0 {
			fmt.Println("No articles with industry affiliations found; no file written.")
			return nil
		}
		output, _ := cmd.Flags().GetString("output")
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()

		if err := report.WriteCSV(result.Articles, f); err != nil {
			return err
		}
		fmt.Printf("Results saved to %s\n", output)
		return nil
	}
}
