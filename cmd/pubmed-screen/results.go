// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-screen/internal/store"
	"github.com/pdiddy/pubmed-screen/pkg/types"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Query and export the local results database",
	Long: `Results manages the SQLite database that screen --save writes to. Use
subcommands to list past runs, query stored articles by title text, PMID,
or run, and export everything to YAML.`,
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored screening runs",
	RunE:  runResultsList,
}

var resultsQueryCmd = &cobra.Command{
	Use:   "query [title text]",
	Short: "Query stored articles",
	Long: `Query searches stored articles with full-text search over titles and
structured filters (--pmid, --run). At least one of the query text or a
filter is required.`,
	RunE: runResultsQuery,
}

var resultsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all stored articles to a YAML file",
	RunE:  runResultsExport,
}

func init() {
	resultsCmd.PersistentFlags().String("results-dir", "results", "base directory for the results database")

	resultsQueryCmd.Flags().String("pmid", "", "filter by PubMed ID")
	resultsQueryCmd.Flags().Int64("run", 0, "filter by run ID")
	resultsQueryCmd.Flags().Int("max-results", 20, "maximum number of query results")
	resultsQueryCmd.Flags().Bool("json", false, "output results as JSON")

	resultsExportCmd.Flags().StringP("output", "o", "results-export.yaml", "export file path")

	resultsCmd.AddCommand(resultsListCmd, resultsQueryCmd, resultsExportCmd)
	rootCmd.AddCommand(resultsCmd)
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dir, _ := cmd.Flags().GetString("results-dir")
	return store.NewStore(types.StoreConfig{ResultsDir: dir})
}

func runResultsList(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.Runs(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No stored runs.")
		return nil
	}

	fmt.Printf("%-5s  %-20s  %-9s  %-9s  %-7s  %s\n",
		"Run", "Created", "Included", "Excluded", "Failed", "Query")
	fmt.Println(strings.Repeat("-", 90))
	for _, r := range runs {
		fmt.Printf("%-5d  %-20s  %-9d  %-9d  %-7d  %s\n",
			r.ID, r.Created, r.Included, r.Excluded, r.Failed, r.Query)
	}
	return nil
}

func runResultsQuery(cmd *cobra.Command, args []string) error {
	opts := store.QueryOptions{}
	if len(args) > 0 {
		opts.Text = strings.Join(args, " ")
	}
	opts.PMID, _ = cmd.Flags().GetString("pmid")
	opts.RunID, _ = cmd.Flags().GetInt64("run")
	opts.MaxResults, _ = cmd.Flags().GetInt("max-results")

	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide title text, --pmid, or --run")
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	results, err := st.Query(context.Background(), opts)
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("%-5s  %-10s  %-12s  %-50s  %s\n",
		"Run", "PMID", "Published", "Title", "Industry Authors")
	fmt.Println(strings.Repeat("-", 110))
	for _, r := range results {
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		names := make([]string, 0, len(r.IndustryAuthors))
		for _, a := range r.IndustryAuthors {
			names = append(names, a.Name)
		}
		fmt.Printf("%-5d  %-10s  %-12s  %-50s  %s\n",
			r.RunID, r.PubmedID, r.PublicationDate, title, strings.Join(names, "; "))
	}
	fmt.Printf("\n%d result(s)\n", len(results))
	return nil
}

func runResultsExport(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	output, _ := cmd.Flags().GetString("output")
	if err := st.ExportYAML(context.Background(), output); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", output)
	return nil
}
