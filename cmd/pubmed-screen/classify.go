package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-screen/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [affiliation text]",
	Short: "Classify a single affiliation string",
	Long: `Classify runs the affiliation keyword heuristic on one string and prints
the resulting class and the keyword that decided it. Useful when tuning a
custom lexicon file.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().String("lexicon", "", "YAML file of extra classifier keywords")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	lex := classify.DefaultLexicon()
	if path, _ := cmd.Flags().GetString("lexicon"); path != "" {
		var err error
		if lex, err = classify.LoadLexicon(path); err != nil {
			return err
		}
	}

	class, keyword := lex.Match(args[0])
	if keyword == "" {
		fmt.Printf("%s (no keyword matched)\n", class)
		return nil
	}
	fmt.Printf("%s (matched %q)\n", class, keyword)
	return nil
}
