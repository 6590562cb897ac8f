// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders screened articles as CSV rows, a console listing,
// or JSON.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// csvHeader defines the report columns.
var csvHeader = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"DOI",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// WriteCSV writes the articles as a CSV report. Multi-valued columns are
// semicolon-joined; company affiliations are deduplicated in first-seen
// order.
func WriteCSV(articles []*types.Article, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, a := range articles {
		names := make([]string, 0, len(a.IndustryAuthors))
		for _, author := range a.IndustryAuthors {
			names = append(names, author.Name)
		}

		row := []string{
			a.PubmedID,
			a.Title,
			a.PublicationDate,
			a.DOI,
			strings.Join(names, "; "),
			strings.Join(uniqueAffiliations(a.IndustryAuthors), "; "),
			strings.Join(a.CorrespondingEmails, "; "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", a.PubmedID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// uniqueAffiliations returns the non-empty affiliation strings of the given
// authors, deduplicated, in first-seen order.
func uniqueAffiliations(authors []types.Author) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range authors {
		if a.Affiliation == "" || seen[a.Affiliation] {
			continue
		}
		seen[a.Affiliation] = true
		out = append(out, a.Affiliation)
	}
	return out
}

// FormatTable writes a human-readable listing of the articles to w.
func FormatTable(articles []*types.Article, w io.Writer) {
	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles with industry affiliations found.")
		return
	}

	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "FOUND %d ARTICLE(S) WITH INDUSTRY AFFILIATIONS\n", len(articles))
	fmt.Fprintln(w, strings.Repeat("=", 80))

	for i, a := range articles {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, a.Title)
		fmt.Fprintf(w, "   PMID: %s\n", a.PubmedID)
		fmt.Fprintf(w, "   Published: %s\n", a.PublicationDate)
		doi := a.DOI
		if doi == "" {
			doi = "N/A"
		}
		fmt.Fprintf(w, "   DOI: %s\n", doi)
		fmt.Fprintln(w, "   Industry Authors:")
		for _, author := range a.IndustryAuthors {
			email := ""
			if author.Email != "" {
				email = fmt.Sprintf(" (%s)", author.Email)
			}
			fmt.Fprintf(w, "     - %s%s\n", author.Name, email)
			if author.Affiliation != "" {
				fmt.Fprintf(w, "       %s\n", author.Affiliation)
			}
		}
		fmt.Fprintln(w, strings.Repeat("-", 80))
	}
}

// FormatJSON writes the articles as indented JSON to w.
func FormatJSON(articles []*types.Article, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(articles)
}
