// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package screen extracts structured article records from raw PubMed
// entries and keeps the articles with at least one industry-affiliated
// author. Records are processed strictly in input order; a malformed
// record is dropped and counted, never fatal to the batch.
package screen

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/pubmed-screen/internal/classify"
	"github.com/pdiddy/pubmed-screen/internal/eutils"
	"github.com/pdiddy/pubmed-screen/pkg/types"
)

// noTitle and noDate are the placeholders for absent title and year.
const (
	noTitle = "No title available"
	noDate  = "Date not available"
)

// emailPattern matches an email-address shape inside free text: local part,
// "@", domain with a 2+ letter top-level label. Shape only, no validation.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// errSkip marks a record dropped for a missing required sub-block.
type errSkip struct{ reason string }

func (e errSkip) Error() string { return e.reason }

// extractAuthor builds an Author from one raw author entry. It returns nil
// when the record lacks a last-name or fore-name; such authors are dropped
// without affecting their siblings. Missing optional fields degrade to
// empty values.
func extractAuthor(raw eutils.RawAuthor) *types.Author {
	if raw.LastName == "" || raw.ForeName == "" {
		return nil
	}

	affiliation := ""
	if len(raw.Affiliations) > 0 {
		affiliation = raw.Affiliations[0].Affiliation
	}

	email := emailPattern.FindString(affiliation)

	corresponding := raw.ValidYN == "Y" ||
		strings.Contains(strings.ToLower(affiliation), "corresponding")

	return &types.Author{
		Name:            raw.ForeName + " " + raw.LastName,
		Affiliation:     affiliation,
		Email:           email,
		IsCorresponding: corresponding,
	}
}

// formatPubDate renders the partial publication date. Descent stops at the
// first missing field: a record with Year but no Month yields "YYYY". The
// raw field text is joined as-is, so month names ("Jun") pass through.
func formatPubDate(pd eutils.PubDate) string {
	var parts []string
	if pd.Year != "" {
		parts = append(parts, pd.Year)
		if pd.Month != "" {
			parts = append(parts, pd.Month)
			if pd.Day != "" {
				parts = append(parts, pd.Day)
			}
		}
	}
	if len(parts) == 0 {
		return noDate
	}
	return strings.Join(parts, "-")
}

// ExtractArticle builds an Article from one raw record. It returns
// (nil, error) when a required sub-block is missing, and (nil, nil) when
// the record is well-formed but has no industry-affiliated author — the
// screen's central rule is that such articles are discarded entirely.
func ExtractArticle(rec *eutils.ArticleRecord, lex classify.Lexicon) (*types.Article, error) {
	if rec == nil || rec.MedlineCitation == nil {
		return nil, errSkip{"missing MedlineCitation block"}
	}
	citation := rec.MedlineCitation
	if citation.Article == nil {
		return nil, errSkip{"missing Article block"}
	}
	raw := citation.Article

	title := raw.Title.Text
	if title == "" {
		title = noTitle
	}

	article := &types.Article{
		PubmedID:        citation.PMID,
		Title:           title,
		PublicationDate: formatPubDate(raw.Journal.Issue.PubDate),
	}

	seenEmails := make(map[string]bool)
	for _, rawAuthor := range raw.Authors {
		author := extractAuthor(rawAuthor)
		if author == nil {
			continue
		}
		article.AllAuthors = append(article.AllAuthors, *author)

		if author.IsCorresponding && author.Email != "" && !seenEmails[author.Email] {
			seenEmails[author.Email] = true
			article.CorrespondingEmails = append(article.CorrespondingEmails, author.Email)
		}

		if lex.Classify(author.Affiliation) == classify.Industry {
			article.IndustryAuthors = append(article.IndustryAuthors, *author)
		}
	}

	if len(article.IndustryAuthors) == 0 {
		return nil, nil
	}

	if rec.PubmedData != nil {
		for _, id := range rec.PubmedData.ArticleIDs {
			if id.IDType == "doi" {
				article.DOI = strings.TrimSpace(id.Value)
				break
			}
		}
	}

	return article, nil
}

// BatchResult holds the outcome of a screening run.
type BatchResult struct {
	// Included counts articles kept for having an industry author.
	Included int
	// Excluded counts well-formed articles with no industry author.
	Excluded int
	// Failed counts records that could not be fetched or extracted.
	Failed int

	Articles []*types.Article
}

// Total returns the total number of records processed.
func (r BatchResult) Total() int {
	return r.Included + r.Excluded + r.Failed
}

// Batch screens already-fetched records in input order, appending kept
// articles in processing order. Per-record failures are reported to w and
// counted; they never interrupt the sequence.
func Batch(records []*eutils.ArticleRecord, lex classify.Lexicon, w io.Writer) BatchResult {
	var result BatchResult
	for _, rec := range records {
		screenRecord(rec, lex, w, &result)
	}
	return result
}

// Fetcher retrieves one raw article record by PMID.
type Fetcher interface {
	Fetch(ctx context.Context, pmid string, cfg types.SearchConfig) (*eutils.ArticleRecord, error)
}

// Run drives the full screening pass: for each PMID it fetches the raw
// record and screens it, pausing FetchDelay between fetches. Fetch errors
// count as failures and the run continues with the next PMID. Callers that
// want to abort early cancel ctx; articles already appended remain valid.
func Run(ctx context.Context, f Fetcher, pmids []string, lex classify.Lexicon, searchCfg types.SearchConfig, screenCfg types.ScreenConfig, w io.Writer) (BatchResult, error) {
	var result BatchResult
	for i, pmid := range pmids {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if i > 0 && screenCfg.FetchDelay > 0 {
			time.Sleep(screenCfg.FetchDelay)
		}

		rec, err := f.Fetch(ctx, pmid, searchCfg)
		if err != nil {
			fmt.Fprintf(w, "failed:   %s (%v)\n", pmid, err)
			result.Failed++
			continue
		}
		if rec == nil {
			fmt.Fprintf(w, "failed:   %s (no record returned)\n", pmid)
			result.Failed++
			continue
		}
		screenRecord(rec, lex, w, &result)
	}

	fmt.Fprintf(w, "\nScreen summary: %d included, %d excluded, %d failed (total: %d)\n",
		result.Included, result.Excluded, result.Failed, result.Total())
	return result, nil
}

func screenRecord(rec *eutils.ArticleRecord, lex classify.Lexicon, w io.Writer, result *BatchResult) {
	article, err := ExtractArticle(rec, lex)
	switch {
	case err != nil:
		fmt.Fprintf(w, "failed:   %s (%v)\n", recordID(rec), err)
		result.Failed++
	case article == nil:
		fmt.Fprintf(w, "excluded: %s (no industry authors)\n", recordID(rec))
		result.Excluded++
	default:
		fmt.Fprintf(w, "included: %s (%d industry author(s))\n", article.PubmedID, len(article.IndustryAuthors))
		result.Included++
		result.Articles = append(result.Articles, article)
	}
}

// recordID returns the PMID for status lines, tolerating missing blocks.
func recordID(rec *eutils.ArticleRecord) string {
	if rec != nil && rec.MedlineCitation != nil && rec.MedlineCitation.PMID != "" {
		return rec.MedlineCitation.PMID
	}
	return "(unknown PMID)"
}
