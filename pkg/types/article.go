// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-screen pipeline.
package types

// Author is one named individual on an article. Extraction never produces
// an Author without a name: raw author records missing a fore-name or
// last-name are dropped before an Author is built.
type Author struct {
	// Name is the display name, fore-name and last-name joined.
	Name string `json:"name" yaml:"name"`

	// Affiliation is the raw free-text affiliation string, possibly empty.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// Email is the first email address found in the affiliation text,
	// or empty when none matched.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// IsCorresponding is true when the source marks the author valid
	// ("Y") or the affiliation text mentions "corresponding".
	IsCorresponding bool `json:"is_corresponding" yaml:"is_corresponding"`
}

// Article is one screened bibliographic record. Articles only exist in
// output when IndustryAuthors is non-empty; records without an industry
// author are discarded at extraction time.
type Article struct {
	// PubmedID is the PubMed identifier (PMID), kept as an opaque string.
	PubmedID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the plain-text article title with markup stripped.
	Title string `json:"title" yaml:"title"`

	// PublicationDate is a partial date: "YYYY", "YYYY-MM", "YYYY-MM-DD",
	// or "Date not available" when the source has no year.
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// DOI is the first DOI-typed identifier on the record, or empty.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// AllAuthors lists every extracted author in source order.
	AllAuthors []Author `json:"all_authors" yaml:"all_authors"`

	// IndustryAuthors is the ordered subsequence of AllAuthors whose
	// affiliation classified as industry. Always non-empty.
	IndustryAuthors []Author `json:"industry_authors" yaml:"industry_authors"`

	// CorrespondingEmails lists unique emails of corresponding authors,
	// in first-seen order.
	CorrespondingEmails []string `json:"corresponding_emails,omitempty" yaml:"corresponding_emails,omitempty"`
}
