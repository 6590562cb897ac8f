// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides whether an author affiliation string belongs to
// a commercial organization or an academic/clinical one. The decision is a
// keyword heuristic over two fixed term lists, not a learned model.
package classify

import "strings"

// Class is the affiliation classification outcome.
type Class string

const (
	// Industry marks a commercial, for-profit affiliation.
	Industry Class = "industry"

	// Academic marks an academic or clinical affiliation. Unknown
	// affiliations collapse to Academic: the screen only acts on a
	// positive industry signal.
	Academic Class = "academic"
)

// Lexicon holds the keyword lists for each class. Terms are matched as
// lowercase substrings, not on word boundaries, so a short term like "ag"
// can match inside an unrelated word. That imprecision is inherited from
// the screening protocol and kept as-is rather than silently tightened.
type Lexicon struct {
	// Academic terms take priority: an affiliation mentioning both a
	// university and a company classifies as academic.
	Academic []string `yaml:"academic"`

	// Industry terms are corporate suffixes, sector nouns, and named
	// pharmaceutical firms.
	Industry []string `yaml:"industry"`
}

// DefaultLexicon returns the built-in keyword lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Academic: []string{
			"university", "college", "institute", "academy", "school",
			"hospital", "clinic", "medical center", "research center",
			// Non-English institution terms.
			"université", "universita", "universidad", "株式会社",
		},
		Industry: []string{
			"pharma", "pharmaceutical", "biotech", "biotechnology",
			"inc", "ltd", "llc", "plc", "corporation", "company",
			"gmbh", "ag", "sas", "sarl", "labs", "research", "healthcare",
			"pfizer", "novartis", "roche", "merck", "johnson & johnson",
			"gsk", "glaxosmithkline", "sanofi", "astrazeneca", "eli lilly",
		},
	}
}

// Classify returns the class of an affiliation string. An empty string and
// an affiliation matching no keyword both classify as Academic. Academic
// keywords are checked before industry keywords so mixed phrases such as
// "University Pharma Research Institute" stay academic.
func (l Lexicon) Classify(affiliation string) Class {
	if affiliation == "" {
		return Academic
	}
	lower := strings.ToLower(affiliation)

	for _, term := range l.Academic {
		if strings.Contains(lower, term) {
			return Academic
		}
	}
	for _, term := range l.Industry {
		if strings.Contains(lower, term) {
			return Industry
		}
	}
	return Academic
}

// Match returns the class and the first keyword that decided it. A decision
// made by default (empty text or no match) returns an empty keyword.
func (l Lexicon) Match(affiliation string) (Class, string) {
	if affiliation == "" {
		return Academic, ""
	}
	lower := strings.ToLower(affiliation)

	for _, term := range l.Academic {
		if strings.Contains(lower, term) {
			return Academic, term
		}
	}
	for _, term := range l.Industry {
		if strings.Contains(lower, term) {
			return Industry, term
		}
	}
	return Academic, ""
}
