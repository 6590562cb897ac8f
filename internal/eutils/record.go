// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"encoding/xml"
	"strings"
)

// EFetch XML structures, covering the subset of the PubMed DTD the
// screening pipeline reads. Sub-blocks are pointers where their absence is
// meaningful to extraction.

// ArticleSet is the root <PubmedArticleSet> element of an efetch response.
type ArticleSet struct {
	Articles []ArticleRecord `xml:"PubmedArticle"`
}

// ArticleRecord is one raw <PubmedArticle> entry.
type ArticleRecord struct {
	MedlineCitation *MedlineCitation `xml:"MedlineCitation"`
	PubmedData      *PubmedData      `xml:"PubmedData"`
}

// MedlineCitation carries the PMID and the nested article block.
type MedlineCitation struct {
	PMID    string      `xml:"PMID"`
	Article *RawArticle `xml:"Article"`
}

// RawArticle is the nested <Article> block with title, journal issue
// (publication date), and author list.
type RawArticle struct {
	Title   TitleText   `xml:"ArticleTitle"`
	Journal Journal     `xml:"Journal"`
	Authors []RawAuthor `xml:"AuthorList>Author"`
}

// Journal holds the journal issue, which carries the publication date.
type Journal struct {
	Issue JournalIssue `xml:"JournalIssue"`
}

// JournalIssue holds the nested publication date fields.
type JournalIssue struct {
	PubDate PubDate `xml:"PubDate"`
}

// PubDate is a partial date: any of Year, Month, Day may be absent, and
// Month is frequently a name ("Jun") rather than a number.
type PubDate struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	Day   string `xml:"Day"`
}

// RawAuthor is one <Author> entry. ValidYN marks the corresponding author
// in PubMed exports that carry the attribute.
type RawAuthor struct {
	ValidYN      string            `xml:"ValidYN,attr"`
	LastName     string            `xml:"LastName"`
	ForeName     string            `xml:"ForeName"`
	Affiliations []AffiliationInfo `xml:"AffiliationInfo"`
}

// AffiliationInfo is one nested affiliation block.
type AffiliationInfo struct {
	Affiliation string `xml:"Affiliation"`
}

// PubmedData holds the identifier list appended after the citation.
type PubmedData struct {
	ArticleIDs []ArticleID `xml:"ArticleIdList>ArticleId"`
}

// ArticleID is one typed identifier (pubmed, doi, pii, pmc, ...).
type ArticleID struct {
	IDType string `xml:"IdType,attr"`
	Value  string `xml:",chardata"`
}

// TitleText collects all character data under an element, dropping nested
// markup such as <i> or <sup> that PubMed embeds in titles. The pieces are
// re-joined on single spaces.
type TitleText struct {
	Text string
}

// UnmarshalXML walks the element's token stream and keeps only CharData.
func (t *TitleText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var parts []string
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case xml.CharData:
			parts = append(parts, string(v))
		case xml.EndElement:
			if v.Name == start.Name {
				t.Text = strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
				return nil
			}
		}
	}
}
