package eutils

import (
	"encoding/xml"
	"testing"
)

const sampleEfetchXML = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation Status="MEDLINE" Owner="NLM">
      <PMID Version="1">36000001</PMID>
      <Article PubModel="Print">
        <Journal>
          <JournalIssue CitedMedium="Internet">
            <PubDate>
              <Year>2021</Year>
              <Month>Jun</Month>
              <Day>15</Day>
            </PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Effect of <i>BRCA1</i> inhibitors on tumor growth<sup>1</sup>.</ArticleTitle>
        <AuthorList CompleteYN="Y">
          <Author ValidYN="Y">
            <LastName>Doe</LastName>
            <ForeName>Jane</ForeName>
            <AffiliationInfo>
              <Affiliation>Pfizer Inc, Cambridge, MA. jane.doe@pfizer.com.</Affiliation>
            </AffiliationInfo>
          </Author>
          <Author>
            <LastName>Roe</LastName>
            <ForeName>Richard</ForeName>
            <AffiliationInfo>
              <Affiliation>University of Toronto, Canada.</Affiliation>
            </AffiliationInfo>
          </Author>
          <Author>
            <CollectiveName>The BRCA Consortium</CollectiveName>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
    <PubmedData>
      <ArticleIdList>
        <ArticleId IdType="pubmed">36000001</ArticleId>
        <ArticleId IdType="doi">10.1000/brca.2021</ArticleId>
      </ArticleIdList>
    </PubmedData>
  </PubmedArticle>
</PubmedArticleSet>`

func TestDecodeEfetchXML(t *testing.T) {
	var set ArticleSet
	if err := xml.Unmarshal([]byte(sampleEfetchXML), &set); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(set.Articles) != 1 {
		t.Fatalf("len(Articles) = %d, want 1", len(set.Articles))
	}

	rec := set.Articles[0]
	if rec.MedlineCitation == nil || rec.MedlineCitation.Article == nil {
		t.Fatal("missing citation or article block")
	}
	if rec.MedlineCitation.PMID != "36000001" {
		t.Errorf("PMID = %q, want 36000001", rec.MedlineCitation.PMID)
	}

	// Nested markup is stripped and text whitespace-joined.
	wantTitle := "Effect of BRCA1 inhibitors on tumor growth 1 ."
	if got := rec.MedlineCitation.Article.Title.Text; got != wantTitle {
		t.Errorf("Title = %q, want %q", got, wantTitle)
	}

	pd := rec.MedlineCitation.Article.Journal.Issue.PubDate
	if pd.Year != "2021" || pd.Month != "Jun" || pd.Day != "15" {
		t.Errorf("PubDate = %+v, want 2021/Jun/15", pd)
	}

	authors := rec.MedlineCitation.Article.Authors
	if len(authors) != 3 {
		t.Fatalf("len(Authors) = %d, want 3", len(authors))
	}
	if authors[0].ValidYN != "Y" {
		t.Errorf("ValidYN = %q, want Y", authors[0].ValidYN)
	}
	if authors[0].Affiliations[0].Affiliation != "Pfizer Inc, Cambridge, MA. jane.doe@pfizer.com." {
		t.Errorf("affiliation = %q", authors[0].Affiliations[0].Affiliation)
	}
	// Collective-name entries decode with empty name fields.
	if authors[2].LastName != "" || authors[2].ForeName != "" {
		t.Errorf("collective author = %+v, want empty name fields", authors[2])
	}

	if rec.PubmedData == nil || len(rec.PubmedData.ArticleIDs) != 2 {
		t.Fatal("missing article ID list")
	}
	if rec.PubmedData.ArticleIDs[1].IDType != "doi" || rec.PubmedData.ArticleIDs[1].Value != "10.1000/brca.2021" {
		t.Errorf("doi entry = %+v", rec.PubmedData.ArticleIDs[1])
	}
}

func TestDecodeMissingBlocks(t *testing.T) {
	const partial = `<PubmedArticleSet><PubmedArticle>
		<MedlineCitation><PMID>42</PMID></MedlineCitation>
	</PubmedArticle></PubmedArticleSet>`

	var set ArticleSet
	if err := xml.Unmarshal([]byte(partial), &set); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	rec := set.Articles[0]
	if rec.MedlineCitation == nil {
		t.Fatal("MedlineCitation should be present")
	}
	if rec.MedlineCitation.Article != nil {
		t.Error("Article should be nil when the element is absent")
	}
	if rec.PubmedData != nil {
		t.Error("PubmedData should be nil when the element is absent")
	}
}
