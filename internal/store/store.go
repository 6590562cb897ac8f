// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists screening runs to a local SQLite database so past
// results can be queried and exported without re-hitting the PubMed API.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-screen/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "screen.db"
)

// Store manages the screening results SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the results database at
// resultsDir/index/screen.db, creating the schema if needed.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.ResultsDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			created TEXT NOT NULL,
			included INTEGER,
			excluded INTEGER,
			failed INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			pmid TEXT NOT NULL,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			title TEXT,
			pub_date TEXT,
			doi TEXT,
			industry_authors TEXT,
			all_authors TEXT,
			emails TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_run_id ON articles(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_pmid ON articles(pmid)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table over titles, with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='articles_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE articles_fts USING fts5(title, content=articles, content_rowid=rowid)`,
			`CREATE TRIGGER articles_ai AFTER INSERT ON articles BEGIN
				INSERT INTO articles_fts(rowid, title) VALUES (new.rowid, new.title);
			END`,
			`CREATE TRIGGER articles_ad AFTER DELETE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title) VALUES('delete', old.rowid, old.title);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// Summary carries the run counts saved alongside the articles.
type Summary struct {
	Included int
	Excluded int
	Failed   int
}

// Save persists one screening run and its kept articles in a single
// transaction, returning the new run ID.
func (s *Store) Save(ctx context.Context, query string, articles []*types.Article, sum Summary) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (query, created, included, excluded, failed) VALUES (?, ?, ?, ?, ?)`,
		query, time.Now().UTC().Format(time.RFC3339), sum.Included, sum.Excluded, sum.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO articles (pmid, run_id, title, pub_date, doi, industry_authors, all_authors, emails)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range articles {
		industryJSON, _ := json.Marshal(a.IndustryAuthors)
		allJSON, _ := json.Marshal(a.AllAuthors)
		emailsJSON, _ := json.Marshal(a.CorrespondingEmails)
		if _, err := stmt.ExecContext(ctx,
			a.PubmedID, runID, a.Title, a.PublicationDate, a.DOI,
			string(industryJSON), string(allJSON), string(emailsJSON),
		); err != nil {
			return 0, fmt.Errorf("inserting article %s: %w", a.PubmedID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// QueryOptions filters stored articles. Zero values mean "no filter".
type QueryOptions struct {
	// Text is a full-text search over article titles.
	Text string
	// PMID restricts results to one article identifier.
	PMID string
	// RunID restricts results to one screening run.
	RunID int64
	// MaxResults caps the result count (store default when 0).
	MaxResults int
}

// IsEmpty reports whether no filter is set.
func (o QueryOptions) IsEmpty() bool {
	return o.Text == "" && o.PMID == "" && o.RunID == 0
}

// StoredArticle is a query hit: the article plus run provenance.
type StoredArticle struct {
	RunID   int64  `json:"run_id" yaml:"run_id"`
	Query   string `json:"query" yaml:"query"`
	Created string `json:"created" yaml:"created"`

	types.Article `yaml:",inline"`
}

// Query returns stored articles matching the options, newest run first.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]StoredArticle, error) {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}

	var conditions []string
	var args []any

	if opts.Text != "" {
		conditions = append(conditions,
			`a.rowid IN (SELECT rowid FROM articles_fts WHERE articles_fts MATCH ?)`)
		args = append(args, opts.Text)
	}
	if opts.PMID != "" {
		conditions = append(conditions, `a.pmid = ?`)
		args = append(args, opts.PMID)
	}
	if opts.RunID != 0 {
		conditions = append(conditions, `a.run_id = ?`)
		args = append(args, opts.RunID)
	}

	query := `SELECT a.pmid, a.run_id, a.title, a.pub_date, a.doi,
		a.industry_authors, a.all_authors, a.emails, r.query, r.created
		FROM articles a JOIN runs r ON r.id = a.run_id`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, ` AND `)
	}
	query += ` ORDER BY a.run_id DESC, a.rowid ASC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var results []StoredArticle
	for rows.Next() {
		var sa StoredArticle
		var industryJSON, allJSON, emailsJSON string
		if err := rows.Scan(&sa.PubmedID, &sa.RunID, &sa.Title, &sa.PublicationDate,
			&sa.DOI, &industryJSON, &allJSON, &emailsJSON, &sa.Query, &sa.Created); err != nil {
			return nil, fmt.Errorf("scanning article row: %w", err)
		}
		json.Unmarshal([]byte(industryJSON), &sa.IndustryAuthors)
		json.Unmarshal([]byte(allJSON), &sa.AllAuthors)
		json.Unmarshal([]byte(emailsJSON), &sa.CorrespondingEmails)
		results = append(results, sa)
	}
	return results, rows.Err()
}

// Run summarizes one stored screening run.
type Run struct {
	ID       int64  `json:"id" yaml:"id"`
	Query    string `json:"query" yaml:"query"`
	Created  string `json:"created" yaml:"created"`
	Included int    `json:"included" yaml:"included"`
	Excluded int    `json:"excluded" yaml:"excluded"`
	Failed   int    `json:"failed" yaml:"failed"`
}

// Runs lists all stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, created, included, excluded, failed FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Query, &r.Created, &r.Included, &r.Excluded, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// export is the YAML document shape written by ExportYAML.
type export struct {
	Exported time.Time       `yaml:"exported"`
	Articles []StoredArticle `yaml:"articles"`
}

// ExportYAML writes every stored article (no limit) to a YAML file.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	articles, err := s.Query(ctx, QueryOptions{MaxResults: 1 << 30})
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(export{Exported: time.Now().UTC(), Articles: articles})
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
