package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-screen/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the PubMed search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of PMIDs to request (default 20).
	// E-utilities caps retmax at 100000.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// RetStart is the index of the first result, for pagination.
	RetStart int `json:"ret_start,omitempty" yaml:"ret_start,omitempty"`

	// MinDate and MaxDate bound the publication date range
	// (YYYY, YYYY/MM, or YYYY/MM/DD).
	MinDate string `json:"min_date,omitempty" yaml:"min_date,omitempty"`
	MaxDate string `json:"max_date,omitempty" yaml:"max_date,omitempty"`

	// APIKey is an optional NCBI API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email identifies the caller to NCBI, as E-utilities etiquette asks.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// ScreenConfig holds settings for the screening stage.
type ScreenConfig struct {
	// FetchDelay is the delay between consecutive efetch calls (default
	// 350ms, which keeps an unkeyed client under NCBI's 3 requests per
	// second limit).
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`

	// LexiconPath optionally points to a YAML file of extra classifier
	// keywords merged into the built-in lists.
	LexiconPath string `json:"lexicon_path,omitempty" yaml:"lexicon_path,omitempty"`
}

// StoreConfig holds settings for the local results store.
type StoreConfig struct {
	// ResultsDir is the base directory for stored runs (contains index/).
	ResultsDir string `json:"results_dir" yaml:"results_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Screen ScreenConfig `json:"screen" yaml:"screen"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}
