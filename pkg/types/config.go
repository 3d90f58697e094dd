// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultDatabasePath is the SQLite file used when no path is configured.
// Both the CLI flag default and the store fall back to this value.
const DefaultDatabasePath = "citations.db"

// HTTPConfig holds shared HTTP settings used by the search providers.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citescholar/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ProviderName identifies a paper search provider.
type ProviderName string

const (
	ProviderOpenAlex        ProviderName = "openalex"
	ProviderSemanticScholar ProviderName = "semantic_scholar"
)

// SearchConfig holds settings for the search providers.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the search backend: openalex or semantic_scholar.
	Provider ProviderName `json:"provider" yaml:"provider"`

	// PageSize is the number of candidates fetched per provider round trip
	// (default 10). Pages are fetched lazily as the user rejects candidates.
	PageSize int `json:"page_size" yaml:"page_size"`

	// OpenAlexEmail is sent as the mailto parameter for polite pool access.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`
}

// StoreConfig holds settings for the citation store.
type StoreConfig struct {
	// Path is the SQLite database file (default DefaultDatabasePath).
	Path string `json:"path" yaml:"path"`

	// Disabled skips persistence entirely (the --no-save flag).
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// Config groups all settings for a citescholar run.
type Config struct {
	Search SearchConfig  `json:"search" yaml:"search"`
	Store  StoreConfig   `json:"store" yaml:"store"`
	Style  CitationStyle `json:"style" yaml:"style"`
}

// DatabasePath returns the configured store path or DefaultDatabasePath.
func (c StoreConfig) DatabasePath() string {
	if c.Path == "" {
		return DefaultDatabasePath
	}
	return c.Path
}
