// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// CitationStyle selects the rendered citation format. BibTeX is the only
// supported style.
type CitationStyle string

const StyleBibTeX CitationStyle = "bibtex"

// ParseCitationStyle validates a style name. The empty string selects BibTeX.
func ParseCitationStyle(s string) (CitationStyle, error) {
	switch CitationStyle(s) {
	case "", StyleBibTeX:
		return StyleBibTeX, nil
	default:
		return "", fmt.Errorf("unsupported citation style %q: use bibtex", s)
	}
}

// Citation is a stored citation record. Records are written once and never
// mutated or deleted.
type Citation struct {
	// ID is the auto-assigned primary key.
	ID int64 `json:"id" yaml:"id"`

	// Title is the title reported by the provider for the accepted paper.
	Title string `json:"title" yaml:"title"`

	// Citation is the rendered citation text.
	Citation string `json:"citation" yaml:"citation"`

	// Hash is the content fingerprint over Title and Citation. It is unique
	// across all records.
	Hash string `json:"citation_hash" yaml:"citation_hash"`

	// CreatedAt is set by the database when the record is inserted.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
