// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for citescholar: the
// resolved publication record returned by a search provider, the stored
// citation record, and run configuration.
package types

// PublicationKind is the bibliographic entry type of a publication. The
// values double as BibTeX entry types.
type PublicationKind string

const (
	KindArticle       PublicationKind = "article"
	KindInProceedings PublicationKind = "inproceedings"
	KindBook          PublicationKind = "book"
	KindInCollection  PublicationKind = "incollection"
	KindThesis        PublicationKind = "phdthesis"
	KindMisc          PublicationKind = "misc"
)

// Publication is the fully resolved detail record of a search candidate.
type Publication struct {
	// ID is the provider-specific identifier (OpenAlex work ID, S2 paper ID).
	ID string `json:"id" yaml:"id"`

	// Source identifies which provider resolved this record (e.g. "openalex").
	Source string `json:"source" yaml:"source"`

	// Kind is the bibliographic entry type.
	Kind PublicationKind `json:"kind" yaml:"kind"`

	// Title is the paper title as reported by the provider.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year, 0 if unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Venue is the journal, conference, or repository name.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	Volume    string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue     string `json:"issue,omitempty" yaml:"issue,omitempty"`
	Pages     string `json:"pages,omitempty" yaml:"pages,omitempty"`
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// DOI is the bare DOI without the https://doi.org/ prefix.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// URL is a landing page for the publication.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// CitedBy is the provider's citation count.
	CitedBy int `json:"cited_by,omitempty" yaml:"cited_by,omitempty"`
}
