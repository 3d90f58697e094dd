// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/citescholar/internal/httputil"
	"github.com/pdiddy/citescholar/pkg/types"
)

// semanticAPIBase is the Semantic Scholar Graph API paper endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper"

const semanticDetailFields = "title,authors,year,venue,journal,externalIds,publicationTypes,abstract,citationCount,url"

// SemanticScholar searches the Semantic Scholar Academic Graph.
type SemanticScholar struct {
	Client *http.Client
	// APIKey is optional; it raises the rate limit.
	APIKey    string
	UserAgent string
	PageSize  int
	Logger    *zap.Logger
}

// Name returns the provider identifier.
func (s *SemanticScholar) Name() string { return string(types.ProviderSemanticScholar) }

// Search returns a lazy stream of papers matching title, in Semantic Scholar
// relevance order.
func (s *SemanticScholar) Search(title string) Results {
	size := pageSize(s.PageSize)
	return &pager{fetch: func(ctx context.Context, page int) ([]Candidate, bool, error) {
		params := url.Values{
			"query":  {title},
			"offset": {strconv.Itoa(page * size)},
			"limit":  {strconv.Itoa(size)},
			"fields": {"title"},
		}

		var resp semanticSearchResponse
		if err := httputil.GetJSON(ctx, s.Client, semanticAPIBase+"/search?"+params.Encode(), s.UserAgent, s.headers(), &resp); err != nil {
			return nil, false, fmt.Errorf("Semantic Scholar search: %w", err)
		}
		s.logger().Debug("fetched search page",
			zap.String("title", title), zap.Int("offset", page*size),
			zap.Int("results", len(resp.Data)), zap.Int("total", resp.Total))

		cands := make([]Candidate, 0, len(resp.Data))
		for _, p := range resp.Data {
			cands = append(cands, Candidate{ID: p.PaperID, Title: p.Title, Source: s.Name()})
		}
		return cands, resp.Next != nil, nil
	}}
}

// Resolve fetches the full paper record for c. A 404 or a record without a
// title is reported as ErrUnresolved.
func (s *SemanticScholar) Resolve(ctx context.Context, c Candidate) (*types.Publication, error) {
	if c.ID == "" {
		return nil, fmt.Errorf("%w: empty Semantic Scholar paper ID", ErrUnresolved)
	}

	params := url.Values{"fields": {semanticDetailFields}}
	reqURL := semanticAPIBase + "/" + url.PathEscape(c.ID) + "?" + params.Encode()

	var paper semanticPaper
	if err := httputil.GetJSON(ctx, s.Client, reqURL, s.UserAgent, s.headers(), &paper); err != nil {
		if httputil.IsNotFound(err) {
			return nil, fmt.Errorf("%w: Semantic Scholar paper %s not found", ErrUnresolved, c.ID)
		}
		return nil, fmt.Errorf("Semantic Scholar paper %s: %w", c.ID, err)
	}
	if strings.TrimSpace(paper.Title) == "" {
		return nil, fmt.Errorf("%w: Semantic Scholar paper %s has no title", ErrUnresolved, c.ID)
	}

	return paper.publication(), nil
}

func (s *SemanticScholar) headers() map[string]string {
	if s.APIKey == "" {
		return nil
	}
	return map[string]string{"x-api-key": s.APIKey}
}

func (s *SemanticScholar) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// publication maps a Semantic Scholar paper onto the shared record.
func (p semanticPaper) publication() *types.Publication {
	pub := &types.Publication{
		ID:       p.PaperID,
		Source:   string(types.ProviderSemanticScholar),
		Title:    strings.TrimSpace(p.Title),
		Year:     p.Year,
		Venue:    p.Venue,
		DOI:      p.ExternalIDs.DOI,
		URL:      p.URL,
		Abstract: p.Abstract,
		CitedBy:  p.CitationCount,
	}

	for _, a := range p.Authors {
		if a.Name != "" {
			pub.Authors = append(pub.Authors, a.Name)
		}
	}

	if j := p.Journal; j != nil {
		if j.Name != "" {
			pub.Venue = j.Name
		}
		pub.Volume = strings.TrimSpace(j.Volume)
		pub.Pages = strings.TrimSpace(j.Pages)
	}

	pub.Kind = semanticKind(p.PublicationTypes, pub.Venue)
	return pub
}

// semanticKind maps Semantic Scholar publication types to an entry kind.
func semanticKind(pubTypes []string, venue string) types.PublicationKind {
	for _, t := range pubTypes {
		switch t {
		case "Conference":
			return types.KindInProceedings
		case "Book":
			return types.KindBook
		case "BookSection":
			return types.KindInCollection
		case "JournalArticle", "Review":
			return types.KindArticle
		}
	}
	if venue != "" {
		return types.KindArticle
	}
	return types.KindMisc
}

// Semantic Scholar API JSON structures.
type semanticSearchResponse struct {
	Total  int                  `json:"total"`
	Offset int                  `json:"offset"`
	Next   *int                 `json:"next"`
	Data   []semanticPaperTitle `json:"data"`
}

type semanticPaperTitle struct {
	PaperID string `json:"paperId"`
	Title   string `json:"title"`
}

type semanticPaper struct {
	PaperID          string              `json:"paperId"`
	Title            string              `json:"title"`
	Abstract         string              `json:"abstract"`
	Year             int                 `json:"year"`
	Venue            string              `json:"venue"`
	URL              string              `json:"url"`
	CitationCount    int                 `json:"citationCount"`
	PublicationTypes []string            `json:"publicationTypes"`
	Authors          []semanticAuthor    `json:"authors"`
	ExternalIDs      semanticExternalIDs `json:"externalIds"`
	Journal          *semanticJournal    `json:"journal"`
}

type semanticAuthor struct {
	Name string `json:"name"`
}

type semanticExternalIDs struct {
	DOI string `json:"DOI"`
}

type semanticJournal struct {
	Name   string `json:"name"`
	Volume string `json:"volume"`
	Pages  string `json:"pages"`
}
