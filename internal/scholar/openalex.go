// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/citescholar/internal/httputil"
	"github.com/pdiddy/citescholar/pkg/types"
)

// openAlexAPIBase is the OpenAlex Works endpoint. Declared as a var so
// tests can substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org/works"

const openAlexIDPrefix = "https://openalex.org/"

// OpenAlex searches the OpenAlex works index.
type OpenAlex struct {
	Client *http.Client
	// Email is sent as mailto parameter for polite pool access.
	Email     string
	UserAgent string
	PageSize  int
	Logger    *zap.Logger
}

// Name returns the provider identifier.
func (o *OpenAlex) Name() string { return string(types.ProviderOpenAlex) }

// Search returns a lazy stream of works matching title, in OpenAlex
// relevance order.
func (o *OpenAlex) Search(title string) Results {
	size := pageSize(o.PageSize)
	return &pager{fetch: func(ctx context.Context, page int) ([]Candidate, bool, error) {
		params := url.Values{
			"search":   {title},
			"per_page": {strconv.Itoa(size)},
			"page":     {strconv.Itoa(page + 1)},
			"select":   {"id,title"},
		}
		o.setMailto(params)

		var resp openAlexSearchResponse
		if err := httputil.GetJSON(ctx, o.Client, openAlexAPIBase+"?"+params.Encode(), o.UserAgent, nil, &resp); err != nil {
			return nil, false, fmt.Errorf("OpenAlex search: %w", err)
		}
		o.logger().Debug("fetched search page",
			zap.String("title", title), zap.Int("page", page+1),
			zap.Int("results", len(resp.Results)), zap.Int("count", resp.Meta.Count))

		cands := make([]Candidate, 0, len(resp.Results))
		for _, w := range resp.Results {
			cands = append(cands, Candidate{ID: w.ID, Title: w.Title, Source: o.Name()})
		}
		more := len(resp.Results) == size && (page+1)*size < resp.Meta.Count
		return cands, more, nil
	}}
}

// Resolve fetches the full work record for c. A 404 or a record without a
// title is reported as ErrUnresolved.
func (o *OpenAlex) Resolve(ctx context.Context, c Candidate) (*types.Publication, error) {
	id := strings.TrimPrefix(c.ID, openAlexIDPrefix)
	if id == "" {
		return nil, fmt.Errorf("%w: empty OpenAlex work ID", ErrUnresolved)
	}

	params := url.Values{}
	o.setMailto(params)
	reqURL := openAlexAPIBase + "/" + url.PathEscape(id)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var work openAlexWork
	if err := httputil.GetJSON(ctx, o.Client, reqURL, o.UserAgent, nil, &work); err != nil {
		if httputil.IsNotFound(err) {
			return nil, fmt.Errorf("%w: OpenAlex work %s not found", ErrUnresolved, id)
		}
		return nil, fmt.Errorf("OpenAlex work %s: %w", id, err)
	}
	if strings.TrimSpace(work.Title) == "" {
		return nil, fmt.Errorf("%w: OpenAlex work %s has no title", ErrUnresolved, id)
	}

	return work.publication(), nil
}

func (o *OpenAlex) setMailto(params url.Values) {
	if o.Email != "" {
		params.Set("mailto", o.Email)
	}
}

func (o *OpenAlex) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// publication maps an OpenAlex work onto the shared record.
func (w openAlexWork) publication() *types.Publication {
	p := &types.Publication{
		ID:       strings.TrimPrefix(w.ID, openAlexIDPrefix),
		Source:   string(types.ProviderOpenAlex),
		Title:    strings.TrimSpace(w.Title),
		Year:     w.PublicationYear,
		DOI:      strings.TrimPrefix(w.DOI, "https://doi.org/"),
		Abstract: reconstructAbstract(w.AbstractInvertedIndex),
		Volume:   w.Biblio.Volume,
		Issue:    w.Biblio.Issue,
		Pages:    joinPages(w.Biblio.FirstPage, w.Biblio.LastPage),
		CitedBy:  w.CitedByCount,
	}

	for _, a := range w.Authorships {
		if a.Author.DisplayName != "" {
			p.Authors = append(p.Authors, a.Author.DisplayName)
		}
	}

	var sourceType string
	if loc := w.PrimaryLocation; loc != nil {
		p.URL = loc.LandingPageURL
		if loc.Source != nil {
			p.Venue = loc.Source.DisplayName
			p.Publisher = loc.Source.HostOrganizationName
			sourceType = loc.Source.Type
		}
	}
	if p.URL == "" && p.DOI != "" {
		p.URL = "https://doi.org/" + p.DOI
	}

	p.Kind = openAlexKind(w.Type, sourceType, p.Venue)
	return p
}

// openAlexKind maps an OpenAlex work type and source type to an entry kind.
func openAlexKind(workType, sourceType, venue string) types.PublicationKind {
	switch workType {
	case "book":
		return types.KindBook
	case "book-chapter":
		return types.KindInCollection
	case "dissertation":
		return types.KindThesis
	}
	switch sourceType {
	case "conference":
		return types.KindInProceedings
	case "journal":
		return types.KindArticle
	}
	if workType == "article" && venue != "" {
		return types.KindArticle
	}
	return types.KindMisc
}

func joinPages(first, last string) string {
	switch {
	case first != "" && last != "" && first != last:
		return first + "-" + last
	case first != "":
		return first
	default:
		return last
	}
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to a list of positions
// where that word appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexSearchResponse struct {
	Meta    openAlexMeta        `json:"meta"`
	Results []openAlexWorkTitle `json:"results"`
}

type openAlexMeta struct {
	Count int `json:"count"`
}

type openAlexWorkTitle struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DOI                   string               `json:"doi"`
	Type                  string               `json:"type"`
	PublicationYear       int                  `json:"publication_year"`
	CitedByCount          int                  `json:"cited_by_count"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
	Biblio                openAlexBiblio       `json:"biblio"`
	PrimaryLocation       *openAlexLocation    `json:"primary_location"`
}

type openAlexAuthorship struct {
	Author openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type openAlexBiblio struct {
	Volume    string `json:"volume"`
	Issue     string `json:"issue"`
	FirstPage string `json:"first_page"`
	LastPage  string `json:"last_page"`
}

type openAlexLocation struct {
	LandingPageURL string          `json:"landing_page_url"`
	Source         *openAlexSource `json:"source"`
}

type openAlexSource struct {
	DisplayName          string `json:"display_name"`
	HostOrganizationName string `json:"host_organization_name"`
	Type                 string `json:"type"`
}
