// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"

	"github.com/pdiddy/citescholar/pkg/types"
)

const sampleSemanticPaper = `{
  "paperId": "204e3073870fae3d05bcbc2f6a8e263d9b72e776",
  "title": "Attention is All you Need",
  "abstract": "The dominant sequence transduction models...",
  "year": 2017,
  "venue": "Neural Information Processing Systems",
  "url": "https://www.semanticscholar.org/paper/204e3073870fae3d05bcbc2f6a8e263d9b72e776",
  "citationCount": 120000,
  "publicationTypes": ["JournalArticle", "Conference"],
  "authors": [
    {"authorId": "40348417", "name": "Ashish Vaswani"},
    {"authorId": "1846258", "name": "Noam M. Shazeer"}
  ],
  "externalIds": {"DOI": "10.48550/arXiv.1706.03762", "ArXiv": "1706.03762"},
  "journal": {"name": "", "volume": "30", "pages": "5998-6008"}
}`

func semanticTestServer(t *testing.T) (*httptest.Server, *[]*http.Request) {
	t.Helper()
	var requests []*http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/paper/search":
			switch r.URL.Query().Get("offset") {
			case "0":
				fmt.Fprint(w, `{"total": 3, "offset": 0, "next": 2, "data": [
					{"paperId": "p1", "title": "Deep Learning"},
					{"paperId": "p2", "title": "Deep learning for AI"}]}`)
			case "2":
				fmt.Fprint(w, `{"total": 3, "offset": 2, "data": [
					{"paperId": "p3", "title": "Deep Residual Learning"}]}`)
			default:
				w.WriteHeader(http.StatusBadRequest)
			}
		case "/paper/204e3073870fae3d05bcbc2f6a8e263d9b72e776":
			fmt.Fprint(w, sampleSemanticPaper)
		case "/paper/ratelimited":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error": "Paper not found"}`)
		}
	}))
	t.Cleanup(ts.Close)

	old := semanticAPIBase
	semanticAPIBase = ts.URL + "/paper"
	t.Cleanup(func() { semanticAPIBase = old })

	return ts, &requests
}

func TestSemanticScholarSearch(t *testing.T) {
	ts, requests := semanticTestServer(t)

	s := &SemanticScholar{Client: ts.Client(), APIKey: "sk_test", PageSize: 2}
	results := s.Search("deep learning")

	ctx := context.Background()
	var ids []string
	for {
		c, err := results.Next(ctx)
		if err == iterator.Done {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, "semantic_scholar", c.Source)
		ids = append(ids, c.ID)
	}

	assert.Equal(t, []string{"p1", "p2", "p3"}, ids)
	require.Len(t, *requests, 2)
	first := (*requests)[0]
	assert.Equal(t, "deep learning", first.URL.Query().Get("query"))
	assert.Equal(t, "2", first.URL.Query().Get("limit"))
	assert.Equal(t, "sk_test", first.Header.Get("x-api-key"))
}

func TestSemanticScholarSearchNoAPIKeyHeader(t *testing.T) {
	ts, requests := semanticTestServer(t)

	s := &SemanticScholar{Client: ts.Client(), PageSize: 2}
	_, err := s.Search("deep learning").Next(context.Background())
	require.NoError(t, err)
	require.Len(t, *requests, 1)
	assert.Empty(t, (*requests)[0].Header.Get("x-api-key"))
}

func TestSemanticScholarResolve(t *testing.T) {
	ts, requests := semanticTestServer(t)

	s := &SemanticScholar{Client: ts.Client()}
	pub, err := s.Resolve(context.Background(), Candidate{ID: "204e3073870fae3d05bcbc2f6a8e263d9b72e776"})
	require.NoError(t, err)

	assert.Equal(t, "Attention is All you Need", pub.Title)
	assert.Equal(t, []string{"Ashish Vaswani", "Noam M. Shazeer"}, pub.Authors)
	assert.Equal(t, 2017, pub.Year)
	assert.Equal(t, "Neural Information Processing Systems", pub.Venue, "empty journal name keeps venue")
	assert.Equal(t, "30", pub.Volume)
	assert.Equal(t, "5998-6008", pub.Pages)
	assert.Equal(t, "10.48550/arXiv.1706.03762", pub.DOI)
	assert.Equal(t, types.KindArticle, pub.Kind, "first recognised publication type wins")
	assert.Equal(t, 120000, pub.CitedBy)

	require.Len(t, *requests, 1)
	assert.Equal(t, semanticDetailFields, (*requests)[0].URL.Query().Get("fields"))
}

func TestSemanticScholarResolveNotFound(t *testing.T) {
	ts, _ := semanticTestServer(t)

	s := &SemanticScholar{Client: ts.Client()}
	_, err := s.Resolve(context.Background(), Candidate{ID: "missing"})
	assert.ErrorIs(t, err, ErrUnresolved)

	_, err = s.Resolve(context.Background(), Candidate{})
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestSemanticScholarResolveTransportError(t *testing.T) {
	ts, requests := semanticTestServer(t)

	s := &SemanticScholar{Client: ts.Client()}
	_, err := s.Resolve(context.Background(), Candidate{ID: "ratelimited"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnresolved)
	assert.Len(t, *requests, 1, "no retry on 429")
}

func TestSemanticKind(t *testing.T) {
	tests := []struct {
		name     string
		pubTypes []string
		venue    string
		want     types.PublicationKind
	}{
		{"conference", []string{"Conference"}, "ICML", types.KindInProceedings},
		{"journal", []string{"JournalArticle"}, "Nature", types.KindArticle},
		{"book", []string{"Book"}, "", types.KindBook},
		{"book section", []string{"BookSection"}, "", types.KindInCollection},
		{"unknown with venue", []string{"Dataset"}, "Zenodo", types.KindArticle},
		{"nothing", nil, "", types.KindMisc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, semanticKind(tt.pubTypes, tt.venue))
		})
	}
}
