// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar searches academic indexes for papers by title. A Provider
// yields a lazy, forward-only stream of candidates in the index's own
// relevance order and resolves a chosen candidate into a full
// types.Publication.
package scholar

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/pdiddy/citescholar/pkg/types"
)

// ErrUnresolved is returned by Resolve when the provider explicitly reports
// that a candidate has no detail record.
var ErrUnresolved = errors.New("candidate could not be resolved")

const defaultPageSize = 10

// Candidate is an unresolved search hit. Only the provider that produced it
// can resolve it.
type Candidate struct {
	// ID is the provider-specific identifier.
	ID string
	// Title is the title as shown in the result list.
	Title string
	// Source is the name of the provider that produced the candidate.
	Source string
}

// Results is a forward-only candidate stream. Next returns iterator.Done
// once the provider reports the end of its results.
type Results interface {
	Next(ctx context.Context) (Candidate, error)
}

// Provider is a paper search backend. Search never touches the network;
// requests are issued lazily by Results.Next and Resolve.
type Provider interface {
	Name() string
	Search(title string) Results
	Resolve(ctx context.Context, c Candidate) (*types.Publication, error)
}

// New builds the provider selected by cfg.Provider. An empty provider name
// selects OpenAlex.
func New(cfg types.SearchConfig, client *http.Client, logger *zap.Logger) (Provider, error) {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Provider {
	case "", types.ProviderOpenAlex:
		return &OpenAlex{
			Client:    client,
			Email:     cfg.OpenAlexEmail,
			UserAgent: cfg.UserAgent,
			PageSize:  cfg.PageSize,
			Logger:    logger.Named("openalex"),
		}, nil
	case types.ProviderSemanticScholar:
		return &SemanticScholar{
			Client:    client,
			APIKey:    cfg.SemanticScholarAPIKey,
			UserAgent: cfg.UserAgent,
			PageSize:  cfg.PageSize,
			Logger:    logger.Named("semantic_scholar"),
		}, nil
	default:
		return nil, fmt.Errorf("unknown search provider %q: use openalex or semantic_scholar", cfg.Provider)
	}
}

// pageFunc fetches one zero-based page of candidates and reports whether
// the provider has more pages after it.
type pageFunc func(ctx context.Context, page int) (cands []Candidate, more bool, err error)

// pager turns a pageFunc into a Results stream. A page is only requested
// when the previous one has been consumed. Once a fetch fails, the error
// is sticky.
type pager struct {
	fetch pageFunc
	page  int
	buf   []Candidate
	done  bool
	err   error
}

func (p *pager) Next(ctx context.Context) (Candidate, error) {
	for len(p.buf) == 0 {
		if p.err != nil {
			return Candidate{}, p.err
		}
		if p.done {
			return Candidate{}, iterator.Done
		}
		cands, more, err := p.fetch(ctx, p.page)
		if err != nil {
			p.err = err
			return Candidate{}, err
		}
		p.page++
		p.buf = cands
		p.done = !more || len(cands) == 0
	}
	c := p.buf[0]
	p.buf = p.buf[1:]
	return c, nil
}

func pageSize(n int) int {
	if n <= 0 {
		return defaultPageSize
	}
	if n > 100 {
		return 100
	}
	return n
}
