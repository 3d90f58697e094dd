// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package confirm walks a provider's search results one candidate at a
// time and asks the user to accept or reject each one. The first accepted
// candidate is returned together with its rendered citation; nothing is
// persisted here.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/pdiddy/citescholar/internal/citation"
	"github.com/pdiddy/citescholar/internal/scholar"
	"github.com/pdiddy/citescholar/pkg/types"
)

const (
	Prompt         = "\nIs this the correct paper? ([y]/n): "
	msgFound       = "\nFound paper:"
	msgCitation    = "\nBibTeX citation:"
	msgInvalid     = "Invalid input. Please enter 'y' or 'n'."
	msgExhausted   = "\nNo more papers found matching the search criteria."
	msgUnresolved  = "Paper could not be filled successfully"
	msgSearchError = "An error occurred while searching: %v\n"
)

// Confirmed is the accepted paper: the title as reported by the provider
// record and the rendered citation text.
type Confirmed struct {
	Title    string
	Citation string
}

// Confirmer runs the interactive confirmation loop.
type Confirmer struct {
	Provider scholar.Provider
	Decider  Decider
	// Out receives candidate details, citations, and status messages.
	Out    io.Writer
	Style  types.CitationStyle
	Logger *zap.Logger
}

// Find searches for title and returns the first candidate the user
// accepts. It returns false when the results run out, the user aborts, a
// candidate cannot be resolved, or the provider fails; in each case a
// message has already been written to Out. Candidates after the accepted
// one are never resolved or shown.
func (c *Confirmer) Find(ctx context.Context, title string) (Confirmed, bool) {
	log := c.logger().With(zap.String("query", title), zap.String("provider", c.Provider.Name()))
	results := c.Provider.Search(title)

	for n := 1; ; n++ {
		cand, err := results.Next(ctx)
		if errors.Is(err, iterator.Done) {
			fmt.Fprintln(c.Out, msgExhausted)
			log.Debug("search exhausted", zap.Int("candidates", n-1))
			return Confirmed{}, false
		}
		if err != nil {
			fmt.Fprintf(c.Out, msgSearchError, err)
			log.Warn("search failed", zap.Error(err))
			return Confirmed{}, false
		}

		pub, err := c.Provider.Resolve(ctx, cand)
		if err != nil {
			if errors.Is(err, scholar.ErrUnresolved) {
				fmt.Fprintln(c.Out, msgUnresolved)
			} else {
				fmt.Fprintf(c.Out, msgSearchError, err)
			}
			log.Warn("resolving candidate failed", zap.String("candidate", cand.ID), zap.Error(err))
			return Confirmed{}, false
		}

		text, err := citation.Render(pub, c.Style)
		if err != nil {
			fmt.Fprintf(c.Out, msgSearchError, err)
			return Confirmed{}, false
		}

		fmt.Fprintln(c.Out, msgFound)
		citation.Display(c.Out, pub)
		fmt.Fprintln(c.Out, msgCitation)
		fmt.Fprintln(c.Out, text)

		accepted, err := c.ask(ctx)
		if err != nil {
			log.Info("confirmation aborted", zap.Error(err))
			return Confirmed{}, false
		}
		if accepted {
			log.Debug("candidate accepted", zap.Int("position", n), zap.String("candidate", cand.ID))
			return Confirmed{Title: pub.Title, Citation: text}, true
		}
		log.Debug("candidate rejected", zap.Int("position", n), zap.String("candidate", cand.ID))
	}
}

// ask repeats the prompt until the decider gives a valid answer.
func (c *Confirmer) ask(ctx context.Context) (bool, error) {
	for {
		d, err := c.Decider.Decide(ctx, Prompt)
		if err != nil {
			return false, err
		}
		switch d {
		case Accept:
			return true, nil
		case Reject:
			return false, nil
		}
		fmt.Fprintln(c.Out, msgInvalid)
	}
}

func (c *Confirmer) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
