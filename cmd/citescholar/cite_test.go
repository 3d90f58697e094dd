// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/pdiddy/citescholar/internal/scholar"
	"github.com/pdiddy/citescholar/internal/store"
	"github.com/pdiddy/citescholar/pkg/types"
)

// stubProvider returns its candidates in order and resolves each one to a
// fixed article.
type stubProvider struct {
	cands []scholar.Candidate
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Search(string) scholar.Results {
	return &stubResults{cands: p.cands}
}

func (p *stubProvider) Resolve(_ context.Context, c scholar.Candidate) (*types.Publication, error) {
	return &types.Publication{
		ID:      c.ID,
		Source:  "stub",
		Kind:    types.KindArticle,
		Title:   c.Title,
		Authors: []string{"Yann LeCun"},
		Year:    2015,
		Venue:   "Nature",
	}, nil
}

type stubResults struct {
	cands []scholar.Candidate
}

func (r *stubResults) Next(context.Context) (scholar.Candidate, error) {
	if len(r.cands) == 0 {
		return scholar.Candidate{}, iterator.Done
	}
	c := r.cands[0]
	r.cands = r.cands[1:]
	return c, nil
}

func useProvider(t *testing.T, p scholar.Provider) {
	t.Helper()
	orig := newProvider
	newProvider = func(types.SearchConfig, *http.Client, *zap.Logger) (scholar.Provider, error) {
		return p, nil
	}
	t.Cleanup(func() { newProvider = orig })
}

func deepLearning() *stubProvider {
	return &stubProvider{cands: []scholar.Candidate{{ID: "W1", Title: "Deep learning", Source: "stub"}}}
}

// citeCommand builds a cite command answering input on stdin and storing
// into dbPath unless dbPath is empty, in which case --no-save is set.
func citeCommand(t *testing.T, dbPath, input string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cmd, out := testCommand(t, runCite, func(c *cobra.Command) {
		c.Flags().String("title", "Deep learning", "")
		c.Flags().Bool("no-save", false, "")
	})
	if dbPath == "" {
		require.NoError(t, cmd.Flags().Set("no-save", "true"))
	} else {
		require.NoError(t, cmd.Flags().Set("sqlite3", dbPath))
	}
	cmd.SetIn(strings.NewReader(input))
	return cmd, out
}

func countCitations(t *testing.T, path string) int {
	t.Helper()
	s, err := store.Open(path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestRunCiteAcceptThenDuplicate(t *testing.T) {
	useProvider(t, deepLearning())
	path := filepath.Join(t.TempDir(), "refs.db")

	cmd, out := citeCommand(t, path, "\n")
	require.NoError(t, runCite(cmd, nil))
	assert.Contains(t, out.String(), "Database setup successful!")
	assert.Contains(t, out.String(), "@article{lecun2015deep,")
	assert.Contains(t, out.String(), "Citation successfully added to database.")
	assert.Equal(t, 1, countCitations(t, path))

	cmd, out = citeCommand(t, path, "y\n")
	require.NoError(t, runCite(cmd, nil))
	assert.Contains(t, out.String(), "This citation already exists in the database.")
	assert.NotContains(t, out.String(), "successfully added")
	assert.Equal(t, 1, countCitations(t, path))
}

func TestRunCiteNoSaveSkipsStore(t *testing.T) {
	useProvider(t, deepLearning())
	dir := t.TempDir()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cmd, out := citeCommand(t, "", "\n")
	require.NoError(t, runCite(cmd, nil))

	assert.Contains(t, out.String(), "Save to database: false")
	assert.NotContains(t, out.String(), "Database")
	assert.NotContains(t, out.String(), "successfully added")
	_, err := os.Stat(filepath.Join(dir, types.DefaultDatabasePath))
	assert.True(t, os.IsNotExist(err), "no database file created")
}

func TestRunCiteNoResultLeavesStoreEmpty(t *testing.T) {
	useProvider(t, &stubProvider{})
	path := filepath.Join(t.TempDir(), "refs.db")

	cmd, out := citeCommand(t, path, "")
	require.NoError(t, runCite(cmd, nil))

	assert.Contains(t, out.String(), "No more papers found matching the search criteria.")
	assert.Contains(t, out.String(), "No result bye.")
	assert.Equal(t, 0, countCitations(t, path))
}

func TestRunCiteRejectAllStoresNothing(t *testing.T) {
	useProvider(t, deepLearning())
	path := filepath.Join(t.TempDir(), "refs.db")

	cmd, out := citeCommand(t, path, "maybe\nn\n")
	require.NoError(t, runCite(cmd, nil))

	assert.Contains(t, out.String(), "Invalid input. Please enter 'y' or 'n'.")
	assert.Contains(t, out.String(), "No result bye.")
	assert.Equal(t, 0, countCitations(t, path))
}

func TestRunCiteStoreErrorExitsCleanly(t *testing.T) {
	useProvider(t, deepLearning())
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cmd, out := citeCommand(t, filepath.Join(blocker, "sub", "refs.db"), "\n")
	require.NoError(t, runCite(cmd, nil))

	assert.Contains(t, out.String(), "An error occurred:")
	assert.NotContains(t, out.String(), "Found paper:")
}

func TestRunCiteEmptyTitle(t *testing.T) {
	useProvider(t, deepLearning())
	cmd, _ := citeCommand(t, filepath.Join(t.TempDir(), "refs.db"), "\n")
	require.NoError(t, cmd.Flags().Set("title", "   "))
	assert.Error(t, runCite(cmd, nil))
}
