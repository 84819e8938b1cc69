package finder

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/campusfind/internal/config"
	"github.com/vijay-prabhu/campusfind/internal/database"
	"github.com/vijay-prabhu/campusfind/internal/match"
	"github.com/vijay-prabhu/campusfind/internal/metrics"
)

func setupFinder(t *testing.T) (*Finder, *database.DB) {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	items, err := database.SampleItems()
	require.NoError(t, err)
	_, err = db.ImportItems(context.Background(), items)
	require.NoError(t, err)

	engine, err := match.NewEngine()
	require.NoError(t, err)

	return New(db, engine, config.Default().Matching, nil), db
}

func matchIDs(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Item.ID
	}
	return out
}

func TestReport_StoresAndMatches(t *testing.T) {
	f, db := setupFinder(t)
	ctx := context.Background()

	before := testutil.ToFloat64(metrics.ItemsReportedTotal.WithLabelValues("lost"))

	item := &database.Item{
		Kind:        match.KindLost,
		Name:        "My backpack",
		Description: "navy blue backpack keychain",
		Location:    "Library",
		Category:    "Bags",
		Color:       database.OptionalString("Blue"),
	}
	matches, err := f.Report(ctx, item)
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, []string{"sample-found-1", "sample-found-4"}, matchIDs(matches))
	assert.Equal(t, 98, matches[0].Score)
	assert.Equal(t, 35, matches[1].Score)
	assert.Equal(t, match.ConfidenceHigh, matches[0].Confidence())
	assert.Equal(t, "Jansport", *matches[0].Item.Brand)

	stored, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, database.StatusActive, stored.Status)

	after := testutil.ToFloat64(metrics.ItemsReportedTotal.WithLabelValues("lost"))
	assert.Equal(t, before+1, after)
}

func TestReport_InvalidKind(t *testing.T) {
	f, db := setupFinder(t)
	ctx := context.Background()

	_, err := f.Report(ctx, &database.Item{Kind: "stolen", Name: "bike"})
	assert.ErrorIs(t, err, ErrInvalidKind)

	stats, err := db.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, stats.TotalItems)
}

func TestSimilar(t *testing.T) {
	f, _ := setupFinder(t)

	item, matches, err := f.Similar(context.Background(), "sample-lost-8")
	require.NoError(t, err)

	assert.Equal(t, "Prescription Glasses", item.Name)
	assert.Equal(t, []string{"sample-found-5", "sample-found-2"}, matchIDs(matches))
	assert.Equal(t, 91, matches[0].Score)
	assert.Equal(t, 32, matches[1].Score)
}

func TestSimilar_NotFound(t *testing.T) {
	f, _ := setupFinder(t)

	_, _, err := f.Similar(context.Background(), "missing")
	assert.ErrorIs(t, err, database.ErrItemNotFound)
}

func TestSimilar_SkipsResolvedCandidates(t *testing.T) {
	f, db := setupFinder(t)
	ctx := context.Background()

	require.NoError(t, db.UpdateItemStatus(ctx, "sample-found-5", database.StatusClaimed))

	_, matches, err := f.Similar(ctx, "sample-lost-8")
	require.NoError(t, err)
	assert.Equal(t, []string{"sample-found-2"}, matchIDs(matches))
}

func TestPreview_DefaultsToLost(t *testing.T) {
	f, _ := setupFinder(t)

	matches, err := f.Preview(context.Background(), match.Item{Description: "black umbrella"})
	require.NoError(t, err)

	// sample-found-2 shares only "black" and lands exactly on the threshold
	assert.Equal(t, []string{"sample-found-5"}, matchIDs(matches))
	assert.Equal(t, 40, matches[0].Score)
}

func TestPreview_FoundQuerySearchesLost(t *testing.T) {
	f, _ := setupFinder(t)

	matches, err := f.Preview(context.Background(), match.Item{
		Kind:     match.KindFound,
		Location: "Library",
		Color:    "Red",
	})
	require.NoError(t, err)

	require.NotEmpty(t, matches)
	assert.Equal(t, "sample-lost-7", matches[0].Item.ID)
	assert.Equal(t, 100, matches[0].Score)
	for _, m := range matches {
		assert.Equal(t, match.KindLost, m.Item.Kind)
	}
}

func TestMatchWith_CustomOptions(t *testing.T) {
	f, _ := setupFinder(t)

	query := match.Item{Kind: match.KindLost, Location: "Library"}
	matches, err := f.MatchWith(context.Background(), query, match.Options{MinScore: -1})
	require.NoError(t, err)
	assert.Len(t, matches, 6)

	matches, err = f.MatchWith(context.Background(), query, match.Options{MinScore: -1, TopK: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"sample-found-1"}, matchIDs(matches))
}

func TestMatch_UnknownProfile(t *testing.T) {
	f, _ := setupFinder(t)

	_, err := f.Match(context.Background(), match.Item{Kind: match.KindLost}, "bogus")
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestMatch_InvalidKind(t *testing.T) {
	f, _ := setupFinder(t)

	_, err := f.Match(context.Background(), match.Item{Location: "Library"}, ProfileSearch)
	assert.ErrorIs(t, err, ErrInvalidKind)
}

type failingRepo struct{ err error }

func (r failingRepo) ListActiveItemsByKind(context.Context, match.Kind) ([]database.Item, error) {
	return nil, r.err
}

func (r failingRepo) GetItem(context.Context, string) (*database.Item, error) {
	return nil, r.err
}

func (r failingRepo) CreateItem(context.Context, *database.Item) error {
	return r.err
}

func TestMatch_RepositoryError(t *testing.T) {
	boom := errors.New("disk on fire")
	engine, err := match.NewEngine()
	require.NoError(t, err)
	f := New(failingRepo{err: boom}, engine, config.Default().Matching, nil)

	_, err = f.Match(context.Background(), match.Item{Kind: match.KindLost}, ProfileReport)
	assert.ErrorIs(t, err, boom)

	_, err = f.Report(context.Background(), &database.Item{Kind: match.KindFound, Name: "pen"})
	assert.ErrorIs(t, err, boom)
}

func TestMatch_Explain(t *testing.T) {
	f, _ := setupFinder(t)

	_, matches, err := f.Similar(context.Background(), "sample-lost-8")
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	lines := matches[0].Explain()
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "location: 30/30")
	assert.Contains(t, lines[3], "brand: not compared")
}

func TestReport_NameRequired(t *testing.T) {
	f, _ := setupFinder(t)

	_, err := f.Report(context.Background(), &database.Item{Kind: match.KindLost, Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
}
