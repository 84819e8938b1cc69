package database

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/campusfind/internal/match"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath, nil)
	require.NoError(t, err, "failed to open database")

	t.Cleanup(func() { db.Close() })
	return db
}

func newItem(kind match.Kind, name, location string, reported time.Time) *Item {
	return &Item{
		Kind:        kind,
		Name:        name,
		Description: name + " description",
		Location:    location,
		Category:    "Bags",
		ReportedAt:  reported,
	}
}

func TestOpen(t *testing.T) {
	db := setupTestDB(t)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='items'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "expected items table to exist")

	require.NoError(t, db.Health(context.Background()))
}

func TestOpen_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	db, err := Open(dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, db.CreateItem(context.Background(), newItem(match.KindLost, "Wallet", "Library", time.Now())))
	require.NoError(t, db.Close())

	// migrations already applied, data survives
	db, err = Open(dbPath, nil)
	require.NoError(t, err)
	defer db.Close()

	stats, err := db.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalItems)
}

func TestItemCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	color := "Blue"
	item := &Item{
		Kind:        match.KindFound,
		Name:        "Blue Backpack",
		Description: "Navy blue backpack",
		Location:    "Library",
		Category:    "Bags",
		Color:       &color,
	}

	require.NoError(t, db.CreateItem(ctx, item))
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, StatusActive, item.Status)
	assert.False(t, item.ReportedAt.IsZero())

	fetched, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Backpack", fetched.Name)
	assert.Equal(t, match.KindFound, fetched.Kind)
	require.NotNil(t, fetched.Color)
	assert.Equal(t, "Blue", *fetched.Color)
	assert.Nil(t, fetched.Brand)

	require.NoError(t, db.UpdateItemStatus(ctx, item.ID, StatusClaimed))
	fetched, err = db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusClaimed, fetched.Status)

	_, err = db.GetItem(ctx, "missing")
	assert.True(t, errors.Is(err, ErrItemNotFound))

	err = db.UpdateItemStatus(ctx, "missing", StatusClosed)
	assert.True(t, errors.Is(err, ErrItemNotFound))

	err = db.UpdateItemStatus(ctx, item.ID, ItemStatus("lost"))
	assert.Error(t, err)
}

func TestCreateItem_InvalidKind(t *testing.T) {
	db := setupTestDB(t)
	err := db.CreateItem(context.Background(), &Item{Kind: "misplaced", Name: "Pen"})
	assert.Error(t, err)
}

func TestListActiveItemsByKind(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	older := newItem(match.KindFound, "Older", "Library", base)
	newer := newItem(match.KindFound, "Newer", "Hostel", base.Add(48*time.Hour))
	claimed := newItem(match.KindFound, "Claimed", "Library", base.Add(24*time.Hour))
	lost := newItem(match.KindLost, "Lost", "Library", base)

	for _, i := range []*Item{older, newer, claimed, lost} {
		require.NoError(t, db.CreateItem(ctx, i))
	}
	require.NoError(t, db.UpdateItemStatus(ctx, claimed.ID, StatusClaimed))

	items, err := db.ListActiveItemsByKind(ctx, match.KindFound)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Newer", items[0].Name)
	assert.Equal(t, "Older", items[1].Name)

	items, err = db.ListActiveItemsByKind(ctx, match.KindLost)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Lost", items[0].Name)
}

func TestListItems_Filters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	items, err := SampleItems()
	require.NoError(t, err)
	_, err = db.ImportItems(ctx, items)
	require.NoError(t, err)

	location := "Library"
	got, err := db.ListItems(ctx, ListOptions{Location: &location})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	kind := match.KindLost
	got, err = db.ListItems(ctx, ListOptions{Kind: &kind})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = db.ListItems(ctx, ListOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSearch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	items, err := SampleItems()
	require.NoError(t, err)
	_, err = db.ImportItems(ctx, items)
	require.NoError(t, err)

	results, err := db.Search(ctx, "APPLE")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = db.Search(ctx, "umbrella")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Black Umbrella", results[0].Name)
}

func TestImportItems_SkipsExisting(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	items, err := SampleItems()
	require.NoError(t, err)

	n, err := db.ImportItems(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	again, err := SampleItems()
	require.NoError(t, err)
	n, err = db.ImportItems(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	stats, err := db.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Stats{TotalItems: 8, ActiveLost: 2, ActiveFound: 6}, stats)
}

func TestLoadFixtures(t *testing.T) {
	t.Run("sample corpus", func(t *testing.T) {
		items, err := SampleItems()
		require.NoError(t, err)
		require.Len(t, items, 8)

		first := items[0]
		assert.Equal(t, "sample-found-1", first.ID)
		assert.Equal(t, match.KindFound, first.Kind)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), first.ReportedAt)

		mi := first.MatchItem()
		assert.Equal(t, "Blue", mi.Color)
		assert.Equal(t, "Jansport", mi.Brand)

		assert.Empty(t, items[2].MatchItem().Brand)
	})

	t.Run("invalid kind", func(t *testing.T) {
		_, err := LoadFixtures(strings.NewReader("items:\n  - name: Pen\n    kind: misplaced\n"))
		assert.ErrorContains(t, err, "invalid kind")
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := LoadFixtures(strings.NewReader("items:\n  - name: Pen\n    kind: lost\n    date: yesterday\n"))
		assert.ErrorContains(t, err, "invalid date")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := LoadFixtures(strings.NewReader("items:\n  - name: Pen\n    kind: lost\n    size: small\n"))
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		items, err := LoadFixtures(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
