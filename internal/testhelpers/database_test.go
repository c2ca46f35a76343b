package testhelpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodai/festival-guide/backend/internal/catalog"
	"github.com/foodai/festival-guide/backend/internal/database"
)

func assertCatalogRoundTrip(t *testing.T, db *gorm.DB) {
	t.Helper()
	ctx := context.Background()

	booths, items, err := catalog.Embedded()
	require.NoError(t, err)
	require.NoError(t, database.Seed(ctx, db, booths, items))

	gotBooths, gotItems, err := catalog.ReadDB(ctx, db)
	require.NoError(t, err)
	require.Len(t, gotBooths, len(booths))
	require.Len(t, gotItems, len(items))

	byID := make(map[string]int, len(gotItems))
	for i, it := range gotItems {
		byID[it.ID] = i
	}
	for _, want := range items {
		i, ok := byID[want.ID]
		require.True(t, ok, want.ID)
		got := gotItems[i]
		assert.Equal(t, want.BoothID, got.BoothID)
		assert.ElementsMatch(t, want.Allergens, got.Allergens, want.ID)
		assert.Equal(t, want.ContainsPork, got.ContainsPork)
		assert.Equal(t, want.Spiciness, got.Spiciness)
	}
}

func TestCatalogRoundTripSQLite(t *testing.T) {
	assertCatalogRoundTrip(t, SetupSQLite(t))
}

func TestCatalogRoundTripPostgres(t *testing.T) {
	assertCatalogRoundTrip(t, SetupPostgres(t))
}

func TestNewMiniredis(t *testing.T) {
	mr, client := NewMiniredis(t)

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}
