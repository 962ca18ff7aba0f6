package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/menuscraper/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() domain.Catalog {
	return domain.Catalog{
		"big-mac": {
			Name:        "Big Mac",
			Description: "Two all-beef patties & special sauce",
			Calories:    "550 kcal",
			Fats:        "30 g",
			Carbs:       "45 g",
			Proteins:    "25 g",
			Unsaturated: "11 g",
			Sugar:       "9 g",
			Salt:        "2.2 g",
			Portion:     "215 g",
		},
		"chizburger": {
			Name:        "Чізбургер",
			Description: "Яловичий біфштекс, сир",
			Calories:    "300 ккал",
			Fats:        "13 г",
			Carbs:       "31 г",
			Proteins:    "15 г",
			Unsaturated: "6 г",
			Sugar:       "7 г",
			Salt:        "1.6 г",
			Portion:     "118 г",
		},
	}
}

func TestJSONFileStore_RoundTrip(t *testing.T) {
	store := NewJSONFileStore(filepath.Join(t.TempDir(), "product.json"))
	ctx := context.Background()
	want := sampleCatalog()

	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got, cmp.AllowUnexported(domain.Product{})); diff != "" {
		t.Errorf("Load() mismatch after Save() (-want +got):\n%s", diff)
	}
}

func TestJSONFileStore_RepeatedLoadsAreIdentical(t *testing.T) {
	store := NewJSONFileStore(filepath.Join(t.TempDir(), "product.json"))
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleCatalog()))

	first, err := store.Load(ctx)
	require.NoError(t, err)
	second, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first, second, cmp.AllowUnexported(domain.Product{})))
}

func TestJSONFileStore_DocumentFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "product.json")
	store := NewJSONFileStore(path)

	require.NoError(t, store.Save(context.Background(), sampleCatalog()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "\n    \"big-mac\": {\n        \"name\": \"Big Mac\",")
	assert.Contains(t, text, "Чізбургер", "non-ASCII text must not be escaped")
	assert.Contains(t, text, "patties & special", "HTML characters must not be escaped")
}

func TestJSONFileStore_NullAndEmptyFieldsSurviveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "product.json")
	document := `{"water": {"name": "Water", "description": "", "calories": null,
		"fats": "0 g", "carbs": "0 g", "proteins": "0 g", "unsaturated": "0 g",
		"sugar": "", "salt": "0 g", "portion": "500 ml"}}`
	require.NoError(t, os.WriteFile(path, []byte(document), 0644))

	store := NewJSONFileStore(path)
	ctx := context.Background()
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, loaded))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"calories": null`)
	assert.Contains(t, string(data), `"sugar": ""`)

	reloaded, err := store.Load(ctx)
	require.NoError(t, err)
	_, ok := reloaded["water"].Field(domain.FieldCalories)
	assert.False(t, ok)
	sugar, ok := reloaded["water"].Field(domain.FieldSugar)
	assert.True(t, ok)
	assert.Equal(t, "", sugar)
}

func TestJSONFileStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "product.json")
	store := NewJSONFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleCatalog()))
	require.NoError(t, store.Save(ctx, domain.Catalog{}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestJSONFileStore_LoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing document", content: nil},
		{name: "malformed JSON", content: strPtr(`{"big-mac": {`)},
		{name: "wrong shape", content: strPtr(`["big-mac"]`)},
		{name: "null document", content: strPtr(`null`)},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "-")+".json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0644))
			}

			catalog, err := NewJSONFileStore(path).Load(context.Background())

			assert.Nil(t, catalog, "case %d", i)
			assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
		})
	}
}

func strPtr(s string) *string {
	return &s
}
