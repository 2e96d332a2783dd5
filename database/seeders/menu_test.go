package seeders

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/app/repositories"
)

func TestRunAllSeedsEmptyCatalogOnce(t *testing.T) {
	ctx := context.Background()
	catalog := repositories.NewMemoryCatalog()
	var out bytes.Buffer

	require.NoError(t, RunAll(ctx, &out, Target{Catalog: catalog}))
	assert.Contains(t, out.String(), "Running seeder: menu")

	items, _ := catalog.List(ctx)
	assert.Len(t, items, len(demoMenu))
	for _, it := range items {
		assert.True(t, models.ValidCategory(it.Category), it.Name)
	}

	require.NoError(t, RunAll(ctx, &out, Target{Catalog: catalog}))
	again, _ := catalog.List(ctx)
	assert.Len(t, again, len(demoMenu), "second run leaves a populated catalog alone")
}
