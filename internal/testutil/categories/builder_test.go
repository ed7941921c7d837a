package categories_test

import (
	"context"
	"testing"

	"github.com/Thaonnor/finsight/internal/testutil"
	"github.com/Thaonnor/finsight/internal/testutil/categories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_WithCategory(t *testing.T) {
	db := testutil.SetupTestDBWithBuilder(t, func(b categories.Builder) categories.Builder {
		return b.WithCategory(categories.CategoryFood)
	})

	cat, err := db.Storage.GetCategoryByName(context.Background(), "Food")
	require.NoError(t, err)
	assert.Equal(t, "Food", cat.Name)
	assert.True(t, cat.IsRoot())
}

func TestBuilder_WithSeedCategories(t *testing.T) {
	db := testutil.SetupTestDBWithBuilder(t, func(b categories.Builder) categories.Builder {
		return b.WithSeedCategories()
	})

	require.Len(t, db.Categories, 3)
	assert.Equal(t, []string{"Food", "Groceries", "Transportation"}, db.Categories.Names())

	food := db.Categories.MustFind(t, categories.CategoryFood)
	groceries := db.Categories.MustFind(t, categories.CategoryGroceries)
	require.NotNil(t, groceries.ParentID)
	assert.Equal(t, food.ID, *groceries.ParentID)
}

func TestBuilder_ParentFromStore(t *testing.T) {
	db := testutil.SetupTestDBWithBuilder(t, func(b categories.Builder) categories.Builder {
		return b.WithChild(categories.CategoryUncategorized, categories.CategoryIncome)
	})

	system, err := db.Storage.GetCategoryByName(context.Background(), categories.CategoryUncategorized.String())
	require.NoError(t, err)

	income := db.Categories.MustFind(t, categories.CategoryIncome)
	require.NotNil(t, income.ParentID)
	assert.Equal(t, system.ID, *income.ParentID)
}

func TestBuilder_UnknownParent(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := categories.NewBuilder(t).
		WithChild("Missing", categories.CategoryCoffee).
		Build(context.Background(), db.Storage)
	assert.Error(t, err)
}

func TestBuilder_Deduplicates(t *testing.T) {
	db := testutil.SetupTestDBWithBuilder(t, func(b categories.Builder) categories.Builder {
		return b.
			WithCategory(categories.CategoryFood).
			WithCategories(categories.CategoryFood, categories.CategoryTransportation).
			WithSeedCategories()
	})

	assert.Len(t, db.Categories, 3)
}

func TestBuilder_BuildMap(t *testing.T) {
	db := testutil.SetupTestDB(t)

	m, err := categories.NewBuilder(t).
		WithExtendedCategories().
		BuildMap(context.Background(), db.Storage)
	require.NoError(t, err)

	assert.Len(t, m, len(categories.FixtureExtended.Nodes()))
	coffee := m.MustGet(t, categories.CategoryCoffee)
	restaurants := m.MustGet(t, categories.CategoryRestaurants)
	require.NotNil(t, coffee.ParentID)
	assert.Equal(t, restaurants.ID, *coffee.ParentID)

	_, ok := m.Get("Nonexistent")
	assert.False(t, ok)
}

func TestFixtureRegistry(t *testing.T) {
	registry := categories.NewFixtureRegistry()

	f, ok := registry.Get("Seed")
	require.True(t, ok)
	assert.Equal(t, categories.FixtureSeed, f)

	_, ok = registry.Get("Nonexistent")
	assert.False(t, ok)
}

func TestFixtures_ParentsPrecedeChildren(t *testing.T) {
	for _, f := range []categories.Fixture{categories.FixtureSeed, categories.FixtureExtended} {
		t.Run(f.Name(), func(t *testing.T) {
			seen := map[categories.CategoryName]bool{categories.CategoryUncategorized: true}
			for _, node := range f.Nodes() {
				if node.Parent != "" {
					assert.True(t, seen[node.Parent], "%s listed before its parent %s", node.Name, node.Parent)
				}
				seen[node.Name] = true
			}
		})
	}
}
