// Package categories builds category trees for tests.
//
// # Basic Usage
//
//	func TestMyFeature(t *testing.T) {
//		db := testutil.SetupTestDBWithBuilder(t, func(b categories.Builder) categories.Builder {
//			return b.WithSeedCategories()
//		})
//
//		food := db.Categories.MustFind(t, categories.CategoryFood)
//	}
//
// # Trees
//
// Parents must be added before their children. A parent that is not part of
// the builder is looked up in the store by name, which is how branches are
// hung off the Uncategorized system category:
//
//	b.WithChild(categories.CategoryUncategorized, categories.CategoryIncome)
//
// Each test gets its own in-memory database, so builders are never shared
// between tests.
package categories
