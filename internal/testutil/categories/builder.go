package categories

import (
	"context"
	"fmt"
	"testing"

	"github.com/Thaonnor/finsight/internal/model"
	"github.com/Thaonnor/finsight/internal/service"
)

// Builder provides a fluent interface for constructing test categories.
// Categories are created in the order they were added, so a parent must be
// added before its children (or already exist in the store).
type Builder interface {
	// WithCategory adds a single root category.
	WithCategory(name CategoryName) Builder

	// WithCategories adds multiple root categories.
	WithCategories(names ...CategoryName) Builder

	// WithChild adds a category under parent.
	WithChild(parent, child CategoryName) Builder

	// WithSeedCategories adds the tree the seeder creates.
	WithSeedCategories() Builder

	// WithExtendedCategories adds a deeper tree for re-parenting tests.
	WithExtendedCategories() Builder

	// WithFixture adds categories from a predefined fixture.
	WithFixture(fixture Fixture) Builder

	// Build creates the categories and returns them in creation order.
	Build(ctx context.Context, repo service.Repository) (Categories, error)

	// BuildMap creates categories and returns them keyed by name.
	BuildMap(ctx context.Context, repo service.Repository) (CategoryMap, error)
}

// CategoryName represents a strongly-typed category name.
type CategoryName string

// String returns the string representation of the category name.
func (c CategoryName) String() string {
	return string(c)
}

// Category names used across tests.
const (
	CategoryUncategorized  CategoryName = model.UncategorizedCategory
	CategoryFood           CategoryName = "Food"
	CategoryGroceries      CategoryName = "Groceries"
	CategoryRestaurants    CategoryName = "Restaurants"
	CategoryCoffee         CategoryName = "Coffee"
	CategoryTransportation CategoryName = "Transportation"
	CategoryFuel           CategoryName = "Fuel"
	CategoryRideshare      CategoryName = "Rideshare"
	CategoryIncome         CategoryName = "Income"
	CategorySalary         CategoryName = "Salary"
	CategoryInterest       CategoryName = "Interest"
)

// Node is one category in a tree. An empty Parent makes it a root.
type Node struct {
	Name   CategoryName
	Parent CategoryName
}

// Categories represents a collection of created test categories.
type Categories []model.Category

// Find returns the category with the given name, or nil if not found.
func (c Categories) Find(name CategoryName) *model.Category {
	for i := range c {
		if c[i].Name == name.String() {
			return &c[i]
		}
	}
	return nil
}

// MustFind returns the category with the given name, or fails the test if not found.
func (c Categories) MustFind(t *testing.T, name CategoryName) model.Category {
	t.Helper()
	cat := c.Find(name)
	if cat == nil {
		t.Fatalf("category %q not found in test data", name)
	}
	return *cat
}

// Names returns all category names as a slice of strings.
func (c Categories) Names() []string {
	names := make([]string, len(c))
	for i, cat := range c {
		names[i] = cat.Name
	}
	return names
}

// CategoryMap provides O(1) lookup for categories by name.
type CategoryMap map[CategoryName]model.Category

// Get returns the category for the given name and whether it was found.
func (m CategoryMap) Get(name CategoryName) (model.Category, bool) {
	cat, ok := m[name]
	return cat, ok
}

// MustGet returns the category for the given name or fails the test.
func (m CategoryMap) MustGet(t *testing.T, name CategoryName) model.Category {
	t.Helper()
	cat, ok := m.Get(name)
	if !ok {
		t.Fatalf("category %q not found in test data", name)
	}
	return cat
}

type categoryBuilder struct {
	t     *testing.T
	seen  map[CategoryName]struct{}
	nodes []Node
}

// NewBuilder creates a new category builder for the given test.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &categoryBuilder{
		t:    t,
		seen: make(map[CategoryName]struct{}),
	}
}

func (b *categoryBuilder) add(node Node) Builder {
	if _, ok := b.seen[node.Name]; ok {
		return b
	}
	b.seen[node.Name] = struct{}{}
	b.nodes = append(b.nodes, node)
	return b
}

func (b *categoryBuilder) WithCategory(name CategoryName) Builder {
	return b.add(Node{Name: name})
}

func (b *categoryBuilder) WithCategories(names ...CategoryName) Builder {
	for _, name := range names {
		b.add(Node{Name: name})
	}
	return b
}

func (b *categoryBuilder) WithChild(parent, child CategoryName) Builder {
	return b.add(Node{Name: child, Parent: parent})
}

func (b *categoryBuilder) WithSeedCategories() Builder {
	return b.WithFixture(FixtureSeed)
}

func (b *categoryBuilder) WithExtendedCategories() Builder {
	return b.WithFixture(FixtureExtended)
}

func (b *categoryBuilder) WithFixture(fixture Fixture) Builder {
	for _, node := range fixture.Nodes() {
		b.add(node)
	}
	return b
}

func (b *categoryBuilder) Build(ctx context.Context, repo service.Repository) (Categories, error) {
	b.t.Helper()

	result := make(Categories, 0, len(b.nodes))
	ids := make(map[CategoryName]int64, len(b.nodes))

	for _, node := range b.nodes {
		var parentID *int64
		if node.Parent != "" {
			id, ok := ids[node.Parent]
			if !ok {
				existing, err := repo.GetCategoryByName(ctx, node.Parent.String())
				if err != nil {
					return nil, fmt.Errorf("failed to resolve parent %q of %q: %w", node.Parent, node.Name, err)
				}
				id = existing.ID
			}
			parentID = &id
		}

		created, err := repo.CreateCategory(ctx, node.Name.String(), parentID)
		if err != nil {
			return nil, fmt.Errorf("failed to create category %q: %w", node.Name, err)
		}
		ids[node.Name] = created.ID
		result = append(result, *created)
	}

	return result, nil
}

func (b *categoryBuilder) BuildMap(ctx context.Context, repo service.Repository) (CategoryMap, error) {
	categories, err := b.Build(ctx, repo)
	if err != nil {
		return nil, err
	}

	m := make(CategoryMap, len(categories))
	for _, cat := range categories {
		m[CategoryName(cat.Name)] = cat
	}
	return m, nil
}
