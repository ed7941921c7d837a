package categories

// Fixture represents a predefined category tree for testing.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Description returns a detailed description of the fixture's purpose.
	Description() string

	// Nodes returns the categories in creation order, parents first.
	Nodes() []Node
}

type fixture struct {
	name        string
	description string
	nodes       []Node
}

func (f *fixture) Name() string        { return f.name }
func (f *fixture) Description() string { return f.description }
func (f *fixture) Nodes() []Node       { return f.nodes }

// Predefined fixtures for common test scenarios.
var (
	// FixtureSeed mirrors the categories a seeding run creates.
	FixtureSeed = &fixture{
		name:        "Seed",
		description: "Categories created by the development seeder",
		nodes: []Node{
			{Name: CategoryFood},
			{Name: CategoryGroceries, Parent: CategoryFood},
			{Name: CategoryTransportation},
		},
	}

	// FixtureExtended is three levels deep and hangs a branch off the
	// system category.
	FixtureExtended = &fixture{
		name:        "Extended",
		description: "Multi-level tree for re-parenting and deletion tests",
		nodes: []Node{
			{Name: CategoryFood},
			{Name: CategoryGroceries, Parent: CategoryFood},
			{Name: CategoryRestaurants, Parent: CategoryFood},
			{Name: CategoryCoffee, Parent: CategoryRestaurants},
			{Name: CategoryTransportation},
			{Name: CategoryFuel, Parent: CategoryTransportation},
			{Name: CategoryRideshare, Parent: CategoryTransportation},
			{Name: CategoryIncome, Parent: CategoryUncategorized},
			{Name: CategorySalary, Parent: CategoryIncome},
			{Name: CategoryInterest, Parent: CategoryIncome},
		},
	}
)

// FixtureRegistry provides access to all available fixtures.
type FixtureRegistry struct {
	fixtures map[string]Fixture
}

// NewFixtureRegistry creates a registry with all predefined fixtures.
func NewFixtureRegistry() *FixtureRegistry {
	registry := &FixtureRegistry{
		fixtures: make(map[string]Fixture),
	}

	registry.Register(FixtureSeed)
	registry.Register(FixtureExtended)

	return registry
}

// Register adds a fixture to the registry.
func (r *FixtureRegistry) Register(f Fixture) {
	r.fixtures[f.Name()] = f
}

// Get retrieves a fixture by name.
func (r *FixtureRegistry) Get(name string) (Fixture, bool) {
	f, ok := r.fixtures[name]
	return f, ok
}
