package model

import "time"

// UncategorizedCategory is the system category that always exists.
// Transactions fall back to it when their category is removed.
const UncategorizedCategory = "Uncategorized"

// Category represents a node in the category tree.
type Category struct {
	CreatedAt time.Time
	ParentID  *int64
	Name      string
	ID        int64
}

// IsRoot reports whether the category sits at the top of the tree.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// IsSystem reports whether the category is managed by finsight itself.
func (c *Category) IsSystem() bool {
	return c.Name == UncategorizedCategory
}
