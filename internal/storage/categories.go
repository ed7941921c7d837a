package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Thaonnor/finsight/internal/common"
	"github.com/Thaonnor/finsight/internal/model"
)

// ErrSystemCategory is returned when attempting to remove a system category.
var ErrSystemCategory = errors.New("system category cannot be modified")

// CreateCategory inserts a category under parentID, or at the root when parentID is nil.
// Names are not unique; seeding twice produces duplicates.
func (r repo) CreateCategory(ctx context.Context, name string, parentID *int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCategory(name, parentID); err != nil {
		return nil, err
	}

	result, err := r.q.ExecContext(ctx,
		`INSERT INTO categories (name, parent_id) VALUES (?, ?)`,
		name, nullableID(parentID))
	if err != nil {
		return nil, fmt.Errorf("failed to create category %q: %w", name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ID: %w", err)
	}

	slog.Debug("created category", "name", name, "id", id, "parent_id", nullableID(parentID))
	return &model.Category{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	}, nil
}

// GetCategories returns all categories ordered by ID.
func (r repo) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT id, name, parent_id, CAST(created_at AS TEXT)
		FROM categories
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByName returns the oldest category with the given name.
func (r repo) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := r.q.QueryRowContext(ctx, `
		SELECT id, name, parent_id, CAST(created_at AS TEXT)
		FROM categories
		WHERE name = ?
		ORDER BY id
		LIMIT 1`, name)

	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

func (r repo) getCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, name, parent_id, CAST(created_at AS TEXT)
		FROM categories
		WHERE id = ?`, id)

	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, common.ErrNotFound)
	}
	return cat, err
}

// UpdateCategory renames and/or moves a category.
func (r repo) UpdateCategory(ctx context.Context, id int64, name string, parentID *int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	if err := validateCategory(name, parentID); err != nil {
		return err
	}
	if parentID != nil {
		if err := r.checkAncestry(ctx, id, *parentID); err != nil {
			return err
		}
	}

	result, err := r.q.ExecContext(ctx,
		`UPDATE categories SET name = ?, parent_id = ? WHERE id = ?`,
		name, nullableID(parentID), id)
	if err != nil {
		return fmt.Errorf("failed to update category %d: %w", id, err)
	}

	return requireAffected(result, "category", id)
}

// checkAncestry walks up from parentID and fails if it reaches id, which
// would make the category its own ancestor.
func (r repo) checkAncestry(ctx context.Context, id, parentID int64) error {
	seen := make(map[int64]bool)
	for cur := parentID; ; {
		if cur == id {
			return fmt.Errorf("%w: category %d cannot be moved under its own descendant %d",
				ErrInvalidCategory, id, parentID)
		}
		if seen[cur] {
			// The chain above parentID already loops without passing through id.
			return nil
		}
		seen[cur] = true

		cat, err := r.getCategoryByID(ctx, cur)
		if err != nil {
			return fmt.Errorf("failed to resolve parent %d: %w", cur, err)
		}
		if cat.ParentID == nil {
			return nil
		}
		cur = *cat.ParentID
	}
}

// DeleteCategory removes a category. Its children move up to its parent and
// its transactions move to the Uncategorized category.
func (r repo) DeleteCategory(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	cat, err := r.getCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	if cat.IsSystem() {
		return fmt.Errorf("%w: %s", ErrSystemCategory, cat.Name)
	}

	uncategorized, err := r.GetCategoryByName(ctx, model.UncategorizedCategory)
	if err != nil {
		return fmt.Errorf("failed to find fallback category: %w", err)
	}

	if _, err := r.q.ExecContext(ctx,
		`UPDATE categories SET parent_id = ? WHERE parent_id = ?`,
		nullableID(cat.ParentID), id); err != nil {
		return fmt.Errorf("failed to re-parent children of category %d: %w", id, err)
	}

	moved, err := r.q.ExecContext(ctx,
		`UPDATE transactions SET category_id = ? WHERE category_id = ?`,
		uncategorized.ID, id)
	if err != nil {
		return fmt.Errorf("failed to move transactions of category %d: %w", id, err)
	}

	if _, err := r.q.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}

	movedCount, _ := moved.RowsAffected()
	slog.Info("deleted category", "name", cat.Name, "id", id, "transactions_moved", movedCount)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*model.Category, error) {
	var (
		cat       model.Category
		parentID  sql.NullInt64
		createdAt sql.NullString
	)
	if err := row.Scan(&cat.ID, &cat.Name, &parentID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}
	if parentID.Valid {
		cat.ParentID = &parentID.Int64
	}
	cat.CreatedAt = parseTimestamp(createdAt)
	return &cat, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
