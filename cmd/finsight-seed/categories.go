package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Thaonnor/finsight/internal/cli"
	"github.com/Thaonnor/finsight/internal/model"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long:  `List, add, update, and delete the category tree transactions are filed under.`,
		Args:  cobra.NoArgs,
		RunE:  runListCategories,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show categories as a tree",
		Args:  cobra.NoArgs,
		RunE:  runListCategories,
	})
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func runListCategories(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	categories, err := store.GetCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}

	renderCategoryTree(cmd.OutOrStdout(), categories)
	return nil
}

// renderCategoryTree writes categories indented under their parents.
// Categories whose parent is missing, and categories stuck in a parent
// cycle, are shown as roots.
func renderCategoryTree(w io.Writer, categories []model.Category) {
	known := make(map[int64]bool, len(categories))
	for _, cat := range categories {
		known[cat.ID] = true
	}

	children := make(map[int64][]model.Category)
	for _, cat := range categories {
		var parent int64
		if cat.ParentID != nil && known[*cat.ParentID] && *cat.ParentID != cat.ID {
			parent = *cat.ParentID
		}
		children[parent] = append(children[parent], cat)
	}

	visited := make(map[int64]bool, len(categories))
	var walk func(parent int64, depth int)
	renderNode := func(cat model.Category, depth int) {
		visited[cat.ID] = true

		label := cat.Name
		if cat.IsSystem() {
			label = cli.BoldStyle.Render(label)
		}
		fmt.Fprintf(w, "%s%s %s\n",
			strings.Repeat("  ", depth),
			label,
			cli.SubtleStyle.Render(fmt.Sprintf("(%d)", cat.ID)))

		walk(cat.ID, depth+1)
	}
	walk = func(parent int64, depth int) {
		for _, cat := range children[parent] {
			if !visited[cat.ID] {
				renderNode(cat, depth)
			}
		}
	}
	walk(0, 0)

	for _, cat := range categories {
		if !visited[cat.ID] {
			renderNode(cat, 0)
		}
	}
}

func addCategoryCmd() *cobra.Command {
	var parentName string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := openStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var parentID *int64
			if parentName != "" {
				parent, err := store.GetCategoryByName(ctx, parentName)
				if err != nil {
					return fmt.Errorf("failed to find parent category %q: %w", parentName, err)
				}
				parentID = &parent.ID
			}

			cat, err := store.CreateCategory(ctx, args[0], parentID)
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created category %s (%d)", cat.Name, cat.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&parentName, "parent", "", "Name of the parent category")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		name       string
		parentName string
		root       bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or move a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category ID: %w", err)
			}
			if root && parentName != "" {
				return fmt.Errorf("--root and --parent are mutually exclusive")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := openStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			var current *model.Category
			for i := range categories {
				if categories[i].ID == id {
					current = &categories[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("category %d not found", id)
			}

			newName := current.Name
			if name != "" {
				newName = name
			}

			parentID := current.ParentID
			switch {
			case root:
				parentID = nil
			case parentName != "":
				parent, err := store.GetCategoryByName(ctx, parentName)
				if err != nil {
					return fmt.Errorf("failed to find parent category %q: %w", parentName, err)
				}
				parentID = &parent.ID
			}

			if err := store.UpdateCategory(ctx, id, newName, parentID); err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated category %d", id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New category name")
	cmd.Flags().StringVar(&parentName, "parent", "", "Move under this category")
	cmd.Flags().BoolVar(&root, "root", false, "Make this a top-level category")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Delete a category. Its children move up to its parent and its
transactions are filed under Uncategorized.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category ID: %w", err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := openStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				fmt.Sprintf("Are you sure you want to delete category %d?", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
				return nil
			}

			if err := store.DeleteCategory(ctx, id); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted category %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
