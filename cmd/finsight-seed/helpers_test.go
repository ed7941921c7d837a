package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Thaonnor/finsight/internal/common"
	"github.com/Thaonnor/finsight/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		name  string
		want  string
		cents int64
	}{
		{name: "zero", cents: 0, want: "$0.00"},
		{name: "minimum seed amount", cents: 500, want: "$5.00"},
		{name: "maximum seed amount", cents: 15000, want: "$150.00"},
		{name: "odd cents", cents: 12345, want: "$123.45"},
		{name: "single cent", cents: 1, want: "$0.01"},
		{name: "negative", cents: -2550, want: "-$25.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatCents(tt.cents))
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", formatFileSize(512))
	assert.Equal(t, "1.0 KB", formatFileSize(1024))
	assert.Equal(t, "1.5 MB", formatFileSize(1536*1024))
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "just now", formatRelativeTime(now))
	assert.Equal(t, "5 minutes ago", formatRelativeTime(now.Add(-5*time.Minute-time.Second)))
	assert.Equal(t, "1 hour ago", formatRelativeTime(now.Add(-61*time.Minute)))
	assert.Equal(t, "yesterday", formatRelativeTime(now.Add(-25*time.Hour)))

	old := now.Add(-30 * 24 * time.Hour)
	assert.Equal(t, old.Format("2006-01-02 15:04"), formatRelativeTime(old))
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "Yes\n", want: true},
		{input: "  y  \n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
		{input: "y", want: true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, tt.want, confirm(strings.NewReader(tt.input), &out, "Continue?"))
			assert.Contains(t, out.String(), "Continue? (y/N)")
		})
	}
}

func TestRenderCategoryTree(t *testing.T) {
	id := func(v int64) *int64 { return &v }

	cats := []model.Category{
		{ID: 1, Name: model.UncategorizedCategory},
		{ID: 2, Name: "Food"},
		{ID: 3, Name: "Groceries", ParentID: id(2)},
		{ID: 4, Name: "Transportation"},
		{ID: 5, Name: "Organic", ParentID: id(3)},
		{ID: 6, Name: "Orphan", ParentID: id(99)},
		{ID: 7, Name: "Self", ParentID: id(7)},
	}

	var out bytes.Buffer
	renderCategoryTree(&out, cats)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"Uncategorized (1)",
		"Food (2)",
		"  Groceries (3)",
		"    Organic (5)",
		"Transportation (4)",
		"Orphan (6)",
		"Self (7)",
	}, lines)
}

func TestRenderCategoryTree_ParentCycle(t *testing.T) {
	id := func(v int64) *int64 { return &v }

	cats := []model.Category{
		{ID: 1, Name: model.UncategorizedCategory},
		{ID: 2, Name: "A", ParentID: id(3)},
		{ID: 3, Name: "B", ParentID: id(2)},
	}

	var out bytes.Buffer
	renderCategoryTree(&out, cats)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"Uncategorized (1)",
		"A (2)",
		"  B (3)",
	}, lines)
}

func TestSeedError(t *testing.T) {
	canceled := seedError(fmt.Errorf("seed transaction 3 of 20: %w", context.Canceled))
	assert.ErrorIs(t, canceled, context.Canceled)
	assert.Equal(t, "Seeding interrupted. The run was rolled back and nothing was written.", common.UserMessage(canceled))

	failed := seedError(errors.New("disk I/O error"))
	assert.Equal(t, "seeding failed: disk I/O error", common.UserMessage(failed))
}
