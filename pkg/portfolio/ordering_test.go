package portfolio_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
)

func TestOrderAssignment(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	t.Run("creates assign dense ascending order", func(t *testing.T) {
		for i, slug := range []string{"one", "two", "three"} {
			section := createSection(t, env.svc, slug, slug, portfolio.SectionTypeCustom)
			assert.Equal(t, i, section.Order)
		}
	})

	t.Run("delete leaves a gap, next create goes past it", func(t *testing.T) {
		sections, err := env.svc.ListSections(ctx)
		require.NoError(t, err)
		require.Len(t, sections, 3)

		// Remove the middle section; the survivors keep order 0 and 2.
		require.NoError(t, env.svc.DeleteSection(ctx, sections[1].ID))

		remaining, err := env.svc.ListSections(ctx)
		require.NoError(t, err)
		require.Len(t, remaining, 2)
		assert.Equal(t, 0, remaining[0].Order)
		assert.Equal(t, 2, remaining[1].Order)

		section := createSection(t, env.svc, "four", "four", portfolio.SectionTypeCustom)
		assert.Equal(t, 3, section.Order)
	})
}

func TestReorderSections(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	a := createSection(t, env.svc, "A", "a", portfolio.SectionTypeCustom)
	b := createSection(t, env.svc, "B", "b", portfolio.SectionTypeCustom)
	c := createSection(t, env.svc, "C", "c", portfolio.SectionTypeCustom)

	t.Run("permutation compacts to 0..n-1", func(t *testing.T) {
		require.NoError(t, env.svc.ReorderSections(ctx, []uuid.UUID{c.ID, a.ID, b.ID}))

		sections, err := env.svc.ListSections(ctx)
		require.NoError(t, err)
		require.Len(t, sections, 3)
		assert.Equal(t, c.ID, sections[0].ID)
		assert.Equal(t, a.ID, sections[1].ID)
		assert.Equal(t, b.ID, sections[2].ID)
		for i, s := range sections {
			assert.Equal(t, i, s.Order)
		}
	})

	t.Run("unknown identifier fails with not found", func(t *testing.T) {
		err := env.svc.ReorderSections(ctx, []uuid.UUID{a.ID, uuid.New()})
		assert.ErrorIs(t, err, portfolio.ErrNotFound)
	})

	t.Run("empty list is invalid", func(t *testing.T) {
		err := env.svc.ReorderSections(ctx, nil)
		assert.ErrorIs(t, err, portfolio.ErrInvalidInput)
	})

	t.Run("nil identifier is invalid", func(t *testing.T) {
		err := env.svc.ReorderSections(ctx, []uuid.UUID{a.ID, uuid.Nil})
		assert.ErrorIs(t, err, portfolio.ErrInvalidInput)
	})

	t.Run("duplicate identifier is invalid", func(t *testing.T) {
		err := env.svc.ReorderSections(ctx, []uuid.UUID{a.ID, b.ID, a.ID})
		assert.ErrorIs(t, err, portfolio.ErrInvalidInput)
	})
}

func TestReorderSkipsOtherScopes(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	first := createSection(t, env.svc, "First", "first", portfolio.SectionTypeAbout)
	second := createSection(t, env.svc, "Second", "second", portfolio.SectionTypeAbout)

	b1, err := env.svc.CreateTextBlock(ctx, first.ID, portfolio.CreateTextBlockRequest{Body: "one"})
	require.NoError(t, err)
	b2, err := env.svc.CreateTextBlock(ctx, first.ID, portfolio.CreateTextBlockRequest{Body: "two"})
	require.NoError(t, err)
	other, err := env.svc.CreateTextBlock(ctx, second.ID, portfolio.CreateTextBlockRequest{Body: "elsewhere"})
	require.NoError(t, err)

	// A block that exists but belongs to another section is skipped without
	// consuming an index; the call still succeeds.
	require.NoError(t, env.svc.ReorderTextBlocks(ctx, first.ID, []uuid.UUID{b2.ID, other.ID, b1.ID}))

	blocks, err := env.repo.ListTextBlocks(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, b2.ID, blocks[0].ID)
	assert.Equal(t, 0, blocks[0].Order)
	assert.Equal(t, b1.ID, blocks[1].ID)
	assert.Equal(t, 1, blocks[1].Order)

	// The foreign block is untouched.
	foreign, err := env.repo.GetTextBlock(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, foreign.Order)
}

func TestReorderConflictRetry(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	a := createSection(t, env.svc, "A", "a", portfolio.SectionTypeCustom)
	b := createSection(t, env.svc, "B", "b", portfolio.SectionTypeCustom)

	t.Run("recovers from transient conflicts", func(t *testing.T) {
		failures := 2
		env.repo.OnSetOrder = func() error {
			if failures > 0 {
				failures--
				return portfolio.ErrConflict
			}
			return nil
		}
		defer func() { env.repo.OnSetOrder = nil }()

		assert.NoError(t, env.svc.ReorderSections(ctx, []uuid.UUID{b.ID, a.ID}))
	})

	t.Run("surfaces the conflict once the budget is exhausted", func(t *testing.T) {
		env.repo.OnSetOrder = func() error { return portfolio.ErrConflict }
		defer func() { env.repo.OnSetOrder = nil }()

		err := env.svc.ReorderSections(ctx, []uuid.UUID{a.ID, b.ID})
		assert.ErrorIs(t, err, portfolio.ErrConflict)
	})

	t.Run("failed reorder leaves order untouched", func(t *testing.T) {
		require.NoError(t, env.svc.ReorderSections(ctx, []uuid.UUID{a.ID, b.ID}))

		env.repo.OnSetOrder = func() error { return portfolio.ErrConflict }
		err := env.svc.ReorderSections(ctx, []uuid.UUID{b.ID, a.ID})
		env.repo.OnSetOrder = nil
		require.ErrorIs(t, err, portfolio.ErrConflict)

		sections, err := env.svc.ListSections(ctx)
		require.NoError(t, err)
		require.Len(t, sections, 2)
		assert.Equal(t, a.ID, sections[0].ID)
		assert.Equal(t, b.ID, sections[1].ID)
	})
}

func TestReorderChildRequiresParent(t *testing.T) {
	env := setupTestService(t)

	err := env.svc.ReorderTextBlocks(context.Background(), uuid.New(), []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, portfolio.ErrNotFound)
}
