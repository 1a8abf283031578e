package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
	"github.com/webfolio/portfolio-server/pkg/portfolio/repo/memory"
)

func newSection(slug string, order int) *portfolio.Section {
	now := time.Now().UTC()
	return &portfolio.Section{
		ID:        uuid.New(),
		Title:     slug,
		Slug:      slug,
		Type:      portfolio.SectionTypeCustom,
		Order:     order,
		Visible:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSectionCRUD(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	section := newSection("about", 0)
	require.NoError(t, repo.CreateSection(ctx, section))

	t.Run("get returns a copy", func(t *testing.T) {
		got, err := repo.GetSection(ctx, section.ID)
		require.NoError(t, err)
		got.Title = "mutated"

		again, err := repo.GetSection(ctx, section.ID)
		require.NoError(t, err)
		assert.Equal(t, "about", again.Title)
	})

	t.Run("get by slug", func(t *testing.T) {
		got, err := repo.GetSectionBySlug(ctx, "about")
		require.NoError(t, err)
		assert.Equal(t, section.ID, got.ID)

		_, err = repo.GetSectionBySlug(ctx, "missing")
		assert.ErrorIs(t, err, portfolio.ErrNotFound)
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		err := repo.CreateSection(ctx, newSection("about", 1))
		assert.ErrorIs(t, err, portfolio.ErrConflict)
	})

	t.Run("update missing section", func(t *testing.T) {
		err := repo.UpdateSection(ctx, newSection("ghost", 9))
		assert.ErrorIs(t, err, portfolio.ErrNotFound)
	})

	t.Run("list sorts by order", func(t *testing.T) {
		require.NoError(t, repo.CreateSection(ctx, newSection("last", 5)))
		require.NoError(t, repo.CreateSection(ctx, newSection("middle", 2)))

		sections, err := repo.ListSections(ctx)
		require.NoError(t, err)
		require.Len(t, sections, 3)
		assert.Equal(t, "about", sections[0].Slug)
		assert.Equal(t, "middle", sections[1].Slug)
		assert.Equal(t, "last", sections[2].Slug)
	})
}

func TestDeleteSectionCascades(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	section := newSection("experience", 0)
	require.NoError(t, repo.CreateSection(ctx, section))

	now := time.Now().UTC()
	item := &portfolio.ExperienceItem{
		ID:        uuid.New(),
		SectionID: section.ID,
		Role:      "Engineer",
		Company:   "Acme",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateExperience(ctx, item))
	require.NoError(t, repo.AddItemImage(ctx, &portfolio.ItemImage{
		ID:        uuid.New(),
		OwnerKind: portfolio.ImageOwnerExperience,
		OwnerID:   item.ID,
		Src:       "x",
		CreatedAt: now,
	}))
	require.NoError(t, repo.CreateTextBlock(ctx, &portfolio.TextBlock{
		ID:        uuid.New(),
		SectionID: section.ID,
		Body:      "hello",
		CreatedAt: now,
		UpdatedAt: now,
	}))

	require.NoError(t, repo.DeleteSection(ctx, section.ID))

	_, err := repo.GetExperience(ctx, item.ID)
	assert.ErrorIs(t, err, portfolio.ErrNotFound)

	images, err := repo.ListItemImages(ctx, portfolio.ImageOwnerExperience, item.ID)
	require.NoError(t, err)
	assert.Empty(t, images)

	blocks, err := repo.ListTextBlocks(ctx, section.ID)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestOrderingOperations(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	t.Run("max order of empty scope is -1", func(t *testing.T) {
		max, err := repo.MaxOrder(ctx, portfolio.SectionScope())
		require.NoError(t, err)
		assert.Equal(t, -1, max)
	})

	a := newSection("a", 0)
	b := newSection("b", 4)
	require.NoError(t, repo.CreateSection(ctx, a))
	require.NoError(t, repo.CreateSection(ctx, b))

	t.Run("max order reflects gaps", func(t *testing.T) {
		max, err := repo.MaxOrder(ctx, portfolio.SectionScope())
		require.NoError(t, err)
		assert.Equal(t, 4, max)
	})

	t.Run("set order matches scope", func(t *testing.T) {
		matched, err := repo.SetOrder(ctx, portfolio.SectionScope(), a.ID, 7)
		require.NoError(t, err)
		assert.True(t, matched)

		got, err := repo.GetSection(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, got.Order)
	})

	t.Run("set order misses other scope", func(t *testing.T) {
		matched, err := repo.SetOrder(ctx, portfolio.ChildScope(portfolio.EntityTextBlocks, a.ID), b.ID, 0)
		require.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("exists ignores scope", func(t *testing.T) {
		ok, err := repo.Exists(ctx, portfolio.EntitySections, b.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Exists(ctx, portfolio.EntitySections, uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestInTx(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	base := newSection("base", 0)
	require.NoError(t, repo.CreateSection(ctx, base))

	t.Run("commit applies all writes", func(t *testing.T) {
		added := newSection("added", 1)
		err := repo.InTx(ctx, func(tx portfolio.Repository) error {
			if err := tx.CreateSection(ctx, added); err != nil {
				return err
			}
			base.Title = "renamed"
			return tx.UpdateSection(ctx, base)
		})
		require.NoError(t, err)

		got, err := repo.GetSection(ctx, base.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)

		_, err = repo.GetSection(ctx, added.ID)
		assert.NoError(t, err)
	})

	t.Run("failure discards all writes", func(t *testing.T) {
		boom := errors.New("boom")
		discarded := newSection("discarded", 2)
		err := repo.InTx(ctx, func(tx portfolio.Repository) error {
			if err := tx.CreateSection(ctx, discarded); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = repo.GetSection(ctx, discarded.ID)
		assert.ErrorIs(t, err, portfolio.ErrNotFound)
	})
}

func TestUsers(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	user := &portfolio.User{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		PasswordHash: "hash",
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.CreateUser(ctx, user))

	t.Run("lookup is case insensitive", func(t *testing.T) {
		got, err := repo.GetUserByEmail(ctx, "ADMIN@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		err := repo.CreateUser(ctx, &portfolio.User{
			ID:    uuid.New(),
			Email: "Admin@Example.com",
		})
		assert.ErrorIs(t, err, portfolio.ErrConflict)
	})
}

func TestProjectCategoryQueries(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	section := newSection("projects", 0)
	require.NoError(t, repo.CreateSection(ctx, section))

	cat := uuid.New()
	now := time.Now().UTC()
	tagged := &portfolio.ProjectItem{
		ID:          uuid.New(),
		SectionID:   section.ID,
		Title:       "Tagged",
		CategoryIDs: []uuid.UUID{cat},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	plain := &portfolio.ProjectItem{
		ID:          uuid.New(),
		SectionID:   section.ID,
		Title:       "Plain",
		CategoryIDs: []uuid.UUID{},
		Order:       1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.CreateProject(ctx, tagged))
	require.NoError(t, repo.CreateProject(ctx, plain))

	byCategory, err := repo.ListProjectsByCategory(ctx, cat)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, tagged.ID, byCategory[0].ID)

	got, err := repo.GetProject(ctx, plain.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.CategoryIDs, "empty category list must stay non-nil")
	assert.Empty(t, got.CategoryIDs)
}
