package portfolio_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
	"github.com/webfolio/portfolio-server/pkg/portfolio/repo/memory"
	memorystorage "github.com/webfolio/portfolio-server/pkg/portfolio/storage/memory"
)

func TestServiceCreation(t *testing.T) {
	tests := []struct {
		name        string
		options     []portfolio.Option
		expectError bool
	}{
		{
			name:        "no options should fail",
			options:     []portfolio.Option{},
			expectError: true,
		},
		{
			name: "with repository should succeed",
			options: []portfolio.Option{
				portfolio.WithRepository(memory.New()),
			},
			expectError: false,
		},
		{
			name: "with repository and blob store should succeed",
			options: []portfolio.Option{
				portfolio.WithRepository(memory.New()),
				portfolio.WithBlobStore("memory", memorystorage.New()),
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := portfolio.New(tt.options...)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

type testEnv struct {
	svc   portfolio.Service
	repo  *memory.Repository
	store *memorystorage.Backend
}

func setupTestService(t *testing.T) *testEnv {
	repo := memory.New()
	store := memorystorage.New()

	svc, err := portfolio.New(
		portfolio.WithRepository(repo),
		portfolio.WithBlobStore("memory", store),
	)
	require.NoError(t, err)

	return &testEnv{svc: svc, repo: repo, store: store}
}

func createSection(t *testing.T, svc portfolio.Service, title, slug string, typ portfolio.SectionType) *portfolio.Section {
	section, err := svc.CreateSection(context.Background(), portfolio.CreateSectionRequest{
		Title: title,
		Slug:  slug,
		Type:  typ,
	})
	require.NoError(t, err)
	return section
}

func TestCreateSection(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	t.Run("valid section", func(t *testing.T) {
		section, err := env.svc.CreateSection(ctx, portfolio.CreateSectionRequest{
			Title: "About Me",
			Slug:  "about",
			Type:  portfolio.SectionTypeAbout,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, section.ID)
		assert.Equal(t, 0, section.Order)
		assert.True(t, section.Visible)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := env.svc.CreateSection(ctx, portfolio.CreateSectionRequest{
			Slug: "x",
			Type: portfolio.SectionTypeAbout,
		})
		assert.ErrorIs(t, err, portfolio.ErrInvalidInput)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := env.svc.CreateSection(ctx, portfolio.CreateSectionRequest{
			Title: "X",
			Slug:  "x",
			Type:  "sidebar",
		})
		assert.ErrorIs(t, err, portfolio.ErrInvalidInput)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		_, err := env.svc.CreateSection(ctx, portfolio.CreateSectionRequest{
			Title: "About Again",
			Slug:  "about",
			Type:  portfolio.SectionTypeAbout,
		})
		assert.ErrorIs(t, err, portfolio.ErrConflict)
	})

	t.Run("explicit hidden", func(t *testing.T) {
		hidden := false
		section, err := env.svc.CreateSection(ctx, portfolio.CreateSectionRequest{
			Title:   "Drafts",
			Slug:    "drafts",
			Type:    portfolio.SectionTypeCustom,
			Visible: &hidden,
		})
		require.NoError(t, err)
		assert.False(t, section.Visible)
	})
}

func TestUpdateSection(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	section := createSection(t, env.svc, "About", "about", portfolio.SectionTypeAbout)

	t.Run("partial update", func(t *testing.T) {
		title := "About Me"
		hidden := false
		updated, err := env.svc.UpdateSection(ctx, section.ID, portfolio.UpdateSectionRequest{
			Title:   &title,
			Visible: &hidden,
		})
		require.NoError(t, err)
		assert.Equal(t, "About Me", updated.Title)
		assert.Equal(t, "about", updated.Slug)
		assert.False(t, updated.Visible)
	})

	t.Run("missing section", func(t *testing.T) {
		title := "X"
		_, err := env.svc.UpdateSection(ctx, uuid.New(), portfolio.UpdateSectionRequest{Title: &title})
		assert.ErrorIs(t, err, portfolio.ErrNotFound)
	})

	t.Run("slug collision", func(t *testing.T) {
		other := createSection(t, env.svc, "Contact", "contact", portfolio.SectionTypeContact)
		slug := "about"
		_, err := env.svc.UpdateSection(ctx, other.ID, portfolio.UpdateSectionRequest{Slug: &slug})
		assert.ErrorIs(t, err, portfolio.ErrConflict)
	})
}

func TestDeleteSectionCleansUpBlobs(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	section := createSection(t, env.svc, "Gallery", "gallery", portfolio.SectionTypeCustom)

	require.NoError(t, env.store.Upload(ctx, "images/gallery-1.png", imagePayload()))
	_, err := env.svc.CreateImageBlock(ctx, section.ID, portfolio.CreateImageBlockRequest{
		Src:           "memory://images/gallery-1.png",
		ImagePublicID: "images/gallery-1.png",
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteSection(ctx, section.ID))

	_, err = env.svc.GetSection(ctx, section.ID)
	assert.ErrorIs(t, err, portfolio.ErrNotFound)

	_, err = env.store.Download(ctx, "images/gallery-1.png")
	assert.Error(t, err, "blob should be removed with its section")
}

func TestGetSiteContent(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	hero := createSection(t, env.svc, "Hero", "hero", portfolio.SectionTypeHero)
	projects := createSection(t, env.svc, "Projects", "projects", portfolio.SectionTypeProjects)

	headline := "Hello"
	_, err := env.svc.UpsertHero(ctx, hero.ID, portfolio.UpsertHeroRequest{Headline: &headline})
	require.NoError(t, err)

	_, err = env.svc.CreateProject(ctx, projects.ID, portfolio.CreateProjectRequest{Title: "One"})
	require.NoError(t, err)
	_, err = env.svc.CreateProject(ctx, projects.ID, portfolio.CreateProjectRequest{Title: "Two"})
	require.NoError(t, err)

	content, err := env.svc.GetSiteContent(ctx)
	require.NoError(t, err)
	require.NotNil(t, content.Settings)
	require.Len(t, content.Sections, 2)

	assert.Equal(t, hero.ID, content.Sections[0].Section.ID)
	require.NotNil(t, content.Sections[0].Hero)
	assert.Equal(t, "Hello", content.Sections[0].Hero.Headline)

	assert.Equal(t, projects.ID, content.Sections[1].Section.ID)
	require.Len(t, content.Sections[1].Projects, 2)
	assert.Equal(t, "One", content.Sections[1].Projects[0].Title)
	assert.Equal(t, "Two", content.Sections[1].Projects[1].Title)
}

func TestHeroContent(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	hero := createSection(t, env.svc, "Hero", "hero", portfolio.SectionTypeHero)
	about := createSection(t, env.svc, "About", "about", portfolio.SectionTypeAbout)

	t.Run("missing hero returns not found", func(t *testing.T) {
		_, err := env.svc.GetHero(ctx, hero.ID)
		assert.ErrorIs(t, err, portfolio.ErrNotFound)
	})

	t.Run("upsert creates then updates in place", func(t *testing.T) {
		headline := "Hi there"
		created, err := env.svc.UpsertHero(ctx, hero.ID, portfolio.UpsertHeroRequest{Headline: &headline})
		require.NoError(t, err)

		tagline := "I build things"
		updated, err := env.svc.UpsertHero(ctx, hero.ID, portfolio.UpsertHeroRequest{Tagline: &tagline})
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Hi there", updated.Headline)
		assert.Equal(t, "I build things", updated.Tagline)
	})

	t.Run("rejects non-hero section", func(t *testing.T) {
		headline := "X"
		_, err := env.svc.UpsertHero(ctx, about.ID, portfolio.UpsertHeroRequest{Headline: &headline})
		assert.ErrorIs(t, err, portfolio.ErrInvalidInput)
	})
}

func TestCategoryDeleteDetachesProjects(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	section := createSection(t, env.svc, "Projects", "projects", portfolio.SectionTypeProjects)

	web, err := env.svc.CreateCategory(ctx, portfolio.CreateCategoryRequest{Name: "Web"})
	require.NoError(t, err)
	assert.Equal(t, "web", web.Slug)

	cli, err := env.svc.CreateCategory(ctx, portfolio.CreateCategoryRequest{Name: "CLI Tools"})
	require.NoError(t, err)
	assert.Equal(t, "cli-tools", cli.Slug)

	project, err := env.svc.CreateProject(ctx, section.ID, portfolio.CreateProjectRequest{
		Title:       "Site",
		CategoryIDs: []uuid.UUID{web.ID, cli.ID},
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteCategory(ctx, web.ID))

	got, err := env.svc.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{cli.ID}, got.CategoryIDs)

	categories, err := env.svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, cli.ID, categories[0].ID)
}

func TestSettings(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	t.Run("first read creates defaults", func(t *testing.T) {
		setting, err := env.svc.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, "dark", setting.Theme)
		assert.Equal(t, "PORTFOLIO", setting.SiteTitle)
		assert.True(t, setting.ShowPortrait)
		assert.Equal(t, "/resume.pdf", setting.ResumeURL)
		assert.Equal(t, "font-sans", setting.GlobalFontFamily)
	})

	t.Run("repeat reads return the same record", func(t *testing.T) {
		first, err := env.svc.GetSettings(ctx)
		require.NoError(t, err)
		second, err := env.svc.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("update merges supplied fields", func(t *testing.T) {
		theme := "light"
		updated, err := env.svc.UpdateSettings(ctx, portfolio.UpdateSettingsRequest{Theme: &theme})
		require.NoError(t, err)
		assert.Equal(t, "light", updated.Theme)
		assert.Equal(t, "PORTFOLIO", updated.SiteTitle)
	})
}

func TestLogin(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, env.repo.CreateUser(ctx, &portfolio.User{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		Name:         "Admin",
		PasswordHash: string(hash),
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}))

	t.Run("valid credentials", func(t *testing.T) {
		identity, err := env.svc.Login(ctx, portfolio.LoginRequest{
			Email:    "admin@example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", identity.Email)
		assert.True(t, identity.IsAdmin)
	})

	t.Run("email is case insensitive", func(t *testing.T) {
		_, err := env.svc.Login(ctx, portfolio.LoginRequest{
			Email:    "Admin@Example.COM",
			Password: "correct horse",
		})
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.svc.Login(ctx, portfolio.LoginRequest{
			Email:    "admin@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, portfolio.ErrInvalidCredentials)
	})

	t.Run("unknown email looks identical to wrong password", func(t *testing.T) {
		_, err := env.svc.Login(ctx, portfolio.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, portfolio.ErrInvalidCredentials)
	})

	t.Run("empty fields", func(t *testing.T) {
		_, err := env.svc.Login(ctx, portfolio.LoginRequest{})
		assert.ErrorIs(t, err, portfolio.ErrInvalidInput)
	})
}

func TestUploadImage(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	t.Run("valid png", func(t *testing.T) {
		ref, err := env.svc.UploadImage(ctx, portfolio.UploadRequest{
			FileName:    "avatar.png",
			ContentType: "image/png",
			Size:        4,
			Data:        []byte{0x89, 'P', 'N', 'G'},
		})
		require.NoError(t, err)
		assert.Contains(t, ref.PublicID, "images/")
		assert.Contains(t, ref.SecureURL, "memory://images/")
		assert.Equal(t, "image/png", env.store.MimeType(ref.PublicID))
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := env.svc.UploadImage(ctx, portfolio.UploadRequest{
			ContentType: "image/tiff",
			Size:        1,
			Data:        []byte{0},
		})
		assert.ErrorIs(t, err, portfolio.ErrInvalidInput)
	})

	t.Run("oversized", func(t *testing.T) {
		_, err := env.svc.UploadImage(ctx, portfolio.UploadRequest{
			ContentType: "image/png",
			Size:        portfolio.MaxImageBytes + 1,
		})
		assert.ErrorIs(t, err, portfolio.ErrInvalidInput)
	})

	t.Run("no blob store configured", func(t *testing.T) {
		svc, err := portfolio.New(portfolio.WithRepository(memory.New()))
		require.NoError(t, err)
		_, err = svc.UploadImage(ctx, portfolio.UploadRequest{
			ContentType: "image/png",
			Size:        1,
			Data:        []byte{0},
		})
		assert.ErrorIs(t, err, portfolio.ErrExternalService)
	})
}

func TestUploadResume(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	t.Run("valid pdf", func(t *testing.T) {
		ref, err := env.svc.UploadResume(ctx, portfolio.UploadRequest{
			FileName:    "resume.pdf",
			ContentType: "application/pdf",
			Size:        8,
			Data:        []byte("%PDF-1.4"),
		})
		require.NoError(t, err)
		assert.Contains(t, ref.PublicID, "resume/")
	})

	t.Run("rejects non-pdf", func(t *testing.T) {
		_, err := env.svc.UploadResume(ctx, portfolio.UploadRequest{
			ContentType: "image/png",
			Size:        1,
			Data:        []byte{0},
		})
		assert.ErrorIs(t, err, portfolio.ErrInvalidInput)
	})

	t.Run("oversized", func(t *testing.T) {
		_, err := env.svc.UploadResume(ctx, portfolio.UploadRequest{
			ContentType: "application/pdf",
			Size:        portfolio.MaxResumeBytes + 1,
		})
		assert.ErrorIs(t, err, portfolio.ErrInvalidInput)
	})
}

func TestItemImages(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	section := createSection(t, env.svc, "Experience", "experience", portfolio.SectionTypeExperience)
	item, err := env.svc.CreateExperience(ctx, section.ID, portfolio.CreateExperienceRequest{
		Role:    "Engineer",
		Company: "Acme",
	})
	require.NoError(t, err)

	t.Run("attach and list", func(t *testing.T) {
		img, err := env.svc.AddExperienceImage(ctx, item.ID, portfolio.AddItemImageRequest{
			Src:     "memory://images/office.png",
			Caption: "The office",
		})
		require.NoError(t, err)
		assert.Equal(t, portfolio.ImageOwnerExperience, img.OwnerKind)
		assert.Equal(t, item.ID, img.OwnerID)

		content, err := env.svc.GetSiteContent(ctx)
		require.NoError(t, err)
		require.Len(t, content.Sections, 1)
		require.Len(t, content.Sections[0].Experience, 1)
		assert.Len(t, content.Sections[0].Experience[0].Images, 1)
	})

	t.Run("attach to missing item", func(t *testing.T) {
		_, err := env.svc.AddExperienceImage(ctx, uuid.New(), portfolio.AddItemImageRequest{Src: "x"})
		assert.ErrorIs(t, err, portfolio.ErrNotFound)
	})

	t.Run("missing src", func(t *testing.T) {
		_, err := env.svc.AddExperienceImage(ctx, item.ID, portfolio.AddItemImageRequest{})
		assert.ErrorIs(t, err, portfolio.ErrInvalidInput)
	})

	t.Run("delete with item", func(t *testing.T) {
		require.NoError(t, env.svc.DeleteExperience(ctx, item.ID))
		images, err := env.repo.ListItemImages(ctx, portfolio.ImageOwnerExperience, item.ID)
		require.NoError(t, err)
		assert.Empty(t, images)
	})
}

func TestSkillValidation(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	section := createSection(t, env.svc, "Skills", "skills", portfolio.SectionTypeSkills)

	t.Run("level out of range", func(t *testing.T) {
		_, err := env.svc.CreateSkill(ctx, section.ID, portfolio.CreateSkillRequest{
			Name:  "Go",
			Level: 150,
		})
		assert.ErrorIs(t, err, portfolio.ErrInvalidInput)
	})

	t.Run("level in range", func(t *testing.T) {
		skill, err := env.svc.CreateSkill(ctx, section.ID, portfolio.CreateSkillRequest{
			Name:  "Go",
			Level: 90,
		})
		require.NoError(t, err)
		assert.Equal(t, 90, skill.Level)
	})

	t.Run("gallery image attaches to the section", func(t *testing.T) {
		img, err := env.svc.AddSkillImage(ctx, section.ID, portfolio.AddItemImageRequest{Src: "x"})
		require.NoError(t, err)
		assert.Equal(t, portfolio.ImageOwnerSkills, img.OwnerKind)
		assert.Equal(t, section.ID, img.OwnerID)
	})
}

func TestContactMessages(t *testing.T) {
	env := setupTestService(t)
	ctx := context.Background()

	t.Run("requires email and body", func(t *testing.T) {
		_, err := env.svc.SubmitContactMessage(ctx, portfolio.SubmitContactMessageRequest{Name: "Eva"})
		assert.ErrorIs(t, err, portfolio.ErrInvalidInput)
	})

	t.Run("stores and lists newest first", func(t *testing.T) {
		first, err := env.svc.SubmitContactMessage(ctx, portfolio.SubmitContactMessageRequest{
			Name:  "Eva",
			Email: "eva@example.com",
			Body:  "Hi!",
		})
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)
		second, err := env.svc.SubmitContactMessage(ctx, portfolio.SubmitContactMessageRequest{
			Name:  "Tom",
			Email: "tom@example.com",
			Body:  "Hello!",
		})
		require.NoError(t, err)

		messages, err := env.svc.ListContactMessages(ctx)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, second.ID, messages[0].ID)
		assert.Equal(t, first.ID, messages[1].ID)
	})
}

func imagePayload() io.Reader {
	return bytes.NewReader([]byte{0x89, 'P', 'N', 'G'})
}
