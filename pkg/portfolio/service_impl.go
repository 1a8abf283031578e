package portfolio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Upload limits applied before any call to the blob store.
const (
	MaxImageBytes  = 10 << 20 // 10 MB
	MaxResumeBytes = 5 << 20  // 5 MB
)

// imageExtensions maps the accepted image content types to object key
// extensions. Anything else is rejected with ErrInvalidInput.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// dummyHash is compared against when the email is unknown so that login
// latency does not reveal whether an account exists.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// service implements the Service interface.
type service struct {
	repository Repository
	blobStores map[string]BlobStore
	defaultStore string
	mailer     Mailer
	notifyTo   string
}

// Option represents a functional option for configuring the service.
type Option func(*service)

// WithRepository sets the persistence gateway for the service.
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore adds a blob storage backend under a name.
func WithBlobStore(name string, store BlobStore) Option {
	return func(s *service) {
		if s.blobStores == nil {
			s.blobStores = make(map[string]BlobStore)
		}
		s.blobStores[name] = store
		if s.defaultStore == "" {
			s.defaultStore = name
		}
	}
}

// WithDefaultStorage selects which named backend uploads go to.
func WithDefaultStorage(name string) Option {
	return func(s *service) {
		s.defaultStore = name
	}
}

// WithMailer sets the outbound notification mailer.
func WithMailer(m Mailer) Option {
	return func(s *service) {
		s.mailer = m
	}
}

// WithContactRecipient sets the address contact form notifications go to.
func WithContactRecipient(addr string) Option {
	return func(s *service) {
		s.notifyTo = addr
	}
}

// New creates a new service instance with the given options.
func New(options ...Option) (Service, error) {
	s := &service{
		blobStores: make(map[string]BlobStore),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}

	return s, nil
}

func (s *service) store() (BlobStore, error) {
	store, ok := s.blobStores[s.defaultStore]
	if !ok {
		return nil, fmt.Errorf("%w: no blob store configured", ErrExternalService)
	}
	return store, nil
}

// Sections

func (s *service) CreateSection(ctx context.Context, req CreateSectionRequest) (*Section, error) {
	if req.Title == "" || req.Slug == "" {
		return nil, invalidf("title and slug are required")
	}
	if !req.Type.IsValid() {
		return nil, invalidf("unknown section type %q", req.Type)
	}

	order, err := nextOrder(ctx, s.repository, SectionScope())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	section := &Section{
		ID:        uuid.New(),
		Title:     req.Title,
		Slug:      req.Slug,
		Type:      req.Type,
		Order:     order,
		Visible:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Visible != nil {
		section.Visible = *req.Visible
	}

	if err := s.repository.CreateSection(ctx, section); err != nil {
		return nil, &EntityError{Entity: "section", ID: section.ID, Op: "create", Err: err}
	}
	return section, nil
}

func (s *service) GetSection(ctx context.Context, id uuid.UUID) (*Section, error) {
	return s.repository.GetSection(ctx, id)
}

func (s *service) ListSections(ctx context.Context) ([]*Section, error) {
	return s.repository.ListSections(ctx)
}

func (s *service) UpdateSection(ctx context.Context, id uuid.UUID, req UpdateSectionRequest) (*Section, error) {
	section, err := s.repository.GetSection(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		section.Title = *req.Title
	}
	if req.Slug != nil {
		section.Slug = *req.Slug
	}
	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, invalidf("unknown section type %q", *req.Type)
		}
		section.Type = *req.Type
	}
	if req.Visible != nil {
		section.Visible = *req.Visible
	}
	section.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateSection(ctx, section); err != nil {
		return nil, &EntityError{Entity: "section", ID: id, Op: "update", Err: err}
	}
	return section, nil
}

// DeleteSection removes a section and all its children, then best-effort
// deletes every externally stored blob the children referenced. Sibling
// sections keep their order values; gaps persist until the next reorder.
func (s *service) DeleteSection(ctx context.Context, id uuid.UUID) error {
	section, err := s.repository.GetSection(ctx, id)
	if err != nil {
		return err
	}

	publicIDs, err := s.collectSectionBlobs(ctx, section)
	if err != nil {
		return err
	}

	if err := s.repository.DeleteSection(ctx, id); err != nil {
		return &EntityError{Entity: "section", ID: id, Op: "delete", Err: err}
	}

	for _, publicID := range publicIDs {
		s.DeleteBlob(ctx, publicID)
	}
	return nil
}

// collectSectionBlobs gathers the public IDs of every blob referenced by the
// section's children so they can be cleaned up after the database delete.
func (s *service) collectSectionBlobs(ctx context.Context, section *Section) ([]string, error) {
	var ids []string
	add := func(publicID string) {
		if publicID != "" {
			ids = append(ids, publicID)
		}
	}

	switch section.Type {
	case SectionTypeHero:
		hero, err := s.repository.GetHeroBySection(ctx, section.ID)
		if err == nil {
			add(hero.PortraitPublicID)
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	case SectionTypeProjects:
		projects, err := s.repository.ListProjects(ctx, section.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			add(p.ImagePublicID)
		}
	case SectionTypeSkills:
		skills, err := s.repository.ListSkills(ctx, section.ID)
		if err != nil {
			return nil, err
		}
		for _, sk := range skills {
			add(sk.IconPublicID)
		}
		gallery, err := s.repository.ListItemImages(ctx, ImageOwnerSkills, section.ID)
		if err != nil {
			return nil, err
		}
		for _, img := range gallery {
			add(img.ImagePublicID)
		}
	case SectionTypeExperience:
		items, err := s.repository.ListExperience(ctx, section.ID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			images, err := s.repository.ListItemImages(ctx, ImageOwnerExperience, item.ID)
			if err != nil {
				return nil, err
			}
			for _, img := range images {
				add(img.ImagePublicID)
			}
		}
	case SectionTypeEducation:
		items, err := s.repository.ListEducation(ctx, section.ID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			images, err := s.repository.ListItemImages(ctx, ImageOwnerEducation, item.ID)
			if err != nil {
				return nil, err
			}
			for _, img := range images {
				add(img.ImagePublicID)
			}
		}
	}

	// Image and content blocks can appear under several section types.
	imageBlocks, err := s.repository.ListImageBlocks(ctx, section.ID)
	if err != nil {
		return nil, err
	}
	for _, b := range imageBlocks {
		add(b.ImagePublicID)
	}
	blocks, err := s.repository.ListContentBlocks(ctx, section.ID)
	if err != nil {
		return nil, err
	}
	for _, b := range blocks {
		add(b.ImagePublicID)
	}
	testimonials, err := s.repository.ListTestimonials(ctx, section.ID)
	if err != nil {
		return nil, err
	}
	for _, t := range testimonials {
		add(t.AvatarPublicID)
	}

	return ids, nil
}

func (s *service) ReorderSections(ctx context.Context, orderedIDs []uuid.UUID) error {
	return reorder(ctx, s.repository, SectionScope(), orderedIDs)
}

// Site content

// GetSiteContent returns the full nested content tree sorted by order
// ascending at every level. This is the canonical read the front end renders
// from.
func (s *service) GetSiteContent(ctx context.Context) (*SiteContent, error) {
	sections, err := s.repository.ListSections(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	tree := &SiteContent{Settings: settings}
	for _, section := range sections {
		sc := &SectionContent{Section: section}

		switch section.Type {
		case SectionTypeHero:
			hero, err := s.repository.GetHeroBySection(ctx, section.ID)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return nil, err
			}
			sc.Hero = hero
		case SectionTypeProjects:
			if sc.Projects, err = s.repository.ListProjects(ctx, section.ID); err != nil {
				return nil, err
			}
		case SectionTypeExperience:
			if sc.Experience, err = s.repository.ListExperience(ctx, section.ID); err != nil {
				return nil, err
			}
			for _, item := range sc.Experience {
				if item.Images, err = s.repository.ListItemImages(ctx, ImageOwnerExperience, item.ID); err != nil {
					return nil, err
				}
			}
		case SectionTypeEducation:
			if sc.Education, err = s.repository.ListEducation(ctx, section.ID); err != nil {
				return nil, err
			}
			for _, item := range sc.Education {
				if item.Images, err = s.repository.ListItemImages(ctx, ImageOwnerEducation, item.ID); err != nil {
					return nil, err
				}
			}
		case SectionTypeSkills:
			if sc.Skills, err = s.repository.ListSkills(ctx, section.ID); err != nil {
				return nil, err
			}
			if sc.SkillImages, err = s.repository.ListItemImages(ctx, ImageOwnerSkills, section.ID); err != nil {
				return nil, err
			}
		case SectionTypeContact:
			if sc.ContactInfo, err = s.repository.ListContactInfo(ctx, section.ID); err != nil {
				return nil, err
			}
		case SectionTypeCustom:
			if sc.Blocks, err = s.repository.ListContentBlocks(ctx, section.ID); err != nil {
				return nil, err
			}
		}

		// Text blocks, image blocks and testimonials are not tied to one
		// section type; load them for every section.
		if sc.TextBlocks, err = s.repository.ListTextBlocks(ctx, section.ID); err != nil {
			return nil, err
		}
		if sc.ImageBlocks, err = s.repository.ListImageBlocks(ctx, section.ID); err != nil {
			return nil, err
		}
		if sc.Testimonials, err = s.repository.ListTestimonials(ctx, section.ID); err != nil {
			return nil, err
		}

		tree.Sections = append(tree.Sections, sc)
	}

	return tree, nil
}

// Categories

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	if req.Name == "" {
		return nil, invalidf("name is required")
	}
	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Name)
	}

	now := time.Now().UTC()
	category := &Category{
		ID:        uuid.New(),
		Name:      req.Name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repository.CreateCategory(ctx, category); err != nil {
		return nil, &EntityError{Entity: "category", ID: category.ID, Op: "create", Err: err}
	}
	return category, nil
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repository.ListCategories(ctx)
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*Category, error) {
	category, err := s.repository.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	category.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateCategory(ctx, category); err != nil {
		return nil, &EntityError{Entity: "category", ID: id, Op: "update", Err: err}
	}
	return category, nil
}

// DeleteCategory removes the category from every project's categoryIds, then
// deletes the category itself. All steps commit together or not at all.
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repository.GetCategory(ctx, id); err != nil {
		return err
	}

	return s.repository.InTx(ctx, func(tx Repository) error {
		projects, err := tx.ListProjectsByCategory(ctx, id)
		if err != nil {
			return err
		}
		for _, p := range projects {
			kept := p.CategoryIDs[:0]
			for _, cid := range p.CategoryIDs {
				if cid != id {
					kept = append(kept, cid)
				}
			}
			p.CategoryIDs = kept
			p.UpdatedAt = time.Now().UTC()
			if err := tx.UpdateProject(ctx, p); err != nil {
				return err
			}
		}
		return tx.DeleteCategory(ctx, id)
	})
}

// Hero content

func (s *service) GetHero(ctx context.Context, sectionID uuid.UUID) (*HeroContent, error) {
	return s.repository.GetHeroBySection(ctx, sectionID)
}

func (s *service) UpsertHero(ctx context.Context, sectionID uuid.UUID, req UpsertHeroRequest) (*HeroContent, error) {
	section, err := s.repository.GetSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if section.Type != SectionTypeHero {
		return nil, invalidf("section %s is not a hero section", sectionID)
	}

	now := time.Now().UTC()
	hero, err := s.repository.GetHeroBySection(ctx, sectionID)
	if errors.Is(err, ErrNotFound) {
		hero = &HeroContent{ID: uuid.New(), SectionID: sectionID, CreatedAt: now}
	} else if err != nil {
		return nil, err
	}

	var oldPortrait string
	if req.Headline != nil {
		hero.Headline = *req.Headline
	}
	if req.Tagline != nil {
		hero.Tagline = *req.Tagline
	}
	if req.PortraitSrc != nil {
		hero.PortraitSrc = *req.PortraitSrc
	}
	if req.PortraitPublicID != nil && *req.PortraitPublicID != hero.PortraitPublicID {
		oldPortrait = hero.PortraitPublicID
		hero.PortraitPublicID = *req.PortraitPublicID
	}
	if req.CTALabel != nil {
		hero.CTALabel = *req.CTALabel
	}
	if req.CTAURL != nil {
		hero.CTAURL = *req.CTAURL
	}
	hero.UpdatedAt = now

	if err := s.repository.UpsertHero(ctx, hero); err != nil {
		return nil, &EntityError{Entity: "hero", ID: hero.ID, Op: "upsert", Err: err}
	}

	// Replaced portrait: drop the old blob after the record is saved.
	if oldPortrait != "" {
		s.DeleteBlob(ctx, oldPortrait)
	}
	return hero, nil
}

// Settings

// GetSettings returns the singleton settings record, creating it with the
// documented defaults when none exists yet.
func (s *service) GetSettings(ctx context.Context) (*Setting, error) {
	setting, err := s.repository.GetSetting(ctx)
	if err == nil {
		return setting, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	def := DefaultSetting()
	def.ID = uuid.New()
	def.UpdatedAt = time.Now().UTC()
	if err := s.repository.SaveSetting(ctx, &def); err != nil {
		return nil, &EntityError{Entity: "setting", ID: def.ID, Op: "create", Err: err}
	}
	return &def, nil
}

// UpdateSettings merges the supplied fields over the current record, creating
// it from defaults first when none exists.
func (s *service) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*Setting, error) {
	setting, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if req.Theme != nil {
		setting.Theme = *req.Theme
	}
	if req.SiteTitle != nil {
		setting.SiteTitle = *req.SiteTitle
	}
	if req.ShowPortrait != nil {
		setting.ShowPortrait = *req.ShowPortrait
	}
	if req.ResumeURL != nil {
		setting.ResumeURL = *req.ResumeURL
	}
	if req.GlobalFontFamily != nil {
		setting.GlobalFontFamily = *req.GlobalFontFamily
	}
	setting.UpdatedAt = time.Now().UTC()

	if err := s.repository.SaveSetting(ctx, setting); err != nil {
		return nil, &EntityError{Entity: "setting", ID: setting.ID, Op: "update", Err: err}
	}
	return setting, nil
}

// Credential verification

// Login verifies an email/password pair against the stored bcrypt hash. The
// response never distinguishes an unknown email from a wrong password, and
// the stored hash is never returned or logged.
func (s *service) Login(ctx context.Context, req LoginRequest) (*Identity, error) {
	if req.Email == "" || req.Password == "" {
		return nil, invalidf("email and password are required")
	}

	user, err := s.repository.GetUserByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Burn a comparison so latency does not leak account existence.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &Identity{ID: user.ID, Email: user.Email, Name: user.Name, IsAdmin: user.IsAdmin}, nil
}

// Blob upload adapter

// UploadImage validates and forwards an image to the blob store, returning
// the stable URL and deletion-capable public ID. Validation happens before
// any network call.
func (s *service) UploadImage(ctx context.Context, req UploadRequest) (*BlobRef, error) {
	ext, ok := imageExtensions[req.ContentType]
	if !ok {
		return nil, invalidf("unsupported image type %q", req.ContentType)
	}
	if req.Size > MaxImageBytes {
		return nil, invalidf("image exceeds %d byte limit", MaxImageBytes)
	}
	return s.upload(ctx, "images/"+uuid.NewString()+ext, req)
}

// UploadResume validates and forwards a PDF resume to the blob store.
func (s *service) UploadResume(ctx context.Context, req UploadRequest) (*BlobRef, error) {
	if req.ContentType != "application/pdf" {
		return nil, invalidf("resume must be a PDF, got %q", req.ContentType)
	}
	if req.Size > MaxResumeBytes {
		return nil, invalidf("resume exceeds %d byte limit", MaxResumeBytes)
	}
	return s.upload(ctx, "resume/"+uuid.NewString()+".pdf", req)
}

func (s *service) upload(ctx context.Context, objectKey string, req UploadRequest) (*BlobRef, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}

	err = store.UploadWithParams(ctx, bytes.NewReader(req.Data), UploadParams{
		ObjectKey: objectKey,
		MimeType:  req.ContentType,
	})
	if err != nil {
		return nil, &StorageError{Backend: s.defaultStore, Key: objectKey, Op: "upload", Err: err}
	}

	url, err := store.URL(ctx, objectKey)
	if err != nil {
		return nil, &StorageError{Backend: s.defaultStore, Key: objectKey, Op: "url", Err: err}
	}

	return &BlobRef{SecureURL: url, PublicID: objectKey, Bytes: req.Size, Format: req.ContentType}, nil
}

// DeleteBlob requests deletion of an externally stored blob. It is
// best-effort: the owning database record has typically already been mutated
// or removed, so failures are logged and swallowed.
func (s *service) DeleteBlob(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	store, err := s.store()
	if err != nil {
		slog.Warn("blob cleanup skipped", "public_id", publicID, "error", err)
		return
	}
	if err := store.Delete(ctx, publicID); err != nil {
		slog.Warn("blob cleanup failed", "public_id", publicID, "error", err)
	}
}

// Contact messages

func (s *service) SubmitContactMessage(ctx context.Context, req SubmitContactMessageRequest) (*ContactMessage, error) {
	if req.Email == "" || req.Body == "" {
		return nil, invalidf("email and body are required")
	}

	msg := &ContactMessage{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Body:      req.Body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repository.CreateContactMessage(ctx, msg); err != nil {
		return nil, &EntityError{Entity: "contact_message", ID: msg.ID, Op: "create", Err: err}
	}

	// Notification is best-effort; the stored message is the source of truth.
	if s.mailer != nil && s.notifyTo != "" {
		subject := "New contact message from " + msg.Name
		if err := s.mailer.Send(ctx, s.notifyTo, subject, msg.Body); err != nil {
			slog.Warn("contact notification failed", "message_id", msg.ID, "error", err)
		}
	}
	return msg, nil
}

func (s *service) ListContactMessages(ctx context.Context) ([]*ContactMessage, error) {
	return s.repository.ListContactMessages(ctx)
}

// slugify lowercases and dashes a name into a URL slug.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
