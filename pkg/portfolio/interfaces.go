package portfolio

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// OrderedEntity names one of the orderable entity kinds. It doubles as the
// table/collection selector for the generic ordering operations.
type OrderedEntity string

const (
	EntitySections      OrderedEntity = "sections"
	EntityTextBlocks    OrderedEntity = "text_blocks"
	EntityImageBlocks   OrderedEntity = "image_blocks"
	EntityContentBlocks OrderedEntity = "content_blocks"
	EntityProjects      OrderedEntity = "projects"
	EntityExperience    OrderedEntity = "experience_items"
	EntityEducation     OrderedEntity = "education_items"
	EntitySkills        OrderedEntity = "skill_items"
	EntityTestimonials  OrderedEntity = "testimonial_items"
	EntityContactInfo   OrderedEntity = "contact_info_items"
)

// IsValid reports whether e names a known orderable entity.
func (e OrderedEntity) IsValid() bool {
	switch e {
	case EntitySections, EntityTextBlocks, EntityImageBlocks, EntityContentBlocks,
		EntityProjects, EntityExperience, EntityEducation, EntitySkills,
		EntityTestimonials, EntityContactInfo:
		return true
	}
	return false
}

// OrderScope identifies the parent scope whose children share an order
// sequence. Sections are ordered globally: ParentID is uuid.Nil.
type OrderScope struct {
	Entity   OrderedEntity
	ParentID uuid.UUID
}

// SectionScope is the global scope for top-level sections.
func SectionScope() OrderScope {
	return OrderScope{Entity: EntitySections}
}

// ChildScope is the scope for children of one section.
func ChildScope(entity OrderedEntity, sectionID uuid.UUID) OrderScope {
	return OrderScope{Entity: entity, ParentID: sectionID}
}

// Repository is the persistence gateway. Implementations return ErrNotFound
// for missing records and ErrConflict for unique-constraint or serialization
// failures so the service can classify without knowing the store.
type Repository interface {
	// InTx runs fn against a transactional view of the repository. All writes
	// inside fn commit together or not at all.
	InTx(ctx context.Context, fn func(Repository) error) error

	// Generic ordering operations shared by every orderable entity.
	// MaxOrder returns the highest order among siblings, or -1 when none exist.
	MaxOrder(ctx context.Context, scope OrderScope) (int, error)
	// SetOrder assigns order to one record restricted to the scope. It
	// reports false when no record matched the scope.
	SetOrder(ctx context.Context, scope OrderScope, id uuid.UUID, order int) (bool, error)
	// Exists reports whether a record of the entity kind exists at all,
	// regardless of scope.
	Exists(ctx context.Context, entity OrderedEntity, id uuid.UUID) (bool, error)

	// Sections
	CreateSection(ctx context.Context, s *Section) error
	GetSection(ctx context.Context, id uuid.UUID) (*Section, error)
	GetSectionBySlug(ctx context.Context, slug string) (*Section, error)
	ListSections(ctx context.Context) ([]*Section, error)
	UpdateSection(ctx context.Context, s *Section) error
	DeleteSection(ctx context.Context, id uuid.UUID) error

	// Text blocks
	CreateTextBlock(ctx context.Context, b *TextBlock) error
	GetTextBlock(ctx context.Context, id uuid.UUID) (*TextBlock, error)
	ListTextBlocks(ctx context.Context, sectionID uuid.UUID) ([]*TextBlock, error)
	UpdateTextBlock(ctx context.Context, b *TextBlock) error
	DeleteTextBlock(ctx context.Context, id uuid.UUID) error

	// Image blocks
	CreateImageBlock(ctx context.Context, b *ImageBlock) error
	GetImageBlock(ctx context.Context, id uuid.UUID) (*ImageBlock, error)
	ListImageBlocks(ctx context.Context, sectionID uuid.UUID) ([]*ImageBlock, error)
	UpdateImageBlock(ctx context.Context, b *ImageBlock) error
	DeleteImageBlock(ctx context.Context, id uuid.UUID) error

	// Custom-section content blocks
	CreateContentBlock(ctx context.Context, b *ContentBlock) error
	GetContentBlock(ctx context.Context, id uuid.UUID) (*ContentBlock, error)
	ListContentBlocks(ctx context.Context, sectionID uuid.UUID) ([]*ContentBlock, error)
	UpdateContentBlock(ctx context.Context, b *ContentBlock) error
	DeleteContentBlock(ctx context.Context, id uuid.UUID) error

	// Projects
	CreateProject(ctx context.Context, p *ProjectItem) error
	GetProject(ctx context.Context, id uuid.UUID) (*ProjectItem, error)
	ListProjects(ctx context.Context, sectionID uuid.UUID) ([]*ProjectItem, error)
	ListProjectsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*ProjectItem, error)
	UpdateProject(ctx context.Context, p *ProjectItem) error
	DeleteProject(ctx context.Context, id uuid.UUID) error

	// Categories
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// Experience
	CreateExperience(ctx context.Context, e *ExperienceItem) error
	GetExperience(ctx context.Context, id uuid.UUID) (*ExperienceItem, error)
	ListExperience(ctx context.Context, sectionID uuid.UUID) ([]*ExperienceItem, error)
	UpdateExperience(ctx context.Context, e *ExperienceItem) error
	DeleteExperience(ctx context.Context, id uuid.UUID) error

	// Education
	CreateEducation(ctx context.Context, e *EducationItem) error
	GetEducation(ctx context.Context, id uuid.UUID) (*EducationItem, error)
	ListEducation(ctx context.Context, sectionID uuid.UUID) ([]*EducationItem, error)
	UpdateEducation(ctx context.Context, e *EducationItem) error
	DeleteEducation(ctx context.Context, id uuid.UUID) error

	// Skills
	CreateSkill(ctx context.Context, s *SkillItem) error
	GetSkill(ctx context.Context, id uuid.UUID) (*SkillItem, error)
	ListSkills(ctx context.Context, sectionID uuid.UUID) ([]*SkillItem, error)
	UpdateSkill(ctx context.Context, s *SkillItem) error
	DeleteSkill(ctx context.Context, id uuid.UUID) error

	// Testimonials
	CreateTestimonial(ctx context.Context, t *TestimonialItem) error
	GetTestimonial(ctx context.Context, id uuid.UUID) (*TestimonialItem, error)
	ListTestimonials(ctx context.Context, sectionID uuid.UUID) ([]*TestimonialItem, error)
	UpdateTestimonial(ctx context.Context, t *TestimonialItem) error
	DeleteTestimonial(ctx context.Context, id uuid.UUID) error

	// Contact info
	CreateContactInfo(ctx context.Context, c *ContactInfoItem) error
	GetContactInfo(ctx context.Context, id uuid.UUID) (*ContactInfoItem, error)
	ListContactInfo(ctx context.Context, sectionID uuid.UUID) ([]*ContactInfoItem, error)
	UpdateContactInfo(ctx context.Context, c *ContactInfoItem) error
	DeleteContactInfo(ctx context.Context, id uuid.UUID) error

	// Hero content (one per hero section)
	GetHeroBySection(ctx context.Context, sectionID uuid.UUID) (*HeroContent, error)
	UpsertHero(ctx context.Context, h *HeroContent) error
	DeleteHeroBySection(ctx context.Context, sectionID uuid.UUID) error

	// Item images (education, experience, skills gallery)
	AddItemImage(ctx context.Context, img *ItemImage) error
	GetItemImage(ctx context.Context, id uuid.UUID) (*ItemImage, error)
	ListItemImages(ctx context.Context, kind ImageOwnerKind, ownerID uuid.UUID) ([]*ItemImage, error)
	DeleteItemImage(ctx context.Context, id uuid.UUID) error
	DeleteItemImagesByOwner(ctx context.Context, kind ImageOwnerKind, ownerID uuid.UUID) error

	// Settings singleton
	GetSetting(ctx context.Context) (*Setting, error)
	SaveSetting(ctx context.Context, s *Setting) error

	// Users
	CreateUser(ctx context.Context, u *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, u *User) error

	// Contact messages
	CreateContactMessage(ctx context.Context, m *ContactMessage) error
	ListContactMessages(ctx context.Context) ([]*ContactMessage, error)
}

// BlobStore is the external object store. Delete failures after a committed
// database mutation are logged, never propagated.
type BlobStore interface {
	// Upload stores the payload under objectKey and returns nil on success.
	Upload(ctx context.Context, objectKey string, reader io.Reader) error

	// UploadWithParams uploads with an explicit MIME type.
	UploadWithParams(ctx context.Context, reader io.Reader, params UploadParams) error

	// Download retrieves the payload for objectKey.
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// URL returns the stable externally-addressable URL for objectKey.
	URL(ctx context.Context, objectKey string) (string, error)

	// Delete removes the payload for objectKey.
	Delete(ctx context.Context, objectKey string) error
}

// UploadParams carries parameters for uploading an object.
type UploadParams struct {
	ObjectKey string
	MimeType  string
}

// Mailer sends outbound notifications. Implementations are best-effort
// collaborators; callers log and swallow their failures.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
