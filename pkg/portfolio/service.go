package portfolio

import (
	"context"

	"github.com/google/uuid"
)

// Service is the application-facing API over the persistence gateway, the
// ordering engine, the credential verifier, and the blob upload adapter.
type Service interface {
	// Site content
	GetSiteContent(ctx context.Context) (*SiteContent, error)

	// Sections
	CreateSection(ctx context.Context, req CreateSectionRequest) (*Section, error)
	GetSection(ctx context.Context, id uuid.UUID) (*Section, error)
	ListSections(ctx context.Context) ([]*Section, error)
	UpdateSection(ctx context.Context, id uuid.UUID, req UpdateSectionRequest) (*Section, error)
	DeleteSection(ctx context.Context, id uuid.UUID) error
	ReorderSections(ctx context.Context, orderedIDs []uuid.UUID) error

	// Text blocks
	CreateTextBlock(ctx context.Context, sectionID uuid.UUID, req CreateTextBlockRequest) (*TextBlock, error)
	UpdateTextBlock(ctx context.Context, id uuid.UUID, req UpdateTextBlockRequest) (*TextBlock, error)
	DeleteTextBlock(ctx context.Context, id uuid.UUID) error
	ReorderTextBlocks(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error

	// Image blocks
	CreateImageBlock(ctx context.Context, sectionID uuid.UUID, req CreateImageBlockRequest) (*ImageBlock, error)
	UpdateImageBlock(ctx context.Context, id uuid.UUID, req UpdateImageBlockRequest) (*ImageBlock, error)
	DeleteImageBlock(ctx context.Context, id uuid.UUID) error
	ReorderImageBlocks(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error

	// Custom-section content blocks
	CreateContentBlock(ctx context.Context, sectionID uuid.UUID, req CreateContentBlockRequest) (*ContentBlock, error)
	UpdateContentBlock(ctx context.Context, id uuid.UUID, req UpdateContentBlockRequest) (*ContentBlock, error)
	DeleteContentBlock(ctx context.Context, id uuid.UUID) error
	ReorderContentBlocks(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error

	// Projects
	CreateProject(ctx context.Context, sectionID uuid.UUID, req CreateProjectRequest) (*ProjectItem, error)
	GetProject(ctx context.Context, id uuid.UUID) (*ProjectItem, error)
	ListProjects(ctx context.Context, sectionID uuid.UUID) ([]*ProjectItem, error)
	UpdateProject(ctx context.Context, id uuid.UUID, req UpdateProjectRequest) (*ProjectItem, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
	ReorderProjects(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error

	// Categories
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// Experience
	CreateExperience(ctx context.Context, sectionID uuid.UUID, req CreateExperienceRequest) (*ExperienceItem, error)
	UpdateExperience(ctx context.Context, id uuid.UUID, req UpdateExperienceRequest) (*ExperienceItem, error)
	DeleteExperience(ctx context.Context, id uuid.UUID) error
	ReorderExperience(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error
	AddExperienceImage(ctx context.Context, experienceID uuid.UUID, req AddItemImageRequest) (*ItemImage, error)
	DeleteExperienceImage(ctx context.Context, imageID uuid.UUID) error

	// Education
	CreateEducation(ctx context.Context, sectionID uuid.UUID, req CreateEducationRequest) (*EducationItem, error)
	UpdateEducation(ctx context.Context, id uuid.UUID, req UpdateEducationRequest) (*EducationItem, error)
	DeleteEducation(ctx context.Context, id uuid.UUID) error
	ReorderEducation(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error
	AddEducationImage(ctx context.Context, educationID uuid.UUID, req AddItemImageRequest) (*ItemImage, error)
	DeleteEducationImage(ctx context.Context, imageID uuid.UUID) error

	// Skills
	CreateSkill(ctx context.Context, sectionID uuid.UUID, req CreateSkillRequest) (*SkillItem, error)
	UpdateSkill(ctx context.Context, id uuid.UUID, req UpdateSkillRequest) (*SkillItem, error)
	DeleteSkill(ctx context.Context, id uuid.UUID) error
	ReorderSkills(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error
	AddSkillImage(ctx context.Context, sectionID uuid.UUID, req AddItemImageRequest) (*ItemImage, error)
	DeleteSkillImage(ctx context.Context, imageID uuid.UUID) error

	// Testimonials
	CreateTestimonial(ctx context.Context, sectionID uuid.UUID, req CreateTestimonialRequest) (*TestimonialItem, error)
	UpdateTestimonial(ctx context.Context, id uuid.UUID, req UpdateTestimonialRequest) (*TestimonialItem, error)
	DeleteTestimonial(ctx context.Context, id uuid.UUID) error
	ReorderTestimonials(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error

	// Contact info
	CreateContactInfo(ctx context.Context, sectionID uuid.UUID, req CreateContactInfoRequest) (*ContactInfoItem, error)
	UpdateContactInfo(ctx context.Context, id uuid.UUID, req UpdateContactInfoRequest) (*ContactInfoItem, error)
	DeleteContactInfo(ctx context.Context, id uuid.UUID) error
	ReorderContactInfo(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error

	// Hero content
	GetHero(ctx context.Context, sectionID uuid.UUID) (*HeroContent, error)
	UpsertHero(ctx context.Context, sectionID uuid.UUID, req UpsertHeroRequest) (*HeroContent, error)

	// Settings singleton, get-or-create semantics
	GetSettings(ctx context.Context) (*Setting, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*Setting, error)

	// Credential verification
	Login(ctx context.Context, req LoginRequest) (*Identity, error)

	// Blob upload adapter
	UploadImage(ctx context.Context, req UploadRequest) (*BlobRef, error)
	UploadResume(ctx context.Context, req UploadRequest) (*BlobRef, error)
	DeleteBlob(ctx context.Context, publicID string)

	// Contact messages
	SubmitContactMessage(ctx context.Context, req SubmitContactMessageRequest) (*ContactMessage, error)
	ListContactMessages(ctx context.Context) ([]*ContactMessage, error)
}
