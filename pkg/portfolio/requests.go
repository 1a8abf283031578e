package portfolio

import "github.com/google/uuid"

// Request DTOs. Update requests use pointer fields: only non-nil fields are
// applied, which gives every entity an explicit allow-list of updatable
// fields instead of spreading arbitrary input into the record.

// CreateSectionRequest contains parameters for creating a section.
type CreateSectionRequest struct {
	Title   string      `json:"title"`
	Slug    string      `json:"slug"`
	Type    SectionType `json:"type"`
	Visible *bool       `json:"visible,omitempty"`
}

// UpdateSectionRequest contains the updatable section fields.
type UpdateSectionRequest struct {
	Title   *string      `json:"title,omitempty"`
	Slug    *string      `json:"slug,omitempty"`
	Type    *SectionType `json:"type,omitempty"`
	Visible *bool        `json:"visible,omitempty"`
}

// ReorderRequest is the caller-supplied desired child order.
type ReorderRequest struct {
	OrderedIDs []uuid.UUID `json:"orderedIds"`
}

// CreateTextBlockRequest contains parameters for creating a text block.
type CreateTextBlockRequest struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// UpdateTextBlockRequest contains the updatable text block fields.
type UpdateTextBlockRequest struct {
	Heading *string `json:"heading,omitempty"`
	Body    *string `json:"body,omitempty"`
}

// CreateImageBlockRequest contains parameters for creating an image block.
type CreateImageBlockRequest struct {
	Src           string `json:"src"`
	ImagePublicID string `json:"imagePublicId"`
	Alt           string `json:"alt"`
	Caption       string `json:"caption"`
}

// UpdateImageBlockRequest contains the updatable image block fields.
type UpdateImageBlockRequest struct {
	Src           *string `json:"src,omitempty"`
	ImagePublicID *string `json:"imagePublicId,omitempty"`
	Alt           *string `json:"alt,omitempty"`
	Caption       *string `json:"caption,omitempty"`
}

// CreateContentBlockRequest contains parameters for creating a custom block.
type CreateContentBlockRequest struct {
	Kind          BlockKind `json:"kind"`
	Heading       string    `json:"heading"`
	Body          string    `json:"body"`
	Src           string    `json:"src"`
	ImagePublicID string    `json:"imagePublicId"`
}

// UpdateContentBlockRequest contains the updatable custom block fields.
type UpdateContentBlockRequest struct {
	Kind          *BlockKind `json:"kind,omitempty"`
	Heading       *string    `json:"heading,omitempty"`
	Body          *string    `json:"body,omitempty"`
	Src           *string    `json:"src,omitempty"`
	ImagePublicID *string    `json:"imagePublicId,omitempty"`
}

// CreateProjectRequest contains parameters for creating a project.
type CreateProjectRequest struct {
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	RepoURL       string      `json:"repoUrl"`
	LiveURL       string      `json:"liveUrl"`
	ImageSrc      string      `json:"imageSrc"`
	ImagePublicID string      `json:"imagePublicId"`
	CategoryIDs   []uuid.UUID `json:"categoryIds"`
	Featured      bool        `json:"featured"`
}

// UpdateProjectRequest contains the updatable project fields.
type UpdateProjectRequest struct {
	Title         *string      `json:"title,omitempty"`
	Description   *string      `json:"description,omitempty"`
	RepoURL       *string      `json:"repoUrl,omitempty"`
	LiveURL       *string      `json:"liveUrl,omitempty"`
	ImageSrc      *string      `json:"imageSrc,omitempty"`
	ImagePublicID *string      `json:"imagePublicId,omitempty"`
	CategoryIDs   *[]uuid.UUID `json:"categoryIds,omitempty"`
	Featured      *bool        `json:"featured,omitempty"`
}

// CreateCategoryRequest contains parameters for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// UpdateCategoryRequest contains the updatable category fields.
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty"`
	Slug *string `json:"slug,omitempty"`
}

// CreateExperienceRequest contains parameters for creating an experience item.
type CreateExperienceRequest struct {
	Role      string `json:"role"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Summary   string `json:"summary"`
}

// UpdateExperienceRequest contains the updatable experience fields.
type UpdateExperienceRequest struct {
	Role      *string `json:"role,omitempty"`
	Company   *string `json:"company,omitempty"`
	Location  *string `json:"location,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	Summary   *string `json:"summary,omitempty"`
}

// CreateEducationRequest contains parameters for creating an education item.
type CreateEducationRequest struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartYear int    `json:"startYear"`
	EndYear   int    `json:"endYear"`
	Summary   string `json:"summary"`
}

// UpdateEducationRequest contains the updatable education fields.
type UpdateEducationRequest struct {
	School    *string `json:"school,omitempty"`
	Degree    *string `json:"degree,omitempty"`
	Field     *string `json:"field,omitempty"`
	StartYear *int    `json:"startYear,omitempty"`
	EndYear   *int    `json:"endYear,omitempty"`
	Summary   *string `json:"summary,omitempty"`
}

// CreateSkillRequest contains parameters for creating a skill.
type CreateSkillRequest struct {
	Name         string `json:"name"`
	Level        int    `json:"level"`
	IconSrc      string `json:"iconSrc"`
	IconPublicID string `json:"iconPublicId"`
}

// UpdateSkillRequest contains the updatable skill fields.
type UpdateSkillRequest struct {
	Name         *string `json:"name,omitempty"`
	Level        *int    `json:"level,omitempty"`
	IconSrc      *string `json:"iconSrc,omitempty"`
	IconPublicID *string `json:"iconPublicId,omitempty"`
}

// CreateTestimonialRequest contains parameters for creating a testimonial.
type CreateTestimonialRequest struct {
	Author         string `json:"author"`
	Role           string `json:"role"`
	Quote          string `json:"quote"`
	AvatarSrc      string `json:"avatarSrc"`
	AvatarPublicID string `json:"avatarPublicId"`
}

// UpdateTestimonialRequest contains the updatable testimonial fields.
type UpdateTestimonialRequest struct {
	Author         *string `json:"author,omitempty"`
	Role           *string `json:"role,omitempty"`
	Quote          *string `json:"quote,omitempty"`
	AvatarSrc      *string `json:"avatarSrc,omitempty"`
	AvatarPublicID *string `json:"avatarPublicId,omitempty"`
}

// CreateContactInfoRequest contains parameters for creating a contact entry.
type CreateContactInfoRequest struct {
	Kind  ContactKind `json:"kind"`
	Label string      `json:"label"`
	Value string      `json:"value"`
}

// UpdateContactInfoRequest contains the updatable contact entry fields.
type UpdateContactInfoRequest struct {
	Kind  *ContactKind `json:"kind,omitempty"`
	Label *string      `json:"label,omitempty"`
	Value *string      `json:"value,omitempty"`
}

// UpsertHeroRequest contains the hero content fields. The hero record is
// created on first write for its section.
type UpsertHeroRequest struct {
	Headline         *string `json:"headline,omitempty"`
	Tagline          *string `json:"tagline,omitempty"`
	PortraitSrc      *string `json:"portraitSrc,omitempty"`
	PortraitPublicID *string `json:"portraitPublicId,omitempty"`
	CTALabel         *string `json:"ctaLabel,omitempty"`
	CTAURL           *string `json:"ctaUrl,omitempty"`
}

// AddItemImageRequest contains parameters for attaching an image to an
// education item, experience item, or skills section gallery.
type AddItemImageRequest struct {
	Src           string `json:"src"`
	ImagePublicID string `json:"imagePublicId"`
	Caption       string `json:"caption"`
}

// UpdateSettingsRequest contains the updatable settings fields. Missing
// fields keep their current (or default) values.
type UpdateSettingsRequest struct {
	Theme            *string `json:"theme,omitempty"`
	SiteTitle        *string `json:"siteTitle,omitempty"`
	ShowPortrait     *bool   `json:"showPortrait,omitempty"`
	ResumeURL        *string `json:"resumeUrl,omitempty"`
	GlobalFontFamily *string `json:"globalFontFamily,omitempty"`
}

// LoginRequest contains the credential pair for Login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SubmitContactMessageRequest contains a visitor contact form submission.
type SubmitContactMessageRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Body  string `json:"body"`
}

// UploadRequest contains a validated binary payload for the blob store.
type UploadRequest struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}
