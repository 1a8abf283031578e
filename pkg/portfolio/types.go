package portfolio

import (
	"time"

	"github.com/google/uuid"
)

// SectionType is the domain type for top-level section kinds.
type SectionType string

// Section type constants (typed).
const (
	SectionTypeHero       SectionType = "hero"
	SectionTypeAbout      SectionType = "about"
	SectionTypeProjects   SectionType = "projects"
	SectionTypeExperience SectionType = "experience"
	SectionTypeSkills     SectionType = "skills"
	SectionTypeEducation  SectionType = "education"
	SectionTypeContact    SectionType = "contact"
	SectionTypeCustom     SectionType = "custom"
)

// IsValid reports whether t is a known section type.
func (t SectionType) IsValid() bool {
	switch t {
	case SectionTypeHero, SectionTypeAbout, SectionTypeProjects,
		SectionTypeExperience, SectionTypeSkills, SectionTypeEducation,
		SectionTypeContact, SectionTypeCustom:
		return true
	}
	return false
}

// BlockKind distinguishes the payload carried by a custom-section content block.
type BlockKind string

const (
	BlockKindText  BlockKind = "text"
	BlockKindImage BlockKind = "image"
	BlockKindEmbed BlockKind = "embed"
)

// IsValid reports whether k is a known block kind.
func (k BlockKind) IsValid() bool {
	switch k {
	case BlockKindText, BlockKindImage, BlockKindEmbed:
		return true
	}
	return false
}

// ContactKind classifies a contact info entry.
type ContactKind string

const (
	ContactKindEmail   ContactKind = "email"
	ContactKindPhone   ContactKind = "phone"
	ContactKindLink    ContactKind = "link"
	ContactKindAddress ContactKind = "address"
)

// IsValid reports whether k is a known contact kind.
func (k ContactKind) IsValid() bool {
	switch k {
	case ContactKindEmail, ContactKindPhone, ContactKindLink, ContactKindAddress:
		return true
	}
	return false
}

// ImageOwnerKind identifies which entity an ItemImage belongs to.
type ImageOwnerKind string

const (
	ImageOwnerEducation  ImageOwnerKind = "education"
	ImageOwnerExperience ImageOwnerKind = "experience"
	ImageOwnerSkills     ImageOwnerKind = "skills"
)

// Section is a named, ordered, visible/hidden container of one type. The
// whole site is a list of sections; Order determines rendering sequence.
type Section struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Slug      string      `json:"slug"`
	Type      SectionType `json:"type"`
	Order     int         `json:"order"`
	Visible   bool        `json:"visible"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// TextBlock is an ordered rich-text child of a section.
type TextBlock struct {
	ID        uuid.UUID `json:"id"`
	SectionID uuid.UUID `json:"sectionId"`
	Heading   string    `json:"heading,omitempty"`
	Body      string    `json:"body"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ImageBlock is an ordered image child of a section. Src and ImagePublicID
// reference the external blob store.
type ImageBlock struct {
	ID            uuid.UUID `json:"id"`
	SectionID     uuid.UUID `json:"sectionId"`
	Src           string    `json:"src"`
	ImagePublicID string    `json:"imagePublicId,omitempty"`
	Alt           string    `json:"alt,omitempty"`
	Caption       string    `json:"caption,omitempty"`
	Order         int       `json:"order"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ContentBlock is the generic ordered block used by custom sections.
type ContentBlock struct {
	ID            uuid.UUID `json:"id"`
	SectionID     uuid.UUID `json:"sectionId"`
	Kind          BlockKind `json:"kind"`
	Heading       string    `json:"heading,omitempty"`
	Body          string    `json:"body,omitempty"`
	Src           string    `json:"src,omitempty"`
	ImagePublicID string    `json:"imagePublicId,omitempty"`
	Order         int       `json:"order"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProjectItem is an ordered project card. CategoryIDs holds zero or more
// Category identifiers; no foreign-key constraint is enforced by the store,
// referential cleanup happens on category deletion.
type ProjectItem struct {
	ID            uuid.UUID   `json:"id"`
	SectionID     uuid.UUID   `json:"sectionId"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	RepoURL       string      `json:"repoUrl,omitempty"`
	LiveURL       string      `json:"liveUrl,omitempty"`
	ImageSrc      string      `json:"imageSrc,omitempty"`
	ImagePublicID string      `json:"imagePublicId,omitempty"`
	CategoryIDs   []uuid.UUID `json:"categoryIds"`
	Featured      bool        `json:"featured"`
	Order         int         `json:"order"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// Category labels projects; referenced by ID from ProjectItem.CategoryIDs.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ExperienceItem is an ordered work-history entry. Images are loaded from the
// item-image collection with owner kind "experience".
type ExperienceItem struct {
	ID        uuid.UUID    `json:"id"`
	SectionID uuid.UUID    `json:"sectionId"`
	Role      string       `json:"role"`
	Company   string       `json:"company"`
	Location  string       `json:"location,omitempty"`
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate,omitempty"`
	Summary   string       `json:"summary,omitempty"`
	Order     int          `json:"order"`
	Images    []*ItemImage `json:"images,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// EducationItem is an ordered education entry. Images are loaded from the
// item-image collection with owner kind "education".
type EducationItem struct {
	ID        uuid.UUID    `json:"id"`
	SectionID uuid.UUID    `json:"sectionId"`
	School    string       `json:"school"`
	Degree    string       `json:"degree,omitempty"`
	Field     string       `json:"field,omitempty"`
	StartYear int          `json:"startYear,omitempty"`
	EndYear   int          `json:"endYear,omitempty"`
	Summary   string       `json:"summary,omitempty"`
	Order     int          `json:"order"`
	Images    []*ItemImage `json:"images,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// SkillItem is an ordered skill entry with an optional icon blob.
type SkillItem struct {
	ID           uuid.UUID `json:"id"`
	SectionID    uuid.UUID `json:"sectionId"`
	Name         string    `json:"name"`
	Level        int       `json:"level"`
	IconSrc      string    `json:"iconSrc,omitempty"`
	IconPublicID string    `json:"iconPublicId,omitempty"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TestimonialItem is an ordered quote with an optional avatar blob.
type TestimonialItem struct {
	ID             uuid.UUID `json:"id"`
	SectionID      uuid.UUID `json:"sectionId"`
	Author         string    `json:"author"`
	Role           string    `json:"role,omitempty"`
	Quote          string    `json:"quote"`
	AvatarSrc      string    `json:"avatarSrc,omitempty"`
	AvatarPublicID string    `json:"avatarPublicId,omitempty"`
	Order          int       `json:"order"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ContactInfoItem is an ordered contact detail (email, phone, link, address).
type ContactInfoItem struct {
	ID        uuid.UUID   `json:"id"`
	SectionID uuid.UUID   `json:"sectionId"`
	Kind      ContactKind `json:"kind"`
	Label     string      `json:"label,omitempty"`
	Value     string      `json:"value"`
	Order     int         `json:"order"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// HeroContent is the single content record of a hero section.
type HeroContent struct {
	ID               uuid.UUID `json:"id"`
	SectionID        uuid.UUID `json:"sectionId"`
	Headline         string    `json:"headline"`
	Tagline          string    `json:"tagline,omitempty"`
	PortraitSrc      string    `json:"portraitSrc,omitempty"`
	PortraitPublicID string    `json:"portraitPublicId,omitempty"`
	CTALabel         string    `json:"ctaLabel,omitempty"`
	CTAURL           string    `json:"ctaUrl,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ItemImage is an externally stored image attached to an education item,
// experience item, or skills section gallery.
type ItemImage struct {
	ID            uuid.UUID      `json:"id"`
	OwnerKind     ImageOwnerKind `json:"ownerKind"`
	OwnerID       uuid.UUID      `json:"ownerId"`
	Src           string         `json:"src"`
	ImagePublicID string         `json:"imagePublicId,omitempty"`
	Caption       string         `json:"caption,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// Setting is the singleton site configuration record. Exactly one is expected
// to exist; it is lazily created with defaults on first read or write.
type Setting struct {
	ID               uuid.UUID `json:"id"`
	Theme            string    `json:"theme"`
	SiteTitle        string    `json:"siteTitle"`
	ShowPortrait     bool      `json:"showPortrait"`
	ResumeURL        string    `json:"resumeUrl"`
	GlobalFontFamily string    `json:"globalFontFamily"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// DefaultSetting returns the documented settings defaults.
func DefaultSetting() Setting {
	return Setting{
		Theme:            "dark",
		SiteTitle:        "PORTFOLIO",
		ShowPortrait:     true,
		ResumeURL:        "/resume.pdf",
		GlobalFontFamily: "font-sans",
	}
}

// User is a stored admin credential. PasswordHash is a bcrypt hash and is
// never serialized.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the caller-visible result of a successful login.
type Identity struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	IsAdmin bool      `json:"isAdmin"`
}

// ContactMessage is a visitor submission from the public contact form.
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlobRef is the stable reference returned by an upload: an
// externally-addressable URL plus a deletion-capable public identifier.
type BlobRef struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Bytes     int64  `json:"bytes,omitempty"`
	Format    string `json:"format,omitempty"`
}

// SiteContent is the full nested content tree the front end renders from,
// sorted by order ascending at every level.
type SiteContent struct {
	Sections []*SectionContent `json:"sections"`
	Settings *Setting          `json:"settings"`
}

// SectionContent is a section plus every child collection it owns.
type SectionContent struct {
	Section      *Section           `json:"section"`
	Hero         *HeroContent       `json:"hero,omitempty"`
	TextBlocks   []*TextBlock       `json:"textBlocks,omitempty"`
	ImageBlocks  []*ImageBlock      `json:"imageBlocks,omitempty"`
	Blocks       []*ContentBlock    `json:"blocks,omitempty"`
	Projects     []*ProjectItem     `json:"projects,omitempty"`
	Experience   []*ExperienceItem  `json:"experience,omitempty"`
	Education    []*EducationItem   `json:"education,omitempty"`
	Skills       []*SkillItem       `json:"skills,omitempty"`
	SkillImages  []*ItemImage       `json:"skillImages,omitempty"`
	Testimonials []*TestimonialItem `json:"testimonials,omitempty"`
	ContactInfo  []*ContactInfoItem `json:"contactInfo,omitempty"`
}
