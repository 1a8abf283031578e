package portfolio

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Per-entity CRUD for the ordered children of a section. Every create
// assigns order via the ordering engine; every delete leaves sibling order
// untouched (gaps are compacted by the next reorder) and best-effort cleans
// up any referenced blobs after the database write.

// requireSection surfaces NotFound for a missing parent before any write is
// attempted.
func (s *service) requireSection(ctx context.Context, sectionID uuid.UUID) error {
	_, err := s.repository.GetSection(ctx, sectionID)
	return err
}

// Text blocks

func (s *service) CreateTextBlock(ctx context.Context, sectionID uuid.UUID, req CreateTextBlockRequest) (*TextBlock, error) {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return nil, err
	}
	if req.Body == "" {
		return nil, invalidf("body is required")
	}

	order, err := nextOrder(ctx, s.repository, ChildScope(EntityTextBlocks, sectionID))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	block := &TextBlock{
		ID:        uuid.New(),
		SectionID: sectionID,
		Heading:   req.Heading,
		Body:      req.Body,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repository.CreateTextBlock(ctx, block); err != nil {
		return nil, &EntityError{Entity: "text_block", ID: block.ID, Op: "create", Err: err}
	}
	return block, nil
}

func (s *service) UpdateTextBlock(ctx context.Context, id uuid.UUID, req UpdateTextBlockRequest) (*TextBlock, error) {
	block, err := s.repository.GetTextBlock(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Heading != nil {
		block.Heading = *req.Heading
	}
	if req.Body != nil {
		block.Body = *req.Body
	}
	block.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateTextBlock(ctx, block); err != nil {
		return nil, &EntityError{Entity: "text_block", ID: id, Op: "update", Err: err}
	}
	return block, nil
}

func (s *service) DeleteTextBlock(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repository.GetTextBlock(ctx, id); err != nil {
		return err
	}
	if err := s.repository.DeleteTextBlock(ctx, id); err != nil {
		return &EntityError{Entity: "text_block", ID: id, Op: "delete", Err: err}
	}
	return nil
}

func (s *service) ReorderTextBlocks(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return err
	}
	return reorder(ctx, s.repository, ChildScope(EntityTextBlocks, sectionID), orderedIDs)
}

// Image blocks

func (s *service) CreateImageBlock(ctx context.Context, sectionID uuid.UUID, req CreateImageBlockRequest) (*ImageBlock, error) {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return nil, err
	}
	if req.Src == "" {
		return nil, invalidf("src is required")
	}

	order, err := nextOrder(ctx, s.repository, ChildScope(EntityImageBlocks, sectionID))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	block := &ImageBlock{
		ID:            uuid.New(),
		SectionID:     sectionID,
		Src:           req.Src,
		ImagePublicID: req.ImagePublicID,
		Alt:           req.Alt,
		Caption:       req.Caption,
		Order:         order,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repository.CreateImageBlock(ctx, block); err != nil {
		return nil, &EntityError{Entity: "image_block", ID: block.ID, Op: "create", Err: err}
	}
	return block, nil
}

func (s *service) UpdateImageBlock(ctx context.Context, id uuid.UUID, req UpdateImageBlockRequest) (*ImageBlock, error) {
	block, err := s.repository.GetImageBlock(ctx, id)
	if err != nil {
		return nil, err
	}

	var oldBlob string
	if req.Src != nil {
		block.Src = *req.Src
	}
	if req.ImagePublicID != nil && *req.ImagePublicID != block.ImagePublicID {
		oldBlob = block.ImagePublicID
		block.ImagePublicID = *req.ImagePublicID
	}
	if req.Alt != nil {
		block.Alt = *req.Alt
	}
	if req.Caption != nil {
		block.Caption = *req.Caption
	}
	block.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateImageBlock(ctx, block); err != nil {
		return nil, &EntityError{Entity: "image_block", ID: id, Op: "update", Err: err}
	}
	if oldBlob != "" {
		s.DeleteBlob(ctx, oldBlob)
	}
	return block, nil
}

func (s *service) DeleteImageBlock(ctx context.Context, id uuid.UUID) error {
	block, err := s.repository.GetImageBlock(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repository.DeleteImageBlock(ctx, id); err != nil {
		return &EntityError{Entity: "image_block", ID: id, Op: "delete", Err: err}
	}
	s.DeleteBlob(ctx, block.ImagePublicID)
	return nil
}

func (s *service) ReorderImageBlocks(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return err
	}
	return reorder(ctx, s.repository, ChildScope(EntityImageBlocks, sectionID), orderedIDs)
}

// Custom-section content blocks

func (s *service) CreateContentBlock(ctx context.Context, sectionID uuid.UUID, req CreateContentBlockRequest) (*ContentBlock, error) {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return nil, err
	}
	if !req.Kind.IsValid() {
		return nil, invalidf("unknown block kind %q", req.Kind)
	}

	order, err := nextOrder(ctx, s.repository, ChildScope(EntityContentBlocks, sectionID))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	block := &ContentBlock{
		ID:            uuid.New(),
		SectionID:     sectionID,
		Kind:          req.Kind,
		Heading:       req.Heading,
		Body:          req.Body,
		Src:           req.Src,
		ImagePublicID: req.ImagePublicID,
		Order:         order,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repository.CreateContentBlock(ctx, block); err != nil {
		return nil, &EntityError{Entity: "content_block", ID: block.ID, Op: "create", Err: err}
	}
	return block, nil
}

func (s *service) UpdateContentBlock(ctx context.Context, id uuid.UUID, req UpdateContentBlockRequest) (*ContentBlock, error) {
	block, err := s.repository.GetContentBlock(ctx, id)
	if err != nil {
		return nil, err
	}

	var oldBlob string
	if req.Kind != nil {
		if !req.Kind.IsValid() {
			return nil, invalidf("unknown block kind %q", *req.Kind)
		}
		block.Kind = *req.Kind
	}
	if req.Heading != nil {
		block.Heading = *req.Heading
	}
	if req.Body != nil {
		block.Body = *req.Body
	}
	if req.Src != nil {
		block.Src = *req.Src
	}
	if req.ImagePublicID != nil && *req.ImagePublicID != block.ImagePublicID {
		oldBlob = block.ImagePublicID
		block.ImagePublicID = *req.ImagePublicID
	}
	block.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateContentBlock(ctx, block); err != nil {
		return nil, &EntityError{Entity: "content_block", ID: id, Op: "update", Err: err}
	}
	if oldBlob != "" {
		s.DeleteBlob(ctx, oldBlob)
	}
	return block, nil
}

func (s *service) DeleteContentBlock(ctx context.Context, id uuid.UUID) error {
	block, err := s.repository.GetContentBlock(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repository.DeleteContentBlock(ctx, id); err != nil {
		return &EntityError{Entity: "content_block", ID: id, Op: "delete", Err: err}
	}
	s.DeleteBlob(ctx, block.ImagePublicID)
	return nil
}

func (s *service) ReorderContentBlocks(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return err
	}
	return reorder(ctx, s.repository, ChildScope(EntityContentBlocks, sectionID), orderedIDs)
}

// Projects

func (s *service) CreateProject(ctx context.Context, sectionID uuid.UUID, req CreateProjectRequest) (*ProjectItem, error) {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return nil, err
	}
	if req.Title == "" {
		return nil, invalidf("title is required")
	}

	order, err := nextOrder(ctx, s.repository, ChildScope(EntityProjects, sectionID))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &ProjectItem{
		ID:            uuid.New(),
		SectionID:     sectionID,
		Title:         req.Title,
		Description:   req.Description,
		RepoURL:       req.RepoURL,
		LiveURL:       req.LiveURL,
		ImageSrc:      req.ImageSrc,
		ImagePublicID: req.ImagePublicID,
		CategoryIDs:   req.CategoryIDs,
		Featured:      req.Featured,
		Order:         order,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if project.CategoryIDs == nil {
		project.CategoryIDs = []uuid.UUID{}
	}
	if err := s.repository.CreateProject(ctx, project); err != nil {
		return nil, &EntityError{Entity: "project", ID: project.ID, Op: "create", Err: err}
	}
	return project, nil
}

func (s *service) GetProject(ctx context.Context, id uuid.UUID) (*ProjectItem, error) {
	return s.repository.GetProject(ctx, id)
}

func (s *service) ListProjects(ctx context.Context, sectionID uuid.UUID) ([]*ProjectItem, error) {
	return s.repository.ListProjects(ctx, sectionID)
}

func (s *service) UpdateProject(ctx context.Context, id uuid.UUID, req UpdateProjectRequest) (*ProjectItem, error) {
	project, err := s.repository.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	var oldBlob string
	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.RepoURL != nil {
		project.RepoURL = *req.RepoURL
	}
	if req.LiveURL != nil {
		project.LiveURL = *req.LiveURL
	}
	if req.ImageSrc != nil {
		project.ImageSrc = *req.ImageSrc
	}
	if req.ImagePublicID != nil && *req.ImagePublicID != project.ImagePublicID {
		oldBlob = project.ImagePublicID
		project.ImagePublicID = *req.ImagePublicID
	}
	if req.CategoryIDs != nil {
		project.CategoryIDs = *req.CategoryIDs
	}
	if req.Featured != nil {
		project.Featured = *req.Featured
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateProject(ctx, project); err != nil {
		return nil, &EntityError{Entity: "project", ID: id, Op: "update", Err: err}
	}
	if oldBlob != "" {
		s.DeleteBlob(ctx, oldBlob)
	}
	return project, nil
}

func (s *service) DeleteProject(ctx context.Context, id uuid.UUID) error {
	project, err := s.repository.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repository.DeleteProject(ctx, id); err != nil {
		return &EntityError{Entity: "project", ID: id, Op: "delete", Err: err}
	}
	s.DeleteBlob(ctx, project.ImagePublicID)
	return nil
}

func (s *service) ReorderProjects(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return err
	}
	return reorder(ctx, s.repository, ChildScope(EntityProjects, sectionID), orderedIDs)
}

// Experience

func (s *service) CreateExperience(ctx context.Context, sectionID uuid.UUID, req CreateExperienceRequest) (*ExperienceItem, error) {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return nil, err
	}
	if req.Role == "" || req.Company == "" {
		return nil, invalidf("role and company are required")
	}

	order, err := nextOrder(ctx, s.repository, ChildScope(EntityExperience, sectionID))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &ExperienceItem{
		ID:        uuid.New(),
		SectionID: sectionID,
		Role:      req.Role,
		Company:   req.Company,
		Location:  req.Location,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Summary:   req.Summary,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repository.CreateExperience(ctx, item); err != nil {
		return nil, &EntityError{Entity: "experience", ID: item.ID, Op: "create", Err: err}
	}
	return item, nil
}

func (s *service) UpdateExperience(ctx context.Context, id uuid.UUID, req UpdateExperienceRequest) (*ExperienceItem, error) {
	item, err := s.repository.GetExperience(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Role != nil {
		item.Role = *req.Role
	}
	if req.Company != nil {
		item.Company = *req.Company
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.StartDate != nil {
		item.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		item.EndDate = *req.EndDate
	}
	if req.Summary != nil {
		item.Summary = *req.Summary
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateExperience(ctx, item); err != nil {
		return nil, &EntityError{Entity: "experience", ID: id, Op: "update", Err: err}
	}
	return item, nil
}

// DeleteExperience removes the item and its detail images; the image blobs
// are cleaned up best-effort after the database delete.
func (s *service) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repository.GetExperience(ctx, id); err != nil {
		return err
	}
	images, err := s.repository.ListItemImages(ctx, ImageOwnerExperience, id)
	if err != nil {
		return err
	}
	if err := s.repository.DeleteExperience(ctx, id); err != nil {
		return &EntityError{Entity: "experience", ID: id, Op: "delete", Err: err}
	}
	for _, img := range images {
		s.DeleteBlob(ctx, img.ImagePublicID)
	}
	return nil
}

func (s *service) ReorderExperience(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return err
	}
	return reorder(ctx, s.repository, ChildScope(EntityExperience, sectionID), orderedIDs)
}

func (s *service) AddExperienceImage(ctx context.Context, experienceID uuid.UUID, req AddItemImageRequest) (*ItemImage, error) {
	if _, err := s.repository.GetExperience(ctx, experienceID); err != nil {
		return nil, err
	}
	return s.addItemImage(ctx, ImageOwnerExperience, experienceID, req)
}

func (s *service) DeleteExperienceImage(ctx context.Context, imageID uuid.UUID) error {
	return s.deleteItemImage(ctx, imageID)
}

// Education

func (s *service) CreateEducation(ctx context.Context, sectionID uuid.UUID, req CreateEducationRequest) (*EducationItem, error) {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return nil, err
	}
	if req.School == "" {
		return nil, invalidf("school is required")
	}

	order, err := nextOrder(ctx, s.repository, ChildScope(EntityEducation, sectionID))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &EducationItem{
		ID:        uuid.New(),
		SectionID: sectionID,
		School:    req.School,
		Degree:    req.Degree,
		Field:     req.Field,
		StartYear: req.StartYear,
		EndYear:   req.EndYear,
		Summary:   req.Summary,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repository.CreateEducation(ctx, item); err != nil {
		return nil, &EntityError{Entity: "education", ID: item.ID, Op: "create", Err: err}
	}
	return item, nil
}

func (s *service) UpdateEducation(ctx context.Context, id uuid.UUID, req UpdateEducationRequest) (*EducationItem, error) {
	item, err := s.repository.GetEducation(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.School != nil {
		item.School = *req.School
	}
	if req.Degree != nil {
		item.Degree = *req.Degree
	}
	if req.Field != nil {
		item.Field = *req.Field
	}
	if req.StartYear != nil {
		item.StartYear = *req.StartYear
	}
	if req.EndYear != nil {
		item.EndYear = *req.EndYear
	}
	if req.Summary != nil {
		item.Summary = *req.Summary
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateEducation(ctx, item); err != nil {
		return nil, &EntityError{Entity: "education", ID: id, Op: "update", Err: err}
	}
	return item, nil
}

func (s *service) DeleteEducation(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repository.GetEducation(ctx, id); err != nil {
		return err
	}
	images, err := s.repository.ListItemImages(ctx, ImageOwnerEducation, id)
	if err != nil {
		return err
	}
	if err := s.repository.DeleteEducation(ctx, id); err != nil {
		return &EntityError{Entity: "education", ID: id, Op: "delete", Err: err}
	}
	for _, img := range images {
		s.DeleteBlob(ctx, img.ImagePublicID)
	}
	return nil
}

func (s *service) ReorderEducation(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return err
	}
	return reorder(ctx, s.repository, ChildScope(EntityEducation, sectionID), orderedIDs)
}

func (s *service) AddEducationImage(ctx context.Context, educationID uuid.UUID, req AddItemImageRequest) (*ItemImage, error) {
	if _, err := s.repository.GetEducation(ctx, educationID); err != nil {
		return nil, err
	}
	return s.addItemImage(ctx, ImageOwnerEducation, educationID, req)
}

func (s *service) DeleteEducationImage(ctx context.Context, imageID uuid.UUID) error {
	return s.deleteItemImage(ctx, imageID)
}

// Skills

func (s *service) CreateSkill(ctx context.Context, sectionID uuid.UUID, req CreateSkillRequest) (*SkillItem, error) {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, invalidf("name is required")
	}
	if req.Level < 0 || req.Level > 100 {
		return nil, invalidf("level must be between 0 and 100")
	}

	order, err := nextOrder(ctx, s.repository, ChildScope(EntitySkills, sectionID))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	skill := &SkillItem{
		ID:           uuid.New(),
		SectionID:    sectionID,
		Name:         req.Name,
		Level:        req.Level,
		IconSrc:      req.IconSrc,
		IconPublicID: req.IconPublicID,
		Order:        order,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repository.CreateSkill(ctx, skill); err != nil {
		return nil, &EntityError{Entity: "skill", ID: skill.ID, Op: "create", Err: err}
	}
	return skill, nil
}

func (s *service) UpdateSkill(ctx context.Context, id uuid.UUID, req UpdateSkillRequest) (*SkillItem, error) {
	skill, err := s.repository.GetSkill(ctx, id)
	if err != nil {
		return nil, err
	}

	var oldBlob string
	if req.Name != nil {
		skill.Name = *req.Name
	}
	if req.Level != nil {
		if *req.Level < 0 || *req.Level > 100 {
			return nil, invalidf("level must be between 0 and 100")
		}
		skill.Level = *req.Level
	}
	if req.IconSrc != nil {
		skill.IconSrc = *req.IconSrc
	}
	if req.IconPublicID != nil && *req.IconPublicID != skill.IconPublicID {
		oldBlob = skill.IconPublicID
		skill.IconPublicID = *req.IconPublicID
	}
	skill.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateSkill(ctx, skill); err != nil {
		return nil, &EntityError{Entity: "skill", ID: id, Op: "update", Err: err}
	}
	if oldBlob != "" {
		s.DeleteBlob(ctx, oldBlob)
	}
	return skill, nil
}

func (s *service) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	skill, err := s.repository.GetSkill(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repository.DeleteSkill(ctx, id); err != nil {
		return &EntityError{Entity: "skill", ID: id, Op: "delete", Err: err}
	}
	s.DeleteBlob(ctx, skill.IconPublicID)
	return nil
}

func (s *service) ReorderSkills(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return err
	}
	return reorder(ctx, s.repository, ChildScope(EntitySkills, sectionID), orderedIDs)
}

// AddSkillImage attaches a gallery image to a skills section itself rather
// than to an individual skill.
func (s *service) AddSkillImage(ctx context.Context, sectionID uuid.UUID, req AddItemImageRequest) (*ItemImage, error) {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return nil, err
	}
	return s.addItemImage(ctx, ImageOwnerSkills, sectionID, req)
}

func (s *service) DeleteSkillImage(ctx context.Context, imageID uuid.UUID) error {
	return s.deleteItemImage(ctx, imageID)
}

// Testimonials

func (s *service) CreateTestimonial(ctx context.Context, sectionID uuid.UUID, req CreateTestimonialRequest) (*TestimonialItem, error) {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return nil, err
	}
	if req.Author == "" || req.Quote == "" {
		return nil, invalidf("author and quote are required")
	}

	order, err := nextOrder(ctx, s.repository, ChildScope(EntityTestimonials, sectionID))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &TestimonialItem{
		ID:             uuid.New(),
		SectionID:      sectionID,
		Author:         req.Author,
		Role:           req.Role,
		Quote:          req.Quote,
		AvatarSrc:      req.AvatarSrc,
		AvatarPublicID: req.AvatarPublicID,
		Order:          order,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repository.CreateTestimonial(ctx, item); err != nil {
		return nil, &EntityError{Entity: "testimonial", ID: item.ID, Op: "create", Err: err}
	}
	return item, nil
}

func (s *service) UpdateTestimonial(ctx context.Context, id uuid.UUID, req UpdateTestimonialRequest) (*TestimonialItem, error) {
	item, err := s.repository.GetTestimonial(ctx, id)
	if err != nil {
		return nil, err
	}

	var oldBlob string
	if req.Author != nil {
		item.Author = *req.Author
	}
	if req.Role != nil {
		item.Role = *req.Role
	}
	if req.Quote != nil {
		item.Quote = *req.Quote
	}
	if req.AvatarSrc != nil {
		item.AvatarSrc = *req.AvatarSrc
	}
	if req.AvatarPublicID != nil && *req.AvatarPublicID != item.AvatarPublicID {
		oldBlob = item.AvatarPublicID
		item.AvatarPublicID = *req.AvatarPublicID
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateTestimonial(ctx, item); err != nil {
		return nil, &EntityError{Entity: "testimonial", ID: id, Op: "update", Err: err}
	}
	if oldBlob != "" {
		s.DeleteBlob(ctx, oldBlob)
	}
	return item, nil
}

func (s *service) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	item, err := s.repository.GetTestimonial(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repository.DeleteTestimonial(ctx, id); err != nil {
		return &EntityError{Entity: "testimonial", ID: id, Op: "delete", Err: err}
	}
	s.DeleteBlob(ctx, item.AvatarPublicID)
	return nil
}

func (s *service) ReorderTestimonials(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return err
	}
	return reorder(ctx, s.repository, ChildScope(EntityTestimonials, sectionID), orderedIDs)
}

// Contact info

func (s *service) CreateContactInfo(ctx context.Context, sectionID uuid.UUID, req CreateContactInfoRequest) (*ContactInfoItem, error) {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return nil, err
	}
	if !req.Kind.IsValid() {
		return nil, invalidf("unknown contact kind %q", req.Kind)
	}
	if req.Value == "" {
		return nil, invalidf("value is required")
	}

	order, err := nextOrder(ctx, s.repository, ChildScope(EntityContactInfo, sectionID))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &ContactInfoItem{
		ID:        uuid.New(),
		SectionID: sectionID,
		Kind:      req.Kind,
		Label:     req.Label,
		Value:     req.Value,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repository.CreateContactInfo(ctx, item); err != nil {
		return nil, &EntityError{Entity: "contact_info", ID: item.ID, Op: "create", Err: err}
	}
	return item, nil
}

func (s *service) UpdateContactInfo(ctx context.Context, id uuid.UUID, req UpdateContactInfoRequest) (*ContactInfoItem, error) {
	item, err := s.repository.GetContactInfo(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Kind != nil {
		if !req.Kind.IsValid() {
			return nil, invalidf("unknown contact kind %q", *req.Kind)
		}
		item.Kind = *req.Kind
	}
	if req.Label != nil {
		item.Label = *req.Label
	}
	if req.Value != nil {
		item.Value = *req.Value
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateContactInfo(ctx, item); err != nil {
		return nil, &EntityError{Entity: "contact_info", ID: id, Op: "update", Err: err}
	}
	return item, nil
}

func (s *service) DeleteContactInfo(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repository.GetContactInfo(ctx, id); err != nil {
		return err
	}
	if err := s.repository.DeleteContactInfo(ctx, id); err != nil {
		return &EntityError{Entity: "contact_info", ID: id, Op: "delete", Err: err}
	}
	return nil
}

func (s *service) ReorderContactInfo(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	if err := s.requireSection(ctx, sectionID); err != nil {
		return err
	}
	return reorder(ctx, s.repository, ChildScope(EntityContactInfo, sectionID), orderedIDs)
}

// Item images shared by education, experience and skills galleries.

func (s *service) addItemImage(ctx context.Context, kind ImageOwnerKind, ownerID uuid.UUID, req AddItemImageRequest) (*ItemImage, error) {
	if req.Src == "" {
		return nil, invalidf("src is required")
	}
	img := &ItemImage{
		ID:            uuid.New(),
		OwnerKind:     kind,
		OwnerID:       ownerID,
		Src:           req.Src,
		ImagePublicID: req.ImagePublicID,
		Caption:       req.Caption,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repository.AddItemImage(ctx, img); err != nil {
		return nil, &EntityError{Entity: "item_image", ID: img.ID, Op: "create", Err: err}
	}
	return img, nil
}

func (s *service) deleteItemImage(ctx context.Context, imageID uuid.UUID) error {
	img, err := s.repository.GetItemImage(ctx, imageID)
	if err != nil {
		return err
	}
	if err := s.repository.DeleteItemImage(ctx, imageID); err != nil {
		return &EntityError{Entity: "item_image", ID: imageID, Op: "delete", Err: err}
	}
	s.DeleteBlob(ctx, img.ImagePublicID)
	return nil
}
