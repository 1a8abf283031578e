// Package memory provides an in-memory repository implementation for tests
// and development. Reads return copies so callers can never mutate shared
// state, and InTx gets snapshot semantics by cloning the whole state and
// swapping it in on commit.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
)

// Repository is an in-memory implementation of portfolio.Repository.
type Repository struct {
	mu    sync.RWMutex
	state *state

	// OnSetOrder, when non-nil, runs before every SetOrder write. Tests use
	// it to inject conflicts into reorder transactions.
	OnSetOrder func() error
}

type state struct {
	sections      map[uuid.UUID]*portfolio.Section
	textBlocks    map[uuid.UUID]*portfolio.TextBlock
	imageBlocks   map[uuid.UUID]*portfolio.ImageBlock
	contentBlocks map[uuid.UUID]*portfolio.ContentBlock
	projects      map[uuid.UUID]*portfolio.ProjectItem
	categories    map[uuid.UUID]*portfolio.Category
	experience    map[uuid.UUID]*portfolio.ExperienceItem
	education     map[uuid.UUID]*portfolio.EducationItem
	skills        map[uuid.UUID]*portfolio.SkillItem
	testimonials  map[uuid.UUID]*portfolio.TestimonialItem
	contactInfo   map[uuid.UUID]*portfolio.ContactInfoItem
	heroes        map[uuid.UUID]*portfolio.HeroContent // keyed by section ID
	itemImages    map[uuid.UUID]*portfolio.ItemImage
	users         map[uuid.UUID]*portfolio.User
	messages      []*portfolio.ContactMessage
	setting       *portfolio.Setting
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{state: newState()}
}

func newState() *state {
	return &state{
		sections:      make(map[uuid.UUID]*portfolio.Section),
		textBlocks:    make(map[uuid.UUID]*portfolio.TextBlock),
		imageBlocks:   make(map[uuid.UUID]*portfolio.ImageBlock),
		contentBlocks: make(map[uuid.UUID]*portfolio.ContentBlock),
		projects:      make(map[uuid.UUID]*portfolio.ProjectItem),
		categories:    make(map[uuid.UUID]*portfolio.Category),
		experience:    make(map[uuid.UUID]*portfolio.ExperienceItem),
		education:     make(map[uuid.UUID]*portfolio.EducationItem),
		skills:        make(map[uuid.UUID]*portfolio.SkillItem),
		testimonials:  make(map[uuid.UUID]*portfolio.TestimonialItem),
		contactInfo:   make(map[uuid.UUID]*portfolio.ContactInfoItem),
		heroes:        make(map[uuid.UUID]*portfolio.HeroContent),
		itemImages:    make(map[uuid.UUID]*portfolio.ItemImage),
		users:         make(map[uuid.UUID]*portfolio.User),
	}
}

func (st *state) clone() *state {
	c := newState()
	for id, v := range st.sections {
		c.sections[id] = copySection(v)
	}
	for id, v := range st.textBlocks {
		c.textBlocks[id] = copyTextBlock(v)
	}
	for id, v := range st.imageBlocks {
		c.imageBlocks[id] = copyImageBlock(v)
	}
	for id, v := range st.contentBlocks {
		c.contentBlocks[id] = copyContentBlock(v)
	}
	for id, v := range st.projects {
		c.projects[id] = copyProject(v)
	}
	for id, v := range st.categories {
		c.categories[id] = copyCategory(v)
	}
	for id, v := range st.experience {
		c.experience[id] = copyExperience(v)
	}
	for id, v := range st.education {
		c.education[id] = copyEducation(v)
	}
	for id, v := range st.skills {
		c.skills[id] = copySkill(v)
	}
	for id, v := range st.testimonials {
		c.testimonials[id] = copyTestimonial(v)
	}
	for id, v := range st.contactInfo {
		c.contactInfo[id] = copyContactInfo(v)
	}
	for id, v := range st.heroes {
		c.heroes[id] = copyHero(v)
	}
	for id, v := range st.itemImages {
		c.itemImages[id] = copyItemImage(v)
	}
	for id, v := range st.users {
		c.users[id] = copyUser(v)
	}
	c.messages = make([]*portfolio.ContactMessage, len(st.messages))
	for i, m := range st.messages {
		c.messages[i] = copyMessage(m)
	}
	if st.setting != nil {
		s := *st.setting
		c.setting = &s
	}
	return c
}

// InTx clones the state, runs fn against the clone, and swaps it in only when
// fn succeeds. A failed fn leaves the repository untouched.
func (r *Repository) InTx(ctx context.Context, fn func(portfolio.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &Repository{state: r.state.clone(), OnSetOrder: r.OnSetOrder}
	if err := fn(tx); err != nil {
		return err
	}
	r.state = tx.state
	return nil
}

// Ordering operations

type orderRef struct {
	id     uuid.UUID
	parent uuid.UUID
	order  *int
}

func (st *state) orderRefs(entity portfolio.OrderedEntity) []orderRef {
	var refs []orderRef
	switch entity {
	case portfolio.EntitySections:
		for _, v := range st.sections {
			refs = append(refs, orderRef{v.ID, uuid.Nil, &v.Order})
		}
	case portfolio.EntityTextBlocks:
		for _, v := range st.textBlocks {
			refs = append(refs, orderRef{v.ID, v.SectionID, &v.Order})
		}
	case portfolio.EntityImageBlocks:
		for _, v := range st.imageBlocks {
			refs = append(refs, orderRef{v.ID, v.SectionID, &v.Order})
		}
	case portfolio.EntityContentBlocks:
		for _, v := range st.contentBlocks {
			refs = append(refs, orderRef{v.ID, v.SectionID, &v.Order})
		}
	case portfolio.EntityProjects:
		for _, v := range st.projects {
			refs = append(refs, orderRef{v.ID, v.SectionID, &v.Order})
		}
	case portfolio.EntityExperience:
		for _, v := range st.experience {
			refs = append(refs, orderRef{v.ID, v.SectionID, &v.Order})
		}
	case portfolio.EntityEducation:
		for _, v := range st.education {
			refs = append(refs, orderRef{v.ID, v.SectionID, &v.Order})
		}
	case portfolio.EntitySkills:
		for _, v := range st.skills {
			refs = append(refs, orderRef{v.ID, v.SectionID, &v.Order})
		}
	case portfolio.EntityTestimonials:
		for _, v := range st.testimonials {
			refs = append(refs, orderRef{v.ID, v.SectionID, &v.Order})
		}
	case portfolio.EntityContactInfo:
		for _, v := range st.contactInfo {
			refs = append(refs, orderRef{v.ID, v.SectionID, &v.Order})
		}
	}
	return refs
}

func (r *Repository) MaxOrder(ctx context.Context, scope portfolio.OrderScope) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	maxOrder := -1
	for _, ref := range r.state.orderRefs(scope.Entity) {
		if ref.parent != scope.ParentID {
			continue
		}
		if *ref.order > maxOrder {
			maxOrder = *ref.order
		}
	}
	return maxOrder, nil
}

func (r *Repository) SetOrder(ctx context.Context, scope portfolio.OrderScope, id uuid.UUID, order int) (bool, error) {
	if r.OnSetOrder != nil {
		if err := r.OnSetOrder(); err != nil {
			return false, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ref := range r.state.orderRefs(scope.Entity) {
		if ref.id == id && ref.parent == scope.ParentID {
			*ref.order = order
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) Exists(ctx context.Context, entity portfolio.OrderedEntity, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ref := range r.state.orderRefs(entity) {
		if ref.id == id {
			return true, nil
		}
	}
	return false, nil
}

// Sections

func (r *Repository) CreateSection(ctx context.Context, s *portfolio.Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.sections[s.ID]; exists {
		return portfolio.ErrConflict
	}
	for _, existing := range r.state.sections {
		if existing.Slug == s.Slug {
			return portfolio.ErrConflict
		}
	}
	r.state.sections[s.ID] = copySection(s)
	return nil
}

func (r *Repository) GetSection(ctx context.Context, id uuid.UUID) (*portfolio.Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.state.sections[id]
	if !ok {
		return nil, portfolio.ErrNotFound
	}
	return copySection(s), nil
}

func (r *Repository) GetSectionBySlug(ctx context.Context, slug string) (*portfolio.Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.state.sections {
		if s.Slug == slug {
			return copySection(s), nil
		}
	}
	return nil, portfolio.ErrNotFound
}

func (r *Repository) ListSections(ctx context.Context) ([]*portfolio.Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*portfolio.Section, 0, len(r.state.sections))
	for _, s := range r.state.sections {
		out = append(out, copySection(s))
	}
	sortByOrder(out, func(s *portfolio.Section) (int, time.Time) { return s.Order, s.CreatedAt })
	return out, nil
}

func (r *Repository) UpdateSection(ctx context.Context, s *portfolio.Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.sections[s.ID]; !ok {
		return portfolio.ErrNotFound
	}
	for _, existing := range r.state.sections {
		if existing.ID != s.ID && existing.Slug == s.Slug {
			return portfolio.ErrConflict
		}
	}
	r.state.sections[s.ID] = copySection(s)
	return nil
}

// DeleteSection removes the section and every child record it owns, the same
// cascade the SQL schema declares with ON DELETE CASCADE.
func (r *Repository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.sections[id]; !ok {
		return portfolio.ErrNotFound
	}
	delete(r.state.sections, id)
	delete(r.state.heroes, id)
	for bid, b := range r.state.textBlocks {
		if b.SectionID == id {
			delete(r.state.textBlocks, bid)
		}
	}
	for bid, b := range r.state.imageBlocks {
		if b.SectionID == id {
			delete(r.state.imageBlocks, bid)
		}
	}
	for bid, b := range r.state.contentBlocks {
		if b.SectionID == id {
			delete(r.state.contentBlocks, bid)
		}
	}
	for pid, p := range r.state.projects {
		if p.SectionID == id {
			delete(r.state.projects, pid)
		}
	}
	for eid, e := range r.state.experience {
		if e.SectionID == id {
			r.deleteItemImagesLocked(portfolio.ImageOwnerExperience, eid)
			delete(r.state.experience, eid)
		}
	}
	for eid, e := range r.state.education {
		if e.SectionID == id {
			r.deleteItemImagesLocked(portfolio.ImageOwnerEducation, eid)
			delete(r.state.education, eid)
		}
	}
	for sid, s := range r.state.skills {
		if s.SectionID == id {
			delete(r.state.skills, sid)
		}
	}
	r.deleteItemImagesLocked(portfolio.ImageOwnerSkills, id)
	for tid, t := range r.state.testimonials {
		if t.SectionID == id {
			delete(r.state.testimonials, tid)
		}
	}
	for cid, c := range r.state.contactInfo {
		if c.SectionID == id {
			delete(r.state.contactInfo, cid)
		}
	}
	return nil
}

// Text blocks

func (r *Repository) CreateTextBlock(ctx context.Context, b *portfolio.TextBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.textBlocks[b.ID]; exists {
		return portfolio.ErrConflict
	}
	r.state.textBlocks[b.ID] = copyTextBlock(b)
	return nil
}

func (r *Repository) GetTextBlock(ctx context.Context, id uuid.UUID) (*portfolio.TextBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.state.textBlocks[id]
	if !ok {
		return nil, portfolio.ErrNotFound
	}
	return copyTextBlock(b), nil
}

func (r *Repository) ListTextBlocks(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.TextBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*portfolio.TextBlock
	for _, b := range r.state.textBlocks {
		if b.SectionID == sectionID {
			out = append(out, copyTextBlock(b))
		}
	}
	sortByOrder(out, func(b *portfolio.TextBlock) (int, time.Time) { return b.Order, b.CreatedAt })
	return out, nil
}

func (r *Repository) UpdateTextBlock(ctx context.Context, b *portfolio.TextBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.textBlocks[b.ID]; !ok {
		return portfolio.ErrNotFound
	}
	r.state.textBlocks[b.ID] = copyTextBlock(b)
	return nil
}

func (r *Repository) DeleteTextBlock(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.textBlocks[id]; !ok {
		return portfolio.ErrNotFound
	}
	delete(r.state.textBlocks, id)
	return nil
}

// Image blocks

func (r *Repository) CreateImageBlock(ctx context.Context, b *portfolio.ImageBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.imageBlocks[b.ID]; exists {
		return portfolio.ErrConflict
	}
	r.state.imageBlocks[b.ID] = copyImageBlock(b)
	return nil
}

func (r *Repository) GetImageBlock(ctx context.Context, id uuid.UUID) (*portfolio.ImageBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.state.imageBlocks[id]
	if !ok {
		return nil, portfolio.ErrNotFound
	}
	return copyImageBlock(b), nil
}

func (r *Repository) ListImageBlocks(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.ImageBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*portfolio.ImageBlock
	for _, b := range r.state.imageBlocks {
		if b.SectionID == sectionID {
			out = append(out, copyImageBlock(b))
		}
	}
	sortByOrder(out, func(b *portfolio.ImageBlock) (int, time.Time) { return b.Order, b.CreatedAt })
	return out, nil
}

func (r *Repository) UpdateImageBlock(ctx context.Context, b *portfolio.ImageBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.imageBlocks[b.ID]; !ok {
		return portfolio.ErrNotFound
	}
	r.state.imageBlocks[b.ID] = copyImageBlock(b)
	return nil
}

func (r *Repository) DeleteImageBlock(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.imageBlocks[id]; !ok {
		return portfolio.ErrNotFound
	}
	delete(r.state.imageBlocks, id)
	return nil
}

// Content blocks

func (r *Repository) CreateContentBlock(ctx context.Context, b *portfolio.ContentBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.contentBlocks[b.ID]; exists {
		return portfolio.ErrConflict
	}
	r.state.contentBlocks[b.ID] = copyContentBlock(b)
	return nil
}

func (r *Repository) GetContentBlock(ctx context.Context, id uuid.UUID) (*portfolio.ContentBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.state.contentBlocks[id]
	if !ok {
		return nil, portfolio.ErrNotFound
	}
	return copyContentBlock(b), nil
}

func (r *Repository) ListContentBlocks(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.ContentBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*portfolio.ContentBlock
	for _, b := range r.state.contentBlocks {
		if b.SectionID == sectionID {
			out = append(out, copyContentBlock(b))
		}
	}
	sortByOrder(out, func(b *portfolio.ContentBlock) (int, time.Time) { return b.Order, b.CreatedAt })
	return out, nil
}

func (r *Repository) UpdateContentBlock(ctx context.Context, b *portfolio.ContentBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.contentBlocks[b.ID]; !ok {
		return portfolio.ErrNotFound
	}
	r.state.contentBlocks[b.ID] = copyContentBlock(b)
	return nil
}

func (r *Repository) DeleteContentBlock(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.contentBlocks[id]; !ok {
		return portfolio.ErrNotFound
	}
	delete(r.state.contentBlocks, id)
	return nil
}

// Projects

func (r *Repository) CreateProject(ctx context.Context, p *portfolio.ProjectItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.projects[p.ID]; exists {
		return portfolio.ErrConflict
	}
	r.state.projects[p.ID] = copyProject(p)
	return nil
}

func (r *Repository) GetProject(ctx context.Context, id uuid.UUID) (*portfolio.ProjectItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.state.projects[id]
	if !ok {
		return nil, portfolio.ErrNotFound
	}
	return copyProject(p), nil
}

func (r *Repository) ListProjects(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.ProjectItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*portfolio.ProjectItem
	for _, p := range r.state.projects {
		if p.SectionID == sectionID {
			out = append(out, copyProject(p))
		}
	}
	sortByOrder(out, func(p *portfolio.ProjectItem) (int, time.Time) { return p.Order, p.CreatedAt })
	return out, nil
}

func (r *Repository) ListProjectsByCategory(ctx context.Context, categoryID uuid.UUID) ([]*portfolio.ProjectItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*portfolio.ProjectItem
	for _, p := range r.state.projects {
		for _, cid := range p.CategoryIDs {
			if cid == categoryID {
				out = append(out, copyProject(p))
				break
			}
		}
	}
	sortByOrder(out, func(p *portfolio.ProjectItem) (int, time.Time) { return p.Order, p.CreatedAt })
	return out, nil
}

func (r *Repository) UpdateProject(ctx context.Context, p *portfolio.ProjectItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.projects[p.ID]; !ok {
		return portfolio.ErrNotFound
	}
	r.state.projects[p.ID] = copyProject(p)
	return nil
}

func (r *Repository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.projects[id]; !ok {
		return portfolio.ErrNotFound
	}
	delete(r.state.projects, id)
	return nil
}

// Categories

func (r *Repository) CreateCategory(ctx context.Context, c *portfolio.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.categories[c.ID]; exists {
		return portfolio.ErrConflict
	}
	for _, existing := range r.state.categories {
		if existing.Slug == c.Slug {
			return portfolio.ErrConflict
		}
	}
	r.state.categories[c.ID] = copyCategory(c)
	return nil
}

func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*portfolio.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.state.categories[id]
	if !ok {
		return nil, portfolio.ErrNotFound
	}
	return copyCategory(c), nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]*portfolio.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*portfolio.Category, 0, len(r.state.categories))
	for _, c := range r.state.categories {
		out = append(out, copyCategory(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, c *portfolio.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.categories[c.ID]; !ok {
		return portfolio.ErrNotFound
	}
	for _, existing := range r.state.categories {
		if existing.ID != c.ID && existing.Slug == c.Slug {
			return portfolio.ErrConflict
		}
	}
	r.state.categories[c.ID] = copyCategory(c)
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.categories[id]; !ok {
		return portfolio.ErrNotFound
	}
	delete(r.state.categories, id)
	return nil
}

// Experience

func (r *Repository) CreateExperience(ctx context.Context, e *portfolio.ExperienceItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.experience[e.ID]; exists {
		return portfolio.ErrConflict
	}
	r.state.experience[e.ID] = copyExperience(e)
	return nil
}

func (r *Repository) GetExperience(ctx context.Context, id uuid.UUID) (*portfolio.ExperienceItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.state.experience[id]
	if !ok {
		return nil, portfolio.ErrNotFound
	}
	return copyExperience(e), nil
}

func (r *Repository) ListExperience(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.ExperienceItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*portfolio.ExperienceItem
	for _, e := range r.state.experience {
		if e.SectionID == sectionID {
			out = append(out, copyExperience(e))
		}
	}
	sortByOrder(out, func(e *portfolio.ExperienceItem) (int, time.Time) { return e.Order, e.CreatedAt })
	return out, nil
}

func (r *Repository) UpdateExperience(ctx context.Context, e *portfolio.ExperienceItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.experience[e.ID]; !ok {
		return portfolio.ErrNotFound
	}
	r.state.experience[e.ID] = copyExperience(e)
	return nil
}

func (r *Repository) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.experience[id]; !ok {
		return portfolio.ErrNotFound
	}
	delete(r.state.experience, id)
	r.deleteItemImagesLocked(portfolio.ImageOwnerExperience, id)
	return nil
}

// Education

func (r *Repository) CreateEducation(ctx context.Context, e *portfolio.EducationItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.education[e.ID]; exists {
		return portfolio.ErrConflict
	}
	r.state.education[e.ID] = copyEducation(e)
	return nil
}

func (r *Repository) GetEducation(ctx context.Context, id uuid.UUID) (*portfolio.EducationItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.state.education[id]
	if !ok {
		return nil, portfolio.ErrNotFound
	}
	return copyEducation(e), nil
}

func (r *Repository) ListEducation(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.EducationItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*portfolio.EducationItem
	for _, e := range r.state.education {
		if e.SectionID == sectionID {
			out = append(out, copyEducation(e))
		}
	}
	sortByOrder(out, func(e *portfolio.EducationItem) (int, time.Time) { return e.Order, e.CreatedAt })
	return out, nil
}

func (r *Repository) UpdateEducation(ctx context.Context, e *portfolio.EducationItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.education[e.ID]; !ok {
		return portfolio.ErrNotFound
	}
	r.state.education[e.ID] = copyEducation(e)
	return nil
}

func (r *Repository) DeleteEducation(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.education[id]; !ok {
		return portfolio.ErrNotFound
	}
	delete(r.state.education, id)
	r.deleteItemImagesLocked(portfolio.ImageOwnerEducation, id)
	return nil
}

// Skills

func (r *Repository) CreateSkill(ctx context.Context, s *portfolio.SkillItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.skills[s.ID]; exists {
		return portfolio.ErrConflict
	}
	r.state.skills[s.ID] = copySkill(s)
	return nil
}

func (r *Repository) GetSkill(ctx context.Context, id uuid.UUID) (*portfolio.SkillItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.state.skills[id]
	if !ok {
		return nil, portfolio.ErrNotFound
	}
	return copySkill(s), nil
}

func (r *Repository) ListSkills(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.SkillItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*portfolio.SkillItem
	for _, s := range r.state.skills {
		if s.SectionID == sectionID {
			out = append(out, copySkill(s))
		}
	}
	sortByOrder(out, func(s *portfolio.SkillItem) (int, time.Time) { return s.Order, s.CreatedAt })
	return out, nil
}

func (r *Repository) UpdateSkill(ctx context.Context, s *portfolio.SkillItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.skills[s.ID]; !ok {
		return portfolio.ErrNotFound
	}
	r.state.skills[s.ID] = copySkill(s)
	return nil
}

func (r *Repository) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.skills[id]; !ok {
		return portfolio.ErrNotFound
	}
	delete(r.state.skills, id)
	return nil
}

// Testimonials

func (r *Repository) CreateTestimonial(ctx context.Context, t *portfolio.TestimonialItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.testimonials[t.ID]; exists {
		return portfolio.ErrConflict
	}
	r.state.testimonials[t.ID] = copyTestimonial(t)
	return nil
}

func (r *Repository) GetTestimonial(ctx context.Context, id uuid.UUID) (*portfolio.TestimonialItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.state.testimonials[id]
	if !ok {
		return nil, portfolio.ErrNotFound
	}
	return copyTestimonial(t), nil
}

func (r *Repository) ListTestimonials(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.TestimonialItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*portfolio.TestimonialItem
	for _, t := range r.state.testimonials {
		if t.SectionID == sectionID {
			out = append(out, copyTestimonial(t))
		}
	}
	sortByOrder(out, func(t *portfolio.TestimonialItem) (int, time.Time) { return t.Order, t.CreatedAt })
	return out, nil
}

func (r *Repository) UpdateTestimonial(ctx context.Context, t *portfolio.TestimonialItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.testimonials[t.ID]; !ok {
		return portfolio.ErrNotFound
	}
	r.state.testimonials[t.ID] = copyTestimonial(t)
	return nil
}

func (r *Repository) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.testimonials[id]; !ok {
		return portfolio.ErrNotFound
	}
	delete(r.state.testimonials, id)
	return nil
}

// Contact info

func (r *Repository) CreateContactInfo(ctx context.Context, c *portfolio.ContactInfoItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.contactInfo[c.ID]; exists {
		return portfolio.ErrConflict
	}
	r.state.contactInfo[c.ID] = copyContactInfo(c)
	return nil
}

func (r *Repository) GetContactInfo(ctx context.Context, id uuid.UUID) (*portfolio.ContactInfoItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.state.contactInfo[id]
	if !ok {
		return nil, portfolio.ErrNotFound
	}
	return copyContactInfo(c), nil
}

func (r *Repository) ListContactInfo(ctx context.Context, sectionID uuid.UUID) ([]*portfolio.ContactInfoItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*portfolio.ContactInfoItem
	for _, c := range r.state.contactInfo {
		if c.SectionID == sectionID {
			out = append(out, copyContactInfo(c))
		}
	}
	sortByOrder(out, func(c *portfolio.ContactInfoItem) (int, time.Time) { return c.Order, c.CreatedAt })
	return out, nil
}

func (r *Repository) UpdateContactInfo(ctx context.Context, c *portfolio.ContactInfoItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.contactInfo[c.ID]; !ok {
		return portfolio.ErrNotFound
	}
	r.state.contactInfo[c.ID] = copyContactInfo(c)
	return nil
}

func (r *Repository) DeleteContactInfo(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.contactInfo[id]; !ok {
		return portfolio.ErrNotFound
	}
	delete(r.state.contactInfo, id)
	return nil
}

// Hero content

func (r *Repository) GetHeroBySection(ctx context.Context, sectionID uuid.UUID) (*portfolio.HeroContent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.state.heroes[sectionID]
	if !ok {
		return nil, portfolio.ErrNotFound
	}
	return copyHero(h), nil
}

func (r *Repository) UpsertHero(ctx context.Context, h *portfolio.HeroContent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.heroes[h.SectionID] = copyHero(h)
	return nil
}

func (r *Repository) DeleteHeroBySection(ctx context.Context, sectionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.state.heroes, sectionID)
	return nil
}

// Item images

func (r *Repository) AddItemImage(ctx context.Context, img *portfolio.ItemImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.state.itemImages[img.ID]; exists {
		return portfolio.ErrConflict
	}
	r.state.itemImages[img.ID] = copyItemImage(img)
	return nil
}

func (r *Repository) GetItemImage(ctx context.Context, id uuid.UUID) (*portfolio.ItemImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	img, ok := r.state.itemImages[id]
	if !ok {
		return nil, portfolio.ErrNotFound
	}
	return copyItemImage(img), nil
}

func (r *Repository) ListItemImages(ctx context.Context, kind portfolio.ImageOwnerKind, ownerID uuid.UUID) ([]*portfolio.ItemImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*portfolio.ItemImage
	for _, img := range r.state.itemImages {
		if img.OwnerKind == kind && img.OwnerID == ownerID {
			out = append(out, copyItemImage(img))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *Repository) DeleteItemImage(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.itemImages[id]; !ok {
		return portfolio.ErrNotFound
	}
	delete(r.state.itemImages, id)
	return nil
}

func (r *Repository) DeleteItemImagesByOwner(ctx context.Context, kind portfolio.ImageOwnerKind, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleteItemImagesLocked(kind, ownerID)
	return nil
}

func (r *Repository) deleteItemImagesLocked(kind portfolio.ImageOwnerKind, ownerID uuid.UUID) {
	for id, img := range r.state.itemImages {
		if img.OwnerKind == kind && img.OwnerID == ownerID {
			delete(r.state.itemImages, id)
		}
	}
}

// Settings

func (r *Repository) GetSetting(ctx context.Context) (*portfolio.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.state.setting == nil {
		return nil, portfolio.ErrNotFound
	}
	s := *r.state.setting
	return &s, nil
}

func (r *Repository) SaveSetting(ctx context.Context, s *portfolio.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *s
	r.state.setting = &c
	return nil
}

// Users

func (r *Repository) CreateUser(ctx context.Context, u *portfolio.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.state.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return portfolio.ErrConflict
		}
	}
	r.state.users[u.ID] = copyUser(u)
	return nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*portfolio.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.state.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, portfolio.ErrNotFound
}

func (r *Repository) UpdateUser(ctx context.Context, u *portfolio.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.users[u.ID]; !ok {
		return portfolio.ErrNotFound
	}
	r.state.users[u.ID] = copyUser(u)
	return nil
}

// Contact messages

func (r *Repository) CreateContactMessage(ctx context.Context, m *portfolio.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.messages = append(r.state.messages, copyMessage(m))
	return nil
}

func (r *Repository) ListContactMessages(ctx context.Context) ([]*portfolio.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*portfolio.ContactMessage, len(r.state.messages))
	for i, m := range r.state.messages {
		out[i] = copyMessage(m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// sortByOrder sorts by order ascending, creation time as the tiebreak.
func sortByOrder[T any](items []T, key func(T) (int, time.Time)) {
	sort.SliceStable(items, func(i, j int) bool {
		oi, ti := key(items[i])
		oj, tj := key(items[j])
		if oi != oj {
			return oi < oj
		}
		return ti.Before(tj)
	})
}

// Copy helpers so callers never share memory with stored records.

func copySection(s *portfolio.Section) *portfolio.Section {
	c := *s
	return &c
}

func copyTextBlock(b *portfolio.TextBlock) *portfolio.TextBlock {
	c := *b
	return &c
}

func copyImageBlock(b *portfolio.ImageBlock) *portfolio.ImageBlock {
	c := *b
	return &c
}

func copyContentBlock(b *portfolio.ContentBlock) *portfolio.ContentBlock {
	c := *b
	return &c
}

func copyProject(p *portfolio.ProjectItem) *portfolio.ProjectItem {
	c := *p
	if p.CategoryIDs != nil {
		c.CategoryIDs = append([]uuid.UUID{}, p.CategoryIDs...)
	}
	return &c
}

func copyCategory(cat *portfolio.Category) *portfolio.Category {
	c := *cat
	return &c
}

func copyExperience(e *portfolio.ExperienceItem) *portfolio.ExperienceItem {
	c := *e
	c.Images = nil
	return &c
}

func copyEducation(e *portfolio.EducationItem) *portfolio.EducationItem {
	c := *e
	c.Images = nil
	return &c
}

func copySkill(s *portfolio.SkillItem) *portfolio.SkillItem {
	c := *s
	return &c
}

func copyTestimonial(t *portfolio.TestimonialItem) *portfolio.TestimonialItem {
	c := *t
	return &c
}

func copyContactInfo(ci *portfolio.ContactInfoItem) *portfolio.ContactInfoItem {
	c := *ci
	return &c
}

func copyHero(h *portfolio.HeroContent) *portfolio.HeroContent {
	c := *h
	return &c
}

func copyItemImage(img *portfolio.ItemImage) *portfolio.ItemImage {
	c := *img
	return &c
}

func copyUser(u *portfolio.User) *portfolio.User {
	c := *u
	return &c
}

func copyMessage(m *portfolio.ContactMessage) *portfolio.ContactMessage {
	c := *m
	return &c
}
