package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
)

// SectionsHandler handles the section routes and the nested child-creation
// and reorder routes scoped to one section.
type SectionsHandler struct {
	service portfolio.Service
}

// NewSectionsHandler creates a new sections handler.
func NewSectionsHandler(service portfolio.Service) *SectionsHandler {
	return &SectionsHandler{service: service}
}

// Routes returns the routes for sections.
func (h *SectionsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListSections)
	r.Post("/", h.CreateSection)
	r.Put("/reorder", h.ReorderSections)

	r.Route("/{sectionID}", func(r chi.Router) {
		r.Get("/", h.GetSection)
		r.Put("/", h.UpdateSection)
		r.Delete("/", h.DeleteSection)

		r.Get("/hero", h.GetHero)
		r.Put("/hero", h.UpsertHero)

		r.Post("/text-blocks", h.CreateTextBlock)
		r.Put("/text-blocks/reorder", h.reorderChild(h.service.ReorderTextBlocks))

		r.Post("/image-blocks", h.CreateImageBlock)
		r.Put("/image-blocks/reorder", h.reorderChild(h.service.ReorderImageBlocks))

		r.Post("/blocks", h.CreateContentBlock)
		r.Put("/blocks/reorder", h.reorderChild(h.service.ReorderContentBlocks))

		r.Get("/projects", h.ListProjects)
		r.Post("/projects", h.CreateProject)
		r.Put("/projects/reorder", h.reorderChild(h.service.ReorderProjects))

		r.Post("/experience", h.CreateExperience)
		r.Put("/experience/reorder", h.reorderChild(h.service.ReorderExperience))

		r.Post("/education", h.CreateEducation)
		r.Put("/education/reorder", h.reorderChild(h.service.ReorderEducation))

		r.Post("/skills", h.CreateSkill)
		r.Put("/skills/reorder", h.reorderChild(h.service.ReorderSkills))
		r.Post("/skill-images", h.AddSkillImage)

		r.Post("/testimonials", h.CreateTestimonial)
		r.Put("/testimonials/reorder", h.reorderChild(h.service.ReorderTestimonials))

		r.Post("/contact-info", h.CreateContactInfo)
		r.Put("/contact-info/reorder", h.reorderChild(h.service.ReorderContactInfo))
	})

	return r
}

func (h *SectionsHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.service.ListSections(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, sections)
}

func (h *SectionsHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req portfolio.CreateSectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	section, err := h.service.CreateSection(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, section)
}

func (h *SectionsHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	section, err := h.service.GetSection(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, section)
}

func (h *SectionsHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.UpdateSectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	section, err := h.service.UpdateSection(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, section)
}

func (h *SectionsHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.DeleteSection(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SectionsHandler) ReorderSections(w http.ResponseWriter, r *http.Request) {
	var req portfolio.ReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.ReorderSections(r.Context(), req.OrderedIDs); err != nil {
		writeReorderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// reorderChild adapts one of the per-entity reorder operations into a
// handler; they all share the same request shape and failure mapping.
func (h *SectionsHandler) reorderChild(reorder func(context.Context, uuid.UUID, []uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionID, err := pathID(r, "sectionID")
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req portfolio.ReorderRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		if err := reorder(r.Context(), sectionID, req.OrderedIDs); err != nil {
			writeReorderError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Hero content

func (h *SectionsHandler) GetHero(w http.ResponseWriter, r *http.Request) {
	sectionID, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	hero, err := h.service.GetHero(r.Context(), sectionID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, hero)
}

func (h *SectionsHandler) UpsertHero(w http.ResponseWriter, r *http.Request) {
	sectionID, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.UpsertHeroRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	hero, err := h.service.UpsertHero(r.Context(), sectionID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, hero)
}

// Child creation

func (h *SectionsHandler) CreateTextBlock(w http.ResponseWriter, r *http.Request) {
	sectionID, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.CreateTextBlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	block, err := h.service.CreateTextBlock(r.Context(), sectionID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, block)
}

func (h *SectionsHandler) CreateImageBlock(w http.ResponseWriter, r *http.Request) {
	sectionID, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.CreateImageBlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	block, err := h.service.CreateImageBlock(r.Context(), sectionID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, block)
}

func (h *SectionsHandler) CreateContentBlock(w http.ResponseWriter, r *http.Request) {
	sectionID, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.CreateContentBlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	block, err := h.service.CreateContentBlock(r.Context(), sectionID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, block)
}

func (h *SectionsHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	sectionID, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	projects, err := h.service.ListProjects(r.Context(), sectionID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, projects)
}

func (h *SectionsHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	sectionID, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.CreateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.service.CreateProject(r.Context(), sectionID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, project)
}

func (h *SectionsHandler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	sectionID, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.CreateExperienceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.service.CreateExperience(r.Context(), sectionID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}

func (h *SectionsHandler) CreateEducation(w http.ResponseWriter, r *http.Request) {
	sectionID, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.CreateEducationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.service.CreateEducation(r.Context(), sectionID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}

func (h *SectionsHandler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	sectionID, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.CreateSkillRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	skill, err := h.service.CreateSkill(r.Context(), sectionID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, skill)
}

func (h *SectionsHandler) AddSkillImage(w http.ResponseWriter, r *http.Request) {
	sectionID, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.AddItemImageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	img, err := h.service.AddSkillImage(r.Context(), sectionID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, img)
}

func (h *SectionsHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	sectionID, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.CreateTestimonialRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.service.CreateTestimonial(r.Context(), sectionID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}

func (h *SectionsHandler) CreateContactInfo(w http.ResponseWriter, r *http.Request) {
	sectionID, err := pathID(r, "sectionID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.CreateContactInfoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.service.CreateContactInfo(r.Context(), sectionID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}
