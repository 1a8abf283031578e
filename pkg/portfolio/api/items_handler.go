package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
)

// ItemsHandler handles update and delete on individual child records, which
// are addressed by their own identifier rather than through their section.
type ItemsHandler struct {
	service portfolio.Service
}

// NewItemsHandler creates a new items handler.
func NewItemsHandler(service portfolio.Service) *ItemsHandler {
	return &ItemsHandler{service: service}
}

// Register attaches the item routes directly to the API router; they live at
// the API root rather than under a shared prefix.
func (h *ItemsHandler) Register(r chi.Router) {
	r.Put("/text-blocks/{id}", h.UpdateTextBlock)
	r.Delete("/text-blocks/{id}", h.DeleteTextBlock)

	r.Put("/image-blocks/{id}", h.UpdateImageBlock)
	r.Delete("/image-blocks/{id}", h.DeleteImageBlock)

	r.Put("/blocks/{id}", h.UpdateContentBlock)
	r.Delete("/blocks/{id}", h.DeleteContentBlock)

	r.Get("/projects/{id}", h.GetProject)
	r.Put("/projects/{id}", h.UpdateProject)
	r.Delete("/projects/{id}", h.DeleteProject)

	r.Put("/experience/{id}", h.UpdateExperience)
	r.Delete("/experience/{id}", h.DeleteExperience)
	r.Post("/experience/{id}/images", h.AddExperienceImage)
	r.Delete("/experience-images/{id}", h.DeleteExperienceImage)

	r.Put("/education/{id}", h.UpdateEducation)
	r.Delete("/education/{id}", h.DeleteEducation)
	r.Post("/education/{id}/images", h.AddEducationImage)
	r.Delete("/education-images/{id}", h.DeleteEducationImage)

	r.Put("/skills/{id}", h.UpdateSkill)
	r.Delete("/skills/{id}", h.DeleteSkill)
	r.Delete("/skill-images/{id}", h.DeleteSkillImage)

	r.Put("/testimonials/{id}", h.UpdateTestimonial)
	r.Delete("/testimonials/{id}", h.DeleteTestimonial)

	r.Put("/contact-info/{id}", h.UpdateContactInfo)
	r.Delete("/contact-info/{id}", h.DeleteContactInfo)
}

func (h *ItemsHandler) UpdateTextBlock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.UpdateTextBlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	block, err := h.service.UpdateTextBlock(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, block)
}

func (h *ItemsHandler) DeleteTextBlock(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteTextBlock)
}

func (h *ItemsHandler) UpdateImageBlock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.UpdateImageBlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	block, err := h.service.UpdateImageBlock(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, block)
}

func (h *ItemsHandler) DeleteImageBlock(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteImageBlock)
}

func (h *ItemsHandler) UpdateContentBlock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.UpdateContentBlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	block, err := h.service.UpdateContentBlock(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, block)
}

func (h *ItemsHandler) DeleteContentBlock(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteContentBlock)
}

func (h *ItemsHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.service.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, project)
}

func (h *ItemsHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.UpdateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.service.UpdateProject(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, project)
}

func (h *ItemsHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteProject)
}

func (h *ItemsHandler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.UpdateExperienceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.service.UpdateExperience(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, item)
}

func (h *ItemsHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteExperience)
}

func (h *ItemsHandler) AddExperienceImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.AddItemImageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	img, err := h.service.AddExperienceImage(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, img)
}

func (h *ItemsHandler) DeleteExperienceImage(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteExperienceImage)
}

func (h *ItemsHandler) UpdateEducation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.UpdateEducationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.service.UpdateEducation(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, item)
}

func (h *ItemsHandler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteEducation)
}

func (h *ItemsHandler) AddEducationImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.AddItemImageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	img, err := h.service.AddEducationImage(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, img)
}

func (h *ItemsHandler) DeleteEducationImage(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteEducationImage)
}

func (h *ItemsHandler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.UpdateSkillRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	skill, err := h.service.UpdateSkill(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, skill)
}

func (h *ItemsHandler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteSkill)
}

func (h *ItemsHandler) DeleteSkillImage(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteSkillImage)
}

func (h *ItemsHandler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.UpdateTestimonialRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.service.UpdateTestimonial(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, item)
}

func (h *ItemsHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteTestimonial)
}

func (h *ItemsHandler) UpdateContactInfo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req portfolio.UpdateContactInfoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.service.UpdateContactInfo(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, item)
}

func (h *ItemsHandler) DeleteContactInfo(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteContactInfo)
}

func (h *ItemsHandler) deleteByID(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, id uuid.UUID) error) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := del(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
