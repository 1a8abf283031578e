package api

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
)

// ContentHandler serves the public read surface: the full site tree, the
// settings singleton, login, and contact form submission.
type ContentHandler struct {
	service portfolio.Service
}

// NewContentHandler creates a new content handler.
func NewContentHandler(service portfolio.Service) *ContentHandler {
	return &ContentHandler{service: service}
}

// GetSiteContent returns the whole nested content tree, every collection
// sorted by order ascending.
func (h *ContentHandler) GetSiteContent(w http.ResponseWriter, r *http.Request) {
	content, err := h.service.GetSiteContent(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, content)
}

// GetSettings returns the settings singleton, creating it with defaults on
// first read.
func (h *ContentHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, settings)
}

// UpdateSettings merges the provided fields into the singleton.
func (h *ContentHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req portfolio.UpdateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	settings, err := h.service.UpdateSettings(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, settings)
}

// Login verifies a credential pair and returns the stored identity.
func (h *ContentHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req portfolio.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	identity, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, identity)
}

// SubmitContactMessage stores a visitor message from the public contact form.
func (h *ContentHandler) SubmitContactMessage(w http.ResponseWriter, r *http.Request) {
	var req portfolio.SubmitContactMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	msg, err := h.service.SubmitContactMessage(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, msg)
}

// ListContactMessages returns stored contact messages, newest first.
func (h *ContentHandler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.ListContactMessages(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, messages)
}
