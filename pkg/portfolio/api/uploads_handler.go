package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
)

// UploadsHandler handles multipart uploads into the blob store. Type and
// size validation happens in the service before any storage traffic.
type UploadsHandler struct {
	service portfolio.Service
}

// NewUploadsHandler creates a new uploads handler.
func NewUploadsHandler(service portfolio.Service) *UploadsHandler {
	return &UploadsHandler{service: service}
}

// UploadImage accepts a multipart image upload under the "file" field.
func (h *UploadsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	req, err := readUpload(w, r, portfolio.MaxImageBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ref, err := h.service.UploadImage(r.Context(), *req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, ref)
}

// UploadResume accepts a multipart PDF upload under the "file" field. The
// route carries a sliding-window rate limit; see NewRouter.
func (h *UploadsHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	req, err := readUpload(w, r, portfolio.MaxResumeBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ref, err := h.service.UploadResume(r.Context(), *req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, ref)
}

// DeleteBlob removes a stored object by public identifier. Deletion is
// best-effort; the response is 204 regardless.
func (h *UploadsHandler) DeleteBlob(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "*")
	if publicID == "" {
		writeError(w, r, portfolio.ErrInvalidInput)
		return
	}

	h.service.DeleteBlob(r.Context(), publicID)
	w.WriteHeader(http.StatusNoContent)
}

// readUpload parses the multipart body and builds an UploadRequest. The body
// is capped a little above maxBytes so an oversized payload still reaches the
// service's own size check and comes back as a 400 rather than a connection
// reset.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (*portfolio.UploadRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)

	if err := r.ParseMultipartForm(maxBytes + 1<<20); err != nil {
		return nil, portfolio.ErrInvalidInput
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, portfolio.ErrInvalidInput
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, portfolio.ErrInvalidInput
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &portfolio.UploadRequest{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}
