package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfolio/portfolio-server/pkg/portfolio"
	"github.com/webfolio/portfolio-server/pkg/portfolio/api"
	"github.com/webfolio/portfolio-server/pkg/portfolio/repo/memory"
	memorystorage "github.com/webfolio/portfolio-server/pkg/portfolio/storage/memory"
)

type testServer struct {
	router http.Handler
	svc    portfolio.Service
	repo   *memory.Repository
}

func setupTestServer(t *testing.T) *testServer {
	repo := memory.New()
	svc, err := portfolio.New(
		portfolio.WithRepository(repo),
		portfolio.WithBlobStore("memory", memorystorage.New()),
	)
	require.NoError(t, err)

	return &testServer{
		router: api.NewRouter(svc, api.RouterConfig{}),
		svc:    svc,
		repo:   repo,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthEndpoint(t *testing.T) {
	srv := setupTestServer(t)

	rec := srv.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSectionLifecycle(t *testing.T) {
	srv := setupTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/sections", portfolio.CreateSectionRequest{
		Title: "About",
		Slug:  "about",
		Type:  portfolio.SectionTypeAbout,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	section := decodeBody[portfolio.Section](t, rec)
	assert.Equal(t, "about", section.Slug)

	rec = srv.do(t, http.MethodGet, "/api/sections", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sections := decodeBody[[]portfolio.Section](t, rec)
	require.Len(t, sections, 1)

	rec = srv.do(t, http.MethodGet, "/api/sections/"+section.ID.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	title := "About Me"
	rec = srv.do(t, http.MethodPut, "/api/sections/"+section.ID.String(), portfolio.UpdateSectionRequest{Title: &title})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[portfolio.Section](t, rec)
	assert.Equal(t, "About Me", updated.Title)

	rec = srv.do(t, http.MethodDelete, "/api/sections/"+section.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/sections/"+section.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorEnvelope(t *testing.T) {
	srv := setupTestServer(t)

	t.Run("malformed id is a 400", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/sections/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		resp := decodeBody[api.ErrorResponse](t, rec)
		assert.Equal(t, "invalid request", resp.Message)
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("missing section is a 404", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/sections/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		resp := decodeBody[api.ErrorResponse](t, rec)
		assert.Equal(t, "not found", resp.Message)
	})

	t.Run("duplicate slug is a 409", func(t *testing.T) {
		req := portfolio.CreateSectionRequest{Title: "X", Slug: "x", Type: portfolio.SectionTypeCustom}
		rec := srv.do(t, http.MethodPost, "/api/sections", req)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = srv.do(t, http.MethodPost, "/api/sections", req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed json is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/sections", bytes.NewReader([]byte("{nope")))
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	srv := setupTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/auth/login", portfolio.LoginRequest{
		Email:    "nobody@example.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	resp := decodeBody[api.ErrorResponse](t, rec)
	assert.Equal(t, "invalid credentials", resp.Message)
}

func TestReorderEndpoints(t *testing.T) {
	srv := setupTestServer(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for _, slug := range []string{"a", "b", "c"} {
		section, err := srv.svc.CreateSection(ctx, portfolio.CreateSectionRequest{
			Title: slug, Slug: slug, Type: portfolio.SectionTypeCustom,
		})
		require.NoError(t, err)
		ids = append(ids, section.ID)
	}

	t.Run("reorder succeeds", func(t *testing.T) {
		rec := srv.do(t, http.MethodPut, "/api/sections/reorder", portfolio.ReorderRequest{
			OrderedIDs: []uuid.UUID{ids[2], ids[0], ids[1]},
		})
		assert.Equal(t, http.StatusNoContent, rec.Code)

		sections, err := srv.svc.ListSections(ctx)
		require.NoError(t, err)
		assert.Equal(t, ids[2], sections[0].ID)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		rec := srv.do(t, http.MethodPut, "/api/sections/reorder", portfolio.ReorderRequest{
			OrderedIDs: []uuid.UUID{uuid.New()},
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("exhausted conflict retries are a 503", func(t *testing.T) {
		srv.repo.OnSetOrder = func() error { return portfolio.ErrConflict }
		defer func() { srv.repo.OnSetOrder = nil }()

		rec := srv.do(t, http.MethodPut, "/api/sections/reorder", portfolio.ReorderRequest{
			OrderedIDs: ids,
		})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		resp := decodeBody[api.ErrorResponse](t, rec)
		assert.Equal(t, "service unavailable", resp.Message)
	})
}

func TestChildRoutes(t *testing.T) {
	srv := setupTestServer(t)
	ctx := context.Background()

	section, err := srv.svc.CreateSection(ctx, portfolio.CreateSectionRequest{
		Title: "About", Slug: "about", Type: portfolio.SectionTypeAbout,
	})
	require.NoError(t, err)
	base := "/api/sections/" + section.ID.String()

	rec := srv.do(t, http.MethodPost, base+"/text-blocks", portfolio.CreateTextBlockRequest{Body: "hello"})
	require.Equal(t, http.StatusCreated, rec.Code)
	block := decodeBody[portfolio.TextBlock](t, rec)

	body := "updated"
	rec = srv.do(t, http.MethodPut, "/api/text-blocks/"+block.ID.String(), portfolio.UpdateTextBlockRequest{Body: &body})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[portfolio.TextBlock](t, rec)
	assert.Equal(t, "updated", updated.Body)

	rec = srv.do(t, http.MethodDelete, "/api/text-blocks/"+block.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/text-blocks/"+block.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContactEndpoints(t *testing.T) {
	srv := setupTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/contact", portfolio.SubmitContactMessageRequest{
		Name:  "Eva",
		Email: "eva@example.com",
		Body:  "Hi!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/messages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	messages := decodeBody[[]portfolio.ContactMessage](t, rec)
	require.Len(t, messages, 1)
	assert.Equal(t, "eva@example.com", messages[0].Email)
}

func TestSettingsEndpoints(t *testing.T) {
	srv := setupTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	setting := decodeBody[portfolio.Setting](t, rec)
	assert.Equal(t, "dark", setting.Theme)

	theme := "light"
	rec = srv.do(t, http.MethodPut, "/api/settings", portfolio.UpdateSettingsRequest{Theme: &theme})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[portfolio.Setting](t, rec)
	assert.Equal(t, "light", updated.Theme)
}

func multipartUpload(t *testing.T, fieldName, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, fileName))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func TestUploadEndpoints(t *testing.T) {
	srv := setupTestServer(t)

	t.Run("image upload returns a blob ref", func(t *testing.T) {
		body, contentType := multipartUpload(t, "file", "pic.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
		req := httptest.NewRequest(http.MethodPost, "/api/images/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		ref := decodeBody[portfolio.BlobRef](t, rec)
		assert.NotEmpty(t, ref.PublicID)
		assert.NotEmpty(t, ref.SecureURL)
	})

	t.Run("unsupported image type is a 400", func(t *testing.T) {
		body, contentType := multipartUpload(t, "file", "doc.txt", "text/plain", []byte("hi"))
		req := httptest.NewRequest(http.MethodPost, "/api/images/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing file field is a 400", func(t *testing.T) {
		body, contentType := multipartUpload(t, "wrong", "pic.png", "image/png", []byte{1})
		req := httptest.NewRequest(http.MethodPost, "/api/images/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("blob delete is always a 204", func(t *testing.T) {
		rec := srv.do(t, http.MethodDelete, "/api/uploads/images/does-not-exist.png", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestResumeUploadRateLimit(t *testing.T) {
	srv := setupTestServer(t)

	post := func() *httptest.ResponseRecorder {
		body, contentType := multipartUpload(t, "file", "resume.pdf", "application/pdf", []byte("%PDF-1.4"))
		req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", body)
		req.Header.Set("Content-Type", contentType)
		req.RemoteAddr = "203.0.113.9:4000"
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 5; i++ {
		rec := post()
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	rec := post()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	resp := decodeBody[api.ErrorResponse](t, rec)
	assert.Equal(t, "too many requests", resp.Message)
}
