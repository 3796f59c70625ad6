package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhasan/show-catalog/internal/handler"
	"github.com/mhasan/show-catalog/internal/model"
	"github.com/mhasan/show-catalog/internal/repository/sqlite"
	"github.com/mhasan/show-catalog/internal/service"
	"github.com/mhasan/show-catalog/internal/upload"
)

// newShowHandler wires a real service over an in-memory database and a temp
// upload directory — the same graph the server builds, minus HTTP transport.
func newShowHandler(t *testing.T) *handler.ShowHandler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	uploads, err := upload.New(t.TempDir(), nil, logger)
	require.NoError(t, err)

	svc := service.NewShowService(db, uploads, logger)
	return handler.NewShowHandler(svc, logger)
}

// multipartBody builds a multipart form with the given fields and, when
// imageName is non-empty, an image file part.
func multipartBody(t *testing.T, fields map[string]string, imageName string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageName != "" {
		part, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func postShow(t *testing.T, h *handler.ShowHandler, fields map[string]string, imageName string) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, fields, imageName)
	req := httptest.NewRequest(http.MethodPost, "/shows", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.HandleCreate(rr, req)
	return rr
}

func validFields() map[string]string {
	return map[string]string{
		"title":       "Dune",
		"description": "Desert epic",
		"category":    "movie",
	}
}

func decodeShow(t *testing.T, body *bytes.Buffer) model.Show {
	t.Helper()
	var show model.Show
	require.NoError(t, json.NewDecoder(body).Decode(&show))
	return show
}

func TestHandleCreate(t *testing.T) {
	h := newShowHandler(t)

	rr := postShow(t, h, validFields(), "")

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	show := decodeShow(t, rr.Body)
	assert.Positive(t, show.ID)
	assert.Equal(t, "Dune", show.Title)
	assert.Equal(t, "Desert epic", show.Description)
	assert.Equal(t, "movie", show.Category)
	assert.Nil(t, show.Image, "no upload means image must be JSON null")
}

func TestHandleCreate_WithImage(t *testing.T) {
	h := newShowHandler(t)

	rr := postShow(t, h, validFields(), "poster.jpg")

	assert.Equal(t, http.StatusCreated, rr.Code)

	show := decodeShow(t, rr.Body)
	require.NotNil(t, show.Image)
	assert.Regexp(t, `^/uploads/\d+-poster\.jpg$`, *show.Image)
}

func TestHandleCreate_ValidationErrors(t *testing.T) {
	h := newShowHandler(t)

	rr := postShow(t, h, map[string]string{
		"title":       "",
		"description": "",
		"category":    "documentary",
	}, "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Len(t, body.Errors, 3, "all violations reported together")
}

func TestHandleList(t *testing.T) {
	h := newShowHandler(t)

	// Empty catalog serializes as [], not null.
	req := httptest.NewRequest(http.MethodGet, "/shows", nil)
	rr := httptest.NewRecorder()
	h.HandleList(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String())

	postShow(t, h, validFields(), "")
	fields := validFields()
	fields["title"] = "Cowboy Bebop"
	fields["category"] = "anime"
	postShow(t, h, fields, "")

	rr = httptest.NewRecorder()
	h.HandleList(rr, httptest.NewRequest(http.MethodGet, "/shows", nil))

	var shows []model.Show
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&shows))
	require.Len(t, shows, 2)
	assert.Equal(t, "Dune", shows[0].Title)
	assert.Equal(t, "Cowboy Bebop", shows[1].Title)
}

func TestHandleGetByID(t *testing.T) {
	h := newShowHandler(t)

	created := decodeShow(t, postShow(t, h, validFields(), "").Body)

	req := httptest.NewRequest(http.MethodGet, "/shows/1", nil)
	req.SetPathValue("id", "1")
	rr := httptest.NewRecorder()
	h.HandleGetByID(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created, decodeShow(t, rr.Body))
}

func TestHandleGetByID_BadID(t *testing.T) {
	h := newShowHandler(t)

	// Non-integer ids are malformed requests (400), never 404 — and they
	// must not reach the store at all.
	req := httptest.NewRequest(http.MethodGet, "/shows/abc", nil)
	req.SetPathValue("id", "abc")
	rr := httptest.NewRecorder()
	h.HandleGetByID(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "ID must be an integer")
}

func TestHandleGetByID_Missing(t *testing.T) {
	h := newShowHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/shows/999", nil)
	req.SetPathValue("id", "999")
	rr := httptest.NewRecorder()
	h.HandleGetByID(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Show not found"}`, rr.Body.String())
}

func TestHandleUpdate_PreservesImage(t *testing.T) {
	h := newShowHandler(t)

	created := decodeShow(t, postShow(t, h, validFields(), "poster.jpg").Body)
	require.NotNil(t, created.Image)

	fields := validFields()
	fields["category"] = "serie"
	body, contentType := multipartBody(t, fields, "")
	req := httptest.NewRequest(http.MethodPut, "/shows/1", body)
	req.Header.Set("Content-Type", contentType)
	req.SetPathValue("id", "1")
	rr := httptest.NewRecorder()
	h.HandleUpdate(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	updated := decodeShow(t, rr.Body)
	assert.Equal(t, "serie", updated.Category)
	// The response reflects the persisted row: the image survives an
	// image-less update.
	require.NotNil(t, updated.Image)
	assert.Equal(t, *created.Image, *updated.Image)
}

func TestHandleUpdate_Missing(t *testing.T) {
	h := newShowHandler(t)

	body, contentType := multipartBody(t, validFields(), "")
	req := httptest.NewRequest(http.MethodPut, "/shows/999", body)
	req.Header.Set("Content-Type", contentType)
	req.SetPathValue("id", "999")
	rr := httptest.NewRecorder()
	h.HandleUpdate(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleDelete(t *testing.T) {
	h := newShowHandler(t)

	postShow(t, h, validFields(), "")

	req := httptest.NewRequest(http.MethodDelete, "/shows/1", nil)
	req.SetPathValue("id", "1")
	rr := httptest.NewRecorder()
	h.HandleDelete(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Show deleted successfully"}`, rr.Body.String())

	// The record is gone.
	req = httptest.NewRequest(http.MethodGet, "/shows/1", nil)
	req.SetPathValue("id", "1")
	rr = httptest.NewRecorder()
	h.HandleGetByID(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleDelete_BadID(t *testing.T) {
	h := newShowHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/shows/1.5", nil)
	req.SetPathValue("id", "1.5")
	rr := httptest.NewRecorder()
	h.HandleDelete(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
