package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huseynesedov/portfolio-backend/app/controllers"
	"github.com/huseynesedov/portfolio-backend/app/models"
	"github.com/huseynesedov/portfolio-backend/app/repositories"
	"github.com/huseynesedov/portfolio-backend/app/services"
	"github.com/huseynesedov/portfolio-backend/pkg/apperr"
	"github.com/huseynesedov/portfolio-backend/pkg/router"
	"github.com/huseynesedov/portfolio-backend/pkg/upload"
)

// memStore is a minimal in-memory ProductStore for endpoint tests.
type memStore struct {
	byID   map[string]*models.Product
	byName map[string]*models.Product
}

func newMemStore() *memStore {
	return &memStore{byID: map[string]*models.Product{}, byName: map[string]*models.Product{}}
}

func (s *memStore) All(ctx context.Context) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range s.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (s *memStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, apperr.NotFound("work")
	}
	return p, nil
}

func (s *memStore) FindByName(ctx context.Context, name string) (*models.Product, error) {
	return s.byName[name], nil
}

func (s *memStore) Insert(ctx context.Context, p *models.Product) error {
	id := fmt.Sprintf("id-%d", len(s.byID)+1)
	s.byID[id] = p
	s.byName[p.Name] = p
	return nil
}

func (s *memStore) Update(ctx context.Context, id string, patch repositories.ProductPatch) (*models.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, apperr.NotFound("work")
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	return p, nil
}

func (s *memStore) Delete(ctx context.Context, id string) (*models.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, apperr.NotFound("work")
	}
	delete(s.byID, id)
	delete(s.byName, p.Name)
	return p, nil
}

type memDisk struct{ files map[string][]byte }

func newMemDisk() *memDisk { return &memDisk{files: map[string][]byte{}} }

func (d *memDisk) PutStream(path string, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	d.files[path] = b
	return nil
}

func (d *memDisk) Get(path string) ([]byte, error) { return d.files[path], nil }

func (d *memDisk) Exists(path string) bool { _, ok := d.files[path]; return ok }

func (d *memDisk) Delete(path string) error {
	delete(d.files, path)
	return nil
}

func (d *memDisk) URL(path string) string { return "http://localhost:5002/" + path }

func (d *memDisk) MakeDirectory(string) error { return nil }

func (d *memDisk) Files(string) ([]string, error) { return nil, nil }

func newTestRouter(store *memStore, disk *memDisk) *router.Router {
	svc := services.NewProductService(store, disk)
	c := controllers.NewProductController(svc)

	r := router.New()
	works := r.Group("/api/works")
	works.Get("", "works.list", c.List)
	works.Post("/create", "works.create", c.Create)
	works.Get("/{worksID}", "works.show", c.Get)
	works.Put("/{worksID}", "works.update", c.Update)
	works.Delete("/{worksID}", "works.delete", c.Delete)
	return r
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, names := range files {
		for _, name := range names {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition",
				fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
			ct := "image/png"
			if strings.HasSuffix(name, ".txt") {
				ct = "text/plain"
			}
			h.Set("Content-Type", ct)
			fw, err := w.CreatePart(h)
			require.NoError(t, err)
			_, err = io.WriteString(fw, "data")
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func doRequest(t *testing.T, r *router.Router, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestCreateWorkEndpoint(t *testing.T) {
	store := newMemStore()
	disk := newMemDisk()
	r := newTestRouter(store, disk)

	body, ct := multipartBody(t,
		map[string]string{
			"name":             "Shop",
			"descriptionMain":  "An online shop",
			"descriptionItems": "Go,Redis",
			"githubUrl":        "https://github.com/huseynesedov/shop",
		},
		map[string][]string{
			upload.FieldPhotoMain: {"cover.png"},
			upload.FieldPhotos:    {"a.png", "b.png"},
		},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/works/create", body)
	req.Header.Set("Content-Type", ct)

	rec, env := doRequest(t, r, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, http.StatusCreated, env.Status)

	var created models.Product
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Shop", created.Name)
	assert.Equal(t, []string{"Go", "Redis"}, created.Description.Items)
	assert.Len(t, created.Photos.Items, 2)
	assert.True(t, strings.HasPrefix(created.Photos.Main, "http://localhost:5002/uploads/images/works/"),
		"main photo must be an absolute URL, got %q", created.Photos.Main)
	for _, item := range created.Photos.Items {
		assert.True(t, strings.HasPrefix(item, "http://localhost:5002/uploads/images/works/"),
			"gallery photo must be an absolute URL, got %q", item)
	}
	assert.Len(t, disk.files, 3)
}

func TestCreateWorkEndpointRejectsTextFile(t *testing.T) {
	store := newMemStore()
	disk := newMemDisk()
	r := newTestRouter(store, disk)

	body, ct := multipartBody(t,
		map[string]string{"name": "Shop"},
		map[string][]string{upload.FieldPhotoMain: {"notes.txt"}},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/works/create", body)
	req.Header.Set("Content-Type", ct)

	rec, env := doRequest(t, r, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.NotEmpty(t, env.Message)
	assert.Empty(t, disk.files, "rejected batches never reach storage")
}

func TestCreateWorkEndpointDuplicate(t *testing.T) {
	store := newMemStore()
	existing := &models.Product{Name: "Shop"}
	store.byID["id-1"] = existing
	store.byName["Shop"] = existing
	disk := newMemDisk()
	r := newTestRouter(store, disk)

	body, ct := multipartBody(t,
		map[string]string{"name": "Shop"},
		map[string][]string{upload.FieldPhotoMain: {"cover.png"}},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/works/create", body)
	req.Header.Set("Content-Type", ct)

	rec, _ := doRequest(t, r, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, disk.files)
}

func TestListWorksEndpoint(t *testing.T) {
	store := newMemStore()
	store.byID["id-1"] = &models.Product{Name: "Shop"}
	r := newTestRouter(store, newMemDisk())

	rec, env := doRequest(t, r, httptest.NewRequest(http.MethodGet, "/api/works", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var works []models.Product
	require.NoError(t, json.Unmarshal(env.Data, &works))
	require.Len(t, works, 1)
	assert.Equal(t, "Shop", works[0].Name)
}

func TestGetWorkEndpointResolvesPhotoURLs(t *testing.T) {
	store := newMemStore()
	store.byID["id-1"] = &models.Product{
		Name: "Shop",
		Photos: models.Photos{
			Main:  "uploads/images/works/image_1-2.png",
			Items: []string{"uploads/images/works/image_3-4.png"},
		},
	}
	r := newTestRouter(store, newMemDisk())

	rec, env := doRequest(t, r, httptest.NewRequest(http.MethodGet, "/api/works/id-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var work models.Product
	require.NoError(t, json.Unmarshal(env.Data, &work))
	assert.Equal(t, "http://localhost:5002/uploads/images/works/image_1-2.png", work.Photos.Main)
	assert.Equal(t, []string{"http://localhost:5002/uploads/images/works/image_3-4.png"}, work.Photos.Items)
}

func TestGetWorkEndpointNotFound(t *testing.T) {
	r := newTestRouter(newMemStore(), newMemDisk())

	rec, env := doRequest(t, r, httptest.NewRequest(http.MethodGet, "/api/works/5f0000000000000000000000", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, env.Message, "not found")
}

func TestDeleteWorkEndpoint(t *testing.T) {
	store := newMemStore()
	p := &models.Product{Name: "Shop", Photos: models.Photos{Main: "uploads/images/works/m.png"}}
	store.byID["id-1"] = p
	store.byName["Shop"] = p
	disk := newMemDisk()
	disk.files["uploads/images/works/m.png"] = []byte("x")
	r := newTestRouter(store, disk)

	rec, _ := doRequest(t, r, httptest.NewRequest(http.MethodDelete, "/api/works/id-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.byID)
	assert.Empty(t, disk.files)
}
