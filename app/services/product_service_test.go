package services_test

import (
	"bytes"
	"context"
	"errors"
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

	"github.com/huseynesedov/portfolio-backend/app/models"
	"github.com/huseynesedov/portfolio-backend/app/repositories"
	"github.com/huseynesedov/portfolio-backend/app/services"
	"github.com/huseynesedov/portfolio-backend/pkg/apperr"
	"github.com/huseynesedov/portfolio-backend/pkg/upload"
)

// fakeStore is an in-memory ProductStore with injectable failures.
type fakeStore struct {
	byName    map[string]*models.Product
	byID      map[string]*models.Product
	insertErr error
	updateErr error

	lastPatch repositories.ProductPatch
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byName: map[string]*models.Product{},
		byID:   map[string]*models.Product{},
	}
}

func (s *fakeStore) All(ctx context.Context) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range s.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, apperr.NotFound("work")
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) FindByName(ctx context.Context, name string) (*models.Product, error) {
	p, ok := s.byName[name]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) Insert(ctx context.Context, p *models.Product) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	if _, exists := s.byName[p.Name]; exists {
		return apperr.DuplicateName(p.Name)
	}
	id := fmt.Sprintf("id-%d", len(s.byID)+1)
	s.byName[p.Name] = p
	s.byID[id] = p
	return nil
}

func (s *fakeStore) Update(ctx context.Context, id string, patch repositories.ProductPatch) (*models.Product, error) {
	s.lastPatch = patch
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	p, ok := s.byID[id]
	if !ok {
		return nil, apperr.NotFound("work")
	}
	if patch.Name != nil {
		delete(s.byName, p.Name)
		p.Name = *patch.Name
		s.byName[p.Name] = p
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.PhotoMain != nil {
		p.Photos.Main = *patch.PhotoMain
	}
	if patch.PhotoItems != nil {
		p.Photos.Items = patch.PhotoItems
	}
	if patch.WebURL.Set {
		p.WebURL = patch.WebURL.Value
	}
	if patch.GithubURL.Set {
		p.GithubURL = patch.GithubURL.Value
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) Delete(ctx context.Context, id string) (*models.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, apperr.NotFound("work")
	}
	delete(s.byID, id)
	delete(s.byName, p.Name)
	return p, nil
}

// fakeDisk is an in-memory storage disk recording deletions.
type fakeDisk struct {
	files     map[string][]byte
	deleteErr error
	putErr    error
	putOK     int // writes that succeed before putErr fires
}

func newFakeDisk() *fakeDisk { return &fakeDisk{files: map[string][]byte{}} }

func (d *fakeDisk) PutStream(path string, r io.Reader) error {
	if d.putErr != nil && len(d.files) >= d.putOK {
		return d.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	d.files[path] = b
	return nil
}

func (d *fakeDisk) Get(path string) ([]byte, error) { return d.files[path], nil }

func (d *fakeDisk) Exists(path string) bool { _, ok := d.files[path]; return ok }

func (d *fakeDisk) Delete(path string) error {
	if d.deleteErr != nil {
		return d.deleteErr
	}
	delete(d.files, path)
	return nil
}

func (d *fakeDisk) URL(path string) string { return "http://localhost:5002/" + path }

func (d *fakeDisk) MakeDirectory(string) error { return nil }

func (d *fakeDisk) Files(string) ([]string, error) { return nil, nil }

func batchWith(t *testing.T, mainName string, itemNames ...string) upload.Batch {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	writeFile := func(field, name string) {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
		h.Set("Content-Type", "image/png")
		fw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = io.WriteString(fw, "pngdata")
		require.NoError(t, err)
	}
	if mainName != "" {
		writeFile(upload.FieldPhotoMain, mainName)
	}
	for _, name := range itemNames {
		writeFile(upload.FieldPhotos, name)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	batch, err := upload.ParseBatch(req)
	require.NoError(t, err)
	return batch
}

func TestCreateWork(t *testing.T) {
	store := newFakeStore()
	disk := newFakeDisk()
	svc := services.NewProductService(store, disk)

	in := services.ProductInput{
		Name:             "  Portfolio Site  ",
		DescriptionMain:  "My main project",
		DescriptionItems: "Go, React , ,MongoDB",
		WebURL:           "   ",
		GithubURL:        "https://github.com/huseynesedov/site",
	}

	p, err := svc.Create(context.Background(), in, batchWith(t, "cover.png", "a.png", "b.png"))
	require.NoError(t, err)

	assert.Equal(t, "Portfolio Site", p.Name)
	assert.Equal(t, "My main project", p.Description.Main)
	assert.Equal(t, []string{"Go", "React", "MongoDB"}, p.Description.Items)
	assert.Nil(t, p.WebURL, "blank webUrl should be stored as null")
	require.NotNil(t, p.GithubURL)
	assert.Equal(t, "https://github.com/huseynesedov/site", *p.GithubURL)

	assert.True(t, strings.HasPrefix(p.Photos.Main, upload.WorksDir+"/"))
	assert.Len(t, p.Photos.Items, 2)
	assert.Len(t, disk.files, 3, "all three images should be on the disk")
}

func TestCreateWorkRequiresName(t *testing.T) {
	store := newFakeStore()
	disk := newFakeDisk()
	svc := services.NewProductService(store, disk)

	_, err := svc.Create(context.Background(), services.ProductInput{Name: "  "}, batchWith(t, "cover.png"))
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Empty(t, disk.files, "nothing should be placed before validation passes")
}

func TestCreateWorkRequiresMainPhoto(t *testing.T) {
	svc := services.NewProductService(newFakeStore(), newFakeDisk())

	_, err := svc.Create(context.Background(), services.ProductInput{Name: "Site"}, batchWith(t, "", "a.png"))
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestCreateWorkDuplicateNameRollsBack(t *testing.T) {
	store := newFakeStore()
	store.byName["Site"] = &models.Product{Name: "Site"}
	disk := newFakeDisk()
	svc := services.NewProductService(store, disk)

	_, err := svc.Create(context.Background(), services.ProductInput{Name: "Site"}, batchWith(t, "cover.png", "a.png"))
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
	assert.Empty(t, disk.files, "placed files must be removed after a duplicate rejection")
}

func TestCreateWorkPersistenceFailureRollsBack(t *testing.T) {
	store := newFakeStore()
	store.insertErr = apperr.Persistence("insert", errors.New("mongo down"))
	disk := newFakeDisk()
	svc := services.NewProductService(store, disk)

	_, err := svc.Create(context.Background(), services.ProductInput{Name: "Site"}, batchWith(t, "cover.png"))
	assert.Equal(t, http.StatusInternalServerError, apperr.StatusOf(err))
	assert.Empty(t, disk.files, "placed files must be removed when the insert fails")
}

func TestCreateWorkPlacementFailureRollsBack(t *testing.T) {
	store := newFakeStore()
	disk := newFakeDisk()
	disk.putErr = errors.New("disk full")
	disk.putOK = 2
	svc := services.NewProductService(store, disk)

	_, err := svc.Create(context.Background(), services.ProductInput{Name: "Site"}, batchWith(t, "cover.png", "a.png", "b.png"))
	assert.Equal(t, http.StatusInternalServerError, apperr.StatusOf(err))
	assert.Empty(t, disk.files, "earlier placements must be removed when one write fails")
	assert.Empty(t, store.byName, "nothing should be persisted")
}

func TestUpdateWorkPartialPatch(t *testing.T) {
	store := newFakeStore()
	web := "https://old.example"
	existing := &models.Product{
		Name:        "Site",
		Description: models.Description{Main: "old", Items: []string{"Go"}},
		Photos:      models.Photos{Main: "uploads/images/works/old.png"},
		WebURL:      &web,
	}
	store.byID["id-1"] = existing
	store.byName["Site"] = existing
	disk := newFakeDisk()
	svc := services.NewProductService(store, disk)

	in := services.ProductInput{
		DescriptionMain:    "new main",
		HasDescriptionMain: true,
		WebURL:             "",
		HasWebURL:          true,
	}

	updated, err := svc.Update(context.Background(), "id-1", in, upload.Batch{})
	require.NoError(t, err)

	assert.Equal(t, "Site", updated.Name, "name was not submitted so it stays")
	assert.Equal(t, "new main", updated.Description.Main)
	assert.Equal(t, []string{"Go"}, updated.Description.Items, "items were not submitted so they stay")
	assert.Nil(t, updated.WebURL, "blank webUrl clears the stored value")
	assert.True(t, store.lastPatch.WebURL.Set)
	assert.Nil(t, store.lastPatch.WebURL.Value)
	assert.False(t, store.lastPatch.GithubURL.Set, "githubUrl was not submitted")
}

func TestUpdateWorkReplacesPhotos(t *testing.T) {
	store := newFakeStore()
	existing := &models.Product{
		Name:   "Site",
		Photos: models.Photos{Main: "uploads/images/works/old_main.png", Items: []string{"uploads/images/works/old_a.png"}},
	}
	store.byID["id-1"] = existing
	store.byName["Site"] = existing

	disk := newFakeDisk()
	disk.files["uploads/images/works/old_main.png"] = []byte("old")
	disk.files["uploads/images/works/old_a.png"] = []byte("old")
	svc := services.NewProductService(store, disk)

	updated, err := svc.Update(context.Background(), "id-1", services.ProductInput{}, batchWith(t, "new.png", "g.png"))
	require.NoError(t, err)

	assert.NotEqual(t, "uploads/images/works/old_main.png", updated.Photos.Main)
	assert.False(t, disk.Exists("uploads/images/works/old_main.png"), "replaced cover must be cleaned up")
	assert.False(t, disk.Exists("uploads/images/works/old_a.png"), "replaced gallery must be cleaned up")
	assert.True(t, disk.Exists(updated.Photos.Main))
}

func TestUpdateWorkDuplicateNameRejected(t *testing.T) {
	store := newFakeStore()
	a := &models.Product{Name: "A"}
	b := &models.Product{Name: "B"}
	store.byID["id-a"] = a
	store.byName["A"] = a
	store.byID["id-b"] = b
	store.byName["B"] = b
	svc := services.NewProductService(store, newFakeDisk())

	_, err := svc.Update(context.Background(), "id-a", services.ProductInput{Name: "B", HasName: true}, upload.Batch{})
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
}

func TestUpdateWorkNotFound(t *testing.T) {
	svc := services.NewProductService(newFakeStore(), newFakeDisk())

	_, err := svc.Update(context.Background(), "missing", services.ProductInput{}, upload.Batch{})
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestDeleteWorkCleansUpFiles(t *testing.T) {
	store := newFakeStore()
	p := &models.Product{
		Name:   "Site",
		Photos: models.Photos{Main: "uploads/images/works/m.png", Items: []string{"uploads/images/works/a.png"}},
	}
	store.byID["id-1"] = p
	store.byName["Site"] = p

	disk := newFakeDisk()
	disk.files["uploads/images/works/m.png"] = []byte("x")
	disk.files["uploads/images/works/a.png"] = []byte("x")
	svc := services.NewProductService(store, disk)

	require.NoError(t, svc.Delete(context.Background(), "id-1"))
	assert.Empty(t, disk.files)
	assert.Empty(t, store.byID)
}

func TestDeleteWorkSurvivesFileErrors(t *testing.T) {
	store := newFakeStore()
	p := &models.Product{Name: "Site", Photos: models.Photos{Main: "uploads/images/works/m.png"}}
	store.byID["id-1"] = p
	store.byName["Site"] = p

	disk := newFakeDisk()
	disk.deleteErr = errors.New("permission denied")
	svc := services.NewProductService(store, disk)

	assert.NoError(t, svc.Delete(context.Background(), "id-1"), "file cleanup is best effort")
	assert.Empty(t, store.byID, "the record is gone regardless")
}

func TestDeleteWorkNotFound(t *testing.T) {
	svc := services.NewProductService(newFakeStore(), newFakeDisk())
	err := svc.Delete(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}
