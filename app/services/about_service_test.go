package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huseynesedov/portfolio-backend/app/models"
	"github.com/huseynesedov/portfolio-backend/app/repositories"
	"github.com/huseynesedov/portfolio-backend/app/services"
	"github.com/huseynesedov/portfolio-backend/pkg/apperr"
)

type fakeAboutStore struct {
	docs      []models.About
	lastPatch repositories.AboutPatch
}

func (s *fakeAboutStore) All(ctx context.Context) ([]models.About, error) {
	return s.docs, nil
}

func (s *fakeAboutStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.docs)), nil
}

func (s *fakeAboutStore) Insert(ctx context.Context, a *models.About) error {
	s.docs = append(s.docs, *a)
	return nil
}

func (s *fakeAboutStore) Update(ctx context.Context, id string, patch repositories.AboutPatch) (*models.About, error) {
	s.lastPatch = patch
	if len(s.docs) == 0 {
		return nil, apperr.NotFound("about")
	}
	a := &s.docs[0]
	if patch.About != nil {
		a.About = *patch.About
	}
	if patch.Skills != nil {
		a.Skills = *patch.Skills
	}
	if patch.Experience != nil {
		a.Experience = *patch.Experience
	}
	cp := *a
	return &cp, nil
}

func (s *fakeAboutStore) Delete(ctx context.Context, id string) error {
	if len(s.docs) == 0 {
		return apperr.NotFound("about")
	}
	s.docs = nil
	return nil
}

func str(v string) *string { return &v }

func TestCreateAbout(t *testing.T) {
	store := &fakeAboutStore{}
	svc := services.NewAboutService(store)

	in := services.AboutInput{
		About:  str("  Backend developer from Baku  "),
		Skills: &models.ItemList[string]{Items: []string{"Go", "MongoDB"}},
	}

	a, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Backend developer from Baku", a.About)
	assert.Equal(t, []string{"Go", "MongoDB"}, a.Skills.Items)
}

func TestCreateAboutRequiresText(t *testing.T) {
	svc := services.NewAboutService(&fakeAboutStore{})

	_, err := svc.Create(context.Background(), services.AboutInput{About: str("   ")})
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestCreateAboutIsSingleton(t *testing.T) {
	store := &fakeAboutStore{docs: []models.About{{About: "existing"}}}
	svc := services.NewAboutService(store)

	_, err := svc.Create(context.Background(), services.AboutInput{About: str("second")})
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
	assert.Len(t, store.docs, 1)
}

func TestUpdateAboutPartial(t *testing.T) {
	store := &fakeAboutStore{docs: []models.About{{
		About:  "old",
		Skills: models.ItemList[string]{Items: []string{"Go"}},
	}}}
	svc := services.NewAboutService(store)

	in := services.AboutInput{About: str("new text")}
	a, err := svc.Update(context.Background(), "id-1", in)
	require.NoError(t, err)

	assert.Equal(t, "new text", a.About)
	assert.Equal(t, []string{"Go"}, a.Skills.Items, "skills were not submitted so they stay")
	assert.Nil(t, store.lastPatch.Skills)
	assert.Nil(t, store.lastPatch.SocialMedia)
}

func TestUpdateAboutRejectsEmptyPatch(t *testing.T) {
	svc := services.NewAboutService(&fakeAboutStore{docs: []models.About{{About: "x"}}})

	_, err := svc.Update(context.Background(), "id-1", services.AboutInput{})
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestUpdateAboutRejectsBlankText(t *testing.T) {
	svc := services.NewAboutService(&fakeAboutStore{docs: []models.About{{About: "x"}}})

	_, err := svc.Update(context.Background(), "id-1", services.AboutInput{About: str(" ")})
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestDeleteAbout(t *testing.T) {
	store := &fakeAboutStore{docs: []models.About{{About: "x"}}}
	svc := services.NewAboutService(store)

	require.NoError(t, svc.Delete(context.Background(), "id-1"))
	assert.Empty(t, store.docs)

	err := svc.Delete(context.Background(), "id-1")
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}
