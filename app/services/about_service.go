package services

import (
	"context"
	"strings"

	"github.com/huseynesedov/portfolio-backend/app/models"
	"github.com/huseynesedov/portfolio-backend/app/repositories"
	"github.com/huseynesedov/portfolio-backend/pkg/apperr"
)

// AboutInput carries the JSON body of an about create or update request.
// Pointer fields are nil when the client omitted them, which lets updates
// stay partial.
type AboutInput struct {
	About       *string                           `json:"about"`
	Experience  *models.ItemList[models.Position] `json:"experience"`
	Education   *models.ItemList[models.Position] `json:"education"`
	Skills      *models.ItemList[string]          `json:"skills"`
	SocialMedia *models.ItemList[models.Social]   `json:"socialmedia"`
}

// AboutService manages the site owner's profile. The profile is a
// singleton: create refuses to add a second document.
type AboutService struct {
	store repositories.AboutStore
}

func NewAboutService(store repositories.AboutStore) *AboutService {
	return &AboutService{store: store}
}

// List returns the stored profile documents. The list holds at most one
// entry but keeps the collection shape the frontend expects.
func (s *AboutService) List(ctx context.Context) ([]models.About, error) {
	return s.store.All(ctx)
}

// Create persists the profile. A second create is rejected with a conflict
// so the profile stays a singleton.
func (s *AboutService) Create(ctx context.Context, in AboutInput) (*models.About, error) {
	if in.About == nil || strings.TrimSpace(*in.About) == "" {
		return nil, apperr.BadRequest("about is required")
	}

	n, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, apperr.Conflict("about profile already exists")
	}

	a := &models.About{About: strings.TrimSpace(*in.About)}
	if in.Experience != nil {
		a.Experience = *in.Experience
	}
	if in.Education != nil {
		a.Education = *in.Education
	}
	if in.Skills != nil {
		a.Skills = *in.Skills
	}
	if in.SocialMedia != nil {
		a.SocialMedia = *in.SocialMedia
	}

	if err := s.store.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update patches the profile, touching only the submitted sections.
func (s *AboutService) Update(ctx context.Context, id string, in AboutInput) (*models.About, error) {
	patch := repositories.AboutPatch{
		Experience:  in.Experience,
		Education:   in.Education,
		Skills:      in.Skills,
		SocialMedia: in.SocialMedia,
	}
	if in.About != nil {
		v := strings.TrimSpace(*in.About)
		if v == "" {
			return nil, apperr.BadRequest("about must not be blank")
		}
		patch.About = &v
	}
	if patch.Empty() {
		return nil, apperr.BadRequest("nothing to update")
	}
	return s.store.Update(ctx, id, patch)
}

// Delete removes the profile document.
func (s *AboutService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
