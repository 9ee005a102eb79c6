// Package services holds the business logic between the HTTP controllers
// and the repositories.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/huseynesedov/portfolio-backend/app/models"
	"github.com/huseynesedov/portfolio-backend/app/repositories"
	"github.com/huseynesedov/portfolio-backend/pkg/apperr"
	"github.com/huseynesedov/portfolio-backend/pkg/cache"
	"github.com/huseynesedov/portfolio-backend/pkg/logger"
	"github.com/huseynesedov/portfolio-backend/pkg/metrics"
	"github.com/huseynesedov/portfolio-backend/pkg/storage"
	"github.com/huseynesedov/portfolio-backend/pkg/upload"
)

const (
	worksCacheKey = "works:all"
	worksCacheTTL = 60 * time.Second
)

// ProductInput carries the text fields of a create or update request. For
// updates, Has* flags distinguish an absent field from one submitted blank.
type ProductInput struct {
	Name             string
	DescriptionMain  string
	DescriptionItems string
	WebURL           string
	GithubURL        string

	HasName             bool
	HasDescriptionMain  bool
	HasDescriptionItems bool
	HasWebURL           bool
	HasGithubURL        bool
}

// ProductService implements the work ingestion workflow: uploaded images are
// written to the storage disk first, then the record is persisted. When any
// later step fails, the files written so far are removed again so the disk
// never accumulates orphans.
type ProductService struct {
	store  repositories.ProductStore
	disk   storage.Disk
	placer *upload.Placer
}

func NewProductService(store repositories.ProductStore, disk storage.Disk) *ProductService {
	return &ProductService{
		store:  store,
		disk:   disk,
		placer: upload.NewPlacer(disk),
	}
}

// List returns all works, newest first, serving from the cache when it is
// warm.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if cache.Get(worksCacheKey, &cached) {
		return cached, nil
	}

	products, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	if err := cache.Set(worksCacheKey, products, worksCacheTTL); err != nil {
		logger.WithCtx(ctx).Warn("cache works list", "error", err)
	}
	return products, nil
}

// Get returns a single work by id.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.store.FindByID(ctx, id)
}

// Create stores the uploaded images and persists the new work. The name must
// be unique: a fast-path lookup rejects known duplicates before the insert,
// and the unique index on the collection settles concurrent races.
func (s *ProductService) Create(ctx context.Context, in ProductInput, batch upload.Batch) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.BadRequest("name is required")
	}
	if batch.Main == nil {
		return nil, apperr.BadRequest("photoMain is required")
	}

	placed, err := s.place(ctx, batch)
	if err != nil {
		return nil, err
	}

	if existing, err := s.store.FindByName(ctx, name); err != nil {
		s.rollback(ctx, placed.all())
		return nil, err
	} else if existing != nil {
		s.rollback(ctx, placed.all())
		return nil, apperr.DuplicateName(name)
	}

	p := &models.Product{
		Name: name,
		Description: models.Description{
			Main:  in.DescriptionMain,
			Items: splitItems(in.DescriptionItems),
		},
		Photos: models.Photos{
			Main:  placed.main,
			Items: placed.items,
		},
		WebURL:    normalizeURL(in.WebURL),
		GithubURL: normalizeURL(in.GithubURL),
	}

	if err := s.store.Insert(ctx, p); err != nil {
		s.rollback(ctx, placed.all())
		return nil, err
	}

	s.invalidate(ctx)
	return p, nil
}

// Update applies a partial patch. Photos are replaced only when the request
// carried new files; the replaced files are removed from the disk after the
// record update succeeds.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput, batch upload.Batch) (*models.Product, error) {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	placed, err := s.place(ctx, batch)
	if err != nil {
		return nil, err
	}

	patch := repositories.ProductPatch{}
	if in.HasName {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			s.rollback(ctx, placed.all())
			return nil, apperr.BadRequest("name must not be blank")
		}
		if name != current.Name {
			if existing, err := s.store.FindByName(ctx, name); err != nil {
				s.rollback(ctx, placed.all())
				return nil, err
			} else if existing != nil {
				s.rollback(ctx, placed.all())
				return nil, apperr.DuplicateName(name)
			}
		}
		patch.Name = &name
	}
	if in.HasDescriptionMain || in.HasDescriptionItems {
		desc := current.Description
		if in.HasDescriptionMain {
			desc.Main = in.DescriptionMain
		}
		if in.HasDescriptionItems {
			desc.Items = splitItems(in.DescriptionItems)
		}
		patch.Description = &desc
	}
	if in.HasWebURL {
		patch.WebURL = repositories.OptionalString{Set: true, Value: normalizeURL(in.WebURL)}
	}
	if in.HasGithubURL {
		patch.GithubURL = repositories.OptionalString{Set: true, Value: normalizeURL(in.GithubURL)}
	}

	var replaced []string
	if placed.main != "" {
		patch.PhotoMain = &placed.main
		if current.Photos.Main != "" {
			replaced = append(replaced, current.Photos.Main)
		}
	}
	if placed.items != nil {
		patch.PhotoItems = placed.items
		replaced = append(replaced, current.Photos.Items...)
	}

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		s.rollback(ctx, placed.all())
		return nil, err
	}

	s.discard(ctx, replaced)
	s.invalidate(ctx)
	return updated, nil
}

// Delete removes the record first, then cleans up its files. File deletion
// failures are logged and do not fail the request: the record is already
// gone.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}

	paths := []string{}
	if deleted.Photos.Main != "" {
		paths = append(paths, deleted.Photos.Main)
	}
	paths = append(paths, deleted.Photos.Items...)
	s.discard(ctx, paths)

	s.invalidate(ctx)
	return nil
}

// PhotoURL resolves a stored photo path to its public URL.
func (s *ProductService) PhotoURL(path string) string {
	if path == "" {
		return ""
	}
	return s.placer.URL(path)
}

// Resolve returns a copy of p with the stored photo paths swapped for their
// public URLs. Records and the cache keep relative paths; clients receive
// absolute URLs.
func (s *ProductService) Resolve(p models.Product) models.Product {
	p.Photos.Main = s.PhotoURL(p.Photos.Main)
	if len(p.Photos.Items) > 0 {
		items := make([]string, len(p.Photos.Items))
		for i, item := range p.Photos.Items {
			items[i] = s.PhotoURL(item)
		}
		p.Photos.Items = items
	}
	return p
}

// ResolveAll applies Resolve to every work in the list.
func (s *ProductService) ResolveAll(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = s.Resolve(p)
	}
	return out
}

type placedFiles struct {
	main  string
	items []string
}

func (p placedFiles) all() []string {
	if p.main == "" {
		return p.items
	}
	return append([]string{p.main}, p.items...)
}

func (s *ProductService) place(ctx context.Context, batch upload.Batch) (placedFiles, error) {
	var placed placedFiles
	if batch.Main != nil {
		rel, err := s.placer.Place(*batch.Main)
		if err != nil {
			return placed, err
		}
		placed.main = rel
	}
	if len(batch.Items) > 0 {
		placed.items = []string{}
		for _, f := range batch.Items {
			rel, err := s.placer.Place(f)
			if err != nil {
				s.rollback(ctx, placed.all())
				return placedFiles{}, err
			}
			placed.items = append(placed.items, rel)
		}
	}
	return placed, nil
}

// rollback removes files placed by a request that later failed.
func (s *ProductService) rollback(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}
	metrics.UploadRollbacks.Inc()
	s.discard(ctx, paths)
}

// discard removes files from the disk, swallowing per-file errors: cleanup
// must not mask the error that triggered it.
func (s *ProductService) discard(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.disk.Delete(p); err != nil {
			logger.WithCtx(ctx).Warn("remove uploaded file", "path", p, "error", err)
		}
	}
}

func (s *ProductService) invalidate(ctx context.Context) {
	if err := cache.Del(worksCacheKey); err != nil {
		logger.WithCtx(ctx).Warn("invalidate works cache", "error", err)
	}
}

// splitItems turns the comma separated descriptionItems form value into a
// trimmed list, dropping empty segments.
func splitItems(raw string) []string {
	items := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// normalizeURL maps a blank form value to null.
func normalizeURL(raw string) *string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	return &v
}
