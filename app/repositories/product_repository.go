// Package repositories contains the MongoDB data access layer. Services
// depend on the store interfaces declared here so tests can substitute
// in-memory fakes.
package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/huseynesedov/portfolio-backend/app/models"
	"github.com/huseynesedov/portfolio-backend/pkg/apperr"
	"github.com/huseynesedov/portfolio-backend/pkg/database"
	"github.com/huseynesedov/portfolio-backend/pkg/metrics"
)

// OptionalString is a tri-state patch field: absent (Set false, leave the
// stored value alone), null (Set true, Value nil), or a concrete value.
type OptionalString struct {
	Set   bool
	Value *string
}

// ProductPatch carries the fields of a partial update. Nil / unset fields
// leave the stored document untouched.
type ProductPatch struct {
	Name        *string
	Description *models.Description
	PhotoMain   *string
	PhotoItems  []string // non-nil replaces photos.items
	WebURL      OptionalString
	GithubURL   OptionalString
}

// Empty reports whether the patch would change nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.PhotoMain == nil &&
		p.PhotoItems == nil && !p.WebURL.Set && !p.GithubURL.Set
}

// ProductStore is the persistence contract the product service relies on.
type ProductStore interface {
	All(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindByName(ctx context.Context, name string) (*models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id string, patch ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
}

// ProductRepository is the MongoDB-backed ProductStore.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) col() *mongo.Collection { return database.Works() }

// All returns every product, newest first.
func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	defer metrics.ObserveMongoOp("find", time.Now())

	cur, err := r.col().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, apperr.Persistence("find", err)
	}

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, apperr.Persistence("decode", err)
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("work")
	}

	defer metrics.ObserveMongoOp("find_one", time.Now())

	var p models.Product
	err = r.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("work")
	}
	if err != nil {
		return nil, apperr.Persistence("find_one", err)
	}
	return &p, nil
}

// FindByName does an exact-match lookup; returns (nil, nil) when no product
// carries the name.
func (r *ProductRepository) FindByName(ctx context.Context, name string) (*models.Product, error) {
	defer metrics.ObserveMongoOp("find_one", time.Now())

	var p models.Product
	err := r.col().FindOne(ctx, bson.M{"name": name}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Persistence("find_one", err)
	}
	return &p, nil
}

// Insert persists a new product and fills in its id and timestamps. A
// violation of the unique name index surfaces as DuplicateName: the index
// is the authoritative guard against the check-then-insert race.
func (r *ProductRepository) Insert(ctx context.Context, p *models.Product) error {
	defer metrics.ObserveMongoOp("insert", time.Now())

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := r.col().InsertOne(ctx, p)
	if database.IsDup(err) {
		return apperr.DuplicateName(p.Name)
	}
	if err != nil {
		return apperr.Persistence("insert", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// Update applies a partial patch and returns the updated document.
func (r *ProductRepository) Update(ctx context.Context, id string, patch ProductPatch) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("work")
	}

	defer metrics.ObserveMongoOp("update", time.Now())

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.PhotoMain != nil {
		set["photos.main"] = *patch.PhotoMain
	}
	if patch.PhotoItems != nil {
		set["photos.items"] = patch.PhotoItems
	}
	if patch.WebURL.Set {
		set["webUrl"] = patch.WebURL.Value
	}
	if patch.GithubURL.Set {
		set["githubUrl"] = patch.GithubURL.Value
	}

	var updated models.Product
	err = r.col().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("work")
	}
	if database.IsDup(err) {
		return nil, apperr.DuplicateName(*patch.Name)
	}
	if err != nil {
		return nil, apperr.Persistence("update", err)
	}
	return &updated, nil
}

// Delete removes the record and returns the deleted document so the caller
// can clean up the files it referenced.
func (r *ProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("work")
	}

	defer metrics.ObserveMongoOp("delete", time.Now())

	var deleted models.Product
	err = r.col().FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("work")
	}
	if err != nil {
		return nil, apperr.Persistence("delete", err)
	}
	return &deleted, nil
}
