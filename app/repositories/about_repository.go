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

// AboutPatch carries a partial update of the about profile. Nil fields are
// left untouched.
type AboutPatch struct {
	About       *string
	Experience  *models.ItemList[models.Position]
	Education   *models.ItemList[models.Position]
	Skills      *models.ItemList[string]
	SocialMedia *models.ItemList[models.Social]
}

func (p AboutPatch) Empty() bool {
	return p.About == nil && p.Experience == nil && p.Education == nil &&
		p.Skills == nil && p.SocialMedia == nil
}

// AboutStore is the persistence contract of the about service.
type AboutStore interface {
	All(ctx context.Context) ([]models.About, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, a *models.About) error
	Update(ctx context.Context, id string, patch AboutPatch) (*models.About, error)
	Delete(ctx context.Context, id string) error
}

// AboutRepository is the MongoDB-backed AboutStore.
type AboutRepository struct{}

func NewAboutRepository() *AboutRepository {
	return &AboutRepository{}
}

func (r *AboutRepository) col() *mongo.Collection { return database.About() }

func (r *AboutRepository) All(ctx context.Context) ([]models.About, error) {
	defer metrics.ObserveMongoOp("find", time.Now())

	cur, err := r.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.Persistence("find", err)
	}

	docs := []models.About{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, apperr.Persistence("decode", err)
	}
	return docs, nil
}

func (r *AboutRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveMongoOp("count", time.Now())

	n, err := r.col().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperr.Persistence("count", err)
	}
	return n, nil
}

func (r *AboutRepository) Insert(ctx context.Context, a *models.About) error {
	defer metrics.ObserveMongoOp("insert", time.Now())

	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	res, err := r.col().InsertOne(ctx, a)
	if err != nil {
		return apperr.Persistence("insert", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

func (r *AboutRepository) Update(ctx context.Context, id string, patch AboutPatch) (*models.About, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("about")
	}

	defer metrics.ObserveMongoOp("update", time.Now())

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.About != nil {
		set["about"] = *patch.About
	}
	if patch.Experience != nil {
		set["experience"] = *patch.Experience
	}
	if patch.Education != nil {
		set["education"] = *patch.Education
	}
	if patch.Skills != nil {
		set["skills"] = *patch.Skills
	}
	if patch.SocialMedia != nil {
		set["socialmedia"] = *patch.SocialMedia
	}

	var updated models.About
	err = r.col().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("about")
	}
	if err != nil {
		return nil, apperr.Persistence("update", err)
	}
	return &updated, nil
}

func (r *AboutRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.NotFound("about")
	}

	defer metrics.ObserveMongoOp("delete", time.Now())

	res, err := r.col().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperr.Persistence("delete", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("about")
	}
	return nil
}
