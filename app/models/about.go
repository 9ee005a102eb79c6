package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// About is the profile record. The application enforces at most one
// instance: create fails when a document already exists.
type About struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	About       string             `json:"about" bson:"about"`
	Experience  ItemList[Position] `json:"experience" bson:"experience"`
	Education   ItemList[Position] `json:"education" bson:"education"`
	Skills      ItemList[string]   `json:"skills" bson:"skills"`
	SocialMedia ItemList[Social]   `json:"socialmedia" bson:"socialmedia"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ItemList wraps a list so the wire shape stays {"items": [...]}.
type ItemList[T any] struct {
	Items []T `json:"items" bson:"items"`
}

// Position is one experience or education entry.
type Position struct {
	Link     string `json:"link" bson:"link"`
	Company  string `json:"company" bson:"company"`
	Position string `json:"position" bson:"position"`
}

// Social is one social media link.
type Social struct {
	Link        string `json:"link" bson:"link"`
	CompanyIcon string `json:"companyIcon" bson:"companyIcon"`
}
