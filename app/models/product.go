package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is one portfolio entry in the works collection.
// Name carries a unique index; WebURL/GithubURL are null when absent or
// submitted blank.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description Description        `json:"description" bson:"description"`
	Photos      Photos             `json:"photos" bson:"photos"`
	WebURL      *string            `json:"webUrl" bson:"webUrl"`
	GithubURL   *string            `json:"githubUrl" bson:"githubUrl"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Description holds the headline text plus an ordered list of detail items.
type Description struct {
	Main  string   `json:"main" bson:"main"`
	Items []string `json:"items" bson:"items"`
}

// Photos holds public URLs of stored images. Every URL corresponds to a
// file in the assets directory at the time the record was persisted.
type Photos struct {
	Main  string   `json:"main" bson:"main"`
	Items []string `json:"items" bson:"items"`
}
