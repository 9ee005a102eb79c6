package controllers

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/huseynesedov/portfolio-backend/app/models"
	"github.com/huseynesedov/portfolio-backend/app/services"
	gqlhttp "github.com/huseynesedov/portfolio-backend/pkg/graphql"
)

// NewGraphQLHandler builds the read-only query endpoint over works and the
// about profile. Mutations stay on the REST surface where the upload
// workflow lives.
func NewGraphQLHandler(products *services.ProductService, about *services.AboutService) (http.HandlerFunc, error) {
	photosType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Photos",
		Fields: graphql.Fields{
			"main":  &graphql.Field{Type: graphql.String},
			"items": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"mainUrl": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					photos, _ := p.Source.(models.Photos)
					return products.PhotoURL(photos.Main), nil
				},
			},
			"itemUrls": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					photos, _ := p.Source.(models.Photos)
					urls := make([]string, 0, len(photos.Items))
					for _, item := range photos.Items {
						urls = append(urls, products.PhotoURL(item))
					}
					return urls, nil
				},
			},
		},
	})

	descriptionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Description",
		Fields: graphql.Fields{
			"main":  &graphql.Field{Type: graphql.String},
			"items": &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	workType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Work",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					w, _ := p.Source.(models.Product)
					return w.ID.Hex(), nil
				},
			},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: descriptionType},
			"photos":      &graphql.Field{Type: photosType},
			"webUrl":      &graphql.Field{Type: graphql.String},
			"githubUrl":   &graphql.Field{Type: graphql.String},
			"createdAt":   &graphql.Field{Type: graphql.DateTime},
			"updatedAt":   &graphql.Field{Type: graphql.DateTime},
		},
	})

	positionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Position",
		Fields: graphql.Fields{
			"link":     &graphql.Field{Type: graphql.String},
			"company":  &graphql.Field{Type: graphql.String},
			"position": &graphql.Field{Type: graphql.String},
		},
	})

	socialType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Social",
		Fields: graphql.Fields{
			"link":        &graphql.Field{Type: graphql.String},
			"companyIcon": &graphql.Field{Type: graphql.String},
		},
	})

	aboutType := graphql.NewObject(graphql.ObjectConfig{
		Name: "About",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					a, _ := p.Source.(models.About)
					return a.ID.Hex(), nil
				},
			},
			"about": &graphql.Field{Type: graphql.String},
			"experience": &graphql.Field{
				Type: graphql.NewList(positionType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					a, _ := p.Source.(models.About)
					return a.Experience.Items, nil
				},
			},
			"education": &graphql.Field{
				Type: graphql.NewList(positionType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					a, _ := p.Source.(models.About)
					return a.Education.Items, nil
				},
			},
			"skills": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					a, _ := p.Source.(models.About)
					return a.Skills.Items, nil
				},
			},
			"socialmedia": &graphql.Field{
				Type: graphql.NewList(socialType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					a, _ := p.Source.(models.About)
					return a.SocialMedia.Items, nil
				},
			},
		},
	})

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"works": &graphql.Field{
				Type: graphql.NewList(workType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return products.List(p.Context)
				},
			},
			"work": &graphql.Field{
				Type: workType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					w, err := products.Get(p.Context, id)
					if err != nil {
						return nil, err
					}
					return *w, nil
				},
			},
			"about": &graphql.Field{
				Type: aboutType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					docs, err := about.List(p.Context)
					if err != nil {
						return nil, err
					}
					if len(docs) == 0 {
						return nil, nil
					}
					return docs[0], nil
				},
			},
		},
	})

	schema, err := gqlhttp.NewSchema(rootQuery)
	if err != nil {
		return nil, err
	}
	return gqlhttp.Handler(schema), nil
}
