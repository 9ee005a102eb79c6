// Package routes wires controllers onto the named router.
package routes

import (
	"path/filepath"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/huseynesedov/portfolio-backend/app/controllers"
	"github.com/huseynesedov/portfolio-backend/app/repositories"
	"github.com/huseynesedov/portfolio-backend/app/services"
	"github.com/huseynesedov/portfolio-backend/config"
	"github.com/huseynesedov/portfolio-backend/pkg/metrics"
	"github.com/huseynesedov/portfolio-backend/pkg/middleware"
	"github.com/huseynesedov/portfolio-backend/pkg/router"
	"github.com/huseynesedov/portfolio-backend/pkg/storage"

	_ "github.com/huseynesedov/portfolio-backend/docs"
)

// RegisterAPI mounts every route of the application.
func RegisterAPI(r *router.Router) error {
	disk := storage.Default()

	productService := services.NewProductService(repositories.NewProductRepository(), disk)
	aboutService := services.NewAboutService(repositories.NewAboutRepository())

	productController := controllers.NewProductController(productService)
	aboutController := controllers.NewAboutController(aboutService)
	contactController := controllers.NewContactController()

	api := r.Group("/api")

	works := api.Group("/works")
	works.Get("", "works.list", productController.List)
	works.Get("/{worksID}", "works.show", productController.Get)

	worksAdmin := api.Group("/works", middleware.TokenGuard)
	worksAdmin.Post("/create", "works.create", productController.Create)
	worksAdmin.Put("/{worksID}", "works.update", productController.Update)
	worksAdmin.Delete("/{worksID}", "works.delete", productController.Delete)

	about := api.Group("/about")
	about.Get("", "about.list", aboutController.List)

	aboutAdmin := api.Group("/about", middleware.TokenGuard)
	aboutAdmin.Post("/create", "about.create", aboutController.Create)
	aboutAdmin.Put("/{aboutID}", "about.update", aboutController.Update)
	aboutAdmin.Delete("/{aboutID}", "about.delete", aboutController.Delete)

	api.Post("/contact", "contact.send", contactController.Send)

	gql, err := controllers.NewGraphQLHandler(productService, aboutService)
	if err != nil {
		return err
	}
	api.Post("/graphql", "graphql.query", gql)

	r.Get("/metrics", "metrics", metrics.Handler())
	r.HandleFunc("/swagger/*", httpSwagger.WrapHandler)
	r.Static("/uploads", filepath.Join(config.StorageLocalRoot(), "uploads"))

	return nil
}
