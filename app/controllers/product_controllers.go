// Package controllers holds the HTTP handlers. Controllers stay thin:
// they bind requests, call a service, and write the response envelope.
package controllers

import (
	"net/http"

	"github.com/huseynesedov/portfolio-backend/app/services"
	"github.com/huseynesedov/portfolio-backend/pkg/response"
	"github.com/huseynesedov/portfolio-backend/pkg/router"
	"github.com/huseynesedov/portfolio-backend/pkg/upload"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// List godoc
//
//	@Summary	List all works
//	@Tags		works
//	@Produce	json
//	@Success	200	{array}	models.Product
//	@Router		/api/works [get]
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.List(r.Context())
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Success(w, c.service.ResolveAll(products))
}

// Get godoc
//
//	@Summary	Get one work by id
//	@Tags		works
//	@Produce	json
//	@Param		worksID	path		string	true	"work id"
//	@Success	200		{object}	models.Product
//	@Failure	404		{object}	map[string]interface{}
//	@Router		/api/works/{worksID} [get]
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	p, err := c.service.Get(r.Context(), router.Param(r, "worksID"))
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Success(w, c.service.Resolve(*p))
}

// Create godoc
//
//	@Summary	Create a work with its images
//	@Tags		works
//	@Accept		mpfd
//	@Produce	json
//	@Param		name				formData	string	true	"unique work name"
//	@Param		descriptionMain		formData	string	false	"main description"
//	@Param		descriptionItems	formData	string	false	"comma separated bullet points"
//	@Param		webUrl				formData	string	false	"live site URL"
//	@Param		githubUrl			formData	string	false	"repository URL"
//	@Param		photoMain			formData	file	true	"cover image"
//	@Param		photos				formData	file	false	"gallery images, up to 10"
//	@Success	201	{object}	models.Product
//	@Failure	409	{object}	map[string]interface{}
//	@Failure	413	{object}	map[string]interface{}
//	@Failure	415	{object}	map[string]interface{}
//	@Router		/api/works/create [post]
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	batch, err := upload.ParseBatch(r)
	if err != nil {
		response.AppError(w, err)
		return
	}

	p, err := c.service.Create(r.Context(), formInput(r), batch)
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Created(w, c.service.Resolve(*p))
}

// Update godoc
//
//	@Summary	Partially update a work
//	@Tags		works
//	@Accept		mpfd
//	@Produce	json
//	@Param		worksID	path		string	true	"work id"
//	@Success	200		{object}	models.Product
//	@Failure	404		{object}	map[string]interface{}
//	@Router		/api/works/{worksID} [put]
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	batch, err := upload.ParseBatch(r)
	if err != nil {
		response.AppError(w, err)
		return
	}

	p, err := c.service.Update(r.Context(), router.Param(r, "worksID"), formInput(r), batch)
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.SuccessMessage(w, "work updated", c.service.Resolve(*p))
}

// Delete godoc
//
//	@Summary	Delete a work and its images
//	@Tags		works
//	@Produce	json
//	@Param		worksID	path	string	true	"work id"
//	@Success	200		{object}	map[string]interface{}
//	@Failure	404		{object}	map[string]interface{}
//	@Router		/api/works/{worksID} [delete]
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), router.Param(r, "worksID")); err != nil {
		response.AppError(w, err)
		return
	}
	response.SuccessMessage(w, "work deleted", nil)
}

// formInput binds the multipart text fields. Presence flags distinguish an
// omitted field from one submitted blank, which update semantics rely on.
func formInput(r *http.Request) services.ProductInput {
	var in services.ProductInput
	if r.MultipartForm == nil {
		return in
	}

	values := r.MultipartForm.Value
	get := func(key string) (string, bool) {
		v, ok := values[key]
		if !ok || len(v) == 0 {
			return "", ok
		}
		return v[0], true
	}

	in.Name, in.HasName = get("name")
	in.DescriptionMain, in.HasDescriptionMain = get("descriptionMain")
	in.DescriptionItems, in.HasDescriptionItems = get("descriptionItems")
	in.WebURL, in.HasWebURL = get("webUrl")
	in.GithubURL, in.HasGithubURL = get("githubUrl")
	return in
}
