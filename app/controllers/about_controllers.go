package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/huseynesedov/portfolio-backend/app/services"
	"github.com/huseynesedov/portfolio-backend/pkg/apperr"
	"github.com/huseynesedov/portfolio-backend/pkg/response"
	"github.com/huseynesedov/portfolio-backend/pkg/router"
)

type AboutController struct {
	service *services.AboutService
}

func NewAboutController(service *services.AboutService) *AboutController {
	return &AboutController{service: service}
}

// List godoc
//
//	@Summary	Get the about profile
//	@Tags		about
//	@Produce	json
//	@Success	200	{array}	models.About
//	@Router		/api/about [get]
func (c *AboutController) List(w http.ResponseWriter, r *http.Request) {
	docs, err := c.service.List(r.Context())
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Success(w, docs)
}

// Create godoc
//
//	@Summary	Create the about profile
//	@Tags		about
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	models.About
//	@Failure	409	{object}	map[string]interface{}
//	@Router		/api/about/create [post]
func (c *AboutController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.AboutInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.AppError(w, apperr.BadRequest("invalid JSON body"))
		return
	}

	a, err := c.service.Create(r.Context(), in)
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Created(w, a)
}

// Update godoc
//
//	@Summary	Partially update the about profile
//	@Tags		about
//	@Accept		json
//	@Produce	json
//	@Param		aboutID	path		string	true	"about id"
//	@Success	200		{object}	models.About
//	@Failure	404		{object}	map[string]interface{}
//	@Router		/api/about/{aboutID} [put]
func (c *AboutController) Update(w http.ResponseWriter, r *http.Request) {
	var in services.AboutInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.AppError(w, apperr.BadRequest("invalid JSON body"))
		return
	}

	a, err := c.service.Update(r.Context(), router.Param(r, "aboutID"), in)
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.SuccessMessage(w, "about updated", a)
}

// Delete godoc
//
//	@Summary	Delete the about profile
//	@Tags		about
//	@Produce	json
//	@Param		aboutID	path	string	true	"about id"
//	@Success	200		{object}	map[string]interface{}
//	@Router		/api/about/{aboutID} [delete]
func (c *AboutController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), router.Param(r, "aboutID")); err != nil {
		response.AppError(w, err)
		return
	}
	response.SuccessMessage(w, "about deleted", nil)
}
