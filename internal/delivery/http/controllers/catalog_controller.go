package controllers

import (
	"log/slog"
	"net/http"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

// TagsSuccessResponse is the success response envelope for GET /tags (200).
type TagsSuccessResponse struct {
	Data  []TagResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TagSuccessResponse is the success response envelope for GET /tags/{tagID} (200).
type TagSuccessResponse struct {
	Data  TagResponse       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CategoriesSuccessResponse is the success response envelope for GET /categories (200).
type CategoriesSuccessResponse struct {
	Data  []CategoryResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// CategorySuccessResponse is the success response envelope for GET /categories/{categoryID} (200).
type CategorySuccessResponse struct {
	Data  CategoryResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CatalogController serves tags and categories.
type CatalogController struct {
	Logger  *slog.Logger
	Service domain.CatalogService
}

func NewCatalogController(logger *slog.Logger, svc domain.CatalogService) *CatalogController {
	return &CatalogController{Logger: logger, Service: svc}
}

// ListTags godoc
// @Summary List tags
// @Tags catalog
// @Produce json
// @Success 200 {object} controllers.TagsSuccessResponse "data contains tags"
// @Router /tags [get]
func (c *CatalogController) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := c.Service.ListTags(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTagResponse(*t))
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

// GetTag godoc
// @Summary Get a tag
// @Tags catalog
// @Produce json
// @Param tagID path string true "Tag ID"
// @Success 200 {object} controllers.TagSuccessResponse "data contains the tag"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /tags/{tagID} [get]
func (c *CatalogController) GetTag(w http.ResponseWriter, r *http.Request) {
	tag, err := c.Service.GetTag(r.Context(), r.PathValue("tagID"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toTagResponse(*tag))
}

// ListCategories godoc
// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {object} controllers.CategoriesSuccessResponse "data contains categories"
// @Router /categories [get]
func (c *CatalogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.Service.ListCategories(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	out := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, toCategoryResponse(*cat))
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

// GetCategory godoc
// @Summary Get a category
// @Tags catalog
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 200 {object} controllers.CategorySuccessResponse "data contains the category"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /categories/{categoryID} [get]
func (c *CatalogController) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := c.Service.GetCategory(r.Context(), r.PathValue("categoryID"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toCategoryResponse(*category))
}
