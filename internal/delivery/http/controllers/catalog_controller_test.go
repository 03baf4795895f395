package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/domain"
)

func TestCatalogController(t *testing.T) {
	fake := &fakeCatalogService{
		tags:       []*domain.Tag{{ID: "tag-1", Name: "jazz"}, {ID: "tag-2", Name: "rock"}},
		categories: []*domain.Category{{ID: "cat-1", Name: "Music"}},
	}
	ctrl := NewCatalogController(testLogger, fake)

	rr := httptest.NewRecorder()
	ctrl.ListTags(rr, newRequest(http.MethodGet, "/tags", "", "", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []TagResponse{{ID: "tag-1", Name: "jazz"}, {ID: "tag-2", Name: "rock"}}, decode[[]TagResponse](t, rr).Data)

	rr = httptest.NewRecorder()
	ctrl.GetTag(rr, newRequest(http.MethodGet, "/tags/tag-2", "", "", map[string]string{"tagID": "tag-2"}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "rock", decode[TagResponse](t, rr).Data.Name)

	rr = httptest.NewRecorder()
	ctrl.GetTag(rr, newRequest(http.MethodGet, "/tags/tag-9", "", "", map[string]string{"tagID": "tag-9"}))
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	ctrl.ListCategories(rr, newRequest(http.MethodGet, "/categories", "", "", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]CategoryResponse](t, rr).Data, 1)

	rr = httptest.NewRecorder()
	ctrl.GetCategory(rr, newRequest(http.MethodGet, "/categories/cat-1", "", "", map[string]string{"categoryID": "cat-1"}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Music", decode[CategoryResponse](t, rr).Data.Name)

	rr = httptest.NewRecorder()
	NewCatalogController(testLogger, &fakeCatalogService{err: errors.New("db down")}).ListCategories(rr, newRequest(http.MethodGet, "/categories", "", "", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}
