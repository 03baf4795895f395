package helpers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/domain"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  domain.PaginationParams
	}{
		{name: "defaults", query: "", want: domain.PaginationParams{Page: 1, PageSize: 10}},
		{name: "explicit", query: "page=3&page_size=25", want: domain.PaginationParams{Page: 3, PageSize: 25}},
		{name: "clamped", query: "page_size=1000", want: domain.PaginationParams{Page: 1, PageSize: MaxPageSize}},
		{name: "invalid values", query: "page=0&page_size=abc", want: domain.PaginationParams{Page: 1, PageSize: 10}},
		{name: "negative", query: "page=-2&page_size=-5", want: domain.PaginationParams{Page: 1, PageSize: 10}},
		{name: "huge page", query: "page=9223372036854775807", want: domain.PaginationParams{Page: MaxPage, PageSize: 10}},
		{name: "page beyond int", query: "page=99999999999999999999", want: domain.PaginationParams{Page: 1, PageSize: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/events?"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePagination(r))
		})
	}
}

func TestNewPaginationMeta(t *testing.T) {
	assert.Equal(t, PaginationMeta{Page: 2, PageSize: 10, Total: 21, TotalPages: 3}, NewPaginationMeta(2, 10, 21))
	assert.Equal(t, 0, NewPaginationMeta(1, 0, 5).TotalPages)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, Paginate(items, domain.PaginationParams{Page: 1, PageSize: 2}))
	assert.Equal(t, []int{5}, Paginate(items, domain.PaginationParams{Page: 3, PageSize: 2}))
	assert.Empty(t, Paginate(items, domain.PaginationParams{Page: 9, PageSize: 2}))
}

func TestPaginate_HugePageIsEmpty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/events?page=9223372036854775807", nil)
	p := ParsePagination(r)

	var got []int
	assert.NotPanics(t, func() { got = Paginate([]int{1, 2, 3}, p) })
	assert.Empty(t, got)

	assert.NotPanics(t, func() {
		got = Paginate([]int{1, 2, 3}, domain.PaginationParams{Page: math.MaxInt, PageSize: MaxPageSize})
	})
	assert.Empty(t, got)
}

type validatedBody struct {
	Name string `json:"name"`
}

func (v validatedBody) Validate() []string {
	if v.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
		wantMsg    string
	}{
		{name: "valid", body: `{"name":"x"}`, wantOK: true, wantStatus: http.StatusOK},
		{name: "validation error", body: `{"name":""}`, wantStatus: http.StatusBadRequest, wantMsg: "name is required"},
		{name: "unknown field", body: `{"name":"x","extra":1}`, wantStatus: http.StatusBadRequest, wantMsg: "unknown field"},
		{name: "malformed", body: `{`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			var dest validatedBody

			ok := DecodeAndValidate(rr, r, &dest)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, rr.Code)
			if !tt.wantOK {
				var env APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
				require.NotNil(t, env.Error)
				assert.Equal(t, ErrCodeBadRequest, env.Error.Code)
				assert.Contains(t, env.Error.Message, tt.wantMsg)
			}
		})
	}
}
