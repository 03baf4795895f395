package search

import (
	"net/url"
	"testing"
	"time"

	"eventhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsFromValues(t *testing.T) {
	values := url.Values{
		"query":     {"music", "ignored"},
		"tags":      {"a,b"},
		"page":      {"2"},
		"page_size": {"5"},
		"empty":     {},
	}
	got := ParamsFromValues(values)
	assert.Equal(t, domain.SearchParams{"query": "music", "tags": "a,b"}, got)
}

func TestCompile(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		params domain.SearchParams
		want   domain.EventFilter
	}{
		{
			name:   "no params matches all",
			params: domain.SearchParams{},
			want:   domain.EventFilter{},
		},
		{
			name: "all params",
			params: domain.SearchParams{
				"query":    "music",
				"date":     "2025-03-14",
				"category": "Arts",
				"location": "berlin",
				"tags":     "jazz, live,,jazz",
			},
			want: domain.EventFilter{
				Query:    "music",
				Date:     &day,
				Category: "Arts",
				Location: "berlin",
				Tags:     []string{"jazz", "live"},
			},
		},
		{
			name:   "empty values are skipped",
			params: domain.SearchParams{"query": "", "tags": " , "},
			want:   domain.EventFilter{},
		},
		{
			name: "surrounding whitespace is trimmed",
			params: domain.SearchParams{
				"query":    "  music ",
				"date":     " 2025-03-14 ",
				"category": " Arts",
				"location": "berlin\t",
			},
			want: domain.EventFilter{Query: "music", Date: &day, Category: "Arts", Location: "berlin"},
		},
		{
			name:   "blank values are skipped",
			params: domain.SearchParams{"query": "   ", "category": " ", "location": "\t"},
			want:   domain.EventFilter{},
		},
		{
			name:   "malformed date is ignored",
			params: domain.SearchParams{"date": "14/03/2025"},
			want:   domain.EventFilter{},
		},
		{
			name:   "unknown params are ignored",
			params: domain.SearchParams{"sort": "desc", "foo": "bar"},
			want:   domain.EventFilter{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compile(tt.params)
			require.Equal(t, tt.want, got)
		})
	}
}

func sampleEvents() []*domain.Event {
	return []*domain.Event{
		{
			ID: "ev-1", Title: "Jazz Night", Description: "Live music downtown",
			StartDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Location: "Berlin Mitte",
			Category: domain.Category{ID: "c1", Name: "Arts"}, Tags: []domain.Tag{{ID: "t1", Name: "a"}},
		},
		{
			ID: "ev-2", Title: "Go meetup", Description: "Talks about MUSIC generation",
			StartDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), Location: "Hamburg",
			Category: domain.Category{ID: "c2", Name: "Tech"}, Tags: []domain.Tag{{ID: "t2", Name: "b"}, {ID: "t1", Name: "a"}},
		},
		{
			ID: "ev-3", Title: "Pottery", Description: "Hands-on workshop",
			StartDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Location: "berlin kreuzberg",
			Category: domain.Category{ID: "c1", Name: "Arts"}, Tags: []domain.Tag{{ID: "t3", Name: "c"}},
		},
		{
			ID: "ev-4", Title: "Untagged", Description: "",
			StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Location: "Online",
			Category: domain.Category{ID: "c3", Name: "Misc"}, Tags: []domain.Tag{},
		},
	}
}

func matchingIDs(f domain.EventFilter, events []*domain.Event) []string {
	var ids []string
	for _, e := range events {
		if f.Matches(e) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func TestCompiledFilter_Matches(t *testing.T) {
	events := sampleEvents()

	tests := []struct {
		name    string
		params  domain.SearchParams
		wantIDs []string
	}{
		{"no params matches every event", domain.SearchParams{}, []string{"ev-1", "ev-2", "ev-3", "ev-4"}},
		{"query matches title or description case-insensitively", domain.SearchParams{"query": "music"}, []string{"ev-1", "ev-2"}},
		{"date is exact", domain.SearchParams{"date": "2025-03-14"}, []string{"ev-1", "ev-3"}},
		{"category is case-insensitive exact", domain.SearchParams{"category": "arts"}, []string{"ev-1", "ev-3"}},
		{"category does not match substrings", domain.SearchParams{"category": "Art"}, nil},
		{"location is case-insensitive substring", domain.SearchParams{"location": "BERLIN"}, []string{"ev-1", "ev-3"}},
		{"tags match any of the set", domain.SearchParams{"tags": "a,b"}, []string{"ev-1", "ev-2"}},
		{"tags exclude events with none", domain.SearchParams{"tags": "c"}, []string{"ev-3"}},
		{"filters combine with AND", domain.SearchParams{"query": "music", "category": "Arts"}, []string{"ev-1"}},
		{"AND can empty the result", domain.SearchParams{"tags": "b", "location": "berlin"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchingIDs(Compile(tt.params), events)
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}
