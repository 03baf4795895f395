// Package search implements the cached, query-parameterized event search
// behind the public list endpoint.
package search

import (
	"net/url"
	"strings"
	"time"

	"eventhub/internal/domain"
)

// Recognized list query parameters.
const (
	ParamQuery    = "query"
	ParamDate     = "date"
	ParamCategory = "category"
	ParamLocation = "location"
	ParamTags     = "tags"
)

// paginationParams are applied to the result set after the cache and never
// take part in filtering or key derivation.
var paginationParams = map[string]struct{}{
	"page":      {},
	"page_size": {},
}

// ParamsFromValues flattens a query string into SearchParams, keeping the
// first value of each key and dropping pagination parameters.
func ParamsFromValues(values url.Values) domain.SearchParams {
	params := make(domain.SearchParams, len(values))
	for k, vs := range values {
		if _, skip := paginationParams[k]; skip || len(vs) == 0 {
			continue
		}
		params[k] = vs[0]
	}
	return params
}

// Compile turns raw parameters into an event filter. Values are trimmed of
// surrounding whitespace; absent or blank parameters are skipped, unknown ones
// are ignored, and a date that is not YYYY-MM-DD is treated as absent.
// Compile never fails.
func Compile(params domain.SearchParams) domain.EventFilter {
	var f domain.EventFilter
	if v := strings.TrimSpace(params[ParamQuery]); v != "" {
		f.Query = v
	}
	if v := strings.TrimSpace(params[ParamDate]); v != "" {
		if d, err := time.Parse(domain.DateLayout, v); err == nil {
			f.Date = &d
		}
	}
	if v := strings.TrimSpace(params[ParamCategory]); v != "" {
		f.Category = v
	}
	if v := strings.TrimSpace(params[ParamLocation]); v != "" {
		f.Location = v
	}
	if v := strings.TrimSpace(params[ParamTags]); v != "" {
		f.Tags = splitTags(v)
	}
	return f
}

// splitTags splits a comma-separated list into a deduplicated set of names.
func splitTags(raw string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
