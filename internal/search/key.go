package search

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"

	"eventhub/internal/domain"
)

// CacheKeyPrefix namespaces search entries within a shared cache.
const CacheKeyPrefix = "events:"

// CanonicalQuery serializes params as key=value pairs sorted by key and joined by '&'.
// Values are written verbatim.
func CanonicalQuery(params domain.SearchParams) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}

// CacheKey returns "events:" followed by the hex MD5 digest of the canonical query.
// Equal parameter sets yield equal keys regardless of the order they were supplied in.
func CacheKey(params domain.SearchParams) string {
	sum := md5.Sum([]byte(CanonicalQuery(params)))
	return CacheKeyPrefix + hex.EncodeToString(sum[:])
}
