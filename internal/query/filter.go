package query

import (
	"net/url"
	"strings"
)

// Filter maps whitelisted field names to exact-match values.
// An empty Filter matches every record.
type Filter map[string]string

// BuildFilter copies present, non-empty query values for the allowed fields.
// Iterating the whitelist (not the raw params) keeps arbitrary field names out
// of storage queries; anything not listed is silently dropped.
func BuildFilter(values url.Values, allowed ...string) Filter {
	f := Filter{}
	for _, field := range allowed {
		if v := strings.TrimSpace(values.Get(field)); v != "" {
			f[field] = v
		}
	}
	return f
}
