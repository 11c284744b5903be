package service

import "strings"

// orderingClause maps a client-supplied ordering key (optionally prefixed
// with '-' for descending) onto a whitelisted column. Unknown keys fall back
// to the given default so raw input never reaches the ORDER BY clause.
func orderingClause(raw, fallback string, allowed map[string]string) string {
	raw = strings.TrimSpace(raw)
	key := strings.TrimPrefix(raw, "-")
	column, ok := allowed[key]
	if key == "" || !ok {
		return fallback
	}
	if strings.HasPrefix(raw, "-") {
		return column + " desc"
	}
	return column + " asc"
}
