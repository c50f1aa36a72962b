// path: controllers/filter.go
package controllers

import (
	"sort"
	"strings"

	"github.com/kevinke3/loket/models"
)

// FilterMissing keeps the records whose name or description contains query
// (case-insensitive) and whose region equals region exactly. An empty query
// or region does not filter. The result is never nil.
func FilterMissing(records []models.MissingPerson, query, region string) []models.MissingPerson {
	query = strings.ToLower(query)
	out := make([]models.MissingPerson, 0, len(records))
	for _, r := range records {
		if query != "" &&
			!strings.Contains(strings.ToLower(r.Name), query) &&
			!strings.Contains(strings.ToLower(r.Description), query) {
			continue
		}
		if region != "" && r.Region != region {
			continue
		}
		out = append(out, r)
	}
	return out
}

// DistinctRegions returns each non-empty region once, sorted.
func DistinctRegions(records []models.MissingPerson) []string {
	seen := map[string]struct{}{}
	regions := []string{}
	for _, r := range records {
		if r.Region == "" {
			continue
		}
		if _, ok := seen[r.Region]; ok {
			continue
		}
		seen[r.Region] = struct{}{}
		regions = append(regions, r.Region)
	}
	sort.Strings(regions)
	return regions
}

// Head returns at most n leading records in stored order.
func Head[T any](records []T, n int) []T {
	if len(records) > n {
		return records[:n]
	}
	return records
}
