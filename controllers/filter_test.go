package controllers

import (
	"testing"

	"github.com/kevinke3/loket/models"
	"github.com/stretchr/testify/assert"
)

var people = []models.MissingPerson{
	{ID: 1, Name: "Sarah Johnson", Region: "Northeast", Description: "Red jacket, brown hair."},
	{ID: 2, Name: "David Chen", Region: "Northwest", Description: "Black hair, glasses."},
	{ID: 3, Name: "Ana Souza", Region: "", Description: "Wearing a red scarf."},
	{ID: 4, Name: "Fred Long", Region: "Northeast"},
}

func names(records []models.MissingPerson) []string {
	out := []string{}
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestFilterMissing(t *testing.T) {
	cases := []struct {
		name          string
		query, region string
		want          []string
	}{
		{"no filters", "", "", []string{"Sarah Johnson", "David Chen", "Ana Souza", "Fred Long"}},
		{"name match is case insensitive", "sarah", "", []string{"Sarah Johnson"}},
		{"name or description match", "RED", "", []string{"Sarah Johnson", "Ana Souza", "Fred Long"}},
		{"region exact", "", "Northwest", []string{"David Chen"}},
		{"region is case sensitive", "", "northwest", []string{}},
		{"conjunctive", "red", "Northeast", []string{"Sarah Johnson", "Fred Long"}},
		{"no match", "zzz", "", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterMissing(people, tc.query, tc.region)
			assert.NotNil(t, got)
			assert.Equal(t, tc.want, names(got))
		})
	}
}

func TestDistinctRegions(t *testing.T) {
	assert.Equal(t, []string{"Northeast", "Northwest"}, DistinctRegions(people))
	assert.Equal(t, []string{}, DistinctRegions(nil))
}

func TestHead(t *testing.T) {
	assert.Len(t, Head(people, 2), 2)
	assert.Len(t, Head(people, 6), 4)
	assert.Empty(t, Head([]models.FoundPerson{}, 3))
}
