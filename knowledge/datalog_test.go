package knowledge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housing-info/models"
)

func TestEvaluateCannedQueries(t *testing.T) {
	houses := append(twoHouses(), models.House{
		Price: 800000, Area: 1500, Bedrooms: 3, Bathrooms: 2, Stories: 2,
		PrefArea: true, FurnishingStatus: models.Unfurnished,
	}, models.House{
		// exactly at the threshold: neither affordable nor luxury
		Price: 1000000, Area: 2000, Bedrooms: 3, Bathrooms: 2, Stories: 2,
		FurnishingStatus: models.Furnished,
	})

	results, err := Evaluate(houses, Options{})
	require.NoError(t, err)

	want := Results{
		QueryAffordable: {1, 3},
		QueryLuxury:     {2},
		QueryPreferred:  {2, 3},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateEmptyDataset(t *testing.T) {
	results, err := Evaluate(nil, Options{})
	require.NoError(t, err)
	for _, q := range Queries {
		assert.Empty(t, results[q], "query %s", q)
	}
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(" Luxury ")
	require.NoError(t, err)
	assert.Equal(t, QueryLuxury, q)
	assert.Equal(t, "luxury_house", q.Predicate())

	_, err = ParseQuery("cheap")
	assert.Error(t, err)
}
