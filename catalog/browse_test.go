package catalog

import (
	"context"
	"testing"

	"restaurant-catalog-api/models"
	"restaurant-catalog-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restaurantNames(rs []models.Restaurant) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func TestBrowse_OrSemantics(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	salmon := createRestaurant(t, svc, ownerA, "Harbor", nil)
	addDish(t, svc, ownerA, salmon.ID, "Salmon", nil)
	tuna := createRestaurant(t, svc, ownerB, "Pier", nil)
	addDish(t, svc, ownerB, tuna.ID, "Tuna", nil)
	createRestaurant(t, svc, ownerB, "Pizzeria", str("wood fired"))

	rs, err := svc.Browse(ctx, BrowseQuery{Query: "salmon TUNA"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Harbor", "Pier"}, restaurantNames(rs))
	require.Len(t, rs[0].Dishes, 1)
	assert.Equal(t, "Salmon", rs[0].Dishes[0].Name)
}

func TestBrowse_DeletedDishNoLongerMatches(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	r := createRestaurant(t, svc, ownerA, "Harbor", nil)
	d := addDish(t, svc, ownerA, r.ID, "Salmon", nil)

	rs, err := svc.Browse(ctx, BrowseQuery{Query: "salmon"})
	require.NoError(t, err)
	assert.Len(t, rs, 1)

	_, err = svc.DeleteDish(ctx, ownerA, d.ID)
	require.NoError(t, err)
	rs, err = svc.Browse(ctx, BrowseQuery{Query: "salmon"})
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestBrowse_EmptyQueryMatchesAll(t *testing.T) {
	svc, _ := newService(t)
	for _, n := range []string{"A", "B", "C"} {
		createRestaurant(t, svc, ownerA, n, nil)
	}
	for _, q := range []string{"", "  ", "?!"} {
		rs, err := svc.Browse(context.Background(), BrowseQuery{Query: q})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, restaurantNames(rs), "query %q", q)
	}
}

func TestBrowse_Pagination(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		createRestaurant(t, svc, ownerA, n, nil)
	}

	tests := []struct {
		name string
		q    BrowseQuery
		want []string
	}{
		{"limit 1 offset 2", BrowseQuery{Limit: 1, Offset: 2}, []string{"C"}},
		{"limit 2 offset 1", BrowseQuery{Limit: 2, Offset: 1}, []string{"C", "D"}},
		{"last partial page", BrowseQuery{Limit: 2, Offset: 2}, []string{"E"}},
		{"past the end", BrowseQuery{Limit: 2, Offset: 9}, []string{}},
		{"negative offset starts at zero", BrowseQuery{Limit: 2, Offset: -3}, []string{"A", "B"}},
		{"default limit", BrowseQuery{}, []string{"A", "B", "C", "D", "E"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := svc.Browse(ctx, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, restaurantNames(rs))
		})
	}
}

func TestBrowse_LimitCapped(t *testing.T) {
	svc, _ := newService(t)
	svc.WithLimits(2, 3)
	for _, n := range []string{"A", "B", "C", "D"} {
		createRestaurant(t, svc, ownerA, n, nil)
	}

	rs, err := svc.Browse(context.Background(), BrowseQuery{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, rs, 3)

	rs, err = svc.Browse(context.Background(), BrowseQuery{})
	require.NoError(t, err)
	assert.Len(t, rs, 2)
}

func TestQueryPredicates_Deduplicates(t *testing.T) {
	got := queryPredicates("Roll roll, SALMON")
	assert.Equal(t, []store.Predicate{
		store.HasKey("keywords", "roll"),
		store.HasKey("keywords", "salmon"),
	}, got)
	assert.Empty(t, queryPredicates(" - "))
}
