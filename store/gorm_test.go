package store_test

import (
	"context"
	"errors"
	"testing"

	"restaurant-catalog-api/models"
	"restaurant-catalog-api/store"
	"restaurant-catalog-api/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *store.GormStore, ownerID uint, name string, kw models.Keywords) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{OwnerID: ownerID, Name: name, Keywords: kw}
	require.NoError(t, s.CreateRestaurant(context.Background(), r))
	return r
}

func names(rs []models.Restaurant) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func TestFindWithKeywordPredicates_OrSemantics(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewDB(t))
	seed(t, s, 1, "Salmon Place", models.Keywords{"salmon": 1})
	seed(t, s, 1, "Tuna Place", models.Keywords{"tuna": 3})
	seed(t, s, 2, "Pizza Place", models.Keywords{"pizza": 1})

	preds := []store.Predicate{store.HasKey("keywords", "salmon"), store.HasKey("keywords", "tuna")}
	rs, err := s.FindWithKeywordPredicates(ctx, preds, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Salmon Place", "Tuna Place"}, names(rs))

	rs, err = s.FindWithKeywordPredicates(ctx, []store.Predicate{store.HasKey("keywords", "ramen")}, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestFindWithKeywordPredicates_NoPredicatesMatchesAll(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewDB(t))
	for _, n := range []string{"A", "B", "C", "D"} {
		seed(t, s, 1, n, nil)
	}

	rs, err := s.FindWithKeywordPredicates(ctx, nil, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, names(rs))

	rs, err = s.FindWithKeywordPredicates(ctx, nil, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, names(rs))
}

func TestFindWithKeywordPredicates_NumericAndDottedKeys(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewDB(t))
	seed(t, s, 1, "Numbers", models.Keywords{"7up": 1, "2024": 1})

	for _, key := range []string{"7up", "2024"} {
		rs, err := s.FindWithKeywordPredicates(ctx, []store.Predicate{store.HasKey("keywords", key)}, 0, 10)
		require.NoError(t, err)
		assert.Len(t, rs, 1, key)
	}
	rs, err := s.FindWithKeywordPredicates(ctx, []store.Predicate{store.HasKey("keywords", "7up.x")}, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestFindWithKeywordPredicates_PreloadsDishes(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewDB(t))
	r := seed(t, s, 1, "Sushi House", models.Keywords{"sushi": 1})
	require.NoError(t, s.CreateDish(ctx, &models.Dish{RestaurantID: r.ID, Name: "Salmon Roll", Price: 9}))
	require.NoError(t, s.CreateDish(ctx, &models.Dish{RestaurantID: r.ID, Name: "Tuna Roll", Price: 10}))

	rs, err := s.FindWithKeywordPredicates(ctx, nil, 0, 10)
	require.NoError(t, err)
	require.Len(t, rs, 1)
	require.Len(t, rs[0].Dishes, 2)
	assert.Equal(t, "Salmon Roll", rs[0].Dishes[0].Name)
}

func TestSaveRestaurantKeywords_VersionCheck(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewDB(t))
	r := seed(t, s, 1, "Sushi House", models.Keywords{"sushi": 1})

	stale, err := s.FindRestaurant(ctx, r.ID, false)
	require.NoError(t, err)

	r.Keywords = models.Keywords{"sushi": 1, "salmon": 1}
	require.NoError(t, s.SaveRestaurantKeywords(ctx, r))
	assert.Equal(t, 1, r.Version)

	stale.Keywords = models.Keywords{"tuna": 1}
	err = s.SaveRestaurantKeywords(ctx, stale)
	assert.True(t, errors.Is(err, store.ErrConflict), "got %v", err)

	got, err := s.FindRestaurant(ctx, r.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.Keywords{"sushi": 1, "salmon": 1}, got.Keywords)
	assert.Equal(t, 1, got.Version)
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewDB(t))
	r := seed(t, s, 1, "Sushi House", nil)

	boom := errors.New("boom")
	err := s.Transaction(ctx, func(tx store.CatalogStore) error {
		if err := tx.CreateDish(ctx, &models.Dish{RestaurantID: r.ID, Name: "Salmon Roll", Price: 9}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.FindRestaurant(ctx, r.ID, true)
	require.NoError(t, err)
	assert.Empty(t, got.Dishes)
}

func TestFindAndDelete_NotFound(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewDB(t))

	_, err := s.FindRestaurant(ctx, 42, false)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.FindDish(ctx, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteDish(ctx, 42), store.ErrNotFound)
}

func TestFindRestaurantsByOwner(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewDB(t))
	seed(t, s, 1, "Mine", nil)
	seed(t, s, 2, "Theirs", nil)
	seed(t, s, 1, "Also Mine", nil)

	rs, err := s.FindRestaurantsByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mine", "Also Mine"}, names(rs))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.NewDB(t))

	u := &models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Role: models.RoleOwner}
	require.NoError(t, s.CreateUser(ctx, u))

	got, err := s.FindUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = s.FindUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, got.Role)

	_, err = s.FindUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	dup := &models.User{Name: "Ana 2", Email: "ana@example.com", PasswordHash: "y", Role: models.RoleClient}
	assert.Error(t, s.CreateUser(ctx, dup))
}
