package catalog

import (
	"context"
	"maps"

	"restaurant-catalog-api/keywords"
	"restaurant-catalog-api/models"
	"restaurant-catalog-api/store"
)

const verifyPageSize = 200

// Drift describes a restaurant whose stored keyword index differs from the
// index rebuilt from its current text.
type Drift struct {
	RestaurantID uint
	Stored       map[string]int
	Expected     map[string]int
}

// Verify rebuilds every restaurant's index and reports those that differ
// from what is stored. With fix set, drifted indexes are overwritten.
func (s *Service) Verify(ctx context.Context, fix bool) ([]Drift, error) {
	var drifts []Drift
	for page := 0; ; page++ {
		rs, err := s.store.FindWithKeywordPredicates(ctx, nil, page*verifyPageSize, verifyPageSize)
		if err != nil {
			return drifts, internal("list restaurants", err)
		}
		for i := range rs {
			expected := rebuild(&rs[i])
			if maps.Equal(map[string]int(rs[i].Keywords), expected) {
				continue
			}
			drifts = append(drifts, Drift{RestaurantID: rs[i].ID, Stored: rs[i].Keywords, Expected: expected})
			if fix {
				if err := s.repair(ctx, rs[i].ID); err != nil {
					return drifts, err
				}
			}
		}
		if len(rs) < verifyPageSize {
			return drifts, nil
		}
	}
}

func (s *Service) repair(ctx context.Context, id uint) error {
	return s.mutate(ctx, func(tx store.CatalogStore) error {
		r, err := tx.FindRestaurant(ctx, id, true)
		if err != nil {
			return internal("find restaurant", err)
		}
		r.Keywords = rebuild(r)
		if err := tx.SaveRestaurantKeywords(ctx, r); err != nil {
			return storeErr("save restaurant keywords", err)
		}
		return nil
	})
}

func rebuild(r *models.Restaurant) map[string]int {
	texts := []*string{&r.Name, r.Description}
	for i := range r.Dishes {
		texts = append(texts, &r.Dishes[i].Name, r.Dishes[i].Description)
	}
	return keywords.Fold(texts...)
}
