package catalog

import (
	"context"

	"restaurant-catalog-api/keywords"
	"restaurant-catalog-api/models"
	"restaurant-catalog-api/store"
)

// BrowseQuery is a public free-text search. Offset counts pages, not rows.
type BrowseQuery struct {
	Query  string
	Limit  int
	Offset int
}

// Browse returns one page of restaurants whose keyword index contains at
// least one query token. An empty query matches every restaurant.
func (s *Service) Browse(ctx context.Context, q BrowseQuery) ([]models.Restaurant, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	skip := 0
	if q.Offset >= 0 {
		skip = q.Offset * limit
	}

	rs, err := s.store.FindWithKeywordPredicates(ctx, queryPredicates(q.Query), skip, limit)
	if err != nil {
		return nil, internal("browse restaurants", err)
	}
	if rs == nil {
		rs = []models.Restaurant{}
	}
	return rs, nil
}

// queryPredicates builds one existence predicate per distinct query token.
func queryPredicates(query string) []store.Predicate {
	seen := map[string]bool{}
	var preds []store.Predicate
	for _, tok := range keywords.Tokenize(query) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		preds = append(preds, store.HasKey("keywords", tok))
	}
	return preds
}
