package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurant-catalog-api/keywords"
	"restaurant-catalog-api/logger"
	"restaurant-catalog-api/models"
	"restaurant-catalog-api/store"

	"go.uber.org/zap"
)

// Service runs the ownership-gated catalog workflows and keeps each
// restaurant's keyword index in step with its dishes.
type Service struct {
	store        store.CatalogStore
	maxRetries   int
	defaultLimit int
	maxLimit     int
	onConflict   func()
}

// New creates a catalog service.
func New(s store.CatalogStore) *Service {
	return &Service{
		store:        s,
		maxRetries:   3,
		defaultLimit: 10,
		maxLimit:     100,
		onConflict:   func() {},
	}
}

// WithLimits configures browse page sizes.
func (s *Service) WithLimits(defaultLimit, maxLimit int) *Service {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// WithMaxRetries sets how many times a workflow is re-run after a keyword
// index version conflict. Zero disables retries.
func (s *Service) WithMaxRetries(n int) *Service {
	if n >= 0 {
		s.maxRetries = n
	}
	return s
}

// OnConflict registers a hook called on every version conflict.
func (s *Service) OnConflict(fn func()) *Service {
	if fn != nil {
		s.onConflict = fn
	}
	return s
}

// RestaurantInput holds the fields of a new restaurant.
type RestaurantInput struct {
	Name        string
	Description *string
}

// DishInput holds the fields of a new dish.
type DishInput struct {
	RestaurantID uint
	Name         string
	Description  *string
	Price        *float64
	Photo        *string
}

// DishUpdate holds the fields to change on a dish. Nil fields are left alone.
type DishUpdate struct {
	ID          uint
	Name        *string
	Description *string
	Price       *float64
	Photo       *string
}

// CreateRestaurant creates a restaurant owned by ownerID with its keyword
// index seeded from name and description.
func (s *Service) CreateRestaurant(ctx context.Context, ownerID uint, in RestaurantInput) (*models.Restaurant, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	r := &models.Restaurant{
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: optional(in.Description),
	}
	kw := keywords.Extract(map[string]int{}, &r.Name, false)
	kw = keywords.Extract(kw, r.Description, false)
	r.Keywords = kw

	if err := s.store.CreateRestaurant(ctx, r); err != nil {
		return nil, internal("create restaurant", err)
	}
	r.Dishes = []models.Dish{}
	return r, nil
}

// AddDish adds a dish to one of the caller's restaurants and indexes its text.
func (s *Service) AddDish(ctx context.Context, ownerID uint, in DishInput) (*models.Dish, error) {
	switch {
	case in.RestaurantID == 0:
		return nil, fmt.Errorf("%w: restaurant_id is required", ErrValidation)
	case strings.TrimSpace(in.Name) == "":
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	case in.Price == nil:
		return nil, fmt.Errorf("%w: price is required", ErrValidation)
	case *in.Price < 0:
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	var dish *models.Dish
	err := s.mutate(ctx, func(tx store.CatalogStore) error {
		r, err := ownedRestaurant(ctx, tx, in.RestaurantID, ownerID)
		if err != nil {
			return err
		}

		d := &models.Dish{
			RestaurantID: r.ID,
			Name:         in.Name,
			Description:  optional(in.Description),
			Price:        *in.Price,
			Photo:        optional(in.Photo),
		}
		kw := keywords.Extract(r.Keywords, &d.Name, false)
		kw = keywords.Extract(kw, d.Description, false)
		r.Keywords = kw

		if err := tx.CreateDish(ctx, d); err != nil {
			return storeErr("create dish", err)
		}
		if err := tx.SaveRestaurantKeywords(ctx, r); err != nil {
			return storeErr("save restaurant keywords", err)
		}
		dish = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dish, nil
}

// UpdateDish changes a dish and moves its old text out of, and its new text
// into, the restaurant's keyword index.
func (s *Service) UpdateDish(ctx context.Context, ownerID uint, in DishUpdate) (*models.Dish, error) {
	if in.ID == 0 {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	var dish *models.Dish
	err := s.mutate(ctx, func(tx store.CatalogStore) error {
		d, r, err := ownedDish(ctx, tx, in.ID, ownerID)
		if err != nil {
			return err
		}

		kw := r.Keywords
		if in.Name != nil {
			kw = keywords.Extract(kw, &d.Name, true)
			kw = keywords.Extract(kw, in.Name, false)
			d.Name = *in.Name
		}
		if in.Description != nil {
			if d.Description != nil {
				kw = keywords.Extract(kw, d.Description, true)
			}
			kw = keywords.Extract(kw, in.Description, false)
			d.Description = optional(in.Description)
		}
		if in.Price != nil {
			d.Price = *in.Price
		}
		if in.Photo != nil {
			d.Photo = optional(in.Photo)
		}

		if err := tx.SaveDish(ctx, d); err != nil {
			return storeErr("save dish", err)
		}
		if in.Name != nil || in.Description != nil {
			r.Keywords = kw
			if err := tx.SaveRestaurantKeywords(ctx, r); err != nil {
				return storeErr("save restaurant keywords", err)
			}
		}
		dish = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dish, nil
}

// DeleteDish removes a dish after subtracting its text from the restaurant's
// keyword index.
func (s *Service) DeleteDish(ctx context.Context, ownerID, dishID uint) (*models.Dish, error) {
	if dishID == 0 {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}

	var dish *models.Dish
	err := s.mutate(ctx, func(tx store.CatalogStore) error {
		d, r, err := ownedDish(ctx, tx, dishID, ownerID)
		if err != nil {
			return err
		}

		kw := keywords.Extract(r.Keywords, &d.Name, true)
		kw = keywords.Extract(kw, d.Description, true)
		r.Keywords = kw

		// the subtraction needs the dish text, so the row goes last
		if err := tx.SaveRestaurantKeywords(ctx, r); err != nil {
			return storeErr("save restaurant keywords", err)
		}
		if err := tx.DeleteDish(ctx, d.ID); err != nil {
			return storeErr("delete dish", err)
		}
		dish = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dish, nil
}

// MyRestaurants lists the caller's restaurants with their dishes.
func (s *Service) MyRestaurants(ctx context.Context, ownerID uint) ([]models.Restaurant, error) {
	rs, err := s.store.FindRestaurantsByOwner(ctx, ownerID)
	if err != nil {
		return nil, internal("find restaurants by owner", err)
	}
	if rs == nil {
		rs = []models.Restaurant{}
	}
	return rs, nil
}

// Restaurant returns one of the caller's restaurants. Restaurants owned by
// someone else are reported as not found.
func (s *Service) Restaurant(ctx context.Context, ownerID, id uint) (*models.Restaurant, error) {
	r, err := s.store.FindRestaurant(ctx, id, true)
	if errors.Is(err, store.ErrNotFound) || (err == nil && r.OwnerID != ownerID) {
		return nil, fmt.Errorf("restaurant %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, internal("find restaurant", err)
	}
	return r, nil
}

// Dish returns one dish of the caller's restaurants, hiding other owners' dishes.
func (s *Service) Dish(ctx context.Context, ownerID, id uint) (*models.Dish, error) {
	d, _, err := ownedDish(ctx, s.store, id, ownerID)
	if errors.Is(err, ErrForbidden) {
		return nil, fmt.Errorf("dish %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// mutate runs fn in a transaction, re-running it when another request changed
// the same keyword index in between.
func (s *Service) mutate(ctx context.Context, fn func(tx store.CatalogStore) error) error {
	var err error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		err = s.store.Transaction(ctx, fn)
		if !errors.Is(err, store.ErrConflict) {
			break
		}
		s.onConflict()
		logger.FromContext(ctx).Debug("keyword index conflict, retrying",
			zap.Int("attempt", attempt+1), zap.Error(err))
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case isKind(err):
		return err
	default:
		return internal("transaction", err)
	}
}

func ownedRestaurant(ctx context.Context, tx store.CatalogStore, id, ownerID uint) (*models.Restaurant, error) {
	r, err := tx.FindRestaurant(ctx, id, false)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("restaurant %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, internal("find restaurant", err)
	}
	if r.OwnerID != ownerID {
		return nil, fmt.Errorf("restaurant %d: %w", id, ErrForbidden)
	}
	return r, nil
}

func ownedDish(ctx context.Context, tx store.CatalogStore, id, ownerID uint) (*models.Dish, *models.Restaurant, error) {
	d, err := tx.FindDish(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, fmt.Errorf("dish %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, nil, internal("find dish", err)
	}
	r, err := ownedRestaurant(ctx, tx, d.RestaurantID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	return d, r, nil
}

// optional maps an empty string to nil so absent and blank text index the same.
func optional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func internal(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}

// storeErr keeps version conflicts visible to mutate so it can retry.
func storeErr(op string, err error) error {
	if errors.Is(err, store.ErrConflict) {
		return err
	}
	return internal(op, err)
}

func isKind(err error) bool {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrForbidden, ErrConflict, ErrInternal} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
