package store

import (
	"context"
	"errors"

	"restaurant-catalog-api/models"
)

var (
	// ErrNotFound signals a missing row.
	ErrNotFound = errors.New("record not found")
	// ErrConflict signals that a restaurant's keyword index changed since it was read.
	ErrConflict = errors.New("keyword index version conflict")
)

// CatalogStore is the persistence contract for restaurants and dishes.
type CatalogStore interface {
	CreateRestaurant(ctx context.Context, r *models.Restaurant) error
	FindRestaurant(ctx context.Context, id uint, withDishes bool) (*models.Restaurant, error)
	FindRestaurantsByOwner(ctx context.Context, ownerID uint) ([]models.Restaurant, error)
	// FindWithKeywordPredicates returns restaurants matching at least one
	// predicate (all restaurants when preds is empty), ordered by id, with dishes.
	FindWithKeywordPredicates(ctx context.Context, preds []Predicate, skip, take int) ([]models.Restaurant, error)
	// SaveRestaurantKeywords stores r.Keywords only if r.Version still matches
	// the stored version, and bumps r.Version. Returns ErrConflict otherwise.
	SaveRestaurantKeywords(ctx context.Context, r *models.Restaurant) error

	FindDish(ctx context.Context, id uint) (*models.Dish, error)
	CreateDish(ctx context.Context, d *models.Dish) error
	SaveDish(ctx context.Context, d *models.Dish) error
	DeleteDish(ctx context.Context, id uint) error

	// Transaction runs fn against a store bound to one transaction. A non-nil
	// error from fn rolls every write back.
	Transaction(ctx context.Context, fn func(tx CatalogStore) error) error
}

// UserStore persists accounts for the identity endpoints.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}
