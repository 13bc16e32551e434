package store

import (
	"context"
	"errors"
	"fmt"

	"restaurant-catalog-api/models"

	"gorm.io/gorm"
)

// GormStore implements CatalogStore on top of gorm.
type GormStore struct {
	db *gorm.DB
}

// New wraps an open gorm connection.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Dish{},
	)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) CreateRestaurant(ctx context.Context, r *models.Restaurant) error {
	if r.Keywords == nil {
		r.Keywords = models.Keywords{}
	}
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *GormStore) FindRestaurant(ctx context.Context, id uint, withDishes bool) (*models.Restaurant, error) {
	q := s.db.WithContext(ctx)
	if withDishes {
		q = q.Preload("Dishes", orderByID)
	}
	var r models.Restaurant
	if err := q.First(&r, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &r, nil
}

func (s *GormStore) FindRestaurantsByOwner(ctx context.Context, ownerID uint) ([]models.Restaurant, error) {
	var rs []models.Restaurant
	err := s.db.WithContext(ctx).
		Preload("Dishes", orderByID).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&rs).Error
	return rs, err
}

func (s *GormStore) FindWithKeywordPredicates(ctx context.Context, preds []Predicate, skip, take int) ([]models.Restaurant, error) {
	q := s.db.WithContext(ctx).Preload("Dishes", orderByID)
	if len(preds) > 0 {
		q = q.Where(anyOf(preds))
	}
	var rs []models.Restaurant
	err := q.Order("id").Offset(skip).Limit(take).Find(&rs).Error
	return rs, err
}

func (s *GormStore) SaveRestaurantKeywords(ctx context.Context, r *models.Restaurant) error {
	res := s.db.WithContext(ctx).
		Model(&models.Restaurant{}).
		Where("id = ? AND version = ?", r.ID, r.Version).
		Updates(map[string]interface{}{
			"keywords": r.Keywords,
			"version":  gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("restaurant %d at version %d: %w", r.ID, r.Version, ErrConflict)
	}
	r.Version++
	return nil
}

func (s *GormStore) FindDish(ctx context.Context, id uint) (*models.Dish, error) {
	var d models.Dish
	if err := s.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

func (s *GormStore) CreateDish(ctx context.Context, d *models.Dish) error {
	return s.db.WithContext(ctx).Create(d).Error
}

func (s *GormStore) SaveDish(ctx context.Context, d *models.Dish) error {
	return s.db.WithContext(ctx).Save(d).Error
}

func (s *GormStore) DeleteDish(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Dish{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx CatalogStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
