package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Keywords maps a normalized word to the number of times it occurs across a
// restaurant's own text and the text of its dishes. Stored as a JSON object.
type Keywords map[string]int

// Value implements driver.Valuer. A nil map is written as "{}".
func (k Keywords) Value() (driver.Value, error) {
	if k == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]int(k))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (k *Keywords) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*k = Keywords{}
		return nil
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return fmt.Errorf("keywords: unsupported column type %T", src)
	}
	m := map[string]int{}
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("keywords: %w", err)
	}
	*k = m
	return nil
}

type Restaurant struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OwnerID     uint      `json:"owner_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Description *string   `json:"description"`
	Keywords    Keywords  `json:"keywords" gorm:"type:text;not null;default:'{}'"`
	Version     int       `json:"-" gorm:"not null;default:0"` // optimistic lock for Keywords
	Dishes      []Dish    `json:"dishes" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Dish struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Description  *string   `json:"description"`
	Price        float64   `json:"price" gorm:"not null"`
	Photo        *string   `json:"photo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
