package store

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Predicate tests whether a JSON object column has an entry for Key.
// The stored value is never consulted.
type Predicate struct {
	Field string
	Key   string
}

// HasKey builds a key-existence predicate on a JSON object column.
func HasKey(field, key string) Predicate {
	return Predicate{Field: field, Key: key}
}

func (p Predicate) expr() clause.Expr {
	return gorm.Expr("json_extract(?, ?) IS NOT NULL", clause.Column{Name: p.Field}, jsonPath(p.Key))
}

// jsonPath quotes key as a single object member so that keys starting with a
// digit or containing dots are not read as path syntax.
func jsonPath(key string) string {
	return `$."` + strings.ReplaceAll(key, `"`, `\"`) + `"`
}

func anyOf(preds []Predicate) clause.Expression {
	exprs := make([]clause.Expression, 0, len(preds))
	for _, p := range preds {
		exprs = append(exprs, p.expr())
	}
	return clause.Or(exprs...)
}
