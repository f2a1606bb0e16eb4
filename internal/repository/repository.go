// Package repository holds the GORM data access layer. Every write that can be
// part of a larger operation takes an optional *gorm.DB transaction; nil means
// "use the repository's own connection".
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

func conn(ctx context.Context, db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// firstOrNil turns gorm.ErrRecordNotFound into (nil, nil) for optional lookups.
func firstOrNil[T any](q *gorm.DB) (*T, error) {
	var out T
	err := q.First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
