package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SequenceRepository issues monotonically increasing values from named
// counters. A counter is identified by (name, scope_key); an empty scope key
// means the counter is global, a day-formatted scope key gives one counter
// per calendar day.
type SequenceRepository interface {
	Next(ctx context.Context, name, scopeKey string) (int64, error)
}

type sequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next increments the counter and returns the new value in one statement.
// The upsert-increment-returning form leaves no observation window between
// read and write, so two concurrent calls can never receive the same value.
func (r *sequenceRepository) Next(ctx context.Context, name, scopeKey string) (int64, error) {
	var value int64
	err := GetDB(ctx, r.db).Raw(`
		INSERT INTO sequence_counters (id, name, scope_key, value) VALUES (?, ?, ?, 1)
		ON CONFLICT (name, scope_key) DO UPDATE SET value = sequence_counters.value + 1
		RETURNING value
	`, uuid.New(), name, scopeKey).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
