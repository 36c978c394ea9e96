package repository

import (
	"context"
	"sync"
	"testing"

	"invoicing-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceNext_StartsAtOneAndIncrements(t *testing.T) {
	db := newTestDB(t)
	repo := NewSequenceRepository(db)

	for want := int64(1); want <= 3; want++ {
		got, err := repo.Next(context.Background(), model.SeqSaleOrder, "")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSequenceNext_ScopesAreIndependent(t *testing.T) {
	db := newTestDB(t)
	repo := NewSequenceRepository(db)

	v, err := repo.Next(context.Background(), model.SeqTokenNo, "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = repo.Next(context.Background(), model.SeqTokenNo, "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	// a new day starts a new counter
	v, err = repo.Next(context.Background(), model.SeqTokenNo, "2025-03-02")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	// a different name with the same scope is also independent
	v, err = repo.Next(context.Background(), model.SeqSaleOrder, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestSequenceNext_ConcurrentValuesAreUnique(t *testing.T) {
	db := newTestDB(t)
	repo := NewSequenceRepository(db)

	const calls = 25
	values := make([]int64, calls)
	errs := make([]error, calls)

	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			values[i], errs[i] = repo.Next(context.Background(), model.SeqSaleOrder, "")
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, calls)
	for i := 0; i < calls; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[values[i]], "value %d issued twice", values[i])
		seen[values[i]] = true
	}
	assert.Len(t, seen, calls)
}
