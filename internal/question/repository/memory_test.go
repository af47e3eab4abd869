package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/questionboard/questionboard/internal/question"
)

// interface conformance for every store
var (
	_ Repository = (*MemoryRepo)(nil)
	_ Repository = (*PostgresRepo)(nil)
	_ Repository = (*MongoRepo)(nil)
)

func TestMemoryRepoCRUD(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	q := &question.Question{Content: "hello", Status: question.StatusPending, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, r.Create(ctx, q))
	require.Equal(t, int64(1), q.ID)

	got, err := r.Get(ctx, q.ID)
	require.NoError(t, err)
	require.Equal(t, "hello", got.Content)

	later := now.Add(time.Minute)
	upd, err := r.UpdateStatus(ctx, q.ID, question.StatusAnswered, later)
	require.NoError(t, err)
	require.Equal(t, question.StatusAnswered, upd.Status)
	require.Equal(t, later, upd.UpdatedAt)
	require.Equal(t, now, upd.CreatedAt)

	require.NoError(t, r.Delete(ctx, q.ID))
	_, err = r.Get(ctx, q.ID)
	require.ErrorIs(t, err, question.ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, q.ID), question.ErrNotFound)

	_, err = r.UpdateStatus(ctx, 42, question.StatusArchived, later)
	require.ErrorIs(t, err, question.ErrNotFound)
}

func TestMemoryRepoListOrderAndFilter(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	statuses := []question.Status{question.StatusPending, question.StatusAnswered, question.StatusPending, question.StatusArchived}
	for i, s := range statuses {
		ts := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, r.Create(ctx, &question.Question{Content: "q", Status: s, CreatedAt: ts, UpdatedAt: ts}))
	}
	// same timestamp as the newest row: ties go to the higher id
	tie := base.Add(3 * time.Hour)
	require.NoError(t, r.Create(ctx, &question.Question{Content: "tie", Status: question.StatusPending, CreatedAt: tie, UpdatedAt: tie}))

	all, err := r.List(ctx, question.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	ids := make([]int64, 0, len(all))
	for _, q := range all {
		ids = append(ids, q.ID)
	}
	require.Equal(t, []int64{5, 4, 3, 2, 1}, ids)

	pending := question.StatusPending
	filtered, err := r.List(ctx, question.Filter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, filtered, 3)
	for _, q := range filtered {
		require.Equal(t, question.StatusPending, q.Status)
	}
}

func TestMemoryRepoReturnsCopies(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	q := &question.Question{Content: "orig", Status: question.StatusPending}
	require.NoError(t, r.Create(ctx, q))

	q.Content = "mutated by caller"
	got, err := r.Get(ctx, q.ID)
	require.NoError(t, err)
	require.Equal(t, "orig", got.Content)
}
