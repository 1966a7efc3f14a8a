package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jsonvault/jsonvault/internal/apidoc"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	d := &apidoc.ApiDocument{Slug: "widgets", Name: "Widget feed", JSONData: `{"a":1}`}
	require.NoError(t, r.Create(ctx, d))
	require.False(t, d.CreatedAt.IsZero())
	require.Equal(t, d.CreatedAt, d.UpdatedAt)

	got, err := r.Get(ctx, "widgets")
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, got.JSONData)

	require.NoError(t, r.Update(ctx, "widgets", `{"a":2}`))
	got2, err := r.Get(ctx, "widgets")
	require.NoError(t, err)
	require.Equal(t, `{"a":2}`, got2.JSONData)
	require.True(t, got2.UpdatedAt.After(got2.CreatedAt))
	require.Equal(t, got.CreatedAt, got2.CreatedAt)

	require.NoError(t, r.Delete(ctx, "widgets"))
	_, err = r.Get(ctx, "widgets")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepoUpdateBumpsTimestampImmediately(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	require.NoError(t, r.Create(ctx, &apidoc.ApiDocument{Slug: "fast", Name: "fast", JSONData: `1`}))

	// back-to-back writes must still yield strictly increasing updatedAt
	require.NoError(t, r.Update(ctx, "fast", `2`))
	first, err := r.Get(ctx, "fast")
	require.NoError(t, err)
	require.True(t, first.UpdatedAt.After(first.CreatedAt))

	require.NoError(t, r.Update(ctx, "fast", `3`))
	second, err := r.Get(ctx, "fast")
	require.NoError(t, err)
	require.True(t, second.UpdatedAt.After(first.UpdatedAt))
	require.Equal(t, first.CreatedAt, second.CreatedAt)
}

func TestMemoryRepoCreateConflict(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	first := &apidoc.ApiDocument{Slug: "x", Name: "first", JSONData: `1`}
	require.NoError(t, r.Create(ctx, first))

	second := &apidoc.ApiDocument{Slug: "x", Name: "second", JSONData: `2`}
	require.ErrorIs(t, r.Create(ctx, second), ErrAlreadyExists)

	// the stored document is still the first caller's payload
	got, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Equal(t, "first", got.Name)
	require.Equal(t, `1`, got.JSONData)
}

func TestMemoryRepoListOrdering(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	for _, slug := range []string{"first", "second", "third"} {
		require.NoError(t, r.Create(ctx, &apidoc.ApiDocument{Slug: slug, Name: slug, JSONData: `{}`}))
		time.Sleep(2 * time.Millisecond)
	}

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	// newest first
	require.Equal(t, "third", list[0].Slug)
	require.Equal(t, "first", list[2].Slug)
}

func TestMemoryRepoMissing(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	require.ErrorIs(t, r.Update(ctx, "missing", `{}`), ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, "missing"), ErrNotFound)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	require.NoError(t, r.Ping(ctx))
}
