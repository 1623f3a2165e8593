package memory

import (
	"context"
	"testing"
	"time"

	"autostream-assistant/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(time.Hour)

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)

	s := store.NewSession("abc")
	s.AddUserMessage("hi")
	require.NoError(t, repo.Save(ctx, s))
	assert.Equal(t, 1, repo.Count())

	got, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "hi", got.LastUserText())

	require.NoError(t, repo.Delete(ctx, "abc"))
	_, err = repo.Get(ctx, "abc")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestSessionRepository_StoresCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(time.Hour)

	s := store.NewSession("abc")
	require.NoError(t, repo.Save(ctx, s))
	s.AddUserMessage("not saved")

	got, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, got.Messages)

	got.LeadInfo["name"] = "John"
	again, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, again.LeadInfo)
}

func TestSessionRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(20 * time.Millisecond)

	require.NoError(t, repo.Save(ctx, store.NewSession("abc")))
	time.Sleep(50 * time.Millisecond)

	_, err := repo.Get(ctx, "abc")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}
