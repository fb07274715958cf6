package recordstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	record := Record{"id": "bk-1", "customerId": "cust-1"}
	require.NoError(t, store.Put(ctx, CollectionBooking, "bk-1", record))

	got, err := store.Get(ctx, CollectionBooking, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, "cust-1", got["customerId"])

	records, err := store.List(ctx, CollectionBooking)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestMemoryStoreGetUnknownID(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), CollectionBooking, "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, CollectionBooking, "bk-1", Record{"id": "bk-1"}))

	require.NoError(t, store.Delete(ctx, CollectionBooking, "bk-1"))

	_, err := store.Get(ctx, CollectionBooking, "bk-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, CollectionBooking, "bk-1"), ErrNotFound)
}

func TestMemoryStoreCollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, CollectionBooking, "x", Record{"id": "x"}))

	_, err := store.Get(ctx, CollectionUser, "x")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, CollectionUser, "u-1", Record{"id": "u-1", "password": "hash"}))

	got, err := store.Get(ctx, CollectionUser, "u-1")
	require.NoError(t, err)
	delete(got, "password")

	again, err := store.Get(ctx, CollectionUser, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "hash", again["password"], "mutating a returned record must not touch the store")
}
