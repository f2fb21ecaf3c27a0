package audit

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherSyncEmit(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store)

	err := p.Emit(context.Background(), Event{
		Action:   string(EventIBANDecoded),
		Country:  "DE",
		Outcome:  "valid",
		IBANHash: "abcd1234abcd1234",
	})
	require.NoError(t, err)

	events, err := store.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "iban_decoded", events[0].Action)
	assert.Equal(t, "DE", events[0].Country)
	assert.False(t, events[0].Timestamp.IsZero(), "timestamp should be stamped on emit")
}

func TestPublisherAsyncEmitDrainsOnClose(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store, WithAsyncBuffer(16))

	for i := 0; i < 5; i++ {
		require.NoError(t, p.Emit(context.Background(), Event{
			Action:  string(EventIBANGenerated),
			Country: "FR",
		}))
	}
	p.Close()

	events, err := store.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

func TestPublisherPreservesTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store)
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, p.Emit(context.Background(), Event{
		Action:    string(EventDecodeFailed),
		Timestamp: ts,
	}))

	events, err := store.ListRecent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ts, events[0].Timestamp)
}

func TestInMemoryStoreListRecent(t *testing.T) {
	store := NewInMemoryStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(context.Background(), Event{
			Action: "iban_decoded",
			Reason: strconv.Itoa(i),
		}))
	}

	t.Run("newest first", func(t *testing.T) {
		events, err := store.ListRecent(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "4", events[0].Reason)
		assert.Equal(t, "3", events[1].Reason)
	})

	t.Run("zero limit returns all", func(t *testing.T) {
		events, err := store.ListRecent(context.Background(), 0)
		require.NoError(t, err)
		assert.Len(t, events, 5)
	})

	t.Run("limit beyond size returns all", func(t *testing.T) {
		events, err := store.ListRecent(context.Background(), 100)
		require.NoError(t, err)
		assert.Len(t, events, 5)
	})

	t.Run("clear empties the store", func(t *testing.T) {
		store.Clear()
		events, err := store.ListRecent(context.Background(), 0)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}
