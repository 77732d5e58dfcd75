package mailbox

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryRecvOnEmptyMailboxReturnsImmediately(t *testing.T) {
	_, rx := New[int]()

	v, ok := rx.TryRecv()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, 0, rx.Len())
}

func TestTryRecvReturnsOneMessagePerCallOldestFirst(t *testing.T) {
	tx, rx := New[string]()

	require.NoError(t, tx.Send("first"))
	require.NoError(t, tx.Clone().Send("second"))
	require.Equal(t, 2, rx.Len())

	v, ok := rx.TryRecv()
	require.True(t, ok)
	assert.Equal(t, "first", v)
	assert.Equal(t, 1, rx.Len())

	v, ok = rx.TryRecv()
	require.True(t, ok)
	assert.Equal(t, "second", v)

	_, ok = rx.TryRecv()
	assert.False(t, ok)
}

func TestClonedSendersDeliverEverythingFromManyGoroutines(t *testing.T) {
	tx, rx := New[int]()

	const producers = 8
	const perProducer = 250

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(sender *Sender[int], base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				_ = sender.Send(base + i)
			}
		}(tx.Clone(), p*perProducer)
	}
	wg.Wait()

	seen := make(map[int]bool)
	for {
		v, ok := rx.TryRecv()
		if !ok {
			break
		}
		seen[v] = true
	}
	assert.Len(t, seen, producers*perProducer)
}

func TestSendAfterCloseFailsButQueuedMessagesSurvive(t *testing.T) {
	tx, rx := New[int]()
	require.NoError(t, tx.Send(7))

	rx.Close()
	assert.ErrorIs(t, tx.Send(8), ErrClosed)

	v, ok := rx.TryRecv()
	require.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestNotifyFiresWhenMailboxBecomesNonEmpty(t *testing.T) {
	tx, rx := New[int]()

	select {
	case <-rx.Notify():
		t.Fatal("unexpected notification on empty mailbox")
	default:
	}

	require.NoError(t, tx.Send(1))
	require.NoError(t, tx.Send(2))

	select {
	case <-rx.Notify():
	default:
		t.Fatal("expected a notification after first send")
	}

	// tokens coalesce: the second send found a non-empty queue
	select {
	case <-rx.Notify():
		t.Fatal("expected a single coalesced notification")
	default:
	}
}
