package uart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMailboxTakeEmpty(t *testing.T) {
	m := NewMailbox()
	_, ok := m.Take()
	require.False(t, ok)
}

func TestMailboxPutTake(t *testing.T) {
	m := NewMailbox()
	m.Put('A')
	b, ok := m.Take()
	require.True(t, ok)
	require.Equal(t, byte('A'), b)
	_, ok = m.Take()
	require.False(t, ok, "a byte is taken exactly once")
}

func TestMailboxOverwrite(t *testing.T) {
	m := NewMailbox()
	m.Put(0x11)
	m.Put(0x22)
	b, ok := m.Take()
	require.True(t, ok)
	require.Equal(t, byte(0x22), b)
}

func TestMailboxWaitWakesOnPut(t *testing.T) {
	m := NewMailbox()
	done := make(chan byte, 1)
	go func() {
		b, err := m.Wait(context.Background())
		if err == nil {
			done <- b
		}
	}()
	time.Sleep(10 * time.Millisecond)
	m.Put(0x5a)
	select {
	case b := <-done:
		require.Equal(t, byte(0x5a), b)
	case <-time.After(time.Second):
		t.Fatal("waiter not woken")
	}
}

func TestMailboxWaitCancel(t *testing.T) {
	m := NewMailbox()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Wait(ctx)
	require.Equal(t, context.Canceled, err)
}

func TestMailboxWaitConsumesPendingByte(t *testing.T) {
	m := NewMailbox()
	m.Put(0x7f)
	b, err := m.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, byte(0x7f), b)
}
