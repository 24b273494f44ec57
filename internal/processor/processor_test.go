package processor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kvshard/internal/frame"
	"kvshard/internal/router"
	"kvshard/internal/store"
)

func newTestProcessor(t *testing.T, shardCount int) *Processor {
	t.Helper()
	handles := make([]store.Handle, shardCount)
	for i := 0; i < shardCount; i++ {
		a := store.NewActor()
		ctx, cancel := context.WithCancel(context.Background())
		go func() { _ = a.Run(ctx) }()
		t.Cleanup(cancel)
		handles[i] = a.Handle()
	}
	return New(router.New(handles))
}

func bulkArr(parts ...string) frame.Frame {
	items := make([]frame.Frame, len(parts))
	for i, p := range parts {
		items[i] = frame.Bulk([]byte(p))
	}
	return frame.Arr(items...)
}

func TestDispatchPing(t *testing.T) {
	p := newTestProcessor(t, 2)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.True(t, frame.Equal(frame.SimpleStr("PONG"), p.Dispatch(ctx, bulkArr("PING"))))
	require.True(t, frame.Equal(frame.Bulk([]byte("hello")), p.Dispatch(ctx, bulkArr("PING", "hello"))))
}

func TestDispatchSetGet(t *testing.T) {
	p := newTestProcessor(t, 4)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.True(t, frame.Equal(frame.SimpleStr("OK"), p.Dispatch(ctx, bulkArr("SET", "k", "v"))))
	require.True(t, frame.Equal(frame.Bulk([]byte("v")), p.Dispatch(ctx, bulkArr("GET", "k"))))
	require.True(t, frame.Equal(frame.NullFrame(), p.Dispatch(ctx, bulkArr("GET", "missing"))))
}

func TestDispatchIncr(t *testing.T) {
	p := newTestProcessor(t, 4)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.True(t, frame.Equal(frame.SimpleStr("OK"), p.Dispatch(ctx, bulkArr("SET", "n", "41"))))
	require.True(t, frame.Equal(frame.Int64(42), p.Dispatch(ctx, bulkArr("INCR", "n"))))

	require.True(t, frame.Equal(frame.SimpleStr("OK"), p.Dispatch(ctx, bulkArr("SET", "s", "hi"))))
	require.True(t, frame.Equal(frame.ErrStr("not an integer"), p.Dispatch(ctx, bulkArr("INCR", "s"))))
}

func TestDispatchDel(t *testing.T) {
	p := newTestProcessor(t, 4)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	p.Dispatch(ctx, bulkArr("SET", "a", "1"))
	got := p.Dispatch(ctx, bulkArr("DEL", "a", "b"))
	require.True(t, frame.Equal(frame.Int64(1), got))
}

func TestDispatchExists(t *testing.T) {
	p := newTestProcessor(t, 4)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	p.Dispatch(ctx, bulkArr("SET", "a", "1"))
	p.Dispatch(ctx, bulkArr("SET", "b", "2"))
	got := p.Dispatch(ctx, bulkArr("EXISTS", "a", "b", "c"))
	require.True(t, frame.Equal(frame.Int64(2), got))
}

func TestDispatchConfigGetSave(t *testing.T) {
	p := newTestProcessor(t, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got := p.Dispatch(ctx, bulkArr("CONFIG", "GET", "save"))
	require.True(t, frame.Equal(frame.NullFrame(), got))
}

func TestDispatchDecodeErrorBecomesSimpleError(t *testing.T) {
	p := newTestProcessor(t, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got := p.Dispatch(ctx, bulkArr("FROB"))
	require.Equal(t, frame.SimpleError, got.Kind)
}
