// Package processor implements the per-shard command dispatcher: it pulls
// frames off a connection's frame.Stream, decodes them into commands,
// drives the matching handler against the local router.Router, and writes
// the reply frame back. A Processor holds nothing per-connection beyond
// the local call stack -- all per-connection state lives in the
// frame.Stream the caller passes in.
package processor

import (
	"context"
	"errors"
	"io"
	"sync"

	"kvshard/internal/command"
	"kvshard/internal/frame"
	"kvshard/internal/klog"
	"kvshard/internal/router"
	"kvshard/internal/store"
)

// Processor dispatches decoded commands against one shard's router.
type Processor struct {
	router *router.Router
}

// New builds a processor bound to r.
func New(r *router.Router) *Processor {
	return &Processor{router: r}
}

// HandleConnection runs the read-decode-dispatch-reply loop for one
// connection until the peer disconnects, a transport error occurs, or ctx
// is found cancelled (it is checked before each frame is read; a read that
// is already blocked is not interrupted). Decode errors are reported to
// the client as a SimpleError and do not end the loop. A parser error is
// also reported as a SimpleError, but then ends the loop, since the parser
// does not resynchronize its buffer. Transport errors are logged and end
// the loop.
func (p *Processor) HandleConnection(ctx context.Context, stream *frame.Stream) {
	for {
		if ctx.Err() != nil {
			return
		}
		f, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			if errors.Is(err, frame.ErrInvalidFirstByte) || errors.Is(err, frame.ErrInvalidInteger) ||
				errors.Is(err, frame.ErrInvalidBulkLen) || errors.Is(err, frame.ErrInvalidArrayLen) ||
				errors.Is(err, frame.ErrInvalidNull) {
				stream.Queue(frame.ErrStr(err.Error()))
				_ = stream.Flush()
			}
			klog.Warnf("dropping connection: %v", err)
			return
		}

		reply := p.Dispatch(ctx, f)

		stream.Queue(reply)
		if err := stream.Flush(); err != nil {
			klog.Warnf("dropping connection after write failure: %v", err)
			return
		}
	}
}

// Dispatch decodes and runs a single request frame, returning the reply
// frame. It never returns an error: every failure mode this layer sees
// becomes a SimpleError frame per spec.
func (p *Processor) Dispatch(ctx context.Context, f frame.Frame) frame.Frame {
	cmd, err := command.Decode(f)
	if err != nil {
		return frame.ErrStr(err.Error())
	}

	switch cmd.Kind {
	case command.Ping:
		return handlePing(cmd)
	case command.Get:
		return p.handleGet(ctx, cmd)
	case command.Set:
		return p.handleSet(ctx, cmd)
	case command.Del:
		return p.handleDel(ctx, cmd)
	case command.Exists:
		return p.handleExists(ctx, cmd)
	case command.Incr:
		return p.handleIncr(ctx, cmd)
	case command.ConfigGet:
		return frame.NullFrame()
	default:
		return frame.ErrStr("unknown command")
	}
}

func handlePing(cmd command.Command) frame.Frame {
	if cmd.Msg == nil {
		return frame.SimpleStr("PONG")
	}
	return frame.Bulk(cmd.Msg)
}

func (p *Processor) handleGet(ctx context.Context, cmd command.Command) frame.Frame {
	v, ok, err := p.router.Get(ctx, store.NewGString(cmd.Key))
	if err != nil {
		return frame.ErrStr("internal error")
	}
	if !ok {
		return frame.NullFrame()
	}
	return frame.Bulk(v.Bytes())
}

func (p *Processor) handleSet(ctx context.Context, cmd command.Command) frame.Frame {
	_, _, err := p.router.Set(ctx, store.NewGString(cmd.Key), store.NewStringValue(cmd.Val))
	if err != nil {
		return frame.ErrStr("internal error")
	}
	return frame.SimpleStr("OK")
}

// handleDel issues one delete per key concurrently, awaits all of them,
// and replies with the count of keys that were actually removed.
func (p *Processor) handleDel(ctx context.Context, cmd command.Command) frame.Frame {
	existed := p.fanOut(cmd.Keys, func(key store.GString) bool {
		_, existed, err := p.router.Delete(ctx, key)
		return err == nil && existed
	})
	return frame.Int64(countTrue(existed))
}

// handleExists issues one get per key concurrently, awaits all of them,
// and replies with the count of keys currently present.
func (p *Processor) handleExists(ctx context.Context, cmd command.Command) frame.Frame {
	present := p.fanOut(cmd.Keys, func(key store.GString) bool {
		_, ok, err := p.router.Get(ctx, key)
		return err == nil && ok
	})
	return frame.Int64(countTrue(present))
}

func (p *Processor) handleIncr(ctx context.Context, cmd command.Command) frame.Frame {
	fn, outcome := store.IncrUpdateFunc(1)
	updated, _, err := p.router.Update(ctx, store.NewGString(cmd.Key), fn)
	if err != nil {
		return frame.ErrStr("internal error")
	}
	switch *outcome {
	case store.IncrNotInteger:
		return frame.ErrStr("not an integer")
	case store.IncrOverflow:
		return frame.ErrStr("tried to increment with overflow")
	default:
		return frame.Int64(updated.Int.Int64())
	}
}

// fanOut runs f concurrently over each key and returns the per-key
// results in the same order. DEL/EXISTS over multiple keys are issued
// concurrently per spec; individual per-key operations may interleave
// with other clients' requests to the same key.
func (p *Processor) fanOut(keys [][]byte, f func(store.GString) bool) []bool {
	results := make([]bool, len(keys))
	var wg sync.WaitGroup
	wg.Add(len(keys))
	for i, k := range keys {
		go func(i int, k []byte) {
			defer wg.Done()
			results[i] = f(store.NewGString(k))
		}(i, k)
	}
	wg.Wait()
	return results
}

func countTrue(bs []bool) int64 {
	var n int64
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}
