// Package shard implements the shard supervisor: it wires one shard's
// acceptor, processor, and storage actor together over local channels and
// races their completion futures, per spec -- when any of the three
// terminates, the shard shuts down.
package shard

import (
	"context"
	"net"

	"golang.org/x/sync/errgroup"

	"kvshard/internal/acceptor"
	"kvshard/internal/frame"
	"kvshard/internal/klog"
	"kvshard/internal/processor"
	"kvshard/internal/router"
	"kvshard/internal/store"
)

// Shard owns one slice of the keyspace and the three actors that serve
// it. All shards in a process share the same TCP listener and the full
// table of storage handles (so every processor can reach every shard's
// storage actor), but each shard has its own storage Actor and Acceptor.
type Shard struct {
	index     int
	acceptor  *acceptor.Acceptor
	processor *processor.Processor
	storage   *store.Actor
}

// New builds shard index, whose storage actor is own and whose router can
// reach every shard via allHandles (allHandles[index] must be own.Handle()).
func New(index int, ln net.Listener, allHandles []store.Handle, own *store.Actor) *Shard {
	return &Shard{
		index:     index,
		acceptor:  acceptor.New(ln),
		processor: processor.New(router.New(allHandles)),
		storage:   own,
	}
}

// Run drives the shard's three actors until one of them exits or ctx is
// cancelled, then tears the rest down.
func (s *Shard) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := s.storage.Run(ctx)
		if ctx.Err() == nil {
			klog.Errorf("shard %d: storage actor exited: %v", s.index, err)
		}
		return err
	})

	g.Go(func() error {
		err := s.acceptor.Run(ctx)
		if ctx.Err() == nil {
			klog.Errorf("shard %d: acceptor exited: %v", s.index, err)
		}
		return err
	})

	g.Go(func() error {
		for {
			select {
			case conn, ok := <-s.acceptor.Conns():
				if !ok {
					return nil
				}
				go s.processor.HandleConnection(ctx, frame.NewStream(conn))
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	return g.Wait()
}
