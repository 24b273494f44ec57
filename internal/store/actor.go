package store

import (
	"context"
	"fmt"
)

// UpdateFunc is the compound-mutation primitive described by the spec:
// given the current binding (or present == false for an absent key), it
// returns the new binding and whether the key should end up present. The
// actor invokes it synchronously against the live map entry, so UpdateFunc
// implementations may safely assume no other goroutine observes the key
// mid-update.
type UpdateFunc func(current Value, present bool) (next Value, present2 bool)

type getRequest struct {
	key   GString
	reply chan getResult
}

type getResult struct {
	value Value
	ok    bool
}

type setRequest struct {
	key   GString
	value Value
	reply chan setResult
}

type setResult struct {
	original Value
	existed  bool
}

type deleteRequest struct {
	key   GString
	reply chan deleteResult
}

type deleteResult struct {
	deleted Value
	existed bool
}

type updateRequest struct {
	key   GString
	fn    UpdateFunc
	reply chan updateResult
}

type updateResult struct {
	updated Value
	present bool
}

// Actor is the single-writer storage actor for one shard: a sequential
// consumer of its inbox that owns a Map no other goroutine may touch.
// Requests are served strictly in arrival order.
type Actor struct {
	inbox chan any
	m     *Map
}

// NewActor creates an actor with an empty map and an inbox sized for a
// modest burst of concurrent DEL/EXISTS fan-out without blocking callers.
func NewActor() *Actor {
	return &Actor{
		inbox: make(chan any, 256),
		m:     NewMap(),
	}
}

// Handle returns a clonable, goroutine-safe address of this actor's inbox.
func (a *Actor) Handle() Handle {
	return Handle{inbox: a.inbox}
}

// Run drains the inbox until ctx is cancelled, applying each request to
// the map and replying on its one-shot channel. It is the actor's only
// writer of m and must be driven by exactly one goroutine.
func (a *Actor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-a.inbox:
			a.handle(msg)
		}
	}
}

func (a *Actor) handle(msg any) {
	switch req := msg.(type) {
	case getRequest:
		v, ok := a.m.Get(req.key)
		req.reply <- getResult{value: v, ok: ok}
	case setRequest:
		old, existed := a.m.Set(req.key, req.value)
		req.reply <- setResult{original: old, existed: existed}
	case deleteRequest:
		old, existed := a.m.Delete(req.key)
		req.reply <- deleteResult{deleted: old, existed: existed}
	case updateRequest:
		cur, existed := a.m.Get(req.key)
		next, present := req.fn(cur, existed)
		if present {
			a.m.Set(req.key, next)
		} else if existed {
			a.m.Delete(req.key)
		}
		req.reply <- updateResult{updated: next, present: present}
	default:
		// A message of an unrecognized type is a programming error and is
		// fatal to the shard. Reply channels are buffered for one reply, so
		// a caller that stopped waiting never blocks the actor.
		panic(fmt.Sprintf("store: actor received unrecognized request %T", msg))
	}
}
