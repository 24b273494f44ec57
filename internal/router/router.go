// Package router implements the storage router: the per-shard object that
// deterministically maps a key to its owning shard's storage handle and
// forwards requests to it. It is the only path by which a processor
// reaches storage -- it never touches a Map directly and holds no mutable
// state beyond the handle table itself.
package router

import (
	"context"

	"kvshard/internal/store"
)

// Router holds one storage handle per shard, indexed by shard number.
type Router struct {
	handles []store.Handle
}

// New builds a router over the given handles. handles[i] must be the
// handle for shard i.
func New(handles []store.Handle) *Router {
	cp := make([]store.Handle, len(handles))
	copy(cp, handles)
	return &Router{handles: cp}
}

// ShardCount reports how many shards this router can address.
func (r *Router) ShardCount() int {
	return len(r.handles)
}

// Route returns the shard index that owns key.
func (r *Router) Route(key store.GString) int {
	return store.ShardIndex(key, len(r.handles))
}

func (r *Router) handleFor(key store.GString) store.Handle {
	return r.handles[r.Route(key)]
}

// Get forwards to the owning shard and awaits its reply.
func (r *Router) Get(ctx context.Context, key store.GString) (store.Value, bool, error) {
	return r.handleFor(key).Get(ctx, key)
}

// Set forwards to the owning shard and awaits its reply.
func (r *Router) Set(ctx context.Context, key store.GString, v store.Value) (store.Value, bool, error) {
	return r.handleFor(key).Set(ctx, key, v)
}

// Delete forwards to the owning shard and awaits its reply.
func (r *Router) Delete(ctx context.Context, key store.GString) (store.Value, bool, error) {
	return r.handleFor(key).Delete(ctx, key)
}

// Update forwards to the owning shard and awaits its reply.
func (r *Router) Update(ctx context.Context, key store.GString, fn store.UpdateFunc) (store.Value, bool, error) {
	return r.handleFor(key).Update(ctx, key, fn)
}
