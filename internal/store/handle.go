package store

import "context"

// Handle is a clonable, goroutine-safe address of a shard's storage actor
// inbox. Multiple processors on multiple shards hold copies of the same
// handle; the zero value is not usable.
type Handle struct {
	inbox chan any
}

// Get asks the owning actor for key's current value.
func (h Handle) Get(ctx context.Context, key GString) (Value, bool, error) {
	reply := make(chan getResult, 1)
	if err := h.send(ctx, getRequest{key: key, reply: reply}); err != nil {
		return Value{}, false, err
	}
	select {
	case r := <-reply:
		return r.value, r.ok, nil
	case <-ctx.Done():
		return Value{}, false, ctx.Err()
	}
}

// Set asks the owning actor to insert or overwrite key, returning the
// previous value if one existed.
func (h Handle) Set(ctx context.Context, key GString, v Value) (Value, bool, error) {
	reply := make(chan setResult, 1)
	if err := h.send(ctx, setRequest{key: key, value: v, reply: reply}); err != nil {
		return Value{}, false, err
	}
	select {
	case r := <-reply:
		return r.original, r.existed, nil
	case <-ctx.Done():
		return Value{}, false, ctx.Err()
	}
}

// Delete asks the owning actor to remove key, returning the removed value
// if one existed.
func (h Handle) Delete(ctx context.Context, key GString) (Value, bool, error) {
	reply := make(chan deleteResult, 1)
	if err := h.send(ctx, deleteRequest{key: key, reply: reply}); err != nil {
		return Value{}, false, err
	}
	select {
	case r := <-reply:
		return r.deleted, r.existed, nil
	case <-ctx.Done():
		return Value{}, false, ctx.Err()
	}
}

// Update asks the owning actor to apply fn to key's current binding (or
// absence) and returns the resulting post-state.
func (h Handle) Update(ctx context.Context, key GString, fn UpdateFunc) (Value, bool, error) {
	reply := make(chan updateResult, 1)
	if err := h.send(ctx, updateRequest{key: key, fn: fn, reply: reply}); err != nil {
		return Value{}, false, err
	}
	select {
	case r := <-reply:
		return r.updated, r.present, nil
	case <-ctx.Done():
		return Value{}, false, ctx.Err()
	}
}

func (h Handle) send(ctx context.Context, req any) error {
	select {
	case h.inbox <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
