// Package acceptor implements the per-shard acceptor actor: it accepts
// sockets off a shared TCP listener, applies the same connection tuning
// the teacher's flat accept loop used, and hands each accepted connection
// to the owning shard's processor over a local channel. It owns no state
// beyond the listener and that channel.
package acceptor

import (
	"context"
	"net"
)

// Acceptor accepts connections off a listener shared by every shard. Go's
// net.Listener.Accept is safe for concurrent use by multiple goroutines,
// so N shards each running their own Acceptor.Run over the *same*
// listener gives the kernel's accept queue the job of spreading new
// connections across shards -- the Go-idiomatic substitute for binding N
// SO_REUSEPORT sockets, without requiring raw syscalls.
type Acceptor struct {
	listener net.Listener
	conns    chan net.Conn
}

// New wraps ln, accepting into a small buffered handoff channel so a
// momentarily busy processor doesn't stall the accept loop.
func New(ln net.Listener) *Acceptor {
	return &Acceptor{
		listener: ln,
		conns:    make(chan net.Conn, 64),
	}
}

// Conns returns the channel of accepted connections. It is closed once
// Run returns.
func (a *Acceptor) Conns() <-chan net.Conn {
	return a.conns
}

// Run accepts connections until ctx is cancelled or the listener errors.
// Cancelling ctx closes the listener to unblock a pending Accept.
func (a *Acceptor) Run(ctx context.Context) error {
	defer close(a.conns)

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			a.listener.Close()
		case <-stopped:
		}
	}()

	for {
		conn, err := a.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if tcp, ok := conn.(*net.TCPConn); ok {
			_ = tcp.SetNoDelay(true)
		}
		select {
		case a.conns <- conn:
		case <-ctx.Done():
			conn.Close()
			return ctx.Err()
		}
	}
}
