// Command kvserver boots the sharded key/value server: it binds the
// listening socket, creates one storage actor and shard per requested
// shard count, and runs until interrupted. Everything here is
// intentionally peripheral -- flag parsing, signal handling -- the real
// engineering lives under internal/.
package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"kvshard/internal/klog"
	"kvshard/internal/shard"
	"kvshard/internal/store"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:6379", "TCP address to listen on")
	shardCount := flag.Int("shards", runtime.NumCPU(), "number of shards (defaults to available CPU parallelism)")
	flag.Parse()

	if *shardCount < 1 {
		klog.Fatalf("shards must be >= 1, got %d", *shardCount)
	}

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		klog.Fatalf("failed to bind to %s: %v", *addr, err)
	}
	defer ln.Close()

	klog.Infof("kvshard listening on %s across %d shard(s)", *addr, *shardCount)

	shards := buildShards(ln, *shardCount)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	for _, sh := range shards {
		sh := sh
		g.Go(func() error { return sh.Run(ctx) })
	}

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		klog.Errorf("shutting down after shard error: %v", err)
		os.Exit(1)
	}
}

// buildShards creates one storage actor per shard up front so every
// shard's router can be wired with the full handle table before any
// shard starts running (spec §4.7: "shards share storage handles at
// construction so that every processor can reach every storage actor").
func buildShards(ln net.Listener, n int) []*shard.Shard {
	actors := make([]*store.Actor, n)
	handles := make([]store.Handle, n)
	for i := range actors {
		actors[i] = store.NewActor()
		handles[i] = actors[i].Handle()
	}

	shards := make([]*shard.Shard, n)
	for i := range shards {
		shards[i] = shard.New(i, ln, handles, actors[i])
	}
	return shards
}
