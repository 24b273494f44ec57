package store

import "github.com/cespare/xxhash/v2"

// HashKey is the single stable, deterministic, bytewise hash used
// everywhere a key must be mapped to a shard index -- both here (as the
// storage map's own sharding invariant) and in internal/router (as
// route(key)). Two calls on identical key bytes within one process always
// agree; cross-process stability is not required or attempted.
func HashKey(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// ShardIndex is the shared shard_index = hash(key) mod shard_count
// computation.
func ShardIndex(key GString, shardCount int) int {
	return int(HashKey(key.Bytes()) % uint64(shardCount))
}
