package state

import (
	"github.com/on-the-ground/effect_ive_run/effects/clock"
)

// Store is the key-value capability an environment provides.
//
// Keys and values must be comparable: CompareAndSwap and CompareAndDelete
// compare with ==, the same restriction sync.Map places on them.
type Store interface {
	Load(key any) (value any, ok bool)
	Store(key, value any)
	CompareAndSwap(key, old, new any) (swapped bool)
	CompareAndDelete(key, old any) (deleted bool)
	InsertIfAbsent(key, value any) (inserted bool)
}

// HasState is implemented by environments that carry a Store.
type HasState interface {
	State() Store
}

// ChangeKind names the mutation a Change records.
type ChangeKind string

const (
	ChangeStore  ChangeKind = "store"
	ChangeSwap   ChangeKind = "compare_and_swap"
	ChangeDelete ChangeKind = "compare_and_delete"
	ChangeInsert ChangeKind = "insert_if_absent"
)

// Change is a successful mutation, stamped with the span it happened in.
type Change struct {
	Kind  ChangeKind
	Key   any
	Value any
	clock.TimeSpan
}

// StoreConfig sizes an in-memory store.
type StoreConfig struct {
	NumShards int // default: 1
	SinkSize  int // default: 0, no change feed
}

// NewStoreConfig returns a config with non-positive shard counts raised to 1
// and negative sink sizes raised to 0.
func NewStoreConfig(numShards, sinkSize int) StoreConfig {
	if numShards <= 0 {
		numShards = 1
	}
	if sinkSize < 0 {
		sinkSize = 0
	}
	return StoreConfig{
		NumShards: numShards,
		SinkSize:  sinkSize,
	}
}
