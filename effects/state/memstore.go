package state

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/on-the-ground/effect_ive_run/effects/clock"
)

var _ Store = &InMemoryStore{}

// InMemoryStore is a Store split into shards, each guarded by its own mutex.
// A key always lands on the same shard, chosen by the xxhash of the key,
// so operations on one key are serialized while different keys rarely contend.
type InMemoryStore struct {
	shards []*shard
	sink   chan Change
}

type shard struct {
	mu   sync.Mutex
	data map[any]any
}

func NewInMemoryStore(config StoreConfig) *InMemoryStore {
	config = NewStoreConfig(config.NumShards, config.SinkSize)
	shards := make([]*shard, config.NumShards)
	for i := range shards {
		shards[i] = &shard{data: make(map[any]any)}
	}
	var sink chan Change
	if config.SinkSize > 0 {
		sink = make(chan Change, config.SinkSize)
	}
	return &InMemoryStore{
		shards: shards,
		sink:   sink,
	}
}

// Changes returns the change feed, or nil if the store was built without one.
// Changes are dropped when the feed is full.
func (s *InMemoryStore) Changes() <-chan Change {
	return s.sink
}

func (s *InMemoryStore) Load(key any) (any, bool) {
	sh := s.shardOf(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	v, ok := sh.data[key]
	return v, ok
}

func (s *InMemoryStore) Store(key, value any) {
	sh := s.shardOf(key)
	sh.mu.Lock()
	sh.data[key] = value
	sh.mu.Unlock()
	s.emit(ChangeStore, key, value)
}

func (s *InMemoryStore) CompareAndSwap(key, old, new any) bool {
	sh := s.shardOf(key)
	sh.mu.Lock()
	cur, ok := sh.data[key]
	if !ok || cur != old {
		sh.mu.Unlock()
		return false
	}
	sh.data[key] = new
	sh.mu.Unlock()
	s.emit(ChangeSwap, key, new)
	return true
}

func (s *InMemoryStore) CompareAndDelete(key, old any) bool {
	sh := s.shardOf(key)
	sh.mu.Lock()
	cur, ok := sh.data[key]
	if !ok || cur != old {
		sh.mu.Unlock()
		return false
	}
	delete(sh.data, key)
	sh.mu.Unlock()
	s.emit(ChangeDelete, key, old)
	return true
}

func (s *InMemoryStore) InsertIfAbsent(key, value any) bool {
	sh := s.shardOf(key)
	sh.mu.Lock()
	if _, ok := sh.data[key]; ok {
		sh.mu.Unlock()
		return false
	}
	sh.data[key] = value
	sh.mu.Unlock()
	s.emit(ChangeInsert, key, value)
	return true
}

// Len counts the keys across all shards.
func (s *InMemoryStore) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += len(sh.data)
		sh.mu.Unlock()
	}
	return n
}

func (s *InMemoryStore) shardOf(key any) *shard {
	return s.shards[getIndexByHash(hashKey(key), len(s.shards))]
}

func (s *InMemoryStore) emit(kind ChangeKind, key, value any) {
	if s.sink == nil {
		return
	}
	select {
	case s.sink <- Change{Kind: kind, Key: key, Value: value, TimeSpan: clock.SpanAround(time.Now())}:
	default:
	}
}

func getIndexByHash(hash uint64, numShards int) int {
	switch numShards {
	case 0:
		panic("number of shards cannot be 0")
	case 1:
		return 0
	default:
		return int(hash % uint64(numShards))
	}
}

// hashKey hashes strings and integers directly. The kind is mixed in so that
// 1, int64(1) and "1" do not collide by construction.
func hashKey(key any) uint64 {
	switch k := key.(type) {
	case string:
		return xxhash.Sum64String(k)
	case []byte:
		return xxhash.Sum64(k)
	case int:
		return hashInt('i', uint64(k))
	case int64:
		return hashInt('l', uint64(k))
	case int32:
		return hashInt('w', uint64(k))
	case uint:
		return hashInt('u', uint64(k))
	case uint64:
		return hashInt('U', k)
	case uint32:
		return hashInt('W', uint64(k))
	case fmt.Stringer:
		return xxhash.Sum64String(k.String())
	default:
		return xxhash.Sum64String(fmt.Sprintf("%T:%v", key, key))
	}
}

func hashInt(kind byte, v uint64) uint64 {
	var buf [9]byte
	buf[0] = kind
	binary.LittleEndian.PutUint64(buf[1:], v)
	return xxhash.Sum64(buf[:])
}
