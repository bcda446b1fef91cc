package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashKey_StableAndTypeAware(t *testing.T) {
	assert.Equal(t, hashKey("counter"), hashKey("counter"))
	assert.Equal(t, hashKey(42), hashKey(42))

	assert.NotEqual(t, hashKey(1), hashKey("1"))
	assert.NotEqual(t, hashKey(1), hashKey(int64(1)))
	assert.NotEqual(t, hashKey(1), hashKey(2))
}

func TestHashKey_SpreadsIntegersAcrossShards(t *testing.T) {
	seen := make(map[int]bool)
	for i := 0; i < 64; i++ {
		seen[getIndexByHash(hashKey(i), 8)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestGetIndexByHash(t *testing.T) {
	assert.Equal(t, 0, getIndexByHash(hashKey("any"), 1))
	assert.Panics(t, func() { getIndexByHash(1, 0) })
	for i := uint64(0); i < 100; i++ {
		idx := getIndexByHash(^i, 7)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 7)
	}
}
