package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	cache := GetCache()

	cache.Set("test:hit", "hello", time.Minute)
	assert.Equal(t, "hello", cache.Get("test:hit"))

	assert.Nil(t, cache.Get("test:missing"))
}

func TestCacheExpiry(t *testing.T) {
	cache := GetCache()

	cache.Set("test:expired", "stale", -time.Second)
	assert.Nil(t, cache.Get("test:expired"))
}

func TestCacheDelete(t *testing.T) {
	cache := GetCache()

	cache.Set("test:gone", 1, time.Minute)
	cache.Delete("test:gone")
	assert.Nil(t, cache.Get("test:gone"))
}

func TestCacheDeletePrefix(t *testing.T) {
	cache := GetCache()

	cache.Set("list:page:1", 1, time.Minute)
	cache.Set("list:page:2", 2, time.Minute)
	cache.Set("detail:abc", 3, time.Minute)

	cache.DeletePrefix("list:")

	assert.Nil(t, cache.Get("list:page:1"))
	assert.Nil(t, cache.Get("list:page:2"))
	assert.Equal(t, 3, cache.Get("detail:abc"))
}
