package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// GameSessionKey returns the cache key for a conversation's game
// session blob.
func (r *CacheKeyStruct) GameSessionKey(sessionID string) string {
	return fmt.Sprintf("game:session:%s", sessionID)
}

var CacheKey = NewCacheKeyStruct()
