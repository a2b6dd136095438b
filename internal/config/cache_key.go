package config

import (
	"fmt"
	"time"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RefreshTokenKey returns the key holding a live refresh token id for a user.
func (r *CacheKeyStruct) RefreshTokenKey(userID int64, jti string) string {
	return fmt.Sprintf("auth:user:%d:refresh:%s", userID, jti)
}

// RateLimitKey returns the fixed-window counter key for a client on a route.
func (r *CacheKeyStruct) RateLimitKey(route, clientIP string, window time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", route, clientIP, window.Unix())
}

var CacheKey = NewCacheKeyStruct()
