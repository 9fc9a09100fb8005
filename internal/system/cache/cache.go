/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package cache provides a generic in-memory TTL cache used by lookup-heavy services.
package cache

import (
	"sync"
	"time"

	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/config"
	"github.com/Diogo-Ferraz/TaskManagementServer/internal/system/log"
)

const (
	defaultCacheSize = 1000
	defaultCacheTTL  = 15 * time.Minute
)

// CacheKey represents a key in a cache.
type CacheKey string

// CacheInterface defines the common interface for cache operations.
type CacheInterface[T any] interface {
	GetName() string
	Set(key CacheKey, value T)
	Get(key CacheKey) (T, bool)
	Delete(key CacheKey)
	Clear()
	IsEnabled() bool
	CleanupExpired()
}

// cacheEntry represents a single cached value with its expiry time.
type cacheEntry[T any] struct {
	value      T
	expiryTime time.Time
}

// Cache implements the CacheInterface backed by an in-memory map.
type Cache[T any] struct {
	cacheName string
	enabled   bool
	maxSize   int
	ttl       time.Duration
	entries   map[CacheKey]cacheEntry[T]
	mu        sync.RWMutex
}

// NewCache creates a new cache instance configured from the server runtime.
func NewCache[T any](cacheName string) CacheInterface[T] {
	cacheConfig := config.GetServerRuntime().Config.Cache
	if cacheConfig.Disabled {
		log.GetLogger().Debug("Caching is disabled", log.String("cacheName", cacheName))
		return &Cache[T]{
			cacheName: cacheName,
			enabled:   false,
		}
	}

	maxSize := cacheConfig.Size
	if maxSize <= 0 {
		maxSize = defaultCacheSize
	}
	ttl := defaultCacheTTL
	if cacheConfig.TTL > 0 {
		ttl = time.Duration(cacheConfig.TTL) * time.Second
	}

	return &Cache[T]{
		cacheName: cacheName,
		enabled:   true,
		maxSize:   maxSize,
		ttl:       ttl,
		entries:   make(map[CacheKey]cacheEntry[T]),
	}
}

// GetName returns the name of the cache.
func (c *Cache[T]) GetName() string {
	return c.cacheName
}

// IsEnabled reports whether the cache is enabled.
func (c *Cache[T]) IsEnabled() bool {
	return c.enabled
}

// Set stores a value in the cache.
func (c *Cache[T]) Set(key CacheKey, value T) {
	if !c.enabled || key == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict everything when the cache grows past its bound. Coarse, but keeps
	// the memory footprint predictable without tracking access order.
	if len(c.entries) >= c.maxSize {
		c.entries = make(map[CacheKey]cacheEntry[T])
	}

	c.entries[key] = cacheEntry[T]{
		value:      value,
		expiryTime: time.Now().Add(c.ttl),
	}
}

// Get retrieves a value from the cache.
func (c *Cache[T]) Get(key CacheKey) (T, bool) {
	var zero T
	if !c.enabled || key == "" {
		return zero, false
	}

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return zero, false
	}
	if time.Now().After(entry.expiryTime) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return zero, false
	}

	return entry.value, true
}

// Delete removes a value from the cache.
func (c *Cache[T]) Delete(key CacheKey) {
	if !c.enabled || key == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all values from the cache.
func (c *Cache[T]) Clear() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[CacheKey]cacheEntry[T])
}

// CleanupExpired removes all expired entries from the cache.
func (c *Cache[T]) CleanupExpired() {
	if !c.enabled {
		return
	}

	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if now.After(entry.expiryTime) {
			delete(c.entries, key)
		}
	}
}
