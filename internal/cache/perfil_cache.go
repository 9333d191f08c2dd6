// Package cache holds the short-TTL read-through caches backed by redis.
// Caches are constructed once and injected as dependencies; nothing here is a
// package-level singleton.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
)

// PerfilCache is a read-through cache of Perfil rows keyed by user id.
// Entries expire after TTL and are invalidated explicitly on every
// profile/avatar mutation. Cache failures are logged and treated as misses —
// redis being down must never take the API down with it.
type PerfilCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPerfilCache(rdb *redis.Client, ttl time.Duration) *PerfilCache {
	return &PerfilCache{rdb: rdb, ttl: ttl}
}

func (c *PerfilCache) key(userID uuid.UUID) string {
	return "perfil:" + userID.String()
}

// disabled reports whether the cache has no backing client (nil cache or nil
// redis). Every operation degrades to a miss/no-op in that case.
func (c *PerfilCache) disabled() bool {
	return c == nil || c.rdb == nil
}

// Get returns the cached perfil, or nil on miss.
func (c *PerfilCache) Get(ctx context.Context, userID uuid.UUID) *model.Perfil {
	if c.disabled() {
		return nil
	}
	raw, err := c.rdb.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("perfil cache: lectura fallida")
		}
		return nil
	}
	var p model.Perfil
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Warn().Err(err).Msg("perfil cache: entrada corrupta descartada")
		c.Invalidate(ctx, userID)
		return nil
	}
	return &p
}

// Set stores the perfil with the configured TTL.
func (c *PerfilCache) Set(ctx context.Context, p *model.Perfil) {
	if c.disabled() {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(p.ID), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("perfil cache: escritura fallida")
	}
}

// Invalidate drops the entry. Called from every mutation path that touches
// the perfil (name, role, activo, avatar).
func (c *PerfilCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c.disabled() {
		return
	}
	if err := c.rdb.Del(ctx, c.key(userID)).Err(); err != nil {
		log.Warn().Err(err).Msg("perfil cache: invalidacion fallida")
	}
}
