// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// requests.go caches each company's recent generation list. The list is
// re-read on every poll tick by every open session, so even a short TTL
// takes real load off Postgres. Writes (submit, webhook ingest)
// invalidate the company's entry.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"artegen/internal/models"
)

const (
	// requestsKeyPrefix is the Valkey key prefix for cached lists.
	requestsKeyPrefix = "requests:company:"

	// DefaultRequestListTTL keeps entries short-lived: polling clients
	// tolerate staleness of a couple of seconds at most.
	DefaultRequestListTTL = 5 * time.Second
)

// RequestListCache caches ListByCompany results in Valkey.
type RequestListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRequestListCache creates a list cache backed by the given client.
func NewRequestListCache(client *redis.Client, ttl time.Duration) *RequestListCache {
	if ttl == 0 {
		ttl = DefaultRequestListTTL
	}
	return &RequestListCache{client: client, ttl: ttl}
}

// Get retrieves a company's cached list. The second return value is
// false on miss or decode failure.
func (c *RequestListCache) Get(ctx context.Context, companyID uuid.UUID) ([]models.ContentRequest, bool) {
	raw, err := c.client.Get(ctx, requestsKeyPrefix+companyID.String()).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("request list cache get error", "company_id", companyID, "error", err)
		return nil, false
	}

	var items []models.ContentRequest
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Warn("request list cache decode error", "company_id", companyID, "error", err)
		return nil, false
	}
	return items, true
}

// Set stores a company's list with the configured TTL. Failures are
// logged, never surfaced — the cache is an optimization.
func (c *RequestListCache) Set(ctx context.Context, companyID uuid.UUID, items []models.ContentRequest) {
	raw, err := json.Marshal(items)
	if err != nil {
		slog.Warn("request list cache encode error", "company_id", companyID, "error", err)
		return
	}
	if err := c.client.Set(ctx, requestsKeyPrefix+companyID.String(), raw, c.ttl).Err(); err != nil {
		slog.Warn("request list cache set error", "company_id", companyID, "error", err)
	}
}

// Invalidate drops a company's cached list after a write.
func (c *RequestListCache) Invalidate(ctx context.Context, companyID uuid.UUID) {
	if err := c.client.Del(ctx, requestsKeyPrefix+companyID.String()).Err(); err != nil {
		slog.Warn("request list cache invalidate error", "company_id", companyID, "error", err)
	}
}
