// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// dedup.go remembers webhook deliveries by payload hash so the ingest
// path stays idempotent under the provider's at-least-once delivery.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// dedupKeyPrefix is the Valkey key prefix for delivery markers.
	dedupKeyPrefix = "webhook:delivery:"

	// DefaultDedupTTL is how long a delivery marker is remembered.
	// Providers retry for minutes, not days; 24h is comfortably past
	// any retry schedule.
	DefaultDedupTTL = 24 * time.Hour
)

// WebhookDedup marks webhook deliveries as seen, keyed by request id and
// payload hash. Identical redeliveries are detected; a different payload
// for the same request produces a different key and is not suppressed
// here (the store's status guard handles that case).
type WebhookDedup struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWebhookDedup creates the dedup helper backed by the given client.
func NewWebhookDedup(client *redis.Client, ttl time.Duration) *WebhookDedup {
	if ttl == 0 {
		ttl = DefaultDedupTTL
	}
	return &WebhookDedup{client: client, ttl: ttl}
}

// Seen atomically records the delivery and reports whether the exact
// same payload was delivered before.
func (d *WebhookDedup) Seen(ctx context.Context, requestID uuid.UUID, payload []byte) (bool, error) {
	sum := sha256.Sum256(payload)
	key := dedupKeyPrefix + requestID.String() + ":" + hex.EncodeToString(sum[:8])

	// SET NX returns false when the key already existed.
	created, err := d.client.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("webhook dedup setnx: %w", err)
	}
	return !created, nil
}
