// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"artegen/internal/models"
)

// Outcome is the single terminal result of one polling session.
type Outcome string

const (
	// OutcomeCompleted means the request finished and carries content.
	OutcomeCompleted Outcome = "completed"

	// OutcomeFailed means the provider reported a failure.
	OutcomeFailed Outcome = "failed"

	// OutcomeTimedOut means the polling budget ran out while the request
	// was still pending. The request itself is untouched and may still
	// complete later; reconcile with a direct Get.
	OutcomeTimedOut Outcome = "timed_out"
)

// Default polling cadence: re-read every 2 s, give up after 20 s.
const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollTimeout  = 20 * time.Second
)

// AwaitCompletion polls the stored request until it reaches a terminal
// status or the timeout elapses, and returns exactly one outcome together
// with the last record read.
//
// The loop re-reads the record once per interval. After the outcome is
// decided no further store reads are issued — the ticker is stopped
// before returning. Cancelling the context stops polling immediately and
// returns the context error; no outcome is reported in that case.
//
// A TimedOut outcome never mutates the request: completion arriving after
// the budget is still valid and observable through Get.
func (s *Service) AwaitCompletion(ctx context.Context, id uuid.UUID, interval, timeout time.Duration) (Outcome, *models.ContentRequest, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}

	// First read happens immediately so an already-terminal request
	// resolves without waiting a full interval.
	last, outcome, err := s.pollOnce(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if outcome != "" {
		return outcome, last, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", nil, ctx.Err()

		case <-deadline.C:
			return OutcomeTimedOut, last, nil

		case <-ticker.C:
			last, outcome, err = s.pollOnce(ctx, id)
			if err != nil {
				return "", nil, err
			}
			if outcome != "" {
				return outcome, last, nil
			}
		}
	}
}

// pollOnce reads the record and classifies its status. An empty outcome
// means the request is still pending.
func (s *Service) pollOnce(ctx context.Context, id uuid.UUID) (*models.ContentRequest, Outcome, error) {
	r, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if r == nil {
		return nil, "", ErrUnknownRequest
	}

	switch r.Status {
	case models.StatusCompleted:
		return r, OutcomeCompleted, nil
	case models.StatusFailed:
		return r, OutcomeFailed, nil
	}
	return r, "", nil
}
