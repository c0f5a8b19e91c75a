// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generation implements the AI content-generation lifecycle:
// submitting a request, triggering the external workflow provider,
// ingesting the asynchronous webhook callback, and polling for the
// terminal outcome.
//
// The flow is deliberately asymmetric. Submit is synchronous only up to
// the pending row — the provider trigger is fire-and-forget, and failure
// to reach the provider is never surfaced to the submitter. Completion
// arrives later through Ingest, and clients observe it by polling
// (AwaitCompletion) or by reading the record directly.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"artegen/internal/models"
	"artegen/internal/normalize"
)

// Sentinel errors for the request lifecycle. Handlers map these onto
// HTTP status codes.
var (
	// ErrValidation marks malformed submit parameters. Nothing is
	// persisted when it is returned.
	ErrValidation = errors.New("invalid generation request")

	// ErrUnknownRequest marks an id that has no stored request. The
	// webhook path must never create a row for it.
	ErrUnknownRequest = errors.New("unknown content request")

	// ErrAlreadyTerminal marks a webhook delivery for a request that
	// already reached completed or failed with a different payload.
	ErrAlreadyTerminal = errors.New("content request already in terminal state")
)

// minTemaLen is the minimum rune length of the free-text theme.
const minTemaLen = 10

// RequestStore is the persistence surface the service needs. Implemented
// by store.GenerationStore.
type RequestStore interface {
	Create(ctx context.Context, r *models.ContentRequest) (*models.ContentRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ContentRequest, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit int) ([]models.ContentRequest, error)
	Complete(ctx context.Context, id uuid.UUID, raw []byte, headline, conteudo, cta *string) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) (bool, error)
}

// Trigger starts the external provider's workflow for a request.
// Implemented by trigger.Client.
type Trigger interface {
	Fire(ctx context.Context, r *models.ContentRequest) error
}

// Deduper remembers webhook deliveries so redelivery of the same payload
// is idempotent. Implemented by cache.WebhookDedup; may be nil.
type Deduper interface {
	Seen(ctx context.Context, requestID uuid.UUID, payload []byte) (bool, error)
}

// ListCache caches a company's recent request list between polls.
// Implemented by cache.RequestListCache; may be nil.
type ListCache interface {
	Get(ctx context.Context, companyID uuid.UUID) ([]models.ContentRequest, bool)
	Set(ctx context.Context, companyID uuid.UUID, items []models.ContentRequest)
	Invalidate(ctx context.Context, companyID uuid.UUID)
}

// Service orchestrates the content-generation lifecycle.
type Service struct {
	store   RequestStore
	trigger Trigger
	dedup   Deduper
	cache   ListCache

	// triggerTimeout bounds the detached fire-and-forget provider call.
	triggerTimeout time.Duration
}

// NewService creates the generation service. trigger, dedup, and cache
// may be nil: without a trigger, requests simply sit pending until the
// polling budget runs out; without Valkey, dedup and list caching are
// skipped.
func NewService(store RequestStore, trig Trigger, dedup Deduper, cache ListCache) *Service {
	return &Service{
		store:          store,
		trigger:        trig,
		dedup:          dedup,
		cache:          cache,
		triggerTimeout: 10 * time.Second,
	}
}

// SubmitInput carries the user's generation parameters.
type SubmitInput struct {
	CompanyID  uuid.UUID       `json:"company_id"`
	UserID     uuid.UUID       `json:"user_id"`
	Tema       string          `json:"tema"`
	PostType   models.PostType `json:"tipo_postagem"`
	Tone       models.Tone     `json:"tom_voz"`
	ImageCount *int            `json:"quantidade_imagens,omitempty"`
	DayCount   *int            `json:"quantidade_dias,omitempty"`
}

// validate rejects malformed input before anything is persisted.
func (in *SubmitInput) validate() error {
	if in.CompanyID == uuid.Nil {
		return fmt.Errorf("%w: company_id is required", ErrValidation)
	}
	if in.UserID == uuid.Nil {
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Tema)) < minTemaLen {
		return fmt.Errorf("%w: tema must be at least %d characters", ErrValidation, minTemaLen)
	}
	if !in.PostType.Valid() {
		return fmt.Errorf("%w: unknown tipo_postagem %q", ErrValidation, in.PostType)
	}
	if !in.Tone.Valid() {
		return fmt.Errorf("%w: unknown tom_voz %q", ErrValidation, in.Tone)
	}

	switch in.PostType {
	case models.PostTypeCarousel:
		if in.ImageCount == nil || *in.ImageCount < 1 || *in.ImageCount > 10 {
			return fmt.Errorf("%w: carousel requires quantidade_imagens between 1 and 10", ErrValidation)
		}
	case models.PostTypeCalendar:
		if in.DayCount == nil || (*in.DayCount != 7 && *in.DayCount != 15 && *in.DayCount != 30) {
			return fmt.Errorf("%w: calendar requires quantidade_dias of 7, 15, or 30", ErrValidation)
		}
	}
	return nil
}

// Submit validates the input, persists a pending request, and fires the
// provider trigger in the background. It returns the created record
// immediately so the caller can start polling. A trigger failure is
// logged but never surfaced — the request stays pending and the polling
// timeout becomes the user-visible failure signal.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.ContentRequest, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	req := &models.ContentRequest{
		CompanyID: in.CompanyID,
		UserID:    in.UserID,
		Tema:      strings.TrimSpace(in.Tema),
		PostType:  in.PostType,
		Tone:      in.Tone,
	}
	// Counts only make sense for their own post type.
	switch in.PostType {
	case models.PostTypeCarousel:
		req.ImageCount = in.ImageCount
	case models.PostTypeCalendar:
		req.DayCount = in.DayCount
	}

	created, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, created.CompanyID)
	}

	if s.trigger != nil {
		// Detached from the request context: the HTTP response returns
		// before the provider call finishes.
		go s.fireTrigger(created)
	} else {
		slog.Warn("no provider trigger configured, request will stay pending",
			"request_id", created.ID)
	}

	return created, nil
}

// fireTrigger performs the fire-and-forget provider call.
func (s *Service) fireTrigger(r *models.ContentRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), s.triggerTimeout)
	defer cancel()

	if err := s.trigger.Fire(ctx, r); err != nil {
		slog.Warn("provider trigger failed, request stays pending",
			"request_id", r.ID,
			"error", err,
		)
		return
	}
	slog.Info("provider trigger fired", "request_id", r.ID, "tipo", r.PostType)
}

// Get reads a request by id. Returns ErrUnknownRequest when missing.
// This is the direct (non-polling) read used to reconcile late
// completions after a polling timeout.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.ContentRequest, error) {
	r, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrUnknownRequest
	}
	return r, nil
}

// ListRecent returns a company's requests newest-first, serving from the
// list cache when possible.
func (s *Service) ListRecent(ctx context.Context, companyID uuid.UUID) ([]models.ContentRequest, error) {
	if s.cache != nil {
		if items, ok := s.cache.Get(ctx, companyID); ok {
			return items, nil
		}
	}

	items, err := s.store.ListByCompany(ctx, companyID, 0)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, companyID, items)
	}
	return items, nil
}

// Ingest processes a provider webhook callback for the given request.
//
// Delivery is at-least-once, so the path is idempotent: a payload seen
// before short-circuits to the current record. A failure-shaped payload
// moves the request to failed; anything else is normalized and persisted
// with status completed. A differing payload arriving for a request that
// already reached a terminal state is rejected with ErrAlreadyTerminal —
// the stored response is immutable.
func (s *Service) Ingest(ctx context.Context, id uuid.UUID, raw []byte) (*models.ContentRequest, error) {
	r, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		slog.Warn("webhook for unknown request dropped", "request_id", id)
		return nil, ErrUnknownRequest
	}

	if s.dedup != nil {
		seen, err := s.dedup.Seen(ctx, id, raw)
		if err != nil {
			// Dedup is best-effort; the SQL status guard still protects
			// the row.
			slog.Warn("webhook dedup check failed", "request_id", id, "error", err)
		} else if seen {
			slog.Info("duplicate webhook delivery ignored", "request_id", id)
			return r, nil
		}
	}

	if reason, failed := providerFailure(raw); failed {
		ok, err := s.store.MarkFailed(ctx, id, reason)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAlreadyTerminal
		}
		s.invalidate(ctx, r.CompanyID)
		slog.Info("content request failed by provider", "request_id", id, "reason", reason)
		return s.store.FindByID(ctx, id)
	}

	headline, conteudo, cta := normalizedFields(raw, r)

	ok, err := s.store.Complete(ctx, id, raw, headline, conteudo, cta)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Identical redelivery of the payload already stored is an
		// idempotent no-op even when the dedup layer is off.
		if current, err := s.store.FindByID(ctx, id); err == nil && current != nil &&
			bytes.Equal(current.RawResponse, raw) {
			slog.Info("duplicate webhook delivery ignored", "request_id", id)
			return current, nil
		}
		slog.Warn("webhook for terminal request rejected", "request_id", id, "status", r.Status)
		return nil, ErrAlreadyTerminal
	}

	s.invalidate(ctx, r.CompanyID)
	slog.Info("content request completed", "request_id", id)
	return s.store.FindByID(ctx, id)
}

func (s *Service) invalidate(ctx context.Context, companyID uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, companyID)
	}
}

// normalizedFields extracts the scalar headline/conteudo/cta columns from
// the payload. A calendar payload stores its first entry as the scalar
// preview; the full batch stays available in the raw response. When the
// payload matches no known shape, the record's existing scalars are kept.
func normalizedFields(raw []byte, r *models.ContentRequest) (headline, conteudo, cta *string) {
	res := normalize.Normalize(raw)
	if res == nil {
		return r.Headline, r.Conteudo, r.CTA
	}

	entry := res.Single
	if entry == nil {
		if len(res.Entries) == 0 {
			return r.Headline, r.Conteudo, r.CTA
		}
		entry = &res.Entries[0]
	}
	return optional(entry.Headline), optional(entry.Conteudo), optional(entry.CTA)
}

// optional maps "" to nil so empty payload fields stay NULL columns.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// providerFailure reports whether the payload signals a provider-side
// failure: an "erro" key, or a failure-valued "status" key. The reason
// comes from the error message when one is present.
func providerFailure(raw []byte) (reason string, failed bool) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", false
	}

	if v, ok := m["erro"]; ok {
		if msg, ok := v.(string); ok && msg != "" {
			return msg, true
		}
		return "provider reported an error", true
	}

	status, _ := m["status"].(string)
	switch strings.ToLower(status) {
	case "failed", "erro", "falha":
		for _, key := range []string{"mensagem", "message"} {
			if msg, ok := m[key].(string); ok && msg != "" {
				return msg, true
			}
		}
		return "provider reported status " + status, true
	}
	return "", false
}
