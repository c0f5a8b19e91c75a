// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"crypto/subtle"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"artegen/internal/generation"
)

// Webhooks receives asynchronous callbacks from the workflow provider.
type Webhooks struct {
	svc    *generation.Service
	secret string // shared secret; empty disables the check (dev only)
}

// NewWebhooks creates the webhook handler group.
func NewWebhooks(svc *generation.Service, secret string) *Webhooks {
	return &Webhooks{svc: svc, secret: secret}
}

// authorized checks the shared secret on an incoming delivery. The
// provider sends it either as X-Webhook-Secret or as a bearer token.
func (h *Webhooks) authorized(r *http.Request) bool {
	if h.secret == "" {
		return true
	}
	got := r.Header.Get("X-Webhook-Secret")
	if got == "" {
		got = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}

// Receive handles POST /webhooks/generations/{id}. The provider delivers
// at least once, so replays of the same payload are acknowledged with
// 200 without touching the stored result. A delivery for an id that was
// never created is rejected with 404 and nothing is stored. A different
// payload arriving after the request is already terminal gets 409.
func (h *Webhooks) Receive(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "invalid webhook secret")
		return
	}

	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	req, err := h.svc.Ingest(r.Context(), id, body)
	if err != nil {
		switch {
		case errors.Is(err, generation.ErrUnknownRequest):
			writeError(w, http.StatusNotFound, "unknown generation")
		case errors.Is(err, generation.ErrAlreadyTerminal):
			writeError(w, http.StatusConflict, "generation already finalized")
		default:
			slog.Error("webhook ingest failed", "error", err, "id", id)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": req.Status,
		"id":     req.ID,
	})
}
