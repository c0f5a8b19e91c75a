// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"artegen/internal/generation"
)

// Generations groups the content-generation HTTP handlers.
type Generations struct {
	svc *generation.Service

	// Polling cadence for the long-poll endpoint, from config.
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// maxAwaitTimeout caps client-requested long-poll budgets so a single
// request cannot hold a connection open indefinitely.
const maxAwaitTimeout = 60 * time.Second

// NewGenerations creates the generation handler group.
func NewGenerations(svc *generation.Service, pollInterval, pollTimeout time.Duration) *Generations {
	if pollInterval <= 0 {
		pollInterval = generation.DefaultPollInterval
	}
	if pollTimeout <= 0 {
		pollTimeout = generation.DefaultPollTimeout
	}
	return &Generations{svc: svc, pollInterval: pollInterval, pollTimeout: pollTimeout}
}

// Create handles POST /api/generations. It validates the submission,
// persists a pending request, fires the workflow trigger in the
// background, and returns 202 with the pending record.
func (g *Generations) Create(w http.ResponseWriter, r *http.Request) {
	var in generation.SubmitInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := g.svc.Submit(r.Context(), in)
	if err != nil {
		if errors.Is(err, generation.ErrValidation) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("submit generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusAccepted, created)
}

// Get handles GET /api/generations/{id}. Returns the current state of a
// request, terminal or not.
func (g *Generations) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	req, err := g.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, generation.ErrUnknownRequest) {
			writeError(w, http.StatusNotFound, "generation not found")
			return
		}
		slog.Error("get generation failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// List handles GET /api/generations?company_id=. Returns the company's
// most recent requests, newest first.
func (g *Generations) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := uuidQuery(w, r, "company_id")
	if !ok {
		return
	}

	items, err := g.svc.ListRecent(r.Context(), companyID)
	if err != nil {
		slog.Error("list generations failed", "error", err, "company_id", companyID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// awaitResponse is the long-poll result envelope.
type awaitResponse struct {
	Outcome generation.Outcome `json:"outcome"`
	Request any                `json:"request,omitempty"`
}

// Await handles GET /api/generations/{id}/wait. It blocks until the
// request reaches a terminal status or the polling budget runs out, then
// reports exactly one outcome. A timed_out outcome leaves the request
// pending; the client reconciles with a plain Get later.
//
// The budget can be shortened per request with a ?timeout= query value
// (Go duration or bare milliseconds), capped at one minute.
func (g *Generations) Await(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	timeout := g.pollTimeout
	if raw := r.URL.Query().Get("timeout"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}
	if timeout > maxAwaitTimeout {
		timeout = maxAwaitTimeout
	}

	outcome, req, err := g.svc.AwaitCompletion(r.Context(), id, g.pollInterval, timeout)
	if err != nil {
		switch {
		case errors.Is(err, generation.ErrUnknownRequest):
			writeError(w, http.StatusNotFound, "generation not found")
		case errors.Is(err, r.Context().Err()):
			// Client went away; nothing useful to write.
		default:
			slog.Error("await generation failed", "error", err, "id", id)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, awaitResponse{Outcome: outcome, Request: req})
}
