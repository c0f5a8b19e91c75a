// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"artegen/internal/generation"
	"artegen/internal/handlers"
	"artegen/internal/models"
)

// nopStore satisfies generation.RequestStore with empty results, enough
// for routing-level assertions.
type nopStore struct{}

func (nopStore) Create(_ context.Context, r *models.ContentRequest) (*models.ContentRequest, error) {
	return r, nil
}

func (nopStore) FindByID(context.Context, uuid.UUID) (*models.ContentRequest, error) {
	return nil, nil
}

func (nopStore) ListByCompany(context.Context, uuid.UUID, int) ([]models.ContentRequest, error) {
	return nil, nil
}

func (nopStore) Complete(context.Context, uuid.UUID, []byte, *string, *string, *string) (bool, error) {
	return false, nil
}

func (nopStore) MarkFailed(context.Context, uuid.UUID, string) (bool, error) {
	return false, nil
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

// testRouter builds the full route tree with nil store dependencies.
// Only routes that never touch a store are exercised.
func testRouter(t *testing.T) http.Handler {
	t.Helper()

	svc := generation.NewService(nopStore{}, nil, nil, nil)
	r, limiter := New(Handlers{
		Generations: handlers.NewGenerations(svc, 10*time.Millisecond, 50*time.Millisecond),
		Webhooks:    handlers.NewWebhooks(svc, "secret"),
		Companies:   handlers.NewCompanies(nil, nil),
		Users:       handlers.NewUsers(nil),
		Templates:   handlers.NewTemplates(nil),
		Artes:       handlers.NewArtes(nil, nil, nil, svc, nil),
		Plans:       handlers.NewPlans(nil),
	})
	t.Cleanup(limiter.Stop)
	return r
}

func TestRouterWiring(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{
			name:   "health is mounted",
			method: http.MethodGet,
			path:   "/health",
			want:   http.StatusOK,
		},
		{
			name:   "unknown route is 404",
			method: http.MethodGet,
			path:   "/nope",
			want:   http.StatusNotFound,
		},
		{
			name:   "generation get rejects malformed id",
			method: http.MethodGet,
			path:   "/api/generations/not-a-uuid",
			want:   http.StatusBadRequest,
		},
		{
			name:   "generation list requires company_id",
			method: http.MethodGet,
			path:   "/api/generations",
			want:   http.StatusBadRequest,
		},
		{
			name:   "generation create rejects empty body",
			method: http.MethodPost,
			path:   "/api/generations",
			want:   http.StatusBadRequest,
		},
		{
			name:   "webhook requires the shared secret",
			method: http.MethodPost,
			path:   "/webhooks/generations/5f9c1a36-8df1-4f0e-9f3a-1a2b3c4d5e6f",
			want:   http.StatusUnauthorized,
		},
		{
			name:   "webhook only accepts POST",
			method: http.MethodGet,
			path:   "/webhooks/generations/5f9c1a36-8df1-4f0e-9f3a-1a2b3c4d5e6f",
			want:   http.StatusMethodNotAllowed,
		},
		{
			name:   "arte image upload without storage",
			method: http.MethodPost,
			path:   "/api/artes/5f9c1a36-8df1-4f0e-9f3a-1a2b3c4d5e6f/image",
			want:   http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Errorf("%s %s: got %d, want %d", tt.method, tt.path, rr.Code, tt.want)
			}
		})
	}
}

func TestRouterRecoversFromPanic(t *testing.T) {
	router := testRouter(t)

	// A nil company store makes the companies handler panic; the
	// global Recoverer must turn that into a JSON 500.
	req := httptest.NewRequest(http.MethodGet, "/api/companies", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
}
