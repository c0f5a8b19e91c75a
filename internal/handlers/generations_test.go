// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"artegen/internal/generation"
	"artegen/internal/models"
)

// newGenerationAPI wires the generation handlers onto a chi router the
// same way the production router does.
func newGenerationAPI(store *memStore, interval, timeout time.Duration) http.Handler {
	svc := generation.NewService(store, nil, nil, nil)
	h := NewGenerations(svc, interval, timeout)

	r := chi.NewRouter()
	r.Post("/api/generations", h.Create)
	r.Get("/api/generations", h.List)
	r.Get("/api/generations/{id}", h.Get)
	r.Get("/api/generations/{id}/wait", h.Await)
	return r
}

func submitBody(companyID, userID uuid.UUID) string {
	return fmt.Sprintf(`{
		"company_id": %q,
		"user_id": %q,
		"tema": "lançamento da coleção de inverno",
		"tipo_postagem": "feed",
		"tom_voz": "profissional"
	}`, companyID, userID)
}

func TestGenerationsCreate(t *testing.T) {
	store := newMemStore()
	api := newGenerationAPI(store, 10*time.Millisecond, 100*time.Millisecond)

	req := httptest.NewRequest(http.MethodPost, "/api/generations",
		strings.NewReader(submitBody(uuid.New(), uuid.New())))
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("status: got %d, want 202 (body %s)", rr.Code, rr.Body.String())
	}

	var created models.ContentRequest
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Status != models.StatusPending {
		t.Errorf("status: got %q, want pending", created.Status)
	}
	if created.ID == uuid.Nil {
		t.Error("created request should have an id")
	}
}

func TestGenerationsCreateValidation(t *testing.T) {
	api := newGenerationAPI(newMemStore(), 10*time.Millisecond, 100*time.Millisecond)

	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "malformed JSON",
			body: `{"tema": `,
			want: http.StatusBadRequest,
		},
		{
			name: "tema too short",
			body: fmt.Sprintf(`{"company_id":%q,"user_id":%q,"tema":"curto","tipo_postagem":"feed","tom_voz":"casual"}`,
				uuid.New(), uuid.New()),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown post type",
			body: fmt.Sprintf(`{"company_id":%q,"user_id":%q,"tema":"uma campanha de primavera","tipo_postagem":"banner","tom_voz":"casual"}`,
				uuid.New(), uuid.New()),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "carousel without image count",
			body: fmt.Sprintf(`{"company_id":%q,"user_id":%q,"tema":"uma campanha de primavera","tipo_postagem":"carousel","tom_voz":"casual"}`,
				uuid.New(), uuid.New()),
			want: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/generations", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			api.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d (body %s)", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestGenerationsGet(t *testing.T) {
	store := newMemStore()
	api := newGenerationAPI(store, 10*time.Millisecond, 100*time.Millisecond)

	id := uuid.New()
	store.seed(&models.ContentRequest{
		ID:        id,
		CompanyID: uuid.New(),
		UserID:    uuid.New(),
		Tema:      "promoção relâmpago de setembro",
		PostType:  models.PostTypeFeed,
		Tone:      models.ToneUrgent,
		Status:    models.StatusPending,
	})

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/generations/"+id.String(), nil)
		rr := httptest.NewRecorder()
		api.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		var got models.ContentRequest
		if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID != id {
			t.Errorf("id: got %s, want %s", got.ID, id)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/generations/"+uuid.NewString(), nil)
		rr := httptest.NewRecorder()
		api.ServeHTTP(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rr.Code)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/generations/not-a-uuid", nil)
		rr := httptest.NewRecorder()
		api.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rr.Code)
		}
	})
}

func TestGenerationsListRequiresCompany(t *testing.T) {
	api := newGenerationAPI(newMemStore(), 10*time.Millisecond, 100*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/api/generations", nil)
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestGenerationsAwait(t *testing.T) {
	store := newMemStore()
	api := newGenerationAPI(store, 10*time.Millisecond, 100*time.Millisecond)

	t.Run("already completed resolves immediately", func(t *testing.T) {
		id := uuid.New()
		headline := "Coleção nova"
		store.seed(&models.ContentRequest{
			ID:       id,
			Status:   models.StatusCompleted,
			Headline: &headline,
		})

		req := httptest.NewRequest(http.MethodGet, "/api/generations/"+id.String()+"/wait", nil)
		rr := httptest.NewRecorder()
		start := time.Now()
		api.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
			t.Errorf("terminal request should resolve without waiting, took %v", elapsed)
		}

		var resp struct {
			Outcome generation.Outcome     `json:"outcome"`
			Request *models.ContentRequest `json:"request"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Outcome != generation.OutcomeCompleted {
			t.Errorf("outcome: got %q, want completed", resp.Outcome)
		}
		if resp.Request == nil || resp.Request.Headline == nil || *resp.Request.Headline != headline {
			t.Error("response should carry the completed record")
		}
	})

	t.Run("pending request times out", func(t *testing.T) {
		id := uuid.New()
		store.seed(&models.ContentRequest{ID: id, Status: models.StatusPending})

		req := httptest.NewRequest(http.MethodGet, "/api/generations/"+id.String()+"/wait", nil)
		rr := httptest.NewRecorder()
		api.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}

		var resp struct {
			Outcome generation.Outcome `json:"outcome"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Outcome != generation.OutcomeTimedOut {
			t.Errorf("outcome: got %q, want timed_out", resp.Outcome)
		}

		// The timeout must not have touched the stored request.
		stored, _ := store.FindByID(req.Context(), id)
		if stored.Status != models.StatusPending {
			t.Errorf("stored status: got %q, want pending", stored.Status)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/generations/"+uuid.NewString()+"/wait", nil)
		rr := httptest.NewRecorder()
		api.ServeHTTP(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rr.Code)
		}
	})
}
