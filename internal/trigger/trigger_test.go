package trigger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"artegen/internal/models"
)

func testRequest() *models.ContentRequest {
	days := 7
	return &models.ContentRequest{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Tema:      "Promoção de inverno",
		PostType:  models.PostTypeCalendar,
		Tone:      models.ToneProfessional,
		DayCount:  &days,
	}
}

func TestFireSendsWorkflowPayload(t *testing.T) {
	var got payload
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "secret-token", "https://api.artegen.test")
	req := testRequest()

	if err := c.Fire(context.Background(), req); err != nil {
		t.Fatalf("Fire: %v", err)
	}

	if auth != "Bearer secret-token" {
		t.Errorf("authorization: got %q", auth)
	}
	if got.PedidoID != req.ID.String() {
		t.Errorf("pedido_id: got %q, want %q", got.PedidoID, req.ID)
	}
	if got.Tema != "Promoção de inverno" || got.TomVoz != "profissional" {
		t.Errorf("unexpected payload: %+v", got)
	}
	if got.DayCount == nil || *got.DayCount != 7 {
		t.Errorf("quantidade_dias: got %v", got.DayCount)
	}
	wantCallback := "https://api.artegen.test/webhooks/generations/" + req.ID.String()
	if got.CallbackURL != wantCallback {
		t.Errorf("callback_url: got %q, want %q", got.CallbackURL, wantCallback)
	}
}

func TestFireNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, "", "https://api.artegen.test")
	if err := c.Fire(context.Background(), testRequest()); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestFireUnreachableProvider(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, "", "https://api.artegen.test")
	if err := c.Fire(context.Background(), testRequest()); err == nil {
		t.Fatal("expected error for unreachable provider")
	}
}

func TestNewWithoutURLReturnsNil(t *testing.T) {
	if c := New("", "token", "cb"); c != nil {
		t.Errorf("expected nil client without url, got %+v", c)
	}
}
