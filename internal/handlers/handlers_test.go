package handlers

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"artegen/internal/models"
)

// memStore is an in-memory RequestStore used to exercise the generation
// and webhook handlers without Postgres. It mirrors the SQL store's
// pending-only guard on terminal transitions.
type memStore struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*models.ContentRequest
}

func newMemStore() *memStore {
	return &memStore{requests: make(map[uuid.UUID]*models.ContentRequest)}
}

func (m *memStore) Create(_ context.Context, r *models.ContentRequest) (*models.ContentRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *r
	cp.ID = uuid.New()
	cp.Status = models.StatusPending
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.requests[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (m *memStore) FindByID(_ context.Context, id uuid.UUID) (*models.ContentRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) ListByCompany(_ context.Context, companyID uuid.UUID, _ int) ([]models.ContentRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.ContentRequest
	for _, r := range m.requests {
		if r.CompanyID == companyID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memStore) Complete(_ context.Context, id uuid.UUID, raw []byte, headline, conteudo, cta *string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.requests[id]
	if !ok || r.Status != models.StatusPending {
		return false, nil
	}
	r.Status = models.StatusCompleted
	r.RawResponse = bytes.Clone(raw)
	r.Headline = headline
	r.Conteudo = conteudo
	r.CTA = cta
	r.UpdatedAt = time.Now()
	return true, nil
}

func (m *memStore) MarkFailed(_ context.Context, id uuid.UUID, reason string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.requests[id]
	if !ok || r.Status != models.StatusPending {
		return false, nil
	}
	r.Status = models.StatusFailed
	r.FailReason = &reason
	r.UpdatedAt = time.Now()
	return true, nil
}

// seed inserts a request directly, bypassing Create, for tests that need
// a known id or status.
func (m *memStore) seed(r *models.ContentRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.requests[cp.ID] = &cp
}
