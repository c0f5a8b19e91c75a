// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"artegen/internal/models"
)

// GenerationStore persists AI content-generation requests. Unlike the
// flat CRUD stores, its methods take a context: reads happen inside
// polling loops and writes inside webhook deliveries, both of which are
// cancellable.
//
// Status transitions are enforced in SQL: Complete and MarkFailed only
// touch rows still in pending state, so a request can never leave a
// terminal status.
type GenerationStore struct {
	db *sql.DB
}

// NewGenerationStore creates a GenerationStore with the given connection.
func NewGenerationStore(db *sql.DB) *GenerationStore {
	return &GenerationStore{db: db}
}

const requestColumns = `
	id, company_id, user_id, tema, post_type, tone,
	image_count, day_count, status, raw_response,
	headline, conteudo, cta, fail_reason, created_at, updated_at`

// scanRequest reads one content request row.
func scanRequest(row interface{ Scan(...any) error }) (*models.ContentRequest, error) {
	r := &models.ContentRequest{}
	err := row.Scan(
		&r.ID, &r.CompanyID, &r.UserID, &r.Tema, &r.PostType, &r.Tone,
		&r.ImageCount, &r.DayCount, &r.Status, &r.RawResponse,
		&r.Headline, &r.Conteudo, &r.CTA, &r.FailReason, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Create inserts a new pending request and returns it with the generated
// ID and timestamps.
func (s *GenerationStore) Create(ctx context.Context, r *models.ContentRequest) (*models.ContentRequest, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO content_requests (company_id, user_id, tema, post_type, tone, image_count, day_count, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
		RETURNING`+requestColumns,
		r.CompanyID, r.UserID, r.Tema, r.PostType, r.Tone, r.ImageCount, r.DayCount,
	)

	created, err := scanRequest(row)
	if err != nil {
		return nil, fmt.Errorf("create content request: %w", err)
	}
	return created, nil
}

// FindByID retrieves a request by its UUID. Returns nil if not found.
func (s *GenerationStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ContentRequest, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT`+requestColumns+` FROM content_requests WHERE id = $1`, id)

	r, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content request: %w", err)
	}
	return r, nil
}

// ListByCompany returns a company's requests, newest first. limit caps
// the result size; zero means a default of 50.
func (s *GenerationStore) ListByCompany(ctx context.Context, companyID uuid.UUID, limit int) ([]models.ContentRequest, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT`+requestColumns+`
		 FROM content_requests
		 WHERE company_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("list content requests: %w", err)
	}
	defer rows.Close()

	var items []models.ContentRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content request: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// Complete records the provider's payload and normalized fields and moves
// the request to completed. Only pending rows are touched; the returned
// bool reports whether the transition happened, so callers can tell a
// first delivery apart from a late or duplicate one.
func (s *GenerationStore) Complete(ctx context.Context, id uuid.UUID, raw []byte, headline, conteudo, cta *string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE content_requests SET
			status = 'completed', raw_response = $1,
			headline = $2, conteudo = $3, cta = $4,
			updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
	`, raw, headline, conteudo, cta, id)
	if err != nil {
		return false, fmt.Errorf("complete content request: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("complete rows affected: %w", err)
	}
	return n > 0, nil
}

// MarkFailed moves a pending request to failed with the given reason.
// The returned bool reports whether the transition happened.
func (s *GenerationStore) MarkFailed(ctx context.Context, id uuid.UUID, reason string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE content_requests SET
			status = 'failed', fail_reason = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
	`, reason, id)
	if err != nil {
		return false, fmt.Errorf("fail content request: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("fail rows affected: %w", err)
	}
	return n > 0, nil
}
