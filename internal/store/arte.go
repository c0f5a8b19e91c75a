// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"artegen/internal/models"
)

// ArteStore handles finished arte database operations.
type ArteStore struct {
	db *sql.DB
}

// NewArteStore creates an ArteStore with the given connection.
func NewArteStore(db *sql.DB) *ArteStore {
	return &ArteStore{db: db}
}

const arteColumns = `
	id, company_id, user_id, template_id, generation_id, title,
	headline, conteudo, cta, image_key, image_url, created_at, updated_at`

func scanArte(row interface{ Scan(...any) error }) (*models.Arte, error) {
	a := &models.Arte{}
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.UserID, &a.TemplateID, &a.GenerationID,
		&a.Title, &a.Headline, &a.Conteudo, &a.CTA,
		&a.ImageKey, &a.ImageURL, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListByCompany returns a company's artes, newest first.
func (s *ArteStore) ListByCompany(companyID uuid.UUID) ([]models.Arte, error) {
	rows, err := s.db.Query(
		`SELECT`+arteColumns+` FROM artes WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("list artes: %w", err)
	}
	defer rows.Close()

	var items []models.Arte
	for rows.Next() {
		a, err := scanArte(rows)
		if err != nil {
			return nil, fmt.Errorf("scan arte: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// FindByID retrieves an arte by UUID. Returns nil if not found.
func (s *ArteStore) FindByID(id uuid.UUID) (*models.Arte, error) {
	row := s.db.QueryRow(`SELECT`+arteColumns+` FROM artes WHERE id = $1`, id)

	a, err := scanArte(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find arte: %w", err)
	}
	return a, nil
}

// Create inserts a new arte and returns it with the generated ID.
func (s *ArteStore) Create(a *models.Arte) (*models.Arte, error) {
	row := s.db.QueryRow(`
		INSERT INTO artes (company_id, user_id, template_id, generation_id, title,
		                   headline, conteudo, cta, image_key, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING`+arteColumns,
		a.CompanyID, a.UserID, a.TemplateID, a.GenerationID, a.Title,
		a.Headline, a.Conteudo, a.CTA, a.ImageKey, a.ImageURL,
	)

	created, err := scanArte(row)
	if err != nil {
		return nil, fmt.Errorf("create arte: %w", err)
	}
	return created, nil
}

// Update modifies an existing arte.
func (s *ArteStore) Update(a *models.Arte) error {
	_, err := s.db.Exec(`
		UPDATE artes SET
			title = $1, headline = $2, conteudo = $3, cta = $4,
			template_id = $5, image_key = $6, image_url = $7, updated_at = NOW()
		WHERE id = $8
	`, a.Title, a.Headline, a.Conteudo, a.CTA, a.TemplateID, a.ImageKey, a.ImageURL, a.ID)
	if err != nil {
		return fmt.Errorf("update arte: %w", err)
	}
	return nil
}

// SetImage records the stored object key and public URL of the rendered
// arte image.
func (s *ArteStore) SetImage(id uuid.UUID, key, url string) error {
	_, err := s.db.Exec(`
		UPDATE artes SET image_key = $1, image_url = $2, updated_at = NOW()
		WHERE id = $3
	`, key, url, id)
	if err != nil {
		return fmt.Errorf("set arte image: %w", err)
	}
	return nil
}

// Delete removes an arte by ID.
func (s *ArteStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM artes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete arte: %w", err)
	}
	return nil
}

// CountByCompanyThisMonth returns how many artes the company created in
// the current calendar month. Used for plan limit checks.
func (s *ArteStore) CountByCompanyThisMonth(companyID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM artes
		WHERE company_id = $1 AND created_at >= date_trunc('month', NOW())
	`, companyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count artes: %w", err)
	}
	return count, nil
}
