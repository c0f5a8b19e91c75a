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

// TemplateStore handles arte template database operations. A company sees
// its own templates plus the global ones (company_id IS NULL).
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a TemplateStore with the given connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

const templateColumns = `
	id, company_id, name, slug, post_type, preview_url, fields, active, created_at, updated_at`

func scanTemplate(row interface{ Scan(...any) error }) (*models.ArteTemplate, error) {
	t := &models.ArteTemplate{}
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.Slug, &t.PostType,
		&t.PreviewURL, &t.Fields, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListForCompany returns the templates visible to a company: its own plus
// the global catalog, newest first.
func (s *TemplateStore) ListForCompany(companyID uuid.UUID) ([]models.ArteTemplate, error) {
	rows, err := s.db.Query(
		`SELECT`+templateColumns+`
		 FROM arte_templates
		 WHERE active AND (company_id = $1 OR company_id IS NULL)
		 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var items []models.ArteTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// FindByID retrieves a template by UUID. Returns nil if not found.
func (s *TemplateStore) FindByID(id uuid.UUID) (*models.ArteTemplate, error) {
	row := s.db.QueryRow(`SELECT`+templateColumns+` FROM arte_templates WHERE id = $1`, id)

	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template: %w", err)
	}
	return t, nil
}

// Create inserts a new template and returns it with the generated ID.
func (s *TemplateStore) Create(t *models.ArteTemplate) (*models.ArteTemplate, error) {
	row := s.db.QueryRow(`
		INSERT INTO arte_templates (company_id, name, slug, post_type, preview_url, fields, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING`+templateColumns,
		t.CompanyID, t.Name, t.Slug, t.PostType, t.PreviewURL, t.Fields, t.Active,
	)

	created, err := scanTemplate(row)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return created, nil
}

// Update modifies an existing template.
func (s *TemplateStore) Update(t *models.ArteTemplate) error {
	_, err := s.db.Exec(`
		UPDATE arte_templates SET
			name = $1, slug = $2, post_type = $3, preview_url = $4,
			fields = $5, active = $6, updated_at = NOW()
		WHERE id = $7
	`, t.Name, t.Slug, t.PostType, t.PreviewURL, t.Fields, t.Active, t.ID)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

// Delete removes a template by ID.
func (s *TemplateStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM arte_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
