// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the PostgreSQL persistence layer. Each entity
// gets its own store with hand-written SQL over database/sql.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"artegen/internal/models"
)

// CompanyStore handles tenant (company) database operations.
type CompanyStore struct {
	db *sql.DB
}

// NewCompanyStore creates a CompanyStore with the given connection.
func NewCompanyStore(db *sql.DB) *CompanyStore {
	return &CompanyStore{db: db}
}

const companyColumns = `
	id, name, segment, logo_url, primary_color, secondary_color,
	plan_id, active, created_at, updated_at`

func scanCompany(row interface{ Scan(...any) error }) (*models.Company, error) {
	c := &models.Company{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Segment, &c.LogoURL, &c.PrimaryColor,
		&c.SecondaryColor, &c.PlanID, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all companies, newest first.
func (s *CompanyStore) List() ([]models.Company, error) {
	rows, err := s.db.Query(
		`SELECT` + companyColumns + ` FROM companies ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var items []models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a company by its UUID. Returns nil if not found.
func (s *CompanyStore) FindByID(id uuid.UUID) (*models.Company, error) {
	row := s.db.QueryRow(
		`SELECT`+companyColumns+` FROM companies WHERE id = $1`, id)

	c, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find company: %w", err)
	}
	return c, nil
}

// Create inserts a new company and returns it with the generated ID.
func (s *CompanyStore) Create(c *models.Company) (*models.Company, error) {
	row := s.db.QueryRow(`
		INSERT INTO companies (name, segment, logo_url, primary_color, secondary_color, plan_id, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING`+companyColumns,
		c.Name, c.Segment, c.LogoURL, c.PrimaryColor, c.SecondaryColor, c.PlanID, c.Active,
	)

	created, err := scanCompany(row)
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	return created, nil
}

// Update modifies an existing company.
func (s *CompanyStore) Update(c *models.Company) error {
	_, err := s.db.Exec(`
		UPDATE companies SET
			name = $1, segment = $2, logo_url = $3, primary_color = $4,
			secondary_color = $5, plan_id = $6, active = $7, updated_at = NOW()
		WHERE id = $8
	`, c.Name, c.Segment, c.LogoURL, c.PrimaryColor, c.SecondaryColor, c.PlanID, c.Active, c.ID)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// Delete removes a company and, via cascade, its users, templates, artes,
// and content requests.
func (s *CompanyStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}
