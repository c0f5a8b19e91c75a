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

// PlanStore handles subscription plan database operations. Plans are
// read-mostly; they are created by migrations/seed and edited rarely.
type PlanStore struct {
	db *sql.DB
}

// NewPlanStore creates a PlanStore with the given connection.
func NewPlanStore(db *sql.DB) *PlanStore {
	return &PlanStore{db: db}
}

const planColumns = `
	id, name, slug, monthly_artes, monthly_generations, price_cents, active, created_at`

func scanPlan(row interface{ Scan(...any) error }) (*models.Plan, error) {
	p := &models.Plan{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.MonthlyArtes, &p.MonthlyGenerations,
		&p.PriceCents, &p.Active, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListActive returns all active plans, cheapest first.
func (s *PlanStore) ListActive() ([]models.Plan, error) {
	rows, err := s.db.Query(
		`SELECT` + planColumns + ` FROM plans WHERE active ORDER BY price_cents ASC`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var items []models.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a plan by UUID. Returns nil if not found.
func (s *PlanStore) FindByID(id uuid.UUID) (*models.Plan, error) {
	row := s.db.QueryRow(`SELECT`+planColumns+` FROM plans WHERE id = $1`, id)

	p, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find plan: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a plan by its slug. Returns nil if not found.
func (s *PlanStore) FindBySlug(slug string) (*models.Plan, error) {
	row := s.db.QueryRow(`SELECT`+planColumns+` FROM plans WHERE slug = $1`, slug)

	p, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find plan by slug: %w", err)
	}
	return p, nil
}
