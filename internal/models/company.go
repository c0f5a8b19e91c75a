// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the domain entities for the Artegen platform:
// companies, users, subscription plans, arte templates, generated artes,
// and AI content-generation requests.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is a tenant. All templates, artes, users, and content requests
// belong to exactly one company.
type Company struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Segment        *string    `json:"segment,omitempty"`
	LogoURL        *string    `json:"logo_url,omitempty"`
	PrimaryColor   *string    `json:"primary_color,omitempty"`
	SecondaryColor *string    `json:"secondary_color,omitempty"`
	PlanID         *uuid.UUID `json:"plan_id,omitempty"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Plan is a subscription tier limiting how many artes and AI generations
// a company may produce per month.
type Plan struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	MonthlyArtes       int       `json:"monthly_artes"`
	MonthlyGenerations int       `json:"monthly_generations"`
	PriceCents         int       `json:"price_cents"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
}
