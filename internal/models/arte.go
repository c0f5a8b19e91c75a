// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Arte is a finished marketing graphic: a template filled with company
// data and, optionally, AI-generated copy. When an arte is created from
// a completed content request, GenerationID links back to it.
type Arte struct {
	ID           uuid.UUID  `json:"id"`
	CompanyID    uuid.UUID  `json:"company_id"`
	UserID       uuid.UUID  `json:"user_id"`
	TemplateID   *uuid.UUID `json:"template_id,omitempty"`
	GenerationID *uuid.UUID `json:"generation_id,omitempty"`
	Title        string     `json:"title"`
	Headline     *string    `json:"headline,omitempty"`
	Conteudo     *string    `json:"conteudo,omitempty"`
	CTA          *string    `json:"cta,omitempty"`
	ImageKey     *string    `json:"image_key,omitempty"`
	ImageURL     *string    `json:"image_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
