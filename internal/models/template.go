// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ArteTemplate is a reusable design a company customizes to produce artes.
// Global templates (CompanyID nil) are visible to every tenant. Fields
// holds the editable field definitions (text slots, colors, logo slots)
// as an opaque JSON document consumed by the front-end editor.
type ArteTemplate struct {
	ID         uuid.UUID       `json:"id"`
	CompanyID  *uuid.UUID      `json:"company_id,omitempty"`
	Name       string          `json:"name"`
	Slug       string          `json:"slug"`
	PostType   PostType        `json:"tipo_postagem"`
	PreviewURL *string         `json:"preview_url,omitempty"`
	Fields     json.RawMessage `json:"fields,omitempty"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// IsGlobal returns true when the template is shared across all companies.
func (t *ArteTemplate) IsGlobal() bool {
	return t.CompanyID == nil
}
