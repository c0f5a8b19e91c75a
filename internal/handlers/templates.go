// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"artegen/internal/models"
	"artegen/internal/slug"
	"artegen/internal/store"
)

// Templates groups the arte-template handlers. Global templates (no
// company) are managed here too; tenants only ever see global templates
// plus their own.
type Templates struct {
	templates *store.TemplateStore
}

// NewTemplates creates the template handler group.
func NewTemplates(templates *store.TemplateStore) *Templates {
	return &Templates{templates: templates}
}

// templateInput is the create/update request body.
type templateInput struct {
	CompanyID  *uuid.UUID      `json:"company_id"`
	Name       string          `json:"name"`
	PostType   models.PostType `json:"tipo_postagem"`
	PreviewURL *string         `json:"preview_url"`
	Fields     json.RawMessage `json:"fields"`
	Active     *bool           `json:"active"`
}

// List handles GET /api/templates?company_id=. The result includes
// global templates alongside the company's own.
func (h *Templates) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := uuidQuery(w, r, "company_id")
	if !ok {
		return
	}

	items, err := h.templates.ListForCompany(companyID)
	if err != nil {
		slog.Error("list templates failed", "error", err, "company_id", companyID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/templates/{id}.
func (h *Templates) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	t, err := h.templates.FindByID(id)
	if err != nil {
		slog.Error("find template failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Create handles POST /api/templates. The slug is derived from the name.
func (h *Templates) Create(w http.ResponseWriter, r *http.Request) {
	var in templateInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateTemplate(in.Name); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if !in.PostType.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "unknown tipo_postagem")
		return
	}

	t := &models.ArteTemplate{
		CompanyID:  in.CompanyID,
		Name:       in.Name,
		Slug:       slug.Generate(in.Name),
		PostType:   in.PostType,
		PreviewURL: in.PreviewURL,
		Fields:     in.Fields,
		Active:     true,
	}
	if in.Active != nil {
		t.Active = *in.Active
	}

	created, err := h.templates.Create(t)
	if err != nil {
		slog.Error("create template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/templates/{id}. The slug follows the name.
func (h *Templates) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	existing, err := h.templates.FindByID(id)
	if err != nil {
		slog.Error("find template failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}

	var in templateInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateTemplate(in.Name); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if !in.PostType.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "unknown tipo_postagem")
		return
	}

	existing.Name = in.Name
	existing.Slug = slug.Generate(in.Name)
	existing.PostType = in.PostType
	existing.PreviewURL = in.PreviewURL
	existing.Fields = in.Fields
	if in.Active != nil {
		existing.Active = *in.Active
	}

	if err := h.templates.Update(existing); err != nil {
		slog.Error("update template failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

// Delete handles DELETE /api/templates/{id}.
func (h *Templates) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.templates.Delete(id); err != nil {
		slog.Error("delete template failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
