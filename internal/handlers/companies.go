// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"artegen/internal/models"
	"artegen/internal/store"
)

// Companies groups the tenant management handlers.
type Companies struct {
	companies *store.CompanyStore
	plans     *store.PlanStore
}

// NewCompanies creates the company handler group.
func NewCompanies(companies *store.CompanyStore, plans *store.PlanStore) *Companies {
	return &Companies{companies: companies, plans: plans}
}

// companyInput is the create/update request body.
type companyInput struct {
	Name           string     `json:"name"`
	Segment        *string    `json:"segment"`
	LogoURL        *string    `json:"logo_url"`
	PrimaryColor   *string    `json:"primary_color"`
	SecondaryColor *string    `json:"secondary_color"`
	PlanID         *uuid.UUID `json:"plan_id"`
	Active         *bool      `json:"active"`
}

// List handles GET /api/companies.
func (h *Companies) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.companies.List()
	if err != nil {
		slog.Error("list companies failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/companies/{id}.
func (h *Companies) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	c, err := h.companies.FindByID(id)
	if err != nil {
		slog.Error("find company failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Create handles POST /api/companies.
func (h *Companies) Create(w http.ResponseWriter, r *http.Request) {
	var in companyInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateCompany(in.Name, in.Segment, in.PrimaryColor, in.SecondaryColor); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if in.PlanID != nil {
		plan, err := h.plans.FindByID(*in.PlanID)
		if err != nil {
			slog.Error("find plan failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if plan == nil {
			writeError(w, http.StatusUnprocessableEntity, "unknown plan_id")
			return
		}
	}

	c := &models.Company{
		Name:           in.Name,
		Segment:        in.Segment,
		LogoURL:        in.LogoURL,
		PrimaryColor:   in.PrimaryColor,
		SecondaryColor: in.SecondaryColor,
		PlanID:         in.PlanID,
		Active:         true,
	}
	if in.Active != nil {
		c.Active = *in.Active
	}

	created, err := h.companies.Create(c)
	if err != nil {
		slog.Error("create company failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/companies/{id}.
func (h *Companies) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	existing, err := h.companies.FindByID(id)
	if err != nil {
		slog.Error("find company failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}

	var in companyInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateCompany(in.Name, in.Segment, in.PrimaryColor, in.SecondaryColor); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	existing.Name = in.Name
	existing.Segment = in.Segment
	existing.LogoURL = in.LogoURL
	existing.PrimaryColor = in.PrimaryColor
	existing.SecondaryColor = in.SecondaryColor
	existing.PlanID = in.PlanID
	if in.Active != nil {
		existing.Active = *in.Active
	}

	if err := h.companies.Update(existing); err != nil {
		slog.Error("update company failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

// Delete handles DELETE /api/companies/{id}.
func (h *Companies) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.companies.Delete(id); err != nil {
		slog.Error("delete company failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
