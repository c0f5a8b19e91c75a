// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"artegen/internal/models"
	"artegen/internal/store"
)

// Users groups the company-member management handlers.
type Users struct {
	users *store.UserStore
}

// NewUsers creates the user handler group.
func NewUsers(users *store.UserStore) *Users {
	return &Users{users: users}
}

// userInput is the create request body. The password is accepted here
// and only ever stored as a bcrypt hash.
type userInput struct {
	CompanyID   uuid.UUID `json:"company_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Password    string    `json:"password"`
	Role        string    `json:"role"`
}

// List handles GET /api/users?company_id=.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := uuidQuery(w, r, "company_id")
	if !ok {
		return
	}

	items, err := h.users.ListByCompany(companyID)
	if err != nil {
		slog.Error("list users failed", "error", err, "company_id", companyID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/users/{id}.
func (h *Users) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	u, err := h.users.FindByID(id)
	if err != nil {
		slog.Error("find user failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Create handles POST /api/users.
func (h *Users) Create(w http.ResponseWriter, r *http.Request) {
	var in userInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.CompanyID == uuid.Nil {
		writeError(w, http.StatusUnprocessableEntity, "company_id is required")
		return
	}
	if msg := validateUser(in.Email, in.DisplayName, in.Password); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	role := models.UserRole(in.Role)
	if in.Role == "" {
		role = models.RoleEditor
	}
	if !role.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "role must be admin or editor")
		return
	}

	existing, err := h.users.FindByEmail(in.Email)
	if err != nil {
		slog.Error("find user by email failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "email already in use")
		return
	}

	u := &models.User{
		CompanyID:   in.CompanyID,
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		DisplayName: strings.TrimSpace(in.DisplayName),
		Role:        role,
	}

	created, err := h.users.Create(u, in.Password)
	if err != nil {
		slog.Error("create user failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /api/users/{id}.
func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.users.Delete(id); err != nil {
		slog.Error("delete user failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
