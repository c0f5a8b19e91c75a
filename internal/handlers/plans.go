// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"artegen/internal/store"
)

// Plans exposes the read-only subscription plan catalogue.
type Plans struct {
	plans *store.PlanStore
}

// NewPlans creates the plan handler group.
func NewPlans(plans *store.PlanStore) *Plans {
	return &Plans{plans: plans}
}

// List handles GET /api/plans. Only active plans are returned.
func (h *Plans) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.plans.ListActive()
	if err != nil {
		slog.Error("list plans failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}
