// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"artegen/internal/generation"
	"artegen/internal/models"
	"artegen/internal/storage"
	"artegen/internal/store"
)

// Artes groups the finished-arte handlers. An arte can be created from
// scratch or seeded with the normalized copy of a completed generation.
type Artes struct {
	artes     *store.ArteStore
	companies *store.CompanyStore
	plans     *store.PlanStore
	gen       *generation.Service
	storage   *storage.Client // nil when S3 is not configured
}

// NewArtes creates the arte handler group. storageClient may be nil,
// which disables image uploads.
func NewArtes(artes *store.ArteStore, companies *store.CompanyStore, plans *store.PlanStore, gen *generation.Service, storageClient *storage.Client) *Artes {
	return &Artes{artes: artes, companies: companies, plans: plans, gen: gen, storage: storageClient}
}

// arteInput is the create/update request body.
type arteInput struct {
	CompanyID    uuid.UUID  `json:"company_id"`
	UserID       uuid.UUID  `json:"user_id"`
	TemplateID   *uuid.UUID `json:"template_id"`
	GenerationID *uuid.UUID `json:"generation_id"`
	Title        string     `json:"title"`
	Headline     *string    `json:"headline"`
	Conteudo     *string    `json:"conteudo"`
	CTA          *string    `json:"cta"`
}

// maxUploadBytes caps arte image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// List handles GET /api/artes?company_id=.
func (h *Artes) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := uuidQuery(w, r, "company_id")
	if !ok {
		return
	}

	items, err := h.artes.ListByCompany(companyID)
	if err != nil {
		slog.Error("list artes failed", "error", err, "company_id", companyID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/artes/{id}.
func (h *Artes) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	a, err := h.artes.FindByID(id)
	if err != nil {
		slog.Error("find arte failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "arte not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Create handles POST /api/artes. When generation_id is set, the
// normalized copy of that completed generation seeds any headline,
// conteudo, or cta fields the caller left empty. Creation counts
// against the company plan's monthly arte quota.
func (h *Artes) Create(w http.ResponseWriter, r *http.Request) {
	var in arteInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.CompanyID == uuid.Nil || in.UserID == uuid.Nil {
		writeError(w, http.StatusUnprocessableEntity, "company_id and user_id are required")
		return
	}
	if msg := validateArte(in.Title); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	if ok := h.withinQuota(w, in.CompanyID); !ok {
		return
	}

	a := &models.Arte{
		CompanyID:    in.CompanyID,
		UserID:       in.UserID,
		TemplateID:   in.TemplateID,
		GenerationID: in.GenerationID,
		Title:        strings.TrimSpace(in.Title),
		Headline:     in.Headline,
		Conteudo:     in.Conteudo,
		CTA:          in.CTA,
	}

	if in.GenerationID != nil {
		req, err := h.gen.Get(r.Context(), *in.GenerationID)
		if err != nil {
			if errors.Is(err, generation.ErrUnknownRequest) {
				writeError(w, http.StatusUnprocessableEntity, "unknown generation_id")
				return
			}
			slog.Error("get generation failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if req.Status != models.StatusCompleted {
			writeError(w, http.StatusUnprocessableEntity, "generation has not completed")
			return
		}
		if a.Headline == nil {
			a.Headline = req.Headline
		}
		if a.Conteudo == nil {
			a.Conteudo = req.Conteudo
		}
		if a.CTA == nil {
			a.CTA = req.CTA
		}
	}

	created, err := h.artes.Create(a)
	if err != nil {
		slog.Error("create arte failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// withinQuota checks the company plan's monthly arte limit. Companies
// without a plan are unrestricted. Writes the error response and
// returns false when over quota.
func (h *Artes) withinQuota(w http.ResponseWriter, companyID uuid.UUID) bool {
	company, err := h.companies.FindByID(companyID)
	if err != nil {
		slog.Error("find company failed", "error", err, "id", companyID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return false
	}
	if company == nil {
		writeError(w, http.StatusUnprocessableEntity, "unknown company_id")
		return false
	}
	if company.PlanID == nil {
		return true
	}

	plan, err := h.plans.FindByID(*company.PlanID)
	if err != nil {
		slog.Error("find plan failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return false
	}
	if plan == nil || plan.MonthlyArtes <= 0 {
		return true
	}

	used, err := h.artes.CountByCompanyThisMonth(companyID)
	if err != nil {
		slog.Error("count artes failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return false
	}
	if used >= plan.MonthlyArtes {
		writeError(w, http.StatusForbidden, fmt.Sprintf("monthly arte limit reached (%d)", plan.MonthlyArtes))
		return false
	}
	return true
}

// Update handles PUT /api/artes/{id}.
func (h *Artes) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	existing, err := h.artes.FindByID(id)
	if err != nil {
		slog.Error("find arte failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "arte not found")
		return
	}

	var in arteInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateArte(in.Title); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	existing.Title = strings.TrimSpace(in.Title)
	existing.TemplateID = in.TemplateID
	existing.Headline = in.Headline
	existing.Conteudo = in.Conteudo
	existing.CTA = in.CTA

	if err := h.artes.Update(existing); err != nil {
		slog.Error("update arte failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

// Delete handles DELETE /api/artes/{id}. The stored image, if any, is
// removed from object storage as well.
func (h *Artes) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	a, err := h.artes.FindByID(id)
	if err != nil {
		slog.Error("find arte failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "arte not found")
		return
	}

	if a.ImageKey != nil && h.storage != nil {
		if err := h.storage.Delete(r.Context(), *a.ImageKey); err != nil {
			slog.Warn("delete arte image failed", "error", err, "key", *a.ImageKey)
		}
	}

	if err := h.artes.Delete(id); err != nil {
		slog.Error("delete arte failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// allowed image types for uploads.
var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// UploadImage handles POST /api/artes/{id}/image. The rendered arte is
// sent as a multipart "image" part and stored in the public bucket.
func (h *Artes) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	a, err := h.artes.FindByID(id)
	if err != nil {
		slog.Error("find arte failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "arte not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		// Fall back to the filename extension for clients that omit
		// the part content type.
		ext = strings.ToLower(filepath.Ext(header.Filename))
		switch ext {
		case ".png":
			contentType = "image/png"
		case ".jpg", ".jpeg":
			contentType = "image/jpeg"
			ext = ".jpg"
		case ".webp":
			contentType = "image/webp"
		default:
			writeError(w, http.StatusUnsupportedMediaType, "image must be png, jpeg, or webp")
			return
		}
	}

	key := fmt.Sprintf("artes/%s/%s%s", a.CompanyID, a.ID, ext)
	if err := h.storage.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("upload arte image failed", "error", err, "key", key)
		writeError(w, http.StatusBadGateway, "image upload failed")
		return
	}

	url := h.storage.FileURL(key)
	if err := h.artes.SetImage(id, key, url); err != nil {
		slog.Error("record arte image failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"image_key": key,
		"image_url": url,
	})
}
