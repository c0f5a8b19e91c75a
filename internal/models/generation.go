// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PostType enumerates the supported arte formats.
type PostType string

const (
	PostTypeFeed     PostType = "feed"
	PostTypeStory    PostType = "story"
	PostTypeReels    PostType = "reels"
	PostTypeCarousel PostType = "carousel"
	PostTypeCalendar PostType = "calendar"
)

// Valid reports whether the post type is one of the known formats.
func (p PostType) Valid() bool {
	switch p {
	case PostTypeFeed, PostTypeStory, PostTypeReels, PostTypeCarousel, PostTypeCalendar:
		return true
	}
	return false
}

// Tone enumerates the voice/tone options applied to generated copy.
type Tone string

const (
	ToneProfessional Tone = "profissional"
	ToneCasual       Tone = "casual"
	ToneFun          Tone = "divertido"
	ToneElegant      Tone = "elegante"
	ToneUrgent       Tone = "urgente"
)

// Valid reports whether the tone is one of the known options.
func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneFun, ToneElegant, ToneUrgent:
		return true
	}
	return false
}

// RequestStatus represents the lifecycle state of a content request.
// The status is monotonic: pending → completed or pending → failed,
// never back.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusCompleted RequestStatus = "completed"
	StatusFailed    RequestStatus = "failed"
)

// ContentRequest is an asynchronous AI content-generation request.
// It is created in pending state when a user submits a theme, and is
// completed (or failed) exactly once by the provider's webhook callback.
// The raw provider payload is kept verbatim alongside the normalized
// headline/conteudo/cta fields extracted from it.
type ContentRequest struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	UserID      uuid.UUID       `json:"user_id"`
	Tema        string          `json:"tema"`
	PostType    PostType        `json:"tipo_postagem"`
	Tone        Tone            `json:"tom_voz"`
	ImageCount  *int            `json:"quantidade_imagens,omitempty"`
	DayCount    *int            `json:"quantidade_dias,omitempty"`
	Status      RequestStatus   `json:"status"`
	RawResponse json.RawMessage `json:"resposta_bruta,omitempty"`
	Headline    *string         `json:"headline,omitempty"`
	Conteudo    *string         `json:"conteudo,omitempty"`
	CTA         *string         `json:"cta,omitempty"`
	FailReason  *string         `json:"fail_reason,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsTerminal reports whether the request has reached a final status.
func (r *ContentRequest) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}
