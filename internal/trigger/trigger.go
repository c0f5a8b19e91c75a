// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package trigger starts content-generation workflows on the external
// automation provider. The call is one-directional: the provider answers
// the trigger with a bare acknowledgement and delivers the actual result
// later through the webhook endpoint, so nothing beyond the status code
// is read from the response.
package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"artegen/internal/models"
)

// Client calls the provider's workflow-trigger endpoint over HTTP.
type Client struct {
	url         string
	token       string
	callbackURL string // base URL the provider calls back on, request id appended
	client      *http.Client
}

// New creates a trigger client. Returns nil when url is empty so the
// application can run without a provider configured.
func New(url, token, callbackURL string) *Client {
	if url == "" {
		return nil
	}
	return &Client{
		url:         url,
		token:       token,
		callbackURL: strings.TrimRight(callbackURL, "/"),
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// payload is the JSON body sent to the provider. Field names follow the
// provider's workflow contract.
type payload struct {
	PedidoID    string `json:"pedido_id"`
	EmpresaID   string `json:"empresa_id"`
	Tema        string `json:"tema"`
	TipoPost    string `json:"tipo_postagem"`
	TomVoz      string `json:"tom_voz"`
	ImageCount  *int   `json:"quantidade_imagens,omitempty"`
	DayCount    *int   `json:"quantidade_dias,omitempty"`
	CallbackURL string `json:"callback_url"`
}

// Fire starts the provider workflow for a content request. Callers treat
// this as fire-and-forget: an error here only means the request will
// never complete, which the polling timeout surfaces to the user.
func (c *Client) Fire(ctx context.Context, r *models.ContentRequest) error {
	body := payload{
		PedidoID:    r.ID.String(),
		EmpresaID:   r.CompanyID.String(),
		Tema:        r.Tema,
		TipoPost:    string(r.PostType),
		TomVoz:      string(r.Tone),
		ImageCount:  r.ImageCount,
		DayCount:    r.DayCount,
		CallbackURL: fmt.Sprintf("%s/webhooks/generations/%s", c.callbackURL, r.ID),
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("trigger marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("trigger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("trigger http: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused; the body content is not
	// part of the contract.
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= 300 {
		return fmt.Errorf("trigger endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
