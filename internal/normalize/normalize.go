// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package normalize extracts canonical content fields from the
// heterogeneous payloads delivered by the workflow provider's webhook.
// The provider has shipped several payload shapes over time; this package
// recognizes each of them through an ordered list of (match, extract)
// pairs so the precedence between overlapping shapes stays explicit.
package normalize

import (
	"encoding/json"
)

// Entry is one normalized piece of generated content. Fields the payload
// does not carry are left empty, never invented.
type Entry struct {
	Headline string `json:"headline"`
	Conteudo string `json:"conteudo"`
	CTA      string `json:"cta"`
}

// Result is the outcome of normalizing one raw payload. Exactly one of
// Single or Entries is set: Single for one-shot artes, Entries for
// calendar payloads carrying one entry per day.
type Result struct {
	Single  *Entry  `json:"single,omitempty"`
	Entries []Entry `json:"entries,omitempty"`
}

// IsCalendar reports whether the result is a multi-entry calendar batch.
func (r *Result) IsCalendar() bool {
	return r != nil && r.Entries != nil
}

// shape pairs a structural predicate with its extractor. Shapes are tried
// in declaration order and the first match wins.
type shape struct {
	name    string
	match   func(v any) bool
	extract func(v any) *Result
}

// shapes lists every known provider payload layout, newest first:
//
//  1. [{response:{body:{arteInstagram:{...}}}}] — single arte; the call
//     to action arrives under "chamadaParaAcao", not "cta".
//  2. [{response:{body:{calendario_sazonal:[...]}}}] — calendar batch.
//  3. {output:[...]} — legacy calendar batch.
//  4. {headline|conteudo|cta} at the top level — single arte, as-is.
var shapes = []shape{
	{
		name:    "arteInstagram",
		match:   func(v any) bool { return nestedMap(firstElement(v), "response", "body", "arteInstagram") != nil },
		extract: extractArteInstagram,
	},
	{
		name:    "calendario_sazonal",
		match:   func(v any) bool { return nestedSlice(firstElement(v), "response", "body", "calendario_sazonal") != nil },
		extract: extractCalendarioSazonal,
	},
	{
		name:    "output",
		match:   func(v any) bool { return nestedSlice(v, "output") != nil },
		extract: extractOutput,
	},
	{
		name:    "flat",
		match:   matchFlat,
		extract: extractFlat,
	},
}

// Normalize inspects a raw provider payload and extracts the canonical
// content fields. It returns nil when the payload matches none of the
// known shapes; callers then fall back to whatever scalar fields are
// already stored on the request record. Missing nested keys never cause
// an error — absent fields simply stay empty.
func Normalize(raw []byte) *Result {
	if len(raw) == 0 {
		return nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}

	for _, s := range shapes {
		if s.match(v) {
			return s.extract(v)
		}
	}
	return nil
}

// extractArteInstagram handles shape 1. The provider nests the arte under
// response.body.arteInstagram and names the CTA "chamadaParaAcao".
func extractArteInstagram(v any) *Result {
	m := nestedMap(firstElement(v), "response", "body", "arteInstagram")
	e := entryFrom(m, "chamadaParaAcao")
	return &Result{Single: &e}
}

// extractCalendarioSazonal handles shape 2: one entry per calendar day.
func extractCalendarioSazonal(v any) *Result {
	items := nestedSlice(firstElement(v), "response", "body", "calendario_sazonal")
	return &Result{Entries: entriesFrom(items)}
}

// extractOutput handles shape 3, the legacy calendar layout.
func extractOutput(v any) *Result {
	return &Result{Entries: entriesFrom(nestedSlice(v, "output"))}
}

// matchFlat accepts a top-level object exposing any canonical field.
func matchFlat(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, key := range []string{"headline", "conteudo", "cta"} {
		if _, present := m[key]; present {
			return true
		}
	}
	return false
}

// extractFlat handles shape 4: the payload already is the entry.
func extractFlat(v any) *Result {
	m, _ := v.(map[string]any)
	e := entryFrom(m, "cta")
	return &Result{Single: &e}
}

// entryFrom builds an Entry from a payload object. ctaKey names the key
// holding the call to action, which differs between shapes.
func entryFrom(m map[string]any, ctaKey string) Entry {
	return Entry{
		Headline: stringField(m, "headline"),
		Conteudo: stringField(m, "conteudo"),
		CTA:      stringField(m, ctaKey),
	}
}

// entriesFrom builds the entry list for calendar payloads. Non-object
// elements are skipped rather than aborting the whole batch.
func entriesFrom(items []any) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entries = append(entries, entryFrom(m, "cta"))
	}
	return entries
}

// firstElement returns the first element of a non-empty JSON array,
// or nil if v is not an array or is empty.
func firstElement(v any) any {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil
	}
	return arr[0]
}

// nestedMap walks a chain of object keys and returns the map at the end,
// or nil as soon as any hop is missing or not an object.
func nestedMap(v any, keys ...string) map[string]any {
	for _, key := range keys {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = m[key]
	}
	m, _ := v.(map[string]any)
	return m
}

// nestedSlice walks a chain of object keys and returns the array at the
// end, or nil as soon as any hop is missing.
func nestedSlice(v any, keys ...string) []any {
	if len(keys) > 1 {
		v = nestedMap(v, keys[:len(keys)-1]...)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	arr, _ := m[keys[len(keys)-1]].([]any)
	return arr
}

// stringField reads a string value from a payload object, tolerating
// missing keys and non-string values.
func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
