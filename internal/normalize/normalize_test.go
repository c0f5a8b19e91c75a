package normalize

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"
)

func TestNormalizeArteInstagramShape(t *testing.T) {
	raw := []byte(`[{"response":{"body":{"arteInstagram":{
		"headline":"Verão chegou!",
		"conteudo":"Aproveite as ofertas",
		"chamadaParaAcao":"Compre agora"
	}}}}]`)

	res := Normalize(raw)
	if res == nil || res.Single == nil {
		t.Fatalf("expected single result, got %+v", res)
	}
	want := Entry{Headline: "Verão chegou!", Conteudo: "Aproveite as ofertas", CTA: "Compre agora"}
	if *res.Single != want {
		t.Errorf("got %+v, want %+v", *res.Single, want)
	}
}

// The arteInstagram shape must win even when the payload also carries
// generic top-level fields that would match the flat shape.
func TestNormalizeShapePrecedence(t *testing.T) {
	raw := []byte(`[{"headline":"WRONG","response":{"body":{"arteInstagram":{
		"headline":"A","conteudo":"B","chamadaParaAcao":"C"
	}}}}]`)

	res := Normalize(raw)
	if res == nil || res.Single == nil {
		t.Fatalf("expected single result, got %+v", res)
	}
	if got, want := *res.Single, (Entry{Headline: "A", Conteudo: "B", CTA: "C"}); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNormalizeCalendarioSazonalShape(t *testing.T) {
	raw := []byte(`[{"response":{"body":{"calendario_sazonal":[
		{"headline":"Dia 1","conteudo":"c1","cta":"a1"},
		{"headline":"Dia 2","conteudo":"c2","cta":"a2"}
	]}}}]`)

	res := Normalize(raw)
	if res == nil || !res.IsCalendar() {
		t.Fatalf("expected calendar result, got %+v", res)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(res.Entries))
	}
	if res.Entries[1] != (Entry{Headline: "Dia 2", Conteudo: "c2", CTA: "a2"}) {
		t.Errorf("entry 2: got %+v", res.Entries[1])
	}
}

func TestNormalizeLegacyOutputShape(t *testing.T) {
	entries := make([]map[string]string, 7)
	for i := range entries {
		entries[i] = map[string]string{
			"headline": fmt.Sprintf("Dia %d", i+1),
			"conteudo": "conteudo",
			"cta":      "cta",
		}
	}
	raw, _ := json.Marshal(map[string]any{"output": entries})

	res := Normalize(raw)
	if res == nil || !res.IsCalendar() {
		t.Fatalf("expected calendar result, got %+v", res)
	}
	if len(res.Entries) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(res.Entries))
	}
	for i, e := range res.Entries {
		if e.Headline != fmt.Sprintf("Dia %d", i+1) {
			t.Errorf("entry %d headline: got %q", i, e.Headline)
		}
	}
}

func TestNormalizeFlatShape(t *testing.T) {
	raw := []byte(`{"headline":"H","conteudo":"C","cta":"A"}`)

	res := Normalize(raw)
	if res == nil || res.Single == nil {
		t.Fatalf("expected single result, got %+v", res)
	}
	if got, want := *res.Single, (Entry{Headline: "H", Conteudo: "C", CTA: "A"}); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNormalizeFlatShapePartialFields(t *testing.T) {
	res := Normalize([]byte(`{"conteudo":"apenas texto"}`))
	if res == nil || res.Single == nil {
		t.Fatalf("expected single result, got %+v", res)
	}
	if res.Single.Headline != "" || res.Single.CTA != "" {
		t.Errorf("absent fields must stay empty: %+v", res.Single)
	}
	if res.Single.Conteudo != "apenas texto" {
		t.Errorf("conteudo: got %q", res.Single.Conteudo)
	}
}

func TestNormalizeUnknownShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty object", `{}`},
		{"empty array", `[]`},
		{"scalar", `42`},
		{"string", `"hello"`},
		{"array of scalars", `[1,2,3]`},
		{"unrelated object", `{"status":"ok","data":{"x":1}}`},
		{"response without body", `[{"response":{}}]`},
		{"body without known keys", `[{"response":{"body":{"outro":"campo"}}}]`},
		{"invalid json", `{not json`},
		{"empty payload", ``},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if res := Normalize([]byte(tc.raw)); res != nil {
				t.Errorf("expected nil, got %+v", res)
			}
		})
	}
}

func TestNormalizeMissingNestedKeysDoNotPanic(t *testing.T) {
	// arteInstagram present but empty — every field defaults to "".
	res := Normalize([]byte(`[{"response":{"body":{"arteInstagram":{}}}}]`))
	if res == nil || res.Single == nil {
		t.Fatalf("expected single result, got %+v", res)
	}
	if *res.Single != (Entry{}) {
		t.Errorf("expected empty entry, got %+v", *res.Single)
	}
}

func TestNormalizeCalendarSkipsMalformedEntries(t *testing.T) {
	raw := []byte(`{"output":[{"headline":"ok","conteudo":"c","cta":"a"}, 17, "junk", {"headline":"ok2"}]}`)

	res := Normalize(raw)
	if res == nil || len(res.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", res)
	}
}

func TestNormalizeNonStringFieldValues(t *testing.T) {
	res := Normalize([]byte(`{"headline":123,"conteudo":"ok","cta":null}`))
	if res == nil || res.Single == nil {
		t.Fatalf("expected single result, got %+v", res)
	}
	if res.Single.Headline != "" || res.Single.CTA != "" || res.Single.Conteudo != "ok" {
		t.Errorf("non-string values must normalize to empty: %+v", res.Single)
	}
}

// Normalize is a pure function: repeated calls over the same payload
// yield identical results.
func TestNormalizeDeterministic(t *testing.T) {
	payloads := [][]byte{
		[]byte(`[{"response":{"body":{"arteInstagram":{"headline":"A","conteudo":"B","chamadaParaAcao":"C"}}}}]`),
		[]byte(`{"output":[{"headline":"D1","conteudo":"c","cta":"a"}]}`),
		[]byte(`{"headline":"H"}`),
		[]byte(`{}`),
	}
	for _, raw := range payloads {
		first := Normalize(raw)
		for i := 0; i < 3; i++ {
			if again := Normalize(raw); !reflect.DeepEqual(first, again) {
				t.Errorf("normalize not deterministic for %s: %+v vs %+v", raw, first, again)
			}
		}
	}
}
