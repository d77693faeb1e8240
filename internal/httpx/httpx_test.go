package httpx

import (
	"net/url"
	"strings"
	"testing"
)

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var out struct {
		Name string `json:"name"`
	}
	err := DecodeJSON(strings.NewReader(`{"name":"a","bogus":true}`), &out)
	if err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestDecodeJSONRejectsTrailingContent(t *testing.T) {
	var out struct {
		Name string `json:"name"`
	}
	err := DecodeJSON(strings.NewReader(`{"name":"a"}{"name":"b"}`), &out)
	if err == nil {
		t.Fatalf("expected error for second JSON object")
	}
}

func TestDecodeJSONOK(t *testing.T) {
	var out struct {
		Name string `json:"name"`
	}
	if err := DecodeJSON(strings.NewReader(`{"name":"a"}`), &out); err != nil {
		t.Fatalf("DecodeJSON error: %v", err)
	}
	if out.Name != "a" {
		t.Fatalf("expected name to decode, got %q", out.Name)
	}
}

func TestParsePageDefaults(t *testing.T) {
	page, limit, err := ParsePage(url.Values{}, 12, 100)
	if err != nil {
		t.Fatalf("ParsePage error: %v", err)
	}
	if page != 1 || limit != 12 {
		t.Fatalf("expected defaults 1/12, got %d/%d", page, limit)
	}
}

func TestParsePageClampsLimit(t *testing.T) {
	values := url.Values{"page": {"3"}, "limit": {"500"}}
	page, limit, err := ParsePage(values, 12, 100)
	if err != nil {
		t.Fatalf("ParsePage error: %v", err)
	}
	if page != 3 || limit != 100 {
		t.Fatalf("expected 3/100, got %d/%d", page, limit)
	}
}

func TestParsePageRejectsGarbage(t *testing.T) {
	for _, values := range []url.Values{
		{"page": {"0"}},
		{"page": {"-1"}},
		{"page": {"abc"}},
		{"limit": {"0"}},
		{"limit": {"nope"}},
	} {
		if _, _, err := ParsePage(values, 12, 100); err == nil {
			t.Fatalf("expected error for %v", values)
		}
	}
}
