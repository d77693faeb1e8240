package transport

import (
	"net/http/httptest"
	"testing"
)

func TestNewPageTotalPages(t *testing.T) {
	cases := []struct {
		total, limit int64
		want         int64
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{25, 10, 3},
		{5, 0, 0},
	}
	for _, c := range cases {
		page := NewPage(nil, 1, c.limit, c.total)
		if page.TotalPages != c.want {
			t.Fatalf("NewPage(total=%d, limit=%d).TotalPages = %d, want %d", c.total, c.limit, page.TotalPages, c.want)
		}
	}
}

func TestWriteErrorShape(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, 404, "not found", nil)

	if rec.Code != 404 {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if got := rec.Body.String(); got != "{\"error\":\"not found\"}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}
