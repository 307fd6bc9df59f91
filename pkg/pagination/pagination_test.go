package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-5); got != DefaultLimit {
		t.Fatalf("expected default limit for negative, got %d", got)
	}
	if got := NormalizeLimit(500); got != MaxLimit {
		t.Fatalf("expected max limit, got %d", got)
	}
	if got := NormalizeLimit(7); got != 7 {
		t.Fatalf("expected passthrough, got %d", got)
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, Limit: 10}
	if got := p.Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
	if got := (Params{}).Offset(); got != 0 {
		t.Fatalf("expected zero offset for defaults, got %d", got)
	}
}

func TestNewResult(t *testing.T) {
	res := NewResult(Params{Page: 2, Limit: 10}, 25)
	if res.Page != 2 || res.Limit != 10 {
		t.Fatalf("unexpected page/limit %d/%d", res.Page, res.Limit)
	}
	if res.Total != 25 {
		t.Fatalf("unexpected total %d", res.Total)
	}
	if res.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", res.TotalPages)
	}

	res = NewResult(Params{Page: 1, Limit: 10}, 0)
	if res.TotalPages != 0 {
		t.Fatalf("expected 0 pages for empty listing, got %d", res.TotalPages)
	}
}
