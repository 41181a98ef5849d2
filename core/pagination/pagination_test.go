package pagination

import (
	"testing"

	"go-event-api/core/errors"
)

func TestParamsNormalize(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		p := Params{}
		if appErr := p.Normalize(); appErr != nil {
			t.Fatalf("expected no error, got %v", appErr)
		}
		if p.Page != 1 || p.PageSize != 10 {
			t.Fatalf("expected defaults 1/10, got %d/%d", p.Page, p.PageSize)
		}
	})

	t.Run("rejects page below 1", func(t *testing.T) {
		p := Params{Page: -1, PageSize: 10}
		appErr := p.Normalize()
		if appErr == nil || appErr.Code != errors.ErrInvalidInput {
			t.Fatalf("expected INVALID_INPUT, got %v", appErr)
		}
	})

	t.Run("rejects page_size above maximum", func(t *testing.T) {
		p := Params{Page: 1, PageSize: 101}
		appErr := p.Normalize()
		if appErr == nil || appErr.Code != errors.ErrInvalidInput {
			t.Fatalf("expected INVALID_INPUT, got %v", appErr)
		}
	})
}

func TestNewPage(t *testing.T) {
	items := func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}

	t.Run("first full page of 25", func(t *testing.T) {
		page := NewPage(items(10), 25, Params{Page: 1, PageSize: 10})
		if len(page.Items) != 10 || page.TotalPages != 3 {
			t.Fatalf("expected 10 items over 3 pages, got %d/%d", len(page.Items), page.TotalPages)
		}
		if !page.HasNext || page.HasPrev {
			t.Fatalf("expected has_next=true has_prev=false, got %v/%v", page.HasNext, page.HasPrev)
		}
	})

	t.Run("last partial page of 25", func(t *testing.T) {
		page := NewPage(items(5), 25, Params{Page: 3, PageSize: 10})
		if len(page.Items) != 5 {
			t.Fatalf("expected 5 items, got %d", len(page.Items))
		}
		if page.HasNext || !page.HasPrev {
			t.Fatalf("expected has_next=false has_prev=true, got %v/%v", page.HasNext, page.HasPrev)
		}
	})

	t.Run("page past the end is empty not an error", func(t *testing.T) {
		page := NewPage[int](nil, 25, Params{Page: 4, PageSize: 10})
		if page.Items == nil || len(page.Items) != 0 {
			t.Fatalf("expected empty items slice, got %v", page.Items)
		}
		if page.HasNext || !page.HasPrev {
			t.Fatalf("expected has_next=false has_prev=true, got %v/%v", page.HasNext, page.HasPrev)
		}
	})

	t.Run("zero total has zero pages", func(t *testing.T) {
		page := NewPage[int](nil, 0, Params{Page: 1, PageSize: 10})
		if page.TotalPages != 0 || page.HasNext || page.HasPrev {
			t.Fatalf("expected empty metadata, got %+v", page)
		}
	})
}
