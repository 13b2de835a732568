package session

import (
	"fmt"
	"testing"

	"github.com/storeops/sum-backend/model"
)

func makeRecords(n int) []model.UpdateRecord {
	out := make([]model.UpdateRecord, n)
	for i := range out {
		out[i] = model.UpdateRecord{
			SysID:      fmt.Sprintf("s%03d", i),
			Name:       fmt.Sprintf("App %03d", i),
			BatchLevel: model.BatchLevelPatch,
		}
	}
	return out
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 25, 1},
		{1, 25, 1},
		{25, 25, 1},
		{26, 25, 2},
		{57, 25, 3},
		{100, 25, 4},
		{57, 10, 6},
	}
	for _, tt := range tests {
		p := NewPaginationState(tt.size, tt.total)
		if got := p.TotalPages(); got != tt.want {
			t.Errorf("TotalPages(total=%d, size=%d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestGoToClampsOutOfRange(t *testing.T) {
	p := NewPaginationState(25, 57)

	if got := p.GoTo(4); got.PageIndex != 3 {
		t.Errorf("GoTo(4) with 3 pages landed on %d, want 3", got.PageIndex)
	}
	if got := p.GoTo(-4); got.PageIndex != 1 {
		t.Errorf("GoTo(-4) landed on %d, want 1", got.PageIndex)
	}
	if got := p.GoTo(0); got.PageIndex != 1 {
		t.Errorf("GoTo(0) landed on %d, want 1", got.PageIndex)
	}
}

func TestNavigationStopsAtBounds(t *testing.T) {
	p := NewPaginationState(25, 57)

	p = p.Last()
	if p.PageIndex != 3 {
		t.Fatalf("Last() = %d, want 3", p.PageIndex)
	}
	if p = p.Next(); p.PageIndex != 3 {
		t.Errorf("Next() past the end moved to %d, want 3", p.PageIndex)
	}

	p = p.First()
	if p = p.Previous(); p.PageIndex != 1 {
		t.Errorf("Previous() before the start moved to %d, want 1", p.PageIndex)
	}
}

func TestWithPageSizeReclamps(t *testing.T) {
	p := NewPaginationState(10, 57).Last()
	if p.PageIndex != 6 {
		t.Fatalf("Last() with size 10 = %d, want 6", p.PageIndex)
	}

	p = p.WithPageSize(50)
	if p.PageIndex != 2 {
		t.Errorf("after resize to 50, PageIndex = %d, want 2", p.PageIndex)
	}
}

func TestPageSizeNormalization(t *testing.T) {
	if got := NewPaginationState(33, 0).PageSize; got != DefaultPageSize {
		t.Errorf("unlisted size normalized to %d, want %d", got, DefaultPageSize)
	}
	if got := NewPaginationState(50, 0).PageSize; got != 50 {
		t.Errorf("listed size normalized to %d, want 50", got)
	}
}

func TestWithTotalShrinkClampsIndex(t *testing.T) {
	p := NewPaginationState(25, 100).Last()
	p = p.WithTotal(30)
	if p.PageIndex != 2 {
		t.Errorf("after shrink to 30 records, PageIndex = %d, want 2", p.PageIndex)
	}
}

func TestSlicePage(t *testing.T) {
	records := makeRecords(57)
	state := NewPaginationState(25, 57).GoTo(3)

	page, _ := SlicePage(records, state)
	if len(page.Items) != 7 {
		t.Errorf("last page has %d items, want 7", len(page.Items))
	}
	if page.StartIndex != 50 || page.EndIndex != 57 {
		t.Errorf("page bounds = [%d,%d), want [50,57)", page.StartIndex, page.EndIndex)
	}
	if page.HasNext {
		t.Error("last page reports HasNext")
	}
	if !page.HasPrevious {
		t.Error("last page does not report HasPrevious")
	}
	if page.Items[0].SysID != "s050" {
		t.Errorf("first item on last page = %s, want s050", page.Items[0].SysID)
	}
}

func TestSlicePageEmptySet(t *testing.T) {
	page, state := SlicePage(nil, NewPaginationState(25, 0))
	if len(page.Items) != 0 || page.TotalPages != 1 || page.PageIndex != 1 {
		t.Errorf("empty page = %+v, want zero items on single page", page)
	}
	if state.TotalPages() != 1 {
		t.Errorf("TotalPages() = %d, want 1 for empty set", state.TotalPages())
	}
}

func TestSlicePageStaleState(t *testing.T) {
	// state built for 100 records, actual set shrank to 12
	state := NewPaginationState(25, 100).GoTo(4)
	page, newState := SlicePage(makeRecords(12), state)

	if page.PageIndex != 1 {
		t.Errorf("stale index clamped to %d, want 1", page.PageIndex)
	}
	if len(page.Items) != 12 {
		t.Errorf("page has %d items, want 12", len(page.Items))
	}
	if newState.TotalRecords != 12 {
		t.Errorf("state total = %d, want 12", newState.TotalRecords)
	}
}
