package domain

import "testing"

func TestPageOf(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		requested  int
		wantNumber int
		wantCount  int
		wantOffset int
		wantNext   bool
		wantPrev   bool
	}{
		{"first of two pages", 13, 1, 1, 2, 0, true, false},
		{"last of two pages", 13, 2, 2, 2, 10, false, true},
		{"single full page", 10, 1, 1, 1, 0, false, false},
		{"below range degrades to first", 13, 0, 1, 2, 0, true, false},
		{"negative degrades to first", 13, -3, 1, 2, 0, true, false},
		{"beyond range degrades to last", 13, 99, 2, 2, 10, false, true},
		{"empty listing has one page", 0, 1, 1, 1, 0, false, false},
		{"empty listing beyond range", 0, 5, 1, 1, 0, false, false},
		{"exact multiple of page size", 30, 3, 3, 3, 20, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := PageOf(tt.totalItems, tt.requested)
			if page.Number != tt.wantNumber {
				t.Errorf("Number = %d, want %d", page.Number, tt.wantNumber)
			}
			if page.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", page.Count, tt.wantCount)
			}
			if page.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", page.Offset, tt.wantOffset)
			}
			if page.HasNext != tt.wantNext {
				t.Errorf("HasNext = %v, want %v", page.HasNext, tt.wantNext)
			}
			if page.HasPrev != tt.wantPrev {
				t.Errorf("HasPrev = %v, want %v", page.HasPrev, tt.wantPrev)
			}
			if page.Limit != PageSize {
				t.Errorf("Limit = %d, want %d", page.Limit, PageSize)
			}
		})
	}
}
