package pagination

import "testing"

func TestGetMeta(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"exact pages", 1, 20, 40, 2, true, false},
		{"partial last page", 2, 20, 45, 3, true, true},
		{"last page", 3, 20, 45, 3, false, true},
		{"empty", 1, 20, 0, 0, false, false},
	}

	for _, tc := range cases {
		meta := GetMeta(&Params{Page: tc.page, Limit: tc.limit}, tc.total)
		if meta.TotalPages != tc.totalPages {
			t.Errorf("%s: total pages = %d, want %d", tc.name, meta.TotalPages, tc.totalPages)
		}
		if meta.HasNext != tc.hasNext || meta.HasPrev != tc.hasPrev {
			t.Errorf("%s: has_next=%v has_prev=%v, want %v %v",
				tc.name, meta.HasNext, meta.HasPrev, tc.hasNext, tc.hasPrev)
		}
	}
}
