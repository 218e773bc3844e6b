package utils

import "testing"

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, pageSize, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{23, 10, 3},
		{150, 15, 10},
		{5, 0, 1},
	}

	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.pageSize); got != tc.want {
			t.Fatalf("TotalPages(%d, %d) = %d; want %d", tc.total, tc.pageSize, got, tc.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, totalPages, want int
	}{
		{1, 3, 1},
		{3, 3, 3},
		{5, 3, 3},
		{0, 3, 1},
		{-2, 3, 1},
		{2, 1, 1},
	}

	for _, tc := range cases {
		if got := ClampPage(tc.page, tc.totalPages); got != tc.want {
			t.Fatalf("ClampPage(%d, %d) = %d; want %d", tc.page, tc.totalPages, got, tc.want)
		}
	}
}

func TestPageWindow(t *testing.T) {
	cases := []struct {
		page, totalPages    int
		wantFirst, wantLast int
	}{
		// centered
		{5, 10, 3, 7},
		// clamped at the start
		{1, 10, 1, 3},
		{2, 10, 1, 4},
		// clamped at the end
		{10, 10, 8, 10},
		{9, 10, 7, 10},
		// fewer pages than the window
		{1, 2, 1, 2},
	}

	for _, tc := range cases {
		first, last := PageWindow(tc.page, tc.totalPages)
		if first != tc.wantFirst || last != tc.wantLast {
			t.Fatalf("PageWindow(%d, %d) = %d..%d; want %d..%d",
				tc.page, tc.totalPages, first, last, tc.wantFirst, tc.wantLast)
		}
	}
}
