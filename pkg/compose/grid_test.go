package compose

import (
	"testing"

	"github.com/ec-intl/chartly/pkg/errors"
)

func TestPlanGrid(t *testing.T) {
	tests := []struct {
		count int
		want  GridShape
	}{
		{0, GridShape{1, 0}},
		{1, GridShape{1, 1}},
		{2, GridShape{1, 2}},
		{3, GridShape{1, 3}},
		{4, GridShape{1, 4}},
		{5, GridShape{2, 3}},
		{6, GridShape{2, 3}},
		{7, GridShape{3, 3}},
		{8, GridShape{3, 3}},
		{9, GridShape{3, 3}},
		{10, GridShape{3, 4}},
		{11, GridShape{3, 4}},
		{12, GridShape{3, 4}},
		{13, GridShape{4, 4}},
		{16, GridShape{4, 4}},
		{17, GridShape{4, 5}},
		{25, GridShape{5, 5}},
		{26, GridShape{5, 6}},
	}

	for _, tt := range tests {
		got, err := PlanGrid(tt.count)
		if err != nil {
			t.Errorf("PlanGrid(%d) error: %v", tt.count, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PlanGrid(%d) = %+v, want %+v", tt.count, got, tt.want)
		}
	}
}

func TestPlanGridCapacity(t *testing.T) {
	// The grid never under-allocates cells.
	for count := 0; count <= 1000; count++ {
		shape, err := PlanGrid(count)
		if err != nil {
			t.Fatalf("PlanGrid(%d) error: %v", count, err)
		}
		if shape.Cells() < count {
			t.Errorf("PlanGrid(%d) = %+v: %d cells < %d subplots", count, shape, shape.Cells(), count)
		}
	}
}

func TestPlanGridNegative(t *testing.T) {
	_, err := PlanGrid(-1)
	if err == nil {
		t.Fatal("PlanGrid(-1) should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidLayout)
	}
}

func TestIsqrt(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 0}, {1, 1}, {2, 1}, {3, 1}, {4, 2}, {8, 2}, {9, 3},
		{15, 3}, {16, 4}, {24, 4}, {25, 5}, {99, 9}, {100, 10},
		{1 << 30, 32768},
	}
	for _, tt := range tests {
		if got := isqrt(tt.n); got != tt.want {
			t.Errorf("isqrt(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
