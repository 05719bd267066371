package repository

import "testing"

func intPtr(n int) *int { return &n }

func TestDisplayOrderFor(t *testing.T) {
	cases := []struct {
		name  string
		index int
		in    ButtonInput
		want  int
	}{
		{"no explicit order uses list position", 0, ButtonInput{}, 0},
		{"position is 0-based", 3, ButtonInput{}, 3},
		{"explicit order wins over position", 1, ButtonInput{Order: intPtr(9)}, 9},
		{"explicit zero is still explicit", 5, ButtonInput{Order: intPtr(0)}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := displayOrderFor(tc.index, tc.in); got != tc.want {
				t.Errorf("displayOrderFor(%d, %+v) = %d, want %d", tc.index, tc.in, got, tc.want)
			}
		})
	}
}
