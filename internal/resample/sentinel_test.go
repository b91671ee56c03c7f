package resample

import (
	"reflect"
	"testing"
)

func TestStripEOF_TableDriven(t *testing.T) {
	cases := []struct {
		name string
		in   [][]string
		want int // rows remaining
	}{
		{
			name: "sentinel row dropped",
			in:   [][]string{{"20240101", "TX", "202401"}, {"\x1a", "", ""}},
			want: 1,
		},
		{
			name: "sentinel with missing trailing fields dropped",
			in:   [][]string{{"20240101", "TX", "202401"}, {"\x1a"}},
			want: 1,
		},
		{
			name: "non-empty trailing field kept",
			in:   [][]string{{"20240101", "TX", "202401"}, {"\x1a", "TX", ""}},
			want: 2,
		},
		{
			name: "ordinary last row kept",
			in:   [][]string{{"20240101", "TX", "202401"}, {"20240101", "TX", "202402"}},
			want: 2,
		},
		{
			name: "sentinel not in last row is untouched",
			in:   [][]string{{"\x1a", "", ""}, {"20240101", "TX", "202401"}},
			want: 2,
		},
		{
			name: "empty table",
			in:   nil,
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := StripEOF(tc.in)
			if len(got) != tc.want {
				t.Fatalf("rows=%d, want %d", len(got), tc.want)
			}
			// surviving rows must be the original leading rows, unchanged
			if tc.want > 0 && !reflect.DeepEqual(got, tc.in[:tc.want]) {
				t.Fatalf("rows mutated: %v", got)
			}
		})
	}
}
