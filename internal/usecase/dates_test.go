package usecase

import "testing"

func TestNormalizeDate(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "day-abbrev-month-year",
			raw:  "18-Dec-2025",
			want: "2025-12-18",
		},
		{
			name: "day-abbrev-month-two-digit-year",
			raw:  "18-Dec-25",
			want: "2025-12-18",
		},
		{
			name: "numeric day-first with dashes",
			raw:  "18-12-2025",
			want: "2025-12-18",
		},
		{
			name: "numeric day-first with slashes",
			raw:  "18/12/2025",
			want: "2025-12-18",
		},
		{
			name: "numeric day-first two-digit year",
			raw:  "18/12/25",
			want: "2025-12-18",
		},
		{
			name: "full month name",
			raw:  "18-December-2025",
			want: "2025-12-18",
		},
		{
			name: "month-first full name",
			raw:  "December-18-2025",
			want: "2025-12-18",
		},
		{
			name: "iso passthrough normalized",
			raw:  "2025-12-18",
			want: "2025-12-18",
		},
		{
			name: "month-first numeric when day-first is impossible",
			raw:  "12/18/2025",
			want: "2025-12-18",
		},
		{
			name: "ambiguous numeric resolves day-first",
			raw:  "05/04/2025",
			want: "2025-04-05",
		},
		{
			name: "strips clock time and timezone",
			raw:  "18-Dec-2025 at 17:00 IST",
			want: "2025-12-18",
		},
		{
			name: "strips pipes and commas",
			raw:  "18-Dec-2025 | 5 PM,",
			want: "2025-12-18",
		},
		{
			name: "unparseable passes through unchanged",
			raw:  "not a date",
			want: "not a date",
		},
		{
			name: "empty passes through unchanged",
			raw:  "",
			want: "",
		},
		{
			name: "whitespace only passes through unchanged",
			raw:  "   ",
			want: "   ",
		},
		{
			name: "noise only passes through unchanged",
			raw:  "at 17:00 IST",
			want: "at 17:00 IST",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeDate(tc.raw)
			if got != tc.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
