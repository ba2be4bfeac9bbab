package services

import (
	"testing"
)

func statFixture() []*StudentStat {
	groupA := "7A"
	groupB := "7B"
	return []*StudentStat{
		{StudentID: 1, Name: "Alice", Group: &groupA, AvgScore: 92.5},
		{StudentID: 2, Name: "Bob", Group: &groupB, AvgScore: 85.5},
		{StudentID: 3, Name: "Cara", Group: &groupA, AvgScore: 70},
		{StudentID: 4, Name: "Dan", AvgScore: 85.5},
	}
}

func names(stats []*StudentStat) []string {
	out := make([]string, 0, len(stats))
	for _, s := range stats {
		out = append(out, s.Name)
	}
	return out
}

func TestFilterStudentStats(t *testing.T) {
	tests := []struct {
		name    string
		filters StudentStatFilters
		want    []string
	}{
		{
			name:    "no filters returns input",
			filters: StudentStatFilters{},
			want:    []string{"Alice", "Bob", "Cara", "Dan"},
		},
		{
			name:    "group exact match",
			filters: StudentStatFilters{Group: "7A"},
			want:    []string{"Alice", "Cara"},
		},
		{
			name:    "group match excludes students without a group",
			filters: StudentStatFilters{Group: "7B"},
			want:    []string{"Bob"},
		},
		{
			name:    "strictly greater than threshold",
			filters: StudentStatFilters{Score: ">85.5"},
			want:    []string{"Alice"},
		},
		{
			name:    "strictly less than threshold",
			filters: StudentStatFilters{Score: "<85.5"},
			want:    []string{"Cara"},
		},
		{
			name:    "equal threshold",
			filters: StudentStatFilters{Score: "=85.5"},
			want:    []string{"Bob", "Dan"},
		},
		{
			name:    "group applies before score",
			filters: StudentStatFilters{Group: "7A", Score: ">80"},
			want:    []string{"Alice"},
		},
		{
			name:    "malformed score filter is a no-op",
			filters: StudentStatFilters{Score: "bogus"},
			want:    []string{"Alice", "Bob", "Cara", "Dan"},
		},
		{
			name:    "unknown operator is a no-op",
			filters: StudentStatFilters{Score: "~80"},
			want:    []string{"Alice", "Bob", "Cara", "Dan"},
		},
		{
			name:    "missing number is a no-op",
			filters: StudentStatFilters{Score: ">"},
			want:    []string{"Alice", "Bob", "Cara", "Dan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(FilterStudentStats(statFixture(), tt.filters))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
