package services

import (
	"strconv"
	"strings"
)

// FilterStudentStats narrows a stats listing. The group filter matches
// exactly; the score filter is an operator expression such as ">80",
// "<50" or "=75" applied to the average score. A malformed score filter
// leaves the listing untouched.
func FilterStudentStats(stats []*StudentStat, filters StudentStatFilters) []*StudentStat {
	result := stats

	if filters.Group != "" {
		filtered := make([]*StudentStat, 0, len(result))
		for _, stat := range result {
			if stat.Group != nil && *stat.Group == filters.Group {
				filtered = append(filtered, stat)
			}
		}
		result = filtered
	}

	if filters.Score != "" {
		if match, ok := parseScoreFilter(filters.Score); ok {
			filtered := make([]*StudentStat, 0, len(result))
			for _, stat := range result {
				if match(stat.AvgScore) {
					filtered = append(filtered, stat)
				}
			}
			result = filtered
		}
	}

	return result
}

// parseScoreFilter parses an operator expression into a predicate. The
// second return value is false when the expression is malformed.
func parseScoreFilter(expr string) (func(float64) bool, bool) {
	expr = strings.TrimSpace(expr)
	if len(expr) < 2 {
		return nil, false
	}

	op := expr[0]
	threshold, err := strconv.ParseFloat(strings.TrimSpace(expr[1:]), 64)
	if err != nil {
		return nil, false
	}

	switch op {
	case '>':
		return func(v float64) bool { return v > threshold }, true
	case '<':
		return func(v float64) bool { return v < threshold }, true
	case '=':
		return func(v float64) bool { return v == threshold }, true
	default:
		return nil, false
	}
}
