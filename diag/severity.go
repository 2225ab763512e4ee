package diag

import "fmt"

// Severity represents the severity level of a validation message.
//
// Severities form an explicit total order: Info < Warning < Error.
// The order is defined by severityRanks, not by declaration order.
type Severity string

const (
	// SeverityInfo indicates an informational message without direct impact
	// on the validity of the subject node.
	// Examples: reference-cycle sentinels, advisory notes
	SeverityInfo Severity = "info"

	// SeverityWarning indicates a questionable construct that does not by
	// itself invalidate the subject node.
	// Examples: deprecated usage, suspicious but legal structure
	SeverityWarning Severity = "warning"

	// SeverityError indicates a violation that makes the subject node invalid.
	// Examples: missing identifier, non-covariant attribute override
	SeverityError Severity = "error"
)

// severityRanks maps severity levels to numeric ranks for comparison.
// Higher ranks indicate more severe messages.
var severityRanks = map[Severity]int{
	SeverityInfo:    1,
	SeverityWarning: 2,
	SeverityError:   3,
}

// IsValid returns true if the severity level is valid.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError:
		return true
	default:
		return false
	}
}

// Rank returns the numeric rank associated with the severity level.
// Returns 0 for invalid severity levels.
func (s Severity) Rank() int {
	if rank, ok := severityRanks[s]; ok {
		return rank
	}
	return 0
}

// AtLeast returns true if s is at or above min in the severity order.
func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() >= min.Rank()
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity parses a string into a Severity value.
// Returns an error if the string is not a valid severity level.
func ParseSeverity(s string) (Severity, error) {
	severity := Severity(s)
	if !severity.IsValid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return severity, nil
}

// CompareSeverity compares two severity levels.
// Returns:
//   - negative if s1 < s2
//   - zero if s1 == s2
//   - positive if s1 > s2
func CompareSeverity(s1, s2 Severity) int {
	r1 := s1.Rank()
	r2 := s2.Rank()
	if r1 < r2 {
		return -1
	}
	if r1 > r2 {
		return 1
	}
	return 0
}

// AllSeverities returns all valid severity levels in ascending order, from
// info to error.
func AllSeverities() []Severity {
	return []Severity{
		SeverityInfo,
		SeverityWarning,
		SeverityError,
	}
}
