package policy

import (
	"fmt"

	"github.com/typeforge/sdk/diag"
)

// Mode decides how qualifying messages turn into an accept/reject outcome.
type Mode string

const (
	// ModeStrict rejects when any message at or above the threshold exists
	// anywhere in any check's tree, regardless of its severity.
	ModeStrict Mode = "strict"

	// ModeLax rejects only when a qualifying error-level message exists;
	// warnings and infos never block under lax.
	ModeLax Mode = "lax"
)

// IsValid returns true if the mode is strict or lax.
func (m Mode) IsValid() bool {
	return m == ModeStrict || m == ModeLax
}

// String returns the string representation of the mode.
func (m Mode) String() string { return string(m) }

// ParseMode parses a string into a Mode value.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid policy mode: %s", s)
	}
	return mode, nil
}

// Config parameterizes the policy decision.
type Config struct {
	// Threshold is the minimum severity a message needs to count toward
	// the decision. Messages below it stay in the returned trees for
	// display but never block. Defaults to error.
	Threshold diag.Severity `yaml:"threshold"`

	// Mode selects the strict or lax decision. Defaults to lax.
	Mode Mode `yaml:"mode"`
}

// Normalize applies defaults to unset fields and validates the rest.
func (c Config) Normalize() (Config, error) {
	if c.Threshold == "" {
		c.Threshold = diag.SeverityError
	}
	if c.Mode == "" {
		c.Mode = ModeLax
	}
	if !c.Threshold.IsValid() {
		return c, fmt.Errorf("invalid policy threshold: %s", c.Threshold)
	}
	if !c.Mode.IsValid() {
		return c, fmt.Errorf("invalid policy mode: %s", c.Mode)
	}
	return c, nil
}
