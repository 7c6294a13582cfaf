package model

import "fmt"

// ExtraPolicy controls how keys that are not declared fields are handled.
type ExtraPolicy int

const (
	ExtraIgnore ExtraPolicy = iota // Drop unknown keys.
	ExtraForbid                    // Reject unknown keys with an error.
	ExtraAllow                     // Keep unknown keys on the instance.
)

func (p ExtraPolicy) String() string {
	switch p {
	case ExtraForbid:
		return "forbid"
	case ExtraAllow:
		return "allow"
	default:
		return "ignore"
	}
}

// ParseExtraPolicy parses "ignore", "forbid" or "allow". The empty string
// means ExtraIgnore.
func ParseExtraPolicy(s string) (ExtraPolicy, error) {
	switch s {
	case "", "ignore":
		return ExtraIgnore, nil
	case "forbid":
		return ExtraForbid, nil
	case "allow":
		return ExtraAllow, nil
	}
	return ExtraIgnore, fmt.Errorf("model: unknown extra policy %q", s)
}

// Config is the model-level configuration in its normalized form.
type Config struct {
	Title  string
	Extra  ExtraPolicy
	Strict bool // Disable lax coercion (strings to numbers and similar).
}
