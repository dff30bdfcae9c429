package enums

import "fmt"

// MergeMode controls how incoming quantities combine with existing cart lines.
type MergeMode string

const (
	MergeModeAdd     MergeMode = "add"
	MergeModeReplace MergeMode = "replace"
	MergeModeMax     MergeMode = "max"
)

var validMergeModes = []MergeMode{
	MergeModeAdd,
	MergeModeReplace,
	MergeModeMax,
}

// String implements fmt.Stringer.
func (m MergeMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MergeMode.
func (m MergeMode) IsValid() bool {
	for _, candidate := range validMergeModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMergeMode converts raw input into a MergeMode.
func ParseMergeMode(value string) (MergeMode, error) {
	for _, candidate := range validMergeModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid merge mode %q", value)
}
