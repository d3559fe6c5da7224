package axis

import "fmt"

// ConfigurationError reports a field combination that does not describe a
// valid basis or scale. Normalization never falls back to identity.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "axis: invalid configuration"
	}
	if e.Value == "" {
		return fmt.Sprintf("axis: invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("axis: invalid %s=%s: %s", e.Field, e.Value, e.Reason)
}

func configErr(field, value, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Reason: reason}
}
