package tools

import (
	"fmt"
	"strings"
)

// Args carries the named arguments of one tool invocation, as decoded from
// JSON by the transport layer.
type Args map[string]any

func (a Args) requiredString(key string) (string, error) {
	raw, ok := a[key]
	if !ok {
		return "", fmt.Errorf("%w: %s is required", ErrValidation, key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrValidation, key)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %s is required", ErrValidation, key)
	}
	return value, nil
}

// optionalString distinguishes absent (nil, false) from present; JSON null
// counts as absent.
func (a Args) optionalString(key string) (*string, bool, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return nil, ok, nil
	}
	value, isString := raw.(string)
	if !isString {
		return nil, true, fmt.Errorf("%w: %s must be a string", ErrValidation, key)
	}
	return &value, true, nil
}

// requiredInt accepts JSON numbers (float64) and Go ints; fractional values
// are rejected.
func (a Args) requiredInt(key string) (int, error) {
	raw, ok := a[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s is required", ErrValidation, key)
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%w: %s must be an integer", ErrValidation, key)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer", ErrValidation, key)
	}
}

func (a Args) stringSlice(key string) ([]string, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, isString := item.(string)
			if !isString {
				return nil, fmt.Errorf("%w: %s must be a list of strings", ErrValidation, key)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a list of strings", ErrValidation, key)
	}
}

// updatesMap decodes the edit_task updates argument: present string values
// become pointers, JSON nulls stay nil so the engine leaves those fields
// untouched.
func (a Args) updatesMap(key string) (map[string]*string, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return nil, nil
	}
	entries, isMap := raw.(map[string]any)
	if !isMap {
		return nil, fmt.Errorf("%w: %s must be an object", ErrValidation, key)
	}
	out := make(map[string]*string, len(entries))
	for field, value := range entries {
		if value == nil {
			out[field] = nil
			continue
		}
		s, isString := value.(string)
		if !isString {
			return nil, fmt.Errorf("%w: %s.%s must be a string", ErrValidation, key, field)
		}
		out[field] = &s
	}
	return out, nil
}
