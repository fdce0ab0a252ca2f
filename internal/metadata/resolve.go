package metadata

import (
	"errors"
	"fmt"
	"strings"
)

const (
	FieldID      = "id"
	FieldVersion = "version"
)

var (
	ErrFieldMissing      = errors.New("missing key")
	ErrFieldTypeMismatch = errors.New("expected string")
	ErrInvalidVersion    = errors.New("invalid version")
)

// FieldError reports a required mod.json field that is absent or not a string.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrFieldMissing) {
		return fmt.Sprintf("[mod.json]: %v '%s'", e.Err, e.Field)
	}
	return fmt.Sprintf("[mod.json].%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Resolve returns the package id and major version recorded in doc.
func Resolve(doc map[string]any) (id, major string, err error) {
	id, err = stringField(doc, FieldID)
	if err != nil {
		return "", "", err
	}
	version, err := stringField(doc, FieldVersion)
	if err != nil {
		return "", "", err
	}
	major, err = MajorVersion(version)
	if err != nil {
		return "", "", err
	}
	return id, major, nil
}

// MajorVersion returns the first dot-delimited segment of version with every
// literal 'v' removed, so "v1.2.3" and "vv1.0" both yield "1".
func MajorVersion(version string) (string, error) {
	first, _, _ := strings.Cut(version, ".")
	major := strings.ReplaceAll(first, "v", "")
	if major == "" {
		return "", fmt.Errorf("%w: %q has no major component", ErrInvalidVersion, version)
	}
	return major, nil
}

func stringField(doc map[string]any, name string) (string, error) {
	raw, ok := doc[name]
	if !ok {
		return "", &FieldError{Field: name, Err: ErrFieldMissing}
	}
	s, ok := raw.(string)
	if !ok {
		return "", &FieldError{Field: name, Err: ErrFieldTypeMismatch}
	}
	return s, nil
}
