// Package storage persists client-side state in a local SQLite database.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrKeyTooLong   = errors.New("key exceeds maximum length")
	ErrValueTooLong = errors.New("value exceeds maximum length")
)

const (
	maxKeyLength   = 256
	maxValueLength = 64 * 1024
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateKey(key string) error {
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("%w: %d > %d", ErrKeyTooLong, len(key), maxKeyLength)
	}
	return nil
}

func validateValue(value string) error {
	if len(value) > maxValueLength {
		return fmt.Errorf("%w: %d > %d", ErrValueTooLong, len(value), maxValueLength)
	}
	return nil
}
