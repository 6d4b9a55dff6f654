// Package tests provides utilities for managing test context with unique
// identifiers and test metadata. Tests use it to attach a per-test ID and
// the test name to a context, so log output produced during a test can be
// correlated back to the test that produced it.
package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

// contextKey is a private type used for storing test metadata in
// context.Context. Using a custom type instead of string prevents
// collisions with other packages that might use the same key names.
type contextKey string

const (
	// testIdKey is the context key for storing the unique test
	// identifier, a UUID prefixed with "test-".
	testIdKey contextKey = "testId"

	// testNameKey is the context key for storing the test name, as
	// reported by testing.T.Name().
	testNameKey contextKey = "testName"
)

// GetUniqueContext creates a new context derived from t.Context() carrying
// a unique test identifier and the test name. It is useful for creating
// uniquely-named test resources and for correlating log output with the
// test that produced it.
func GetUniqueContext(t *testing.T) context.Context {
	t.Helper()

	ctx := context.WithValue(t.Context(), testIdKey, "test-"+uuid.New().String())

	return context.WithValue(ctx, testNameKey, t.Name())
}

// GetTestId retrieves the unique test identifier from the context.
func GetTestId(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(testIdKey).(string)

	return id, ok
}

// GetTestName retrieves the test name from the context.
func GetTestName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(testNameKey).(string)

	return name, ok
}
