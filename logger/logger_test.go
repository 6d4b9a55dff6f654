package logger

import (
	"bytes"
	"log"
	"log/slog"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helio-labs/param-common/tests"
)

func TestLogger(t *testing.T) { //nolint:paralleltest
	var buf bytes.Buffer

	ConfigureLoggingWithOptions(Options{
		Subsystem: "test",
		JSON:      true,
		Output:    &buf,
	})

	Get().Info("should have the default subsystem")
	assert.Contains(t, buf.String(), `"subsystem":"test"`)

	buf.Reset()

	ctx := WithSubsystem(t.Context(), "overridden")
	Get(ctx).Info("should have the overridden subsystem")
	assert.Contains(t, buf.String(), `"subsystem":"overridden"`)

	buf.Reset()

	ctx = With(t.Context(), "shape", "PutItemInput")
	Get(ctx).Info("should carry context values")
	assert.Contains(t, buf.String(), `"shape":"PutItemInput"`)

	buf.Reset()

	ctx = WithMuted(t.Context(), true)
	Get(ctx).Info("should be suppressed")
	assert.Empty(t, buf.String())
}

func TestLoggerWithTestContext(t *testing.T) { //nolint:paralleltest
	var buf bytes.Buffer

	ConfigureLoggingWithOptions(Options{
		Subsystem: "test",
		JSON:      true,
		Output:    &buf,
	})

	ctx := tests.GetUniqueContext(t)

	id, ok := tests.GetTestId(ctx)
	require.True(t, ok)

	Get(With(ctx, "test_id", id)).Info("correlated")
	assert.Contains(t, buf.String(), id)
}

func TestGetWithoutContext(t *testing.T) {
	t.Parallel()

	// Get must tolerate both no arguments and explicit nils.
	require.NotNil(t, Get())
	require.NotNil(t, Get(nil)) //nolint:staticcheck
}

func TestLegacy(t *testing.T) { //nolint:paralleltest
	var buf bytes.Buffer

	ConfigureLoggingWithOptions(Options{
		Subsystem: "test",
		JSON:      true,
		MinLevel:  slog.LevelDebug,
		Output:    &buf,
	})

	// The legacy log package should be redirected into slog.
	log.Println("legacy message")
	assert.Contains(t, buf.String(), "legacy message")
}

func TestSlogtCompatibility(t *testing.T) { //nolint:paralleltest
	// Loggers produced by slogt can stand in for the default logger in
	// tests that want per-test output.
	slog.SetDefault(slogt.New(t))

	Get().Info("routed through the test logger")
}
