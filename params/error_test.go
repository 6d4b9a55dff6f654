package params

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/helio-labs/param-common/errors"
)

func TestViolation(t *testing.T) {
	t.Parallel()

	v := typeMismatch("params", "a string", 5)

	assert.Equal(t,
		"expected params to be a string, got value 5 (class: int) instead.",
		v.Error())
	assert.ErrorIs(t, v, perrors.ErrTypeMismatch)
	assert.NotErrorIs(t, v, perrors.ErrMissingRequired)
}

func TestInvalidParameterError_Error(t *testing.T) {
	t.Parallel()

	t.Run("single violation renders raw message", func(t *testing.T) {
		t.Parallel()

		err := &InvalidParameterError{violations: []error{
			missingRequired("params", "id"),
		}}

		assert.Equal(t, `missing required parameter params["id"]`, err.Error())
	})

	t.Run("multiple violations render a bulleted summary", func(t *testing.T) {
		t.Parallel()

		err := &InvalidParameterError{violations: []error{
			missingRequired("params", "id"),
			unexpectedMember("params", "bogus"),
		}}

		assert.Equal(t,
			"parameter validator found 2 errors:\n"+
				`  - missing required parameter params["id"]`+"\n"+
				`  - unexpected value at params["bogus"]`,
			err.Error())
	})
}

func TestInvalidParameterError_Unwrap(t *testing.T) {
	t.Parallel()

	err := &InvalidParameterError{violations: []error{
		missingRequired("params", "id"),
		typeMismatch(`params["count"]`, "an integer", "5"),
	}}

	// The aggregate matches its own sentinel and every contained
	// taxonomy sentinel.
	require.ErrorIs(t, err, perrors.ErrInvalidParameter)
	require.ErrorIs(t, err, perrors.ErrMissingRequired)
	require.ErrorIs(t, err, perrors.ErrTypeMismatch)
	require.NotErrorIs(t, err, perrors.ErrUnexpectedMember)

	var viol *Violation
	require.ErrorAs(t, err, &viol)
}

func TestValueRepr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"5"`, valueRepr("5"))
	assert.Equal(t, "5", valueRepr(5))
	assert.Equal(t, "1.5", valueRepr(1.5))
	assert.Equal(t, "true", valueRepr(true))
	assert.Equal(t, "<nil>", valueRepr(nil))

	assert.Equal(t, "string", typeName("x"))
	assert.Equal(t, "int", typeName(1))
	assert.Equal(t, "<nil>", typeName(nil))
}

func TestMessages_CopySemantics(t *testing.T) {
	t.Parallel()

	err := &InvalidParameterError{violations: []error{
		errors.New("first"), //nolint:err113
	}}

	got := err.Violations()
	got[0] = nil

	require.Len(t, err.Violations(), 1)
	assert.NotNil(t, err.Violations()[0])
}
