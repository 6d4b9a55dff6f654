// Package errors provides the error taxonomy shared across the library and
// a small accumulator for collecting every violation found during a single
// validation pass.
package errors

import "errors"

var (
	// ErrInvalidParameter is the sentinel wrapped by the aggregate failure
	// a validation pass raises. Callers can use errors.Is against it to
	// distinguish "fix the request and retry" failures.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidSchema indicates the schema itself is corrupt (for example
	// a shape kind outside the closed set). It is never collected as a
	// validation result; it signals a programming error in the schema
	// definition.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrTypeMismatch marks violations where a value's runtime type does
	// not match the shape kind's expected representation.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrMissingRequired marks violations where a required structure
	// member is absent or nil.
	ErrMissingRequired = errors.New("missing required parameter")

	// ErrUnexpectedMember marks violations where a structure carries a key
	// unknown to the schema.
	ErrUnexpectedMember = errors.New("unexpected member")
)

// Collection is a thread-unsafe utility for accumulating multiple errors.
// It preserves insertion order, which the validator relies on to report
// violations in traversal order. Use one Collection per validation pass;
// it is never shared across passes.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Clear removes all errors from the collection, resetting it to an empty state.
func (c *Collection) Clear() {
	c.errors = nil
}

// HasError returns true if the collection contains at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// Len returns the number of errors in the collection.
func (c *Collection) Len() int {
	return len(c.errors)
}

// Errors returns the collected errors in insertion order. The returned
// slice is a copy; mutating it does not affect the collection.
func (c *Collection) Errors() []error {
	out := make([]error, len(c.errors))
	copy(out, c.errors)

	return out
}

// Messages returns the Error() strings of the collected errors in
// insertion order.
func (c *Collection) Messages() []string {
	out := make([]string, len(c.errors))
	for i, err := range c.errors {
		out[i] = err.Error()
	}

	return out
}

// GetError returns the collected errors as a single error.
// Returns nil if the collection is empty, the single error if there's only
// one, or a joined error (using errors.Join) if there are multiple errors.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
