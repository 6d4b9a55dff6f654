package params

import (
	"fmt"
	"strconv"
	"strings"

	perrors "github.com/helio-labs/param-common/errors"
)

// Violation is a single path-qualified validation failure. Its Error()
// string is exactly the human-readable message; the taxonomy sentinel it
// belongs to (errors.ErrTypeMismatch, errors.ErrMissingRequired or
// errors.ErrUnexpectedMember) is reachable through Unwrap, so callers can
// classify violations with errors.Is without parsing messages.
type Violation struct {
	Cause   error
	Message string
}

func (v *Violation) Error() string {
	return v.Message
}

func (v *Violation) Unwrap() error {
	return v.Cause
}

// InvalidParameterError is the aggregate failure raised at the end of one
// validation pass. It carries every violation found during the pass, in
// depth-first pre-order over the value tree.
//
// errors.Is matches it against errors.ErrInvalidParameter, as well as
// against the taxonomy sentinel of any violation it contains.
type InvalidParameterError struct {
	violations []error
}

// Violations returns the collected violations in traversal order.
func (e *InvalidParameterError) Violations() []error {
	out := make([]error, len(e.violations))
	copy(out, e.violations)

	return out
}

// Messages returns the violation messages in traversal order.
func (e *InvalidParameterError) Messages() []string {
	out := make([]string, len(e.violations))
	for i, v := range e.violations {
		out[i] = v.Error()
	}

	return out
}

// Error renders the single raw message when exactly one violation was
// found, or a bulleted multi-error summary otherwise.
func (e *InvalidParameterError) Error() string {
	msgs := e.Messages()
	if len(msgs) == 1 {
		return msgs[0]
	}

	return fmt.Sprintf("parameter validator found %d errors:\n  - %s",
		len(msgs), strings.Join(msgs, "\n  - "))
}

func (e *InvalidParameterError) Unwrap() []error {
	out := make([]error, 0, len(e.violations)+1)
	out = append(out, perrors.ErrInvalidParameter)
	out = append(out, e.violations...)

	return out
}

// typeMismatch builds the shared "expected ... to be ..." violation. The
// expected description carries its own article ("a hash", "an array").
func typeMismatch(context, expected string, value any) error {
	return &Violation{
		Cause: perrors.ErrTypeMismatch,
		Message: fmt.Sprintf("expected %s to be %s, got value %s (class: %s) instead.",
			context, expected, valueRepr(value), typeName(value)),
	}
}

func missingRequired(context, name string) error {
	return &Violation{
		Cause:   perrors.ErrMissingRequired,
		Message: fmt.Sprintf("missing required parameter %s[%q]", context, name),
	}
}

func unexpectedMember(context, name string) error {
	return &Violation{
		Cause:   perrors.ErrUnexpectedMember,
		Message: fmt.Sprintf("unexpected value at %s[%q]", context, name),
	}
}

// valueRepr renders a value for inclusion in a violation message. Strings
// are quoted so that "5" and 5 remain distinguishable; everything else
// uses the default formatting.
func valueRepr(value any) string {
	if s, ok := value.(string); ok {
		return strconv.Quote(s)
	}

	return fmt.Sprintf("%v", value)
}

func typeName(value any) string {
	return fmt.Sprintf("%T", value)
}
