// Package params implements schema-driven validation of request parameter
// trees. A Validator walks an arbitrary nested value (maps, slices and
// scalars) against a shape reference, collects every violation it finds in
// a single depth-first pass, and raises exactly one aggregate error at the
// end. It is the pre-flight gate run before a request is handed to the
// transport layer.
package params

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"time"

	perrors "github.com/helio-labs/param-common/errors"
	"github.com/helio-labs/param-common/logger"
	"github.com/helio-labs/param-common/shape"
)

// rootContext labels the top of the parameter tree in violation paths.
const rootContext = "params"

// Options configures a Validator. The zero value disables required-member
// checking; use DefaultOptions for the standard configuration.
type Options struct {
	// ValidateRequired controls whether required structure members are
	// checked for presence. Disabling it allows partial parameter trees
	// to pass as long as every present member type-checks.
	ValidateRequired bool
}

// DefaultOptions returns the standard validator configuration:
// required-member checking enabled.
func DefaultOptions() Options {
	return Options{ValidateRequired: true}
}

// Validator validates parameter trees against a single top-level shape
// reference. It holds no per-call state, so one Validator may be used from
// multiple goroutines concurrently; typically, though, a Validator is
// constructed for one request and discarded.
type Validator struct {
	ref  *shape.Ref
	opts Options
}

// New constructs a Validator for the given shape reference.
// It panics with errors.ErrInvalidSchema if the reference is nil, since
// that indicates a broken schema definition rather than bad input.
func New(ref *shape.Ref, opts Options) *Validator {
	if ref == nil || ref.Shape == nil {
		panic(fmt.Errorf("%w: validator requires a non-nil shape reference",
			perrors.ErrInvalidSchema))
	}

	return &Validator{ref: ref, opts: opts}
}

// Validate is a convenience that constructs a Validator and runs it once.
func Validate(ref *shape.Ref, value any, opts Options) error {
	return New(ref, opts).Validate(value)
}

// Validate walks the value tree against the validator's shape reference.
// It returns nil when the value conforms, or a single
// *InvalidParameterError carrying every violation found during the pass.
// Violations never abort the walk early: a structural mismatch prunes only
// its own subtree, so one pass yields the maximum number of diagnostics.
func (v *Validator) Validate(value any) error {
	start := time.Now()
	errs := &perrors.Collection{}

	v.validateRef(v.ref, value, errs, rootContext)
	observeValidation(time.Since(start), errs.Len())

	if !errs.HasError() {
		return nil
	}

	logger.Get().Debug("parameter validation failed", "violations", errs.Len())

	return &InvalidParameterError{violations: errs.Errors()}
}

// validateRef dispatches on the shape's kind. The kind set is closed, so an
// unhandled kind is a schema fault and panics rather than being collected.
func (v *Validator) validateRef(ref *shape.Ref, value any, errs *perrors.Collection, context string) {
	if ref == nil || ref.Shape == nil {
		panic(fmt.Errorf("%w: nil shape reference at %s", perrors.ErrInvalidSchema, context))
	}

	switch ref.Shape.Kind {
	case shape.KindStructure:
		v.validateStructure(ref, value, errs, context)
	case shape.KindList:
		v.validateList(ref, value, errs, context)
	case shape.KindMap:
		v.validateMap(ref, value, errs, context)
	case shape.KindString, shape.KindInteger, shape.KindFloat,
		shape.KindTimestamp, shape.KindBoolean, shape.KindBlob:
		v.validateScalar(ref, value, errs, context)
	default:
		panic(fmt.Errorf("%w: unhandled shape kind %d at %s",
			perrors.ErrInvalidSchema, int(ref.Shape.Kind), context))
	}
}

func (v *Validator) validateStructure(ref *shape.Ref, value any, errs *perrors.Collection, context string) {
	members, ok := mappingView(ref, value)
	if !ok {
		errs.Add(typeMismatch(context, "a hash", value))

		return
	}

	if v.opts.ValidateRequired {
		// Absent and explicit nil are treated identically here.
		for _, name := range ref.Shape.Required {
			if isNilish(members[name]) {
				errs.Add(missingRequired(context, name))
			}
		}
	}

	// Iteration follows the value's keys, not the schema's declaration
	// order; sorting keeps reports deterministic across runs.
	for _, name := range slices.Sorted(maps.Keys(members)) {
		val := members[name]
		if isNilish(val) {
			// Nil members are skipped: presence was already handled above.
			continue
		}

		memberRef, declared := ref.Shape.Members[name]
		if !declared {
			errs.Add(unexpectedMember(context, name))

			continue
		}

		v.validateRef(memberRef, val, errs, memberContext(context, name))
	}
}

func (v *Validator) validateList(ref *shape.Ref, value any, errs *perrors.Collection, context string) {
	seq, ok := value.([]any)
	if !ok {
		errs.Add(typeMismatch(context, "an array", value))

		return
	}

	for i, item := range seq {
		v.validateRef(ref.Shape.Member, item, errs, indexContext(context, i))
	}
}

func (v *Validator) validateMap(ref *shape.Ref, value any, errs *perrors.Collection, context string) {
	entries, ok := mappingView(ref, value)
	if !ok {
		errs.Add(typeMismatch(context, "a hash", value))

		return
	}

	for _, key := range slices.Sorted(maps.Keys(entries)) {
		v.validateRef(ref.Shape.Key, key, errs, keyContext(context, key))
		v.validateRef(ref.Shape.Value, entries[key], errs, memberContext(context, key))
	}
}

func (v *Validator) validateScalar(ref *shape.Ref, value any, errs *perrors.Collection, context string) {
	var valid bool

	switch ref.Shape.Kind { //nolint:exhaustive // container kinds never reach here
	case shape.KindString:
		_, valid = value.(string)
	case shape.KindInteger:
		valid = isInteger(value)
	case shape.KindFloat:
		valid = isFloat(value)
	case shape.KindTimestamp:
		valid = isTimestamp(value)
	case shape.KindBoolean:
		_, valid = value.(bool)
	case shape.KindBlob:
		valid = isBlob(value)
	}

	if !valid {
		errs.Add(typeMismatch(context, scalarExpectation(ref.Shape.Kind), value))
	}
}

// scalarExpectation returns the expected-kind description (including its
// article) used in scalar type-mismatch messages.
func scalarExpectation(kind shape.Kind) string {
	switch kind { //nolint:exhaustive // only scalar kinds are described
	case shape.KindString:
		return "a string"
	case shape.KindInteger:
		return "an integer"
	case shape.KindFloat:
		return "a float"
	case shape.KindTimestamp:
		return "a timestamp"
	case shape.KindBoolean:
		return "a boolean"
	case shape.KindBlob:
		return "a string or seekable IO object"
	default:
		panic(fmt.Errorf("%w: no scalar description for kind %d",
			perrors.ErrInvalidSchema, int(kind)))
	}
}

// mappingView returns the value as a string-keyed mapping. Plain maps are
// accepted directly; anything else is accepted only through the ref's
// record adapter, if one is set.
func mappingView(ref *shape.Ref, value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, true
	}

	if ref.Record != nil {
		return ref.Record(value)
	}

	return nil, false
}

func memberContext(context, name string) string {
	return fmt.Sprintf("%s[%q]", context, name)
}

func indexContext(context string, index int) string {
	return fmt.Sprintf("%s[%d]", context, index)
}

func keyContext(context, key string) string {
	return fmt.Sprintf("%s %q key", context, key)
}

func isInteger(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

func isFloat(value any) bool {
	switch value.(type) {
	case float32, float64:
		return true
	default:
		return false
	}
}

func isTimestamp(value any) bool {
	switch t := value.(type) {
	case time.Time:
		return true
	case *time.Time:
		return t != nil
	default:
		return false
	}
}

// isBlob accepts the two blob representations: in-memory bytes (string or
// byte slice) and the BlobReader stream capability.
func isBlob(value any) bool {
	switch value.(type) {
	case string, []byte:
		return true
	case shape.BlobReader:
		return true
	default:
		return false
	}
}

// isNilish returns true if the value is a literal nil
// or if it points to something with a nil value.
func isNilish(value any) bool {
	if value == nil {
		return true
	}

	valOf := reflect.ValueOf(value)

	switch valOf.Kind() { //nolint:exhaustive
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Pointer,
		reflect.UnsafePointer, reflect.Interface, reflect.Slice:
		return valOf.IsNil()
	}

	return false
}
