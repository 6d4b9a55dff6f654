// Package shape defines the schema model consumed by the parameter
// validator: a graph of shape nodes describing the expected structure of a
// request parameter tree. Shapes form a closed set of kinds (structure,
// list, map, and the scalar leaves), and references between them may be
// cyclic; consumers must follow the value tree rather than walking the
// schema graph unboundedly.
package shape

import "io"

// Kind identifies the structural type a shape describes. The set of kinds
// is closed: the validator dispatches exhaustively over these values, and
// anything else indicates a corrupted schema.
type Kind int

const (
	KindStructure Kind = iota
	KindList
	KindMap
	KindString
	KindInteger
	KindFloat
	KindTimestamp
	KindBoolean
	KindBlob
)

// String returns the lowercase name of the kind, or "unknown" for values
// outside the closed set.
func (k Kind) String() string {
	switch k {
	case KindStructure:
		return "structure"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindTimestamp:
		return "timestamp"
	case KindBoolean:
		return "boolean"
	case KindBlob:
		return "blob"
	default:
		return "unknown"
	}
}

// Scalar returns true if the kind is one of the leaf kinds (everything
// except structure, list and map).
func (k Kind) Scalar() bool {
	switch k {
	case KindStructure, KindList, KindMap:
		return false
	default:
		return true
	}
}

// Shape is a single schema node. Only the fields relevant to the node's
// Kind are populated: structures carry Members/MemberNames/Required, lists
// carry Member, maps carry Key and Value, scalars carry nothing beyond the
// kind itself.
//
// Shapes are immutable once the schema is built and are shared across
// concurrent validation passes.
type Shape struct {
	// Name is the schema-level name of the shape, if it has one. Shapes
	// built inline via the builder helpers may be anonymous.
	Name string

	// Kind selects which of the remaining fields are meaningful.
	Kind Kind

	// MemberNames preserves the declaration order of structure members.
	MemberNames []string

	// Members maps structure member names to their shape references.
	Members map[string]*Ref

	// Required lists the structure members that must be present and
	// non-nil, in declaration order.
	Required []string

	// Member describes the element shape of a list.
	Member *Ref

	// Key and Value describe the entry shapes of a map.
	Key   *Ref
	Value *Ref
}

// RequiredMember returns true if the named member is in the shape's
// required set.
func (s *Shape) RequiredMember(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}

	return false
}

// RecordAdapter extracts a key/value view from a foreign record type.
// It is the explicit escape hatch that lets a structure-shaped (or
// map-shaped) reference accept values that are not plain maps: the adapter
// reports whether it recognizes the value, and if so returns its fields as
// a string-keyed mapping.
//
// Adapters must not mutate the value they are given.
type RecordAdapter func(value any) (map[string]any, bool)

// Ref is a reference to a Shape plus reference-level metadata. Many refs
// may point at the same shape, and a ref may (transitively) point back at
// an ancestor shape.
type Ref struct {
	Shape *Shape

	// Record, when non-nil, allows mapping-like checks on this ref to
	// accept foreign record types via the adapter. A nil Record means only
	// plain map values are accepted.
	Record RecordAdapter
}

// BlobReader is the stream capability accepted for blob-shaped values:
// readable, seekable, and with a known size. The contract is deliberately
// exactly these three capabilities, no more and no less.
type BlobReader interface {
	io.Reader
	io.Seeker
	Size() int64
}
