package shape

// Member pairs a structure member name with its shape reference. It exists
// so that NewStructure can preserve declaration order, which Go maps do not.
type Member struct {
	Name string
	Ref  *Ref
}

// NewStructure builds a structure-shaped ref with the given required member
// names and ordered members.
func NewStructure(required []string, members ...Member) *Ref {
	shp := &Shape{
		Kind:     KindStructure,
		Members:  make(map[string]*Ref, len(members)),
		Required: required,
	}

	for _, m := range members {
		shp.MemberNames = append(shp.MemberNames, m.Name)
		shp.Members[m.Name] = m.Ref
	}

	return &Ref{Shape: shp}
}

// NewList builds a list-shaped ref whose elements are described by member.
func NewList(member *Ref) *Ref {
	return &Ref{Shape: &Shape{Kind: KindList, Member: member}}
}

// NewMap builds a map-shaped ref with the given key and value shapes.
func NewMap(key, value *Ref) *Ref {
	return &Ref{Shape: &Shape{Kind: KindMap, Key: key, Value: value}}
}

func newScalar(kind Kind) *Ref {
	return &Ref{Shape: &Shape{Kind: kind}}
}

// NewString builds a string-shaped ref.
func NewString() *Ref { return newScalar(KindString) }

// NewInteger builds an integer-shaped ref.
func NewInteger() *Ref { return newScalar(KindInteger) }

// NewFloat builds a float-shaped ref.
func NewFloat() *Ref { return newScalar(KindFloat) }

// NewTimestamp builds a timestamp-shaped ref.
func NewTimestamp() *Ref { return newScalar(KindTimestamp) }

// NewBoolean builds a boolean-shaped ref.
func NewBoolean() *Ref { return newScalar(KindBoolean) }

// NewBlob builds a blob-shaped ref.
func NewBlob() *Ref { return newScalar(KindBlob) }

// WithRecordAdapter returns a copy of the ref that accepts foreign record
// types via the given adapter. The underlying shape is shared, not copied.
func (r *Ref) WithRecordAdapter(adapter RecordAdapter) *Ref {
	return &Ref{Shape: r.Shape, Record: adapter}
}
