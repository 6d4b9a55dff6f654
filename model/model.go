// Package model loads declarative service shape definitions (YAML or JSON;
// YAML is a superset, so one decoder serves both) into the shape graph the
// validator consumes. Definitions reference each other by name, and may do
// so cyclically, so loading resolves in two phases: every shape node is
// allocated first, then references are linked.
//
// A definition document looks like:
//
//	shapes:
//	  PutItemInput:
//	    type: structure
//	    required: [id]
//	    members:
//	      id: {shape: ItemId}
//	      tags: {shape: TagMap}
//	  ItemId: {type: string}
//	  TagMap:
//	    type: map
//	    key: {shape: ItemId}
//	    value: {shape: ItemId}
package model

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/helio-labs/param-common/logger"
	"github.com/helio-labs/param-common/shape"
)

// Sentinel errors for definition documents that cannot be loaded.
var (
	ErrNoShapes         = errors.New("definition document declares no shapes")
	ErrUnknownShapeType = errors.New("unknown shape type")
	ErrUnknownShape     = errors.New("reference to undeclared shape")
	ErrMissingMember    = errors.New("missing member declaration")
	ErrUnknownRequired  = errors.New("required name is not a declared member")
	ErrNotMapping       = errors.New("expected a mapping node")
)

// document is the root of a shape-definition file.
type document struct {
	Shapes map[string]shapeDef `yaml:"shapes"`
}

// refDef is a by-name reference to another shape in the same document.
type refDef struct {
	Shape string `yaml:"shape"`
}

// shapeDef is one named shape declaration. Only the fields matching the
// declared type are consulted.
type shapeDef struct {
	Type     string     `yaml:"type"`
	Required []string   `yaml:"required"`
	Members  memberList `yaml:"members"`
	Member   *refDef    `yaml:"member"`
	Key      *refDef    `yaml:"key"`
	Value    *refDef    `yaml:"value"`
}

// memberList decodes a structure's members while preserving their
// declaration order, which a plain map would lose.
type memberList struct {
	names []string
	refs  map[string]refDef
}

func (m *memberList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: members at line %d", ErrNotMapping, node.Line)
	}

	m.refs = make(map[string]refDef, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		var ref refDef
		if err := valNode.Decode(&ref); err != nil {
			return err
		}

		m.names = append(m.names, keyNode.Value)
		m.refs[keyNode.Value] = ref
	}

	return nil
}

// Load parses a shape-definition document and returns a ref for every
// declared shape, keyed by name. Shapes may reference each other in any
// order, including cyclically.
func Load(data []byte) (map[string]*shape.Ref, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing shape definitions: %w", err)
	}

	if len(doc.Shapes) == 0 {
		return nil, ErrNoShapes
	}

	// Phase 1: allocate every shape node so phase 2 can link references
	// regardless of declaration order.
	shapes := make(map[string]*shape.Shape, len(doc.Shapes))

	for name, def := range doc.Shapes {
		kind, err := kindFromType(def.Type)
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", name, err)
		}

		shapes[name] = &shape.Shape{Name: name, Kind: kind}
	}

	// Phase 2: link references between the allocated nodes.
	for name, def := range doc.Shapes {
		if err := link(shapes, name, def); err != nil {
			return nil, err
		}
	}

	refs := make(map[string]*shape.Ref, len(shapes))
	for name, shp := range shapes {
		refs[name] = &shape.Ref{Shape: shp}
	}

	logger.Get().Debug("loaded shape definitions", "shapes", len(refs))

	return refs, nil
}

// LoadFile reads a shape-definition file and loads it via Load.
func LoadFile(path string) (map[string]*shape.Ref, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading shape definitions: %w", err)
	}

	return Load(data)
}

func link(shapes map[string]*shape.Shape, name string, def shapeDef) error {
	shp := shapes[name]

	switch shp.Kind {
	case shape.KindStructure:
		return linkStructure(shapes, name, def, shp)
	case shape.KindList:
		if def.Member == nil {
			return fmt.Errorf("%w: list shape %q has no member", ErrMissingMember, name)
		}

		member, err := resolve(shapes, name, def.Member.Shape)
		if err != nil {
			return err
		}

		shp.Member = member

		return nil
	case shape.KindMap:
		if def.Key == nil || def.Value == nil {
			return fmt.Errorf("%w: map shape %q needs both key and value", ErrMissingMember, name)
		}

		key, err := resolve(shapes, name, def.Key.Shape)
		if err != nil {
			return err
		}

		value, err := resolve(shapes, name, def.Value.Shape)
		if err != nil {
			return err
		}

		shp.Key, shp.Value = key, value

		return nil
	default:
		// Scalars carry nothing to link.
		return nil
	}
}

func linkStructure(shapes map[string]*shape.Shape, name string, def shapeDef, shp *shape.Shape) error {
	shp.Members = make(map[string]*shape.Ref, len(def.Members.names))

	for _, memberName := range def.Members.names {
		ref, err := resolve(shapes, name, def.Members.refs[memberName].Shape)
		if err != nil {
			return err
		}

		shp.MemberNames = append(shp.MemberNames, memberName)
		shp.Members[memberName] = ref
	}

	for _, required := range def.Required {
		if _, ok := shp.Members[required]; !ok {
			return fmt.Errorf("%w: %q in structure %q", ErrUnknownRequired, required, name)
		}
	}

	shp.Required = def.Required

	return nil
}

func resolve(shapes map[string]*shape.Shape, from, target string) (*shape.Ref, error) {
	shp, ok := shapes[target]
	if !ok {
		return nil, fmt.Errorf("%w: %q referenced from %q", ErrUnknownShape, target, from)
	}

	return &shape.Ref{Shape: shp}, nil
}

func kindFromType(typeName string) (shape.Kind, error) {
	switch typeName {
	case "structure":
		return shape.KindStructure, nil
	case "list":
		return shape.KindList, nil
	case "map":
		return shape.KindMap, nil
	case "string":
		return shape.KindString, nil
	case "integer":
		return shape.KindInteger, nil
	case "float":
		return shape.KindFloat, nil
	case "timestamp":
		return shape.KindTimestamp, nil
	case "boolean":
		return shape.KindBoolean, nil
	case "blob":
		return shape.KindBlob, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownShapeType, typeName)
	}
}
