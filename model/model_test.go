package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helio-labs/param-common/params"
	"github.com/helio-labs/param-common/shape"
)

const itemModel = `
shapes:
  PutItemInput:
    type: structure
    required: [id]
    members:
      id: {shape: ItemId}
      count: {shape: Count}
      tags: {shape: TagMap}
  ItemId: {type: string}
  Count: {type: integer}
  TagMap:
    type: map
    key: {shape: ItemId}
    value: {shape: ItemId}
`

func TestLoad(t *testing.T) {
	t.Parallel()

	refs, err := Load([]byte(itemModel))
	require.NoError(t, err)
	require.Len(t, refs, 4)

	input := refs["PutItemInput"]
	require.NotNil(t, input)
	assert.Equal(t, shape.KindStructure, input.Shape.Kind)
	assert.Equal(t, "PutItemInput", input.Shape.Name)

	// Member declaration order survives the round trip.
	assert.Equal(t, []string{"id", "count", "tags"}, input.Shape.MemberNames)
	assert.Equal(t, []string{"id"}, input.Shape.Required)

	// Member refs link to the shared shape nodes.
	assert.Same(t, refs["ItemId"].Shape, input.Shape.Members["id"].Shape)

	tags := refs["TagMap"]
	require.NotNil(t, tags.Shape.Key)
	require.NotNil(t, tags.Shape.Value)
	assert.Equal(t, shape.KindMap, tags.Shape.Kind)
}

func TestLoad_JSONDocument(t *testing.T) {
	t.Parallel()

	// YAML is a JSON superset, so JSON model files load unchanged.
	refs, err := Load([]byte(`{
		"shapes": {
			"Name": {"type": "string"},
			"Names": {"type": "list", "member": {"shape": "Name"}}
		}
	}`))
	require.NoError(t, err)

	names := refs["Names"]
	require.NotNil(t, names)
	assert.Equal(t, shape.KindList, names.Shape.Kind)
	assert.Same(t, refs["Name"].Shape, names.Shape.Member.Shape)
}

func TestLoad_CyclicReferences(t *testing.T) {
	t.Parallel()

	refs, err := Load([]byte(`
shapes:
  TreeNode:
    type: structure
    required: [name]
    members:
      name: {shape: Name}
      children: {shape: TreeNodeList}
  TreeNodeList:
    type: list
    member: {shape: TreeNode}
  Name: {type: string}
`))
	require.NoError(t, err)

	node := refs["TreeNode"]
	list := node.Shape.Members["children"]

	// The cycle closes: the list's element shape is the node itself.
	assert.Same(t, node.Shape, list.Shape.Member.Shape)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		_, err := Load([]byte("shapes: {}"))
		require.ErrorIs(t, err, ErrNoShapes)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := Load([]byte("shapes: {Bad: {type: tuple}}"))
		require.ErrorIs(t, err, ErrUnknownShapeType)
		assert.Contains(t, err.Error(), `"tuple"`)
	})

	t.Run("dangling reference", func(t *testing.T) {
		t.Parallel()

		_, err := Load([]byte(`
shapes:
  Names:
    type: list
    member: {shape: Missing}
`))
		require.ErrorIs(t, err, ErrUnknownShape)
		assert.Contains(t, err.Error(), `"Missing"`)
	})

	t.Run("list without member", func(t *testing.T) {
		t.Parallel()

		_, err := Load([]byte("shapes: {Names: {type: list}}"))
		require.ErrorIs(t, err, ErrMissingMember)
	})

	t.Run("map without value", func(t *testing.T) {
		t.Parallel()

		_, err := Load([]byte(`
shapes:
  Tags:
    type: map
    key: {shape: Name}
  Name: {type: string}
`))
		require.ErrorIs(t, err, ErrMissingMember)
	})

	t.Run("required name not declared", func(t *testing.T) {
		t.Parallel()

		_, err := Load([]byte(`
shapes:
  Input:
    type: structure
    required: [missing]
    members:
      id: {shape: Name}
  Name: {type: string}
`))
		require.ErrorIs(t, err, ErrUnknownRequired)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := Load([]byte("shapes: ["))
		require.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model.yml")
	require.NoError(t, os.WriteFile(path, []byte(itemModel), 0o600))

	refs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Contains(t, refs, "PutItemInput")

	_, err = LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}

func TestLoadedModelValidates(t *testing.T) {
	t.Parallel()

	refs, err := Load([]byte(itemModel))
	require.NoError(t, err)

	input := refs["PutItemInput"]

	assert.NoError(t, params.Validate(input, map[string]any{
		"id":    "item-1",
		"count": 2,
		"tags":  map[string]any{"env": "prod"},
	}, params.DefaultOptions()))

	err = params.Validate(input, map[string]any{
		"count": "2",
	}, params.DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required parameter params["id"]`)
	assert.Contains(t, err.Error(),
		`expected params["count"] to be an integer, got value "2" (class: string) instead.`)
}
