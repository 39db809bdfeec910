package cyclex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSceneResolveAndChildOrder(t *testing.T) {

	scene := NewScene("test")

	group := NewNode("group")
	b := NewNode("b")
	a := NewNode("a")
	group.AddChildren(b, a) // Deliberately not alphabetical; addition order wins
	scene.Root().AddChildren(group)

	require.Equal(t, []string{"group"}, scene.ChildNames(Path{}))
	require.Equal(t, []string{"b", "a"}, scene.ChildNames(Path{"group"}))

	require.Same(t, a, scene.Resolve(Path{"group", "a"}))
	require.Nil(t, scene.Resolve(Path{"group", "missing"}))

}

func TestSceneFullTransform(t *testing.T) {

	scene := NewScene("test")

	parent := NewNode("parent")
	parent.SetTransform(NewMatrix4Translate(10, 0, 0))
	child := NewNode("child")
	child.SetTransform(NewMatrix4Translate(0, 5, 0))
	parent.AddChildren(child)
	scene.Root().AddChildren(parent)

	full := scene.FullTransform(Path{"parent", "child"})
	require.True(t, full.Equals(NewMatrix4Translate(10, 5, 0)), "full transform should compose up the hierarchy")

	// Local transform stays local.
	require.True(t, scene.Transform(Path{"parent", "child"}).Equals(NewMatrix4Translate(0, 5, 0)))

	// A missing location answers identity rather than failing.
	require.True(t, scene.FullTransform(Path{"nope"}).IsIdentity())

}

func TestNodeScenePath(t *testing.T) {

	scene := NewScene("test")
	group := NewNode("group")
	leaf := NewNode("leaf")
	group.AddChildren(leaf)
	scene.Root().AddChildren(group)

	require.Equal(t, Path{"group", "leaf"}, leaf.ScenePath())
	require.Equal(t, "/group/leaf", leaf.ScenePath().String())

}

func TestPathFromString(t *testing.T) {

	require.Equal(t, Path{"a", "b"}, PathFromString("/a/b"))
	require.Equal(t, Path{"a", "b"}, PathFromString("a/b/"))
	require.True(t, PathFromString("").IsRoot())
	require.True(t, PathFromString("/").IsRoot())

}

func TestPathAppendDoesNotAlias(t *testing.T) {

	base := make(Path, 1, 4) // Spare capacity to catch append aliasing
	base[0] = "root"

	first := base.Append("a")
	second := base.Append("b")

	require.Equal(t, Path{"root", "a"}, first)
	require.Equal(t, Path{"root", "b"}, second)

}

func TestPropertiesOverlaid(t *testing.T) {

	parent := NewProperties()
	parent.Get("shader").Set("parentShader")
	parent.Get("visibility").Set(true)

	child := NewProperties()
	child.Get("shader").Set("childShader")

	merged := parent.Overlaid(child)

	require.Equal(t, "childShader", merged.Get("shader").AsString())
	require.True(t, merged.Get("visibility").AsBool())

	// Neither source is touched.
	require.Equal(t, "parentShader", parent.Get("shader").AsString())
	require.False(t, child.Has("visibility"))

	// And the merge is a copy, not a view.
	merged.Get("shader").Set("changed")
	require.Equal(t, "parentShader", parent.Get("shader").AsString())

}
