package cyclex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShaderAssignmentHashDeterministic(t *testing.T) {

	build := func() *ShaderAssignment {
		return NewShaderAssignment(
			NewShaderNode("texture").SetHandle("tex").SetParameter("scale", float32(2)),
			NewShaderNode("matte").
				SetParameter("Kd", float32(0.8)).
				SetParameter("Cs", NewLink("tex", "Cout")),
		)
	}

	require.Equal(t, build().Hash(), build().Hash(), "identical networks must hash identically")

	// Parameter insertion order must not matter.
	one := NewShaderAssignment(NewShaderNode("matte").SetParameter("a", 1).SetParameter("b", 2))
	two := NewShaderAssignment(NewShaderNode("matte").SetParameter("b", 2).SetParameter("a", 1))
	require.Equal(t, one.Hash(), two.Hash())

}

func TestShaderAssignmentHashSensitivity(t *testing.T) {

	base := NewShaderAssignment(NewShaderNode("matte").SetParameter("Kd", float32(0.8)))

	changedValue := NewShaderAssignment(NewShaderNode("matte").SetParameter("Kd", float32(0.9)))
	require.NotEqual(t, base.Hash(), changedValue.Hash(), "a changed value is a different network")

	changedShader := NewShaderAssignment(NewShaderNode("glossy").SetParameter("Kd", float32(0.8)))
	require.NotEqual(t, base.Hash(), changedShader.Hash(), "a changed shader is a different network")

	changedHandle := NewShaderAssignment(NewShaderNode("matte").SetHandle("m").SetParameter("Kd", float32(0.8)))
	require.NotEqual(t, base.Hash(), changedHandle.Hash(), "a changed handle is a different network")

}

func TestParseLink(t *testing.T) {

	link, ok := ParseLink("link:tex.Cout")
	require.True(t, ok)
	require.Equal(t, Link{Handle: "tex", Output: "Cout"}, link)

	link, ok = ParseLink(NewLink("tex", "Cout"))
	require.True(t, ok)
	require.Equal(t, "link:tex.Cout", link.String())

	_, ok = ParseLink("just a string")
	require.False(t, ok)

	_, ok = ParseLink(float32(1))
	require.False(t, ok)

	_, ok = ParseLink("link:malformed")
	require.False(t, ok)

}

func TestEffectiveHandle(t *testing.T) {

	require.Equal(t, "surface", NewShaderNode("matte").EffectiveHandle())
	require.Equal(t, "tex", NewShaderNode("texture").SetHandle("tex").EffectiveHandle())

	// Handles may also ride on the internal __handle parameter.
	byParam := NewShaderNode("texture").SetParameter("__handle", "tex")
	require.Equal(t, "tex", byParam.EffectiveHandle())

	// ...which is internal wiring, not a shader input, so it never shows up in the
	// parameter list.
	require.Empty(t, byParam.sortedParameterNames())

}

func TestShaderAssignmentValidate(t *testing.T) {

	good := NewShaderAssignment(
		NewShaderNode("texture").SetHandle("tex"),
		NewShaderNode("matte").SetParameter("Cs", NewLink("tex", "Cout")),
	)
	require.NoError(t, good.Validate())

	bad := NewShaderAssignment(
		NewShaderNode("matte").SetParameter("Cs", NewLink("missing", "Cout")),
	)
	err := bad.Validate()
	require.Error(t, err)

	var linkErr *LinkError
	require.ErrorAs(t, err, &linkErr)
	require.Equal(t, "missing", linkErr.Link.Handle)
	require.Equal(t, "Cs", linkErr.Parameter)

}

func TestFormatParamValue(t *testing.T) {

	require.Equal(t, "0.8", formatParamValue(float32(0.8)))
	require.Equal(t, "3", formatParamValue(3))
	require.Equal(t, "true", formatParamValue(true))
	require.Equal(t, "1 0.5 0.25", formatParamValue(Vector3{1, 0.5, 0.25}))
	require.Equal(t, "1 2 3", formatParamValue([]float32{1, 2, 3}))
	require.Equal(t, "hello", formatParamValue("hello"))

}
