package cyclex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleShaderInfo = `shader "matte.oso"
surface "Ci"
float Kd 0.8
color Cs 1 1 1
output color Cout
vector N
this line means nothing
closure holdout
`

func TestParseShaderInfo(t *testing.T) {

	params := parseShaderInfo(sampleShaderInfo)

	require.Equal(t, []ShaderParameter{
		{Name: "Ci", Type: "surface", Output: true},
		{Name: "Kd", Type: "float"},
		{Name: "Cs", Type: "color"},
		{Name: "Cout", Type: "color", Output: true},
		{Name: "N", Type: "vector"},
	}, params)

}

func TestParseShaderInfoEmpty(t *testing.T) {
	require.Empty(t, parseShaderInfo(""))
	require.Empty(t, parseShaderInfo("garbage\nmore garbage\n"))
}

// writeShaderBinary drops an empty stand-in .oso file into dir.
func writeShaderBinary(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("OpenShadingLanguage"), 0644))
	return path
}

func TestFindShader(t *testing.T) {

	first := t.TempDir()
	second := t.TempDir()

	writeShaderBinary(t, second, "matte.oso")
	wantFirst := writeShaderBinary(t, first, "texture.oso")
	writeShaderBinary(t, second, "texture.oso")

	resolver := NewShaderResolver(first + ":" + second)

	// Found in the second directory only.
	path, err := resolver.FindShader("matte")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(second, "matte.oso"), path)

	// Present in both; the first match on the search path wins.
	path, err = resolver.FindShader("texture")
	require.NoError(t, err)
	require.Equal(t, wantFirst, path)

	// An explicit extension is left alone.
	path, err = resolver.FindShader("matte.oso")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(second, "matte.oso"), path)

	// Not found anywhere is a ResolutionError.
	_, err = resolver.FindShader("missing")
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	require.Equal(t, "missing", resErr.Shader)

}

func TestDescribeCaches(t *testing.T) {

	invocations := 0

	resolver := NewShaderResolver("/nonexistent")
	resolver.runner = func(command string, args ...string) (string, error) {
		invocations++
		return sampleShaderInfo, nil
	}

	first, err := resolver.Describe("/shaders/matte.oso")
	require.NoError(t, err)
	require.Len(t, first, 5)

	second, err := resolver.Describe("/shaders/matte.oso")
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.Equal(t, 1, invocations, "introspection must run once per binary path")

	_, err = resolver.Describe("/shaders/other.oso")
	require.NoError(t, err)
	require.Equal(t, 2, invocations)

}
