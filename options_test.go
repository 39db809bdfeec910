package cyclex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRenderOptions(t *testing.T) {
	options := DefaultRenderOptions()
	require.Equal(t, ModeRender, options.Mode)
	require.Equal(t, DefaultRendererCommand, options.Renderer)
	require.Empty(t, options.FileName)
}

func TestLoadRenderOptions(t *testing.T) {

	path := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
fileName: renders/${scene}.xml
mode: export
camera: /rig/cam
resolution:
  width: 1920
  height: 1080
variables:
  scene: hallway
`), 0644))

	options, err := LoadRenderOptions(path)
	require.NoError(t, err)

	require.Equal(t, "renders/${scene}.xml", options.FileName)
	require.Equal(t, "export", options.Mode)
	require.Equal(t, "/rig/cam", options.Camera)
	require.NotNil(t, options.Resolution)
	require.Equal(t, 1920, options.Resolution.Width)
	require.Equal(t, 1080, options.Resolution.Height)

	// The mode was overridden but the renderer command wasn't; the default survives.
	require.Equal(t, DefaultRendererCommand, options.Renderer)

	require.Equal(t, "renders/hallway.xml", options.ExpandedFileName())

}

func TestLoadRenderOptionsErrors(t *testing.T) {

	_, err := LoadRenderOptions(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fileName: [unclosed"), 0644))
	_, err = LoadRenderOptions(path)
	require.Error(t, err)

}

func TestExpandedFileName(t *testing.T) {

	options := &RenderOptions{
		FileName:  "out/${shot}/frame-${pass}.xml",
		Variables: map[string]string{"shot": "sh010", "pass": "beauty"},
	}
	require.Equal(t, "out/sh010/frame-beauty.xml", options.ExpandedFileName())

	// Unknown variables expand to nothing rather than erroring.
	options.Variables = nil
	require.Equal(t, "out//frame-.xml", options.ExpandedFileName())

}
