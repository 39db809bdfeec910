package cyclex

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModeRender is the RenderOptions mode that spawns the external renderer on the written
// document after a successful export. Any other mode just writes the document.
const ModeRender = "render"

// DefaultRendererCommand is the external renderer invoked in ModeRender.
const DefaultRendererCommand = "cycles"

// Resolution is an explicit width/height override for the render camera.
type Resolution struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RenderOptions configures one export run. The zero value (or DefaultRenderOptions) is
// usable; FileName is the one thing every real export needs, since an empty FileName
// makes the export a silent no-op.
type RenderOptions struct {
	// FileName is the path the scene description is written to. Variables from the
	// Variables map may be referenced as ${name}. Empty means don't export.
	FileName string `yaml:"fileName"`

	// Mode selects what happens after the document is written; ModeRender spawns the
	// renderer on it, anything else stops at the file.
	Mode string `yaml:"mode"`

	// Camera, when set, overrides the scene's own active-camera global with the scene
	// path given.
	Camera string `yaml:"camera"`

	// Resolution, when set, overrides the resolved camera's resolution.
	Resolution *Resolution `yaml:"resolution"`

	// ShaderPaths is the colon-delimited shader binary search path. Empty falls back
	// to $OSL_SHADER_PATHS.
	ShaderPaths string `yaml:"shaderPaths"`

	// Renderer is the renderer command spawned in ModeRender.
	Renderer string `yaml:"renderer"`

	// Variables substitutes into FileName.
	Variables map[string]string `yaml:"variables"`
}

// DefaultRenderOptions returns a RenderOptions with the usual defaults: render mode and
// the default renderer command.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Mode:     ModeRender,
		Renderer: DefaultRendererCommand,
	}
}

// LoadRenderOptions reads a RenderOptions YAML file from the path given, layered over
// the defaults.
func LoadRenderOptions(path string) (*RenderOptions, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cyclex: reading options file: %w", err)
	}

	options := DefaultRenderOptions()
	if err := yaml.Unmarshal(data, options); err != nil {
		return nil, fmt.Errorf("cyclex: parsing options file %q: %w", path, err)
	}

	return options, nil

}

// ExpandedFileName returns FileName with ${name} references substituted from the
// Variables map. Unknown variables expand to the empty string.
func (options *RenderOptions) ExpandedFileName() string {
	return os.Expand(options.FileName, func(name string) string {
		return options.Variables[name]
	})
}
