package cyclex

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// renderState is the state accumulated down one traversal path: the cumulative
// transform and shading attributes of the current location, plus the set of shader
// network hashes already written to the document. The struct is passed by value and the
// transform/attributes fields are replaced (never mutated in place) at each level, so a
// parent's state stays untouched while its subtrees are visited; only shadersEmitted is
// shared across the whole traversal, since what has been emitted is a fact about the
// document, not about a subtree.
type renderState struct {
	transform      Matrix4
	attributes     *Properties
	shadersEmitted map[string]bool
}

// Renderer serializes a SceneSource into the scene-description document consumed by the
// external renderer. A Renderer is single-use state-free - every Document or Export call
// walks the source afresh - so one Renderer can serve repeated exports of a live scene.
type Renderer struct {
	Source  SceneSource
	Options *RenderOptions
	Shaders *ShaderResolver
	Log     *slog.Logger
}

// NewRenderer returns a Renderer for the scene source given. Passing nil options uses
// DefaultRenderOptions.
func NewRenderer(source SceneSource, options *RenderOptions) *Renderer {
	if options == nil {
		options = DefaultRenderOptions()
	}
	return &Renderer{
		Source:  source,
		Options: options,
		Shaders: NewShaderResolver(options.ShaderPaths),
		Log:     slog.Default(),
	}
}

// globals returns the effective render globals: the scene source's own globals with any
// camera or resolution override from the options layered on top.
func (renderer *Renderer) globals() *Properties {
	globals := renderer.Source.Globals().Clone()
	if renderer.Options.Camera != "" {
		globals.Get(RenderCameraProp).Set(renderer.Options.Camera)
	}
	if res := renderer.Options.Resolution; res != nil {
		globals.Get(RenderResolutionProp).Set([2]int{res.Width, res.Height})
	}
	return globals
}

// Document walks the scene source and assembles the full output document: the camera
// block, the fixed background block, and then shader and geometry blocks in traversal
// order.
func (renderer *Renderer) Document() (*Document, error) {

	doc := NewDocument()

	renderer.writeCamera(doc, renderer.globals())
	renderer.writeBackground(doc)

	state := renderState{
		transform:      NewMatrix4(),
		attributes:     NewProperties(),
		shadersEmitted: map[string]bool{},
	}

	if err := renderer.walk(doc, Path{}, state); err != nil {
		return nil, err
	}

	return doc, nil

}

// Write assembles the document and writes its rendered text to the writer given.
func (renderer *Renderer) Write(w io.Writer) error {
	doc, err := renderer.Document()
	if err != nil {
		return err
	}
	return doc.Write(w)
}

// Export writes the scene description to the options' file name, creating the output
// directory if needed, and in ModeRender spawns the external renderer on the written
// file (fire and forget). An empty file name makes Export a no-op, not an error.
func (renderer *Renderer) Export() error {

	fileName := renderer.Options.ExpandedFileName()
	if fileName == "" {
		renderer.Log.Debug("no output file name set; skipping export")
		return nil
	}

	doc, err := renderer.Document()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(fileName); dir != "." && dir != "" {
		// MkdirAll is idempotent - an existing directory is not an error, which keeps
		// re-entrant exports to the same path safe.
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cyclex: creating output directory %q: %w", dir, err)
		}
	}

	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("cyclex: creating output file: %w", err)
	}
	if err := doc.Write(file); err != nil {
		file.Close()
		return fmt.Errorf("cyclex: writing %q: %w", fileName, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("cyclex: writing %q: %w", fileName, err)
	}

	renderer.Log.Info("wrote scene description", "file", fileName, "blocks", len(doc.Elements))

	if renderer.Options.Mode == ModeRender {
		return renderer.spawnRenderer(fileName)
	}

	return nil

}

// spawnRenderer starts the external renderer on the written file without waiting for
// it.
func (renderer *Renderer) spawnRenderer(fileName string) error {

	command := renderer.Options.Renderer
	if command == "" {
		command = DefaultRendererCommand
	}

	cmd := exec.Command(command, fileName)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("cyclex: starting renderer %q: %w", command, err)
	}
	renderer.Log.Info("started renderer", "command", command, "pid", cmd.Process.Pid)

	// Fire and forget; release the process handle since we never wait on it.
	return cmd.Process.Release()

}

// writeCamera resolves the active camera from the globals and appends its
// transform-wrapped camera block.
func (renderer *Renderer) writeCamera(doc *Document, globals *Properties) {

	camera, transform := ResolveCamera(renderer.Source, globals)

	cameraElement := NewElement("camera").
		Attrib("width", strconv.Itoa(camera.Width())).
		Attrib("height", strconv.Itoa(camera.Height()))

	if camera.Projection() == ProjectionPerspective {
		cameraElement.Attrib("type", "perspective")
		cameraElement.Attrib("fov", formatFloat(camera.FieldOfView()))
	} else {
		cameraElement.Attrib("type", "orthographic")
	}

	doc.Add(NewElement("transform").
		Attrib("matrix", formatMatrix(transform)).
		Add(cameraElement))

}

// writeBackground appends the fixed background block: a constant-strength gray
// background wired to the document's output surface.
func (renderer *Renderer) writeBackground(doc *Document) {
	doc.Add(NewElement("background").
		Add(
			NewElement("background").
				Attrib("name", "bg").
				Attrib("strength", "2.0").
				Attrib("color", "0.2, 0.2, 0.2"),
			NewElement("connect").
				Attrib("from", "bg background").
				Attrib("to", "output surface"),
		))
}

// walk visits the scene location at the path given and then its children, depth-first
// and pre-order, in child-name order. Each call works on its own copy of the traversal
// state: the location's local transform is composed onto the parent's cumulative
// transform, and the location's attributes are overlaid onto the parent's (new keys
// win).
func (renderer *Renderer) walk(doc *Document, path Path, state renderState) error {

	state = renderState{
		transform:      renderer.Source.Transform(path).Mult(state.transform),
		attributes:     state.attributes.Overlaid(renderer.Source.Attributes(path)),
		shadersEmitted: state.shadersEmitted,
	}

	if object := renderer.Source.Object(path); object != nil {
		if err := renderer.writeObject(doc, state, object); err != nil {
			return fmt.Errorf("cyclex: location %s: %w", path, err)
		}
	}

	for _, childName := range renderer.Source.ChildNames(path) {
		if err := renderer.walk(doc, path.Append(childName), state); err != nil {
			return err
		}
	}

	return nil

}

// writeObject serializes the object at a visited location. Only mesh primitives are
// handled; anything else is silently skipped.
func (renderer *Renderer) writeObject(doc *Document, state renderState, object interface{}) error {

	mesh, ok := object.(*Mesh)
	if !ok {
		return nil
	}

	shaderHandle, err := renderer.writeShader(doc, state)
	if err != nil {
		return err
	}

	stateElement := NewElement("state")
	if shaderHandle != "" {
		stateElement.Attrib("shader", shaderHandle)
	}
	stateElement.Add(meshElement(mesh))

	doc.Add(NewElement("transform").
		Attrib("matrix", formatMatrix(state.transform)).
		Add(stateElement))

	return nil

}

// writeShader serializes the shader network assigned through the current attributes,
// if there is one, and returns the handle geometry should reference it by. The
// network's content hash is that handle; a network whose hash has already been written
// to the document is not emitted again, so geometries sharing a network share one
// shader block.
func (renderer *Renderer) writeShader(doc *Document, state renderState) (string, error) {

	if !state.attributes.Has(ShaderProp) {
		return "", nil
	}
	assignment, ok := state.attributes.Get(ShaderProp).Value.(*ShaderAssignment)
	if !ok || len(assignment.Nodes) == 0 {
		return "", nil
	}

	hash := assignment.Hash()
	if state.shadersEmitted[hash] {
		return hash, nil
	}

	if err := assignment.Validate(); err != nil {
		return "", err
	}

	shaderElement := NewElement("shader").Attrib("name", hash)

	for _, node := range assignment.Nodes {

		binaryPath, err := renderer.Shaders.FindShader(node.Shader)
		if err != nil {
			return "", err
		}

		oslElement := NewElement("osl_shader").
			Attrib("name", node.EffectiveHandle()).
			Attrib("src", binaryPath)

		connects := []*Element{}
		for _, name := range node.sortedParameterNames() {
			value := node.Parameters[name]
			if link, ok := ParseLink(value); ok {
				connects = append(connects, NewElement("connect").
					Attrib("from", link.Handle+" "+link.Output).
					Attrib("to", node.EffectiveHandle()+" "+name))
				continue
			}
			oslElement.Attrib(name, formatParamValue(value))
		}

		declared, err := renderer.Shaders.Describe(binaryPath)
		if err != nil {
			return "", err
		}
		for _, param := range declared {
			declElement := NewElement("input")
			if param.Output {
				declElement = NewElement("output")
			}
			oslElement.Add(declElement.Attrib("name", param.Name).Attrib("type", param.Type))
		}

		shaderElement.Add(oslElement)
		shaderElement.Add(connects...)

	}

	shaderElement.Add(NewElement("connect").
		Attrib("from", DefaultShaderHandle+" "+TerminalShaderOutput).
		Attrib("to", "output surface"))

	doc.Add(shaderElement)
	state.shadersEmitted[hash] = true

	return hash, nil

}

// meshElement serializes a mesh primitive: point positions, per-face vertex counts, the
// flattened vertex-index array, and a subdivision hint for catmull-clark meshes.
func meshElement(mesh *Mesh) *Element {

	element := NewElement("mesh")
	element.WrapAttribs = true

	element.Attrib("P", formatVectors(mesh.VertexPositions))
	element.Attrib("nverts", formatInts(mesh.VertexCounts))
	element.Attrib("verts", formatInts(mesh.VertexIndices))

	if mesh.Interpolation == InterpolationCatmullClark {
		element.Attrib("subdivision", "catmull-clark")
	}

	return element

}

func formatMatrix(matrix Matrix4) string {
	floats := matrix.ToFloats()
	parts := make([]string, 0, len(floats))
	for _, f := range floats {
		parts = append(parts, formatFloat(f))
	}
	return strings.Join(parts, " ")
}

func formatInts(ints []int) string {
	parts := make([]string, 0, len(ints))
	for _, i := range ints {
		parts = append(parts, strconv.Itoa(i))
	}
	return strings.Join(parts, " ")
}

func formatVectors(vectors []Vector3) string {
	parts := make([]string, 0, len(vectors)*3)
	for _, v := range vectors {
		parts = append(parts, formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}
	return strings.Join(parts, " ")
}
