// Package cyclex converts a hierarchical scene graph - transforms, mesh geometry,
// shader networks, a camera, and render globals - into the textual scene description
// consumed by the Cycles renderer. The scene comes from anything implementing
// SceneSource: the in-memory Scene type, a glTF file loaded with LoadGLTFFile, or your
// own adapter over a host application's scene graph.
//
// The usual flow is:
//
//	scene, _ := cyclex.LoadGLTFFile("level.glb", nil)
//	options := cyclex.DefaultRenderOptions()
//	options.FileName = "out/level.xml"
//	renderer := cyclex.NewRenderer(scene, options)
//	err := renderer.Export()
//
// Shader networks attached to locations through the "shader" attribute are
// deduplicated by content hash, so a material shared by a thousand objects is written
// once and referenced a thousand times.
package cyclex
