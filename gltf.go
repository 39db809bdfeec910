package cyclex

import (
	"bytes"
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// GLTFLoadOptions alters how a glTF file is loaded into a Scene.
type GLTFLoadOptions struct {
	// Width and height of loaded Cameras. Defaults to -1 each, which will then instead
	// use the exporter's default camera resolution.
	CameraWidth, CameraHeight int
}

// DefaultGLTFLoadOptions creates an instance of GLTFLoadOptions with some sensible
// defaults.
func DefaultGLTFLoadOptions() *GLTFLoadOptions {
	return &GLTFLoadOptions{
		CameraWidth:  -1,
		CameraHeight: -1,
	}
}

// LoadGLTFFile loads a .gltf or .glb file from the filepath given into a Scene usable as
// a SceneSource, using a provided GLTFLoadOptions struct to alter how the file is
// loaded. Passing nil for loadOptions will load the file using default load options.
// Node transforms (matrix or TRS), mesh primitives, cameras, and Blender custom
// properties (extras) all come across; the first camera found becomes the scene's
// active-camera global.
func LoadGLTFFile(path string, loadOptions *GLTFLoadOptions) (*Scene, error) {

	fileData, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	return LoadGLTFData(fileData, loadOptions)

}

// LoadGLTFData loads a .gltf or .glb file from the byte data given, using a provided
// GLTFLoadOptions struct to alter how the file is loaded. Passing nil for loadOptions
// will load the file using default load options.
func LoadGLTFData(data []byte, loadOptions *GLTFLoadOptions) (*Scene, error) {

	decoder := gltf.NewDecoder(bytes.NewReader(data))

	doc := gltf.NewDocument()

	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("cyclex: decoding gltf data: %w", err)
	}

	if loadOptions == nil {
		loadOptions = DefaultGLTFLoadOptions()
	}

	meshes := make([]*Mesh, 0, len(doc.Meshes))

	for _, gltfMesh := range doc.Meshes {

		newMesh := NewMesh(gltfMesh.Name)

		for _, prim := range gltfMesh.Primitives {

			posBuffer := [][3]float32{}
			vertPos, err := modeler.ReadPosition(doc, doc.Accessors[prim.Attributes[gltf.POSITION]], posBuffer)

			if err != nil {
				return nil, err
			}

			base := len(newMesh.VertexPositions)

			for _, p := range vertPos {
				newMesh.VertexPositions = append(newMesh.VertexPositions, Vector3{p[0], p[1], p[2]})
			}

			if prim.Indices == nil {
				continue
			}

			indexBuffer := []uint32{}

			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], indexBuffer)

			if err != nil {
				return nil, err
			}

			for i := 0; i+2 < len(indices); i += 3 {
				newMesh.AddFace(base+int(indices[i]), base+int(indices[i+1]), base+int(indices[i+2]))
			}

		}

		if gltfMesh.Extras != nil {
			if extras, isMap := gltfMesh.Extras.(map[string]interface{}); isMap {
				if subdiv, exists := extras["subdivision"]; exists {
					if enabled, isBool := subdiv.(bool); isBool && enabled {
						newMesh.Interpolation = InterpolationCatmullClark
					}
					if scheme, isString := subdiv.(string); isString && scheme == "catmull-clark" {
						newMesh.Interpolation = InterpolationCatmullClark
					}
				}
			}
		}

		meshes = append(meshes, newMesh)

	}

	nodes := make([]*Node, 0, len(doc.Nodes))

	for _, gltfNode := range doc.Nodes {

		newNode := NewNode(gltfNode.Name)

		if gltfNode.Mesh != nil {
			newNode.SetObject(meshes[int(*gltfNode.Mesh)])
		} else if gltfNode.Camera != nil {

			gltfCam := doc.Cameras[int(*gltfNode.Camera)]

			newCam := NewCamera(loadOptions.CameraWidth, loadOptions.CameraHeight)

			if gltfCam.Perspective != nil {
				newCam.SetProjection(ProjectionPerspective)
				newCam.SetFieldOfView(float32(gltfCam.Perspective.Yfov) / math32.Pi * 180)
			} else if gltfCam.Orthographic != nil {
				newCam.SetProjection("orthographic")
			}

			newNode.SetObject(newCam)

		}

		mtData := gltfNode.Matrix

		matrix := NewMatrix4()
		matrix.SetRow(0, Vector4{float32(mtData[0]), float32(mtData[1]), float32(mtData[2]), float32(mtData[3])})
		matrix.SetRow(1, Vector4{float32(mtData[4]), float32(mtData[5]), float32(mtData[6]), float32(mtData[7])})
		matrix.SetRow(2, Vector4{float32(mtData[8]), float32(mtData[9]), float32(mtData[10]), float32(mtData[11])})
		matrix.SetRow(3, Vector4{float32(mtData[12]), float32(mtData[13]), float32(mtData[14]), float32(mtData[15])})

		if !matrix.IsIdentity() {
			newNode.SetTransform(matrix)
		} else {
			transform := NewMatrix4Scale(float32(gltfNode.Scale[0]), float32(gltfNode.Scale[1]), float32(gltfNode.Scale[2]))
			transform = transform.Mult(NewQuaternion(float32(gltfNode.Rotation[0]), float32(gltfNode.Rotation[1]), float32(gltfNode.Rotation[2]), float32(gltfNode.Rotation[3])).ToMatrix4())
			transform = transform.Mult(NewMatrix4Translate(float32(gltfNode.Translation[0]), float32(gltfNode.Translation[1]), float32(gltfNode.Translation[2])))
			newNode.SetTransform(transform)
		}

		if gltfNode.Extras != nil {
			if extras, isMap := gltfNode.Extras.(map[string]interface{}); isMap {
				for propName, value := range extras {
					newNode.Properties().Get(propName).Set(value)
				}
			}
		}

		nodes = append(nodes, newNode)

	}

	// Set up parenting; only after every node exists can children be hooked up.
	for i, gltfNode := range doc.Nodes {
		for _, childIndex := range gltfNode.Children {
			nodes[i].AddChildren(nodes[int(childIndex)])
		}
	}

	scene := NewScene("")

	if len(doc.Scenes) > 0 {

		gltfScene := doc.Scenes[0]
		scene.Name = gltfScene.Name

		for _, n := range gltfScene.Nodes {
			scene.Root().AddChildren(nodes[int(n)])
		}

		if gltfScene.Extras != nil {
			if extras, isMap := gltfScene.Extras.(map[string]interface{}); isMap {
				for propName, value := range extras {
					scene.Globals().Get(propName).Set(value)
				}
			}
		}

	} else {

		// No scene entry; parent all parentless nodes to the root so they're reachable.
		for _, node := range nodes {
			if node.Parent() == nil {
				scene.Root().AddChildren(node)
			}
		}

	}

	// The first camera in the hierarchy becomes the active render camera, unless the
	// file's globals already named one.
	if !scene.Globals().Has(RenderCameraProp) {
		for _, node := range nodes {
			if _, isCamera := node.Object().(*Camera); isCamera {
				scene.Globals().Get(RenderCameraProp).Set(node.ScenePath().String())
				break
			}
		}
	}

	return scene, nil

}
