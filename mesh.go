package cyclex

// Interpolation modes for a Mesh. Only catmull-clark gets a subdivision hint in the
// output; anything else is left to the renderer's linear default.
const (
	InterpolationLinear       = "linear"
	InterpolationCatmullClark = "catmullClark"
)

// Mesh represents a polygonal mesh primitive: a point-position array, per-face vertex
// counts, and a flattened vertex-index array. This is the only primitive kind the
// exporter serializes; anything else found at a scene location is silently skipped.
type Mesh struct {
	Name            string
	VertexPositions []Vector3 // One position per point
	VertexCounts    []int     // Number of vertices for each face, in face order
	VertexIndices   []int     // Indices into VertexPositions, flattened across all faces
	Interpolation   string    // InterpolationLinear or InterpolationCatmullClark
}

// NewMesh returns a new, empty Mesh with the name given and linear interpolation.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:          name,
		Interpolation: InterpolationLinear,
	}
}

// AddFace appends a face to the Mesh, indexing into the Mesh's vertex positions.
func (mesh *Mesh) AddFace(indices ...int) {
	mesh.VertexCounts = append(mesh.VertexCounts, len(indices))
	mesh.VertexIndices = append(mesh.VertexIndices, indices...)
}

// FaceCount returns the number of faces in the Mesh.
func (mesh *Mesh) FaceCount() int {
	return len(mesh.VertexCounts)
}

// Clone returns a deep copy of the Mesh.
func (mesh *Mesh) Clone() *Mesh {
	newMesh := NewMesh(mesh.Name)
	newMesh.VertexPositions = append([]Vector3{}, mesh.VertexPositions...)
	newMesh.VertexCounts = append([]int{}, mesh.VertexCounts...)
	newMesh.VertexIndices = append([]int{}, mesh.VertexIndices...)
	newMesh.Interpolation = mesh.Interpolation
	return newMesh
}

// NewCubeMesh creates a new cube Mesh of the given size, centered on the origin, made of
// six quad faces.
func NewCubeMesh(size float32) *Mesh {

	mesh := NewMesh("Cube")

	s := size / 2

	mesh.VertexPositions = []Vector3{
		{-s, -s, -s},
		{s, -s, -s},
		{s, s, -s},
		{-s, s, -s},
		{-s, -s, s},
		{s, -s, s},
		{s, s, s},
		{-s, s, s},
	}

	mesh.AddFace(0, 1, 2, 3)
	mesh.AddFace(5, 4, 7, 6)
	mesh.AddFace(4, 0, 3, 7)
	mesh.AddFace(1, 5, 6, 2)
	mesh.AddFace(3, 2, 6, 7)
	mesh.AddFace(4, 5, 1, 0)

	return mesh

}

// NewPlaneMesh creates a new plane Mesh of the given width and depth, lying in the XZ
// plane and centered on the origin.
func NewPlaneMesh(width, depth float32) *Mesh {

	mesh := NewMesh("Plane")

	w := width / 2
	d := depth / 2

	mesh.VertexPositions = []Vector3{
		{-w, 0, -d},
		{w, 0, -d},
		{w, 0, d},
		{-w, 0, d},
	}

	mesh.AddFace(3, 2, 1, 0)

	return mesh

}
