package cyclex

// Default resolution used when a Camera (or a scene with no usable camera) doesn't
// specify one.
const (
	DefaultCameraWidth  = 640
	DefaultCameraHeight = 480
)

// ProjectionPerspective is the one projection value with extra parameters (a field of
// view); any other projection value serializes as an orthographic camera.
const ProjectionPerspective = "perspective"

// Camera represents a render camera living at a scene location. The exporter only reads
// from Cameras; their world transform comes from the scene hierarchy, not the Camera
// itself.
type Camera struct {
	width       int
	height      int
	projection  string
	fieldOfView float32 // Vertical field of view, in degrees; only used for perspective
}

// NewCamera creates a new perspective Camera with the resolution given and a 90 degree
// field of view. Passing a width or height of 0 or less uses the default resolution.
func NewCamera(width, height int) *Camera {
	if width <= 0 {
		width = DefaultCameraWidth
	}
	if height <= 0 {
		height = DefaultCameraHeight
	}
	return &Camera{
		width:       width,
		height:      height,
		projection:  ProjectionPerspective,
		fieldOfView: 90,
	}
}

// Clone returns a copy of the Camera.
func (camera *Camera) Clone() *Camera {
	newCamera := *camera
	return &newCamera
}

// Width returns the Camera's horizontal resolution in pixels.
func (camera *Camera) Width() int {
	return camera.width
}

// Height returns the Camera's vertical resolution in pixels.
func (camera *Camera) Height() int {
	return camera.height
}

// SetResolution sets the Camera's resolution in pixels.
func (camera *Camera) SetResolution(width, height int) {
	camera.width = width
	camera.height = height
}

// Projection returns the Camera's projection kind.
func (camera *Camera) Projection() string {
	return camera.projection
}

// SetProjection sets the Camera's projection kind. The value is carried verbatim;
// anything other than ProjectionPerspective serializes as orthographic.
func (camera *Camera) SetProjection(projection string) {
	camera.projection = projection
}

// FieldOfView returns the Camera's vertical field of view in degrees.
func (camera *Camera) FieldOfView() float32 {
	return camera.fieldOfView
}

// SetFieldOfView sets the Camera's vertical field of view in degrees.
func (camera *Camera) SetFieldOfView(fovY float32) {
	camera.fieldOfView = fovY
}

// ResolveCamera extracts the active render camera from a scene source's globals. If the
// globals name a camera path and a Camera actually lives there, that Camera and its
// full-hierarchy transform are used; otherwise a default Camera with an identity
// transform is synthesized. A resolution override in the globals is applied on a copy
// (the source's Camera is never modified), and the world transform gets a fixed
// (1, 1, -1) scale to hop from the scene graph's coordinate convention to the
// renderer's.
func ResolveCamera(source SceneSource, globals *Properties) (*Camera, Matrix4) {

	var camera *Camera
	transform := NewMatrix4()

	if globals.Has(RenderCameraProp) && globals.Get(RenderCameraProp).IsString() {
		cameraPath := PathFromString(globals.Get(RenderCameraProp).AsString())
		if cam, ok := source.Object(cameraPath).(*Camera); ok {
			camera = cam.Clone()
			transform = source.FullTransform(cameraPath)
		}
	}

	if camera == nil {
		camera = NewCamera(DefaultCameraWidth, DefaultCameraHeight)
	}

	if globals.Has(RenderResolutionProp) {
		if res, ok := globals.Get(RenderResolutionProp).Value.([2]int); ok {
			camera.SetResolution(res[0], res[1])
		}
	}

	transform = NewMatrix4Scale(1, 1, -1).Mult(transform)

	return camera, transform

}
