package cyclex

import "strings"

// Well-known property names read by the exporter. ShaderProp lives in location
// attributes; the render: properties live in a scene source's globals.
const (
	ShaderProp           = "shader"            // A *ShaderAssignment attached to a location
	RenderCameraProp     = "render:camera"     // Scene path (string) of the active camera
	RenderResolutionProp = "render:resolution" // Resolution override for the active camera
)

// Path identifies a scene location as an ordered sequence of name segments, starting
// under the scene root. The root itself is the empty Path.
type Path []string

// PathFromString parses a "/"-delimited location string (e.g. "/world/table/cube") into
// a Path. Leading and trailing slashes (and an entirely empty string) are fine.
func PathFromString(pathStr string) Path {
	path := Path{}
	for _, part := range strings.Split(pathStr, "/") {
		if part != "" {
			path = append(path, part)
		}
	}
	return path
}

// Append returns a new Path with the given name appended. The receiver is copied, not
// modified, so sibling recursions can't stomp on each other's paths.
func (path Path) Append(name string) Path {
	newPath := make(Path, len(path), len(path)+1)
	copy(newPath, path)
	return append(newPath, name)
}

// IsRoot returns true if the Path identifies the scene root.
func (path Path) IsRoot() bool {
	return len(path) == 0
}

func (path Path) String() string {
	return "/" + strings.Join(path, "/")
}

// SceneSource is the hierarchy the exporter reads from. It is a set of pure queries; the
// exporter never mutates a source. Transform returns the location's local transform
// relative to its parent, while FullTransform returns the location's transform composed
// all the way up the hierarchy. Object returns whatever primitive lives at the location
// (a *Mesh, a *Camera, or nil), Attributes its shading attributes, and ChildNames the
// names of its children in a deterministic order - that order decides output order.
type SceneSource interface {
	Transform(path Path) Matrix4
	FullTransform(path Path) Matrix4
	Object(path Path) interface{}
	Attributes(path Path) *Properties
	ChildNames(path Path) []string
	Globals() *Properties
}

// Node is a single location in an in-memory scene hierarchy. Nodes carry a local
// transform, an optional object (a *Mesh or *Camera), shading attributes, and an ordered
// list of children.
type Node struct {
	name       string
	transform  Matrix4
	object     interface{}
	properties *Properties
	children   []*Node
	parent     *Node
}

// NewNode returns a new Node with the name given, an identity local transform, and no
// object or attributes.
func NewNode(name string) *Node {
	return &Node{
		name:       name,
		transform:  NewMatrix4(),
		properties: NewProperties(),
	}
}

// Name returns the Node's name.
func (node *Node) Name() string {
	return node.name
}

// SetTransform sets the Node's local transform (its transform relative to its parent).
func (node *Node) SetTransform(transform Matrix4) {
	node.transform = transform
}

// Transform returns the Node's local transform.
func (node *Node) Transform() Matrix4 {
	return node.transform
}

// FullTransform returns the Node's transform composed with all of its parents' transforms,
// up to the scene root.
func (node *Node) FullTransform() Matrix4 {
	transform := node.transform
	if node.parent != nil {
		transform = transform.Mult(node.parent.FullTransform())
	}
	return transform
}

// SetObject sets the object (usually a *Mesh or *Camera) that lives at the Node.
func (node *Node) SetObject(object interface{}) {
	node.object = object
}

// Object returns the object that lives at the Node, or nil if there isn't one.
func (node *Node) Object() interface{} {
	return node.object
}

// Properties returns the Node's shading and render attributes.
func (node *Node) Properties() *Properties {
	return node.properties
}

// AddChildren parents the provided children to the Node, appending them to the end of
// the Node's child list (so addition order is traversal order).
func (node *Node) AddChildren(children ...*Node) {
	for _, child := range children {
		if child.parent != nil {
			child.parent.RemoveChildren(child)
		}
		child.parent = node
		node.children = append(node.children, child)
	}
}

// RemoveChildren unparents the provided children from the Node.
func (node *Node) RemoveChildren(children ...*Node) {
	for _, child := range children {
		for i, c := range node.children {
			if c == child {
				node.children = append(node.children[:i], node.children[i+1:]...)
				child.parent = nil
				break
			}
		}
	}
}

// Children returns the Node's children, in order.
func (node *Node) Children() []*Node {
	return append([]*Node{}, node.children...)
}

// ChildByName returns the Node's child with the name given, or nil if there isn't one.
func (node *Node) ChildByName(name string) *Node {
	for _, child := range node.children {
		if child.name == name {
			return child
		}
	}
	return nil
}

// Parent returns the Node's parent, or nil for a root (or unparented) Node.
func (node *Node) Parent() *Node {
	return node.parent
}

// ScenePath returns the Path addressing the Node from the root of the hierarchy it is
// parented under.
func (node *Node) ScenePath() Path {
	names := []string{}
	for n := node; n.parent != nil; n = n.parent {
		names = append(names, n.name)
	}
	path := make(Path, 0, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		path = append(path, names[i])
	}
	return path
}

// Scene is an in-memory scene hierarchy implementing SceneSource. A Scene always has a
// root Node (addressed by the empty Path); build it up with Root().AddChildren(...).
type Scene struct {
	Name    string
	root    *Node
	globals *Properties
}

// NewScene creates a new Scene with the name given and an empty root Node.
func NewScene(name string) *Scene {
	return &Scene{
		Name:    name,
		root:    NewNode(""),
		globals: NewProperties(),
	}
}

// Root returns the Scene's root Node.
func (scene *Scene) Root() *Node {
	return scene.root
}

// Resolve returns the Node at the Path given, or nil if no such location exists.
func (scene *Scene) Resolve(path Path) *Node {
	node := scene.root
	for _, name := range path {
		if node = node.ChildByName(name); node == nil {
			return nil
		}
	}
	return node
}

// Transform returns the local transform of the location at the Path given (identity if
// the location doesn't exist).
func (scene *Scene) Transform(path Path) Matrix4 {
	if node := scene.Resolve(path); node != nil {
		return node.Transform()
	}
	return NewMatrix4()
}

// FullTransform returns the full-hierarchy transform of the location at the Path given
// (identity if the location doesn't exist).
func (scene *Scene) FullTransform(path Path) Matrix4 {
	if node := scene.Resolve(path); node != nil {
		return node.FullTransform()
	}
	return NewMatrix4()
}

// Object returns the object at the Path given, or nil if there isn't one.
func (scene *Scene) Object(path Path) interface{} {
	if node := scene.Resolve(path); node != nil {
		return node.Object()
	}
	return nil
}

// Attributes returns the shading attributes of the location at the Path given (an empty
// set if the location doesn't exist).
func (scene *Scene) Attributes(path Path) *Properties {
	if node := scene.Resolve(path); node != nil {
		return node.Properties()
	}
	return NewProperties()
}

// ChildNames returns the names of the children of the location at the Path given, in
// the order they were added.
func (scene *Scene) ChildNames(path Path) []string {
	node := scene.Resolve(path)
	if node == nil {
		return nil
	}
	names := make([]string, 0, len(node.children))
	for _, child := range node.children {
		names = append(names, child.name)
	}
	return names
}

// Globals returns the Scene's render globals (e.g. RenderCameraProp, RenderResolutionProp).
func (scene *Scene) Globals() *Properties {
	return scene.globals
}
