package cyclex

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultShaderHandle is the handle a ShaderNode gets when none is set. It is also the
// conventional handle of a network's final node, which is what lets the terminating
// connection to the document's output surface always resolve.
const DefaultShaderHandle = "surface"

// TerminalShaderOutput is the output parameter on the final shader node that gets wired
// to the document's output surface slot.
const TerminalShaderOutput = "Ci"

// linkPrefix marks a shader parameter value as a reference to another node's output
// rather than a literal.
const linkPrefix = "link:"

// Link is a shader parameter value referencing the output of another node in the same
// ShaderAssignment, by that node's handle and output name.
type Link struct {
	Handle string
	Output string
}

// NewLink returns a Link to the named output of the node with the handle given.
func NewLink(handle, output string) Link {
	return Link{Handle: handle, Output: output}
}

func (link Link) String() string {
	return linkPrefix + link.Handle + "." + link.Output
}

// ParseLink reports whether a shader parameter value is a link reference - either a Link
// value or a "link:<handle>.<output>" string - and returns it as a Link if so.
func ParseLink(value interface{}) (Link, bool) {
	switch v := value.(type) {
	case Link:
		return v, true
	case string:
		if !strings.HasPrefix(v, linkPrefix) {
			return Link{}, false
		}
		ref := strings.TrimPrefix(v, linkPrefix)
		dot := strings.LastIndex(ref, ".")
		if dot <= 0 || dot == len(ref)-1 {
			return Link{}, false
		}
		return Link{Handle: ref[:dot], Output: ref[dot+1:]}, true
	}
	return Link{}, false
}

// ShaderNode is a single node in a shader network: a shader name (resolved to a compiled
// binary on the shader search path), a handle naming the node within its network, and a
// set of parameter values, some of which may be Links to other nodes' outputs.
type ShaderNode struct {
	Shader     string
	Handle     string // Defaults to DefaultShaderHandle when empty
	Parameters map[string]interface{}
}

// NewShaderNode returns a new ShaderNode for the shader name given, with no explicit
// handle and no parameters.
func NewShaderNode(shader string) *ShaderNode {
	return &ShaderNode{
		Shader:     shader,
		Parameters: map[string]interface{}{},
	}
}

// SetHandle sets the node's handle and returns the node for chaining.
func (node *ShaderNode) SetHandle(handle string) *ShaderNode {
	node.Handle = handle
	return node
}

// SetParameter sets a parameter value (a literal or a Link) and returns the node for
// chaining.
func (node *ShaderNode) SetParameter(name string, value interface{}) *ShaderNode {
	node.Parameters[name] = value
	return node
}

// EffectiveHandle returns the node's handle. A handle may also arrive as the internal
// "__handle" parameter (the convention scene translators use); when neither is set, the
// handle falls back to DefaultShaderHandle.
func (node *ShaderNode) EffectiveHandle() string {
	if node.Handle != "" {
		return node.Handle
	}
	if handle, ok := node.Parameters["__handle"].(string); ok && handle != "" {
		return handle
	}
	return DefaultShaderHandle
}

// sortedParameterNames returns the node's parameter names in sorted order, so parameter
// iteration (and so hashing and emission) is deterministic. Internal parameters
// ("__"-prefixed, like "__handle") are not included; they describe the network's
// wiring, not shader inputs.
func (node *ShaderNode) sortedParameterNames() []string {
	names := make([]string, 0, len(node.Parameters))
	for name := range node.Parameters {
		if strings.HasPrefix(name, "__") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ShaderAssignment is an ordered shader network attached to a scene location through the
// ShaderProp attribute. Node order is emission order; links must refer to handles of
// nodes within the same assignment.
type ShaderAssignment struct {
	Nodes []*ShaderNode
}

// NewShaderAssignment returns a new, empty ShaderAssignment.
func NewShaderAssignment(nodes ...*ShaderNode) *ShaderAssignment {
	return &ShaderAssignment{Nodes: nodes}
}

// Add appends a node to the assignment and returns the assignment for chaining.
func (assignment *ShaderAssignment) Add(node *ShaderNode) *ShaderAssignment {
	assignment.Nodes = append(assignment.Nodes, node)
	return assignment
}

// Handles returns the set of effective handles of the assignment's nodes.
func (assignment *ShaderAssignment) Handles() map[string]bool {
	handles := map[string]bool{}
	for _, node := range assignment.Nodes {
		handles[node.EffectiveHandle()] = true
	}
	return handles
}

// LinkError is returned when a shader parameter links to a handle that no node in the
// same assignment has. The referenced output can never exist in the emitted network, so
// the export fails rather than writing a connection the renderer would reject.
type LinkError struct {
	Shader    string
	Parameter string
	Link      Link
}

func (err *LinkError) Error() string {
	return fmt.Sprintf("cyclex: shader %q parameter %q links to unknown handle %q", err.Shader, err.Parameter, err.Link.Handle)
}

// Validate checks that every link parameter in the assignment references the handle of
// a node within the assignment, returning a *LinkError for the first one that doesn't.
func (assignment *ShaderAssignment) Validate() error {
	handles := assignment.Handles()
	for _, node := range assignment.Nodes {
		for _, name := range node.sortedParameterNames() {
			link, ok := ParseLink(node.Parameters[name])
			if !ok {
				continue
			}
			if !handles[link.Handle] {
				return &LinkError{Shader: node.Shader, Parameter: name, Link: link}
			}
		}
	}
	return nil
}

// Hash returns a content hash of the assignment - a deterministic digest of its node
// order, shader names, handles, and parameter values. Two assignments with the same
// structure and values hash identically, which is what deduplicates shader networks
// across the geometries that share them; the hash doubles as the network's wire name
// in the output document.
func (assignment *ShaderAssignment) Hash() string {

	digest := sha1.New()

	for _, node := range assignment.Nodes {
		fmt.Fprintf(digest, "shader=%s;handle=%s;", node.Shader, node.EffectiveHandle())
		for _, name := range node.sortedParameterNames() {
			value := node.Parameters[name]
			if link, ok := ParseLink(value); ok {
				fmt.Fprintf(digest, "%s=%s;", name, link.String())
			} else {
				fmt.Fprintf(digest, "%s=%s;", name, formatParamValue(value))
			}
		}
		digest.Write([]byte{'\n'})
	}

	return hex.EncodeToString(digest.Sum(nil))

}

// formatParamValue renders a literal shader parameter value the way it appears in the
// output document (which is also the canonical form the content hash runs over).
func formatParamValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float32:
		return formatFloat(v)
	case float64:
		return formatFloat(float32(v))
	case Vector3:
		return formatFloat(v.X) + " " + formatFloat(v.Y) + " " + formatFloat(v.Z)
	case []float32:
		parts := make([]string, 0, len(v))
		for _, f := range v {
			parts = append(parts, formatFloat(f))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
