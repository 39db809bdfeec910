package cyclex

import (
	"io"
	"strings"
)

// Attrib is a single key="value" attribute on an Element. Attributes keep the order they
// were added in, since the output dialect is order-significant.
type Attrib struct {
	Key   string
	Value string
}

// Element is one node of the output document: a name, an ordered attribute list, and
// ordered children. The document is assembled as Elements and only rendered to text at
// the end, so tests can check the assembled data without parsing markup.
type Element struct {
	Name     string
	Attribs  []Attrib
	Children []*Element

	// WrapAttribs renders each attribute on its own line; used for elements carrying
	// large data arrays (meshes).
	WrapAttribs bool
}

// NewElement returns a new Element with the name given.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Attrib appends an attribute and returns the Element for chaining.
func (element *Element) Attrib(key, value string) *Element {
	element.Attribs = append(element.Attribs, Attrib{Key: key, Value: value})
	return element
}

// Add appends children and returns the Element for chaining.
func (element *Element) Add(children ...*Element) *Element {
	element.Children = append(element.Children, children...)
	return element
}

// AttribValue returns the value of the named attribute, and whether it exists.
func (element *Element) AttribValue(key string) (string, bool) {
	for _, attrib := range element.Attribs {
		if attrib.Key == key {
			return attrib.Value, true
		}
	}
	return "", false
}

// ElementsNamed returns every element in the subtree rooted at the Element (including
// itself) with the name given, in document order.
func (element *Element) ElementsNamed(name string) []*Element {
	found := []*Element{}
	if element.Name == name {
		found = append(found, element)
	}
	for _, child := range element.Children {
		found = append(found, child.ElementsNamed(name)...)
	}
	return found
}

var attribEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func (element *Element) render(sb *strings.Builder, depth int) {

	indent := strings.Repeat("\t", depth)

	sb.WriteString(indent)
	sb.WriteString("<")
	sb.WriteString(element.Name)

	for _, attrib := range element.Attribs {
		if element.WrapAttribs {
			sb.WriteString("\n")
			sb.WriteString(indent)
			sb.WriteString("\t")
		} else {
			sb.WriteString(" ")
		}
		sb.WriteString(attrib.Key)
		sb.WriteString(`="`)
		sb.WriteString(attribEscaper.Replace(attrib.Value))
		sb.WriteString(`"`)
	}

	if len(element.Children) == 0 {
		if element.WrapAttribs && len(element.Attribs) > 0 {
			sb.WriteString("\n")
			sb.WriteString(indent)
		}
		sb.WriteString("/>\n")
		return
	}

	sb.WriteString(">\n")
	for _, child := range element.Children {
		child.render(sb, depth+1)
	}
	sb.WriteString(indent)
	sb.WriteString("</")
	sb.WriteString(element.Name)
	sb.WriteString(">\n")

}

// Document is the ordered sequence of top-level markup blocks making up one exported
// scene description. Blocks render in the order they were added; the exporter relies on
// that for the camera-background-traversal ordering the renderer requires.
type Document struct {
	Elements []*Element
}

// NewDocument returns a new, empty Document.
func NewDocument() *Document {
	return &Document{}
}

// Add appends top-level blocks to the Document.
func (doc *Document) Add(elements ...*Element) {
	doc.Elements = append(doc.Elements, elements...)
}

// ElementsNamed returns every element in the Document with the name given, in document
// order, searching recursively.
func (doc *Document) ElementsNamed(name string) []*Element {
	found := []*Element{}
	for _, element := range doc.Elements {
		found = append(found, element.ElementsNamed(name)...)
	}
	return found
}

// Render renders the Document to its textual form, with a blank line between top-level
// blocks.
func (doc *Document) Render() string {
	sb := &strings.Builder{}
	for _, element := range doc.Elements {
		element.render(sb, 0)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Write renders the Document and writes it to the writer given.
func (doc *Document) Write(w io.Writer) error {
	_, err := io.WriteString(w, doc.Render())
	return err
}
