package cyclex

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElementRender(t *testing.T) {

	doc := NewDocument()
	doc.Add(NewElement("camera").
		Attrib("width", "640").
		Attrib("height", "480"))

	require.Equal(t, "<camera width=\"640\" height=\"480\"/>\n\n", doc.Render())

}

func TestElementRenderNested(t *testing.T) {

	doc := NewDocument()
	doc.Add(NewElement("background").
		Add(
			NewElement("background").Attrib("name", "bg"),
			NewElement("connect").Attrib("from", "bg background").Attrib("to", "output surface"),
		))

	want := strings.Join([]string{
		`<background>`,
		"\t" + `<background name="bg"/>`,
		"\t" + `<connect from="bg background" to="output surface"/>`,
		`</background>`,
		``,
		``,
	}, "\n")

	require.Equal(t, want, doc.Render())

}

func TestElementRenderWrappedAttribs(t *testing.T) {

	mesh := NewElement("mesh")
	mesh.WrapAttribs = true
	mesh.Attrib("P", "0 0 0 1 0 0")
	mesh.Attrib("nverts", "3")

	doc := NewDocument()
	doc.Add(mesh)

	want := strings.Join([]string{
		`<mesh`,
		"\t" + `P="0 0 0 1 0 0"`,
		"\t" + `nverts="3"`,
		`/>`,
		``,
		``,
	}, "\n")

	require.Equal(t, want, doc.Render())

}

func TestElementAttribEscaping(t *testing.T) {

	doc := NewDocument()
	doc.Add(NewElement("state").Attrib("shader", `a<b>"c"&d`))

	require.Equal(t, "<state shader=\"a&lt;b&gt;&quot;c&quot;&amp;d\"/>\n\n", doc.Render())

}

func TestDocumentElementsNamed(t *testing.T) {

	doc := NewDocument()
	doc.Add(
		NewElement("transform").Add(NewElement("state").Add(NewElement("mesh"))),
		NewElement("transform").Add(NewElement("state")),
	)

	require.Len(t, doc.ElementsNamed("transform"), 2)
	require.Len(t, doc.ElementsNamed("state"), 2)
	require.Len(t, doc.ElementsNamed("mesh"), 1)
	require.Empty(t, doc.ElementsNamed("shader"))

}

func TestDocumentWrite(t *testing.T) {

	doc := NewDocument()
	doc.Add(NewElement("camera"))

	buf := &bytes.Buffer{}
	require.NoError(t, doc.Write(buf))
	require.Equal(t, doc.Render(), buf.String())

}

func TestElementAttribValue(t *testing.T) {

	element := NewElement("camera").Attrib("width", "640")

	value, ok := element.AttribValue("width")
	require.True(t, ok)
	require.Equal(t, "640", value)

	_, ok = element.AttribValue("height")
	require.False(t, ok)

}
