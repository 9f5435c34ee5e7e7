package descriptor

import (
	"encoding/xml"
	"strings"
)

// Element is a generic XML element: name, attributes, character data and
// child elements in document order.
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []Element  `xml:",any"`
}

// Name returns the local element name.
func (e Element) Name() string { return e.XMLName.Local }

// Attr returns the value of the named attribute and whether it is present.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Value returns the trimmed character data. Whitespace-only text yields "".
func (e Element) Value() string { return strings.TrimSpace(e.Text) }

// ChildrenNamed returns the direct children with the given local name.
func (e Element) ChildrenNamed(name string) []Element {
	var out []Element
	for _, c := range e.Children {
		if c.XMLName.Local == name {
			out = append(out, c)
		}
	}
	return out
}

// ConfigNode is one <global> or <item> block tagged with the descriptor file
// it was read from. Load is the index into Tree.Files of the load that
// produced it; a file reached twice gets two distinct loads.
type ConfigNode struct {
	SourceFile string
	Load       int
	Element    Element
}

// Tree is the flattened result of loading a descriptor and its includes.
type Tree struct {
	Root    string       // descriptor path as given
	Files   []string     // every loaded file, in load order
	Globals []ConfigNode // <global> blocks, includes first
	Items   []ConfigNode // <list>/<item> blocks, includes first
}
