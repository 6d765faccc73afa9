package project

import (
	"bytes"
	"strings"

	"github.com/beevik/etree"
)

// MSBuildNamespace is the default namespace of every element in a project file.
const MSBuildNamespace = "http://schemas.microsoft.com/developer/msbuild/2003"

// Element and attribute names used by the accessors.
const (
	tagItemGroup            = "ItemGroup"
	tagItemDefinitionGroup  = "ItemDefinitionGroup"
	tagPropertyGroup        = "PropertyGroup"
	tagProjectConfiguration = "ProjectConfiguration"
	tagConfiguration        = "Configuration"
	tagPlatform             = "Platform"

	attrCondition = "Condition"
	attrLabel     = "Label"
	attrInclude   = "Include"

	labelProjectConfigurations = "ProjectConfigurations"
)

const xmlDeclaration = `version="1.0" encoding="utf-8"`

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func stripBOM(data []byte) ([]byte, bool) {
	if bytes.HasPrefix(data, utf8BOM) {
		return data[len(utf8BOM):], true
	}
	return data, false
}

// ensureDeclaration normalizes the xml processing instruction, inserting one
// at the top of the document when the source had none.
func ensureDeclaration(doc *etree.Document) {
	for _, tok := range doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			pi.Inst = xmlDeclaration
			return
		}
	}
	doc.InsertChildAt(0, etree.NewProcInst("xml", xmlDeclaration))
	doc.InsertChildAt(1, etree.NewText("\n"))
}

// appendElement adds a child element, copying the sibling indentation when
// the parent is laid out one element per line.
func appendElement(parent *etree.Element, tag string) *etree.Element {
	child := etree.NewElement(tag)
	n := len(parent.Child)
	if n >= 3 {
		tail, tailOK := parent.Child[n-1].(*etree.CharData)
		_, prevIsElem := parent.Child[n-2].(*etree.Element)
		indent, indentOK := parent.Child[n-3].(*etree.CharData)
		if tailOK && prevIsElem && indentOK && isBlank(tail) && isBlank(indent) {
			parent.InsertChildAt(n-1, etree.NewText(indent.Data))
			parent.InsertChildAt(n, child)
			return child
		}
	}
	parent.AddChild(child)
	return child
}

// removeElement detaches child together with the indentation preceding it.
func removeElement(parent, child *etree.Element) {
	if i := child.Index(); i > 0 {
		if ws, ok := parent.Child[i-1].(*etree.CharData); ok && isBlank(ws) {
			parent.RemoveChildAt(i - 1)
		}
	}
	parent.RemoveChild(child)
}

func childText(e *etree.Element, tag string) string {
	if c := e.SelectElement(tag); c != nil {
		return c.Text()
	}
	return ""
}

func isBlank(cd *etree.CharData) bool {
	return strings.TrimSpace(cd.Data) == ""
}
