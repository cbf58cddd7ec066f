package headless

import (
	"io"
	"sort"
	"strings"
)

// voidElements have no closing tag and never carry children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// OuterHTML serializes n and its descendants.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

// InnerHTML serializes the children of n.
func (n *Node) InnerHTML() string {
	var b strings.Builder
	for _, c := range n.children {
		c.writeHTML(&b)
	}
	return b.String()
}

// WriteHTML streams the serialization of n to w.
func (n *Node) WriteHTML(w io.Writer) error {
	_, err := io.WriteString(w, n.OuterHTML())
	return err
}

func (n *Node) writeHTML(b *strings.Builder) {
	if n.typ == TextNode {
		b.WriteString(escapeHTML(n.text))
		return
	}

	b.WriteByte('<')
	b.WriteString(n.tag)
	if n.className != "" {
		b.WriteString(` class="`)
		b.WriteString(escapeAttr(n.className))
		b.WriteByte('"')
	}
	if style := n.StyleText(); style != "" {
		b.WriteString(` style="`)
		b.WriteString(escapeAttr(style))
		b.WriteByte('"')
	}
	if len(n.bools) > 0 {
		names := make([]string, 0, len(n.bools))
		for name := range n.bools {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteByte(' ')
			b.WriteString(name)
		}
	}
	b.WriteByte('>')

	if voidElements[n.tag] {
		return
	}
	for _, c := range n.children {
		c.writeHTML(b)
	}
	b.WriteString("</")
	b.WriteString(n.tag)
	b.WriteByte('>')
}
