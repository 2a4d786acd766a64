package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrEmptyDocument = errors.New("document: no root node")
	ErrMultipleRoots = errors.New("document: more than one root node")
)

// ParseXML reads an XML document into a node tree. Leaf values keep their
// character data verbatim; whitespace between child elements is dropped.
func ParseXML(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		root  *Node
		stack []*Node
		texts [][]byte // character data per open element
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("document: parsing xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return nil, ErrMultipleRoots
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
			texts = append(texts, nil)

		case xml.CharData:
			if len(texts) > 0 {
				top := len(texts) - 1
				texts[top] = append(texts[top], t...)
			}

		case xml.EndElement:
			n := stack[len(stack)-1]
			text := string(texts[len(texts)-1])
			if len(n.Children) == 0 {
				n.Value = text
			} else {
				n.Value = strings.TrimSpace(text)
			}
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}

	return root, nil
}

// EncodeXML renders the tree as XML. A non-empty indent puts every child
// element on its own line.
func EncodeXML(n *Node, indent string) []byte {
	var b strings.Builder
	writeXML(&b, n, "", indent)
	return []byte(b.String())
}

func writeXML(b *strings.Builder, n *Node, prefix, indent string) {
	b.WriteString(prefix)
	b.WriteByte('<')
	b.WriteString(n.Name)
	b.WriteByte('>')

	if len(n.Children) == 0 {
		_ = xml.EscapeText(b, []byte(n.Value))
	} else {
		for _, c := range n.Children {
			if indent != "" {
				b.WriteByte('\n')
			}
			writeXML(b, c, prefix+indent, indent)
		}
		if indent != "" {
			b.WriteByte('\n')
			b.WriteString(prefix)
		}
	}

	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}
