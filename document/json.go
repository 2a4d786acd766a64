package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
	"github.com/tidwall/jsonc"
)

// ParseJSON reads a JSON document into a node tree. Comments and trailing
// commas are accepted. Object keys keep their document order, including
// repeated keys.
func ParseJSON(data []byte) (*Node, error) {
	dec := j.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDocument
	}
	if err != nil {
		return nil, fmt.Errorf("document: parsing json: %w", err)
	}
	if d, ok := tok.(j.Delim); !ok || d != '{' {
		return nil, ErrRootShape
	}

	tok, err = nextJSON(dec)
	if err != nil {
		return nil, err
	}
	name, ok := tok.(string)
	if !ok {
		return nil, ErrRootShape
	}

	root, err := parseJSONValue(dec, name)
	if err != nil {
		return nil, err
	}

	tok, err = nextJSON(dec)
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(j.Delim); !ok || d != '}' {
		return nil, ErrRootShape
	}

	return root, nil
}

func nextJSON(dec *j.Decoder) (any, error) {
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("document: parsing json: %w", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, fmt.Errorf("document: parsing json: %w", err)
	}

	return tok, nil
}

func parseJSONValue(dec *j.Decoder, name string) (*Node, error) {
	tok, err := nextJSON(dec)
	if err != nil {
		return nil, err
	}

	return jsonNode(dec, name, tok)
}

func jsonNode(dec *j.Decoder, name string, tok any) (*Node, error) {
	n := &Node{Name: name}

	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			for {
				t, err := nextJSON(dec)
				if err != nil {
					return nil, err
				}
				if d, ok := t.(j.Delim); ok && d == '}' {
					return n, nil
				}
				key, ok := t.(string)
				if !ok {
					return nil, fmt.Errorf("document: parsing json: unexpected token %v in object %q", t, name)
				}
				child, err := parseJSONValue(dec, key)
				if err != nil {
					return nil, err
				}
				n.Children = append(n.Children, child)
			}

		case '[':
			for {
				t, err := nextJSON(dec)
				if err != nil {
					return nil, err
				}
				if d, ok := t.(j.Delim); ok && d == ']' {
					return n, nil
				}
				elem, err := jsonNode(dec, ItemName, t)
				if err != nil {
					return nil, err
				}
				if d, ok := t.(j.Delim); ok && d == '{' && len(elem.Children) == 1 {
					elem = elem.Children[0]
				}
				n.Children = append(n.Children, elem)
			}

		default:
			return nil, fmt.Errorf("document: parsing json: unexpected delimiter %v", v)
		}

	case string:
		n.Value = v
	case j.Number:
		n.Value = v.String()
	case float64:
		n.Value = strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		n.Value = strconv.FormatBool(v)
	case nil:
	}

	return n, nil
}

// EncodeJSON renders the tree as compact JSON following the same shape rules
// as EncodeYAML.
func EncodeJSON(n *Node) ([]byte, error) {
	var b bytes.Buffer

	b.WriteByte('{')
	if err := writeJSONString(&b, n.Name); err != nil {
		return nil, err
	}
	b.WriteByte(':')
	if err := writeJSONValue(&b, n); err != nil {
		return nil, err
	}
	b.WriteByte('}')

	return b.Bytes(), nil
}

func writeJSONString(b *bytes.Buffer, s string) error {
	out, err := j.Marshal(s)
	if err != nil {
		return fmt.Errorf("document: encoding json: %w", err)
	}
	b.Write(out)

	return nil
}

func writeJSONValue(b *bytes.Buffer, n *Node) error {
	if len(n.Children) == 0 {
		return writeJSONString(b, n.Value)
	}

	distinct := distinctNames(n.Children)
	if distinct {
		b.WriteByte('{')
	} else {
		b.WriteByte('[')
	}

	for i, c := range n.Children {
		if i > 0 {
			b.WriteByte(',')
		}
		if !distinct {
			b.WriteByte('{')
		}
		if err := writeJSONString(b, c.Name); err != nil {
			return err
		}
		b.WriteByte(':')
		if err := writeJSONValue(b, c); err != nil {
			return err
		}
		if !distinct {
			b.WriteByte('}')
		}
	}

	if distinct {
		b.WriteByte('}')
	} else {
		b.WriteByte(']')
	}

	return nil
}
