package document

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrRootShape = errors.New("document: root must be a mapping with a single key")

// ParseYAML reads a YAML document into a node tree.
func ParseYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("document: parsing yaml: %w", err)
	}

	top := &doc
	if top.Kind == yaml.DocumentNode {
		if len(top.Content) == 0 {
			return nil, ErrEmptyDocument
		}
		top = top.Content[0]
	}
	if top.Kind == 0 {
		return nil, ErrEmptyDocument
	}

	top = derefYAML(top)
	if top.Kind != yaml.MappingNode || len(top.Content) != 2 {
		return nil, ErrRootShape
	}

	return fromYAML(top.Content[0].Value, top.Content[1]), nil
}

func derefYAML(v *yaml.Node) *yaml.Node {
	for v.Kind == yaml.AliasNode && v.Alias != nil {
		v = v.Alias
	}

	return v
}

func fromYAML(name string, v *yaml.Node) *Node {
	v = derefYAML(v)
	n := &Node{Name: name}

	switch v.Kind {
	case yaml.ScalarNode:
		if v.ShortTag() != "!!null" {
			n.Value = v.Value
		}

	case yaml.MappingNode:
		for i := 0; i+1 < len(v.Content); i += 2 {
			n.Children = append(n.Children, fromYAML(v.Content[i].Value, v.Content[i+1]))
		}

	case yaml.SequenceNode:
		for _, item := range v.Content {
			item = derefYAML(item)
			if item.Kind == yaml.MappingNode && len(item.Content) == 2 {
				n.Children = append(n.Children, fromYAML(item.Content[0].Value, item.Content[1]))
				continue
			}
			n.Children = append(n.Children, fromYAML(ItemName, item))
		}
	}

	return n
}

// EncodeYAML renders the tree as YAML. Children with distinct names become a
// mapping; repeated names force a sequence of single-key mappings so that
// document order and duplicates survive.
func EncodeYAML(n *Node) ([]byte, error) {
	root := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{yamlKey(n.Name), toYAML(n)},
	}

	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("document: encoding yaml: %w", err)
	}

	return out, nil
}

func yamlKey(name string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
}

func toYAML(n *Node) *yaml.Node {
	if len(n.Children) == 0 {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Value}
	}

	if distinctNames(n.Children) {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, c := range n.Children {
			m.Content = append(m.Content, yamlKey(c.Name), toYAML(c))
		}
		return m
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, c := range n.Children {
		seq.Content = append(seq.Content, &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: []*yaml.Node{yamlKey(c.Name), toYAML(c)},
		})
	}

	return seq
}

func distinctNames(children []*Node) bool {
	seen := make(map[string]struct{}, len(children))
	for _, c := range children {
		if _, ok := seen[c.Name]; ok {
			return false
		}
		seen[c.Name] = struct{}{}
	}

	return true
}
