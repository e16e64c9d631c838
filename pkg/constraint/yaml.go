package constraint

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type document struct {
	Properties []propertyNode `yaml:"properties"`
}

type propertyNode struct {
	Name        string    `yaml:"name"`
	Groups      []string  `yaml:"groups"`
	Constraints yaml.Node `yaml:"constraints"`
}

// LoadYAML reads property declarations from r.
func LoadYAML(r io.Reader) ([]Property, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrDeclaration, err)
	}

	props := make([]Property, 0, len(doc.Properties))
	for i, node := range doc.Properties {
		p, err := node.property()
		if err != nil {
			return nil, fmt.Errorf("%w: properties[%d]: %v", ErrDeclaration, i, err)
		}
		props = append(props, p)
	}
	return props, nil
}

// ParseYAML parses property declarations from b.
func ParseYAML(b []byte) ([]Property, error) {
	return LoadYAML(bytes.NewReader(b))
}

// property keeps the constraint order of the mapping as written.
func (n propertyNode) property() (Property, error) {
	if n.Name == "" {
		return Property{}, errors.New("missing name")
	}
	p := NewProperty(n.Name).InGroups(n.Groups...)

	switch n.Constraints.Kind {
	case 0:
		return p, nil
	case yaml.MappingNode:
	default:
		return Property{}, fmt.Errorf("%s: constraints must be a mapping", n.Name)
	}

	content := n.Constraints.Content
	for i := 0; i+1 < len(content); i += 2 {
		key, val := content[i], content[i+1]
		kind := Kind(key.Value)
		if p.Constraints.Has(kind) {
			return Property{}, fmt.Errorf("%s: line %d: duplicate constraint %q", n.Name, key.Line, kind)
		}
		var value any
		if err := val.Decode(&value); err != nil {
			return Property{}, fmt.Errorf("%s: line %d: %v", n.Name, val.Line, err)
		}
		p.Constraints = append(p.Constraints, Constraint{Kind: kind, Value: value})
	}
	return p, nil
}
