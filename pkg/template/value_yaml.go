package template

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML document into a Value. Mapping order is preserved
// via the yaml.Node representation. Scalar mapping keys are stringified;
// sequence or mapping keys are rejected.
func ParseYAML(data []byte) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Value{}, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return Null(), nil
	}
	return valueFromYAML(root.Content[0])
}

func valueFromYAML(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return valueFromYAML(node.Alias)
	case yaml.ScalarNode:
		return scalarFromYAML(node)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := valueFromYAML(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Array(items...), nil
	case yaml.MappingNode:
		members := make([]Member, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
				keyNode = keyNode.Alias
			}
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("template: line %d: mapping key must be a scalar", keyNode.Line)
			}
			val, err := valueFromYAML(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: keyNode.Value, Value: val})
		}
		return Object(members...), nil
	default:
		return Value{}, fmt.Errorf("template: unsupported YAML node kind %d", node.Kind)
	}
}

func scalarFromYAML(node *yaml.Node) (Value, error) {
	switch node.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("template: line %d: %w", node.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return Value{}, fmt.Errorf("template: line %d: %w", node.Line, err)
		}
		return Number(json.Number(strconv.FormatInt(i, 10))), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("template: line %d: %w", node.Line, err)
		}
		return Number(json.Number(strconv.FormatFloat(f, 'g', -1, 64))), nil
	default:
		return String(node.Value), nil
	}
}
