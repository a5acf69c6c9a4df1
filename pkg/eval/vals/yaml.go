package vals

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// ToYAMLNode converts a value to a YAML node. Map entries keep their insertion
// order. URLs and colors become strings, and undefined becomes null.
func ToYAMLNode(v Value) *yaml.Node {
	switch v := v.(type) {
	case nil, Undefined, Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(v))}
	case Int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(v), 10)}
	case Float:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(float64(v))}
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(v)}
	case URL:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.String()}
	case Color:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Hex()}
	case *Vector:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.elems {
			n.Content = append(n.Content, ToYAMLNode(e))
		}
		return n
	case *Map:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for i, k := range v.keys {
			n.Content = append(n.Content, ToYAMLNode(k), ToYAMLNode(v.values[i]))
		}
		return n
	}
	return nil
}

func yamlFloat(f float64) string {
	switch s := formatFloat(f); s {
	case "inf":
		return ".inf"
	case "-inf":
		return "-.inf"
	case "nan":
		return ".nan"
	default:
		return s
	}
}

// FromYAMLNode converts a decoded YAML node to a value. It is the inverse of
// ToYAMLNode for values without URLs and colors.
func FromYAMLNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return FromYAMLNode(n.Content[0])
	case yaml.SequenceNode:
		vec := NewVector()
		for _, c := range n.Content {
			e, err := FromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			vec.Append(e)
		}
		return vec, nil
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := FromYAMLNode(n.Content[i])
			if err != nil {
				return nil, err
			}
			if !IsValidKey(k) {
				k = String(n.Content[i].Value)
			}
			v, err := FromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(k, v)
		}
		return m, nil
	case yaml.AliasNode:
		return FromYAMLNode(n.Alias)
	}
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		err := n.Decode(&b)
		return Bool(b), err
	case "!!int":
		var i int64
		err := n.Decode(&i)
		return Int(i), err
	case "!!float":
		var f float64
		err := n.Decode(&f)
		return Float(f), err
	}
	return String(n.Value), nil
}
