package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// marshalJSON writes a yaml.Node tree as indented JSON, keeping the mapping
// key order of the node. Scalars are typed by their resolved YAML tag.
func marshalJSON(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNodeJSON(&buf, node); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("source: indenting json: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeNodeJSON(buf *bytes.Buffer, node *yaml.Node) error {
	node = resolveAlias(node)
	if node == nil {
		buf.WriteString("null")
		return nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeNodeJSON(buf, node.Content[0])

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(resolveAlias(node.Content[i]).Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeNodeJSON(buf, node.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNodeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		buf.Write(scalarJSON(node))
		return nil
	}
	return fmt.Errorf("source: unsupported yaml node kind %v", node.Kind)
}

// scalarJSON renders a scalar. Values whose YAML spelling is not valid JSON
// (0x1F, 1_000, .inf) are normalized; anything unrepresentable becomes a string.
func scalarJSON(node *yaml.Node) []byte {
	switch node.ShortTag() {
	case "!!null":
		return []byte("null")
	case "!!bool":
		if b, err := strconv.ParseBool(node.Value); err == nil {
			return []byte(strconv.FormatBool(b))
		}
	case "!!int":
		if i, err := strconv.ParseInt(strings.ReplaceAll(node.Value, "_", ""), 0, 64); err == nil {
			return []byte(strconv.FormatInt(i, 10))
		}
	case "!!float":
		if json.Valid([]byte(node.Value)) {
			return []byte(node.Value)
		}
		if f, err := strconv.ParseFloat(strings.ReplaceAll(node.Value, "_", ""), 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return []byte(strconv.FormatFloat(f, 'g', -1, 64))
		}
	}
	s, _ := json.Marshal(node.Value)
	return s
}
