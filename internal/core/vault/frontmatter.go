package vault

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// delimiter marks the start and end of a frontmatter block.
const delimiter = "---"

// errNotMapping marks a block whose document root is not a mapping. Such a
// block is treated the same as no frontmatter at all.
var errNotMapping = errors.New("document root is not a mapping")

// ParseResult is the outcome of parsing one file. Note is always populated
// when the file could be read; Warning carries a non-fatal diagnostic.
type ParseResult struct {
	Note    Note
	Warning string
}

// ParseFile reads path and extracts its frontmatter. A file whose frontmatter
// fails to parse still yields a note (with empty frontmatter) plus a warning;
// only a read failure returns an error.
func ParseFile(path string, lenient bool) (ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("read file: %w", err)
	}

	fm, warning := Extract(string(data), path, lenient)
	return ParseResult{Note: NewNote(path, fm), Warning: warning}, nil
}

// Extract locates the frontmatter block in content and parses it. It returns
// the parsed mapping (nil when no block is present) and an optional warning.
//
// A strict YAML parse is attempted first. When it fails and lenient is set,
// the block is run through the colon-repair pass and parsed again. Parse
// failures never propagate as errors: they degrade to an empty mapping plus a
// warning so one bad note cannot abort a scan. The path parameter is only
// used in warning text.
func Extract(content, path string, lenient bool) (*Mapping, string) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, delimiter) {
		return nil, ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 3 {
		return nil, ""
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, ""
	}

	block := strings.Join(lines[1:end], "\n")
	if strings.TrimSpace(block) == "" {
		return NewMapping(), ""
	}

	m, err := parseBlock(block)
	if err == nil {
		return m, ""
	}
	if errors.Is(err, errNotMapping) {
		return nil, ""
	}

	if !lenient {
		return NewMapping(), fmt.Sprintf("Failed to parse frontmatter in file %s: %v", path, err)
	}

	m, retryErr := parseBlock(RepairBlock(block))
	switch {
	case retryErr == nil:
		return m, fmt.Sprintf("Used lenient parsing for frontmatter in file %s due to: %v", path, err)
	case errors.Is(retryErr, errNotMapping):
		return nil, ""
	default:
		return NewMapping(), fmt.Sprintf("Failed to parse frontmatter in file %s even with lenient parsing: %v", path, err)
	}
}

// parseBlock runs the strict YAML parse of a frontmatter block and converts
// the document into an ordered Mapping. Non-string keys are dropped.
func parseBlock(block string) (*Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return NewMapping(), nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return NewMapping(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, errNotMapping
	}

	return mappingFromNode(root), nil
}

func mappingFromNode(n *yaml.Node) *Mapping {
	m := NewMapping()
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode || k.Tag != "!!str" {
			continue
		}
		m.Set(k.Value, valueFromNode(v))
	}
	return m
}

func valueFromNode(n *yaml.Node) Value {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return valueFromNode(n.Alias)
	}

	switch n.Kind {
	case yaml.ScalarNode:
		return scalarFromNode(n)
	case yaml.SequenceNode:
		elems := make([]Value, len(n.Content))
		for i, c := range n.Content {
			elems[i] = valueFromNode(c)
		}
		return SequenceValue(elems...)
	case yaml.MappingNode:
		return MappingValue(mappingFromNode(n))
	default:
		return NullValue()
	}
}

func scalarFromNode(n *yaml.Node) Value {
	switch n.Tag {
	case "!!null":
		return NullValue()
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(n.Value))
		if err != nil {
			return StringValue(n.Value)
		}
		return BoolValue(b)
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return StringValue(n.Value)
		}
		return IntValue(i)
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return StringValue(n.Value)
		}
		return floatValueRaw(n.Value, f)
	default:
		return StringValue(n.Value)
	}
}
