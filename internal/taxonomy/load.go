package taxonomy

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension, falling back to sniffing.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

//go:embed data/email_logic.yaml
var defaultDocument []byte

// LoadDefault loads the taxonomy bundled with the binary.
func LoadDefault() (*Store, error) {
	return Load(bytes.NewReader(defaultDocument), FormatYAML)
}

func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open taxonomy: %w", err)
	}
	defer f.Close()
	return Load(f, FormatFromPath(path))
}

// Load parses and validates a whole document. Nothing is returned unless every
// node passes validation.
func Load(r io.Reader, format Format) (*Store, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	if format == FormatAuto {
		format = sniff(raw)
	}

	var doc any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, &MalformedError{Reason: "invalid json: " + err.Error()}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, &MalformedError{Reason: "invalid yaml: " + err.Error()}
		}
	default:
		return nil, fmt.Errorf("unsupported taxonomy format %q", format)
	}

	root, err := buildRoot(doc)
	if err != nil {
		return nil, err
	}
	return newStore(root), nil
}

func sniff(raw []byte) Format {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

func buildRoot(doc any) (*Node, error) {
	root := &Node{}
	var children any
	switch v := doc.(type) {
	case []any:
		children = v
	case map[string]any:
		// An object carrying an id is a single-domain document.
		if _, ok := v["id"]; ok {
			children = []any{v}
			break
		}
		c, ok := v["children"]
		if !ok {
			return nil, malformed(nil, "root must be an array of domains or an object with children")
		}
		children = c
		if label, ok := v["label"].(string); ok {
			root.Label = strings.TrimSpace(label)
		}
		meta, err := parseMetadata(nil, v)
		if err != nil {
			return nil, err
		}
		root.Metadata = meta
	case nil:
		return nil, malformed(nil, "document is empty")
	default:
		return nil, malformed(nil, "root must be an array of domains or an object with children, got %T", doc)
	}

	if err := attachChildren(root, children, nil, LevelDomain); err != nil {
		return nil, err
	}
	if len(root.Children) == 0 {
		return nil, malformed(nil, "taxonomy has no domains")
	}
	return root, nil
}

func attachChildren(parent *Node, raw any, path []string, level Level) error {
	if raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return malformed(path, "children must be an array, got %T", raw)
	}
	if len(list) == 0 {
		return nil
	}
	if !level.Valid() {
		return malformed(path, "nodes below the scenario level are not allowed")
	}

	parent.Children = make([]*Node, 0, len(list))
	parent.index = make(map[string]int, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return malformed(path, "%s #%d must be an object, got %T", level, i, item)
		}
		child, err := buildNode(obj, path, level, i)
		if err != nil {
			return err
		}
		if _, dup := parent.index[child.ID]; dup {
			return malformed(path, "duplicate sibling id %q", child.ID)
		}
		parent.index[child.ID] = len(parent.Children)
		parent.Children = append(parent.Children, child)
	}
	return nil
}

func buildNode(obj map[string]any, parentPath []string, level Level, pos int) (*Node, error) {
	id, err := requiredString(obj, "id")
	if err != nil {
		return nil, malformed(parentPath, "%s #%d: %v", level, pos, err)
	}
	path := append(clonePath(parentPath), id)
	label, err := requiredString(obj, "label")
	if err != nil {
		return nil, malformed(path, "%v", err)
	}
	meta, err := parseMetadata(path, obj)
	if err != nil {
		return nil, err
	}

	n := &Node{ID: id, Label: label, Metadata: meta}
	if err := attachChildren(n, obj["children"], path, level+1); err != nil {
		return nil, err
	}
	if !n.HasChildren() && level < LevelCategory {
		return nil, malformed(path, "%s has no children", level)
	}
	return n, nil
}

func requiredString(obj map[string]any, key string) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return "", fmt.Errorf("missing %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}
	return s, nil
}

var metadataFields = []string{"intent_focus", "tone_hint", "pressure", "context_hint"}

func parseMetadata(path []string, obj map[string]any) (*Metadata, error) {
	rawMeta, hasMeta := obj["meta"]
	rawMetadata, hasMetadata := obj["metadata"]
	if hasMeta && hasMetadata {
		return nil, malformed(path, "both meta and metadata are set")
	}
	raw := rawMeta
	if hasMetadata {
		raw = rawMetadata
	}
	if raw == nil {
		return nil, nil
	}
	fields, ok := raw.(map[string]any)
	if !ok {
		return nil, malformed(path, "metadata must be an object, got %T", raw)
	}

	values := make(map[string]string, len(metadataFields))
	for _, key := range metadataFields {
		v, ok := fields[key]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, malformed(path, "metadata.%s must be a string, got %T", key, v)
		}
		values[key] = strings.TrimSpace(s)
	}

	meta := &Metadata{
		IntentFocus: values["intent_focus"],
		ToneHint:    values["tone_hint"],
		ContextHint: values["context_hint"],
	}
	if p := values["pressure"]; p != "" {
		pressure, err := ParsePressure(p)
		if err != nil {
			return nil, malformed(path, "%v", err)
		}
		meta.Pressure = pressure
	}
	if meta.IsZero() {
		return nil, nil
	}
	return meta, nil
}
