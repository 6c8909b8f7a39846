package openapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/huangsam/graveyard/schema"
	"gopkg.in/yaml.v3"
)

// ErrNoPaths means the document has no paths section to remove from.
var ErrNoPaths = errors.New("invalid OpenAPI spec: no paths found")

// RemoveEndpoints deletes the given operations from the spec at specPath and
// writes the result to outputPath, or back to specPath when outputPath is
// empty. A path entry is dropped entirely once none of its recognized
// operations remain. The edit happens on the raw document so unrelated
// content, key order and comments survive, and JSON input stays JSON.
// Returns the number of operations actually removed.
func RemoveEndpoints(specPath string, endpoints []schema.EndpointTemplate, outputPath string) (int, error) {
	if outputPath == "" {
		outputPath = specPath
	}
	data, err := os.ReadFile(specPath)
	if err != nil {
		return 0, fmt.Errorf("cannot read spec %s: %w", specPath, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("cannot parse spec %s: %w", specPath, err)
	}
	root := documentRoot(&doc)
	pathsNode := mappingValue(root, "paths")
	if pathsNode == nil || pathsNode.Kind != yaml.MappingNode {
		return 0, ErrNoPaths
	}

	byPath := groupMethodsByPath(endpoints)
	removed := 0
	kept := make([]*yaml.Node, 0, len(pathsNode.Content))
	for i := 0; i+1 < len(pathsNode.Content); i += 2 {
		keyNode, itemNode := pathsNode.Content[i], pathsNode.Content[i+1]
		methods, targeted := byPath[keyNode.Value]
		if targeted && itemNode.Kind == yaml.MappingNode {
			removed += removeOperations(itemNode, methods)
			if !hasOperations(itemNode) {
				continue
			}
		}
		kept = append(kept, keyNode, itemNode)
	}
	pathsNode.Content = kept

	out, err := encodeSpec(root, outputPath)
	if err != nil {
		return 0, fmt.Errorf("cannot encode spec: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return 0, fmt.Errorf("cannot write spec %s: %w", outputPath, err)
	}
	return removed, nil
}

// groupMethodsByPath groups the operations to remove by path, with methods
// lower-cased to match OpenAPI operation keys.
func groupMethodsByPath(endpoints []schema.EndpointTemplate) map[string][]string {
	byPath := make(map[string][]string, len(endpoints))
	for _, ep := range endpoints {
		byPath[ep.Path] = append(byPath[ep.Path], strings.ToLower(ep.Method))
	}
	return byPath
}

// removeOperations deletes the listed operation keys from a path item node
// and returns how many were present.
func removeOperations(item *yaml.Node, methods []string) int {
	removed := 0
	kept := make([]*yaml.Node, 0, len(item.Content))
	for i := 0; i+1 < len(item.Content); i += 2 {
		if slices.Contains(methods, item.Content[i].Value) {
			removed++
			continue
		}
		kept = append(kept, item.Content[i], item.Content[i+1])
	}
	item.Content = kept
	return removed
}

// hasOperations reports whether a path item node still carries any
// recognized operation key.
func hasOperations(item *yaml.Node) bool {
	for i := 0; i+1 < len(item.Content); i += 2 {
		key := item.Content[i].Value
		for _, method := range schema.HTTPMethods {
			if key == strings.ToLower(method) {
				return true
			}
		}
	}
	return false
}

// documentRoot unwraps the document node produced by decoding into yaml.Node.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}

// mappingValue returns the value node for key within a mapping node, or nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// encodeSpec serializes the document in the dialect implied by the output
// file extension.
func encodeSpec(root *yaml.Node, outputPath string) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(outputPath), ".json") {
		var generic any
		if err := root.Decode(&generic); err != nil {
			return nil, err
		}
		blob, err := json.MarshalIndent(generic, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(blob, '\n'), nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
