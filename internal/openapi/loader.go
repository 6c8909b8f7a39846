// Package openapi reads and rewrites OpenAPI documents. Endpoint extraction
// runs a structured parse first, which resolves references and converts
// Swagger 2.0 input, and falls back to a permissive raw-document walk for
// specs that fail strict validation.
package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/schema"
	"gopkg.in/yaml.v3"
)

// LoadEndpoints extracts one endpoint template per operation declared in the
// spec at specPath. Paths are emitted in lexicographic order, operations in
// canonical method order. A spec without a paths section yields an empty
// slice rather than an error.
func LoadEndpoints(specPath string) ([]schema.EndpointTemplate, error) {
	data, err := os.ReadFile(specPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read spec %s: %w", specPath, err)
	}
	templates, err := loadStructured(specPath, data)
	if err == nil {
		return templates, nil
	}
	contract.LogWarn("advanced spec parsing failed, using fallback", err)
	return loadRaw(data)
}

// loadStructured parses and validates the document with kin-openapi,
// converting Swagger 2.0 input to OpenAPI 3 first.
func loadStructured(specPath string, data []byte) ([]schema.EndpointTemplate, error) {
	var doc *openapi3.T
	var err error
	if isSwagger2(data) {
		doc, err = convertSwagger2(data)
	} else {
		loader := openapi3.NewLoader()
		loader.IsExternalRefsAllowed = true
		doc, err = loader.LoadFromFile(specPath)
	}
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, err
	}
	if doc.Paths == nil {
		return []schema.EndpointTemplate{}, nil
	}
	pathItems := doc.Paths.Map()
	templates := make([]schema.EndpointTemplate, 0, len(pathItems))
	for _, path := range slices.Sorted(maps.Keys(pathItems)) {
		item := pathItems[path]
		if item == nil {
			continue
		}
		for _, method := range schema.HTTPMethods {
			if item.GetOperation(method) != nil {
				templates = append(templates, schema.EndpointTemplate{Method: method, Path: path})
			}
		}
	}
	return templates, nil
}

// loadRaw walks the document as generic YAML, tolerating specs that fail
// strict validation. Path items that are not mappings are skipped.
func loadRaw(data []byte) ([]schema.EndpointTemplate, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot parse spec: %w", err)
	}
	pathItems, ok := doc["paths"].(map[string]any)
	if !ok {
		return []schema.EndpointTemplate{}, nil
	}
	templates := make([]schema.EndpointTemplate, 0, len(pathItems))
	for _, path := range slices.Sorted(maps.Keys(pathItems)) {
		item, ok := pathItems[path].(map[string]any)
		if !ok {
			continue
		}
		for _, method := range schema.HTTPMethods {
			if _, ok := item[strings.ToLower(method)]; ok {
				templates = append(templates, schema.EndpointTemplate{Method: method, Path: path})
			}
		}
	}
	return templates, nil
}

// isSwagger2 reports whether the document declares the Swagger 2.0 version.
func isSwagger2(data []byte) bool {
	var probe struct {
		Swagger string `yaml:"swagger"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Swagger == "2.0"
}

// convertSwagger2 upgrades a Swagger 2.0 document to OpenAPI 3. The YAML
// bytes are round-tripped through JSON because openapi2 only decodes JSON.
func convertSwagger2(data []byte) (*openapi3.T, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	blob, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var doc2 openapi2.T
	if err := json.Unmarshal(blob, &doc2); err != nil {
		return nil, err
	}
	return openapi2conv.ToV3(&doc2)
}
