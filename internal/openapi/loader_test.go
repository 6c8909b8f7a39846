package openapi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/graveyard/schema"
)

const petstoreSpec = `openapi: 3.0.0
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: OK
    post:
      summary: Create a pet
      responses:
        "201":
          description: Created
  /pets/{petId}:
    get:
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: OK
    delete:
      responses:
        "204":
          description: Deleted
`

const swagger2Spec = `swagger: "2.0"
info:
  title: Legacy
  version: "1.0"
paths:
  /legacy/items:
    get:
      responses:
        "200":
          description: OK
    put:
      responses:
        "200":
          description: OK
`

const ordersJSONSpec = `{
  "openapi": "3.0.0",
  "info": {"title": "Orders", "version": "1.0.0"},
  "paths": {
    "/orders": {
      "get": {"responses": {"200": {"description": "OK"}}},
      "post": {"responses": {"201": {"description": "Created"}}}
    }
  }
}
`

// invalidSpec fails strict validation (info.version and responses missing)
// but still carries a recognizable paths section.
const invalidSpec = `openapi: 3.0.0
info:
  title: Broken
paths:
  /things:
    get: {}
    brew: {}
  /misc: not a path item
`

// writeSpec drops spec content into a temp dir and returns its path.
func writeSpec(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadEndpoints tests template extraction across spec dialects.
func TestLoadEndpoints(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    []schema.EndpointTemplate
	}{
		{
			name:    "openapi 3 yaml", // structured parse, paths sorted, methods in canonical order
			file:    "openapi.yaml",
			content: petstoreSpec,
			want: []schema.EndpointTemplate{
				{Method: "GET", Path: "/pets"},
				{Method: "POST", Path: "/pets"},
				{Method: "GET", Path: "/pets/{petId}"},
				{Method: "DELETE", Path: "/pets/{petId}"},
			},
		},
		{
			name:    "swagger 2 yaml", // converted to OpenAPI 3 before extraction
			file:    "swagger.yaml",
			content: swagger2Spec,
			want: []schema.EndpointTemplate{
				{Method: "GET", Path: "/legacy/items"},
				{Method: "PUT", Path: "/legacy/items"},
			},
		},
		{
			name:    "openapi 3 json",
			file:    "openapi.json",
			content: ordersJSONSpec,
			want: []schema.EndpointTemplate{
				{Method: "GET", Path: "/orders"},
				{Method: "POST", Path: "/orders"},
			},
		},
		{
			name:    "invalid spec uses fallback", // unknown operation keys and scalar path items skipped
			file:    "broken.yaml",
			content: invalidSpec,
			want: []schema.EndpointTemplate{
				{Method: "GET", Path: "/things"},
			},
		},
		{
			name:    "no paths section",
			file:    "empty.yaml",
			content: "openapi: 3.0.0\ninfo:\n  title: Empty\n  version: 1.0.0\n",
			want:    []schema.EndpointTemplate{},
		},
		{
			name:    "empty file",
			file:    "blank.yaml",
			content: "",
			want:    []schema.EndpointTemplate{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSpec(t, tc.file, tc.content)
			templates, err := LoadEndpoints(path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, templates)
		})
	}
}

func TestLoadEndpointsErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadEndpoints(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("unparsable content", func(t *testing.T) {
		path := writeSpec(t, "garbage.yaml", "paths: [unclosed\n")
		_, err := LoadEndpoints(path)
		assert.Error(t, err)
	})
}

func TestIsSwagger2(t *testing.T) {
	assert.True(t, isSwagger2([]byte(swagger2Spec)))
	assert.False(t, isSwagger2([]byte(petstoreSpec)))
	assert.False(t, isSwagger2([]byte(`swagger: "3.0"`)))
	assert.False(t, isSwagger2([]byte("not: [valid")))
}
