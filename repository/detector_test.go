package repository_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/testid/repository"
	"github.com/viant/testid/transform"
)

func writeFile(t *testing.T, location, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
	require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
}

func TestDetector_DetectProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{"name": "storefront", "version": "1.0.0"}`)
	component := filepath.Join(root, "src", "components", "Card.jsx")
	writeFile(t, component, `export const Card = () => <div />;`)

	project, err := repository.New().DetectProject(component)
	require.NoError(t, err)
	assert.Equal(t, root, project.RootPath)
	assert.Equal(t, "package.json", project.Marker)
	assert.Equal(t, "storefront", project.Name)
	assert.Equal(t, "src/components/Card.jsx", project.RelativePath)

	project, err = repository.New().DetectProject(filepath.Join(root, "src"))
	require.NoError(t, err)
	assert.Equal(t, root, project.RootPath)
	assert.Equal(t, "src", project.RelativePath)

	_, err = repository.New().DetectProject(filepath.Join(root, "missing.jsx"))
	assert.Error(t, err)
}

func TestPluginOptions(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		expect    string
		fromFile  string
		noOptions bool
	}{
		{
			name: "swcrc plugin",
			files: map[string]string{
				".swcrc": `{
  "jsc": {
    "parser": {"syntax": "ecmascript", "jsx": true},
    "experimental": {
      "plugins": [
        ["@swc/plugin-styled-components", {"displayName": true}],
        ["swc-plugin-react-test-id", {"attributeName": "data-testid"}]
      ]
    }
  }
}`,
			},
			expect:   "data-testid",
			fromFile: ".swcrc",
		},
		{
			name: "package json key",
			files: map[string]string{
				"package.json": `{"name": "app", "testid": {"attributeName": "data-qa"}}`,
			},
			expect:   "data-qa",
			fromFile: "package.json",
		},
		{
			name: "swcrc without plugin falls back to package json",
			files: map[string]string{
				".swcrc":       `{"jsc": {"parser": {"syntax": "typescript", "tsx": true}}}`,
				"package.json": `{"name": "app", "testid": {"attributeName": "data-cy"}}`,
			},
			expect:   "data-cy",
			fromFile: "package.json",
		},
		{
			name: "malformed swcrc",
			files: map[string]string{
				".swcrc": `{"jsc": {`,
			},
			noOptions: true,
		},
		{
			name:      "nothing configured",
			files:     map[string]string{"package.json": `{"name": "app"}`},
			noOptions: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, filepath.Join(root, name), content)
			}
			options, from := repository.PluginOptions(&repository.Project{RootPath: root})
			if tt.noOptions {
				assert.Empty(t, options)
				assert.Empty(t, from)
				return
			}
			assert.Equal(t, filepath.Join(root, tt.fromFile), from)
			assert.Equal(t, tt.expect, transform.ParseConfig(options).AttributeName)
		})
	}
	options, from := repository.PluginOptions(nil)
	assert.Empty(t, options)
	assert.Empty(t, from)
}
