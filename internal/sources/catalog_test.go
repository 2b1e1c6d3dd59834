package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinotek/catalog-builder/internal/registry"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// catalogXML wraps a JSON payload in the XML resource envelope, relying on
// chardata escaping the way the producer does.
const validCatalogXML = `<?xml version="1.0" encoding="utf-8"?>
<resources>
    <string name="app_name">component catalog</string>
    <string name="component_catalog">{&quot;components&quot;:[
        {&quot;id&quot;:1,&quot;name&quot;:&quot;turnip-24.3&quot;,&quot;type&quot;:1,&quot;version&quot;:&quot;24.3&quot;,&quot;version_code&quot;:2430,&quot;file_name&quot;:&quot;turnip-24.3.tzst&quot;,&quot;file_md5&quot;:&quot;AABBCCDDEEFF00112233445566778899&quot;,&quot;file_size&quot;:52428800,&quot;gpu_range&quot;:&quot;a6xx-a7xx&quot;,&quot;blurb&quot;:&quot;Adreno driver&quot;},
        {&quot;id&quot;:2,&quot;name&quot;:&quot;dxvk-2.4&quot;,&quot;type&quot;:2,&quot;version&quot;:&quot;2.4&quot;,&quot;version_code&quot;:240,&quot;file_name&quot;:&quot;dxvk-2.4.tzst&quot;,&quot;file_md5&quot;:&quot;00112233445566778899aabbccddeeff&quot;,&quot;file_size&quot;:&quot;10485760&quot;,&quot;is_steam&quot;:1}
    ]}</string>
</resources>`

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "catalog.xml", validCatalogXML)
	components, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, components, 2)

	first := components[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "turnip-24.3", first.Name)
	assert.Equal(t, registry.TypeGPUDriver, first.Type)
	assert.Equal(t, "52428800", first.FileSize, "numeric file_size must be coerced to a digit string")
	assert.Equal(t, "aabbccddeeff00112233445566778899", first.FileMD5, "digest must be lowercased")
	assert.Equal(t, "a6xx-a7xx", first.GPURange)

	second := components[1]
	assert.Equal(t, "10485760", second.FileSize, "string file_size passes through unchanged")
	assert.Equal(t, 1, second.IsSteam)
}

func TestLoadCatalogSkipsOutOfRangeTypes(t *testing.T) {
	t.Parallel()

	xml := `<resources>
<string name="component_catalog">{&quot;components&quot;:[
  {&quot;id&quot;:1,&quot;name&quot;:&quot;ok&quot;,&quot;type&quot;:3,&quot;file_name&quot;:&quot;ok.tzst&quot;,&quot;file_md5&quot;:&quot;00112233445566778899aabbccddeeff&quot;,&quot;file_size&quot;:1},
  {&quot;id&quot;:2,&quot;name&quot;:&quot;bogus&quot;,&quot;type&quot;:9,&quot;file_name&quot;:&quot;bogus.tzst&quot;,&quot;file_md5&quot;:&quot;00112233445566778899aabbccddeeff&quot;,&quot;file_size&quot;:1}
]}</string>
</resources>`

	components, err := LoadCatalog(writeFile(t, "catalog.xml", xml))
	require.NoError(t, err)
	require.Len(t, components, 1, "records with undefined classifications are skipped, not fatal")
	assert.Equal(t, "ok", components[0].Name)
}

func TestLoadCatalogErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "not xml",
			content: `{"components":[]}`,
			wantErr: "XML envelope",
		},
		{
			name:    "missing payload entry",
			content: `<resources><string name="app_name">x</string></resources>`,
			wantErr: `no "component_catalog" entry`,
		},
		{
			name:    "payload not json",
			content: `<resources><string name="component_catalog">not-json{{</string></resources>`,
			wantErr: "not valid JSON",
		},
		{
			name:    "payload missing components",
			content: `<resources><string name="component_catalog">{&quot;other&quot;:[]}</string></resources>`,
			wantErr: "no components array",
		},
		{
			name:    "components not an array",
			content: `<resources><string name="component_catalog">{&quot;components&quot;:{}}</string></resources>`,
			wantErr: "not an array",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadCatalog(writeFile(t, "catalog.xml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog file not found")
}
