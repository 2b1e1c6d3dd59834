// Package helpers provides fixture builders for the catalog build
// integration tests.
package helpers

import (
	"fmt"
	"os"
	"path/filepath"
)

// catalogXML is a machine-generated catalog envelope carrying four components
// across four classifications.
const catalogXML = `<resources>
<string name="component_catalog">{&quot;components&quot;:[
  {&quot;id&quot;:1,&quot;name&quot;:&quot;turnip-24.3&quot;,&quot;type&quot;:1,&quot;version&quot;:&quot;24.3&quot;,&quot;version_code&quot;:2430,&quot;file_name&quot;:&quot;turnip-24.3.tzst&quot;,&quot;file_md5&quot;:&quot;00112233445566778899aabbccddeeff&quot;,&quot;file_size&quot;:52428800,&quot;gpu_range&quot;:&quot;Adreno 610-750&quot;},
  {&quot;id&quot;:2,&quot;name&quot;:&quot;dxvk-2.4&quot;,&quot;type&quot;:2,&quot;version&quot;:&quot;2.4&quot;,&quot;version_code&quot;:240,&quot;file_name&quot;:&quot;dxvk-2.4.tzst&quot;,&quot;file_md5&quot;:&quot;00112233445566778899aabbccddeeff&quot;,&quot;file_size&quot;:10485760},
  {&quot;id&quot;:3,&quot;name&quot;:&quot;vkd3d-2.12&quot;,&quot;type&quot;:3,&quot;version&quot;:&quot;2.12&quot;,&quot;version_code&quot;:212,&quot;file_name&quot;:&quot;vkd3d-2.12.tzst&quot;,&quot;file_md5&quot;:&quot;00112233445566778899aabbccddeeff&quot;,&quot;file_size&quot;:5242880},
  {&quot;id&quot;:4,&quot;name&quot;:&quot;steam-client-1.0&quot;,&quot;type&quot;:5,&quot;version&quot;:&quot;1.0&quot;,&quot;version_code&quot;:100,&quot;file_name&quot;:&quot;steam-client-1.0.tzst&quot;,&quot;file_md5&quot;:&quot;00112233445566778899aabbccddeeff&quot;,&quot;file_size&quot;:104857600,&quot;is_steam&quot;:1}
]}</string>
</resources>`

// overridesJSONC is a hand-maintained override file: one fresh component plus
// a duplicate of catalog id 3 that must be discarded.
const overridesJSONC = `[
    // dxvk hotfix shipped out of band
    {"id": 9, "name": "dxvk-2.5", "type": 2, "version": "2.5", "version_code": 250,
     "file_name": "dxvk-2.5.tzst", "file_md5": "ffeeddccbbaa99887766554433221100", "file_size": "11534336"},
    {"id": 3, "name": "vkd3d-duplicate", "type": 3, "version": "9.9", "version_code": 999,
     "file_name": "vkd3d-dup.tzst", "file_md5": "ffeeddccbbaa99887766554433221100", "file_size": "1"},
]`

const containersJSON = `[
    {"id": 1, "name": "wine-9.0", "version": "9.0", "version_code": 900,
     "framework": 1, "framework_type": 1,
     "file_name": "wine-9.0.tzst", "file_md5": "0123456789abcdef0123456789abcdef", "file_size": "314572800",
     "sub_archive": {"file_name": "gecko.tzst", "file_md5": "00112233445566778899aabbccddeeff",
                     "file_size": "20971520", "target_dir": "share/gecko"}}
]`

const imagefsJSON = `{"version": "1.6", "version_code": 160,
    "file_name": "imagefs-1.6.tzst", "file_md5": "00112233445566778899aabbccddeeff",
    "file_size": "2147483648", "download_url": "https://cdn.vinotek.dev/imagefs-1.6.tzst"}`

// defaultsJSON wires the default slots; the qualcomm profile names id 999,
// which is never registered.
const defaultsJSON = `{"dxvk": 2, "vkd3d": 3, "steam_client": 4, "container": 1,
    "generic": {"component_ids": [1, 2, 3], "execution": {"renderer": "wrapper"}},
    "qualcomm": {"component_ids": [1, 999, 2], "execution": {"renderer": "turnip"}}}`

const executionConfigJSON = `{"controller_rumble": true, "controller_gyro": false,
    "max_fps": 60, "audio_latency_ms": 40,
    "box64_presets": {"default": {"BOX64_DYNAREC_BIGBLOCK": "1"}},
    "env_vars": {"WINEESYNC": "1"}}`

// CDNBaseURL and LogoURL are the registry-wide URLs the fixtures configure.
const (
	CDNBaseURL = "https://cdn.vinotek.dev/components"
	LogoURL    = "https://cdn.vinotek.dev/static/component.png"
)

// WriteSourceTree writes a complete, valid source tree plus a matching config
// file into dir and returns the config file path. The output directory is
// dir/dist.
func WriteSourceTree(dir string) (string, error) {
	return writeSourceTree(dir, catalogXML)
}

// WriteInvalidSourceTree writes a source tree whose catalog carries a
// malformed checksum, so registry validation must reject the build.
func WriteInvalidSourceTree(dir string) (string, error) {
	broken := `<resources>
<string name="component_catalog">{&quot;components&quot;:[
  {&quot;id&quot;:1,&quot;name&quot;:&quot;turnip-24.3&quot;,&quot;type&quot;:1,&quot;version&quot;:&quot;24.3&quot;,&quot;version_code&quot;:2430,&quot;file_name&quot;:&quot;turnip-24.3.tzst&quot;,&quot;file_md5&quot;:&quot;not-a-checksum&quot;,&quot;file_size&quot;:52428800},
  {&quot;id&quot;:2,&quot;name&quot;:&quot;dxvk-2.4&quot;,&quot;type&quot;:2,&quot;version&quot;:&quot;2.4&quot;,&quot;version_code&quot;:240,&quot;file_name&quot;:&quot;dxvk-2.4.tzst&quot;,&quot;file_md5&quot;:&quot;00112233445566778899aabbccddeeff&quot;,&quot;file_size&quot;:10485760},
  {&quot;id&quot;:3,&quot;name&quot;:&quot;vkd3d-2.12&quot;,&quot;type&quot;:3,&quot;version&quot;:&quot;2.12&quot;,&quot;version_code&quot;:212,&quot;file_name&quot;:&quot;vkd3d-2.12.tzst&quot;,&quot;file_md5&quot;:&quot;00112233445566778899aabbccddeeff&quot;,&quot;file_size&quot;:5242880},
  {&quot;id&quot;:4,&quot;name&quot;:&quot;steam-client-1.0&quot;,&quot;type&quot;:5,&quot;version&quot;:&quot;1.0&quot;,&quot;version_code&quot;:100,&quot;file_name&quot;:&quot;steam-client-1.0.tzst&quot;,&quot;file_md5&quot;:&quot;00112233445566778899aabbccddeeff&quot;,&quot;file_size&quot;:104857600,&quot;is_steam&quot;:1}
]}</string>
</resources>`
	return writeSourceTree(dir, broken)
}

func writeSourceTree(dir, catalog string) (string, error) {
	files := map[string]string{
		"catalog.xml":           catalog,
		"overrides.jsonc":       overridesJSONC,
		"containers.json":       containersJSON,
		"imagefs.json":          imagefsJSON,
		"defaults.json":         defaultsJSON,
		"execution_config.json": executionConfigJSON,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			return "", fmt.Errorf("failed to write fixture %s: %w", name, err)
		}
	}

	configYAML := fmt.Sprintf(`cdnBaseUrl: %s
logoUrl: %s
sources:
  catalog: %s
  overrides: %s
  containers: %s
  imagefs: %s
  defaults: %s
  executionConfig: %s
output:
  dir: %s
`,
		CDNBaseURL,
		LogoURL,
		filepath.Join(dir, "catalog.xml"),
		filepath.Join(dir, "overrides.jsonc"),
		filepath.Join(dir, "containers.json"),
		filepath.Join(dir, "imagefs.json"),
		filepath.Join(dir, "defaults.json"),
		filepath.Join(dir, "execution_config.json"),
		filepath.Join(dir, "dist"),
	)

	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0600); err != nil {
		return "", fmt.Errorf("failed to write fixture config: %w", err)
	}

	return configPath, nil
}
