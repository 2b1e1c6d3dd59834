package integration

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/tidwall/gjson"

	"github.com/vinotek/catalog-builder/internal/builder"
	"github.com/vinotek/catalog-builder/internal/config"
	"github.com/vinotek/catalog-builder/internal/output"
	"github.com/vinotek/catalog-builder/test-integration/build/helpers"
)

var _ = Describe("Full Build Pass", Label("build"), func() {
	var (
		tempDir string
		distDir string
		summary *builder.Summary
	)

	// readDocument loads one emitted document and returns its raw JSON.
	readDocument := func(name string) string {
		data, err := os.ReadFile(filepath.Join(distDir, name))
		Expect(err).NotTo(HaveOccurred(), "document %s should exist", name)
		Expect(gjson.ValidBytes(data)).To(BeTrue(), "document %s should be valid JSON", name)
		return string(data)
	}

	Context("with a complete valid source tree", func() {
		BeforeEach(func() {
			tempDir = createTempDir("catalog-build-")
			distDir = filepath.Join(tempDir, "dist")

			configPath, err := helpers.WriteSourceTree(tempDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
			Expect(err).NotTo(HaveOccurred())

			summary, err = builder.Run(cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			cleanupTempDir(tempDir)
		})

		It("should write the complete document set", func() {
			expected := []string{
				output.IndexFile,
				output.DownloadsFile,
				output.AllComponentsFile,
				output.ComponentListFile,
				output.DefaultComponentFile,
				output.ImagefsFile,
				output.ExecuteGenericFile,
				output.ExecuteQualcommFile,
			}
			for typ := 1; typ <= 7; typ++ {
				expected = append(expected, output.ManifestFile(typ))
			}

			for _, name := range expected {
				_, err := os.Stat(filepath.Join(distDir, name))
				Expect(err).NotTo(HaveOccurred(), "expected %s to be written", name)
			}

			Expect(summary.Documents).To(Equal(len(expected)))
			Expect(summary.Components).To(Equal(5))
			Expect(summary.Containers).To(Equal(1))
		})

		It("should stamp every document with the shared envelope", func() {
			index := readDocument(output.IndexFile)
			Expect(gjson.Get(index, "code").Int()).To(Equal(int64(200)))
			Expect(gjson.Get(index, "msg").String()).To(Equal("Success"))

			timestamp := gjson.Get(index, "time").String()
			Expect(timestamp).To(MatchRegexp(`^[0-9]+$`), "time is a decimal-string Unix timestamp")

			// Every document of the run carries the same timestamp.
			downloads := readDocument(output.DownloadsFile)
			Expect(gjson.Get(downloads, "time").String()).To(Equal(timestamp))
			manifest := readDocument(output.ManifestFile(2))
			Expect(gjson.Get(manifest, "time").String()).To(Equal(timestamp))
		})

		It("should partition manifests by classification with rewritten URLs", func() {
			manifest := readDocument(output.ManifestFile(2))

			Expect(gjson.Get(manifest, "data.type").Int()).To(Equal(int64(2)))
			Expect(gjson.Get(manifest, "data.count").Int()).To(Equal(int64(2)))

			ids := gjson.Get(manifest, "data.components.#.id").Array()
			Expect(ids).To(HaveLen(2))
			Expect(ids[0].Int()).To(Equal(int64(9)), "entries are ordered by id descending")
			Expect(ids[1].Int()).To(Equal(int64(2)))

			entry := gjson.Get(manifest, "data.components.0")
			Expect(entry.Get("download_url").String()).To(
				Equal(helpers.CDNBaseURL + "/dxvk-2.5.tzst"),
				"download URLs are rewritten against the configured CDN base")
			Expect(entry.Get("logo").String()).To(Equal(helpers.LogoURL))
			Expect(entry.Get("is_ui").Int()).To(Equal(int64(1)))

			// Empty classifications still produce a manifest.
			empty := readDocument(output.ManifestFile(7))
			Expect(gjson.Get(empty, "data.count").Int()).To(BeZero())
			Expect(gjson.Get(empty, "data.components").IsArray()).To(BeTrue())
		})

		It("should index every classification with manifest URLs", func() {
			index := readDocument(output.IndexFile)

			categories := gjson.Get(index, "data.categories").Array()
			Expect(categories).To(HaveLen(7))
			Expect(gjson.Get(index, "data.total").Int()).To(Equal(int64(5)))

			first := categories[0]
			Expect(first.Get("type").Int()).To(Equal(int64(1)))
			Expect(first.Get("name").String()).To(Equal("GPU Driver"))
			Expect(first.Get("count").Int()).To(Equal(int64(1)))
			Expect(first.Get("manifest_url").String()).To(
				Equal(helpers.CDNBaseURL + "/manifest_1.json"))
		})

		It("should drop duplicate component ids with the first registration winning", func() {
			all := readDocument(output.AllComponentsFile)

			Expect(gjson.Get(all, "data.total").Int()).To(Equal(int64(5)))

			names := gjson.Get(all, "data.components.#.name").Array()
			var seen []string
			for _, n := range names {
				seen = append(seen, n.String())
			}
			Expect(seen).To(ContainElement("vkd3d-2.12"))
			Expect(seen).NotTo(ContainElement("vkd3d-duplicate"),
				"the override duplicate of a catalog id must be discarded")
		})

		It("should resolve the default component slots", func() {
			doc := readDocument(output.DefaultComponentFile)

			Expect(gjson.Get(doc, "data.dxvk.id").Int()).To(Equal(int64(2)))
			Expect(gjson.Get(doc, "data.vkd3d.name").String()).To(Equal("vkd3d-2.12"))
			Expect(gjson.Get(doc, "data.steam_client.is_steam").Int()).To(Equal(int64(1)))
			Expect(gjson.Get(doc, "data.translator").Raw).To(Equal("{}"),
				"the translator slot is a fixed empty placeholder")
		})

		It("should emit the execute documents per hardware variant", func() {
			generic := readDocument(output.ExecuteGenericFile)

			Expect(gjson.Get(generic, "data.container.name").String()).To(Equal("wine-9.0"))
			Expect(gjson.Get(generic, "data.container.sub_archive.target_dir").String()).To(Equal("share/gecko"))
			Expect(gjson.Get(generic, "data.execution.renderer").String()).To(Equal("wrapper"))
			Expect(gjson.Get(generic, "data.config.max_fps").Int()).To(Equal(int64(60)))
			Expect(gjson.Get(generic, "data.components.#.id").Array()).To(HaveLen(3))

			qualcomm := readDocument(output.ExecuteQualcommFile)
			Expect(gjson.Get(qualcomm, "data.execution.renderer").String()).To(Equal("turnip"))

			resolved := gjson.Get(qualcomm, "data.components.#.id").Array()
			Expect(resolved).To(HaveLen(2), "the unregistered id is dropped from the resolved list")

			configured := gjson.Get(qualcomm, "data.component_ids").Array()
			Expect(configured).To(HaveLen(3), "the configured id list is reproduced in full")
			Expect(configured[1].Int()).To(Equal(int64(999)))
		})

		It("should preserve the document key order", func() {
			generic := readDocument(output.ExecuteGenericFile)

			keys := []string{`"container"`, `"components"`, `"component_ids"`, `"execution"`, `"config"`}
			last := -1
			data := gjson.Get(generic, "data").Raw
			for _, key := range keys {
				pos := strings.Index(data, key)
				Expect(pos).To(BeNumerically(">", last), "key %s out of order", key)
				last = pos
			}
		})
	})

	Context("with an invalid source tree", func() {
		BeforeEach(func() {
			tempDir = createTempDir("catalog-build-invalid-")
			distDir = filepath.Join(tempDir, "dist")
		})

		AfterEach(func() {
			cleanupTempDir(tempDir)
		})

		It("should fail validation and write nothing", func() {
			configPath, err := helpers.WriteInvalidSourceTree(tempDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
			Expect(err).NotTo(HaveOccurred())

			_, err = builder.Run(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("validation failed"))

			_, statErr := os.Stat(distDir)
			Expect(os.IsNotExist(statErr)).To(BeTrue(), "no output may be produced by a failed build")
		})
	})
})
