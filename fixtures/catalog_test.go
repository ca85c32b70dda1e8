package fixtures

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func touch(root string, names ...string) {
	for _, name := range names {
		path := filepath.Join(root, name)
		Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
		Expect(os.WriteFile(path, []byte("fixture"), 0o644)).To(Succeed())
	}
}

var _ = Describe("Discover", func() {
	var root string

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		touch(root,
			"manifests/general.toml",
			"manifests/absent-metadata.toml",
			"src/bin/noise.rs",
			"src/bin/blinky.rs",
			"traces/blinky-short.trace",
			"out/blinky.run",
		)
	})

	It("lists fixtures by kind with extension-stripped names", func() {
		c, err := Discover(root)
		Expect(err).NotTo(HaveOccurred())

		names := func(fs []Fixture) []string {
			var out []string
			for _, f := range fs {
				out = append(out, f.Name)
			}
			return out
		}
		Expect(names(c.Manifests)).To(Equal([]string{"absent-metadata", "general"}))
		Expect(names(c.Binaries)).To(Equal([]string{"blinky", "noise"}))
		Expect(names(c.Traces)).To(Equal([]string{"blinky-short"}))
	})

	It("orders fixtures lexicographically regardless of creation order", func() {
		touch(root, "src/bin/aaa.rs", "src/bin/zzz.rs")
		c, err := Discover(root)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Binaries[0].Name).To(Equal("aaa"))
		Expect(c.Binaries[len(c.Binaries)-1].Name).To(Equal("zzz"))
	})

	It("carries absolute artifact paths", func() {
		c, err := Discover(root)
		Expect(err).NotTo(HaveOccurred())
		for _, f := range c.Binaries {
			Expect(filepath.IsAbs(f.Path)).To(BeTrue())
		}
		Expect(c.ActiveManifestPath()).To(Equal(filepath.Join(c.Root, "Cargo.toml")))
	})

	It("finds manifests by name", func() {
		c, err := Discover(root)
		Expect(err).NotTo(HaveOccurred())

		general, ok := c.Manifest("general")
		Expect(ok).To(BeTrue())
		Expect(general.Kind).To(Equal(ManifestKind))

		_, ok = c.Manifest("nonexistent")
		Expect(ok).To(BeFalse())
	})

	It("fails when the root does not exist", func() {
		_, err := Discover(filepath.Join(root, "nope"))
		Expect(err).To(HaveOccurred())
	})

	It("returns empty suites for an empty tree", func() {
		empty := GinkgoT().TempDir()
		c, err := Discover(empty)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Binaries).To(BeEmpty())
		Expect(c.Manifests).To(BeEmpty())
		Expect(c.Traces).To(BeEmpty())
	})
})
