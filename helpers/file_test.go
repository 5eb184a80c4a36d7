package helpers_test

import (
	"errors"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/influxdb-warner/helpers"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LoadYamlFile", func() {
	type conf struct {
		Level string `yaml:"level"`
	}

	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "config.yml")
	})

	It("decodes over the given defaults", func() {
		Expect(os.WriteFile(path, []byte("level: debug\n"), 0600)).To(Succeed())
		c := conf{Level: "info"}
		Expect(helpers.LoadYamlFile(path, &c)).To(Succeed())
		Expect(c.Level).To(Equal("debug"))
	})

	It("keeps the defaults without a path", func() {
		c := conf{Level: "info"}
		Expect(helpers.LoadYamlFile("", &c)).To(Succeed())
		Expect(c.Level).To(Equal("info"))
	})

	It("rejects unknown fields", func() {
		Expect(os.WriteFile(path, []byte("levle: debug\n"), 0600)).To(Succeed())
		err := helpers.LoadYamlFile(path, &conf{})
		Expect(errors.Is(err, helpers.ErrReadYaml)).To(BeTrue())
	})

	It("fails on a missing file", func() {
		err := helpers.LoadYamlFile("/not/there.yml", &conf{})
		Expect(errors.Is(err, helpers.ErrReadYaml)).To(BeTrue())
	})
})
