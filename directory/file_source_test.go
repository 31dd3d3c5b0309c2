package directory_test

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/icecave/beeline/directory"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("FileSource", func() {
	var (
		tempDir string
		subject *directory.FileSource
	)

	BeforeEach(func() {
		var err error
		tempDir, err = ioutil.TempDir("", "beeline-directory-test")
		Expect(err).ShouldNot(HaveOccurred())

		path := filepath.Join(tempDir, "tenants.toml")
		err = ioutil.WriteFile(path, []byte(`
[domains."docs.example.com"]
title = "Example Docs"
description = "Documentation for Example"
google-font = "Roboto"

[domains."docs.example.com".slugs]
guide = "abcd1234abcd1234abcd1234abcd1234"
about = "1234abcd1234abcd1234abcd1234abcd"

[domains."blog.example.com"]

[domains."blog.example.com".slugs]
hello = "ffffffffffffffffffffffffffffffff"
`), 0600)
		Expect(err).ShouldNot(HaveOccurred())

		subject = &directory.FileSource{Path: path}
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	Describe("Load", func() {
		It("loads every tenant in the file", func() {
			configs, err := subject.Load(context.Background())
			Expect(err).ShouldNot(HaveOccurred())
			Expect(configs).To(HaveLen(2))
		})

		It("maps the table key to the tenant domain", func() {
			configs, err := subject.Load(context.Background())
			Expect(err).ShouldNot(HaveOccurred())
			Expect(configs["docs.example.com"].Domain).To(Equal("docs.example.com"))
		})

		It("loads slug mappings and branding fields", func() {
			configs, err := subject.Load(context.Background())
			Expect(err).ShouldNot(HaveOccurred())

			config := configs["docs.example.com"]
			Expect(config.SlugToPage).To(HaveKeyWithValue("guide", "abcd1234abcd1234abcd1234abcd1234"))
			Expect(config.SlugToPage).To(HaveKeyWithValue("about", "1234abcd1234abcd1234abcd1234abcd"))
			Expect(config.Title).To(Equal("Example Docs"))
			Expect(config.Description).To(Equal("Documentation for Example"))
			Expect(config.GoogleFont).To(Equal("Roboto"))
			Expect(config.CustomScript).To(BeEmpty())
		})

		It("fails when the file does not exist", func() {
			subject.Path = filepath.Join(tempDir, "missing.toml")

			_, err := subject.Load(context.Background())
			Expect(err).To(HaveOccurred())
		})
	})
})
