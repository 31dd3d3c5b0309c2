package directory_test

import (
	"context"
	"errors"

	"github.com/icecave/beeline/directory"
	"github.com/icecave/beeline/tenant"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type staticSource map[string]*tenant.Config

func (source staticSource) Load(context.Context) (map[string]*tenant.Config, error) {
	return source, nil
}

type failingSource struct{ Err error }

func (source failingSource) Load(context.Context) (map[string]*tenant.Config, error) {
	return nil, source.Err
}

var _ = Describe("MultiSource", func() {
	Describe("Load", func() {
		It("merges tenants from all sources", func() {
			subject := directory.MultiSource{
				staticSource{"docs.example.com": {Domain: "docs.example.com"}},
				staticSource{"blog.example.com": {Domain: "blog.example.com"}},
			}

			configs, err := subject.Load(context.Background())
			Expect(err).ShouldNot(HaveOccurred())
			Expect(configs).To(HaveLen(2))
		})

		It("prefers later sources for duplicate domains", func() {
			subject := directory.MultiSource{
				staticSource{"docs.example.com": {Domain: "docs.example.com", Title: "first"}},
				staticSource{"docs.example.com": {Domain: "docs.example.com", Title: "second"}},
			}

			configs, err := subject.Load(context.Background())
			Expect(err).ShouldNot(HaveOccurred())
			Expect(configs["docs.example.com"].Title).To(Equal("second"))
		})

		It("aggregates source failures while keeping successful loads", func() {
			subject := directory.MultiSource{
				failingSource{Err: errors.New("<source failure>")},
				staticSource{"docs.example.com": {Domain: "docs.example.com"}},
			}

			configs, err := subject.Load(context.Background())
			Expect(err).To(MatchError(ContainSubstring("<source failure>")))
			Expect(configs).To(HaveKey("docs.example.com"))
		})
	})
})
