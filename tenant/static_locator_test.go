package tenant_test

import (
	"context"

	"github.com/icecave/beeline/name"
	"github.com/icecave/beeline/tenant"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("StaticLocator", func() {
	var subject tenant.StaticLocator

	BeforeEach(func() {
		subject = tenant.StaticLocator{}.With(&tenant.Config{
			Domain: "docs.example.com",
			SlugToPage: map[string]string{
				"guide": "abcd1234abcd1234abcd1234abcd1234",
			},
		})
	})

	Describe("Locate", func() {
		It("locates tenants by their canonical domain", func() {
			config := subject.Locate(
				context.Background(),
				name.Parse("docs.example.com"),
			)
			Expect(config).ShouldNot(BeNil())
			Expect(config.Domain).To(Equal("docs.example.com"))
		})

		It("locates tenants addressed with a www prefix", func() {
			config := subject.Locate(
				context.Background(),
				name.Parse("www.docs.example.com"),
			)
			Expect(config).ShouldNot(BeNil())
			Expect(config.Domain).To(Equal("docs.example.com"))
		})

		It("returns a snapshot with derived fields computed", func() {
			config := subject.Locate(
				context.Background(),
				name.Parse("docs.example.com"),
			)
			Expect(config.PageToSlug).To(HaveKeyWithValue(
				"abcd1234abcd1234abcd1234abcd1234",
				"guide",
			))
			Expect(config.Slugs).To(ConsistOf("guide"))
			Expect(config.Pages).To(ConsistOf("abcd1234abcd1234abcd1234abcd1234"))
		})

		It("returns nil for unknown domains", func() {
			config := subject.Locate(
				context.Background(),
				name.Parse("unknown.example.com"),
			)
			Expect(config).To(BeNil())
		})

		It("is case-sensitive after the www prefix is stripped", func() {
			config := subject.Locate(
				context.Background(),
				name.Parse("Docs.example.com"),
			)
			Expect(config).To(BeNil())
		})
	})
})
