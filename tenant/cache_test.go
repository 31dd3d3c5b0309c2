package tenant_test

import (
	"context"
	"time"

	"github.com/icecave/beeline/name"
	"github.com/icecave/beeline/tenant"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// countingLocator wraps another locator and counts lookups per hostname.
type countingLocator struct {
	Inner tenant.Locator
	Calls map[string]int
}

func (locator *countingLocator) Locate(ctx context.Context, host name.Hostname) *tenant.Config {
	if locator.Calls == nil {
		locator.Calls = map[string]int{}
	}
	locator.Calls[host.Key]++

	return locator.Inner.Locate(ctx, host)
}

var _ = Describe("Cache", func() {
	var (
		inner   *countingLocator
		subject *tenant.Cache
	)

	config := func(domain string) *tenant.Config {
		return &tenant.Config{
			Domain: domain,
			SlugToPage: map[string]string{
				"guide": "abcd1234abcd1234abcd1234abcd1234",
			},
		}
	}

	BeforeEach(func() {
		inner = &countingLocator{
			Inner: tenant.StaticLocator{}.
				With(config("docs.example.com")).
				With(config("blog.example.com")).
				With(config("wiki.example.com")),
		}

		subject = &tenant.Cache{
			Inner:   inner,
			TTL:     time.Minute,
			MaxSize: 2,
		}
	})

	Describe("Locate", func() {
		It("resolves tenants through the inner locator", func() {
			result := subject.Locate(
				context.Background(),
				name.Parse("docs.example.com"),
			)
			Expect(result).ShouldNot(BeNil())
			Expect(result.Domain).To(Equal("docs.example.com"))
		})

		It("serves repeat lookups from the cache", func() {
			subject.Locate(context.Background(), name.Parse("docs.example.com"))
			subject.Locate(context.Background(), name.Parse("docs.example.com"))

			Expect(inner.Calls["docs.example.com"]).To(Equal(1))
		})

		It("returns cached configurations with derived fields computed", func() {
			subject.Locate(context.Background(), name.Parse("docs.example.com"))

			result := subject.Locate(
				context.Background(),
				name.Parse("docs.example.com"),
			)
			Expect(result.PageToSlug).To(HaveKeyWithValue(
				"abcd1234abcd1234abcd1234abcd1234",
				"guide",
			))
			Expect(result.Slugs).ShouldNot(BeEmpty())
			Expect(result.Pages).ShouldNot(BeEmpty())
		})

		It("shares cache entries between www and non-www lookups", func() {
			subject.Locate(context.Background(), name.Parse("docs.example.com"))
			subject.Locate(context.Background(), name.Parse("www.docs.example.com"))

			Expect(inner.Calls["docs.example.com"]).To(Equal(1))
		})

		It("does not cache failed resolutions", func() {
			subject.Locate(context.Background(), name.Parse("unknown.example.com"))
			subject.Locate(context.Background(), name.Parse("unknown.example.com"))

			Expect(inner.Calls["unknown.example.com"]).To(Equal(2))
		})

		It("expires entries after the TTL", func() {
			subject.TTL = time.Nanosecond

			subject.Locate(context.Background(), name.Parse("docs.example.com"))
			time.Sleep(time.Millisecond)
			subject.Locate(context.Background(), name.Parse("docs.example.com"))

			Expect(inner.Calls["docs.example.com"]).To(Equal(2))
		})

		It("evicts the least-recently-used entry under capacity pressure", func() {
			subject.Locate(context.Background(), name.Parse("docs.example.com"))
			subject.Locate(context.Background(), name.Parse("blog.example.com"))

			// Touch "docs" so that "blog" is the least recently used.
			subject.Locate(context.Background(), name.Parse("docs.example.com"))

			subject.Locate(context.Background(), name.Parse("wiki.example.com"))

			subject.Locate(context.Background(), name.Parse("docs.example.com"))
			subject.Locate(context.Background(), name.Parse("blog.example.com"))

			Expect(inner.Calls["docs.example.com"]).To(Equal(1))
			Expect(inner.Calls["blog.example.com"]).To(Equal(2))
		})
	})

	Describe("Clear", func() {
		It("invalidates all cached entries", func() {
			subject.Locate(context.Background(), name.Parse("docs.example.com"))
			subject.Clear()
			subject.Locate(context.Background(), name.Parse("docs.example.com"))

			Expect(inner.Calls["docs.example.com"]).To(Equal(2))
		})
	})
})
