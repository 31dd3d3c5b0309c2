package proxy_test

import (
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/icecave/beeline/proxy"
	"github.com/icecave/beeline/tenant"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Handler", func() {
	var (
		stub    *upstreamStub
		locator tenant.StaticLocator
		subject *proxy.Handler
	)

	serve := func(request *http.Request) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		subject.ServeHTTP(recorder, request)
		return recorder
	}

	BeforeEach(func() {
		stub = &upstreamStub{}

		locator = tenant.StaticLocator{}.With(&tenant.Config{
			Domain: "docs.example.com",
			SlugToPage: map[string]string{
				"guide": "abcd1234abcd1234abcd1234abcd1234",
				"about": "1234abcd1234abcd1234abcd1234abcd",
			},
			Title: "Example Docs",
		})

		subject = &proxy.Handler{
			Locator: locator,
			Forwarder: &proxy.Forwarder{
				Client: &http.Client{Transport: stub},
				Upstream: proxy.Upstream{
					Account:      "acme",
					Site:         "notion.site",
					PublicDomain: "www.notion.so",
					UserAgent:    "<upstream user agent>",
				},
			},
		}
	})

	It("fails requests for unknown domains without calling the upstream", func() {
		recorder := serve(httptest.NewRequest("GET", "http://unknown.example.com/guide", nil))

		Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		Expect(recorder.Body.String()).To(ContainSubstring("No tenant is configured for this domain."))
		Expect(stub.Requests).To(BeEmpty())
	})

	It("answers CORS preflight requests locally", func() {
		recorder := serve(httptest.NewRequest("OPTIONS", "http://docs.example.com/api/v3/loadPageChunk", nil))

		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(recorder.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		Expect(recorder.Header().Get("Access-Control-Allow-Methods")).To(Equal("GET, HEAD, POST, PUT, OPTIONS"))
		Expect(recorder.Header().Get("Access-Control-Allow-Headers")).To(Equal("Content-Type"))
		Expect(recorder.Body.Len()).To(BeZero())
		Expect(stub.Requests).To(BeEmpty())
	})

	It("synthesizes robots.txt from the tenant domain", func() {
		recorder := serve(httptest.NewRequest("GET", "http://docs.example.com/robots.txt", nil))

		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(recorder.Header().Get("Content-Type")).To(Equal("text/plain"))
		Expect(recorder.Body.String()).To(Equal("Sitemap: https://docs.example.com/sitemap.xml"))
		Expect(stub.Requests).To(BeEmpty())
	})

	It("synthesizes a sitemap with one entry per slug", func() {
		recorder := serve(httptest.NewRequest("GET", "http://docs.example.com/sitemap.xml", nil))

		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(recorder.Header().Get("Content-Type")).To(Equal("application/xml"))
		Expect(recorder.Body.String()).To(HavePrefix(`<?xml version="1.0" encoding="UTF-8"?>`))
		Expect(recorder.Body.String()).To(ContainSubstring("<url><loc>https://docs.example.com/guide</loc></url>"))
		Expect(recorder.Body.String()).To(ContainSubstring("<url><loc>https://docs.example.com/about</loc></url>"))
		Expect(stub.Requests).To(BeEmpty())
	})

	It("redirects slugs to their page-ID path", func() {
		recorder := serve(httptest.NewRequest("GET", "http://docs.example.com/guide", nil))

		Expect(recorder.Code).To(Equal(http.StatusMovedPermanently))
		Expect(recorder.Header().Get("Location")).To(Equal(
			"https://docs.example.com/abcd1234abcd1234abcd1234abcd1234",
		))
		Expect(stub.Requests).To(BeEmpty())
	})

	It("redirects unknown page IDs to the tenant root", func() {
		recorder := serve(httptest.NewRequest("GET", "http://docs.example.com/deadbeefdeadbeefdeadbeefdeadbeef", nil))

		Expect(recorder.Code).To(Equal(http.StatusMovedPermanently))
		Expect(recorder.Header().Get("Location")).To(Equal("https://docs.example.com"))
		Expect(stub.Requests).To(BeEmpty())
	})

	It("resolves tenants addressed with a www prefix", func() {
		recorder := serve(httptest.NewRequest("GET", "http://www.docs.example.com/guide", nil))

		Expect(recorder.Code).To(Equal(http.StatusMovedPermanently))
	})

	It("serves rewritten upstream scripts", func() {
		stub.Response = upstreamResponse(http.StatusOK, `connect("acme.notion.site")`)

		recorder := serve(httptest.NewRequest("GET", "http://docs.example.com/app-main.js", nil))

		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(recorder.Header().Get("Content-Type")).To(Equal("application/javascript"))
		Expect(recorder.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		Expect(recorder.Body.String()).To(Equal(`connect("docs.example.com")`))
	})

	It("forwards API responses with forced response headers", func() {
		stub.Response = upstreamResponse(http.StatusOK, `{"ok":true}`)

		recorder := serve(httptest.NewRequest("POST", "http://docs.example.com/api/v3/loadPageChunk", nil))

		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(recorder.Header().Get("Content-Type")).To(Equal("application/json"))
		Expect(recorder.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		Expect(recorder.Body.String()).To(Equal(`{"ok":true}`))
	})

	It("rewrites HTML responses before returning them", func() {
		stub.Response = upstreamResponse(
			http.StatusOK,
			`<html><head><title>Upstream</title></head><body><div id="notion-app"></div></body></html>`,
		)

		recorder := serve(httptest.NewRequest("GET", "http://docs.example.com/abcd1234abcd1234abcd1234abcd1234", nil))

		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(recorder.Body.String()).To(ContainSubstring("<title>Example Docs</title>"))
		Expect(recorder.Body.String()).To(ContainSubstring("const SLUG_TO_PAGE"))
	})

	It("strips script-blocking security headers from HTML responses", func() {
		response := upstreamResponse(http.StatusOK, `<html><head></head><body></body></html>`)
		response.Header.Set("Content-Security-Policy", "script-src 'self'")
		response.Header.Set("X-Content-Security-Policy", "script-src 'self'")
		response.Header.Set("X-Powered-By", "upstream")
		stub.Response = response

		recorder := serve(httptest.NewRequest("GET", "http://docs.example.com/", nil))

		Expect(recorder.Header().Get("Content-Security-Policy")).To(BeEmpty())
		Expect(recorder.Header().Get("X-Content-Security-Policy")).To(BeEmpty())
		Expect(recorder.Header().Get("X-Powered-By")).To(Equal("upstream"))
	})

	It("passes the upstream HTML status through", func() {
		stub.Response = upstreamResponse(http.StatusNotFound, `<html><head></head><body></body></html>`)

		recorder := serve(httptest.NewRequest("GET", "http://docs.example.com/missing-page", nil))

		Expect(recorder.Code).To(Equal(http.StatusNotFound))
	})

	It("responds with an error page when the upstream cannot be reached", func() {
		stub.Err = errors.New("<transport failure>")

		recorder := serve(httptest.NewRequest("GET", "http://docs.example.com/", nil))

		Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		Expect(recorder.Body.String()).To(ContainSubstring("could not be reached"))
	})
})
