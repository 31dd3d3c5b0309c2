package statuspage_test

import (
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/icecave/beeline/statuspage"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("TemplateWriter", func() {
	var (
		subject  *statuspage.TemplateWriter
		recorder *httptest.ResponseRecorder
		request  *http.Request
	)

	BeforeEach(func() {
		subject = &statuspage.TemplateWriter{}
		recorder = httptest.NewRecorder()
		request = httptest.NewRequest("GET", "http://docs.example.com/", nil)
	})

	Describe("Write", func() {
		It("renders an HTML page when the client accepts HTML", func() {
			request.Header.Set("Accept", "text/html")

			size, err := subject.Write(recorder, request, http.StatusBadGateway)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(size).To(BeNumerically(">", 0))

			Expect(recorder.Code).To(Equal(http.StatusBadGateway))
			Expect(recorder.Header().Get("Content-Type")).To(Equal("text/html; charset=utf-8"))
			Expect(recorder.Body.String()).To(ContainSubstring("502"))
		})

		It("renders a plain-text page otherwise", func() {
			_, err := subject.Write(recorder, request, http.StatusInternalServerError)
			Expect(err).ShouldNot(HaveOccurred())

			Expect(recorder.Header().Get("Content-Type")).To(Equal("text/plain; charset=utf-8"))
			Expect(recorder.Body.String()).To(ContainSubstring("500"))
		})
	})

	Describe("WriteError", func() {
		It("uses the status code and message from a statuspage.Error", func() {
			statusCode, _, err := subject.WriteError(
				recorder,
				request,
				statuspage.Error{
					Inner:      errors.New("<inner>"),
					StatusCode: http.StatusInternalServerError,
					Message:    "No tenant is configured for this domain.",
				},
			)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(statusCode).To(Equal(http.StatusInternalServerError))
			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			Expect(recorder.Body.String()).To(ContainSubstring("No tenant is configured for this domain."))
		})

		It("falls back to 500 for unrecognized errors", func() {
			statusCode, _, err := subject.WriteError(
				recorder,
				request,
				errors.New("<anything>"),
			)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(statusCode).To(Equal(http.StatusInternalServerError))
			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
