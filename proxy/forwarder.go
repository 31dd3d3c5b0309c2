package proxy

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/icecave/beeline/statuspage"
	"github.com/icecave/beeline/tenant"
)

// readOnlyEndpoint is the one upstream API endpoint that must never receive
// a request body; the upstream rejects or ignores bodies sent to it.
const readOnlyEndpoint = "/api/v3/getPublicPageData"

// Upstream describes the hosted content service that tenant pages are
// proxied from.
type Upstream struct {
	// Account is the account subdomain on the upstream site, shared by all
	// tenants.
	Account string

	// Site is the upstream site suffix, such as "notion.site".
	Site string

	// PublicDomain is the upstream's public web domain, such as
	// "www.notion.so".
	PublicDomain string

	// UserAgent is sent on forwarded API requests in place of the client's
	// own user agent.
	UserAgent string
}

// Host returns the hostname content is fetched from.
func (upstream Upstream) Host() string {
	return upstream.Account + "." + upstream.Site
}

// BrandDomain returns the upstream's public domain without its "www." label.
func (upstream Upstream) BrandDomain() string {
	return strings.TrimPrefix(upstream.PublicDomain, "www.")
}

// Forwarder performs upstream HTTP calls on behalf of the proxy handler,
// applying the header and body policies of each handling strategy.
//
// Failures are not retried; each proxied request is attempted exactly once.
type Forwarder struct {
	// Client is the HTTP client used for upstream calls. http.DefaultClient
	// is used if it is nil.
	Client *http.Client

	// Upstream identifies the content host to forward to.
	Upstream Upstream
}

// URL builds the upstream URL for a request path and query string.
func (forwarder *Forwarder) URL(path, rawQuery string) string {
	url := "https://" + forwarder.Upstream.Host() + path
	if rawQuery != "" {
		url += "?" + rawQuery
	}

	return url
}

// FetchJS fetches an upstream application script and replaces upstream
// domain references in its text with the tenant's domain.
func (forwarder *Forwarder) FetchJS(
	request *http.Request,
	config *tenant.Config,
) (string, error) {
	upstreamRequest, err := http.NewRequestWithContext(
		request.Context(),
		http.MethodGet,
		forwarder.URL(request.URL.Path, request.URL.RawQuery),
		nil,
	)
	if err != nil {
		return "", upstreamError(err)
	}

	response, err := forwarder.client().Do(upstreamRequest)
	if err != nil {
		return "", upstreamError(err)
	}
	defer response.Body.Close()

	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return "", upstreamError(err)
	}

	if !utf8.Valid(body) {
		return "", statuspage.Error{
			Inner:      fmt.Errorf("upstream script at %s is not valid text", request.URL.Path),
			StatusCode: http.StatusInternalServerError,
			Message:    "The requested script could not be decoded.",
		}
	}

	text := string(body)
	text = strings.ReplaceAll(text, forwarder.Upstream.PublicDomain, config.Domain)
	text = strings.ReplaceAll(text, forwarder.Upstream.BrandDomain(), config.Domain)
	text = strings.ReplaceAll(text, forwarder.Upstream.Host(), config.Domain)

	return text, nil
}

// ForwardAPI forwards a request to the upstream API. The method is
// preserved; the content type and user agent are forced. The client's body
// is attached verbatim, except for the read-only endpoint, which is always
// sent without one.
func (forwarder *Forwarder) ForwardAPI(request *http.Request) (int, []byte, error) {
	var body io.Reader
	if !strings.HasSuffix(request.URL.Path, readOnlyEndpoint) {
		payload, err := ioutil.ReadAll(request.Body)
		if err != nil {
			return 0, nil, upstreamError(err)
		}
		body = bytes.NewReader(payload)
	}

	upstreamRequest, err := http.NewRequestWithContext(
		request.Context(),
		request.Method,
		forwarder.URL(request.URL.Path, request.URL.RawQuery),
		body,
	)
	if err != nil {
		return 0, nil, upstreamError(err)
	}

	upstreamRequest.Header.Set("Content-Type", "application/json;charset=UTF-8")
	upstreamRequest.Header.Set("User-Agent", forwarder.Upstream.UserAgent)

	response, err := forwarder.client().Do(upstreamRequest)
	if err != nil {
		return 0, nil, upstreamError(err)
	}
	defer response.Body.Close()

	responseBody, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return 0, nil, upstreamError(err)
	}

	return response.StatusCode, responseBody, nil
}

// ForwardHTML forwards a request to the upstream content host with its
// method, headers and body preserved. The caller is responsible for
// rewriting the response body and for closing it.
func (forwarder *Forwarder) ForwardHTML(request *http.Request) (*http.Response, error) {
	upstreamRequest, err := http.NewRequestWithContext(
		request.Context(),
		request.Method,
		forwarder.URL(request.URL.Path, request.URL.RawQuery),
		request.Body,
	)
	if err != nil {
		return nil, upstreamError(err)
	}

	upstreamRequest.Header = buildUpstreamHeaders(request.Header)

	response, err := forwarder.client().Do(upstreamRequest)
	if err != nil {
		return nil, upstreamError(err)
	}

	return response, nil
}

func (forwarder *Forwarder) client() *http.Client {
	if forwarder.Client == nil {
		return http.DefaultClient
	}

	return forwarder.Client
}

// upstreamError wraps a transport-level failure for the status page writer.
func upstreamError(err error) error {
	return statuspage.Error{
		Inner:      fmt.Errorf("upstream request failed: %w", err),
		StatusCode: http.StatusInternalServerError,
		Message:    "The upstream content host could not be reached: " + err.Error(),
	}
}
