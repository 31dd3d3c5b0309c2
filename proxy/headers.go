package proxy

import "net/http"

// isHopByHopHeader checks if a given header name is a Hop-by-Hop header, and
// hence should not be forwarded to the upstream server. The name must already
// be canonicalized with http.CanonicalHeaderKey().
func isHopByHopHeader(name string) bool {
	switch name {
	case
		"Connection",
		"Proxy-Connection",
		"Keep-Alive",
		"Proxy-Authenticate",
		"Proxy-Authorization",
		"Te",
		"Trailer",
		"Transfer-Encoding",
		"Upgrade":
		return true
	default:
		return false
	}
}

// buildUpstreamHeaders creates the set of request headers forwarded to the
// upstream server.
//
// Content-Length is dropped because the forwarded body may differ from the
// inbound one, and Accept-Encoding is dropped so the transport negotiates an
// encoding it will transparently decode, keeping response bodies rewritable
// as text.
func buildUpstreamHeaders(headers http.Header) http.Header {
	upstream := http.Header{}

	for name, values := range headers {
		switch {
		case isHopByHopHeader(name):
		case name == "Content-Length":
		case name == "Accept-Encoding":
		default:
			upstream[name] = values
		}
	}

	return upstream
}

// copyResponseHeaders copies upstream response headers to the client
// response, dropping the security headers that would block the injected
// scripts, and the framing headers invalidated by rewriting the body.
func copyResponseHeaders(dst, src http.Header) {
	for name, values := range src {
		switch {
		case isHopByHopHeader(name):
		case name == "Content-Security-Policy":
		case name == "X-Content-Security-Policy":
		case name == "Content-Length":
		case name == "Content-Encoding":
		default:
			dst[name] = values
		}
	}
}
