package proxy

import (
	"regexp"
	"strings"

	"github.com/icecave/beeline/tenant"
)

// Strategy identifies how an inbound request is handled.
type Strategy int

const (
	// Unclassified is the zero value. Classify never returns it; it is used
	// to log requests that fail before classification.
	Unclassified Strategy = iota

	// CorsPreflight answers an OPTIONS request locally.
	CorsPreflight

	// RobotsTxt synthesizes the tenant's robots.txt.
	RobotsTxt

	// Sitemap synthesizes the tenant's sitemap.xml.
	Sitemap

	// JsAsset forwards an upstream application script, rewriting upstream
	// domain references in its text.
	JsAsset

	// APICall forwards a request to the upstream API.
	APICall

	// SlugRedirect redirects a configured slug to its page ID path.
	SlugRedirect

	// UnknownPageRedirect redirects a bare page ID that does not belong to
	// the tenant to the tenant's root.
	UnknownPageRedirect

	// HTMLPassthrough forwards the request upstream and rewrites the HTML
	// response.
	HTMLPassthrough
)

func (strategy Strategy) String() string {
	switch strategy {
	case CorsPreflight:
		return "cors"
	case RobotsTxt:
		return "robots"
	case Sitemap:
		return "sitemap"
	case JsAsset:
		return "js"
	case APICall:
		return "api"
	case SlugRedirect:
		return "slug-redirect"
	case UnknownPageRedirect:
		return "page-redirect"
	case HTMLPassthrough:
		return "html"
	default:
		return ""
	}
}

// pageIDPattern matches the upstream's internal content identifiers.
var pageIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// Classify maps a request to the strategy used to handle it. It is a pure
// function of the method, path and tenant configuration; every request is
// classified into exactly one strategy.
//
// For SlugRedirect the page ID the slug maps to is also returned; for every
// other strategy the second return value is empty.
//
// Slug resolution deliberately precedes the page-ID heuristic, so a slug
// that happens to be 32 hex characters is still treated as a slug. The
// heuristic keeps the upstream's bare identifiers out of search engines and
// direct links by bouncing them to the tenant's root.
func Classify(method, path string, config *tenant.Config) (Strategy, string) {
	if method == "OPTIONS" {
		return CorsPreflight, ""
	}

	if path == "/robots.txt" {
		return RobotsTxt, ""
	}

	if path == "/sitemap.xml" {
		return Sitemap, ""
	}

	if strings.HasPrefix(path, "/app") && strings.HasSuffix(path, ".js") {
		return JsAsset, ""
	}

	if strings.HasPrefix(path, "/api") {
		return APICall, ""
	}

	candidate := strings.TrimPrefix(path, "/")

	if pageID, ok := config.SlugToPage[candidate]; ok {
		return SlugRedirect, pageID
	}

	if pageIDPattern.MatchString(candidate) {
		if _, ok := config.PageToSlug[candidate]; !ok {
			return UnknownPageRedirect, ""
		}
	}

	return HTMLPassthrough, ""
}
