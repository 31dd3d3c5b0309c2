// Package rewrite post-processes upstream HTML so that it can be served
// under a tenant's own domain.
//
// The rewriter is a purely textual transformation. It does not parse HTML
// structurally, so tags whose attributes are ordered or quoted differently
// from the upstream's rendered markup are left untouched.
package rewrite

import (
	"regexp"
	"strings"

	"github.com/icecave/beeline/tenant"
)

// Rewriter rewrites upstream HTML for a single tenant.
type Rewriter struct {
	// Tenant is the configuration of the tenant the page is served for.
	Tenant *tenant.Config

	// UpstreamSite is the upstream site suffix, such as "notion.site".
	UpstreamSite string
}

var (
	ogTitlePattern      = regexp.MustCompile(`<meta\s+property="og:title"\s+content="[^"]*"`)
	twitterTitlePattern = regexp.MustCompile(`<meta\s+name="twitter:title"\s+content="[^"]*"`)

	descriptionPattern        = regexp.MustCompile(`<meta\s+name="description"\s+content="[^"]*"`)
	ogDescriptionPattern      = regexp.MustCompile(`<meta\s+property="og:description"\s+content="[^"]*"`)
	twitterDescriptionPattern = regexp.MustCompile(`<meta\s+name="twitter:description"\s+content="[^"]*"`)

	ogURLPattern      = regexp.MustCompile(`<meta\s+property="og:url"\s+content="[^"]*"`)
	twitterURLPattern = regexp.MustCompile(`<meta\s+name="twitter:url"\s+content="[^"]*"`)

	itunesAppPattern = regexp.MustCompile(`<meta\s+name="apple-itunes-app"[^>]*>`)
)

// topbarStyle hides the upstream's default top navigation bar while keeping
// the injected theme-toggle control visible.
const topbarStyle = `<style>
div.notion-topbar,
div.notion-topbar-mobile { display: none !important; }
div.notion-topbar > div > div:nth-child(1n).toggle-mode,
div.notion-topbar-mobile > div:nth-child(1n).toggle-mode { display: block !important; }
</style>`

// Rewrite applies the three rewriting passes to html: metadata substitution,
// head injection and body script injection. Each pass is an independent
// textual transformation; re-applying a pass with the same configuration is
// safe.
func (rewriter *Rewriter) Rewrite(html string) (string, error) {
	html = rewriter.rewriteMeta(html)
	html = rewriter.injectHead(html)

	return rewriter.injectBody(html)
}

func (rewriter *Rewriter) rewriteMeta(html string) string {
	config := rewriter.Tenant

	if config.Title != "" {
		// The original title element is visually suppressed rather than
		// removed, so upstream scripts that read it keep working.
		html = strings.ReplaceAll(
			html,
			"<title>",
			"<title>"+config.Title+`</title><title style="display:none">`,
		)

		html = replaceLiteral(ogTitlePattern, html, `<meta property="og:title" content="`+config.Title+`"`)
		html = replaceLiteral(twitterTitlePattern, html, `<meta name="twitter:title" content="`+config.Title+`"`)
	}

	if config.Description != "" {
		html = replaceLiteral(descriptionPattern, html, `<meta name="description" content="`+config.Description+`"`)
		html = replaceLiteral(ogDescriptionPattern, html, `<meta property="og:description" content="`+config.Description+`"`)
		html = replaceLiteral(twitterDescriptionPattern, html, `<meta name="twitter:description" content="`+config.Description+`"`)
	}

	html = replaceLiteral(ogURLPattern, html, `<meta property="og:url" content="`+config.Domain+`"`)
	html = replaceLiteral(twitterURLPattern, html, `<meta name="twitter:url" content="`+config.Domain+`"`)

	html = itunesAppPattern.ReplaceAllString(html, "")

	return html
}

func (rewriter *Rewriter) injectHead(html string) string {
	if !strings.Contains(html, "</head>") {
		return html
	}

	var head strings.Builder

	if font := rewriter.Tenant.GoogleFont; font != "" {
		fontURL := "https://fonts.googleapis.com/css?family=" +
			strings.ReplaceAll(font, " ", "+") +
			":Regular,Bold,Italic&display=swap"

		head.WriteString(`<link href="` + fontURL + `" rel="stylesheet">`)
		head.WriteString(`<style>* { font-family: "` + font + `" !important; }</style>`)
	}

	head.WriteString(topbarStyle)

	return strings.Replace(html, "</head>", head.String()+"</head>", 1)
}

func (rewriter *Rewriter) injectBody(html string) (string, error) {
	if !strings.Contains(html, "</body>") {
		return html, nil
	}

	script, err := rewriter.bootstrapScript()
	if err != nil {
		return "", err
	}

	return strings.Replace(html, "</body>", script+"</body>", 1), nil
}

// replaceLiteral substitutes every match of pattern with a literal
// replacement, without interpreting $-style group references in it.
func replaceLiteral(pattern *regexp.Regexp, html, replacement string) string {
	return pattern.ReplaceAllStringFunc(html, func(string) string {
		return replacement
	})
}
