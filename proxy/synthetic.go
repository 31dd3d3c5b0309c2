package proxy

import (
	"net/http"
	"strings"

	"github.com/icecave/beeline/tenant"
)

// robotsTxt builds the tenant's robots.txt body.
func robotsTxt(config *tenant.Config) string {
	return "Sitemap: https://" + config.Domain + "/sitemap.xml"
}

// sitemapXML builds the tenant's sitemap, with one URL entry per slug in the
// order the slugs are listed.
func sitemapXML(config *tenant.Config) string {
	var sitemap strings.Builder

	sitemap.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sitemap.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)

	for _, slug := range config.Slugs {
		sitemap.WriteString("<url><loc>https://")
		sitemap.WriteString(config.Domain)
		sitemap.WriteString("/")
		sitemap.WriteString(slug)
		sitemap.WriteString("</loc></url>")
	}

	sitemap.WriteString("</urlset>")

	return sitemap.String()
}

// writeCorsPreflightHeaders adds the headers for a locally answered OPTIONS
// request.
func writeCorsPreflightHeaders(headers http.Header) {
	headers.Set("Access-Control-Allow-Origin", "*")
	headers.Set("Access-Control-Allow-Methods", "GET, HEAD, POST, PUT, OPTIONS")
	headers.Set("Access-Control-Allow-Headers", "Content-Type")
}
