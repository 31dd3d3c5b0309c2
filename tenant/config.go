package tenant

// Config holds the routing and branding configuration for a single tenant
// domain.
//
// The PageToSlug, Slugs and Pages fields are derived from SlugToPage by
// ComputeDerived. They must never be populated by hand.
type Config struct {
	// Domain is the canonical hostname the tenant serves. No scheme, no
	// "www." prefix.
	Domain string

	// SlugToPage maps a URL slug to the upstream page ID it represents.
	// Page IDs are 32-character lowercase hexadecimal strings.
	SlugToPage map[string]string

	// PageToSlug is the inverse of SlugToPage.
	PageToSlug map[string]string

	// Slugs and Pages mirror the keys and values of SlugToPage. Order is
	// insignificant; they exist for membership checks and for serialization
	// to the client bootstrap script.
	Slugs []string
	Pages []string

	// Optional branding. An empty string means "not configured".
	Title        string
	Description  string
	GoogleFont   string
	CustomScript string
}

// ComputeDerived recomputes PageToSlug, Slugs and Pages from SlugToPage.
// It must be called after SlugToPage changes.
func (config *Config) ComputeDerived() {
	config.PageToSlug = make(map[string]string, len(config.SlugToPage))
	config.Slugs = make([]string, 0, len(config.SlugToPage))
	config.Pages = make([]string, 0, len(config.SlugToPage))

	for slug, page := range config.SlugToPage {
		config.PageToSlug[page] = slug
		config.Slugs = append(config.Slugs, slug)
		config.Pages = append(config.Pages, page)
	}
}

// Snapshot returns a deep copy of the configuration with derived fields
// computed. The copy shares no state with the original, so it is safe to
// cache and to read concurrently with reloads of the directory.
func (config *Config) Snapshot() *Config {
	snapshot := &Config{
		Domain:       config.Domain,
		SlugToPage:   make(map[string]string, len(config.SlugToPage)),
		Title:        config.Title,
		Description:  config.Description,
		GoogleFont:   config.GoogleFont,
		CustomScript: config.CustomScript,
	}

	for slug, page := range config.SlugToPage {
		snapshot.SlugToPage[slug] = page
	}

	snapshot.ComputeDerived()

	return snapshot
}
