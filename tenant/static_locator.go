package tenant

import (
	"context"

	"github.com/icecave/beeline/name"
)

// StaticLocator is a Locator backed by a fixed, in-memory directory of
// tenant configurations, keyed by canonical domain. It is populated once at
// start-up and read-only thereafter.
type StaticLocator map[string]*Config

// Locate finds the tenant served under the given hostname.
func (locator StaticLocator) Locate(_ context.Context, host name.Hostname) *Config {
	config, ok := locator[host.Key]
	if !ok {
		return nil
	}

	return config.Snapshot()
}

// With returns a new StaticLocator that includes the given tenant.
func (locator StaticLocator) With(config *Config) StaticLocator {
	updated := StaticLocator{config.Domain: config}

	for domain, existing := range locator {
		if domain != config.Domain {
			updated[domain] = existing
		}
	}

	return updated
}
