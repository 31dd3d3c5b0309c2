package tenant

import (
	"context"

	"github.com/icecave/beeline/name"
)

// Locator finds the tenant configuration for a request hostname.
type Locator interface {
	// Locate finds the tenant served under the given hostname. It returns
	// nil if no tenant is configured for that hostname.
	//
	// The returned configuration always has its derived fields computed.
	Locate(ctx context.Context, host name.Hostname) *Config
}
