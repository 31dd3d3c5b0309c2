// Package directory loads the static tenant directory that the proxy serves
// from. Sources are consulted once at start-up; the resulting directory is
// read-only for the lifetime of the process.
package directory

import (
	"context"

	"github.com/icecave/beeline/tenant"
)

// Source produces tenant configurations, keyed by canonical domain.
type Source interface {
	// Load reads all tenant configurations from the source.
	Load(ctx context.Context) (map[string]*tenant.Config, error)
}
