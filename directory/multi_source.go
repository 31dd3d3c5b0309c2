package directory

import (
	"context"

	"github.com/icecave/beeline/tenant"
	"go.uber.org/multierr"
)

// MultiSource aggregates several sources into one. Sources are loaded in
// order; when two sources define the same domain, the later source wins.
type MultiSource []Source

// Load reads all tenant configurations from each source in turn.
func (sources MultiSource) Load(ctx context.Context) (map[string]*tenant.Config, error) {
	var err error
	configs := map[string]*tenant.Config{}

	for _, source := range sources {
		loaded, e := source.Load(ctx)
		if e != nil {
			err = multierr.Append(err, e)
			continue
		}

		for domain, config := range loaded {
			configs[domain] = config
		}
	}

	return configs, err
}
