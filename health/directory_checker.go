package health

import (
	"context"
	"fmt"
	"time"

	"github.com/icecave/beeline/directory"
)

// DefaultCheckTimeout is the timeout used by DirectoryChecker when none is
// configured.
const DefaultCheckTimeout = 5 * time.Second

// DirectoryChecker is a checker that verifies the tenant directory can be
// loaded. A proxy that cannot load any tenant configuration cannot serve
// traffic, even if its listener is accepting connections.
type DirectoryChecker struct {
	Source  directory.Source
	Timeout time.Duration
}

// Check loads the tenant directory and reports the number of tenants found.
func (checker *DirectoryChecker) Check() Status {
	timeout := checker.Timeout
	if timeout == 0 {
		timeout = DefaultCheckTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	configs, err := checker.Source.Load(ctx)
	if err != nil {
		return Status{false, err.Error()}
	}

	if len(configs) == 0 {
		return Status{false, "The tenant directory is empty."}
	}

	return Status{
		true,
		fmt.Sprintf("Serving %d tenant(s).", len(configs)),
	}
}
