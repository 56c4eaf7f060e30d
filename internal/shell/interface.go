package shell

import "context"

// Runner executes a single command on the monitored device and returns
// its raw text output. One call is one round trip over the bridge; the
// transport is shared and non-multiplexed, so callers must not issue
// concurrent queries.
type Runner interface {
	Execute(ctx context.Context, command string) (string, error)
}
