package params

import (
	"context"

	"github.com/alitto/pond/v2"
	"go.uber.org/atomic"

	"github.com/helio-labs/param-common/logger"
)

const defaultBatchWorkers = 10

// Request pairs a validator with the parameter tree it should check.
type Request struct {
	Validator *Validator
	Params    any
}

// ValidateAll runs the given validation requests concurrently, one
// goroutine per request up to maxConcurrent workers (a value below 1 uses
// a default). Each validation pass is independent, so this is the natural
// unit of parallelism; a single pass is never split across goroutines.
//
// The result slice has one entry per request, in request order: nil for a
// pass, or the request's *InvalidParameterError.
func ValidateAll(ctx context.Context, maxConcurrent int, requests []Request) []error {
	if maxConcurrent < 1 {
		maxConcurrent = defaultBatchWorkers
	}

	pool := pond.NewPool(maxConcurrent, pond.WithContext(ctx))
	results := make([]error, len(requests))

	var failures atomic.Int64

	for i, req := range requests {
		pool.Submit(func() {
			results[i] = req.Validator.Validate(req.Params)
			if results[i] != nil {
				failures.Inc()
			}
		})
	}

	pool.StopAndWait()

	logger.Get(ctx).Debug("batch validation complete",
		"requests", len(requests),
		"failures", failures.Load())

	return results
}
