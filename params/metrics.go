package params

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// validationsTotal tracks the total number of validation passes.
	//
	// Labels:
	//   - valid: "true" if the pass found no violations, "false" otherwise.
	//
	// This allows tracking overall validation volume and the rejection
	// rate of pre-flight checks, e.g.:
	//   - rate(param_validations_total[5m]) - validations per second
	//   - param_validations_total{valid="false"} - rejected requests
	validationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "param_validations_total",
		Help: "The total number of parameter validation passes",
	}, []string{"valid"})

	// violationsPerValidation tracks how many violations a single failing
	// pass reports. A drift toward higher buckets usually means a caller
	// is building requests from a stale schema.
	violationsPerValidation = promauto.NewHistogram(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name:    "param_validation_violations",
		Help:    "The number of violations found per validation pass",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
	})

	// validationTime tracks the duration of validation passes in
	// milliseconds. Validation is pure CPU work over the value tree, so
	// the buckets skew much lower than typical request latencies.
	validationTime = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name: "param_validation_time_millis",
		Help: "The time it takes to validate a parameter tree, in milliseconds",
		Buckets: []float64{
			0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500,
		},
	}, []string{"valid"})
)

// init pre-initializes the counter with zero values for both label values,
// so rate() queries have a consistent time series from application start
// and "no validations" is distinguishable from "metric absent".
func init() {
	validationsTotal.WithLabelValues("true").Add(0)
	validationsTotal.WithLabelValues("false").Add(0)
}

// observeValidation records the outcome of one validation pass.
func observeValidation(elapsed time.Duration, violations int) {
	valid := strconv.FormatBool(violations == 0)

	validationsTotal.WithLabelValues(valid).Inc()
	validationTime.WithLabelValues(valid).Observe(float64(elapsed.Nanoseconds()) / 1e6)

	if violations > 0 {
		violationsPerValidation.Observe(float64(violations))
	}
}
