// Package mvngrad functional configuration for kernel invocations.
//
// Defaults mirror the standard normal: zero mean, identity covariance.
// They are explicit options rather than magic values baked into the call
// signature so a reader of call sites can see which distribution is meant.
package mvngrad

import "runtime"

// Option configures a single kernel invocation.
type Option func(*config)

type config struct {
	mean    []float64 // length d, nil means zero vector
	cov     []float64 // row-major d×d, nil means identity
	workers int       // goroutines for the per-point loop, min 1
}

func defaultConfig() config {
	return config{workers: 1}
}

func gatherOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMean sets the mean vector of the distribution. The slice is read,
// not retained. Its length must equal the point dimension d.
func WithMean(mu []float64) Option {
	return func(cfg *config) {
		cfg.mean = mu
	}
}

// WithCovariance sets the covariance matrix as a row-major d×d slice.
// The matrix must be symmetric positive-definite; only the upper triangle
// is consulted by the factorization. The slice is read, not retained.
func WithCovariance(sigma []float64) Option {
	return func(cfg *config) {
		cfg.cov = sigma
	}
}

// WithWorkers sets the number of goroutines used for the per-point loop.
// Values below 1 select runtime.NumCPU(). The default is 1 (serial);
// parallelism changes throughput only, never results or their order.
func WithWorkers(k int) Option {
	return func(cfg *config) {
		if k < 1 {
			k = runtime.NumCPU()
		}
		cfg.workers = k
	}
}
