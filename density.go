package mvngrad

import "math"

// LogDensity computes the log of the multivariate normal density at each
// of n query points of dimension d. points is row-major n×d; dst may be
// nil or a reusable buffer of length at least n. The covariance is
// factorized once per call, exactly as in DensityGradient, and the same
// option set and error taxonomy apply.
func LogDensity(dst, points []float64, n, d int, opts ...Option) ([]float64, error) {
	const op = "LogDensity"
	if err := checkBatch(op, points, n, d); err != nil {
		return nil, err
	}
	cfg := gatherOptions(opts)
	p, err := newPlan(op, d, cfg)
	if err != nil {
		return nil, err
	}
	dst, err = ensureDst(op, dst, n)
	if err != nil {
		return nil, err
	}
	err = p.forEachRow(n, cfg.workers, func(i int, sc *scratch) error {
		ld, err := p.logDensityAt(op, points[i*d:(i+1)*d], sc)
		if err != nil {
			return err
		}
		dst[i] = ld
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// Density computes the multivariate normal density at each of n query
// points. Identical to LogDensity followed by exponentiation; prefer
// LogDensity when the values feed further log-domain arithmetic.
func Density(dst, points []float64, n, d int, opts ...Option) ([]float64, error) {
	dst, err := LogDensity(dst, points, n, d, opts...)
	if err != nil {
		return nil, err
	}
	for i, ld := range dst {
		dst[i] = math.Exp(ld)
	}
	return dst, nil
}
