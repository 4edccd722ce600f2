package mvngrad

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// plan is the per-call factorization cache: the Cholesky factor of the
// covariance matrix and the log of the density normalization constant.
// It is computed once per batch regardless of the number of points, is
// read-only after construction, and may be shared freely across worker
// goroutines.
type plan struct {
	d        int
	mean     []float64
	chol     mat.Cholesky
	logConst float64 // -(d/2)·ln(2π) - ½·ln det Σ
}

// newPlan validates the configured parameters against dimension d and
// factorizes the covariance. A covariance that admits no Cholesky
// factorization is a fatal precondition violation.
func newPlan(op string, d int, cfg config) (*plan, error) {
	if cfg.mean != nil && len(cfg.mean) != d {
		return nil, NewDimensionError(op,
			fmt.Sprintf("mean has length %d, want %d", len(cfg.mean), d))
	}
	if cfg.cov != nil && len(cfg.cov) != d*d {
		return nil, NewDimensionError(op,
			fmt.Sprintf("covariance has length %d, want %d×%d", len(cfg.cov), d, d))
	}

	p := &plan{d: d, mean: cfg.mean}
	if p.mean == nil {
		p.mean = make([]float64, d)
	}

	var sigma *mat.SymDense
	if cfg.cov == nil {
		sigma = mat.NewSymDense(d, nil)
		for i := 0; i < d; i++ {
			sigma.SetSym(i, i, 1)
		}
	} else {
		sigma = mat.NewSymDense(d, cfg.cov)
	}
	if ok := p.chol.Factorize(sigma); !ok {
		return nil, NewInvalidCovarianceError(op, "Cholesky factorization failed", nil)
	}
	p.logConst = -0.5*float64(d)*MathLn2Pi - 0.5*p.chol.LogDet()
	return p, nil
}

// scratch holds per-worker buffers for the inner loop. Buffers are reused
// across rows; each worker owns exactly one scratch.
type scratch struct {
	centered []float64
	solved   []float64
	cvec     *mat.VecDense // aliases centered
	svec     *mat.VecDense // aliases solved
}

func (p *plan) newScratch() *scratch {
	c := make([]float64, p.d)
	s := make([]float64, p.d)
	return &scratch{
		centered: c,
		solved:   s,
		cvec:     mat.NewVecDense(p.d, c),
		svec:     mat.NewVecDense(p.d, s),
	}
}

// solveCentered computes v = Σ⁻¹(x-μ) into sc.solved by forward/back
// substitution against the factorization, and returns the Mahalanobis
// term (x-μ)ᵀv. No explicit inverse is ever formed.
func (p *plan) solveCentered(op string, x []float64, sc *scratch) (float64, error) {
	floats.SubTo(sc.centered, x, p.mean)
	if err := p.chol.SolveVecTo(sc.svec, sc.cvec); err != nil {
		// An ill-conditioned but factorizable covariance yields a
		// mat.Condition warning alongside a usable solution.
		if _, ok := err.(mat.Condition); !ok {
			return 0, NewNumericalError(op, "triangular solve failed", err)
		}
	}
	return floats.Dot(sc.centered, sc.solved), nil
}

// gradientRow writes ∇f(x) into dst (length d).
func (p *plan) gradientRow(op string, dst, x []float64, sc *scratch) error {
	maha, err := p.solveCentered(op, x, sc)
	if err != nil {
		return err
	}
	density := math.Exp(p.logConst - 0.5*maha)
	floats.ScaleTo(dst, -density, sc.solved)
	return nil
}

// logDensityAt returns ln f(x).
func (p *plan) logDensityAt(op string, x []float64, sc *scratch) (float64, error) {
	maha, err := p.solveCentered(op, x, sc)
	if err != nil {
		return 0, err
	}
	return p.logConst - 0.5*maha, nil
}

// checkBatch validates the flat batch layout shared by all entry points.
func checkBatch(op string, points []float64, n, d int) error {
	if n < 0 {
		return NewInvalidArgError(op, "point count n must be non-negative")
	}
	if d < 1 {
		return NewInvalidArgError(op, "dimension d must be at least 1")
	}
	if len(points) != n*d {
		return NewDimensionError(op,
			fmt.Sprintf("points has length %d, want n*d = %d", len(points), n*d))
	}
	return nil
}

// ensureDst returns dst resliced to want elements, allocating when dst is
// nil. An undersized non-nil dst is an argument error.
func ensureDst(op string, dst []float64, want int) ([]float64, error) {
	if dst == nil {
		return make([]float64, want), nil
	}
	if len(dst) < want {
		return nil, NewInvalidArgError(op,
			fmt.Sprintf("dst has length %d, want at least %d", len(dst), want))
	}
	return dst[:want], nil
}

// DensityGradient computes the gradient of the multivariate normal density
// at each of n query points of dimension d. points is row-major n×d; the
// returned slice is row-major n×d with row i holding ∇f(pointsᵢ). Row
// order of the output matches row order of the input exactly.
//
// The distribution defaults to zero mean and identity covariance; override
// with WithMean and WithCovariance. dst may be nil, in which case a fresh
// slice is allocated, or a reusable buffer of length at least n*d. On
// error no result is returned and the contents of dst are unspecified.
//
// The covariance is factorized once per call, so evaluating a batch costs
// O(d³ + n·d²). The per-point loop has no cross-row dependency; WithWorkers
// distributes it across goroutines.
func DensityGradient(dst, points []float64, n, d int, opts ...Option) ([]float64, error) {
	const op = "DensityGradient"
	if err := checkBatch(op, points, n, d); err != nil {
		return nil, err
	}
	cfg := gatherOptions(opts)
	p, err := newPlan(op, d, cfg)
	if err != nil {
		return nil, err
	}
	dst, err = ensureDst(op, dst, n*d)
	if err != nil {
		return nil, err
	}
	err = p.forEachRow(n, cfg.workers, func(i int, sc *scratch) error {
		return p.gradientRow(op, dst[i*d:(i+1)*d], points[i*d:(i+1)*d], sc)
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// DensityGradientMat is a convenience wrapper over DensityGradient for
// gonum matrix callers. A zero-row input yields an empty matrix.
func DensityGradientMat(points mat.Matrix, opts ...Option) (*mat.Dense, error) {
	r, c := points.Dims()
	if r == 0 {
		// The factorization happens once regardless of n, so an empty
		// batch still validates dimensions and the covariance, exactly
		// as the flat entry point does.
		if _, err := DensityGradient(nil, nil, 0, c, opts...); err != nil {
			return nil, err
		}
		return &mat.Dense{}, nil
	}
	flat := make([]float64, r*c)
	for i := 0; i < r; i++ {
		mat.Row(flat[i*c:(i+1)*c], i, points)
	}
	// Each row is fully read before its gradient is written, so the
	// flat copy can serve as both input and output.
	grad, err := DensityGradient(flat, flat, r, c, opts...)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(r, c, grad), nil
}
