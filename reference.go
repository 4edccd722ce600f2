// Package mvngrad reference implementations for verification
package mvngrad

import (
	"fmt"
	"math"
)

// Reference contains simple, direct-formula implementations of the batch
// density computations. These follow the textbook formula — an explicit
// matrix inverse and determinant evaluated for every point, O(d³) each —
// and are used for testing and benchmarking the factorized kernel. They
// deliberately share no code with the fast path.
type Reference struct{}

// DensityGradient computes the gradient of the multivariate normal density
// at each point by the direct formula. points is row-major n×d, mean is
// length d, cov is row-major d×d.
func (r Reference) DensityGradient(points, mean, cov []float64, n, d int) ([]float64, error) {
	const op = "Reference.DensityGradient"
	if err := r.check(op, points, mean, cov, n, d); err != nil {
		return nil, err
	}
	out := make([]float64, n*d)
	centered := make([]float64, d)
	for i := 0; i < n; i++ {
		// Recomputed for every point: the cost the factorized kernel
		// amortizes away.
		inv, det, err := invertAndDet(op, cov, d)
		if err != nil {
			return nil, err
		}
		x := points[i*d : (i+1)*d]
		for j := 0; j < d; j++ {
			centered[j] = x[j] - mean[j]
		}
		var quad float64
		for j := 0; j < d; j++ {
			var s float64
			for k := 0; k < d; k++ {
				s += inv[j*d+k] * centered[k]
			}
			out[i*d+j] = s // (Σ⁻¹·c)ⱼ, scaled below
			quad += s * centered[j]
		}
		density := math.Exp(-0.5*float64(d)*MathLn2Pi - 0.5*math.Log(det) - 0.5*quad)
		for j := 0; j < d; j++ {
			out[i*d+j] *= -density
		}
	}
	return out, nil
}

// LogDensity computes the log density at each point by the direct formula.
func (r Reference) LogDensity(points, mean, cov []float64, n, d int) ([]float64, error) {
	const op = "Reference.LogDensity"
	if err := r.check(op, points, mean, cov, n, d); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	centered := make([]float64, d)
	for i := 0; i < n; i++ {
		inv, det, err := invertAndDet(op, cov, d)
		if err != nil {
			return nil, err
		}
		x := points[i*d : (i+1)*d]
		for j := 0; j < d; j++ {
			centered[j] = x[j] - mean[j]
		}
		var quad float64
		for j := 0; j < d; j++ {
			var s float64
			for k := 0; k < d; k++ {
				s += inv[j*d+k] * centered[k]
			}
			quad += s * centered[j]
		}
		out[i] = -0.5*float64(d)*MathLn2Pi - 0.5*math.Log(det) - 0.5*quad
	}
	return out, nil
}

func (Reference) check(op string, points, mean, cov []float64, n, d int) error {
	if err := checkBatch(op, points, n, d); err != nil {
		return err
	}
	if len(mean) != d {
		return NewDimensionError(op,
			fmt.Sprintf("mean has length %d, want %d", len(mean), d))
	}
	if len(cov) != d*d {
		return NewDimensionError(op,
			fmt.Sprintf("covariance has length %d, want %d×%d", len(cov), d, d))
	}
	return nil
}

// invertAndDet computes the inverse and determinant of the d×d row-major
// matrix a by Gauss-Jordan elimination with partial pivoting. A singular
// or non-positive-determinant matrix is rejected: a valid covariance is
// positive-definite and therefore has a strictly positive determinant.
func invertAndDet(op string, a []float64, d int) ([]float64, float64, error) {
	work := make([]float64, d*d)
	copy(work, a)
	inv := make([]float64, d*d)
	for i := 0; i < d; i++ {
		inv[i*d+i] = 1
	}

	det := 1.0
	for col := 0; col < d; col++ {
		// Partial pivot: largest magnitude in the column.
		pivot := col
		for row := col + 1; row < d; row++ {
			if math.Abs(work[row*d+col]) > math.Abs(work[pivot*d+col]) {
				pivot = row
			}
		}
		pv := work[pivot*d+col]
		if pv == 0 {
			return nil, 0, NewInvalidCovarianceError(op, "matrix is singular", nil)
		}
		if pivot != col {
			for k := 0; k < d; k++ {
				work[pivot*d+k], work[col*d+k] = work[col*d+k], work[pivot*d+k]
				inv[pivot*d+k], inv[col*d+k] = inv[col*d+k], inv[pivot*d+k]
			}
			det = -det
		}
		det *= pv
		invPv := 1 / pv
		for k := 0; k < d; k++ {
			work[col*d+k] *= invPv
			inv[col*d+k] *= invPv
		}
		for row := 0; row < d; row++ {
			if row == col {
				continue
			}
			f := work[row*d+col]
			if f == 0 {
				continue
			}
			for k := 0; k < d; k++ {
				work[row*d+k] -= f * work[col*d+k]
				inv[row*d+k] -= f * inv[col*d+k]
			}
		}
	}
	if det <= 0 {
		return nil, 0, NewInvalidCovarianceError(op, "determinant is not positive", nil)
	}
	return inv, det, nil
}
