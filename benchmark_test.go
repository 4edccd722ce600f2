package mvngrad

import (
	"fmt"
	"math/rand"
	"testing"
)

// Benchmark the factorized kernel against the direct-formula reference.
// The reference recomputes the inverse and determinant per point, so the
// gap widens with both n and d.
func BenchmarkDensityGradient(b *testing.B) {
	cases := []struct{ n, d int }{
		{100, 2},
		{100, 8},
		{1000, 2},
		{1000, 8},
		{10000, 8},
	}

	for _, tc := range cases {
		rng := rand.New(rand.NewSource(42))
		mean := randomSlice(rng, tc.d)
		cov := randomSPD(rng, tc.d)
		points := randomSlice(rng, tc.n*tc.d)
		dst := make([]float64, tc.n*tc.d)

		b.Run(fmt.Sprintf("Kernel/n%d_d%d", tc.n, tc.d), func(b *testing.B) {
			b.SetBytes(int64(tc.n * tc.d * 8))
			for i := 0; i < b.N; i++ {
				if _, err := DensityGradient(dst, points, tc.n, tc.d,
					WithMean(mean), WithCovariance(cov)); err != nil {
					b.Fatal(err)
				}
			}
			reportPointsPerSec(b, tc.n)
		})

		b.Run(fmt.Sprintf("KernelParallel/n%d_d%d", tc.n, tc.d), func(b *testing.B) {
			b.SetBytes(int64(tc.n * tc.d * 8))
			for i := 0; i < b.N; i++ {
				if _, err := DensityGradient(dst, points, tc.n, tc.d,
					WithMean(mean), WithCovariance(cov), WithWorkers(0)); err != nil {
					b.Fatal(err)
				}
			}
			reportPointsPerSec(b, tc.n)
		})

		b.Run(fmt.Sprintf("Reference/n%d_d%d", tc.n, tc.d), func(b *testing.B) {
			ref := Reference{}
			b.SetBytes(int64(tc.n * tc.d * 8))
			for i := 0; i < b.N; i++ {
				if _, err := ref.DensityGradient(points, mean, cov, tc.n, tc.d); err != nil {
					b.Fatal(err)
				}
			}
			reportPointsPerSec(b, tc.n)
		})
	}
}

func BenchmarkLogDensity(b *testing.B) {
	const n, d = 10000, 8
	rng := rand.New(rand.NewSource(42))
	mean := randomSlice(rng, d)
	cov := randomSPD(rng, d)
	points := randomSlice(rng, n*d)
	dst := make([]float64, n)

	b.SetBytes(int64(n * d * 8))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := LogDensity(dst, points, n, d,
			WithMean(mean), WithCovariance(cov)); err != nil {
			b.Fatal(err)
		}
	}
	reportPointsPerSec(b, n)
}

func reportPointsPerSec(b *testing.B, n int) {
	b.Helper()
	perOp := b.Elapsed().Seconds() / float64(b.N)
	if perOp > 0 {
		b.ReportMetric(float64(n)/perOp, "points/s")
	}
}
