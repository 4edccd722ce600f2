// Copyright ©2024 The mvngrad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mvngrad computes the gradient of the multivariate normal
// probability density function for batches of query points.
//
// The naive formula evaluates a matrix inverse and determinant for every
// point, which costs O(d³) per point. mvngrad instead factorizes the
// covariance matrix once per call with a Cholesky decomposition and reuses
// the factorization for every point, so a batch of n points in d dimensions
// costs O(d³ + n·d²). Linear systems are solved through the factorization
// by triangular substitution rather than an explicit inverse, which keeps
// the computation numerically stable.
//
// The primary API operates on flat row-major float64 slices with explicit
// dimensions:
//
//	grad, err := mvngrad.DensityGradient(nil, points, n, d,
//		mvngrad.WithMean(mu),
//		mvngrad.WithCovariance(sigma))
//
// A slow direct-formula implementation is provided by the Reference type
// for verification and benchmarking, and the bigmat subpackage adapts
// externally-owned column-major matrix buffers (for example memory-mapped
// files) into kernel inputs without copying.
package mvngrad
