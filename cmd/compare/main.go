// Copyright ©2024 The mvngrad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command compare runs the direct-formula reference and the factorized
// kernel on identical inputs across a grid of batch sizes, verifies that
// the outputs agree within tolerance, and reports timings and speedups.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/statkit/mvngrad"
)

func main() {
	var (
		dim     = flag.Int("d", 4, "Point dimension")
		sizes   = flag.String("sizes", "100,1000,10000", "Comma-separated batch sizes")
		workers = flag.Int("workers", 1, "Worker goroutines for the kernel (<1 = NumCPU)")
		seed    = flag.Int64("seed", 42, "RNG seed for inputs")
		logDir  = flag.String("log", "", "Directory for JSON result logs (empty = no log)")
	)
	flag.Parse()

	ns, err := parseSizes(*sizes)
	if err != nil {
		log.Fatalf("Invalid -sizes: %v", err)
	}

	var logger *mvngrad.CompareLogger
	if *logDir != "" {
		logger, err = mvngrad.NewCompareLogger(*logDir, "compare")
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
	}

	rng := rand.New(rand.NewSource(*seed))
	mean, cov := randomDistribution(rng, *dim)
	tol := mvngrad.DefaultTolerance()

	fmt.Printf("Multivariate normal density gradient: reference vs factorized kernel (d=%d)\n\n", *dim)
	fmt.Printf("%10s %14s %14s %9s %14s\n", "points", "reference", "kernel", "speedup", "max abs diff")

	failed := false
	for _, n := range ns {
		points := make([]float64, n**dim)
		for i := range points {
			points[i] = rng.NormFloat64()
		}

		refStart := time.Now()
		want, err := mvngrad.Reference{}.DensityGradient(points, mean, cov, n, *dim)
		refDur := time.Since(refStart)
		if err != nil {
			log.Fatalf("Reference failed for n=%d: %v", n, err)
		}

		start := time.Now()
		got, err := mvngrad.DensityGradient(nil, points, n, *dim,
			mvngrad.WithMean(mean),
			mvngrad.WithCovariance(cov),
			mvngrad.WithWorkers(*workers))
		dur := time.Since(start)
		if err != nil {
			log.Fatalf("Kernel failed for n=%d: %v", n, err)
		}

		// Verify against the full-batch elementwise comparison; tolerance
		// failures fail the run, not just the row.
		verdict := mvngrad.VerifyFloat64s(want, got, tol)
		status := "pass"
		if !verdict.IsAcceptable() {
			status = "fail"
			failed = true
			fmt.Fprintf(os.Stderr, "n=%d: %v\n", n, verdict)
		}

		speedup := float64(refDur) / float64(dur)
		fmt.Printf("%10d %14s %14s %8.1fx %14.3e\n",
			n, refDur.Round(time.Microsecond), dur.Round(time.Microsecond),
			speedup, verdict.MaxAbsError)

		if logger != nil {
			err := logger.Log(mvngrad.CompareResult{
				Name:        fmt.Sprintf("DensityGradient/n=%d/d=%d", n, *dim),
				Points:      n,
				Dim:         *dim,
				Workers:     *workers,
				RefDuration: refDur,
				Duration:    dur,
				Speedup:     speedup,
				MaxAbsDiff:  verdict.MaxAbsError,
				MaxRelDiff:  verdict.MaxRelError,
				Status:      status,
			})
			if err != nil {
				log.Fatalf("Failed to log result: %v", err)
			}
		}
	}

	if logger != nil {
		fmt.Printf("\nResults written to %s\n", logger.File())
	}
	if failed {
		os.Exit(1)
	}
}

// parseSizes parses a comma-separated list of positive batch sizes.
func parseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ns := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("size must be positive, got %d", n)
		}
		ns = append(ns, n)
	}
	return ns, nil
}

// randomDistribution draws a random mean and a random symmetric
// positive-definite covariance: AᵀA shifted by d on the diagonal so the
// matrix is comfortably conditioned.
func randomDistribution(rng *rand.Rand, d int) (mean, cov []float64) {
	mean = make([]float64, d)
	for i := range mean {
		mean[i] = rng.NormFloat64()
	}

	a := make([]float64, d*d)
	for i := range a {
		a[i] = rng.NormFloat64()
	}
	cov = make([]float64, d*d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			var s float64
			for k := 0; k < d; k++ {
				s += a[k*d+i] * a[k*d+j]
			}
			cov[i*d+j] = s
		}
		cov[i*d+i] += float64(d)
	}
	return mean, cov
}
