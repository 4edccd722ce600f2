package mvngrad

// Mathematical constants and tolerance levels for mvngrad computations
const (
	// Test tolerance levels for different precision requirements
	TestToleranceStrict  = 1e-12 // For direct algebraic identities
	TestToleranceNormal  = 1e-10 // For factorized vs direct comparison
	TestToleranceRelaxed = 1e-8  // For ill-conditioned or large inputs

	// Mathematical constants with high precision
	MathPi         = 3.1415926535897932385 // π
	MathLn2Pi      = 1.8378770664093454836 // ln(2π)
	MathSqrt2Pi    = 2.5066282746310005024 // √(2π)
	MathInvSqrt2Pi = 0.3989422804014326780 // 1/√(2π)
)
