/*
Package config holds the cascade engine's tunable parameters in a plain
struct with a Default constructor: a small value type passed explicitly into
the engine rather than read from package-level globals or parsed flags.
*/
package config

import "github.com/corsika-go/gocascade/units"

// Engine collects the knobs the cascade engine and its geometry/tracking
// collaborators need beyond the physical model itself.
type Engine struct {
	// MasterSeed seeds the random.Registry every named stream derives from.
	MasterSeed uint64

	// TrackingEpsilon is the minimum positive intersection time tracking.Track
	// treats as real (guards against re-triggering the boundary a step just
	// crossed due to floating-point residue).
	TrackingEpsilon units.Time

	// StepSafetyFactor multiplies the continuous processes' step-length
	// bound (Sequence.MaxStepLength) before arbitration. The interaction,
	// decay and geometric bounds are not scaled.
	StepSafetyFactor float64

	// LogLevel names the logging.ParseLevel level the engine logs at.
	LogLevel string
}

// Default returns the engine's default tunables.
func Default() Engine {
	return Engine{
		MasterSeed:       0,
		TrackingEpsilon:  units.Time(1e-12),
		StepSafetyFactor: 1.0,
		LogLevel:         "info",
	}
}
