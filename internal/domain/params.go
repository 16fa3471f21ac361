package domain

// Params holds the three tunables that control the solver's convergence
// and stability. All three are mutable at any time via CONFIGURE; a change
// takes effect on the next solve.
type Params struct {
	// InitialSourceStrength is the prior "effective number of correct
	// answers" assigned to a new source. Larger values make quality
	// estimates slower to move. Must be >= 0.
	InitialSourceStrength float64

	// DefaultSourceQuality is the prior probability that a new, unknown
	// source is correct on any given question. Must be in [0,1].
	DefaultSourceQuality float64

	// LogWeightFactor scales the logarithmic transform that converts a
	// source's quality into vote weight. Must be > 0.
	LogWeightFactor float64
}

// DefaultParams returns the engine's defaults, matching the protocol's
// documented CONFIGURE defaults.
func DefaultParams() Params {
	return Params{
		InitialSourceStrength: 10.0,
		DefaultSourceQuality:  0.1,
		LogWeightFactor:       100.0,
	}
}

// TrustedWeight is a sentinel numeric stand-in for a trusted source's vote,
// large enough to dominate the sum of any plausible number of non-trusted
// contributions regardless of LogWeightFactor. The solver does not compute
// with it: a question with a trusted submission is frozen on that
// submission's answer instead of being weighted.
const TrustedWeight = 1e18

// TrustedQuality is the quality pinned onto a trusted source, regardless
// of evidence.
const TrustedQuality = 1.0

// AnswerResult is the structured response to GET ANSWER TO.
type AnswerResult struct {
	Answer     string
	Confidence float64
}

// SourceResult is the structured response to GET SOURCE.
type SourceResult struct {
	Quality float64
}

// AnswerConfidencePair is one entry of the GET ANSWERS TO response.
type AnswerConfidencePair struct {
	Answer     string
	Confidence float64
}

// EqualityResult is the structured response to TEST EQUALITY.
type EqualityResult struct {
	Distance float64
}
