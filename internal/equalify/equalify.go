// Package equalify implements pluggable answer-token comparison strategies.
// Equalifiers never influence the core solver, which always compares
// answer tokens for exact string equality; they exist purely to let the
// reporting layer (TEST EQUALITY, GET ANSWERS TO) judge near-equal answers
// as equal, for domains like numeric estimation where two sources rarely
// submit byte-identical tokens.
package equalify

import (
	"strconv"
	"strings"

	"github.com/waoai/confidis/internal/domain"
	"gonum.org/v1/gonum/floats"
)

// Equalifier measures the distance between two answer tokens. A distance
// of 0 means the tokens are equal for reporting purposes; a distance of 1
// means maximally different. Implementations clamp their output to [0,1].
type Equalifier interface {
	Distance(a, b string) (float64, error)
}

// Exact treats two tokens as equal only if they are byte-identical. It is
// the engine's default comparison method.
type Exact struct{}

func (Exact) Distance(a, b string) (float64, error) {
	if a == b {
		return 0, nil
	}
	return 1, nil
}

// Numeric compares two tokens as floating-point numbers and normalizes the
// absolute difference by MaxDistance, clamping to [0,1]. MaxDistance must
// be positive.
type Numeric struct {
	MaxDistance float64
}

func (n Numeric) Distance(a, b string) (float64, error) {
	fa, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, domain.NewParseError("numeric comparison: %q is not a number", a)
	}
	fb, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, domain.NewParseError("numeric comparison: %q is not a number", b)
	}
	if n.MaxDistance <= 0 {
		return 0, domain.NewOutOfRange("max_distance must be positive, got %v", n.MaxDistance)
	}
	d := (fa - fb) / n.MaxDistance
	if d < 0 {
		d = -d
	}
	return clamp01(d), nil
}

// VecDistanceFunc names the norm a NumericVec equalifier reduces an
// element-wise difference with.
type VecDistanceFunc string

const (
	VecL1              VecDistanceFunc = "l1"
	VecL2              VecDistanceFunc = "l2"
	VecPercentNotEqual VecDistanceFunc = "percent_not_equal"
)

// NumericVec compares two tokens as fixed-length, comma-separated
// float vectors, reducing the element-wise difference with DiffFn. The l1
// and l2 results are normalized by AllowedDifference; percent_not_equal is
// already a fraction in [0,1] and is not divided by it.
type NumericVec struct {
	VectorLength      int
	AllowedDifference float64
	DiffFn            VecDistanceFunc
}

func (v NumericVec) Distance(a, b string) (float64, error) {
	va, err := splitFloats(a, v.VectorLength)
	if err != nil {
		return 0, err
	}
	vb, err := splitFloats(b, v.VectorLength)
	if err != nil {
		return 0, err
	}
	if v.AllowedDifference <= 0 {
		return 0, domain.NewOutOfRange("allowed_difference must be positive, got %v", v.AllowedDifference)
	}

	var raw float64
	switch v.DiffFn {
	case VecL1:
		raw = floats.Distance(va, vb, 1)
	case VecL2:
		raw = floats.Distance(va, vb, 2)
	case VecPercentNotEqual:
		mismatches := 0
		for i := range va {
			if va[i] != vb[i] {
				mismatches++
			}
		}
		raw = float64(mismatches) / float64(len(va))
		return clamp01(raw), nil
	default:
		return 0, domain.NewUnknownParameter(string(v.DiffFn))
	}
	return clamp01(raw / v.AllowedDifference), nil
}

func splitFloats(token string, wantLen int) ([]float64, error) {
	parts := strings.Split(token, ",")
	if len(parts) != wantLen {
		return nil, domain.NewParseError("numeric_vec comparison: expected %d components, got %d in %q", wantLen, len(parts), token)
	}
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, domain.NewParseError("numeric_vec comparison: %q is not a number", p)
		}
		out[i] = f
	}
	return out, nil
}

// Build constructs the named equalifier from its CONFIGURE key=value
// arguments. name and every key are matched case-sensitively, mirroring
// the rest of the command grammar.
func Build(name string, kwargs map[string]string) (Equalifier, error) {
	switch name {
	case "exact":
		return Exact{}, nil
	case "numeric":
		d, err := floatArg(kwargs, "max_distance")
		if err != nil {
			return nil, err
		}
		return Numeric{MaxDistance: d}, nil
	case "numeric_vec":
		length, err := intArg(kwargs, "vec_length")
		if err != nil {
			return nil, err
		}
		diff, err := floatArg(kwargs, "allowed_difference")
		if err != nil {
			return nil, err
		}
		fn, ok := kwargs["diff_fn"]
		if !ok {
			fn = string(VecL2)
		}
		switch VecDistanceFunc(fn) {
		case VecL1, VecL2, VecPercentNotEqual:
		default:
			return nil, domain.NewUnknownParameter(fn)
		}
		return NumericVec{VectorLength: length, AllowedDifference: diff, DiffFn: VecDistanceFunc(fn)}, nil
	default:
		return nil, domain.NewUnknownParameter(name)
	}
}

func floatArg(kwargs map[string]string, key string) (float64, error) {
	raw, ok := kwargs[key]
	if !ok {
		return 0, domain.NewUnknownParameter(key)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.NewParseError("%s must be a number, got %q", key, raw)
	}
	return f, nil
}

func intArg(kwargs map[string]string, key string) (int, error) {
	raw, ok := kwargs[key]
	if !ok {
		return 0, domain.NewUnknownParameter(key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewParseError("%s must be an integer, got %q", key, raw)
	}
	return n, nil
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
