// Package metric implements the distance family D(p, q, k) used both as edge
// weight and as the A* heuristic.
//
// The exponent k selects one of three regimes:
//
//   - k == 0: unit cost. Every step costs 1, which turns the graph into an
//     unweighted one and shortest paths into minimum hop counts.
//   - k < 0 or k == ±Inf: Chebyshev distance max(|dx|, |dy|).
//   - 0 < k < Inf: the power mean (|dx|^k + |dy|^k)^(1/k). k = 1 is the
//     Manhattan distance, k = 2 the Euclidean distance.
//
// Identical points are at distance 0 in every regime but the unit one, where
// every call returns 1. Vertex identity is handled by the graph, so the
// heuristic is still 0 at the target.
//
// # Consistency
//
// D is a true metric, and h(u) = D(u, t) is therefore consistent with edge
// weights D(u, v), when k == 0, k >= 1, k < 0 or k is infinite. For 0 < k < 1
// the power mean violates the triangle inequality and A* may return a
// suboptimal distance; [Consistent] reports false for that range.
package metric

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/gridpath/pkg/errors"
)

// Point is a planar coordinate.
type Point struct {
	X, Y float64
}

// Regime identifies which branch of the distance family an exponent selects.
type Regime int

const (
	// RegimeUnit is selected by k == 0.
	RegimeUnit Regime = iota
	// RegimeChebyshev is selected by negative or infinite k.
	RegimeChebyshev
	// RegimePowerMean is selected by finite positive k.
	RegimePowerMean
)

// String returns the regime name.
func (r Regime) String() string {
	switch r {
	case RegimeUnit:
		return "unit"
	case RegimeChebyshev:
		return "chebyshev"
	case RegimePowerMean:
		return "power-mean"
	default:
		return "unknown"
	}
}

// RegimeOf returns the regime selected by k. NaN falls into RegimePowerMean
// and is rejected earlier by the graph loader.
func RegimeOf(k float64) Regime {
	switch {
	case k == 0:
		return RegimeUnit
	case k < 0 || math.IsInf(k, 0):
		return RegimeChebyshev
	default:
		return RegimePowerMean
	}
}

// Distance returns D(p, q, k). It never returns a negative value and is
// symmetric in p and q. With k == 0 every pair costs 1, coincident points
// included; the other regimes return 0 for coincident points.
func Distance(p, q Point, k float64) float64 {
	if RegimeOf(k) == RegimeUnit {
		return 1
	}
	dx := math.Abs(p.X - q.X)
	dy := math.Abs(p.Y - q.Y)
	if RegimeOf(k) == RegimeChebyshev {
		return math.Max(dx, dy)
	}

	switch k {
	case 1:
		return dx + dy
	case 2:
		return math.Hypot(dx, dy)
	}
	return powerMean(dx, dy, k)
}

// powerMean returns (dx^k + dy^k)^(1/k) scaled by the larger component so
// that neither the powers nor the root leave the float64 range.
func powerMean(dx, dy, k float64) float64 {
	m := math.Max(dx, dy)
	if m == 0 {
		return 0
	}
	a, b := dx/m, dy/m
	return m * math.Pow(math.Pow(a, k)+math.Pow(b, k), 1/k)
}

// Consistent reports whether D is a true metric for k, which makes the
// heuristic h(u) = D(u, t) consistent with the edge weights.
func Consistent(k float64) bool {
	if math.IsNaN(k) {
		return false
	}
	return k <= 0 || k >= 1
}

// ParseExponent parses an exponent token. Besides decimal numbers it accepts
// "inf", "+inf", "-inf" and "infinity" in any case.
func ParseExponent(s string) (float64, error) {
	k, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeMalformedInput, err, "invalid exponent %q", s)
	}
	if math.IsNaN(k) {
		return 0, errors.New(errors.ErrCodeMalformedInput, "exponent must not be NaN")
	}
	return k, nil
}

// FormatExponent is the inverse of ParseExponent.
func FormatExponent(k float64) string {
	switch {
	case math.IsInf(k, 1):
		return "inf"
	case math.IsInf(k, -1):
		return "-inf"
	}
	return strconv.FormatFloat(k, 'g', -1, 64)
}
