package core

import (
	"fmt"
	"math"
)

// DistanceMetric selects how the distance between two positions is measured
type DistanceMetric int

const (
	Manhattan DistanceMetric = iota
	Euclidean
	EuclideanSquared
)

func (m DistanceMetric) String() string {
	switch m {
	case Manhattan:
		return "manhattan"
	case Euclidean:
		return "euclidean"
	case EuclideanSquared:
		return "euclidean_squared"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// Distance measures a to b with this metric
func (m DistanceMetric) Distance(a, b Position) float64 {
	switch m {
	case Euclidean:
		return a.EuclideanDistance(b)
	case EuclideanSquared:
		return a.DistanceSquared(b)
	default:
		return a.ManhattanDistance(b)
	}
}

// Position is a world grid coordinate, comparable by value and usable as a map key
type Position struct {
	X, Y int
}

// Origin is the zero position
var Origin = Position{}

// NewPosition returns the position at (x, y)
func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Offset returns p translated by (dx, dy)
func (p Position) Offset(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// InBounds reports whether p lies inside the border of a width x height console
func (p Position) InBounds(width, height int) bool {
	return NewConsoleArea(width, height).Contains(p)
}

// Distance measures p to other with the given metric
func (p Position) Distance(other Position, metric DistanceMetric) float64 {
	return metric.Distance(p, other)
}

// DistanceFromOrigin is the magnitude of p under the given metric
func (p Position) DistanceFromOrigin(metric DistanceMetric) float64 {
	return p.Distance(Origin, metric)
}

// ManhattanDistance is |dx| + |dy|
func (p Position) ManhattanDistance(other Position) float64 {
	dx, dy := p.X-other.X, p.Y-other.Y
	return float64(absInt(dx) + absInt(dy))
}

// DistanceSquared is the squared Euclidean distance
func (p Position) DistanceSquared(other Position) float64 {
	dx := float64(p.X) - float64(other.X)
	dy := float64(p.Y) - float64(other.Y)
	return dx*dx + dy*dy
}

// EuclideanDistance is the straight-line distance
func (p Position) EuclideanDistance(other Position) float64 {
	return math.Sqrt(p.DistanceSquared(other))
}

func (p Position) dot(other Position) int {
	return p.X*other.X + p.Y*other.Y
}

// Angle returns, in radians, the angle between the position vectors p and other
// measured from the origin, with magnitudes taken under the Manhattan metric
// Returns 0 when either vector has zero magnitude
func (p Position) Angle(other Position) float64 {
	selfMag := p.DistanceFromOrigin(Manhattan)
	otherMag := other.DistanceFromOrigin(Manhattan)
	if selfMag == 0 || otherMag == 0 {
		return 0
	}
	inner := float64(p.dot(other)) / (selfMag * otherMag)
	// Manhattan magnitudes bound |inner| by 1; clamp guards rounding only
	inner = math.Max(-1, math.Min(1, inner))
	return math.Acos(inner)
}

// GoDistanceTheta walks distance cells from p at angle theta (radians)
// The x offset follows sin(theta) and the y offset cos(theta), truncated toward zero
func (p Position) GoDistanceTheta(distance, theta float64) Position {
	sin, cos := math.Sincos(theta)
	return Position{
		X: p.X + int(sin*distance),
		Y: p.Y + int(cos*distance),
	}
}

// stepEpsilon decides when the two axis components count as equal
const stepEpsilon = 1e-9

// StepTowards advances one 8-directional grid step from p toward target
// The dominant axis of the displacement angle wins; equal axes step diagonally
func (p Position) StepTowards(target Position) Position {
	dx, dy := target.X-p.X, target.Y-p.Y
	if dx == 0 && dy == 0 {
		return p
	}

	theta := math.Atan2(float64(dy), float64(dx))
	sin, cos := math.Sincos(theta)
	absCos, absSin := math.Abs(cos), math.Abs(sin)

	switch {
	case math.Abs(absCos-absSin) < stepEpsilon:
		return p.Offset(signInt(dx), signInt(dy))
	case absCos > absSin:
		return p.Offset(signInt(dx), 0)
	default:
		return p.Offset(0, signInt(dy))
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func signInt(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
