package problemgen

import (
	"fmt"
	"math"
)

// Category is the slope classification a learner must pick.
type Category string

const (
	CategoryPositive  Category = "Positive"
	CategoryNegative  Category = "Negative"
	CategoryZero      Category = "Zero"
	CategoryUndefined Category = "Undefined"
)

// Categories lists every slope category in canonical display order.
// Every question offers exactly these choices.
var Categories = []Category{
	CategoryPositive,
	CategoryNegative,
	CategoryZero,
	CategoryUndefined,
}

// Question represents a generated graph question ready for display.
type Question struct {
	// Answer is the correct slope category.
	Answer Category

	// Line holds the parameters needed to plot the graph.
	Line Line

	// Choices always contains the four category labels. Shuffling for
	// display is left to the caller.
	Choices []Category
}

// Line describes the plotted line. Which fields are meaningful depends on Kind:
//
//	Positive, Negative: y = Slope*x + Intercept
//	Zero:               y = Intercept
//	Undefined:          x = X
type Line struct {
	Kind      Category
	Slope     float64
	Intercept int
	X         int
}

// Vertical reports whether the line has an undefined slope.
func (l Line) Vertical() bool {
	return l.Kind == CategoryUndefined
}

// Y evaluates the line at x. It returns NaN for vertical lines.
func (l Line) Y(x float64) float64 {
	switch l.Kind {
	case CategoryUndefined:
		return math.NaN()
	case CategoryZero:
		return float64(l.Intercept)
	default:
		return l.Slope*x + float64(l.Intercept)
	}
}

// Describe returns the equation of the line, e.g. "y = 2/3x - 1" or "x = -2".
func (l Line) Describe() string {
	switch l.Kind {
	case CategoryUndefined:
		return fmt.Sprintf("x = %d", l.X)
	case CategoryZero:
		return fmt.Sprintf("y = %d", l.Intercept)
	}

	m := formatSlope(l.Slope)
	switch {
	case l.Intercept > 0:
		return fmt.Sprintf("y = %sx + %d", m, l.Intercept)
	case l.Intercept < 0:
		return fmt.Sprintf("y = %sx - %d", m, -l.Intercept)
	default:
		return fmt.Sprintf("y = %sx", m)
	}
}

// formatSlope renders slope magnitudes from the fixed set as short
// fractions where a decimal would be lossy.
func formatSlope(m float64) string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	switch {
	case m == 1:
		return sign
	case math.Abs(m-2.0/3.0) < 1e-9:
		return sign + "2/3"
	case m == 0.5:
		return sign + "1/2"
	case m == 1.5:
		return sign + "3/2"
	case m == math.Trunc(m):
		return fmt.Sprintf("%s%d", sign, int(m))
	default:
		return fmt.Sprintf("%s%g", sign, m)
	}
}
