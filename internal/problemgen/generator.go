package problemgen

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// DefaultBatchSize is the number of questions in a standard game.
const DefaultBatchSize = 15

// slopeMagnitudes is the fixed set of slope magnitudes for Positive and
// Negative questions.
var slopeMagnitudes = []float64{1, 2, 3, 0.5, 2.0 / 3.0, 1.5}

const (
	// Vertical and horizontal lines are placed within [-4, 4].
	maxAxisOffset = 4
	// Sloped lines cross the y-axis within [-2, 2].
	maxSlopedIntercept = 2
)

// Generator produces questions from an explicit random source.
type Generator interface {
	// Generate produces a single question.
	Generate(r *rand.Rand) Question
}

// GraphGenerator is the default Generator for slope-classification graphs.
type GraphGenerator struct{}

var _ Generator = GraphGenerator{}

// Generate produces a single question.
func (GraphGenerator) Generate(r *rand.Rand) Question {
	return Generate(r)
}

// Generate picks a category uniformly at random and builds a line for it.
func Generate(r *rand.Rand) Question {
	kind := Categories[r.IntN(len(Categories))]

	line := Line{Kind: kind}
	switch kind {
	case CategoryUndefined:
		line.X = intInRange(r, maxAxisOffset)
	case CategoryZero:
		line.Intercept = intInRange(r, maxAxisOffset)
	default:
		m := slopeMagnitudes[r.IntN(len(slopeMagnitudes))]
		if kind == CategoryNegative {
			m = -m
		}
		line.Slope = m
		line.Intercept = intInRange(r, maxSlopedIntercept)
	}

	return Question{
		Answer:  kind,
		Line:    line,
		Choices: append([]Category(nil), Categories...),
	}
}

// BuildSet generates n questions in order from r.
func BuildSet(n int, r *rand.Rand) []Question {
	return BuildSetWith(GraphGenerator{}, n, r)
}

// BuildSetWith generates n questions in order using gen.
func BuildSetWith(gen Generator, n int, r *rand.Rand) []Question {
	if n < 0 {
		n = 0
	}
	qs := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, gen.Generate(r))
	}
	return qs
}

// NewRand returns a deterministic random source for seed. Two sources built
// from the same seed produce identical question sequences.
func NewRand(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// RandomSeed draws a high-entropy seed from crypto/rand.
func RandomSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// intInRange returns a uniform integer in [-limit, limit].
func intInRange(r *rand.Rand, limit int) int {
	return r.IntN(2*limit+1) - limit
}
