package session

import "math"

// WrongAnswerPenalty is subtracted from the score for every incorrect answer.
const WrongAnswerPenalty = 1

// ScoreDelta returns the points for a correct answer that brings the streak
// to streak. Halves round away from zero, so the sequence for streaks 1..7
// is 2, 3, 5, 6, 8, 9, 11.
func ScoreDelta(streak int) int {
	if streak <= 0 {
		return 0
	}
	return int(math.Round(1.5 * float64(streak)))
}
