package session

import (
	sess "github.com/abhisek/slopeshowdown/internal/session"
)

// answerScoredMsg is sent when a submitted answer has been scored and logged.
type answerScoredMsg struct {
	Result sess.Result
	Err    error
}

// advancedMsg is sent after moving past an answered question.
type advancedMsg struct {
	Err error
}
