package domain

import (
	"fmt"
	"strings"
)

// Question count and time limit bounds accepted for a quiz request.
const (
	MinQuestions        = 1
	MaxQuestions        = 15
	MinTimeLimitMinutes = 1
	MaxTimeLimitMinutes = 120

	// OptionsPerQuestion is the number of answer options every generated
	// question carries.
	OptionsPerQuestion = 4
)

// QuizRequest describes one quiz-generation workload request. It is
// immutable once submitted to the orchestrator.
type QuizRequest struct {
	Topic            string
	Difficulty       string
	NumQuestions     int
	TimeLimitMinutes int
}

// Validate checks the request bounds. Field-level validation for the HTTP
// surface lives in internal/validation; this is the last check before a
// provider call is made.
func (r QuizRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return NewInvalidInputError("topic is required")
	}
	if r.NumQuestions < MinQuestions || r.NumQuestions > MaxQuestions {
		return NewInvalidInputError(fmt.Sprintf("num_questions must be between %d and %d", MinQuestions, MaxQuestions))
	}
	if r.TimeLimitMinutes < MinTimeLimitMinutes || r.TimeLimitMinutes > MaxTimeLimitMinutes {
		return NewInvalidInputError(fmt.Sprintf("time_limit must be between %d and %d minutes", MinTimeLimitMinutes, MaxTimeLimitMinutes))
	}
	return nil
}

// ChatRequest describes one tutoring-chat workload request. Context is an
// optional blob of quiz or question text the tutor should ground its reply in.
type ChatRequest struct {
	Message string
	Context string
}

// GeneratedQuestion is a single normalized multiple-choice question.
// CorrectAnswer is expected to equal one of Options; whether that is
// enforced depends on the normalizer's strict mode.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// QuizResult is the ordered set of questions produced by a successful
// generation. It is only ever constructed by the normalizer.
type QuizResult struct {
	Questions []GeneratedQuestion `json:"questions"`
}
