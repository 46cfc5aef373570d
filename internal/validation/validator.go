package validation

import (
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
)

const (
	maxTopicLength   = 200
	maxMessageLength = 2000
	maxContextLength = 4000
)

var allowedDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest validates the quiz generation request
func (v *Validator) ValidateGenerateQuizRequest(req *dto.GenerateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Topic) == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	} else if len(req.Topic) > maxTopicLength {
		errors = append(errors, domain.NewOutOfRangeError("topic", len(req.Topic), 1, maxTopicLength))
	}

	if strings.TrimSpace(req.Difficulty) == "" {
		errors = append(errors, domain.NewMissingFieldError("difficulty"))
	} else if !allowedDifficulties[strings.ToLower(req.Difficulty)] {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
	}

	if req.NumQuestions < domain.MinQuestions || req.NumQuestions > domain.MaxQuestions {
		errors = append(errors, domain.NewOutOfRangeError("num_questions", req.NumQuestions, domain.MinQuestions, domain.MaxQuestions))
	}

	if req.TimeLimitMinutes < domain.MinTimeLimitMinutes || req.TimeLimitMinutes > domain.MaxTimeLimitMinutes {
		errors = append(errors, domain.NewOutOfRangeError("time_limit", req.TimeLimitMinutes, domain.MinTimeLimitMinutes, domain.MaxTimeLimitMinutes))
	}

	return errors
}

// ValidateChatRequest validates the tutoring chat request
func (v *Validator) ValidateChatRequest(req *dto.ChatRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Message) == "" {
		errors = append(errors, domain.NewMissingFieldError("message"))
	} else if len(req.Message) > maxMessageLength {
		errors = append(errors, domain.NewOutOfRangeError("message", len(req.Message), 1, maxMessageLength))
	}

	if len(req.Context) > maxContextLength {
		errors = append(errors, domain.NewOutOfRangeError("context", len(req.Context), 0, maxContextLength))
	}

	return errors
}
