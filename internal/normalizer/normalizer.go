// Package normalizer coerces raw provider text into the quiz schema.
// Providers rarely return clean JSON: the payload is often wrapped in
// markdown code fences or surrounded by prose, so parsing runs a strict
// pass first and then two recovery passes before giving up.
package normalizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"quizforge/internal/domain"

	"go.uber.org/zap"
)

const snippetLimit = 200

// Normalizer converts a provider's raw quiz payload into a QuizResult.
// Chat responses never pass through here.
type Normalizer struct {
	strict bool
	logger *zap.Logger
}

// New creates a normalizer. With strict enabled, responses whose question
// count, option count, or correct answer violate the schema contract are
// rejected as parse failures, which makes them fallback triggers.
func New(strict bool, logger *zap.Logger) *Normalizer {
	return &Normalizer{strict: strict, logger: logger}
}

type quizPayload struct {
	Quiz []questionPayload `json:"quiz"`
}

type questionPayload struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Parse attempts strict parsing, then recovery: strip markdown code fences
// and retry, then take the substring between the first '{' and the last '}'
// and retry. wantQuestions is the requested count, checked only in strict
// mode (and ignored when zero).
func (n *Normalizer) Parse(provider, raw string, wantQuestions int) (domain.QuizResult, error) {
	payload, err := decode(raw)
	if err != nil {
		n.logger.Debug("Strict quiz parse failed, entering recovery",
			zap.String("provider", provider),
			zap.Error(err))

		payload, err = decode(stripFences(raw))
	}
	if err != nil {
		if sub, ok := braceSubstring(raw); ok {
			payload, err = decode(sub)
		}
	}
	if err != nil {
		n.logger.Warn("Quiz response unrecoverable",
			zap.String("provider", provider),
			zap.String("snippet", snippet(raw)),
			zap.Error(err))
		return domain.QuizResult{}, domain.NewParseError(provider, snippet(raw), err)
	}

	questions := make([]domain.GeneratedQuestion, 0, len(payload.Quiz))
	for _, q := range payload.Quiz {
		questions = append(questions, domain.GeneratedQuestion{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}

	if n.strict {
		if err := validate(questions, wantQuestions); err != nil {
			return domain.QuizResult{}, domain.NewParseError(provider, snippet(raw), err)
		}
	}

	return domain.QuizResult{Questions: questions}, nil
}

func decode(s string) (quizPayload, error) {
	var payload quizPayload
	if err := json.Unmarshal([]byte(s), &payload); err != nil {
		return quizPayload{}, err
	}
	if payload.Quiz == nil {
		return quizPayload{}, errors.New(`missing "quiz" array`)
	}
	return payload, nil
}

// stripFences removes leading/trailing markdown code-fence markers,
// mirroring the cleanup providers like Gemini routinely require.
func stripFences(s string) string {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func braceSubstring(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func validate(questions []domain.GeneratedQuestion, want int) error {
	if want > 0 && len(questions) != want {
		return fmt.Errorf("expected %d questions, got %d", want, len(questions))
	}
	for i, q := range questions {
		if len(q.Options) != domain.OptionsPerQuestion {
			return fmt.Errorf("question %d has %d options, want %d", i+1, len(q.Options), domain.OptionsPerQuestion)
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("question %d: correct answer is not one of the options", i+1)
		}
	}
	return nil
}

func snippet(s string) string {
	if len(s) > snippetLimit {
		return s[:snippetLimit]
	}
	return s
}
