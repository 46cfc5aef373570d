package provider

import (
	"fmt"

	"quizforge/internal/domain"
)

const (
	quizSystemPrompt = "You are a quiz generation expert. Always respond with valid JSON."
	chatSystemPrompt = "You are a helpful educational tutor. Provide clear, encouraging explanations."
)

const quizPromptTemplate = `You are an expert quiz generator. Create a multiple choice quiz on the topic: "%s"

Requirements:
- Difficulty: %s
- Number of questions: %d
- Each question must have exactly 4 options (A, B, C, D)
- Provide clear explanations for correct answers
- Ensure questions are appropriate for the specified difficulty level

Respond ONLY with valid JSON in this exact format:
{
  "quiz": [
    {
      "question": "Question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_answer": "Option A",
      "explanation": "Detailed explanation of why this is correct."
    }
  ]
}

Important: Ensure all questions are unique and relevant to the topic. Make explanations educational and helpful.`

// QuizPrompt renders the shared quiz-generation prompt. Every adapter sends
// the same prompt; only the wire format around it differs per vendor.
func QuizPrompt(req domain.QuizRequest) string {
	return fmt.Sprintf(quizPromptTemplate, req.Topic, req.Difficulty, req.NumQuestions)
}

// ChatPrompt renders the tutor prompt for a student message, attaching the
// optional quiz/question context when present.
func ChatPrompt(req domain.ChatRequest) string {
	if req.Context != "" {
		return fmt.Sprintf("Student Question: %s\nContext: %s", req.Message, req.Context)
	}
	return fmt.Sprintf("Student Question: %s", req.Message)
}
