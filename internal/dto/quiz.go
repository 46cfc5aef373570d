package dto

// GenerateQuizRequest is the request body for quiz generation
// @Description Quiz generation parameters
type GenerateQuizRequest struct {
	Topic            string `json:"topic"`
	Difficulty       string `json:"difficulty"`
	NumQuestions     int    `json:"num_questions"`
	TimeLimitMinutes int    `json:"time_limit"`
}

// QuestionResponse represents one generated question in the API response
type QuestionResponse struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// GenerateQuizResponse represents a generated quiz in the API response
// @Description Generated quiz
type GenerateQuizResponse struct {
	Topic            string             `json:"topic"`
	Difficulty       string             `json:"difficulty"`
	TimeLimitMinutes int                `json:"time_limit"`
	Provider         string             `json:"provider,omitempty"`
	Cached           bool               `json:"cached"`
	Questions        []QuestionResponse `json:"quiz"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
