package dto

// ChatRequest is the request body for a tutoring message
// @Description Student message with optional quiz context
type ChatRequest struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// ChatResponse represents the tutor reply in the API response
type ChatResponse struct {
	Reply    string `json:"reply"`
	Provider string `json:"provider,omitempty"`
}
