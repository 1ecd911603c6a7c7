package models

// ChatRequest is the body the chat client posts to the relay.
// The relay forwards it upstream with stream and system added.
type ChatRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

// NewChatRequest builds a request for the given transcript
func NewChatRequest(model string, maxTokens int, messages []Message) ChatRequest {
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return ChatRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  messages,
	}
}
