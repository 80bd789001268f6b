package openrouter

// chatRequest is the body of an OpenRouter chat-completions call. Sampling
// parameters are fixed: the doodle style lives in the prompt, not in tuning.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Modalities  []string      `json:"modalities"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// chatMessage is a single conversation turn.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// errorEnvelope matches the error body OpenRouter returns on non-2xx
// responses. Only the message is used; the raw body is the fallback when
// the envelope does not parse.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
