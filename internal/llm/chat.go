package llm

import (
	"context"
	"time"

	"blueprintai/internal/logger"
)

const chatFallbackReply = "I could not reach the mentor service just now. " +
	"Try rephrasing your question, or ask again in a moment."

// ChatClient is the fast mentor-chat path: a single short Groq call with a
// tight timeout, outside the cascade. It degrades to a canned reply
// instead of returning an error.
type ChatClient struct {
	groq *Groq
	key  string
	log  *logger.Logger
}

func NewChatClient(apiKey, endpoint, model string, timeout time.Duration, log *logger.Logger) *ChatClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &ChatClient{
		groq: NewGroq(apiKey, endpoint, model, timeout),
		key:  apiKey,
		log:  log,
	}
}

// Reply answers one chat message. The boolean reports whether the reply
// came from the live model rather than the canned fallback.
func (c *ChatClient) Reply(ctx context.Context, message string) (string, bool) {
	if !UsableKey(c.key) {
		return chatFallbackReply, false
	}
	text, err := c.groq.generateChat(ctx, message)
	if err != nil {
		perr := asProviderError(ProviderGroq, err)
		c.log.Warn("mentor chat fallback", "reason", string(perr.Reason), "status", perr.Status)
		return chatFallbackReply, false
	}
	return text, true
}

// generateChat uses the short-form tuning for conversational replies.
func (g *Groq) generateChat(ctx context.Context, message string) (string, error) {
	payload := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: mentorSystemPrompt},
			{Role: "user", Content: message},
		},
		Temperature: 0.25,
		MaxTokens:   200,
		TopP:        0.9,
	}
	return doChat(ctx, g.httpc, ProviderGroq, g.endpoint, payload, map[string]string{
		"Authorization": "Bearer " + g.apiKey,
	})
}
