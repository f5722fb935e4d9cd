package llm

import (
	"context"
	"net/http"
	"time"
)

// OpenRouter is the last resort in the cascade. It speaks the same chat
// shape as Groq but wants attribution headers, and a 402 means the free
// tier is exhausted.
type OpenRouter struct {
	apiKey   string
	endpoint string
	model    string
	referer  string
	title    string
	httpc    *http.Client
}

func NewOpenRouter(apiKey, endpoint, model, referer, title string, timeout time.Duration) *OpenRouter {
	if model == "" {
		model = "deepseek/deepseek-chat-v3-0324:free"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OpenRouter{
		apiKey:   apiKey,
		endpoint: endpoint,
		model:    model,
		referer:  referer,
		title:    title,
		httpc:    &http.Client{Timeout: timeout},
	}
}

func (o *OpenRouter) Name() ProviderName { return ProviderOpenRouter }

func (o *OpenRouter) Generate(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = maxGroqTokens
	}
	payload := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: mentorSystemPrompt},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   maxTokens,
	}
	return doChat(ctx, o.httpc, ProviderOpenRouter, o.endpoint, payload, map[string]string{
		"Authorization": "Bearer " + o.apiKey,
		"HTTP-Referer":  o.referer,
		"X-Title":       o.title,
	})
}
