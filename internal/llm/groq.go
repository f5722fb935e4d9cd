package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// mentorSystemPrompt steers the chat-completions providers toward planning
// guidance and away from writing code for the student.
const mentorSystemPrompt = "You are a project mentor for students. You help plan projects: " +
	"you explain ideas, structure blueprints, and suggest approaches. " +
	"You never write implementation code; you guide the student to build it themselves. " +
	"Keep answers practical and encouraging."

const maxGroqTokens = 8000

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Groq calls the Groq OpenAI-compatible chat completions endpoint.
type Groq struct {
	apiKey   string
	endpoint string
	model    string
	httpc    *http.Client
}

func NewGroq(apiKey, endpoint, model string, timeout time.Duration) *Groq {
	if model == "" {
		model = "llama-3.1-8b-instant"
	}
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Groq{
		apiKey:   apiKey,
		endpoint: endpoint,
		model:    model,
		httpc:    &http.Client{Timeout: timeout},
	}
}

func (g *Groq) Name() ProviderName { return ProviderGroq }

func (g *Groq) Generate(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 || maxTokens > maxGroqTokens {
		maxTokens = maxGroqTokens
	}
	payload := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: mentorSystemPrompt},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   maxTokens,
	}
	return doChat(ctx, g.httpc, ProviderGroq, g.endpoint, payload, map[string]string{
		"Authorization": "Bearer " + g.apiKey,
	})
}

// doChat posts an OpenAI-style chat request and extracts the first choice.
func doChat(ctx context.Context, httpc *http.Client, provider ProviderName, endpoint string, payload chatRequest, headers map[string]string) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &ProviderError{Provider: provider, Reason: ReasonUnknown, Message: "encode request"}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: provider, Reason: ReasonUnknown, Message: "build request"}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := httpc.Do(httpReq)
	if err != nil {
		return "", transportError(provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", statusError(provider, resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &ProviderError{Provider: provider, Reason: ReasonUnknown, Message: "decode response"}
	}
	if len(decoded.Choices) == 0 {
		return "", emptyResponseError(provider)
	}
	text := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if text == "" {
		return "", emptyResponseError(provider)
	}
	return text, nil
}
