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

// Gemini calls the Google Generative Language REST endpoint. The key
// travels as a query parameter, so it must never appear in logs or errors.
type Gemini struct {
	apiKey   string
	endpoint string
	httpc    *http.Client
}

func NewGemini(apiKey, endpoint string, timeout time.Duration) *Gemini {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Gemini{
		apiKey:   apiKey,
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: timeout},
	}
}

func (g *Gemini) Name() ProviderName { return ProviderGemini }

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: req.Prompt}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
			TopP:            0.95,
			TopK:            40,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &ProviderError{Provider: ProviderGemini, Reason: ReasonUnknown, Message: "encode request"}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"?key="+g.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: ProviderGemini, Reason: ReasonUnknown, Message: "build request"}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpc.Do(httpReq)
	if err != nil {
		return "", transportError(ProviderGemini, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", statusError(ProviderGemini, resp.StatusCode)
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &ProviderError{Provider: ProviderGemini, Reason: ReasonUnknown, Message: "decode response"}
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", emptyResponseError(ProviderGemini)
	}
	text := strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", emptyResponseError(ProviderGemini)
	}
	return text, nil
}
