package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blueprintai/internal/config"
	"blueprintai/internal/llm"
	"blueprintai/internal/planner"
	"blueprintai/internal/ratelimit"
)

type stubGenerator struct {
	json    llm.JSONResult
	text    llm.Result
	err     error
	lastReq llm.Request
}

func (s *stubGenerator) Generate(_ context.Context, req llm.Request) (llm.Result, error) {
	s.lastReq = req
	if s.err != nil {
		return llm.Result{}, s.err
	}
	return s.text, nil
}

func (s *stubGenerator) GenerateJSON(_ context.Context, req llm.Request) (llm.JSONResult, error) {
	s.lastReq = req
	if s.err != nil {
		return llm.JSONResult{}, s.err
	}
	return s.json, nil
}

func (s *stubGenerator) Status() llm.Status {
	return llm.Status{Providers: map[llm.ProviderName]bool{llm.ProviderGroq: true}}
}

func newTestHandler(gen llm.Generator, mutate func(*Deps)) *Handler {
	cfg := config.Default()
	deps := Deps{
		Config:  cfg,
		Planner: planner.New(gen, nil),
		Gen:     gen,
		Chat:    llm.NewChatClient("", cfg.Groq.Endpoint, cfg.Groq.Model, time.Second, nil),
	}
	if mutate != nil {
		mutate(&deps)
	}
	return NewHandler(deps)
}

func doJSON(t *testing.T, h *Handler, method, path string, body any) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)

	var env Envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v (body %q)", err, w.Body.String())
		}
	}
	return w, env
}

func dataMap(t *testing.T, env Envelope) map[string]any {
	t.Helper()
	m, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", env.Data)
	}
	return m
}

func TestHealth(t *testing.T) {
	h := newTestHandler(&stubGenerator{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestGenerateBlueprintHappyPath(t *testing.T) {
	gen := &stubGenerator{json: llm.JSONResult{
		Data: map[string]any{
			"summary": map[string]any{"problem_statement": "Tracking attendance is slow"},
		},
		Provider: llm.ProviderGemini,
	}}
	h := newTestHandler(gen, nil)

	w, env := doJSON(t, h, http.MethodPost, "/api/planning/generate-blueprint",
		map[string]any{"idea": "A student attendance tracker for colleges", "mode": "college"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if !env.Success {
		t.Fatalf("expected success envelope")
	}
	data := dataMap(t, env)
	bp, ok := data["blueprint"].(map[string]any)
	if !ok {
		t.Fatalf("expected blueprint object, got %T", data["blueprint"])
	}
	expanded, ok := bp["expandedIdea"].(map[string]any)
	if !ok {
		t.Fatalf("expected expandedIdea section")
	}
	if expanded["problem_statement"] != "Tracking attendance is slow" {
		t.Fatalf("unexpected problem statement: %v", expanded["problem_statement"])
	}
	if data["provider"] != "gemini" {
		t.Fatalf("expected provider gemini, got %v", data["provider"])
	}
	if !strings.HasPrefix(bp["userFlowMermaid"].(string), "flowchart") {
		t.Fatalf("user flow diagram must be a flowchart")
	}
}

func TestGenerateBlueprintRejectsShortIdea(t *testing.T) {
	h := newTestHandler(&stubGenerator{}, nil)
	w, env := doJSON(t, h, http.MethodPost, "/api/planning/generate-blueprint",
		map[string]any{"idea": "app"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if env.Success {
		t.Fatalf("expected failure envelope")
	}
	if len(env.Errors) == 0 || env.Errors[0] != "too_short" {
		t.Fatalf("expected too_short code, got %v", env.Errors)
	}
}

func TestGenerateBlueprintCascadeFailureIsGeneric(t *testing.T) {
	gen := &stubGenerator{err: &llm.CascadeError{Attempts: []llm.ProviderError{
		{Provider: llm.ProviderGemini, Reason: llm.ReasonRateLimited, Status: 429, Message: "quota exceeded"},
		{Provider: llm.ProviderGroq, Reason: llm.ReasonAuthFailed, Status: 401, Message: "bad key"},
	}}}
	h := newTestHandler(gen, nil)

	w, env := doJSON(t, h, http.MethodPost, "/api/planning/generate-blueprint",
		map[string]any{"idea": "A recipe sharing platform for home cooks"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if env.Message != llm.BusyMessage {
		t.Fatalf("expected the generic busy message, got %q", env.Message)
	}
	if strings.Contains(w.Body.String(), "quota") || strings.Contains(w.Body.String(), "bad key") {
		t.Fatalf("provider detail leaked into response: %s", w.Body.String())
	}
}

func TestGenerateBlueprintSoftParseFailureServesDefaults(t *testing.T) {
	gen := &stubGenerator{json: llm.JSONResult{
		Raw:          "not json at all",
		Provider:     llm.ProviderGroq,
		ParseWarning: "no json object found",
	}}
	h := newTestHandler(gen, nil)

	w, env := doJSON(t, h, http.MethodPost, "/api/planning/generate-blueprint",
		map[string]any{"idea": "A recipe sharing platform for home cooks"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on soft parse failure, got %d", w.Code)
	}
	bp := dataMap(t, env)["blueprint"].(map[string]any)
	expanded := bp["expandedIdea"].(map[string]any)
	if expanded["problem_statement"] != "Not provided by AI" {
		t.Fatalf("expected default problem statement, got %v", expanded["problem_statement"])
	}
}

func TestExpandIdea(t *testing.T) {
	gen := &stubGenerator{json: llm.JSONResult{
		Data:     map[string]any{"problem_statement": "Food waste at home", "target_users": []any{"Households"}},
		Provider: llm.ProviderGroq,
	}}
	h := newTestHandler(gen, nil)

	w, env := doJSON(t, h, http.MethodPost, "/api/planning/expand-idea",
		map[string]any{"idea": "An app that tracks leftovers and suggests recipes"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	summary := dataMap(t, env)["summary"].(map[string]any)
	if summary["problem_statement"] != "Food waste at home" {
		t.Fatalf("unexpected summary: %v", summary)
	}
}

func TestRegenerateBlueprintRoute(t *testing.T) {
	gen := &stubGenerator{json: llm.JSONResult{
		Data: map[string]any{
			"summary": map[string]any{"problem_statement": "Updated problem"},
		},
		Provider: llm.ProviderGroq,
	}}
	h := newTestHandler(gen, nil)

	w, env := doJSON(t, h, http.MethodPost, "/api/planning/regenerate-blueprint",
		map[string]any{"summary": map[string]any{
			"problem_statement": "Updated problem",
			"target_users":      []string{"Students"},
		}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	bp := dataMap(t, env)["blueprint"].(map[string]any)
	if _, ok := bp["expandedIdea"]; !ok {
		t.Fatalf("expected a full frontend blueprint, got %v", bp)
	}

	w, _ = doJSON(t, h, http.MethodPost, "/api/planning/regenerate-blueprint",
		map[string]any{"summary": map[string]any{}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty summary should be rejected, got %d", w.Code)
	}
}

func TestTechStackExtendedRoute(t *testing.T) {
	gen := &stubGenerator{json: llm.JSONResult{
		Data: map[string]any{
			"primary_stack": []any{map[string]any{"category": "Frontend", "technology": "React", "skill_level": "Beginner"}},
			"alternatives":  []any{map[string]any{"category": "Frontend", "primary": "React", "alternative": "Vue"}},
		},
		Provider: llm.ProviderGroq,
	}}
	h := newTestHandler(gen, nil)

	w, env := doJSON(t, h, http.MethodPost, "/api/planning/tech-stack-extended",
		map[string]any{"summary": "a canteen app", "features": []string{"orders"}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	stack := dataMap(t, env)["tech_stack_extended"].(map[string]any)
	primary := stack["primary_stack"].([]any)
	if len(primary) != 1 {
		t.Fatalf("unexpected primary stack: %v", primary)
	}
}

func TestArchitectureRoute(t *testing.T) {
	gen := &stubGenerator{json: llm.JSONResult{
		Data: map[string]any{
			"overview": "Three tiers.",
			"modules":  []any{"UI", "API", "DB"},
		},
		Provider: llm.ProviderGroq,
	}}
	h := newTestHandler(gen, nil)

	w, env := doJSON(t, h, http.MethodPost, "/api/planning/architecture", map[string]any{
		"summary":    "a canteen app",
		"features":   []string{"orders"},
		"tech_stack": []map[string]any{{"category": "Backend", "technology": "FastAPI"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	arch := dataMap(t, env)["architecture"].(map[string]any)
	if arch["overview"] != "Three tiers." {
		t.Fatalf("unexpected architecture: %v", arch)
	}
	if !strings.Contains(gen.lastReq.Prompt, "FastAPI") {
		t.Fatalf("tech stack must reach the prompt")
	}
}

func TestClarifyAnswersRoute(t *testing.T) {
	gen := &stubGenerator{json: llm.JSONResult{
		Data:     map[string]any{"problem_statement": "Refined."},
		Provider: llm.ProviderGroq,
	}}
	h := newTestHandler(gen, nil)

	w, env := doJSON(t, h, http.MethodPost, "/api/idea/answer", map[string]any{
		"idea": "An app that lets students pre-order canteen meals",
		"answers": []map[string]any{
			{"question": "Who will use this?", "answer": "Hostel students"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	data := dataMap(t, env)
	if data["answers_received"] != float64(1) {
		t.Fatalf("expected 1 answer received, got %v", data["answers_received"])
	}
	if !strings.Contains(gen.lastReq.Prompt, "Hostel students") {
		t.Fatalf("answers must reach the prompt")
	}
}

func TestSectionRouteRequiresSummary(t *testing.T) {
	h := newTestHandler(&stubGenerator{}, nil)
	w, _ := doJSON(t, h, http.MethodPost, "/api/planning/features", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestChatMessageRateLimited(t *testing.T) {
	gen := &stubGenerator{text: llm.Result{Content: "Try an MVP first.", Provider: llm.ProviderGroq}}
	h := newTestHandler(gen, func(d *Deps) {
		d.Limiter = ratelimit.New()
		d.Config.RateLimit.ChatPerMinute = 20
		d.Config.RateLimit.Burst = 1
	})

	body := map[string]any{"message": "How should I start?"}
	w, env := doJSON(t, h, http.MethodPost, "/api/chat/message", body)
	if w.Code != http.StatusOK {
		t.Fatalf("first message should pass, got %d (%s)", w.Code, w.Body.String())
	}
	if dataMap(t, env)["reply"] != "Try an MVP first." {
		t.Fatalf("unexpected reply: %v", env.Data)
	}

	w, _ = doJSON(t, h, http.MethodPost, "/api/chat/message", body)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second message should be limited, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestMentorChatFallsBackWithoutKey(t *testing.T) {
	h := newTestHandler(&stubGenerator{}, nil)
	w, env := doJSON(t, h, http.MethodPost, "/api/mentor-chat/message",
		map[string]any{"message": "hello"})
	if w.Code != http.StatusOK {
		t.Fatalf("mentor chat must always answer, got %d", w.Code)
	}
	data := dataMap(t, env)
	if data["live"] != false {
		t.Fatalf("expected canned reply without a key")
	}
	if data["reply"] == "" {
		t.Fatalf("expected a non-empty reply")
	}
}

func TestPropagationMapRoute(t *testing.T) {
	h := newTestHandler(&stubGenerator{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/revision/propagation-map", nil)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	rules := dataMap(t, env)["propagation"].(map[string]any)
	if _, ok := rules["scope"]; !ok {
		t.Fatalf("expected scope rule, got %v", rules)
	}
}

func TestUserFlowChartRoute(t *testing.T) {
	h := newTestHandler(&stubGenerator{}, nil)
	w, env := doJSON(t, h, http.MethodPost, "/api/flowcharts/user-flow",
		map[string]any{"steps": []string{"Sign up", "Create project", "Download blueprint"}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	diagram := dataMap(t, env)["mermaid"].(string)
	if !strings.HasPrefix(diagram, "flowchart TD") {
		t.Fatalf("unexpected diagram: %q", diagram)
	}
	if !strings.Contains(diagram, "Create project") {
		t.Fatalf("steps missing from diagram: %q", diagram)
	}
}

func TestProjectsUnavailableWithoutStore(t *testing.T) {
	h := newTestHandler(&stubGenerator{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a store, got %d", w.Code)
	}
}

func TestInvalidJSONBody(t *testing.T) {
	h := newTestHandler(&stubGenerator{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/planning/generate-blueprint",
		strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
