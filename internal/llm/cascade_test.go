package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func geminiBody(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + mustJSON(text) + `}]}}]}`
}

func chatBody(text string) string {
	return `{"choices":[{"message":{"role":"assistant","content":` + mustJSON(text) + `}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func newTestCascade(t *testing.T, gemini, groq, openrouter http.HandlerFunc, keys [3]string) (*Cascade, *[3]int) {
	t.Helper()
	var hits [3]int
	wrap := func(idx int, h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			hits[idx]++
			h(w, r)
		}
	}
	gm := httptest.NewServer(wrap(0, gemini))
	gq := httptest.NewServer(wrap(1, groq))
	or := httptest.NewServer(wrap(2, openrouter))
	t.Cleanup(gm.Close)
	t.Cleanup(gq.Close)
	t.Cleanup(or.Close)

	c := NewCascade(nil, nil,
		Candidate{Client: NewGemini(keys[0], gm.URL, time.Second), Key: keys[0]},
		Candidate{Client: NewGroq(keys[1], gq.URL, "", time.Second), Key: keys[1]},
		Candidate{Client: NewOpenRouter(keys[2], or.URL, "", "ref", "title", time.Second), Key: keys[2]},
	)
	return c, &hits
}

func ok(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}
}

func TestCascadeFirstProviderWins(t *testing.T) {
	c, hits := newTestCascade(t,
		ok(geminiBody("from gemini")),
		ok(chatBody("from groq")),
		ok(chatBody("from openrouter")),
		[3]string{"k1", "k2", "k3"},
	)
	res, err := c.Generate(context.Background(), Request{Prompt: "hello", MaxTokens: 100})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Provider != ProviderGemini {
		t.Fatalf("expected gemini, got %s", res.Provider)
	}
	if res.Content != "from gemini" {
		t.Fatalf("unexpected content %q", res.Content)
	}
	if hits[1] != 0 || hits[2] != 0 {
		t.Fatalf("expected later providers untouched, hits=%v", hits)
	}
}

func TestCascadeFailsOverInOrder(t *testing.T) {
	c, hits := newTestCascade(t,
		status(http.StatusTooManyRequests),
		status(http.StatusInternalServerError),
		ok(chatBody("from openrouter")),
		[3]string{"k1", "k2", "k3"},
	)
	res, err := c.Generate(context.Background(), Request{Prompt: "hello"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Provider != ProviderOpenRouter {
		t.Fatalf("expected openrouter, got %s", res.Provider)
	}
	if hits[0] != 1 || hits[1] != 1 || hits[2] != 1 {
		t.Fatalf("expected one attempt per provider, hits=%v", hits)
	}
}

func TestCascadeAggregatesFailures(t *testing.T) {
	c, _ := newTestCascade(t,
		status(http.StatusTooManyRequests),
		status(http.StatusUnauthorized),
		status(http.StatusPaymentRequired),
		[3]string{"k1", "k2", "k3"},
	)
	_, err := c.Generate(context.Background(), Request{Prompt: "hello"})
	if err == nil {
		t.Fatalf("expected cascade error")
	}
	if err.Error() != BusyMessage {
		t.Fatalf("expected generic busy message, got %q", err.Error())
	}
	var cerr *CascadeError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CascadeError, got %T", err)
	}
	if len(cerr.Attempts) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(cerr.Attempts))
	}
	want := []FailureReason{ReasonRateLimited, ReasonAuthFailed, ReasonPaymentRequired}
	for i, reason := range want {
		if cerr.Attempts[i].Reason != reason {
			t.Fatalf("attempt %d: expected %s, got %s", i, reason, cerr.Attempts[i].Reason)
		}
	}
}

func TestCascadeSkipsPlaceholderKeys(t *testing.T) {
	c, hits := newTestCascade(t,
		ok(geminiBody("never")),
		ok(chatBody("from groq")),
		ok(chatBody("never")),
		[3]string{"YOUR_API_KEY_HERE", "k2", ""},
	)
	res, err := c.Generate(context.Background(), Request{Prompt: "hello"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Provider != ProviderGroq {
		t.Fatalf("expected groq, got %s", res.Provider)
	}
	if hits[0] != 0 {
		t.Fatalf("expected no call to gemini with placeholder key")
	}
}

func TestCascadeEmptyResponseFailsOver(t *testing.T) {
	c, _ := newTestCascade(t,
		ok(geminiBody("   ")),
		ok(chatBody("recovered")),
		ok(chatBody("never")),
		[3]string{"k1", "k2", "k3"},
	)
	res, err := c.Generate(context.Background(), Request{Prompt: "hello"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Provider != ProviderGroq {
		t.Fatalf("expected failover on empty text, got %s", res.Provider)
	}
}

func TestCascadeTimeoutReason(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer slow.Close()

	c := NewCascade(nil, nil,
		Candidate{Client: NewGemini("k1", slow.URL, 20*time.Millisecond), Key: "k1"},
	)
	_, err := c.Generate(context.Background(), Request{Prompt: "hello"})
	var cerr *CascadeError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected cascade error, got %v", err)
	}
	if cerr.Attempts[0].Reason != ReasonTimeout {
		t.Fatalf("expected timeout reason, got %s", cerr.Attempts[0].Reason)
	}
}

func TestGenerateJSONStripsFences(t *testing.T) {
	body := "Here is your blueprint:\n```json\n{\"a\": 1}\n```\nHope that helps!"
	c, _ := newTestCascade(t,
		ok(geminiBody(body)),
		ok(chatBody("never")),
		ok(chatBody("never")),
		[3]string{"k1", "k2", "k3"},
	)
	res, err := c.GenerateJSON(context.Background(), Request{Prompt: "blueprint"})
	if err != nil {
		t.Fatalf("generate json: %v", err)
	}
	if res.ParseWarning != "" {
		t.Fatalf("unexpected parse warning %q", res.ParseWarning)
	}
	if res.Data["a"] != float64(1) {
		t.Fatalf("expected parsed data, got %v", res.Data)
	}
}

func TestGenerateJSONSoftFailure(t *testing.T) {
	c, hits := newTestCascade(t,
		ok(geminiBody(`{"truncated": "no closing brace`)),
		ok(chatBody("never")),
		ok(chatBody("never")),
		[3]string{"k1", "k2", "k3"},
	)
	res, err := c.GenerateJSON(context.Background(), Request{Prompt: "blueprint"})
	if err != nil {
		t.Fatalf("expected soft failure, got error %v", err)
	}
	if res.Data != nil {
		t.Fatalf("expected nil data on unparseable output")
	}
	if res.ParseWarning == "" {
		t.Fatalf("expected parse warning")
	}
	if res.Raw == "" {
		t.Fatalf("expected raw text preserved")
	}
	if hits[1] != 0 {
		t.Fatalf("parse failure must not trigger failover")
	}
}

func TestGenerateJSONAppendsInstruction(t *testing.T) {
	var gotPrompt string
	gm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Contents[0].Parts[0].Text
		_, _ = w.Write([]byte(geminiBody(`{}`)))
	}))
	defer gm.Close()

	c := NewCascade(nil, nil, Candidate{Client: NewGemini("k1", gm.URL, time.Second), Key: "k1"})
	if _, err := c.GenerateJSON(context.Background(), Request{Prompt: "plan it"}); err != nil {
		t.Fatalf("generate json: %v", err)
	}
	if gotPrompt == "plan it" {
		t.Fatalf("expected json instruction appended to prompt")
	}
}

func TestCleanJSONText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"Sure! Here it is: {\"a\":1} enjoy", "{\"a\":1}"},
		{"no json here", "no json here"},
	}
	for _, tc := range cases {
		if got := CleanJSONText(tc.in); got != tc.want {
			t.Fatalf("CleanJSONText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestUsableKey(t *testing.T) {
	cases := []struct {
		key  string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"YOUR_API_KEY_HERE", false},
		{"your_api_key_here", false},
		{"YOUR_GEMINI_API_KEY_HERE", false},
		{"sk-real-key", true},
		{"gsk_abc123", true},
	}
	for _, tc := range cases {
		if got := UsableKey(tc.key); got != tc.want {
			t.Fatalf("UsableKey(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestStatusReportsConfiguredProviders(t *testing.T) {
	c := NewCascade(nil, nil,
		Candidate{Client: NewGemini("real", "http://unused", time.Second), Key: "real"},
		Candidate{Client: NewGroq("", "http://unused", "", time.Second), Key: ""},
	)
	st := c.Status()
	if !st.Providers[ProviderGemini] {
		t.Fatalf("expected gemini configured")
	}
	if st.Providers[ProviderGroq] {
		t.Fatalf("expected groq unconfigured")
	}
	if st.Demo {
		t.Fatalf("cascade status must not report demo mode")
	}
}
