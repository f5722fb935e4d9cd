package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newChatServer(t *testing.T, reply string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chatBody(reply)))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestDemoResponderBlueprintKeyword(t *testing.T) {
	d := NewDemoResponder()
	res, err := d.Generate(context.Background(), Request{Prompt: "Generate the full blueprint for my idea"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !res.Demo {
		t.Fatalf("expected demo flag")
	}
	if res.Provider != ProviderDemo {
		t.Fatalf("expected demo provider, got %s", res.Provider)
	}
	if !strings.Contains(res.Content, "summary") {
		t.Fatalf("expected blueprint content")
	}
}

func TestDemoResponderExpandKeyword(t *testing.T) {
	d := NewDemoResponder()
	res, err := d.Generate(context.Background(), Request{Prompt: "Write a problem statement for this idea"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(res.Content, "problem_statement") {
		t.Fatalf("expected expand content, got %q", res.Content[:40])
	}
}

func TestDemoResponderGenericFallback(t *testing.T) {
	d := NewDemoResponder()
	res, err := d.Generate(context.Background(), Request{Prompt: "what should I do next"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(res.Content, "demo mode") {
		t.Fatalf("expected generic demo reply")
	}
}

func TestDemoResponderJSONParses(t *testing.T) {
	d := NewDemoResponder()
	res, err := d.GenerateJSON(context.Background(), Request{Prompt: "full blueprint please"})
	if err != nil {
		t.Fatalf("generate json: %v", err)
	}
	if res.ParseWarning != "" {
		t.Fatalf("demo blueprint must parse: %s", res.ParseWarning)
	}
	if _, ok := res.Data["summary"]; !ok {
		t.Fatalf("expected summary section in demo blueprint")
	}
	if !res.Demo {
		t.Fatalf("expected demo flag on json result")
	}
}

func TestDemoResponderStatus(t *testing.T) {
	st := NewDemoResponder().Status()
	if !st.Demo {
		t.Fatalf("expected demo mode status")
	}
	for name, configured := range st.Providers {
		if configured {
			t.Fatalf("provider %s must report unconfigured in demo mode", name)
		}
	}
}

func TestChatClientLiveReply(t *testing.T) {
	srv := newChatServer(t, "keep your scope small")
	c := NewChatClient("gsk_test", srv, "", time.Second, nil)
	reply, live := c.Reply(context.Background(), "how do I start?")
	if !live {
		t.Fatalf("expected live reply")
	}
	if reply != "keep your scope small" {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestChatClientFallbackWithoutKey(t *testing.T) {
	c := NewChatClient("", "http://unused", "", time.Second, nil)
	reply, live := c.Reply(context.Background(), "hi")
	if live {
		t.Fatalf("expected fallback reply without key")
	}
	if reply == "" {
		t.Fatalf("expected canned reply")
	}
}
