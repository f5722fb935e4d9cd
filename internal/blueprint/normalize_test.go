package blueprint

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeNilYieldsFallback(t *testing.T) {
	got := Normalize(nil)
	want := Fallback()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize(nil) differs from Fallback()")
	}
}

func TestFallbackIsFullyPopulated(t *testing.T) {
	bp := Fallback()
	if bp.Summary.ProblemStatement == "" {
		t.Fatalf("expected default problem statement")
	}
	if len(bp.Features.Features) == 0 {
		t.Fatalf("expected at least one feature")
	}
	if bp.Feasibility.Level != "Medium" {
		t.Fatalf("expected Medium default level, got %s", bp.Feasibility.Level)
	}
	if len(bp.SystemFlow.Steps) != 3 {
		t.Fatalf("expected three default flow steps, got %d", len(bp.SystemFlow.Steps))
	}
	if len(bp.TechStack.PrimaryStack) != 3 {
		t.Fatalf("expected three default stack entries, got %d", len(bp.TechStack.PrimaryStack))
	}
	if !strings.HasPrefix(bp.Diagrams.UserFlowMermaid, "flowchart") {
		t.Fatalf("user flow diagram must start with flowchart")
	}
	if err := Validate(bp); err != nil {
		t.Fatalf("fallback must pass schema: %v", err)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	raw := map[string]any{
		"summary": map[string]any{
			"problem_statement": "  Attendance is slow.  ",
			"target_users":      []any{"Students", "Teachers"},
		},
		"feasibility": map[string]any{"feasibility_level": "High"},
		"system_flow": map[string]any{
			"steps": []any{
				map[string]any{"actor": "Teacher", "action": "Starts session"},
			},
		},
	}
	once := Normalize(raw)

	data, err := json.Marshal(once)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	twice := NormalizeJSON(data)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalize is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestNormalizeTrimsAndDefaults(t *testing.T) {
	raw := map[string]any{
		"summary": map[string]any{
			"problem_statement": "   ",
			"scope":             "  Small scope  ",
		},
	}
	bp := Normalize(raw)
	if bp.Summary.ProblemStatement != defaultString {
		t.Fatalf("blank string must fall back to default, got %q", bp.Summary.ProblemStatement)
	}
	if bp.Summary.Scope != "Small scope" {
		t.Fatalf("expected trimmed scope, got %q", bp.Summary.Scope)
	}
}

func TestNormalizeFeasibilityLevelCoercion(t *testing.T) {
	cases := map[string]string{
		"High":      "High",
		"Medium":    "Medium",
		"Low":       "Low",
		"VERY HIGH": "Medium",
		"":          "Medium",
	}
	for in, want := range cases {
		bp := Normalize(map[string]any{"feasibility": map[string]any{"feasibility_level": in}})
		if bp.Feasibility.Level != want {
			t.Fatalf("level %q: expected %s, got %s", in, want, bp.Feasibility.Level)
		}
	}
}

func TestNormalizeEmptyListsStayEmpty(t *testing.T) {
	bp := Normalize(map[string]any{
		"summary": map[string]any{"target_users": []any{}},
	})
	if len(bp.Summary.TargetUsers) != 0 {
		t.Fatalf("explicit empty list must stay empty, got %v", bp.Summary.TargetUsers)
	}
	// Missing list gets the default.
	bp = Normalize(map[string]any{"summary": map[string]any{}})
	if len(bp.Summary.TargetUsers) != 1 || bp.Summary.TargetUsers[0] != "Users" {
		t.Fatalf("missing list must get default, got %v", bp.Summary.TargetUsers)
	}
}

func TestNormalizeStepNumbersDefaultToPosition(t *testing.T) {
	bp := Normalize(map[string]any{
		"system_flow": map[string]any{
			"steps": []any{
				map[string]any{"actor": "A", "action": "first"},
				map[string]any{"actor": "B", "action": "second"},
				map[string]any{"step_number": float64(9), "actor": "C", "action": "explicit"},
			},
		},
	})
	steps := bp.SystemFlow.Steps
	if steps[0].StepNumber != 1 || steps[1].StepNumber != 2 {
		t.Fatalf("missing step numbers must default to position, got %d, %d", steps[0].StepNumber, steps[1].StepNumber)
	}
	if steps[2].StepNumber != 9 {
		t.Fatalf("explicit step number must survive, got %d", steps[2].StepNumber)
	}
}

func TestNormalizeComparisonAliasKey(t *testing.T) {
	bp := Normalize(map[string]any{
		"comparison": map[string]any{
			"why_still_valuable": []any{"cheap", "fits our campus"},
		},
	})
	if len(bp.Comparison.WhyStillValuable) != 2 || bp.Comparison.WhyStillValuable[0] != "cheap" {
		t.Fatalf("alias key not honored, got %v", bp.Comparison.WhyStillValuable)
	}
}

func TestNormalizeRejectsBadDiagram(t *testing.T) {
	bp := Normalize(map[string]any{
		"diagrams": map[string]any{"user_flow_mermaid": "graph TD; A-->B"},
	})
	if !strings.HasPrefix(bp.Diagrams.UserFlowMermaid, "flowchart") {
		t.Fatalf("non-flowchart diagram must be replaced")
	}
}

func TestNormalizeMalformedSections(t *testing.T) {
	// Sections with wrong types are treated as missing.
	bp := Normalize(map[string]any{
		"summary":     "not an object",
		"features":    []any{"not", "an", "object"},
		"feasibility": 42,
	})
	if bp.Summary.ProblemStatement != defaultString {
		t.Fatalf("malformed summary must normalize to defaults")
	}
	if len(bp.Features.Features) != 1 {
		t.Fatalf("malformed features must get the synthetic default")
	}
	if err := Validate(bp); err != nil {
		t.Fatalf("malformed input must still produce a valid blueprint: %v", err)
	}
}

func TestNormalizeJSONUndecodable(t *testing.T) {
	bp := NormalizeJSON([]byte("{truncated"))
	if !reflect.DeepEqual(bp, Fallback()) {
		t.Fatalf("undecodable input must yield the fallback blueprint")
	}
}

func TestMapToFrontend(t *testing.T) {
	bp := Fallback()
	fe := MapToFrontend(bp)

	if len(fe.TechStack) < 3 {
		t.Fatalf("expected at least three tech stack entries, got %d", len(fe.TechStack))
	}
	if !strings.HasPrefix(fe.UserFlowMermaid, "flowchart") {
		t.Fatalf("userFlowMermaid must start with flowchart")
	}
	if len(fe.TechStackExtended.PrimaryStack) != len(bp.TechStack.PrimaryStack) {
		t.Fatalf("techStackExtended.primary_stack mismatch")
	}
	if len(fe.HackathonViva.VivaQuestions) != len(bp.Viva.CommonQuestions) {
		t.Fatalf("hackathonViva.viva_questions must mirror common questions")
	}

	data, err := json.Marshal(fe)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{
		"expandedIdea", "evaluation", "featuresDetailed", "systemFlow",
		"techStack", "techStackExtended", "comparison", "vivaGuide",
		"hackathonViva", "pitch", "userFlowMermaid", "techStackMermaid",
	} {
		if !strings.Contains(string(data), `"`+key+`"`) {
			t.Fatalf("frontend payload missing key %s", key)
		}
	}
}

func TestValidateRejectsIncomplete(t *testing.T) {
	if err := ValidateRaw([]byte(`{"summary": {}}`)); err == nil {
		t.Fatalf("expected schema failure for incomplete blueprint")
	}
}
