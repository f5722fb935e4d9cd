package blueprint

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Normalize turns a raw provider blueprint into a fully-populated
// Blueprint. It is total (any input yields a complete result) and
// idempotent (normalizing normalized output changes nothing).
func Normalize(raw map[string]any) Blueprint {
	if len(raw) == 0 {
		return Fallback()
	}
	return Blueprint{
		Summary:     normalizeSummary(asMap(raw["summary"])),
		Features:    normalizeFeatures(asMap(raw["features"])),
		Feasibility: normalizeFeasibility(asMap(raw["feasibility"])),
		SystemFlow:  normalizeSystemFlow(asMap(raw["system_flow"])),
		TechStack:   normalizeTechStack(asMap(raw["tech_stack"])),
		Comparison:  normalizeComparison(asMap(raw["comparison"])),
		Viva:        normalizeViva(asMap(raw["viva"])),
		Pitch:       normalizePitch(asMap(raw["pitch"])),
		Diagrams:    normalizeDiagrams(asMap(raw["diagrams"])),
	}
}

// NormalizeJSON decodes and normalizes in one step. Undecodable input
// yields the fallback blueprint.
func NormalizeJSON(data []byte) Blueprint {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Fallback()
	}
	return Normalize(raw)
}

// Fallback is the all-defaults blueprint served when no provider output is
// available at all.
func Fallback() Blueprint {
	return Blueprint{
		Summary:     normalizeSummary(nil),
		Features:    normalizeFeatures(nil),
		Feasibility: normalizeFeasibility(nil),
		SystemFlow:  normalizeSystemFlow(nil),
		TechStack:   normalizeTechStack(nil),
		Comparison:  normalizeComparison(nil),
		Viva:        normalizeViva(nil),
		Pitch:       normalizePitch(nil),
		Diagrams:    normalizeDiagrams(nil),
	}
}

const defaultString = "Not provided by AI"

func safeString(v any, def string) string {
	if s, ok := v.(string); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return def
}

// safeStringList keeps list values as strings. A missing or non-list value
// becomes the default; an explicitly empty list stays empty.
func safeStringList(v any, def []string) []string {
	list, ok := v.([]any)
	if !ok {
		if typed, isTyped := v.([]string); isTyped {
			return typed
		}
		return def
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		switch val := item.(type) {
		case string:
			out = append(out, strings.TrimSpace(val))
		case float64, int, bool:
			out = append(out, fmt.Sprintf("%v", val))
		}
	}
	return out
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

func asList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}

func asInt(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return def
}

func normalizeSummary(data map[string]any) Summary {
	return Summary{
		ProblemStatement: safeString(data["problem_statement"], defaultString),
		TargetUsers:      safeStringList(data["target_users"], []string{"Users"}),
		Objectives:       safeStringList(data["objectives"], []string{"Complete the project"}),
		Scope:            safeString(data["scope"], "Defined by project requirements"),
		WhatThisMeans:    safeString(data["what_this_means"], "This section explains your project's purpose"),
		WhyThisMatters:   safeString(data["why_this_matters"], "Understanding this helps you explain your project clearly"),
	}
}

func normalizeFeatures(data map[string]any) Features {
	var out []Feature
	for _, item := range asList(data["features"]) {
		f := asMap(item)
		if f == nil {
			continue
		}
		out = append(out, Feature{
			FeatureName: safeString(f["feature_name"], "Feature"),
			WhatItDoes:  safeString(f["what_it_does"], "Provides functionality to users"),
			WhyItExists: safeString(f["why_it_exists"], "Addresses a user need"),
			HowItHelps:  safeString(f["how_it_helps"], "Improves user experience"),
			Limitations: safeString(f["limitations"], "None specified"),
		})
	}
	if len(out) == 0 {
		out = []Feature{{
			FeatureName: "Core Feature",
			WhatItDoes:  "Provides the main functionality",
			WhyItExists: "To solve the core problem",
			HowItHelps:  "Delivers value to users",
			Limitations: "Specific limitations depend on implementation",
		}}
	}
	return Features{Features: out}
}

func normalizeFeasibility(data map[string]any) Feasibility {
	level := safeString(data["feasibility_level"], "Medium")
	switch level {
	case "High", "Medium", "Low":
	default:
		level = "Medium"
	}
	return Feasibility{
		Level:          level,
		Explanation:    safeString(data["feasibility_explanation"], "This project is achievable for a college student"),
		Strengths:      safeStringList(data["strengths"], []string{"Good educational value"}),
		Risks:          safeStringList(data["risks"], []string{"Time management is important"}),
		WhyThisMatters: safeString(data["why_this_matters"], "Knowing feasibility helps you plan realistically"),
	}
}

func normalizeSystemFlow(data map[string]any) SystemFlow {
	var steps []FlowStep
	for i, item := range asList(data["steps"]) {
		step := asMap(item)
		if step == nil {
			continue
		}
		steps = append(steps, FlowStep{
			StepNumber:  asInt(step["step_number"], i+1),
			Actor:       safeString(step["actor"], "User"),
			Action:      safeString(step["action"], "Performs action"),
			Explanation: safeString(step["explanation"], "Part of the workflow"),
		})
	}
	if len(steps) == 0 {
		steps = []FlowStep{
			{StepNumber: 1, Actor: "User", Action: "Opens application", Explanation: "Entry point"},
			{StepNumber: 2, Actor: "System", Action: "Processes request", Explanation: "Core processing"},
			{StepNumber: 3, Actor: "System", Action: "Returns result", Explanation: "Output to user"},
		}
	}
	return SystemFlow{
		FlowTitle: safeString(data["flow_title"], "System Flow"),
		Steps:     steps,
		Summary:   safeString(data["summary"], "This flow shows how users interact with the system"),
	}
}

func normalizeTechStack(data map[string]any) TechStack {
	var primary []TechItem
	for _, item := range asList(data["primary_stack"]) {
		m := asMap(item)
		if m == nil {
			continue
		}
		primary = append(primary, TechItem{
			Category:      safeString(m["category"], "General"),
			Technology:    safeString(m["technology"], "Technology"),
			Justification: safeString(m["justification"], "Suitable for this project"),
			SkillLevel:    safeString(m["skill_level"], "Beginner-friendly"),
		})
	}
	var backup []BackupItem
	for _, item := range asList(data["backup_stack"]) {
		m := asMap(item)
		if m == nil {
			continue
		}
		backup = append(backup, BackupItem{
			Category:   safeString(m["category"], "General"),
			Technology: safeString(m["technology"], "Alternative"),
			WhyBackup:  safeString(m["why_backup"], "Alternative option if needed"),
		})
	}
	if len(primary) == 0 {
		primary = []TechItem{
			{Category: "Frontend", Technology: "HTML/CSS/JavaScript", Justification: "Universal web technologies", SkillLevel: "Beginner-friendly"},
			{Category: "Backend", Technology: "Python or Node.js", Justification: "Common choices for web apps", SkillLevel: "Beginner-friendly"},
			{Category: "Database", Technology: "MySQL or MongoDB", Justification: "Well-documented options", SkillLevel: "Beginner-friendly"},
		}
	}
	if backup == nil {
		backup = []BackupItem{}
	}
	return TechStack{PrimaryStack: primary, BackupStack: backup}
}

func normalizeComparison(data map[string]any) Comparison {
	var solutions []Solution
	for _, item := range asList(data["existing_solutions"]) {
		m := asMap(item)
		if m == nil {
			continue
		}
		solutions = append(solutions, Solution{
			SolutionName: safeString(m["solution_name"], "Existing Solution"),
			WhatItDoes:   safeString(m["what_it_does"], "Provides similar functionality"),
			Limitations:  safeString(m["limitations"], "May not fit specific needs"),
		})
	}
	if solutions == nil {
		solutions = []Solution{}
	}
	valuable := data["why_this_project_is_still_valuable"]
	if valuable == nil {
		valuable = data["why_still_valuable"]
	}
	return Comparison{
		ExistingSolutions: solutions,
		UniqueAspects:     safeStringList(data["unique_aspects"], []string{"Custom solution for specific needs"}),
		WhyStillValuable:  safeStringList(valuable, []string{"Learning experience", "Tailored to specific requirements"}),
		SummaryInsight: safeString(data["summary_insight"],
			"Even though similar systems exist, this project provides valuable learning and customization opportunities."),
	}
}

func normalizeViva(data map[string]any) Viva {
	var common []VivaQA
	for _, item := range asList(data["common_questions"]) {
		m := asMap(item)
		if m == nil {
			continue
		}
		common = append(common, VivaQA{
			Question:        safeString(m["question"], "Question"),
			SuggestedAnswer: safeString(m["suggested_answer"], "Provide a clear, concise answer"),
			WhyAsked:        safeString(m["why_asked"], "To assess your understanding"),
		})
	}
	var hackathon []HackathonQA
	for _, item := range asList(data["hackathon_questions"]) {
		m := asMap(item)
		if m == nil {
			continue
		}
		hackathon = append(hackathon, HackathonQA{
			Question:          safeString(m["question"], "Question"),
			SuggestedResponse: safeString(m["suggested_response"], "Provide a confident response"),
			KeyPoints:         safeStringList(m["key_points"], []string{"Focus on value delivered"}),
		})
	}
	if len(common) == 0 {
		common = []VivaQA{
			{Question: "Why did you choose this project?", SuggestedAnswer: "It solves a real problem I observed", WhyAsked: "Tests motivation"},
			{Question: "What challenges did you face?", SuggestedAnswer: "Learning new technologies and time management", WhyAsked: "Tests problem-solving"},
		}
	}
	if len(hackathon) == 0 {
		hackathon = []HackathonQA{
			{Question: "What makes this unique?", SuggestedResponse: "Tailored to specific user needs", KeyPoints: []string{"User focus", "Practical value"}},
		}
	}
	return Viva{
		ProjectOverviewExplanation:  safeString(data["project_overview_explanation"], "This project solves a real problem using modern technology"),
		ProblemStatementExplanation: safeString(data["problem_statement_explanation"], "The problem affects users in their daily workflow"),
		ArchitectureExplanation:     safeString(data["architecture_explanation"], "The system uses a standard three-tier architecture"),
		UniqueFeatureExplanation:    safeString(data["unique_feature_explanation"], "What makes this project special is its focus on the user experience"),
		CommonQuestions:             common,
		HackathonQuestions:          hackathon,
	}
}

func normalizePitch(data map[string]any) Pitch {
	return Pitch{
		ThirtySecondPitch: safeString(data["thirty_second_pitch"],
			"This project solves a real problem by providing an efficient digital solution. It saves time, reduces errors, and improves the user experience."),
		OneMinutePitch: safeString(data["one_minute_pitch"],
			"Every day, users face challenges with manual processes. This project automates those processes, providing a faster, more reliable solution. Built with modern technologies, it's designed to be user-friendly and scalable. The system is ideal for educational or organizational settings where efficiency matters."),
		KeyPoints: safeStringList(data["key_points"], []string{"Solves real problem", "Saves time", "User-friendly"}),
	}
}

const defaultUserFlowMermaid = `flowchart TD
    A[User Opens App] --> B{Login Required?}
    B -->|Yes| C[Login Page]
    B -->|No| D[Dashboard]
    C --> E[Enter Credentials]
    E --> F{Valid?}
    F -->|No| C
    F -->|Yes| D
    D --> G[Use Features]
    G --> H[Complete Task]`

const defaultTechStackMermaid = `flowchart LR
    subgraph Frontend
        A[Web Interface]
    end
    subgraph Backend
        B[API Server]
    end
    subgraph Database
        C[(Data Storage)]
    end
    A -->|HTTP| B
    B -->|Queries| C`

func normalizeDiagrams(data map[string]any) Diagrams {
	userFlow := safeString(data["user_flow_mermaid"], defaultUserFlowMermaid)
	if !strings.HasPrefix(userFlow, "flowchart") {
		userFlow = defaultUserFlowMermaid
	}
	return Diagrams{
		UserFlowMermaid:  userFlow,
		TechStackMermaid: safeString(data["tech_stack_mermaid"], defaultTechStackMermaid),
	}
}
