package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"blueprintai/internal/blueprint"
	"blueprintai/internal/llm"
	"blueprintai/internal/logger"
)

// Service turns ideas into blueprints. It depends only on the Generator
// surface, so the cascade and the demo responder are interchangeable.
type Service struct {
	gen llm.Generator
	log *logger.Logger
}

func New(gen llm.Generator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{gen: gen, log: log}
}

// Meta describes where a result came from.
type Meta struct {
	Provider     llm.ProviderName `json:"provider"`
	Demo         bool             `json:"demo"`
	ParseWarning string           `json:"parse_warning,omitempty"`
}

// ModeHackathon tunes prompts for hackathon pitching; anything else is
// treated as a college project.
const ModeHackathon = "hackathon"

func modeLabel(mode string) string {
	if strings.EqualFold(strings.TrimSpace(mode), ModeHackathon) {
		return "Hackathon project (fast pace, demo and pitch focus)"
	}
	return "College project (viva and documentation focus)"
}

// GenerateFullBlueprint runs the single master prompt and normalizes the
// result. The returned blueprint is always fully populated, even when the
// provider output was partial or unparseable.
func (s *Service) GenerateFullBlueprint(ctx context.Context, idea, mode string) (blueprint.Blueprint, Meta, error) {
	return s.fullBlueprint(ctx, idea, modeLabel(mode))
}

// RegenerateAfterRevision rebuilds the whole blueprint from a revised
// summary. Free-tier providers make partial section updates unreliable,
// so every section is regenerated from the updated summary text.
func (s *Service) RegenerateAfterRevision(ctx context.Context, updated blueprint.Summary) (blueprint.Blueprint, Meta, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Problem Statement: %s\n", updated.ProblemStatement)
	fmt.Fprintf(&b, "Target Users: %s\n", strings.Join(updated.TargetUsers, ", "))
	fmt.Fprintf(&b, "Objectives: %s\n", strings.Join(updated.Objectives, ", "))
	fmt.Fprintf(&b, "Scope: %s", updated.Scope)
	return s.fullBlueprint(ctx, b.String(), "Revision pass (regenerate every section from the updated summary)")
}

func (s *Service) fullBlueprint(ctx context.Context, idea, label string) (blueprint.Blueprint, Meta, error) {
	req := llm.Request{
		Prompt:      fmt.Sprintf(masterBlueprintPrompt, label, idea),
		Temperature: 0.7,
		MaxTokens:   8000,
	}
	res, err := s.gen.GenerateJSON(ctx, req)
	if err != nil {
		return blueprint.Blueprint{}, Meta{}, err
	}
	meta := Meta{Provider: res.Provider, Demo: res.Demo, ParseWarning: res.ParseWarning}

	if res.Data == nil {
		s.log.Warn("blueprint output unparseable, serving defaults", "provider", string(res.Provider))
		return blueprint.Fallback(), meta, nil
	}

	if raw, marshalErr := json.Marshal(res.Data); marshalErr == nil {
		if verr := blueprint.ValidateRaw(raw); verr != nil {
			s.log.Debug("raw blueprint off-schema, normalizer will fill gaps", "provider", string(res.Provider), "err", verr.Error())
		}
	}
	return blueprint.Normalize(res.Data), meta, nil
}

// sectionJSON runs one JSON-mode section prompt.
func (s *Service) sectionJSON(ctx context.Context, prompt string) (map[string]any, Meta, error) {
	res, err := s.gen.GenerateJSON(ctx, llm.Request{Prompt: prompt, Temperature: 0.7, MaxTokens: 4000})
	if err != nil {
		return nil, Meta{}, err
	}
	return res.Data, Meta{Provider: res.Provider, Demo: res.Demo, ParseWarning: res.ParseWarning}, nil
}

func (s *Service) ExpandIdea(ctx context.Context, idea string) (blueprint.Summary, Meta, error) {
	data, meta, err := s.sectionJSON(ctx, fmt.Sprintf(expandIdeaPrompt, idea))
	if err != nil {
		return blueprint.Summary{}, Meta{}, err
	}
	return blueprint.Normalize(map[string]any{"summary": data}).Summary, meta, nil
}

func (s *Service) EvaluateIdea(ctx context.Context, idea, details string) (blueprint.Feasibility, Meta, error) {
	data, meta, err := s.sectionJSON(ctx, fmt.Sprintf(evaluateIdeaPrompt, idea, details))
	if err != nil {
		return blueprint.Feasibility{}, Meta{}, err
	}
	return blueprint.Normalize(map[string]any{"feasibility": data}).Feasibility, meta, nil
}

func (s *Service) GenerateFeatures(ctx context.Context, summary string) (blueprint.Features, Meta, error) {
	data, meta, err := s.sectionJSON(ctx, fmt.Sprintf(featuresPrompt, summary))
	if err != nil {
		return blueprint.Features{}, Meta{}, err
	}
	return blueprint.Normalize(map[string]any{"features": data}).Features, meta, nil
}

func (s *Service) GenerateSystemFlow(ctx context.Context, summary string, features []string) (blueprint.SystemFlow, Meta, error) {
	data, meta, err := s.sectionJSON(ctx, fmt.Sprintf(systemFlowPrompt, summary, strings.Join(features, ", ")))
	if err != nil {
		return blueprint.SystemFlow{}, Meta{}, err
	}
	return blueprint.Normalize(map[string]any{"system_flow": data}).SystemFlow, meta, nil
}

func (s *Service) RecommendTechStack(ctx context.Context, summary string, features []string) (blueprint.TechStack, Meta, error) {
	data, meta, err := s.sectionJSON(ctx, fmt.Sprintf(techStackPrompt, summary, strings.Join(features, ", ")))
	if err != nil {
		return blueprint.TechStack{}, Meta{}, err
	}
	return blueprint.Normalize(map[string]any{"tech_stack": data}).TechStack, meta, nil
}

// ExtendedTechStack is the richer recommendation shape: per-technology
// explanations plus conceptual alternatives, keyed the way the frontend's
// techStackExtended panel expects.
type ExtendedTechStack struct {
	PrimaryStack []ExtendedTechItem `json:"primary_stack"`
	Alternatives []TechAlternative  `json:"alternatives"`
}

type ExtendedTechItem struct {
	Category   string `json:"category"`
	Technology string `json:"technology"`
	WhatItIs   string `json:"what_it_is"`
	WhyUsed    string `json:"why_used"`
	Role       string `json:"role"`
	SkillLevel string `json:"skill_level"`
}

type TechAlternative struct {
	Category     string `json:"category"`
	Primary      string `json:"primary"`
	Alternative  string `json:"alternative"`
	WhenToSwitch string `json:"when_to_switch"`
}

func (s *Service) RecommendTechStackExtended(ctx context.Context, summary string, features []string) (ExtendedTechStack, Meta, error) {
	data, meta, err := s.sectionJSON(ctx, fmt.Sprintf(techStackExtendedPrompt, summary, strings.Join(features, ", ")))
	if err != nil {
		return ExtendedTechStack{}, Meta{}, err
	}
	var out ExtendedTechStack
	if raw, merr := json.Marshal(data); merr == nil {
		_ = json.Unmarshal(raw, &out)
	}
	return out, meta, nil
}

// Architecture is the beginner-level explanation of how the system is
// organized, written so the student can repeat it in a viva.
type Architecture struct {
	Overview           string   `json:"overview"`
	Modules            []string `json:"modules"`
	DataFlow           string   `json:"data_flow"`
	DiagramDescription string   `json:"diagram_description"`
}

func (s *Service) ExplainArchitecture(ctx context.Context, summary string, techStack, features []string) (Architecture, Meta, error) {
	data, meta, err := s.sectionJSON(ctx, fmt.Sprintf(architecturePrompt, summary, strings.Join(techStack, ", "), strings.Join(features, ", ")))
	if err != nil {
		return Architecture{}, Meta{}, err
	}
	out := Architecture{
		Overview:           stringField(data, "overview", "The system is organized as a frontend, a backend, and a database working together."),
		DataFlow:           stringField(data, "data_flow", "The frontend sends user actions to the backend, which reads and writes the database."),
		DiagramDescription: stringField(data, "diagram_description", "Boxes for frontend, backend, and database, with arrows showing requests and responses."),
	}
	if modules, ok := data["modules"].([]any); ok {
		for _, m := range modules {
			if name, ok := m.(string); ok && strings.TrimSpace(name) != "" {
				out.Modules = append(out.Modules, strings.TrimSpace(name))
			}
		}
	}
	if len(out.Modules) == 0 {
		out.Modules = []string{"User interface", "Application logic", "Data storage"}
	}
	return out, meta, nil
}

func (s *Service) GenerateComparison(ctx context.Context, summary string) (blueprint.Comparison, Meta, error) {
	data, meta, err := s.sectionJSON(ctx, fmt.Sprintf(comparisonPrompt, summary))
	if err != nil {
		return blueprint.Comparison{}, Meta{}, err
	}
	return blueprint.Normalize(map[string]any{"comparison": data}).Comparison, meta, nil
}

func (s *Service) GenerateVivaGuide(ctx context.Context, summary string) (blueprint.Viva, Meta, error) {
	data, meta, err := s.sectionJSON(ctx, fmt.Sprintf(vivaGuidePrompt, summary))
	if err != nil {
		return blueprint.Viva{}, Meta{}, err
	}
	return blueprint.Normalize(map[string]any{"viva": data}).Viva, meta, nil
}

func (s *Service) GenerateHackathonViva(ctx context.Context, summary string) (blueprint.Viva, Meta, error) {
	data, meta, err := s.sectionJSON(ctx, fmt.Sprintf(hackathonVivaPrompt, summary))
	if err != nil {
		return blueprint.Viva{}, Meta{}, err
	}
	return blueprint.Normalize(map[string]any{"viva": data}).Viva, meta, nil
}

func (s *Service) GeneratePitch(ctx context.Context, summary string) (blueprint.Pitch, Meta, error) {
	data, meta, err := s.sectionJSON(ctx, fmt.Sprintf(pitchPrompt, summary))
	if err != nil {
		return blueprint.Pitch{}, Meta{}, err
	}
	return blueprint.Normalize(map[string]any{"pitch": data}).Pitch, meta, nil
}

// FeatureTradeoff is the impact analysis for one proposed feature.
type FeatureTradeoff struct {
	FeatureName        string `json:"feature_name"`
	ComplexityImpact   string `json:"complexity_impact"`
	TimeImpact         string `json:"time_impact"`
	ArchitectureImpact string `json:"architecture_impact"`
	Recommendation     string `json:"recommendation"`
	WhatThisMeans      string `json:"what_this_means"`
}

const featureTradeoffPrompt = `You are a project mentor helping a student understand feature trade-offs.

The student wants to add this feature to their project and needs to understand its impact.

PROJECT: %s
FEATURE TO ANALYZE: %s

Explain the trade-offs of adding this feature:
1. complexity_impact: how it affects overall project complexity
2. time_impact: how much extra development time it needs
3. architecture_impact: what changes to the system design are required
4. recommendation: should they include it, and why
5. what_this_means: simple summary for a beginner

Consider a typical college student's skill level and a 2-3 month timeline.

Respond in JSON format with keys: feature_name, complexity_impact, time_impact, architecture_impact, recommendation, what_this_means`

func (s *Service) AnalyzeFeatureTradeoff(ctx context.Context, summary, feature string) (FeatureTradeoff, Meta, error) {
	data, meta, err := s.sectionJSON(ctx, fmt.Sprintf(featureTradeoffPrompt, summary, feature))
	if err != nil {
		return FeatureTradeoff{}, Meta{}, err
	}
	out := FeatureTradeoff{
		FeatureName:        stringField(data, "feature_name", feature),
		ComplexityImpact:   stringField(data, "complexity_impact", "Moderate impact on complexity"),
		TimeImpact:         stringField(data, "time_impact", "Plan extra development time"),
		ArchitectureImpact: stringField(data, "architecture_impact", "May require design changes"),
		Recommendation:     stringField(data, "recommendation", "Weigh the benefit against the added effort"),
		WhatThisMeans:      stringField(data, "what_this_means", "Adding features always costs time; add this one only if it serves the core problem"),
	}
	return out, meta, nil
}

var defaultClarifyingQuestions = []string{
	"Who exactly will use this, and in what situation?",
	"What is the one feature this project cannot ship without?",
	"How much time do you have, and what have you built before?",
}

// GenerateClarifyingQuestions asks for up to three short questions. Text
// mode: one question per line.
func (s *Service) GenerateClarifyingQuestions(ctx context.Context, idea string) ([]string, Meta, error) {
	res, err := s.gen.Generate(ctx, llm.Request{
		Prompt:      fmt.Sprintf(clarifyingQuestionsPrompt, idea),
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return nil, Meta{}, err
	}
	meta := Meta{Provider: res.Provider, Demo: res.Demo}

	var questions []string
	for _, line := range strings.Split(res.Content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*0123456789. "))
		if line == "" || !strings.Contains(line, "?") {
			continue
		}
		questions = append(questions, line)
		if len(questions) == 3 {
			break
		}
	}
	if len(questions) == 0 {
		questions = append(questions, defaultClarifyingQuestions...)
	}
	return questions, meta, nil
}

// ClarifyingAnswer is a student's reply to one clarifying question.
type ClarifyingAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ExpandIdeaWithAnswers folds the student's clarification answers into
// the idea before expanding it, so the summary reflects what they
// actually confirmed.
func (s *Service) ExpandIdeaWithAnswers(ctx context.Context, idea string, answers []ClarifyingAnswer) (blueprint.Summary, Meta, error) {
	var b strings.Builder
	b.WriteString(idea)
	if len(answers) > 0 {
		b.WriteString("\n\nStudent's clarifications:")
		for _, a := range answers {
			fmt.Fprintf(&b, "\nQ: %s - A: %s", a.Question, a.Answer)
		}
	}
	return s.ExpandIdea(ctx, b.String())
}

// ChatMessage is one turn of the idea-refinement conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (s *Service) ChatReply(ctx context.Context, message string, history []ChatMessage) (string, Meta, error) {
	var b strings.Builder
	for _, msg := range history {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}
	if b.Len() == 0 {
		b.WriteString("(no prior messages)\n")
	}
	res, err := s.gen.Generate(ctx, llm.Request{
		Prompt:      fmt.Sprintf(chatMentorPrompt, b.String(), message),
		Temperature: 0.6,
		MaxTokens:   400,
	})
	if err != nil {
		return "", Meta{}, err
	}
	return res.Content, Meta{Provider: res.Provider, Demo: res.Demo}, nil
}
