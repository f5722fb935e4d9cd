package blueprint

// FrontendBlueprint is the camelCase shape the UI state consumes. Key
// names are owned by the frontend and must not drift.
type FrontendBlueprint struct {
	ExpandedIdea      Summary           `json:"expandedIdea"`
	Evaluation        Feasibility       `json:"evaluation"`
	FeaturesDetailed  Features          `json:"featuresDetailed"`
	SystemFlow        SystemFlow        `json:"systemFlow"`
	TechStack         []TechItem        `json:"techStack"`
	TechStackExtended TechStackExtended `json:"techStackExtended"`
	Comparison        Comparison        `json:"comparison"`
	VivaGuide         VivaGuide         `json:"vivaGuide"`
	HackathonViva     HackathonViva     `json:"hackathonViva"`
	Pitch             Pitch             `json:"pitch"`
	UserFlowMermaid   string            `json:"userFlowMermaid"`
	TechStackMermaid  string            `json:"techStackMermaid"`
}

type TechStackExtended struct {
	PrimaryStack []TechItem   `json:"primary_stack"`
	Alternatives []BackupItem `json:"alternatives"`
}

type VivaGuide struct {
	ProjectOverviewExplanation  string   `json:"project_overview_explanation"`
	ProblemStatementExplanation string   `json:"problem_statement_explanation"`
	ArchitectureExplanation     string   `json:"architecture_explanation"`
	UniqueFeatureExplanation    string   `json:"unique_feature_explanation"`
	CommonQuestions             []VivaQA `json:"common_questions"`
}

type HackathonViva struct {
	VivaQuestions      []VivaQA      `json:"viva_questions"`
	HackathonQuestions []HackathonQA `json:"hackathon_questions"`
}

// MapToFrontend re-keys a normalized blueprint for the UI.
func MapToFrontend(bp Blueprint) FrontendBlueprint {
	return FrontendBlueprint{
		ExpandedIdea:     bp.Summary,
		Evaluation:       bp.Feasibility,
		FeaturesDetailed: bp.Features,
		SystemFlow:       bp.SystemFlow,
		TechStack:        bp.TechStack.PrimaryStack,
		TechStackExtended: TechStackExtended{
			PrimaryStack: bp.TechStack.PrimaryStack,
			Alternatives: bp.TechStack.BackupStack,
		},
		Comparison: bp.Comparison,
		VivaGuide: VivaGuide{
			ProjectOverviewExplanation:  bp.Viva.ProjectOverviewExplanation,
			ProblemStatementExplanation: bp.Viva.ProblemStatementExplanation,
			ArchitectureExplanation:     bp.Viva.ArchitectureExplanation,
			UniqueFeatureExplanation:    bp.Viva.UniqueFeatureExplanation,
			CommonQuestions:             bp.Viva.CommonQuestions,
		},
		HackathonViva: HackathonViva{
			VivaQuestions:      bp.Viva.CommonQuestions,
			HackathonQuestions: bp.Viva.HackathonQuestions,
		},
		Pitch:            bp.Pitch,
		UserFlowMermaid:  bp.Diagrams.UserFlowMermaid,
		TechStackMermaid: bp.Diagrams.TechStackMermaid,
	}
}
