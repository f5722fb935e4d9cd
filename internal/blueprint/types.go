package blueprint

// Blueprint is the fully-populated nine-section project plan. Every field
// is guaranteed non-empty after Normalize; the UI consumes only this shape.
type Blueprint struct {
	Summary     Summary     `json:"summary"`
	Features    Features    `json:"features"`
	Feasibility Feasibility `json:"feasibility"`
	SystemFlow  SystemFlow  `json:"system_flow"`
	TechStack   TechStack   `json:"tech_stack"`
	Comparison  Comparison  `json:"comparison"`
	Viva        Viva        `json:"viva"`
	Pitch       Pitch       `json:"pitch"`
	Diagrams    Diagrams    `json:"diagrams"`
}

type Summary struct {
	ProblemStatement string   `json:"problem_statement"`
	TargetUsers      []string `json:"target_users"`
	Objectives       []string `json:"objectives"`
	Scope            string   `json:"scope"`
	WhatThisMeans    string   `json:"what_this_means"`
	WhyThisMatters   string   `json:"why_this_matters"`
}

type Features struct {
	Features []Feature `json:"features"`
}

type Feature struct {
	FeatureName string `json:"feature_name"`
	WhatItDoes  string `json:"what_it_does"`
	WhyItExists string `json:"why_it_exists"`
	HowItHelps  string `json:"how_it_helps"`
	Limitations string `json:"limitations"`
}

type Feasibility struct {
	Level          string   `json:"feasibility_level"`
	Explanation    string   `json:"feasibility_explanation"`
	Strengths      []string `json:"strengths"`
	Risks          []string `json:"risks"`
	WhyThisMatters string   `json:"why_this_matters"`
}

type SystemFlow struct {
	FlowTitle string     `json:"flow_title"`
	Steps     []FlowStep `json:"steps"`
	Summary   string     `json:"summary"`
}

type FlowStep struct {
	StepNumber  int    `json:"step_number"`
	Actor       string `json:"actor"`
	Action      string `json:"action"`
	Explanation string `json:"explanation"`
}

type TechStack struct {
	PrimaryStack []TechItem   `json:"primary_stack"`
	BackupStack  []BackupItem `json:"backup_stack"`
}

type TechItem struct {
	Category      string `json:"category"`
	Technology    string `json:"technology"`
	Justification string `json:"justification"`
	SkillLevel    string `json:"skill_level"`
}

type BackupItem struct {
	Category   string `json:"category"`
	Technology string `json:"technology"`
	WhyBackup  string `json:"why_backup"`
}

type Comparison struct {
	ExistingSolutions []Solution `json:"existing_solutions"`
	UniqueAspects     []string   `json:"unique_aspects"`
	WhyStillValuable  []string   `json:"why_this_project_is_still_valuable"`
	SummaryInsight    string     `json:"summary_insight"`
}

type Solution struct {
	SolutionName string `json:"solution_name"`
	WhatItDoes   string `json:"what_it_does"`
	Limitations  string `json:"limitations"`
}

type Viva struct {
	ProjectOverviewExplanation  string        `json:"project_overview_explanation"`
	ProblemStatementExplanation string        `json:"problem_statement_explanation"`
	ArchitectureExplanation     string        `json:"architecture_explanation"`
	UniqueFeatureExplanation    string        `json:"unique_feature_explanation"`
	CommonQuestions             []VivaQA      `json:"common_questions"`
	HackathonQuestions          []HackathonQA `json:"hackathon_questions"`
}

type VivaQA struct {
	Question        string `json:"question"`
	SuggestedAnswer string `json:"suggested_answer"`
	WhyAsked        string `json:"why_asked"`
}

type HackathonQA struct {
	Question          string   `json:"question"`
	SuggestedResponse string   `json:"suggested_response"`
	KeyPoints         []string `json:"key_points"`
}

type Pitch struct {
	ThirtySecondPitch string   `json:"thirty_second_pitch"`
	OneMinutePitch    string   `json:"one_minute_pitch"`
	KeyPoints         []string `json:"key_points"`
}

type Diagrams struct {
	UserFlowMermaid  string `json:"user_flow_mermaid"`
	TechStackMermaid string `json:"tech_stack_mermaid"`
}
