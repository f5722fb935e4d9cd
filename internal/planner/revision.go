package planner

import (
	"context"
	"fmt"
	"strings"

	"blueprintai/internal/blueprint"
)

// Change types a revision request can resolve to, and the frontend
// sections each one forces to regenerate. Regenerating only the affected
// sections keeps revisions cheap and stops unrelated sections drifting.
var propagationMap = map[string][]string{
	"feature": {"features", "feasibility", "flow", "diagrams", "pitch", "comparison"},
	"tech":    {"techStack", "architecture", "vivaGuide"},
	"scope":   {"summary", "features", "feasibility", "flow", "techStack", "diagrams", "comparison", "vivaGuide", "pitch"},
	"wording": {"summary", "pitch"},
}

// PropagationMap returns a copy of the change-type to sections rules.
func PropagationMap() map[string][]string {
	out := make(map[string][]string, len(propagationMap))
	for k, v := range propagationMap {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// PropagationTargets lists the sections a change type invalidates.
// Unknown change types invalidate nothing.
func PropagationTargets(changeType string) []string {
	return append([]string(nil), propagationMap[changeType]...)
}

// Revision is the outcome of applying one change request to a summary.
type Revision struct {
	UpdatedSummary       blueprint.Summary `json:"updated_summary"`
	ChangeType           string            `json:"change_type"`
	ChangeDescription    string            `json:"change_description"`
	SectionsToRegenerate []string          `json:"sections_to_regenerate"`
}

// ApplyRevision interprets a student's change request against the current
// summary. The summary is the source of truth; the caller regenerates the
// returned sections afterwards.
func (s *Service) ApplyRevision(ctx context.Context, current blueprint.Summary, changeRequest string) (Revision, Meta, error) {
	prompt := fmt.Sprintf(revisionPrompt,
		current.ProblemStatement,
		strings.Join(current.TargetUsers, ", "),
		strings.Join(current.Objectives, ", "),
		current.Scope,
		changeRequest,
	)
	data, meta, err := s.sectionJSON(ctx, prompt)
	if err != nil {
		return Revision{}, Meta{}, err
	}

	changeType := stringField(data, "change_type", "wording")
	if _, known := propagationMap[changeType]; !known {
		changeType = "wording"
	}

	updated := current
	if raw, ok := data["updated_summary"].(map[string]any); ok {
		merged := blueprint.Normalize(map[string]any{"summary": raw}).Summary
		updated = merged
		// A revision must never blank out fields the model omitted.
		if merged.ProblemStatement == "Not provided by AI" {
			updated.ProblemStatement = current.ProblemStatement
		}
		if users, ok := raw["target_users"].([]any); !ok || len(users) == 0 {
			updated.TargetUsers = current.TargetUsers
		}
	}

	return Revision{
		UpdatedSummary:       updated,
		ChangeType:           changeType,
		ChangeDescription:    stringField(data, "change_description", "Summary updated per request"),
		SectionsToRegenerate: PropagationTargets(changeType),
	}, meta, nil
}

func stringField(data map[string]any, key, def string) string {
	if s, ok := data[key].(string); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return def
}
