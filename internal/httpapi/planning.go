package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"blueprintai/internal/blueprint"
	"blueprintai/internal/cache"
	"blueprintai/internal/planner"
	"blueprintai/internal/store"
	"blueprintai/internal/validation"
)

type generateBlueprintRequest struct {
	Idea string `json:"idea"`
	Mode string `json:"mode"`
}

func (h *Handler) handleGenerateBlueprint(c *gin.Context) {
	var req generateBlueprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid json")
		return
	}
	if respondValidationError(c, validation.ValidateIdea(req.Idea)) {
		return
	}
	idea := validation.Sanitize(req.Idea)

	cacheKey := cache.Key(req.Mode, idea)
	if data, hit := h.cache.GetBlueprint(c.Request.Context(), cacheKey); hit {
		respondOK(c, "Blueprint retrieved from cache", gin.H{
			"blueprint": json.RawMessage(data),
			"cached":    true,
		})
		return
	}

	bp, meta, err := h.planner.GenerateFullBlueprint(c.Request.Context(), idea, req.Mode)
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	fb := blueprint.MapToFrontend(bp)

	data := gin.H{
		"blueprint": fb,
		"provider":  meta.Provider,
		"demo":      meta.Demo,
	}

	if raw, merr := json.Marshal(fb); merr == nil {
		if err := h.cache.PutBlueprint(c.Request.Context(), cacheKey, raw); err != nil {
			h.log.Warn("cache write failed", "err", err.Error())
		}
		if h.store != nil {
			id, serr := h.store.SaveProject(c.Request.Context(), store.Project{
				Idea:             idea,
				Mode:             req.Mode,
				Blueprint:        raw,
				UserFlowMermaid:  fb.UserFlowMermaid,
				TechStackMermaid: fb.TechStackMermaid,
			})
			if serr != nil {
				h.log.Warn("project save failed", "err", serr.Error())
			} else {
				data["project_id"] = id.String()
			}
		}
	}

	respondOK(c, "Blueprint generated", data)
}

// handleRegenerateBlueprint rebuilds the full blueprint from a revised
// summary. All sections are regenerated rather than patched; partial
// updates are unreliable on free-tier providers.
func (h *Handler) handleRegenerateBlueprint(c *gin.Context) {
	var req struct {
		Summary blueprint.Summary `json:"summary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Summary.ProblemStatement == "" {
		respondErr(c, http.StatusBadRequest, "summary.problem_statement is required")
		return
	}
	bp, meta, err := h.planner.RegenerateAfterRevision(c.Request.Context(), req.Summary)
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "Blueprint regenerated", gin.H{
		"blueprint": blueprint.MapToFrontend(bp),
		"provider":  meta.Provider,
		"demo":      meta.Demo,
	})
}

type ideaRequest struct {
	Idea    string `json:"idea"`
	Details string `json:"details"`
}

type summaryRequest struct {
	Summary  string   `json:"summary"`
	Features []string `json:"features"`
	Mode     string   `json:"mode"`
}

func (h *Handler) handleExpandIdea(c *gin.Context) {
	var req ideaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid json")
		return
	}
	if respondValidationError(c, validation.ValidateIdea(req.Idea)) {
		return
	}
	summary, meta, err := h.planner.ExpandIdea(c.Request.Context(), validation.Sanitize(req.Idea))
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "Idea expanded", gin.H{"summary": summary, "provider": meta.Provider, "demo": meta.Demo})
}

func (h *Handler) handleEvaluateIdea(c *gin.Context) {
	var req ideaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid json")
		return
	}
	if respondValidationError(c, validation.ValidateIdea(req.Idea)) {
		return
	}
	feas, meta, err := h.planner.EvaluateIdea(c.Request.Context(), validation.Sanitize(req.Idea), req.Details)
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "Idea evaluated", gin.H{"feasibility": feas, "provider": meta.Provider, "demo": meta.Demo})
}

func (h *Handler) handleFeatures(c *gin.Context) {
	req, ok := h.bindSummary(c)
	if !ok {
		return
	}
	features, meta, err := h.planner.GenerateFeatures(c.Request.Context(), req.Summary)
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "Features generated", gin.H{"features": features, "provider": meta.Provider, "demo": meta.Demo})
}

func (h *Handler) handleComparison(c *gin.Context) {
	req, ok := h.bindSummary(c)
	if !ok {
		return
	}
	cmp, meta, err := h.planner.GenerateComparison(c.Request.Context(), req.Summary)
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "Comparison generated", gin.H{"comparison": cmp, "provider": meta.Provider, "demo": meta.Demo})
}

func (h *Handler) handleSystemFlow(c *gin.Context) {
	req, ok := h.bindSummary(c)
	if !ok {
		return
	}
	flow, meta, err := h.planner.GenerateSystemFlow(c.Request.Context(), req.Summary, req.Features)
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "System flow generated", gin.H{"system_flow": flow, "provider": meta.Provider, "demo": meta.Demo})
}

func (h *Handler) handleTechStack(c *gin.Context) {
	req, ok := h.bindSummary(c)
	if !ok {
		return
	}
	stack, meta, err := h.planner.RecommendTechStack(c.Request.Context(), req.Summary, req.Features)
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "Tech stack recommended", gin.H{"tech_stack": stack, "provider": meta.Provider, "demo": meta.Demo})
}

func (h *Handler) handleTechStackExtended(c *gin.Context) {
	req, ok := h.bindSummary(c)
	if !ok {
		return
	}
	stack, meta, err := h.planner.RecommendTechStackExtended(c.Request.Context(), req.Summary, req.Features)
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "Extended tech stack recommended", gin.H{"tech_stack_extended": stack, "provider": meta.Provider, "demo": meta.Demo})
}

func (h *Handler) handleArchitecture(c *gin.Context) {
	var req struct {
		Summary   string               `json:"summary"`
		Features  []string             `json:"features"`
		TechStack []blueprint.TechItem `json:"tech_stack"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Summary == "" {
		respondErr(c, http.StatusBadRequest, "summary is required")
		return
	}
	technologies := make([]string, 0, len(req.TechStack))
	for _, item := range req.TechStack {
		if item.Technology != "" {
			technologies = append(technologies, item.Technology)
		}
	}
	arch, meta, err := h.planner.ExplainArchitecture(c.Request.Context(), req.Summary, technologies, req.Features)
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "Architecture explained", gin.H{"architecture": arch, "provider": meta.Provider, "demo": meta.Demo})
}

func (h *Handler) handleViva(c *gin.Context) {
	req, ok := h.bindSummary(c)
	if !ok {
		return
	}
	var (
		viva blueprint.Viva
		meta planner.Meta
		err  error
	)
	if req.Mode == planner.ModeHackathon {
		viva, meta, err = h.planner.GenerateHackathonViva(c.Request.Context(), req.Summary)
	} else {
		viva, meta, err = h.planner.GenerateVivaGuide(c.Request.Context(), req.Summary)
	}
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "Viva guide generated", gin.H{"viva": viva, "provider": meta.Provider, "demo": meta.Demo})
}

func (h *Handler) handlePitch(c *gin.Context) {
	req, ok := h.bindSummary(c)
	if !ok {
		return
	}
	pitch, meta, err := h.planner.GeneratePitch(c.Request.Context(), req.Summary)
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "Pitch generated", gin.H{"pitch": pitch, "provider": meta.Provider, "demo": meta.Demo})
}

func (h *Handler) handleFeatureTradeoff(c *gin.Context) {
	var req struct {
		Summary string `json:"summary"`
		Feature string `json:"feature"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Summary == "" || req.Feature == "" {
		respondErr(c, http.StatusBadRequest, "summary and feature are required")
		return
	}
	tradeoff, meta, err := h.planner.AnalyzeFeatureTradeoff(c.Request.Context(), req.Summary, req.Feature)
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "Trade-off analyzed", gin.H{"tradeoff": tradeoff, "provider": meta.Provider, "demo": meta.Demo})
}

func (h *Handler) handleClarify(c *gin.Context) {
	var req ideaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid json")
		return
	}
	if respondValidationError(c, validation.ValidateIdea(req.Idea)) {
		return
	}
	questions, meta, err := h.planner.GenerateClarifyingQuestions(c.Request.Context(), validation.Sanitize(req.Idea))
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "Clarifying questions generated", gin.H{"questions": questions, "provider": meta.Provider, "demo": meta.Demo})
}

// handleClarifyAnswers accepts the student's answers to the clarifying
// questions and re-expands the idea with that extra context.
func (h *Handler) handleClarifyAnswers(c *gin.Context) {
	var req struct {
		Idea    string                     `json:"idea"`
		Answers []planner.ClarifyingAnswer `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid json")
		return
	}
	if respondValidationError(c, validation.ValidateIdea(req.Idea)) {
		return
	}
	summary, meta, err := h.planner.ExpandIdeaWithAnswers(c.Request.Context(), validation.Sanitize(req.Idea), req.Answers)
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "Idea refined with your answers", gin.H{
		"summary":          summary,
		"answers_received": len(req.Answers),
		"provider":         meta.Provider,
		"demo":             meta.Demo,
	})
}

func (h *Handler) bindSummary(c *gin.Context) (summaryRequest, bool) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid json")
		return req, false
	}
	if req.Summary == "" {
		respondErr(c, http.StatusBadRequest, "summary is required")
		return req, false
	}
	return req, true
}
