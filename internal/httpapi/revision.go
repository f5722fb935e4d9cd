package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blueprintai/internal/blueprint"
	"blueprintai/internal/planner"
)

type revisionRequest struct {
	Summary       blueprint.Summary `json:"summary"`
	ChangeRequest string            `json:"change_request"`
}

func (h *Handler) handleApplyRevision(c *gin.Context) {
	var req revisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ChangeRequest == "" {
		respondErr(c, http.StatusBadRequest, "change_request is required")
		return
	}
	rev, meta, err := h.planner.ApplyRevision(c.Request.Context(), req.Summary, req.ChangeRequest)
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "Revision applied", gin.H{"revision": rev, "provider": meta.Provider, "demo": meta.Demo})
}

func (h *Handler) handlePropagationMap(c *gin.Context) {
	respondOK(c, "Change propagation rules", gin.H{"propagation": planner.PropagationMap()})
}
