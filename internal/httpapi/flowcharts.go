package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blueprintai/internal/mermaid"
)

// Flowchart routes build deterministic Mermaid diagrams without touching
// any provider. The frontend calls them when an AI-produced diagram
// fails to render.

func (h *Handler) handleUserFlowChart(c *gin.Context) {
	var req struct {
		Steps []string `json:"steps"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid json")
		return
	}
	respondOK(c, "User flow diagram built", gin.H{"mermaid": mermaid.SimpleUserFlow(req.Steps)})
}

func (h *Handler) handleTechStackChart(c *gin.Context) {
	var req struct {
		Items []mermaid.TechItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid json")
		return
	}
	respondOK(c, "Tech stack diagram built", gin.H{"mermaid": mermaid.SimpleTechStack(req.Items)})
}
