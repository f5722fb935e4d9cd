package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blueprintai/internal/planner"
)

type chatRequest struct {
	Message string                `json:"message"`
	History []planner.ChatMessage `json:"history"`
}

// handleChatMessage answers through the full provider cascade, history
// included. Used by the planning workspace chat panel.
func (h *Handler) handleChatMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Message == "" {
		respondErr(c, http.StatusBadRequest, "message is required")
		return
	}
	reply, meta, err := h.planner.ChatReply(c.Request.Context(), req.Message, req.History)
	if err != nil {
		h.respondLLMError(c, err)
		return
	}
	respondOK(c, "Reply generated", gin.H{"reply": reply, "provider": meta.Provider, "demo": meta.Demo})
}

// handleMentorChat answers through the fast direct path. It always
// replies; when the upstream call fails the client gets the canned
// fallback with live set to false.
func (h *Handler) handleMentorChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Message == "" {
		respondErr(c, http.StatusBadRequest, "message is required")
		return
	}
	reply, live := h.chat.Reply(c.Request.Context(), req.Message)
	respondOK(c, "Reply generated", gin.H{"reply": reply, "live": live})
}
