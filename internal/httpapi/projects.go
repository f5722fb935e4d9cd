package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blueprintai/internal/store"
)

func (h *Handler) requireStore(c *gin.Context) bool {
	if h.store == nil {
		respondErr(c, http.StatusServiceUnavailable, "persistence is not configured")
		return false
	}
	return true
}

type createProjectRequest struct {
	Idea             string          `json:"idea"`
	Mode             string          `json:"mode"`
	Blueprint        json.RawMessage `json:"blueprint"`
	UserFlowMermaid  string          `json:"user_flow_mermaid"`
	TechStackMermaid string          `json:"tech_stack_mermaid"`
}

func (h *Handler) handleCreateProject(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Idea == "" || len(req.Blueprint) == 0 {
		respondErr(c, http.StatusBadRequest, "idea and blueprint are required")
		return
	}
	id, err := h.store.SaveProject(c.Request.Context(), store.Project{
		Idea:             req.Idea,
		Mode:             req.Mode,
		Blueprint:        req.Blueprint,
		UserFlowMermaid:  req.UserFlowMermaid,
		TechStackMermaid: req.TechStackMermaid,
	})
	if err != nil {
		h.log.Error("project save failed", "err", err.Error())
		respondErr(c, http.StatusInternalServerError, "could not save project")
		return
	}
	respondOK(c, "Project saved", gin.H{"project_id": id.String()})
}

func (h *Handler) handleListProjects(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	projects, err := h.store.ListProjects(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("project list failed", "err", err.Error())
		respondErr(c, http.StatusInternalServerError, "could not list projects")
		return
	}
	respondOK(c, "Projects listed", gin.H{"projects": projects})
}

func (h *Handler) handleGetProject(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondErr(c, http.StatusBadRequest, "invalid project id")
		return
	}
	project, err := h.store.GetProject(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondErr(c, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		h.log.Error("project load failed", "err", err.Error())
		respondErr(c, http.StatusInternalServerError, "could not load project")
		return
	}
	respondOK(c, "Project loaded", gin.H{"project": project})
}

func (h *Handler) handleDeleteProject(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondErr(c, http.StatusBadRequest, "invalid project id")
		return
	}
	err = h.store.DeleteProject(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondErr(c, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		h.log.Error("project delete failed", "err", err.Error())
		respondErr(c, http.StatusInternalServerError, "could not delete project")
		return
	}
	respondOK(c, "Project deleted", nil)
}
