// Package httpapi exposes the planner over HTTP for the frontend.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"blueprintai/internal/cache"
	"blueprintai/internal/config"
	"blueprintai/internal/llm"
	"blueprintai/internal/logger"
	"blueprintai/internal/observability"
	"blueprintai/internal/planner"
	"blueprintai/internal/ratelimit"
	"blueprintai/internal/store"
	"blueprintai/internal/validation"
)

// Envelope is the response shape shared by every route.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// Deps carries everything the handlers need. Store and Cache may be nil;
// the routes that need them degrade or refuse instead of panicking.
type Deps struct {
	Config   config.Config
	Log      *logger.Logger
	Planner  *planner.Service
	Gen      llm.Generator
	Chat     *llm.ChatClient
	Store    *store.Store
	Cache    *cache.Cache
	Limiter  *ratelimit.Limiter
	Observer *observability.ProviderObserver
}

type Handler struct {
	cfg     config.Config
	log     *logger.Logger
	planner *planner.Service
	gen     llm.Generator
	chat    *llm.ChatClient
	store   *store.Store
	cache   *cache.Cache
	limiter *ratelimit.Limiter
	obs     *observability.ProviderObserver
}

func NewHandler(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		cfg:     d.Config,
		log:     log,
		planner: d.Planner,
		gen:     d.Gen,
		chat:    d.Chat,
		store:   d.Store,
		cache:   d.Cache,
		limiter: d.Limiter,
		obs:     d.Observer,
	}
}

// Router builds the gin engine with CORS and all routes registered.
func (h *Handler) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	origins := h.cfg.CORS.Origins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	r.GET("/health", h.handleHealth)

	api := r.Group("/api")
	api.GET("/status", h.handleStatus)

	planning := api.Group("/planning")
	planning.POST("/generate-blueprint", h.handleGenerateBlueprint)
	planning.POST("/regenerate-blueprint", h.handleRegenerateBlueprint)
	planning.POST("/expand-idea", h.handleExpandIdea)
	planning.POST("/evaluate-idea", h.handleEvaluateIdea)
	planning.POST("/features", h.handleFeatures)
	planning.POST("/comparison", h.handleComparison)
	planning.POST("/system-flow", h.handleSystemFlow)
	planning.POST("/tech-stack", h.handleTechStack)
	planning.POST("/tech-stack-extended", h.handleTechStackExtended)
	planning.POST("/architecture", h.handleArchitecture)
	planning.POST("/viva", h.handleViva)
	planning.POST("/pitch", h.handlePitch)
	planning.POST("/feature-tradeoff", h.handleFeatureTradeoff)

	api.POST("/idea/clarify", h.handleClarify)
	api.POST("/idea/answer", h.handleClarifyAnswers)

	api.POST("/chat/message", h.rateLimited, h.handleChatMessage)
	api.POST("/mentor-chat/message", h.rateLimited, h.handleMentorChat)

	api.POST("/revision/apply", h.handleApplyRevision)
	api.GET("/revision/propagation-map", h.handlePropagationMap)

	api.POST("/flowcharts/user-flow", h.handleUserFlowChart)
	api.POST("/flowcharts/tech-stack", h.handleTechStackChart)

	api.POST("/projects", h.handleCreateProject)
	api.GET("/projects", h.handleListProjects)
	api.GET("/projects/:id", h.handleGetProject)
	api.DELETE("/projects/:id", h.handleDeleteProject)

	return r
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func respondErr(c *gin.Context, status int, message string, errs ...string) {
	c.JSON(status, Envelope{Success: false, Message: message, Errors: errs})
}

// respondLLMError maps a generation failure to the caller. Cascade
// failures surface only the generic busy sentence; the per-provider
// breakdown stays in logs.
func (h *Handler) respondLLMError(c *gin.Context, err error) {
	var cascadeErr *llm.CascadeError
	if errors.As(err, &cascadeErr) {
		h.log.Warn("all providers failed", "detail", cascadeErr.Detail())
		respondErr(c, http.StatusServiceUnavailable, llm.BusyMessage)
		return
	}
	h.log.Error("generation failed", "err", err.Error())
	respondErr(c, http.StatusServiceUnavailable, llm.BusyMessage)
}

func respondValidationError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		errs := []string{string(verr.Code)}
		if verr.Suggestion != "" {
			errs = append(errs, verr.Suggestion)
		}
		respondErr(c, http.StatusUnprocessableEntity, verr.Message, errs...)
		return true
	}
	respondErr(c, http.StatusUnprocessableEntity, err.Error())
	return true
}

func (h *Handler) rateLimited(c *gin.Context) {
	if h.limiter == nil {
		return
	}
	ok, retry := h.limiter.Allow(c.ClientIP(), h.cfg.RateLimit.ChatPerMinute, h.cfg.RateLimit.Burst)
	if !ok {
		c.Header("Retry-After", strconv.Itoa(retry))
		respondErr(c, http.StatusTooManyRequests, "Too many messages, please slow down.")
		c.Abort()
	}
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) handleStatus(c *gin.Context) {
	data := gin.H{"llm": h.gen.Status()}
	if h.obs != nil {
		data["providers"] = h.obs.Snapshot()
	}
	respondOK(c, "service status", data)
}
