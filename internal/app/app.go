// Package app assembles the service from configuration.
package app

import (
	"context"
	"net/http"
	"time"

	"blueprintai/internal/cache"
	"blueprintai/internal/config"
	"blueprintai/internal/httpapi"
	"blueprintai/internal/llm"
	"blueprintai/internal/logger"
	"blueprintai/internal/observability"
	"blueprintai/internal/planner"
	"blueprintai/internal/ratelimit"
	"blueprintai/internal/store"
)

type App struct {
	Config   config.Config
	Log      *logger.Logger
	Store    *store.Store
	Cache    *cache.Cache
	Gen      llm.Generator
	Chat     *llm.ChatClient
	Planner  *planner.Service
	Limiter  *ratelimit.Limiter
	Observer *observability.ProviderObserver
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	var st *store.Store
	if cfg.Database.DSN != "" {
		st, err = store.Open(cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx, st.DB()); err != nil {
			_ = st.Close()
			return nil, err
		}
	} else {
		log.Warn("no database configured, projects will not persist")
	}

	var bpCache *cache.Cache
	if cfg.Redis.URL != "" {
		bpCache, err = cache.New(cfg.Redis.URL, cfg.Redis.CacheTTL)
		if err != nil {
			log.Warn("redis unavailable, blueprint cache disabled", "err", err.Error())
			bpCache = nil
		}
	}

	obs := observability.NewProviderObserver()
	gen := selectGenerator(cfg, log, obs)

	chat := llm.NewChatClient(cfg.GroqChatKey(), cfg.Groq.Endpoint, cfg.Groq.Model, cfg.Groq.ChatTimeout, log)

	return &App{
		Config:   cfg,
		Log:      log,
		Store:    st,
		Cache:    bpCache,
		Gen:      gen,
		Chat:     chat,
		Planner:  planner.New(gen, log),
		Limiter:  ratelimit.New(),
		Observer: obs,
	}, nil
}

// selectGenerator picks the demo responder when demo mode is forced or no
// provider key is usable; otherwise it builds the three-provider cascade.
func selectGenerator(cfg config.Config, log *logger.Logger, obs *observability.ProviderObserver) llm.Generator {
	anyKey := llm.UsableKey(cfg.Gemini.APIKey) ||
		llm.UsableKey(cfg.Groq.APIKey) ||
		llm.UsableKey(cfg.OpenRouter.APIKey)
	if cfg.Demo.Force || !anyKey {
		if !cfg.Demo.Force {
			log.Warn("no provider keys configured, running in demo mode")
		}
		return llm.NewDemoResponder()
	}
	return llm.NewCascade(log, obs,
		llm.Candidate{
			Client: llm.NewGemini(cfg.Gemini.APIKey, cfg.Gemini.Endpoint, cfg.Gemini.Timeout),
			Key:    cfg.Gemini.APIKey,
		},
		llm.Candidate{
			Client: llm.NewGroq(cfg.Groq.APIKey, cfg.Groq.Endpoint, cfg.Groq.Model, cfg.Groq.Timeout),
			Key:    cfg.Groq.APIKey,
		},
		llm.Candidate{
			Client: llm.NewOpenRouter(cfg.OpenRouter.APIKey, cfg.OpenRouter.Endpoint, cfg.OpenRouter.Model, cfg.OpenRouter.Referer, cfg.OpenRouter.Title, cfg.OpenRouter.Timeout),
			Key:    cfg.OpenRouter.APIKey,
		},
	)
}

func (a *App) Close() error {
	var err error
	if a.Store != nil {
		err = a.Store.Close()
	}
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
	return err
}

// Serve runs the HTTP API until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	handler := httpapi.NewHandler(httpapi.Deps{
		Config:   a.Config,
		Log:      a.Log,
		Planner:  a.Planner,
		Gen:      a.Gen,
		Chat:     a.Chat,
		Store:    a.Store,
		Cache:    a.Cache,
		Limiter:  a.Limiter,
		Observer: a.Observer,
	})

	srv := &http.Server{
		Addr:              a.Config.HTTP.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.Log.Info("serving", "addr", a.Config.HTTP.Addr, "demo", a.Gen.Status().Demo)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
