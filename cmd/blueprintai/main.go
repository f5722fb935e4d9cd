// Command blueprintai is the ops CLI: health checks against a running
// instance plus one-shot blueprint generation for smoke testing prompts.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"blueprintai/internal/app"
	"blueprintai/internal/blueprint"
	"blueprintai/internal/cache"
	"blueprintai/internal/config"
	"blueprintai/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	cmd := os.Args[1]

	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("BP_CONFIG"))
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	switch cmd {
	case "doctor":
		doctor(cfg)
	case "generate":
		generate(cfg, strings.Join(os.Args[2:], " "))
	default:
		usage()
	}
}

func doctor(cfg config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	check("http api", func() error {
		addr := cfg.HTTP.Addr
		if strings.HasPrefix(addr, ":") {
			addr = "localhost" + addr
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/health", nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		return nil
	})

	check("database", func() error {
		if cfg.Database.DSN == "" {
			return fmt.Errorf("not configured")
		}
		st, err := store.Open(cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer st.Close()
		return st.Ping(ctx)
	})

	check("redis", func() error {
		if cfg.Redis.URL == "" {
			return fmt.Errorf("not configured")
		}
		c, err := cache.New(cfg.Redis.URL, cfg.Redis.CacheTTL)
		if err != nil {
			return err
		}
		defer c.Close()
		return c.Ping(ctx)
	})
}

func check(name string, fn func() error) {
	if err := fn(); err != nil {
		fmt.Printf("%-10s FAIL  %v\n", name, err)
		return
	}
	fmt.Printf("%-10s OK\n", name)
}

// generate runs the full pipeline in-process and prints the
// frontend-format blueprint. Useful for trying prompt changes without
// a browser.
func generate(cfg config.Config, idea string) {
	if strings.TrimSpace(idea) == "" {
		log.Fatalf("usage: blueprintai generate <idea...>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	cfg.Database.DSN = ""
	cfg.Redis.URL = ""
	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("app init error: %v", err)
	}
	defer a.Close()

	bp, meta, err := a.Planner.GenerateFullBlueprint(ctx, idea, "college")
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	out, err := json.MarshalIndent(blueprint.MapToFrontend(bp), "", "  ")
	if err != nil {
		log.Fatalf("encode error: %v", err)
	}
	fmt.Fprintf(os.Stderr, "provider=%s demo=%v\n", meta.Provider, meta.Demo)
	fmt.Println(string(out))
}

func usage() {
	fmt.Println("usage: blueprintai [doctor|generate <idea...>]")
}
