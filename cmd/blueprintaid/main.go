package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"blueprintai/internal/app"
	"blueprintai/internal/config"
	"blueprintai/internal/store"
)

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("BP_CONFIG"))
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch cmd {
	case "serve":
		runServe(ctx, cfg)
	case "migrate":
		runMigrate(ctx, cfg)
	default:
		usage()
	}
}

func runServe(ctx context.Context, cfg config.Config) {
	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("app init error: %v", err)
	}
	defer a.Close()

	if err := a.Serve(ctx); err != nil {
		log.Fatalf("serve error: %v", err)
	}
}

func runMigrate(ctx context.Context, cfg config.Config) {
	if cfg.Database.DSN == "" {
		log.Fatalf("migrate requires a database dsn (BP_DATABASE_DSN or DATABASE_URL)")
	}
	st, err := store.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	defer st.Close()

	if err := store.Migrate(ctx, st.DB()); err != nil {
		log.Fatalf("migrate error: %v", err)
	}
	fmt.Println("migrations applied")
}

func usage() {
	fmt.Println("usage: blueprintaid [serve|migrate]")
}
