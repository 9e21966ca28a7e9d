package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"shikkha/internal/adapters/console"
	"shikkha/internal/application/store"
	"shikkha/internal/config"
	"shikkha/internal/domain/entities"
	"shikkha/internal/infrastructure/blogapi"
	"shikkha/internal/infrastructure/i18n"
	"shikkha/internal/infrastructure/storage"
)

func main() {
	cfg, err := config.LoadConsole()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	kv, err := storage.NewFileStore(cfg.StateFile)
	if err != nil {
		log.Fatalf("❌ Opening %s failed: %v", cfg.StateFile, err)
	}
	translator, err := i18n.NewTranslator(string(entities.DefaultLocale()))
	if err != nil {
		log.Fatalf("❌ Loading translations failed: %v", err)
	}

	// The client asks the scope for the active locale on every request.
	var scope *store.Scope
	api, err := blogapi.New(cfg.APIURL, blogapi.WithLocale(func() entities.Locale {
		if scope == nil {
			return entities.DefaultLocale()
		}
		return scope.Locale.Get()
	}))
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	scope = store.NewScope(kv, api, translator, store.ScopeOptions{ToastTTL: cfg.ToastTTL})
	defer scope.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := console.New(scope, api, os.Stdin, os.Stdout).Run(ctx); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
