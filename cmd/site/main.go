package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shikkha/internal/adapters/discord"
	"shikkha/internal/adapters/httpapi"
	"shikkha/internal/application"
	"shikkha/internal/config"
	"shikkha/internal/domain/entities"
	"shikkha/internal/infrastructure/database"
	"shikkha/internal/infrastructure/i18n"
	"shikkha/internal/ports/input"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("❌ Database migrations failed: %v", err)
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Database initialization failed: %v", err)
	}
	defer pool.Close()

	translator, err := i18n.NewTranslator(cfg.DefaultLocale)
	if err != nil {
		log.Fatalf("❌ Loading translations failed: %v", err)
	}

	postRepo := database.NewPostRepository(pool)
	adminRepo := database.NewAdminRepository(pool)
	posts := application.NewPostService(postRepo)
	auth := application.NewAuthService(adminRepo, cfg.JWTSecret, cfg.JWTTTL)

	if cfg.BootstrapAdmin() {
		if err := auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
			log.Fatalf("❌ Creating the bootstrap admin failed: %v", err)
		}
		log.Printf("✅ Admin account %s ready.", cfg.AdminEmail)
	}

	var announcer input.AnnouncementUseCase
	if cfg.DiscordEnabled() {
		bot, err := discord.NewBot(cfg.DiscordToken, cfg.DiscordChannelID, cfg.PublicURL, translator)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		if err := bot.Open(); err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer bot.Close()
		announcer = application.NewAnnouncementService(postRepo, bot)
	}
	go discord.RunScheduledAnnouncements(ctx, announcer, cfg.AnnounceInterval)

	locale, _ := entities.ParseLocale(cfg.DefaultLocale)
	handler := httpapi.NewHandler(posts, auth, translator, locale)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewRouter(handler, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("📣 Site listening on %s", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("❌ HTTP server stopped: %v", err)
		}
	case <-ctx.Done():
		log.Println("ℹ️ Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ HTTP shutdown: %v", err)
	}
}
