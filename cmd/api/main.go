package main

import (
	"context"
	"fmt"
	"log"

	"nutricare-api/core"
)

func main() {
	cfg := core.Load()
	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	// Refuse to run with a missing signing secret: every issued token would
	// be forgeable otherwise.
	if cfg.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is required")
	}

	if err := core.Migrate(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	db, err := core.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	// The content cache is optional: without redis the API serves straight
	// from the database.
	var cache core.ContentCache
	if cfg.RedisURL != "" {
		redisClient, err := core.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Printf("redis unavailable, content cache disabled: %v", err)
		} else {
			defer redisClient.Close()
			cache = core.NewRedisContentCache(redisClient, cfg.CacheTTL)
		}
	}

	userRepo := core.NewPgUserRepository(db)
	hasher := core.NewPasswordHasher(cfg.BcryptCost)
	tokens := core.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)
	authService := core.NewAuthService(userRepo, hasher, tokens)

	repos := core.Repositories{
		Headers:     core.NewPgHeaderRepository(db),
		Contacts:    core.NewPgContactRepository(db),
		Slides:      core.NewPgSlideRepository(db),
		About:       core.NewPgAboutRepository(db),
		Specialties: core.NewPgSpecialtyRepository(db),
		Blog:        core.NewPgBlogRepository(db),
		Footers:     core.NewPgFooterRepository(db),
	}
	images := core.NewPgImageStore(db)

	if err := core.BootstrapAdmin(ctx, userRepo, hasher, cfg); err != nil {
		log.Fatalf("bootstrap admin failed: %v", err)
	}
	if err := core.SeedContent(ctx, cfg, repos.Headers, repos.About, repos.Footers); err != nil {
		log.Fatalf("content seed failed: %v", err)
	}

	router := core.NewRouter(cfg, authService, tokens, userRepo, repos, images, cache)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("starting api server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
