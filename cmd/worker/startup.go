package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
	systemHandler "blog-backend/internal/domains/system/handler"
	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/container"
)

// startServices checks the worker's dependencies and exposes a probe endpoint.
func startServices(c *container.Container, cfg *config.Config) error {
	checks := []struct {
		name string
		ping systemHandler.Pinger
	}{
		{"database", c.DB},
		{"redis", c.Cache},
	}

	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.ping.Ping(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("%s check failed: %w", check.name, err)
		}
		log.Info().Str("dependency", check.name).Msg("startup check ok")
	}

	if stats, err := c.DB.Stats(); err == nil {
		log.Info().
			Int32("total", stats.TotalConns).
			Int32("idle", stats.IdleConns).
			Int32("max", stats.MaxConns).
			Msg("postgres pool ready")
	}

	go startHealthCheckServer(c, cfg.Worker.HealthPort)
	return nil
}

// startHealthCheckServer serves GET /health for container probes.
func startHealthCheckServer(c *container.Container, port string) {
	router := gin.New()
	router.Use(middleware.Recovery())

	health := systemHandler.NewHealthHandler(c.Config.App.Version, c.DB, map[string]systemHandler.Pinger{"redis": c.Cache})
	router.GET("/health", health.Check)

	log.Info().Str("port", port).Msg("worker health server starting")
	if err := http.ListenAndServe(":"+port, router); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("worker health server failed")
	}
}
