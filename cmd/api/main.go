package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"med-companion/internal/adapters/auth/healthid"
	"med-companion/internal/adapters/notify/local"
	"med-companion/internal/adapters/notify/pushgw"
	"med-companion/internal/platform/logger"
	"med-companion/internal/ports/auth"
	"med-companion/internal/ports/notify"
	"med-companion/internal/router"
)

// @title Med Companion API
// @version 1.0
// @description Backend de recordatorios de medicamentos, adherencia e interacciones.
// @BasePath /
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// Sin HEALTHID_BASE_URL el servicio corre en modo dev: la identidad
	// viene del header X-Debug-User-ID.
	var verifier auth.AuthVerifier
	if base := os.Getenv("HEALTHID_BASE_URL"); base != "" {
		verifier = healthid.NewVerifier(healthid.NewClient(healthid.Config{
			BaseURL: base,
			APIKey:  os.Getenv("HEALTHID_API_KEY"),
		}))
	} else {
		log.Warn("HEALTHID_BASE_URL not set, running in dev auth mode", nil)
	}

	var (
		notifier notify.Scheduler
		registry *local.Registry
	)
	if gw := pushgw.NewFromEnv(); gw.IsConfigured() {
		notifier = gw
		log.Info("using push gateway scheduler", nil)
	} else {
		registry = local.NewRegistry(log)
		if err := registry.Init(context.Background()); err != nil {
			log.Error("notification registry init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		notifier = registry
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Notifier:     notifier,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second, // las llamadas al asistente pueden tardar
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", map[string]any{"error": err.Error()})
	}
	if registry != nil {
		_ = registry.Shutdown(ctx)
	}
}
