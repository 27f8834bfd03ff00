/*
Package main is the entry point for the chat relay server.

It loads configuration, initializes logging, picks the store (Postgres when a
DATABASE_URL is set, in-memory in development otherwise), wires the session
codec and the HTTP router, and handles SIGINT/SIGTERM for graceful shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatrelay/internal/app/db"
	"chatrelay/internal/app/storage"
	"chatrelay/internal/app/store"
	"chatrelay/internal/configs"
	"chatrelay/internal/handler"
	"chatrelay/internal/pkg/auth/session"
	"chatrelay/internal/pkg/logx"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.Init(cfg.IsDevelopment())
	logx.Info("configuration loaded",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"uploads_enabled", cfg.UploadsEnabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var appStore store.Store
	if cfg.DatabaseDSN != "" {
		pool, err := db.NewPool(cfg.DatabaseDSN)
		if err != nil {
			logx.Fatal(err, "failed to initialize database")
		}
		defer pool.Close()
		appStore = store.NewPG(pool)
	} else {
		logx.Warn("no DATABASE_URL set; using the in-memory store")
		appStore = store.NewMemory()
	}

	var blobs storage.BlobStore
	if cfg.UploadsEnabled {
		blobs, err = storage.NewBlobStore(storage.ServiceConfig{
			S3BucketName:      cfg.S3BucketName,
			S3Endpoint:        cfg.S3Endpoint,
			S3AccessKeyID:     cfg.S3AccessKeyID,
			S3SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:     cfg.S3PublicBaseURL,
		})
		if err != nil {
			logx.Fatal(err, "failed to initialize blob store")
		}
	}

	deps := &handler.AppDeps{
		Config: cfg,
		Codec:  session.NewCodec(cfg.SessionSecret, session.DefaultTTL),
		Store:  appStore,
		Blobs:  blobs,
	}

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler.Router(deps),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("chat relay server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("received shutdown signal, starting graceful shutdown")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "server forced to shutdown")
	}

	logx.Info("server stopped")
}
