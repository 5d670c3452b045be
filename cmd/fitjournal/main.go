package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/fitjournal/internal/config"
	"github.com/claude/fitjournal/internal/persist"
	"github.com/claude/fitjournal/internal/server"
	"github.com/claude/fitjournal/internal/store"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("FitJournal starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Build the persistence layer
	var persistor store.Persistor
	switch cfg.Storage.Mode {
	case config.StorageModeMemory:
		persistor = persist.NewMemoryPersistor(nil, nil)
		log.Info("storage", "mode", "memory")
	default:
		persistor = persist.NewFilePersistor(cfg.Storage.DataFile, persist.OSFileIO{}, cfg.Storage.Pretty, log)
		log.Info("storage", "mode", "file", "path", cfg.Storage.DataFile)
	}

	// Create store and wait for the initial load
	st := store.New(persistor, log)
	<-st.Ready()
	log.Info("journal loaded", "workouts", len(st.Workouts()), "exercises", len(st.Exercises()))

	// Create server
	srv := server.New(st, cfg.Auth.APIKey, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error("listen failed", "addr", addr, "error", err)
		os.Exit(1)
	}
	log.Info("server starting", "addr", addr)

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	// Close flushes any pending save before exit.
	st.Close()
	log.Info("server stopped")
}
