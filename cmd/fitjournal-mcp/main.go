package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/fitjournal/internal/config"
	"github.com/claude/fitjournal/internal/mcp"
	"github.com/claude/fitjournal/internal/persist"
	"github.com/claude/fitjournal/internal/store"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	remote := flag.String("remote", "", "FitJournal server URL; when set, data is read over the REST API instead of the local data file")
	apiKey := flag.String("api-key", "", "API key for -remote mode (defaults to FITJOURNAL_AUTH_API_KEY)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("fitjournal-mcp", Version)
		return
	}

	// Logs go to stderr; stdout carries the MCP stdio transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	if *remote != "" {
		key := *apiKey
		if key == "" {
			key = os.Getenv("FITJOURNAL_AUTH_API_KEY")
		}
		ds = mcp.NewHTTPClient(*remote, key)
		log.Info("mcp starting", "mode", "remote", "server", *remote)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		var persistor store.Persistor
		if cfg.Storage.Mode == config.StorageModeMemory {
			persistor = persist.NewMemoryPersistor(nil, nil)
		} else {
			persistor = persist.NewFilePersistor(cfg.Storage.DataFile, persist.OSFileIO{}, cfg.Storage.Pretty, log)
		}

		st := store.New(persistor, log)
		defer st.Close()
		<-st.Ready()

		ds = mcp.LocalSource{Store: st}
		log.Info("mcp starting", "mode", "local", "storage", cfg.Storage.Mode)
	}

	srv := mcp.New(ds, Version, log)
	if err := mcpserver.ServeStdio(srv); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
