package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/fitjournal/internal/codec"
	"github.com/claude/fitjournal/internal/config"
	"github.com/claude/fitjournal/internal/persist"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	inPath := flag.String("in", "", "data file to export (defaults to the configured data file)")
	outPath := flag.String("out", "", "output path; stdout when empty")
	pretty := flag.Bool("pretty", true, "indent the exported JSON")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("fitjournal-export", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	path := *inPath
	if path == "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		if cfg.Storage.Mode != config.StorageModeFile {
			log.Error("nothing to export: storage mode is not file", "mode", cfg.Storage.Mode)
			os.Exit(1)
		}
		path = cfg.Storage.DataFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("failed to read data file", "path", path, "error", err)
		os.Exit(1)
	}

	// Decode at whatever version the file carries, re-encode at the latest.
	doc, err := codec.DecodeDocument(data, codec.LatestVersion)
	if err != nil {
		log.Error("failed to decode data file", "path", path, "error", err)
		os.Exit(1)
	}

	out, err := codec.EncodeDocument(doc, *pretty)
	if err != nil {
		log.Error("failed to encode document", "error", err)
		os.Exit(1)
	}

	if *outPath == "" {
		if _, err := os.Stdout.Write(append(out, '\n')); err != nil {
			log.Error("failed to write output", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := (persist.OSFileIO{}).Write(out, *outPath); err != nil {
		log.Error("failed to write output file", "path", *outPath, "error", err)
		os.Exit(1)
	}
	log.Info("export complete",
		"path", *outPath,
		"workouts", len(doc.Workouts),
		"exercises", len(doc.Exercises),
	)
}
