package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig selects where journal data lives. Mode "file" persists to
// a versioned JSON document at DataFile; mode "memory" keeps everything in
// process and loses it on exit.
type StorageConfig struct {
	Mode     string `yaml:"mode"`
	DataFile string `yaml:"data_file"`
	Pretty   bool   `yaml:"pretty"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

const (
	StorageModeFile   = "file"
	StorageModeMemory = "memory"
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Host: "127.0.0.1", Port: 8080},
		Storage: StorageConfig{Mode: StorageModeFile, DataFile: defaultDataFile()},
	}
}

func defaultDataFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "fitjournal.json"
	}
	return filepath.Join(home, ".fitjournal", "fitjournal.json")
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error; defaults apply. Env vars use
// the prefix FITJOURNAL_ and underscore-separated paths:
//
//	FITJOURNAL_SERVER_HOST, FITJOURNAL_SERVER_PORT,
//	FITJOURNAL_STORAGE_MODE, FITJOURNAL_STORAGE_DATA_FILE,
//	FITJOURNAL_STORAGE_PRETTY, FITJOURNAL_AUTH_API_KEY
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FITJOURNAL_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("FITJOURNAL_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FITJOURNAL_STORAGE_MODE"); v != "" {
		cfg.Storage.Mode = v
	}
	if v := os.Getenv("FITJOURNAL_STORAGE_DATA_FILE"); v != "" {
		cfg.Storage.DataFile = v
	}
	if v := os.Getenv("FITJOURNAL_STORAGE_PRETTY"); v != "" {
		if pretty, err := strconv.ParseBool(v); err == nil {
			cfg.Storage.Pretty = pretty
		}
	}
	if v := os.Getenv("FITJOURNAL_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	switch c.Storage.Mode {
	case StorageModeFile:
		if c.Storage.DataFile == "" {
			return fmt.Errorf("storage.data_file is required in file mode")
		}
	case StorageModeMemory:
	default:
		return fmt.Errorf("storage.mode must be %q or %q", StorageModeFile, StorageModeMemory)
	}
	return nil
}
