package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the application configuration.
type AppConfig struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Reconcile ReconcileConfig `toml:"reconcile"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig configures storage locations.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// ReconcileConfig configures the reconciliation pipeline.
type ReconcileConfig struct {
	PollSeconds int `toml:"poll_seconds"` // 0 disables periodic re-runs
}

// PollInterval returns the configured poll interval, zero when disabled.
func (c ReconcileConfig) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return 0
	}
	return time.Duration(c.PollSeconds) * time.Second
}

// LoadConfigInfo carries metadata about how the config file was read.
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20271,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Reconcile: ReconcileConfig{
			PollSeconds: 300,
		},
	}
}

// GetExeDir returns the directory holding the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo reads config.toml next to the executable (falling back
// to the working directory) over the defaults, and reports whether the file
// pinned the port so CLI flags know not to override it.
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	cfg := DefaultConfig()
	info := LoadConfigInfo{}

	path, err := findConfigFile()
	if err != nil {
		return cfg, info, err
	}
	if path == "" {
		return cfg, info, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, info, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return cfg, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)
	return cfg, info, nil
}

func findConfigFile() (string, error) {
	if exeDir, err := GetExeDir(); err == nil {
		path := filepath.Join(exeDir, "config.toml")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	if _, err := os.Stat("config.toml"); err == nil {
		return "config.toml", nil
	}
	return "", nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}
	serverAny, ok := raw["server"]
	if !ok {
		return false
	}
	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}
	_, ok = serverMap["port"]
	return ok
}

// EnsureDataDir creates the data directory if needed and returns its
// absolute path.
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dir := cfg.Data.DataDir
	if !filepath.IsAbs(dir) {
		if exeDir, err := GetExeDir(); err == nil {
			dir = filepath.Join(exeDir, dir)
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
