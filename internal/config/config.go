package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/openacuity/acuity/internal/watcher"
)

type AuditConfig struct {
	FailThreshold int      `yaml:"fail_threshold"`
	DisabledRules []string `yaml:"disabled_rules"`
}

type AnnouncerConfig struct {
	Delay time.Duration `yaml:"delay"`
}

type Config struct {
	SocketPath     string
	PrefsDBPath    string
	PidFilePath    string
	LogLevel       string
	MaxConnections int
	Audit          AuditConfig
	Announcer      AnnouncerConfig
	Watcher        watcher.Config
}

func Load() *Config {
	homeDir, _ := os.UserHomeDir()
	acuityDir := filepath.Join(homeDir, ".acuity")
	socketPath := filepath.Join(acuityDir, "daemon.sock")
	prefsDBPath := filepath.Join(acuityDir, "prefs.db")
	pidFilePath := filepath.Join(acuityDir, "daemon.pid")

	return &Config{
		SocketPath:     socketPath,
		PrefsDBPath:    prefsDBPath,
		PidFilePath:    pidFilePath,
		LogLevel:       "info",
		MaxConnections: 100,
		Audit: AuditConfig{
			FailThreshold: 0,
		},
		Announcer: AnnouncerConfig{
			Delay: 100 * time.Millisecond,
		},
		Watcher: watcher.DefaultConfig(),
	}
}

func (c *Config) EnsureDirectories() error {
	homeDir, _ := os.UserHomeDir()
	acuityDir := filepath.Join(homeDir, ".acuity")
	return os.MkdirAll(acuityDir, 0700)
}
