package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	stateDirName = ".liftlog"

	CorruptPolicyReset = "reset"
	CorruptPolicyFail  = "fail"
)

type Config struct {
	DataPath   string `toml:"-"`
	StateDir   string `toml:"-"`
	StatePath  string `toml:"-"`
	DBPath     string `toml:"-"`
	ConfigPath string `toml:"-"`

	LogLevel      string `toml:"log_level"`
	LogFile       string `toml:"log_file"`
	LogToStderr   bool   `toml:"log_to_stderr"`
	CorruptPolicy string `toml:"corrupt_policy"`
}

// New resolves on-disk locations under dataPath and overlays the optional
// config.toml found in the state directory.
func New(dataPath string) (Config, error) {
	if strings.TrimSpace(dataPath) == "" {
		return Config{}, fmt.Errorf("data path is required")
	}
	stateDir := filepath.Join(dataPath, stateDirName)
	cfg := Config{
		DataPath:      dataPath,
		StateDir:      stateDir,
		StatePath:     filepath.Join(stateDir, "state.json"),
		DBPath:        filepath.Join(stateDir, "liftlog.db"),
		ConfigPath:    filepath.Join(stateDir, "config.toml"),
		LogLevel:      "info",
		LogFile:       filepath.Join(stateDir, "liftlog.log"),
		CorruptPolicy: CorruptPolicyReset,
	}
	if _, err := toml.DecodeFile(cfg.ConfigPath, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("decode %s: %w", cfg.ConfigPath, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.CorruptPolicy {
	case CorruptPolicyReset, CorruptPolicyFail:
		return nil
	default:
		return fmt.Errorf("unknown corrupt_policy %q (want %s|%s)", c.CorruptPolicy, CorruptPolicyReset, CorruptPolicyFail)
	}
}
