// Package config holds the remindd daemon configuration: YAML on disk,
// created on first run, loaded and saved through an afero filesystem so the
// daemon and its tests share one code path.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/studybuddy/remindd/common"
)

// Config is the top-level daemon configuration.
type Config struct {
	// APIBaseURL is the Study Buddy REST API root, e.g. "https://studybuddy.example.com".
	APIBaseURL string `yaml:"api_base_url" json:"api_base_url"`

	// EmailPattern gates scheduling; only users whose email matches are
	// served. Matched case-insensitively.
	EmailPattern string `yaml:"email_pattern" json:"email_pattern"`

	// RefreshCron is the periodic agenda refresh schedule.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// Listen is the HTTP listen address for the web status surface.
	// Empty disables it.
	Listen string `yaml:"listen,omitempty" json:"listen,omitempty"`

	// Timezone is the IANA zone used to interpret activity date/time
	// strings. Empty means the system local zone.
	Timezone string `yaml:"timezone,omitempty" json:"timezone,omitempty"`

	// JournalPath is the SQLite dispatch journal location.
	JournalPath string `yaml:"journal_path" json:"journal_path"`

	// FormatterScript is an optional JavaScript file customizing reminder
	// text. Empty means built-in formatting.
	FormatterScript string `yaml:"formatter_script,omitempty" json:"formatter_script,omitempty"`

	// RPCSecret is the bearer token required on the HTTP JSON-RPC surface.
	// Empty disables RPC while leaving /health and notification streams up.
	RPCSecret string `yaml:"rpc_secret,omitempty" json:"-"`

	// GroupBatchSize bounds concurrent group-detail fetches per refresh.
	GroupBatchSize int `yaml:"group_batch_size" json:"group_batch_size"`
}

// DefaultConfig returns the in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:     "http://localhost:5000",
		EmailPattern:   `^\d+@students\.wits\.ac\.za$`,
		RefreshCron:    "*/5 * * * *",
		Listen:         "127.0.0.1:8331",
		JournalPath:    filepath.Join(baseDir(), "journal.db"),
		GroupBatchSize: 5,
	}
}

// Normalize fills missing values with defaults so partially filled configs
// from older versions still behave.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.APIBaseURL == "" {
		c.APIBaseURL = def.APIBaseURL
	}
	if c.EmailPattern == "" {
		c.EmailPattern = def.EmailPattern
	}
	if c.RefreshCron == "" {
		c.RefreshCron = def.RefreshCron
	}
	if c.JournalPath == "" {
		c.JournalPath = def.JournalPath
	}
	if c.GroupBatchSize <= 0 {
		c.GroupBatchSize = def.GroupBatchSize
	}
}

// DefaultPath returns the config file location, honoring the env override.
func DefaultPath() string {
	if p := os.Getenv(common.ConfigPathEnv); p != "" {
		return p
	}
	return filepath.Join(baseDir(), "config.yaml")
}

// BaseDir returns the remindd state directory under the user config dir.
func BaseDir() string {
	return baseDir()
}

func baseDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "remindd")
}

// Load reads the config at path from fsys. A missing file is first run: a
// default config is written with 0600 perms and returned.
func Load(fsys afero.Fs, path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(fsys, path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the config atomically: temp file in the target directory,
// fsync, chmod 0600, rename.
func Save(fsys afero.Fs, path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := afero.TempFile(fsys, dir, ".remindd-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer fsys.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := fsys.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return fsys.Rename(tmpName, path)
}

// Save delegates to the package-level Save for call sites holding a Config.
func (c *Config) Save(fsys afero.Fs, path string) error {
	return Save(fsys, path, c)
}
