package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/datasettag/internal/tags"
)

const (
	DefaultFileName = "datasettag.yaml"

	EnvConfigPath = "DATASETTAG_CONFIG"
	EnvLogLevel   = "DATASETTAG_LOG_LEVEL"
	EnvLogFile    = "DATASETTAG_LOG_FILE"
)

type Config struct {
	Application       Application         `yaml:"application"`
	Logging           Logging             `yaml:"logging"`
	DefaultCategories map[string][]string `yaml:"default_categories"`

	// Path is where the config was loaded from and where Save writes.
	Path string `yaml:"-"`
}

type Application struct {
	ThumbnailSize int  `yaml:"thumbnail_size"`
	Workers       int  `yaml:"workers"` // 0 = number of cores
	NoColor       bool `yaml:"no_color"`
	FirstRun      bool `yaml:"is_first_run"`
}

type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		Application: Application{
			ThumbnailSize: 256,
			FirstRun:      true,
		},
		Logging: Logging{Level: "info"},
		DefaultCategories: map[string][]string{
			tags.Type.String():        {"photo", "painting", "illustration"},
			tags.Subject.String():     {"woman", "man", "girl", "boy"},
			tags.Shot.String():        {"close-up", "upper body", "full body"},
			tags.Perspective.String(): {"from above", "from below", "from side"},
			tags.Pose.String():        {"standing", "sitting", "lying"},
			tags.Gaze.String():        {"looking at viewer", "looking away"},
			tags.Lighting.String():    {"soft light", "rim light", "backlight"},
		},
	}
}

// ResolvePath loads .env if present and picks the config location:
// the explicit flag value, then DATASETTAG_CONFIG, then the default name.
func ResolvePath(flagValue string) string {
	_ = godotenv.Load()

	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	return DefaultFileName
}

// Load reads a YAML config. A missing file yields Default() bound to path.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.Path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	loaded.Path = path
	if loaded.Application.ThumbnailSize <= 0 {
		loaded.Application.ThumbnailSize = cfg.Application.ThumbnailSize
	}
	if loaded.Logging.Level == "" {
		loaded.Logging.Level = cfg.Logging.Level
	}
	if loaded.DefaultCategories == nil {
		loaded.DefaultCategories = map[string][]string{}
	}
	return loaded, nil
}

// ApplyEnv overrides logging settings from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}
}

// Save writes the config back to c.Path.
func (c *Config) Save() error {
	if c.Path == "" {
		return errors.New("config path is empty")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(c.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(c.Path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", c.Path, err)
	}
	return nil
}

// Categories converts the default_categories section into catalog lists.
// Unknown category names are returned as an error alongside the lists
// that did parse.
func (c *Config) Categories() (map[tags.Category][]string, error) {
	out := make(map[tags.Category][]string, len(c.DefaultCategories))
	var errs []error
	for name, list := range c.DefaultCategories {
		cat, err := tags.Parse(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[cat] = append([]string(nil), list...)
	}
	return out, errors.Join(errs...)
}

// SetCategories replaces the default_categories section.
func (c *Config) SetCategories(lists map[tags.Category][]string) {
	c.DefaultCategories = make(map[string][]string, len(lists))
	for cat, list := range lists {
		c.DefaultCategories[cat.String()] = append([]string(nil), list...)
	}
}
