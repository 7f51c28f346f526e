package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/language"
)

const EnvPrefix = "CHALL_"

type Config struct {
	Dataset   string          `yaml:"dataset" koanf:"dataset"`
	PageSize  int             `yaml:"page_size" koanf:"page_size"`
	Lang      string          `yaml:"lang" koanf:"lang"`
	LogLevel  string          `yaml:"log_level" koanf:"log_level"`
	PrefsPath string          `yaml:"prefs_path" koanf:"prefs_path"`
	SiteURL   string          `yaml:"site_url" koanf:"site_url"`
	Fragments FragmentsConfig `yaml:"fragments" koanf:"fragments"`
	Server    ServerConfig    `yaml:"server" koanf:"server"`
}

type FragmentsConfig struct {
	BaseURL  string            `yaml:"base_url" koanf:"base_url"`
	Dir      string            `yaml:"dir" koanf:"dir"`
	Sections map[string]string `yaml:"sections" koanf:"sections"`
	Preload  []string          `yaml:"preload" koanf:"preload"`
	Timeout  time.Duration     `yaml:"timeout" koanf:"timeout"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" koanf:"addr"`
}

func DefaultConfig() *Config {
	return &Config{
		PageSize:  6,
		Lang:      "en-US",
		LogLevel:  "info",
		PrefsPath: DefaultPrefsPath(),
		Fragments: FragmentsConfig{
			Sections: map[string]string{
				"about-content":      "content/about.html",
				"skills-content":     "content/skills.html",
				"experience-content": "content/experience.html",
			},
			Preload: []string{"content/about.html", "content/skills.html"},
			Timeout: 10 * time.Second,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads the YAML file at path, if present, and overlays CHALL_*
// environment variables. A double underscore in a variable name
// separates nested keys: CHALL_FRAGMENTS__BASE_URL sets fragments.base_url.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Collections from the file replace the defaults instead of merging.
	if k.Exists("fragments.sections") {
		cfg.Fragments.Sections = nil
	}
	if k.Exists("fragments.preload") {
		cfg.Fragments.Preload = nil
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Dataset, &c.PrefsPath, &c.Fragments.Dir} {
		if *p == "" {
			continue
		}
		expanded, err := ExpandPath(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func (c *Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if _, err := language.Parse(c.Lang); err != nil {
		return fmt.Errorf("invalid lang %q: %w", c.Lang, err)
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	if c.Fragments.BaseURL != "" && c.Fragments.Dir != "" {
		return fmt.Errorf("fragments.base_url and fragments.dir are mutually exclusive")
	}
	if c.Fragments.Timeout < 0 {
		return fmt.Errorf("fragments.timeout must be non-negative")
	}
	if c.SiteURL != "" {
		u, err := url.Parse(c.SiteURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid site_url %q: must be an absolute http(s) URL", c.SiteURL)
		}
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// FragmentsEnabled reports whether a fragment source is configured.
func (c *Config) FragmentsEnabled() bool {
	return c.Fragments.BaseURL != "" || c.Fragments.Dir != ""
}
