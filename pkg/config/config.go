// Package config loads umlsvg settings from a TOML file.
//
// A file only needs the keys it changes; everything else keeps its default:
//
//	[render]
//	curviness = 0.4
//	font_size = 12
//
//	[layout]
//	rankdir = "LR"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
// Environment variables (UMLSVG_CACHE_BACKEND, UMLSVG_CACHE_DIR,
// UMLSVG_REDIS_URL, UMLSVG_MONGO_URI, UMLSVG_ADDR) override the file.
// Command line flags override both.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/umlsvg/pkg/cache"
	errs "github.com/matzehuels/umlsvg/pkg/errors"
	"github.com/matzehuels/umlsvg/pkg/layout"
	"github.com/matzehuels/umlsvg/pkg/render/diagram"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

// DefaultAddr is the listen address of the HTTP service.
const DefaultAddr = "127.0.0.1:8080"

// Config is the full configuration.
type Config struct {
	Render RenderConfig `toml:"render"`
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds diagram settings.
type RenderConfig struct {
	Margin     float64 `toml:"margin"`
	Curviness  float64 `toml:"curviness"`
	Bezier     bool    `toml:"bezier"`
	FontSize   float64 `toml:"font_size"`
	FontColor  string  `toml:"font_color"`
	FontFamily string  `toml:"font_family"`
	Width      string  `toml:"width"`
	Height     string  `toml:"height"`
	Edges      bool    `toml:"edges"`
}

// LayoutConfig holds Graphviz settings.
type LayoutConfig struct {
	Engine        string  `toml:"engine"`
	RankDir       string  `toml:"rankdir"`
	NodeDistance  float64 `toml:"node_distance"`
	LayerDistance float64 `toml:"layer_distance"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisURL      string   `toml:"redis_url"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
	TTL           Duration `toml:"ttl"`
}

// ServerConfig configures `umlsvg serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as "90s" or "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	s := diagram.DefaultSettings()
	l := layout.DefaultOptions()
	return &Config{
		Render: RenderConfig{
			Margin:     s.Margin,
			Curviness:  s.Curviness,
			FontSize:   s.FontSize,
			FontColor:  s.FontColor,
			FontFamily: s.FontFamily,
			Edges:      true,
		},
		Layout: LayoutConfig{
			Engine:        l.Engine,
			RankDir:       l.RankDir,
			NodeDistance:  l.NodeDistance,
			LayerDistance: l.LayerDistance,
		},
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			TTL:     Duration{cache.LayoutTTL},
		},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "umlsvg", FileName), nil
}

// Load reads the config file at path over the defaults and applies the
// environment. An empty path means DefaultPath, which may be absent; an
// explicit path that does not exist is a FILE_NOT_FOUND error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return finish(Default())
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if explicit {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		}
		return finish(Default())
	case err != nil:
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return finish(cfg)
}

// Parse decodes TOML text over the defaults without touching the environment.
func Parse(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown key %s", undecoded[0])
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Cache.Backend, "UMLSVG_CACHE_BACKEND")
	set(&c.Cache.Dir, "UMLSVG_CACHE_DIR")
	set(&c.Cache.RedisURL, "UMLSVG_REDIS_URL")
	set(&c.Cache.MongoURI, "UMLSVG_MONGO_URI")
	set(&c.Server.Addr, "UMLSVG_ADDR")
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "[render]")
	}
	if err := c.LayoutOptions().Validate(); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "[layout]")
	}
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "[cache]: unknown backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "[cache]: ttl must be >= 0")
	}
	if c.Server.Addr == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "[server]: addr is empty")
	}
	return nil
}

// Settings returns the render section as diagram settings.
func (c *Config) Settings() diagram.Settings {
	r := c.Render
	return diagram.Settings{
		Margin:     r.Margin,
		Curviness:  r.Curviness,
		Bezier:     r.Bezier,
		FontSize:   r.FontSize,
		FontColor:  r.FontColor,
		FontFamily: r.FontFamily,
		Width:      r.Width,
		Height:     r.Height,
	}
}

// LayoutOptions returns the layout section as Graphviz options.
func (c *Config) LayoutOptions() layout.Options {
	o := layout.DefaultOptions()
	if c.Layout.Engine != "" {
		o.Engine = c.Layout.Engine
	}
	if c.Layout.RankDir != "" {
		o.RankDir = c.Layout.RankDir
	}
	o.NodeDistance = c.Layout.NodeDistance
	o.LayerDistance = c.Layout.LayerDistance
	return o
}

// CacheOptions returns the cache section as backend options.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:       c.Cache.Backend,
		Dir:           c.Cache.Dir,
		RedisURL:      c.Cache.RedisURL,
		MongoURI:      c.Cache.MongoURI,
		MongoDatabase: c.Cache.MongoDatabase,
	}
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
