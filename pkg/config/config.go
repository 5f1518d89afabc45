// Package config loads the autotype configuration file.
//
// The file is TOML with one table per concern. Every key is optional;
// missing keys keep their defaults:
//
//	[animation]
//	tick_interval     = "50ms"
//	elements_per_tick = 10
//	reset_interval    = "60s"
//	fill_interval     = "500ms"   # "0s" disables autofill
//
//	[server]
//	addr = ":8080"
//
//	[redis]
//	addr    = "localhost:6379"    # empty disables the redis mirror
//	key     = "autotype:snapshot"
//	channel = "autotype:snapshots"
//	ttl     = "0s"
//
//	[render]
//	format = "terminal"
//	style  = "auto"
//	width  = 80
//
// Unknown keys are rejected so a typo never silently falls back to a default.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/autotype/pkg/animation"
	apperr "github.com/matzehuels/autotype/pkg/errors"
	"github.com/matzehuels/autotype/pkg/pipeline"
	"github.com/matzehuels/autotype/pkg/publish/redis"
)

// FileName is the name of the configuration file inside the config directory.
const FileName = "config.toml"

// DefaultAddr is the listen address of the HTTP server.
const DefaultAddr = ":8080"

// Config is the whole configuration file.
type Config struct {
	Animation Animation `toml:"animation"`
	Server    Server    `toml:"server"`
	Redis     Redis     `toml:"redis"`
	Render    Render    `toml:"render"`
}

// Animation is the [animation] table.
type Animation struct {
	TickInterval    Duration `toml:"tick_interval"`
	ElementsPerTick int      `toml:"elements_per_tick"`
	ResetInterval   Duration `toml:"reset_interval"`
	FillInterval    Duration `toml:"fill_interval"`
}

// Server is the [server] table.
type Server struct {
	Addr string `toml:"addr"`
}

// Redis is the [redis] table. An empty Addr disables the mirror.
type Redis struct {
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	Key      string   `toml:"key"`
	Channel  string   `toml:"channel"`
	TTL      Duration `toml:"ttl"`
}

// Render is the [render] table.
type Render struct {
	Format string `toml:"format"`
	Style  string `toml:"style"`
	Width  int    `toml:"width"`
}

// Duration is a time.Duration written as a string such as "50ms".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	anim := animation.DefaultConfig()
	return &Config{
		Animation: Animation{
			TickInterval:    Duration{anim.TickInterval},
			ElementsPerTick: anim.ElementsPerTick,
			ResetInterval:   Duration{anim.ResetInterval},
			FillInterval:    Duration{anim.FillInterval},
		},
		Server: Server{Addr: DefaultAddr},
		Redis: Redis{
			Key:     redis.DefaultKey,
			Channel: redis.DefaultChannel,
		},
		Render: Render{
			Format: pipeline.DefaultFormat,
			Style:  pipeline.DefaultStyle,
			Width:  pipeline.DefaultWidth,
		},
	}
}

// Load reads the file at path on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "config file not found: %s", path)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, apperr.New(apperr.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault reads the file at [DefaultPath] if it exists and returns the
// defaults otherwise.
func LoadDefault() (*Config, error) {
	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// DefaultPath returns $XDG_CONFIG_HOME/autotype/config.toml, falling back
// to the platform config directory. It returns "" if neither is known.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "autotype", FileName)
}

// AnimationConfig returns the cadence of the [animation] table.
func (c *Config) AnimationConfig() animation.Config {
	return animation.Config{
		TickInterval:    c.Animation.TickInterval.Duration,
		ElementsPerTick: c.Animation.ElementsPerTick,
		ResetInterval:   c.Animation.ResetInterval.Duration,
		FillInterval:    c.Animation.FillInterval.Duration,
	}
}

// RenderOptions returns the render options of the [render] table.
func (c *Config) RenderOptions() pipeline.Options {
	return pipeline.Options{
		Format: c.Render.Format,
		Style:  c.Render.Style,
		Width:  c.Render.Width,
	}
}

// RedisEnabled reports whether snapshots are mirrored to Redis.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

// Validate checks every table.
func (c *Config) Validate() error {
	if err := c.AnimationConfig().Validate(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return apperr.New(apperr.ErrCodeInvalidConfig, "server addr must not be empty")
	}
	if c.Redis.TTL.Duration < 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "redis ttl must not be negative, got %s", c.Redis.TTL)
	}
	if c.Redis.DB < 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "redis db must not be negative, got %d", c.Redis.DB)
	}
	if err := pipeline.ValidateFormat(c.Render.Format); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "render format")
	}
	if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "render style")
	}
	if c.Render.Width <= 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "render width must be positive, got %d", c.Render.Width)
	}
	return nil
}
