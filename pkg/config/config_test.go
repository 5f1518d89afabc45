package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/autotype/pkg/animation"
	apperr "github.com/matzehuels/autotype/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := cfg.AnimationConfig(); got != animation.DefaultConfig() {
		t.Errorf("AnimationConfig() = %+v", got)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.RedisEnabled() {
		t.Error("redis should be disabled by default")
	}
	opts := cfg.RenderOptions()
	if opts.Format != "terminal" || opts.Style != "auto" || opts.Width != 80 {
		t.Errorf("RenderOptions() = %+v", opts)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[animation]
tick_interval = "20ms"
elements_per_tick = 3
fill_interval = "0s"

[server]
addr = "127.0.0.1:9000"

[redis]
addr = "localhost:6379"
ttl = "1m"

[render]
format = "markdown"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	anim := cfg.AnimationConfig()
	if anim.TickInterval != 20*time.Millisecond || anim.ElementsPerTick != 3 {
		t.Errorf("animation = %+v", anim)
	}
	if anim.ResetInterval != animation.DefaultResetInterval {
		t.Errorf("unset reset_interval should keep its default, got %s", anim.ResetInterval)
	}
	if anim.FillInterval != 0 {
		t.Errorf("FillInterval = %s, want 0", anim.FillInterval)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if !cfg.RedisEnabled() || cfg.Redis.TTL.Duration != time.Minute {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Redis.Key == "" || cfg.Redis.Channel == "" {
		t.Error("redis key and channel should keep their defaults")
	}
	if cfg.Render.Format != "markdown" || cfg.Render.Width != 80 {
		t.Errorf("Render = %+v", cfg.Render)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    apperr.Code
	}{
		{"unknown key", "[animation]\ntick = \"1s\"\n", apperr.ErrCodeInvalidConfig},
		{"unknown table", "[database]\nurl = \"x\"\n", apperr.ErrCodeInvalidConfig},
		{"bad duration", "[animation]\ntick_interval = \"fast\"\n", apperr.ErrCodeInvalidConfig},
		{"syntax", "[animation\n", apperr.ErrCodeInvalidConfig},
		{"zero tick", "[animation]\ntick_interval = \"0s\"\n", apperr.ErrCodeInvalidConfig},
		{"negative fill", "[animation]\nfill_interval = \"-1s\"\n", apperr.ErrCodeInvalidConfig},
		{"empty addr", "[server]\naddr = \"\"\n", apperr.ErrCodeInvalidConfig},
		{"bad format", "[render]\nformat = \"pdf\"\n", apperr.ErrCodeInvalidConfig},
		{"bad style", "[render]\nstyle = \"neon\"\n", apperr.ErrCodeInvalidConfig},
		{"bad width", "[render]\nwidth = 0\n", apperr.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !apperr.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !apperr.Is(err, apperr.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if got, want := DefaultPath(), filepath.Join(dir, "autotype", FileName); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault without a file: %v", err)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}

	if err := os.MkdirAll(filepath.Join(dir, "autotype"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(DefaultPath(), []byte("[server]\naddr = \":7000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}
