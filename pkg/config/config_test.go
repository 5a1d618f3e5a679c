package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/mediagrid/pkg/cache"
	errs "github.com/matzehuels/mediagrid/pkg/errors"
	"github.com/matzehuels/mediagrid/pkg/mediagrid"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}

	c, err := cfg.Preset("")
	if err != nil {
		t.Fatalf("Preset(\"\") error = %v", err)
	}
	if c != mediagrid.Default() {
		t.Errorf("default preset = %+v, want %+v", c, mediagrid.Default())
	}

	compact, err := cfg.Preset(PresetCompact)
	if err != nil {
		t.Fatalf("Preset(compact) error = %v", err)
	}
	if compact != mediagrid.NewConstraints(320, 569, 160, 1) {
		t.Errorf("compact preset = %+v", compact)
	}

	if cfg.Cache.Backend != cache.BackendFile || cfg.Cache.TTL != cache.TTLLayout {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
}

func TestRead(t *testing.T) {
	doc := `
default_preset = "chat"

[presets.chat]
max_width  = 640
max_height = 1138
min_height = 360
gap        = 2

[presets.thin]
gap = 0.5

[cache]
backend    = "redis"
ttl        = "72h"
redis_addr = "cache:6379"
redis_db   = 3

[server]
addr = "127.0.0.1:9000"
`
	cfg, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	chat, err := cfg.Preset("")
	if err != nil {
		t.Fatalf("Preset(\"\") error = %v", err)
	}
	if chat != mediagrid.NewConstraints(640, 1138, 360, 2) {
		t.Errorf("chat preset = %+v", chat)
	}

	// Missing fields inherit from the built-in default
	thin, _ := cfg.Preset("thin")
	want := mediagrid.Default()
	want.Gap = 0.5
	if thin != want {
		t.Errorf("thin preset = %+v, want %+v", thin, want)
	}

	// Built-ins survive
	if got := cfg.PresetNames(); strings.Join(got, ",") != "chat,compact,default,thin" {
		t.Errorf("PresetNames() = %v", got)
	}

	if cfg.Cache.Backend != "redis" || cfg.Cache.TTL != 72*time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}

	opts, err := cfg.CacheOptions()
	if err != nil {
		t.Fatalf("CacheOptions() error = %v", err)
	}
	if opts.Redis.Addr != "cache:6379" || opts.Redis.DB != 3 {
		t.Errorf("redis options = %+v", opts.Redis)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errs.Code
	}{
		{"syntax", `default_preset = `, errs.ErrCodeInvalidConfig},
		{"unknown key", `colour = "red"`, errs.ErrCodeInvalidConfig},
		{"bad ttl", "[cache]\nttl = \"soon\"", errs.ErrCodeInvalidConfig},
		{"negative ttl", "[cache]\nttl = \"-1h\"", errs.ErrCodeInvalidConfig},
		{"bad backend", "[cache]\nbackend = \"memcached\"", errs.ErrCodeInvalidConfig},
		{"mongo without uri", "[cache]\nbackend = \"mongo\"", errs.ErrCodeInvalidConfig},
		{"missing default", `default_preset = "nope"`, errs.ErrCodePresetNotFound},
		{"bad preset name", "[presets.Chat]\ngap = 1", errs.ErrCodeInvalidPreset},
		{"bad preset value", "[presets.chat]\nmax_width = -5", errs.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.doc))
			if !errs.Is(err, tt.code) {
				t.Errorf("Read() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestPresetNotFound(t *testing.T) {
	_, err := Default().Preset("missing")
	if !errs.Is(err, errs.ErrCodePresetNotFound) {
		t.Errorf("Preset(missing) error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// No file at the default path: built-in defaults
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.DefaultPreset != PresetDefault {
		t.Errorf("DefaultPreset = %q", cfg.DefaultPreset)
	}

	// File at the default path is picked up
	path, _ := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`default_preset = "compact"`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.DefaultPreset != PresetCompact {
		t.Errorf("DefaultPreset = %q, want compact", cfg.DefaultPreset)
	}

	// Explicit missing file is an error
	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")

	if p, _ := Path(); p != filepath.Join("/xdg/config", "mediagrid", "config.toml") {
		t.Errorf("Path() = %q", p)
	}
	if d, _ := CacheDir(); d != filepath.Join("/xdg/cache", "mediagrid") {
		t.Errorf("CacheDir() = %q", d)
	}
}

func TestCacheOptionsFileDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")

	opts, err := Default().CacheOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Backend != cache.BackendFile || opts.Dir != filepath.Join("/xdg/cache", "mediagrid") {
		t.Errorf("CacheOptions() = %+v", opts)
	}
	if opts.Redis.Addr != DefaultRedisAddr {
		t.Errorf("redis addr default = %q", opts.Redis.Addr)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Presets["chat"] = mediagrid.NewConstraints(640, 1138, 360, 2)
	cfg.Cache.TTL = time.Hour

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(buf.String(), `ttl = "1h0m0s"`) {
		t.Errorf("encoded ttl missing:\n%s", buf.String())
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read(encoded) error = %v\n%s", err, buf.String())
	}
	if got.Presets["chat"] != cfg.Presets["chat"] || got.Cache.TTL != cfg.Cache.TTL {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestKeyer(t *testing.T) {
	opts := cache.LayoutKeyOpts{MaxWidth: 1000, MaxHeight: 1777, MinHeight: 563, Gap: 1.5}
	plain := cache.NewDefaultKeyer().LayoutKey("abc", opts)

	if got := Default().Keyer().LayoutKey("abc", opts); got != plain {
		t.Errorf("default keyer key = %q, want %q", got, plain)
	}

	cfg, err := Read(strings.NewReader("[cache]\nnamespace = \"staging:\"\n"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got := cfg.Keyer().LayoutKey("abc", opts); got != "staging:"+plain {
		t.Errorf("namespaced key = %q, want %q", got, "staging:"+plain)
	}
}
