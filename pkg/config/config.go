// Package config loads mediagrid settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/mediagrid/config.toml (falling back to
// ~/.config/mediagrid/config.toml) and every section is optional:
//
//	default_preset = "chat"
//
//	[presets.chat]
//	max_width  = 640
//	max_height = 1138
//	min_height = 360
//	gap        = 2
//
//	[cache]
//	backend = "redis"       # file | none | redis | mongo
//	ttl     = "72h"
//	namespace  = "staging:"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
// Presets named in the file are added to the built-in "default" and
// "compact" presets, replacing them on a name clash. Fields left out of a
// preset take the values of the built-in default preset.
package config

import (
	"bytes"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mediagrid/pkg/cache"
	errs "github.com/matzehuels/mediagrid/pkg/errors"
	"github.com/matzehuels/mediagrid/pkg/mediagrid"
)

// appName names the config and cache directories.
const appName = "mediagrid"

// Built-in preset names.
const (
	PresetDefault = "default"
	PresetCompact = "compact"
)

// Defaults for the server and remote cache sections.
const (
	DefaultAddr      = ":8080"
	DefaultRedisAddr = "localhost:6379"
)

// Config is the complete file configuration.
type Config struct {
	DefaultPreset string                           `toml:"default_preset"`
	Presets       map[string]mediagrid.Constraints `toml:"presets"`
	Cache         CacheConfig                      `toml:"cache"`
	Server        ServerConfig                     `toml:"server"`
}

// CacheConfig selects and configures the layout cache.
type CacheConfig struct {
	Backend string        `toml:"backend"`
	TTL     time.Duration `toml:"ttl"`

	// Namespace prefixes every cache key, so deployments sharing a Redis or
	// MongoDB instance keep separate entries.
	Namespace string `toml:"namespace,omitempty"`

	// Dir overrides the XDG cache directory for the file backend.
	Dir string `toml:"dir,omitempty"`

	RedisAddr     string `toml:"redis_addr,omitempty"`
	RedisPassword string `toml:"redis_password,omitempty"`
	RedisDB       int    `toml:"redis_db,omitempty"`

	MongoURI        string `toml:"mongo_uri,omitempty"`
	MongoDatabase   string `toml:"mongo_database,omitempty"`
	MongoCollection string `toml:"mongo_collection,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// BuiltinPresets returns the presets available without a config file.
func BuiltinPresets() map[string]mediagrid.Constraints {
	return map[string]mediagrid.Constraints{
		PresetDefault: mediagrid.Default(),
		PresetCompact: mediagrid.NewConstraints(320, 569, 160, 1),
	}
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DefaultPreset: PresetDefault,
		Presets:       BuiltinPresets(),
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			TTL:     cache.TTLLayout,
		},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the default file cache directory (~/.cache/mediagrid/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the config file at path, or at [Path] when path is empty.
// A missing file at the default location yields [Default]; a missing file
// that was named explicitly is an error with code FILE_NOT_FOUND.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		if explicit {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return Default(), nil
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Read decodes a TOML document on top of [Default] and validates it.
func Read(r io.Reader) (*Config, error) {
	var file Config
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}

	cfg := Default()
	cfg.merge(&file, md)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge overlays the keys present in file onto c.
func (c *Config) merge(file *Config, md toml.MetaData) {
	if file.DefaultPreset != "" {
		c.DefaultPreset = file.DefaultPreset
	}

	base := mediagrid.Default()
	for name, p := range file.Presets {
		if !md.IsDefined("presets", name, "max_width") {
			p.MaxWidth = base.MaxWidth
		}
		if !md.IsDefined("presets", name, "max_height") {
			p.MaxHeight = base.MaxHeight
		}
		if !md.IsDefined("presets", name, "min_height") {
			p.MinHeight = base.MinHeight
		}
		if !md.IsDefined("presets", name, "gap") {
			p.Gap = base.Gap
		}
		c.Presets[name] = p
	}

	fc := file.Cache
	if fc.Backend != "" {
		c.Cache.Backend = fc.Backend
	}
	if md.IsDefined("cache", "ttl") {
		c.Cache.TTL = fc.TTL
	}
	c.Cache.Namespace = fc.Namespace
	c.Cache.Dir = fc.Dir
	c.Cache.RedisAddr = fc.RedisAddr
	c.Cache.RedisPassword = fc.RedisPassword
	c.Cache.RedisDB = fc.RedisDB
	c.Cache.MongoURI = fc.MongoURI
	c.Cache.MongoDatabase = fc.MongoDatabase
	c.Cache.MongoCollection = fc.MongoCollection

	if file.Server.Addr != "" {
		c.Server.Addr = file.Server.Addr
	}
}

// Validate checks preset names and values, the default preset and the
// cache section.
func (c *Config) Validate() error {
	for _, name := range c.PresetNames() {
		if err := errs.ValidatePresetName(name); err != nil {
			return err
		}
		if err := c.Presets[name].Validate(); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "preset %q", name)
		}
	}
	if _, ok := c.Presets[c.DefaultPreset]; !ok {
		return errs.New(errs.ErrCodePresetNotFound, "default preset %q is not defined", c.DefaultPreset)
	}

	if err := errs.ValidateCacheBackend(c.Cache.Backend); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if c.Cache.Dir != "" {
		if err := errs.ValidatePath(c.Cache.Dir); err != nil {
			return err
		}
	}
	if c.Cache.Backend == cache.BackendMongo {
		if err := errs.ValidateMongoURI(c.Cache.MongoURI); err != nil {
			return err
		}
	}
	return nil
}

// PresetNames returns the preset names in sorted order.
func (c *Config) PresetNames() []string {
	return slices.Sorted(maps.Keys(c.Presets))
}

// Preset returns the constraints of the named preset. An empty name selects
// the default preset.
func (c *Config) Preset(name string) (mediagrid.Constraints, error) {
	if name == "" {
		name = c.DefaultPreset
	}
	p, ok := c.Presets[name]
	if !ok {
		return mediagrid.Constraints{}, errs.New(errs.ErrCodePresetNotFound, "unknown preset %q (available: %v)", name, c.PresetNames())
	}
	return p, nil
}

// CacheOptions converts the cache section into options for [cache.Open].
// The file backend uses [CacheDir] unless Dir is set.
func (c *Config) CacheOptions() (cache.Options, error) {
	opts := cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisOptions{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
		Mongo: cache.MongoOptions{
			URI:        c.Cache.MongoURI,
			Database:   c.Cache.MongoDatabase,
			Collection: c.Cache.MongoCollection,
		},
	}
	if opts.Redis.Addr == "" {
		opts.Redis.Addr = DefaultRedisAddr
	}
	if opts.Backend == cache.BackendFile && opts.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return opts, err
		}
		opts.Dir = dir
	}
	return opts, nil
}

// Keyer returns the cache keyer for the configured namespace.
func (c *Config) Keyer() cache.Keyer {
	if c.Cache.Namespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.Namespace)
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
