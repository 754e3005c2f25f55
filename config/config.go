// Package config holds Skillet's runtime configuration: a flat struct
// built from defaults, a functional-options builder, and an optional
// skillet.yaml file, grounded on the teacher's PoolConfig shape
// (pkg/fpm/pool/config.go).
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is Skillet's flat runtime configuration.
type Config struct {
	PluginDir string

	CacheCapacity int
	CacheEnabled  bool

	WorkerPoolSize int
	WorkerQueueCap int

	ServerAddr      string
	HTTPAddr        string
	RequestTimeout  time.Duration
	AdminAuthToken  string
}

// Default returns Skillet's out-of-the-box configuration.
func Default() *Config {
	return &Config{
		PluginDir:      "./plugins",
		CacheCapacity:  1024,
		CacheEnabled:   true,
		WorkerPoolSize: 8,
		WorkerQueueCap: 128,
		ServerAddr:     ":9119",
		HTTPAddr:       ":9180",
		RequestTimeout: 10 * time.Second,
	}
}

// Option mutates a Config during construction.
type Option func(*Config)

func WithPluginDir(dir string) Option           { return func(c *Config) { c.PluginDir = dir } }
func WithCacheCapacity(n int) Option            { return func(c *Config) { c.CacheCapacity = n } }
func WithCacheEnabled(enabled bool) Option       { return func(c *Config) { c.CacheEnabled = enabled } }
func WithWorkerPoolSize(n int) Option           { return func(c *Config) { c.WorkerPoolSize = n } }
func WithWorkerQueueCap(n int) Option           { return func(c *Config) { c.WorkerQueueCap = n } }
func WithServerAddr(addr string) Option         { return func(c *Config) { c.ServerAddr = addr } }
func WithHTTPAddr(addr string) Option           { return func(c *Config) { c.HTTPAddr = addr } }
func WithRequestTimeout(d time.Duration) Option { return func(c *Config) { c.RequestTimeout = d } }
func WithAdminAuthToken(tok string) Option      { return func(c *Config) { c.AdminAuthToken = tok } }

// New builds a Config from Default(), a config file (if path is
// non-empty and the file exists), the SKILLET_PLUGIN_DIR environment
// override, and finally any explicit opts — in that precedence order,
// each layer overriding the one before it.
func New(yamlPath string, opts ...Option) (*Config, error) {
	c := Default()
	if yamlPath != "" {
		if err := loadYAML(yamlPath, c); err != nil {
			return nil, err
		}
	}
	if dir := os.Getenv("SKILLET_PLUGIN_DIR"); dir != "" {
		c.PluginDir = dir
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// fileOverlay mirrors the subset of Config a skillet.yaml may set;
// zero-valued fields are left untouched so a partial file only
// overrides what it mentions.
type fileOverlay struct {
	PluginDir       string `yaml:"plugin_dir"`
	CacheCapacity   int    `yaml:"cache_capacity"`
	CacheEnabled    *bool  `yaml:"cache_enabled"`
	WorkerPoolSize  int    `yaml:"worker_pool_size"`
	WorkerQueueCap  int    `yaml:"worker_queue_cap"`
	ServerAddr      string `yaml:"server_addr"`
	HTTPAddr        string `yaml:"http_addr"`
	RequestTimeoutMs int   `yaml:"request_timeout_ms"`
	AdminAuthToken  string `yaml:"admin_auth_token"`
}

func loadYAML(path string, c *Config) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	var overlay fileOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return err
	}
	if overlay.PluginDir != "" {
		c.PluginDir = overlay.PluginDir
	}
	if overlay.CacheCapacity != 0 {
		c.CacheCapacity = overlay.CacheCapacity
	}
	if overlay.CacheEnabled != nil {
		c.CacheEnabled = *overlay.CacheEnabled
	}
	if overlay.WorkerPoolSize != 0 {
		c.WorkerPoolSize = overlay.WorkerPoolSize
	}
	if overlay.WorkerQueueCap != 0 {
		c.WorkerQueueCap = overlay.WorkerQueueCap
	}
	if overlay.ServerAddr != "" {
		c.ServerAddr = overlay.ServerAddr
	}
	if overlay.HTTPAddr != "" {
		c.HTTPAddr = overlay.HTTPAddr
	}
	if overlay.RequestTimeoutMs != 0 {
		c.RequestTimeout = time.Duration(overlay.RequestTimeoutMs) * time.Millisecond
	}
	if overlay.AdminAuthToken != "" {
		c.AdminAuthToken = overlay.AdminAuthToken
	}
	return nil
}
