// Package config loads the docgit YAML configuration and turns it into a
// document store and shim options.
package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
	"github.com/GenerousLabs/expo-fs/fs/platform"
	billyplatform "github.com/GenerousLabs/expo-fs/fs/platform/billy"
	"github.com/GenerousLabs/expo-fs/fs/platform/minio"
	"github.com/GenerousLabs/expo-fs/fs/shim"
)

// Store types.
const (
	StoreLocal  = "local"
	StoreMemory = "memory"
	StoreMinIO  = "minio"
)

// Environment variables consulted by Load.
const (
	EnvConfig         = "DOCGIT_CONFIG"
	EnvMinIOEndpoint  = "DOCGIT_MINIO_ENDPOINT"
	EnvMinIOAccessKey = "DOCGIT_MINIO_ACCESS_KEY"
	EnvMinIOSecretKey = "DOCGIT_MINIO_SECRET_KEY"
)

// LocalFile is the config file looked up in the working directory.
const LocalFile = "docgit.yaml"

// Config holds all docgit settings.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Shim   ShimConfig   `yaml:"shim"`
	Log    LogConfig    `yaml:"log"`
	Author AuthorConfig `yaml:"author"`

	// path of the file the config was read from, empty for defaults
	path string
}

// StoreConfig selects the document store.
type StoreConfig struct {
	// Type is "local", "memory" or "minio".
	Type string `yaml:"type"`

	// Root is the local directory used as the document directory.
	Root string `yaml:"root,omitempty"`

	MinIO MinIOConfig `yaml:"minio,omitempty"`
}

// MinIOConfig configures the MinIO store. Credentials are usually supplied
// through the environment.
type MinIOConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Bucket         string `yaml:"bucket"`
	AccessKey      string `yaml:"access_key,omitempty"`
	SecretKey      string `yaml:"secret_key,omitempty"`
	UseSSL         bool   `yaml:"use_ssl"`
	Prefix         string `yaml:"prefix,omitempty"`
	MaxConcurrency int    `yaml:"max_concurrency,omitempty"`
	CreateBucket   bool   `yaml:"create_bucket"`
}

// ShimConfig mirrors the shim options. Nil checks keep the shim defaults.
type ShimConfig struct {
	ParentCheck    *bool         `yaml:"parent_check,omitempty"`
	ExistenceCheck *bool         `yaml:"existence_check,omitempty"`
	FileMode       uint32        `yaml:"file_mode"`
	DirMode        uint32        `yaml:"dir_mode"`
	Timeout        time.Duration `yaml:"timeout,omitempty"`
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AuthorConfig is the identity used for commits.
type AuthorConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// Default returns a configuration for a local store in the working
// directory.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Type: StoreLocal,
			Root: ".",
		},
		Shim: ShimConfig{
			FileMode: shim.DefaultMode,
			DirMode:  shim.DefaultMode,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Author: AuthorConfig{
			Name:  "docgit",
			Email: "docgit@localhost",
		},
	}
}

// Load reads the configuration. The file is explicit when given, otherwise
// $DOCGIT_CONFIG, otherwise ./docgit.yaml if it exists. Without a file the
// defaults are used. Environment overrides are applied last.
func Load(explicit string) (*Config, error) {
	cfg := Default()

	path := explicit
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		if _, err := os.Stat(LocalFile); err == nil {
			path = LocalFile
		}
	}

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, err
		}
		cfg.path = path
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		code := fserrors.CodeIO
		if os.IsNotExist(err) {
			code = fserrors.CodeNotExist
		}
		return fserrors.Wrapf(err, code, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fserrors.Wrapf(err, fserrors.CodeInvalid, "parse config %s", path)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvMinIOEndpoint); v != "" {
		c.Store.MinIO.Endpoint = v
	}
	if v := os.Getenv(EnvMinIOAccessKey); v != "" {
		c.Store.MinIO.AccessKey = v
	}
	if v := os.Getenv(EnvMinIOSecretKey); v != "" {
		c.Store.MinIO.SecretKey = v
	}
}

// Validate reports the first invalid setting with EINVAL.
func (c *Config) Validate() error {
	switch c.Store.Type {
	case StoreLocal:
		if c.Store.Root == "" {
			return fserrors.New(fserrors.CodeInvalid, "store.root is required for local stores")
		}
	case StoreMemory:
	case StoreMinIO:
		m := c.Store.MinIO
		if m.Endpoint == "" || m.Bucket == "" {
			return fserrors.New(fserrors.CodeInvalid, "store.minio.endpoint and store.minio.bucket are required")
		}
		if m.AccessKey == "" || m.SecretKey == "" {
			return fserrors.Newf(fserrors.CodeInvalid, "minio credentials are required (set %s and %s)", EnvMinIOAccessKey, EnvMinIOSecretKey)
		}
	default:
		return fserrors.Newf(fserrors.CodeInvalid, "unknown store type %q", c.Store.Type)
	}

	if c.Shim.Timeout < 0 {
		return fserrors.New(fserrors.CodeInvalid, "shim.timeout must not be negative")
	}
	return nil
}

// Path returns the file the configuration came from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}

// Platform opens the configured store. MinIO buckets are created first when
// create_bucket is set.
func (c *Config) Platform(ctx context.Context, logger *slog.Logger) (platform.Platform, error) {
	switch c.Store.Type {
	case StoreMemory:
		return billyplatform.NewMemory(), nil
	case StoreMinIO:
		m := c.Store.MinIO
		store, err := minio.New(minio.Config{
			Endpoint:             m.Endpoint,
			Bucket:               m.Bucket,
			AccessKey:            m.AccessKey,
			SecretKey:            m.SecretKey,
			UseSSL:               m.UseSSL,
			Prefix:               m.Prefix,
			MaxRenameConcurrency: m.MaxConcurrency,
			Logger:               logger,
		})
		if err != nil {
			return nil, fserrors.Wrap(err, fserrors.CodeInvalid, "open minio store")
		}
		if m.CreateBucket {
			if err := store.EnsureBucket(ctx); err != nil {
				return nil, err
			}
		}
		return store, nil
	default:
		root, err := filepath.Abs(c.Store.Root)
		if err != nil {
			return nil, fserrors.Wrap(err, fserrors.CodeInvalid, "resolve store.root")
		}
		return billyplatform.NewLocal(root), nil
	}
}

// ShimOptions converts the shim section to shim options.
func (c *Config) ShimOptions(logger *slog.Logger) []shim.Option {
	opts := []shim.Option{
		shim.WithLogger(logger),
		shim.WithModes(c.Shim.FileMode, c.Shim.DirMode),
		shim.WithTimeout(c.Shim.Timeout),
	}
	if c.Shim.ParentCheck != nil {
		opts = append(opts, shim.WithParentCheck(*c.Shim.ParentCheck))
	}
	if c.Shim.ExistenceCheck != nil {
		opts = append(opts, shim.WithExistenceCheck(*c.Shim.ExistenceCheck))
	}
	return opts
}
