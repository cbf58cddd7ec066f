package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vango-dev/dotrender/internal/errors"
)

const (
	// TOMLFileName is the preferred configuration file name.
	TOMLFileName = "dotrender.toml"

	// JSONFileName is the alternative configuration file name.
	JSONFileName = "dotrender.json"

	// DefaultInspectorPort is the default inspector server port.
	DefaultInspectorPort = 7070

	// DefaultInspectorHost is the default inspector server host.
	DefaultInspectorHost = "localhost"

	// DefaultSnapshotDir is the default directory of the file sink.
	DefaultSnapshotDir = "snapshots"

	// DefaultBenchIterations is the default number of measured updates.
	DefaultBenchIterations = 10000
)

// Config represents the complete dotrender configuration.
type Config struct {
	// Log contains logging configuration.
	Log LogConfig `json:"log" toml:"log"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `json:"metrics" toml:"metrics"`

	// Inspector contains inspector server configuration.
	Inspector InspectorConfig `json:"inspector" toml:"inspector"`

	// Snapshot contains snapshot sink configuration.
	Snapshot SnapshotConfig `json:"snapshot" toml:"snapshot"`

	// Bench contains benchmark configuration.
	Bench BenchConfig `json:"bench" toml:"bench"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" toml:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty" toml:"format,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled registers renderer metrics.
	Enabled bool `json:"enabled" toml:"enabled"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty" toml:"namespace,omitempty"`

	// Subsystem is the metrics subsystem.
	Subsystem string `json:"subsystem,omitempty" toml:"subsystem,omitempty"`
}

// InspectorConfig contains inspector server settings.
type InspectorConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" toml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" toml:"port,omitempty"`
}

// SnapshotConfig contains snapshot sink settings.
type SnapshotConfig struct {
	// Sink is "file" or "s3".
	Sink string `json:"sink,omitempty" toml:"sink,omitempty"`

	// Dir is the output directory of the file sink.
	Dir string `json:"dir,omitempty" toml:"dir,omitempty"`

	// Name is the snapshot name, without extension.
	Name string `json:"name,omitempty" toml:"name,omitempty"`

	// S3 configures the s3 sink. Credentials come from the environment.
	S3 S3Config `json:"s3" toml:"s3"`
}

// S3Config contains S3 sink settings.
type S3Config struct {
	Bucket    string `json:"bucket,omitempty" toml:"bucket,omitempty"`
	Prefix    string `json:"prefix,omitempty" toml:"prefix,omitempty"`
	Region    string `json:"region,omitempty" toml:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty" toml:"endpoint,omitempty"`
	PathStyle bool   `json:"pathStyle,omitempty" toml:"pathStyle,omitempty"`
}

// BenchConfig contains benchmark settings.
type BenchConfig struct {
	// Iterations is the number of measured store updates.
	Iterations int `json:"iterations,omitempty" toml:"iterations,omitempty"`

	// Rows is the number of bound rows in the benchmark tree.
	Rows int `json:"rows,omitempty" toml:"rows,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from dir. It prefers dotrender.toml over
// dotrender.json; with neither present it returns the defaults.
func Load(dir string) (*Config, error) {
	for _, name := range []string{TOMLFileName, JSONFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return New(), nil
}

// LoadFile reads configuration from path. The format follows the file
// extension: .toml or .json.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("C001").WithDetail(path).Wrap(err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, errors.New("C002").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid TOML")
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("C002").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid JSON")
		}
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// SaveTo writes the configuration to path in the format its extension
// names.
func (c *Config) SaveTo(path string) error {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return errors.New("C002").Wrap(err)
		}
		data = buf.Bytes()
	default:
		var err error
		data, err = json.MarshalIndent(c, "", "  ")
		if err != nil {
			return errors.New("C002").Wrap(err)
		}
		data = append(data, '\n')
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C001").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file, or "" for
// defaults.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "dotrender"
	}
	if c.Metrics.Subsystem == "" {
		c.Metrics.Subsystem = "render"
	}

	if c.Inspector.Host == "" {
		c.Inspector.Host = DefaultInspectorHost
	}
	if c.Inspector.Port == 0 {
		c.Inspector.Port = DefaultInspectorPort
	}

	if c.Snapshot.Sink == "" {
		c.Snapshot.Sink = "file"
	}
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = DefaultSnapshotDir
	}
	if c.Snapshot.Name == "" {
		c.Snapshot.Name = "index"
	}
	if c.Snapshot.S3.Region == "" {
		c.Snapshot.S3.Region = "us-east-1"
	}

	if c.Bench.Iterations == 0 {
		c.Bench.Iterations = DefaultBenchIterations
	}
	if c.Bench.Rows == 0 {
		c.Bench.Rows = 100
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return errors.New("C003").
			WithDetail("log.level must be debug, info, warn or error").
			Wrap(err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("C003").WithDetailf("log.format %q is not text or json", c.Log.Format)
	}
	if c.Inspector.Port < 0 || c.Inspector.Port > 65535 {
		return errors.New("C003").
			WithDetail("inspector.port must be between 0 and 65535")
	}
	switch c.Snapshot.Sink {
	case "file":
	case "s3":
		if c.Snapshot.S3.Bucket == "" {
			return errors.New("C003").
				WithDetail("snapshot.s3.bucket is required for the s3 sink")
		}
	default:
		return errors.New("C003").WithDetailf("snapshot.sink %q is not file or s3", c.Snapshot.Sink)
	}
	if strings.ContainsAny(c.Snapshot.Name, `/\`) {
		return errors.New("C003").WithDetail("snapshot.name must not contain path separators")
	}
	if c.Bench.Iterations < 0 || c.Bench.Rows < 0 {
		return errors.New("C003").WithDetail("bench values must not be negative")
	}
	return nil
}

// Level parses the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}

// InspectorAddress returns the listen address of the inspector.
func (c *Config) InspectorAddress() string {
	return c.Inspector.Host + ":" + strconv.Itoa(c.Inspector.Port)
}

// SnapshotPath returns the file sink directory, resolved against the
// config file's directory.
func (c *Config) SnapshotPath() string {
	if filepath.IsAbs(c.Snapshot.Dir) {
		return c.Snapshot.Dir
	}
	return filepath.Join(c.Dir(), c.Snapshot.Dir)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{TOMLFileName, JSONFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up from startDir to the first directory holding a
// config file. It returns "" when there is none.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest configuration at or above the
// working directory, or the defaults.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	if root == "" {
		return New(), nil
	}
	return Load(root)
}
