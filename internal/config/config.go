package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"dbc/internal/domain"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Input settings
	DataDir     string   `yaml:"data_dir"`
	SubjectsDir string   `yaml:"subjects_dir"`
	Subjects    []string `yaml:"subjects"`

	// Output settings
	OutDir      string `yaml:"out_dir"`
	SummaryDir  string `yaml:"summary_dir"`
	SummaryFile string `yaml:"summary_file"`

	// Join settings
	Cardinality string `yaml:"cardinality"`
	CacheSize   int    `yaml:"cache_size"`

	// MySQL export settings
	MySQLDSN         string `yaml:"mysql_dsn"`
	MySQLTablePrefix string `yaml:"mysql_table_prefix"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Flags holds command-line flags
type Flags struct {
	ConfigPath  string
	Verbose     bool
	Subjects    []string
	NameFilter  string
	Cardinality string
	OutDir      string
	DataDir     string
	SubjectsDir string
	ExportMySQL bool
	Discover    bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		DataDir:          DefaultDataDir,
		SubjectsDir:      DefaultSubjectsDir,
		OutDir:           DefaultOutDir,
		SummaryDir:       DefaultSummaryDir,
		SummaryFile:      DefaultSummaryFile,
		Cardinality:      DefaultCardinality,
		CacheSize:        DefaultCacheSize,
		MySQLTablePrefix: DefaultMySQLTablePrefix,
	}
	// Copy default subjects
	cfg.Subjects = make([]string, len(DefaultSubjects))
	copy(cfg.Subjects, DefaultSubjects)
	return cfg
}

// Load builds a config from defaults, a .env file, an optional YAML file and
// DBC_* environment variables, in that order. An empty path falls back to
// DefaultConfigFile when it exists.
func Load(path string) (*Config, error) {
	// .env is optional; variables already in the environment win
	_ = godotenv.Load()

	cfg := New()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	overrides := map[string]*string{
		"DBC_DATA_DIR":     &c.DataDir,
		"DBC_SUBJECTS_DIR": &c.SubjectsDir,
		"DBC_OUT_DIR":      &c.OutDir,
		"DBC_CARDINALITY":  &c.Cardinality,
		"DBC_MYSQL_DSN":    &c.MySQLDSN,
	}
	for key, target := range overrides {
		if v := os.Getenv(key); v != "" {
			*target = v
		}
	}

	if v := os.Getenv("DBC_CACHE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DBC_CACHE_SIZE: %w", err)
		}
		c.CacheSize = size
	}
	return nil
}

// ApplyFlags copies command-line overrides onto the config
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags

	if len(flags.Subjects) > 0 {
		c.Subjects = append([]string(nil), flags.Subjects...)
	}
	if flags.Cardinality != "" {
		c.Cardinality = flags.Cardinality
	}
	if flags.OutDir != "" {
		c.OutDir = flags.OutDir
	}
	if flags.DataDir != "" {
		c.DataDir = flags.DataDir
	}
	if flags.SubjectsDir != "" {
		c.SubjectsDir = flags.SubjectsDir
	}
}

// Validate checks that the config can drive a build
func (c *Config) Validate() error {
	if len(c.Subjects) == 0 {
		return errors.New("no subjects configured")
	}
	if _, err := domain.ParseCardinality(c.Cardinality); err != nil {
		return err
	}
	return nil
}

// GetRoutesPath returns the routes table of a subject
func (c *Config) GetRoutesPath(subject string) string {
	return filepath.Join(c.DataDir, subject+"_routes.csv")
}

// GetDataPath returns the method data table of a subject
func (c *Config) GetDataPath(subject string) string {
	return filepath.Join(c.DataDir, subject+"_data.csv")
}

// GetClassesDir returns the class corpus root of a subject
func (c *Config) GetClassesDir(subject string) string {
	return filepath.Join(c.SubjectsDir, subject, "classes")
}

// GetOutputPath returns the dataset file of a subject
func (c *Config) GetOutputPath(subject string) string {
	return filepath.Join(c.OutDir, subject+".csv")
}

// GetSummaryPath returns the full path to the build summary file.
// Resolves to an absolute path so build and stats read the same file regardless of cwd.
func (c *Config) GetSummaryPath() string {
	p := filepath.Join(c.SummaryDir, c.SummaryFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetTableName returns the MySQL table an exported subject is written to
func (c *Config) GetTableName(subject string) string {
	return c.MySQLTablePrefix + subject
}
