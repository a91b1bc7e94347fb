package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Tier          TierConfig          `toml:"tier"`
	Files         FilesConfig         `toml:"files"`
	Columns       ColumnsConfig       `toml:"columns"`
	Database      DatabaseConfig      `toml:"database"`
	Server        ServerConfig        `toml:"server"`
	Collaborators CollaboratorsConfig `toml:"collaborators"`
	Workout       WorkoutConfig       `toml:"workout"`
}

// TierConfig names the tracked tier and its difficulty markers.
type TierConfig struct {
	Name            string   `toml:"name"`
	Markers         []string `toml:"markers"`
	ChallengeMarker string   `toml:"challenge_marker"`
	ExpertMarker    string   `toml:"expert_marker"`
}

// FilesConfig contains the input and output table paths.
type FilesConfig struct {
	Catalog   string `toml:"catalog"`
	Records   string `toml:"records"`
	Revenge   string `toml:"revenge"`
	Unplayed  string `toml:"unplayed"`
	ReportDir string `toml:"report_dir"`
	Log       string `toml:"log"`
}

// ColumnsConfig maps logical columns to header candidates.
type ColumnsConfig struct {
	Catalog CatalogColumns `toml:"catalog"`
	Records RecordColumns  `toml:"records"`
}

type CatalogColumns struct {
	Title []string `toml:"title"`
}

type RecordColumns struct {
	Title     []string `toml:"title"`
	Challenge []string `toml:"challenge"`
	Expert    []string `toml:"expert"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CollaboratorsConfig contains the external commands that refresh the input tables.
type CollaboratorsConfig struct {
	IntervalMS     int                `toml:"interval_ms"`
	TimeoutSeconds int                `toml:"timeout_seconds"`
	Parallel       int                `toml:"parallel"`
	Catalog        CollaboratorConfig `toml:"catalog"`
	Records        CollaboratorConfig `toml:"records"`
}

func (c CollaboratorsConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

func (c CollaboratorsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CollaboratorConfig describes one external command. An empty Command disables it.
type CollaboratorConfig struct {
	Label   string   `toml:"label"`
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	Dir     string   `toml:"dir"`
	Env     []string `toml:"env"`
}

func (c CollaboratorConfig) Enabled() bool {
	return strings.TrimSpace(c.Command) != ""
}

// WorkoutConfig contains workout summary settings.
type WorkoutConfig struct {
	WindowDays int `toml:"window_days"`
}

// Validate reports the first invalid setting wrapped in [ErrInvalidConfig].
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Tier.Name) == "":
		return fmt.Errorf("%w: tier.name is required", ErrInvalidConfig)
	case c.Files.Catalog == "":
		return fmt.Errorf("%w: files.catalog is required", ErrInvalidConfig)
	case c.Files.Records == "":
		return fmt.Errorf("%w: files.records is required", ErrInvalidConfig)
	case c.Files.Revenge == "" || c.Files.Unplayed == "":
		return fmt.Errorf("%w: files.revenge and files.unplayed are required", ErrInvalidConfig)
	case c.Server.Port < 0 || c.Server.Port > 65535:
		return fmt.Errorf("%w: server.port out of range: %d", ErrInvalidConfig, c.Server.Port)
	case c.Workout.WindowDays < 1:
		return fmt.Errorf("%w: workout.window_days must be at least 1", ErrInvalidConfig)
	case c.Collaborators.IntervalMS < 0 || c.Collaborators.TimeoutSeconds < 0:
		return fmt.Errorf("%w: collaborator interval and timeout must not be negative", ErrInvalidConfig)
	case c.Collaborators.Parallel < 0:
		return fmt.Errorf("%w: collaborators.parallel must not be negative", ErrInvalidConfig)
	}

	for _, m := range c.Tier.Markers {
		if len([]rune(strings.TrimSpace(m))) != 1 {
			return fmt.Errorf("%w: tier.markers must be single characters, got %q", ErrInvalidConfig, m)
		}
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Settings absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
