package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrNotFound is returned by Load when the configuration file does not exist
var ErrNotFound = errors.New("config file not found")

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	// Expand path
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	// Read file
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (run 'campusfind config init' to create)", ErrNotFound, expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes TOML over the defaults, expands paths and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Marshal encodes the configuration as TOML
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Database.Path, err = expandPath(c.Database.Path)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	// Matching validation
	profiles := []struct {
		name    string
		profile ProfileConfig
	}{
		{"report", c.Matching.Report},
		{"search", c.Matching.Search},
		{"similar", c.Matching.Similar},
	}
	for _, p := range profiles {
		if p.profile.MinScore < 0 || p.profile.MinScore > 100 {
			errs = append(errs, fmt.Errorf("matching.%s.min_score must be between 0 and 100", p.name))
		}
		if p.profile.TopK < 1 {
			errs = append(errs, fmt.Errorf("matching.%s.top_k must be at least 1", p.name))
		}
	}

	// Engine validation
	if c.Engine.Workers < 1 {
		errs = append(errs, errors.New("engine.workers must be at least 1"))
	}
	if c.Engine.ParallelThreshold < 1 {
		errs = append(errs, errors.New("engine.parallel_threshold must be at least 1"))
	}

	// Log validation
	validEnvs := map[string]bool{"prod": true, "local": true, "dev": true}
	if !validEnvs[c.Log.Env] {
		errs = append(errs, fmt.Errorf("log.env must be 'prod', 'local' or 'dev', got '%s'", c.Log.Env))
	}

	// Server validation
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// EnsureDirectories creates necessary directories for the database
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
