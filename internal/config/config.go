package config

import (
	"runtime"
	"time"

	"github.com/vijay-prabhu/campusfind/internal/match"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Matching MatchingConfig `toml:"matching"`
	Engine   EngineConfig   `toml:"engine"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	MCP      MCPConfig      `toml:"mcp"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// MatchingConfig holds the threshold and result count for each call site
type MatchingConfig struct {
	Report  ProfileConfig `toml:"report"`  // After a report is submitted
	Search  ProfileConfig `toml:"search"`  // Free-text preview against found items
	Similar ProfileConfig `toml:"similar"` // Matches for an already stored item
}

// ProfileConfig is one set of ranking options
type ProfileConfig struct {
	MinScore int `toml:"min_score"`
	TopK     int `toml:"top_k"`
}

// Options converts the profile to engine options
func (p ProfileConfig) Options() match.Options {
	return match.Options{MinScore: p.MinScore, TopK: p.TopK}
}

// EngineConfig tunes candidate fan-out
type EngineConfig struct {
	Workers           int `toml:"workers"`
	ParallelThreshold int `toml:"parallel_threshold"`
}

// CatalogConfig lists the location and category tags offered to reporters
type CatalogConfig struct {
	Locations  []string `toml:"locations"`
	Categories []string `toml:"categories"`
}

// HasLocation reports whether loc is a known location tag
func (c CatalogConfig) HasLocation(loc string) bool {
	return contains(c.Locations, loc)
}

// HasCategory reports whether cat is a known category tag
func (c CatalogConfig) HasCategory(cat string) bool {
	return contains(c.Categories, cat)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// LogConfig contains logging settings
type LogConfig struct {
	Env   string `toml:"env"`   // prod, local or dev
	Level string `toml:"level"` // Optional override: debug, info, warn, error
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Addr            string `toml:"addr"`
	ReadTimeoutSec  int    `toml:"read_timeout_sec"`
	WriteTimeoutSec int    `toml:"write_timeout_sec"`
	ShutdownSec     int    `toml:"shutdown_sec"`
}

// ReadTimeout returns the read timeout as a duration
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSec) * time.Second
}

// WriteTimeout returns the write timeout as a duration
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSec) * time.Second
}

// ShutdownTimeout returns the graceful shutdown window as a duration
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownSec) * time.Second
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/campusfind/campusfind.db",
		},
		Matching: MatchingConfig{
			Report:  ProfileConfig{MinScore: 30, TopK: 6},
			Search:  ProfileConfig{MinScore: 20, TopK: 6},
			Similar: ProfileConfig{MinScore: 30, TopK: 3},
		},
		Engine: EngineConfig{
			Workers:           max(1, runtime.NumCPU()/2),
			ParallelThreshold: match.DefaultParallelThreshold,
		},
		Catalog: CatalogConfig{
			Locations: []string{
				"Library",
				"Hostel",
				"Cafeteria",
				"Sports Complex",
				"Main Building",
				"Science Block",
			},
			Categories: []string{
				"Electronics",
				"Bags",
				"Accessories",
				"Documents",
				"Stationery",
				"Clothing",
				"Other",
			},
		},
		Log: LogConfig{
			Env: "local",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeoutSec:  10,
			WriteTimeoutSec: 10,
			ShutdownSec:     10,
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
