package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Cache       CacheConfig       `toml:"cache"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	LastFM LastFMConfig `toml:"lastfm"`
}

// LastFMConfig contains Last.fm API credentials.
//
// Both values are optional: without them metadata enrichment degrades to
// "unavailable" instead of failing.
type LastFMConfig struct {
	APIKey    string `toml:"api_key"`
	APISecret string `toml:"api_secret"`
}

// Configured reports whether an API key is present.
func (c LastFMConfig) Configured() bool {
	return c.APIKey != ""
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// CacheConfig contains album art cache settings.
type CacheConfig struct {
	Dir string `toml:"dir"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overlays Last.fm credentials from the environment, loading a .env
// file first when one is present. Environment values win over the TOML file.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if key := os.Getenv("API_KEY"); key != "" {
		c.Credentials.LastFM.APIKey = key
	}
	if secret := os.Getenv("API_SECRET"); secret != "" {
		c.Credentials.LastFM.APISecret = secret
	}
}

// DataDir returns the per-user data directory (~/.fretlog), creating it if needed.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".fretlog")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// ResolveDatabasePath returns the configured database path, falling back to
// <DataDir>/songs.db when unset.
func (c *Config) ResolveDatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "songs.db"), nil
}

// ResolveCacheDir returns the configured album art cache directory, falling
// back to <DataDir>/album_art_cache when unset. The directory is created.
func (c *Config) ResolveCacheDir() (string, error) {
	dir := c.Cache.Dir
	if dir == "" {
		dataDir, err := DataDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(dataDir, "album_art_cache")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	return dir, nil
}
