package dirsum

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
)

// Config represents the dirsum configuration
type Config struct {
	configPath string
	ini        *ini.File
	loaded     bool // true if configPath existed when loaded
}

// ChecksumConfig represents digest configuration
type ChecksumConfig struct {
	Algorithm string // Algorithm used by the checksum command
	Buffer    string // Read buffer size, human readable (e.g. "2M")
}

// VerboseConfig represents verbosity configuration
type VerboseConfig struct {
	Level int    // Default verbose level (0=quiet, 1=basic, 2=detailed, 3=trace)
	Debug string // Default debug flags (comma-separated)
}

// AllConfig represents all configuration options
type AllConfig struct {
	Checksum *ChecksumConfig
	Verbose  *VerboseConfig
}

// DefaultConfigPath returns the per-user config file location
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, DefaultConfigDir, DefaultConfigFile), nil
}

// LoadConfig loads configuration from configPath. A missing file yields the
// defaults and is not created.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{
		configPath: configPath,
	}

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		cfg.ini = ini.Empty()
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
	} else {
		iniFile, err := ini.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ini = iniFile
		cfg.loaded = true
	}

	DebugLog(DebugConfig, "config %s loaded=%t", configPath, cfg.loaded)
	return cfg, nil
}

// setDefaults sets default configuration values
func (c *Config) setDefaults() error {
	checksumSection, err := c.ini.NewSection("checksum")
	if err != nil {
		return fmt.Errorf("failed to create checksum section: %w", err)
	}
	if _, err := checksumSection.NewKey("algorithm", DefaultAlgorithm); err != nil {
		return fmt.Errorf("failed to set default algorithm: %w", err)
	}
	if _, err := checksumSection.NewKey("buffer", DefaultHashBuffer); err != nil {
		return fmt.Errorf("failed to set default buffer: %w", err)
	}

	verboseSection, err := c.ini.NewSection("verbose")
	if err != nil {
		return fmt.Errorf("failed to create verbose section: %w", err)
	}
	if _, err := verboseSection.NewKey("level", "0"); err != nil {
		return fmt.Errorf("failed to set default verbose level: %w", err)
	}
	if _, err := verboseSection.NewKey("debug", ""); err != nil {
		return fmt.Errorf("failed to set default debug flags: %w", err)
	}

	return nil
}

// Path returns the config file path
func (c *Config) Path() string {
	return c.configPath
}

// Loaded reports whether the config file existed
func (c *Config) Loaded() bool {
	return c.loaded
}

// GetChecksumConfig returns the checksum configuration
func (c *Config) GetChecksumConfig() *ChecksumConfig {
	checksumConfig := &ChecksumConfig{
		Algorithm: DefaultAlgorithm,
		Buffer:    DefaultHashBuffer,
	}

	if c.ini.HasSection("checksum") {
		section := c.ini.Section("checksum")
		if section.HasKey("algorithm") {
			if algorithm := section.Key("algorithm").String(); algorithm != "" {
				checksumConfig.Algorithm = algorithm
			}
		}
		if section.HasKey("buffer") {
			if buffer := section.Key("buffer").String(); buffer != "" {
				checksumConfig.Buffer = buffer
			}
		}
	}

	return checksumConfig
}

// GetVerboseConfig returns the verbose configuration
func (c *Config) GetVerboseConfig() *VerboseConfig {
	verboseConfig := &VerboseConfig{}

	if c.ini.HasSection("verbose") {
		section := c.ini.Section("verbose")
		if section.HasKey("level") {
			if level, err := section.Key("level").Int(); err == nil {
				verboseConfig.Level = level
			}
		}
		if section.HasKey("debug") {
			verboseConfig.Debug = section.Key("debug").String()
		}
	}

	return verboseConfig
}

// GetAllConfig returns all configuration options
func (c *Config) GetAllConfig() *AllConfig {
	return &AllConfig{
		Checksum: c.GetChecksumConfig(),
		Verbose:  c.GetVerboseConfig(),
	}
}

// HashBufferSize returns the configured buffer size in bytes
func (c *Config) HashBufferSize() (int, error) {
	return ParseHumanSize(c.GetChecksumConfig().Buffer)
}

// ApplyOverrides applies command-line overrides to the configuration
// Accepts strings like "algorithm:sha256", "buffer:64K", "level:2", "debug:walk"
func (c *Config) ApplyOverrides(overrides []string) error {
	for _, override := range overrides {
		parts := strings.SplitN(override, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid override format '%s', expected 'key:value'", override)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "algorithm":
			c.ini.Section("checksum").Key("algorithm").SetValue(value)
		case "buffer":
			c.ini.Section("checksum").Key("buffer").SetValue(value)
		case "level":
			c.ini.Section("verbose").Key("level").SetValue(value)
		case "debug":
			c.ini.Section("verbose").Key("debug").SetValue(value)
		default:
			return fmt.Errorf("unsupported override key '%s' (supported: algorithm, buffer, level, debug)", key)
		}
	}

	return nil
}

// Validate checks every configured value
func (c *Config) Validate() error {
	checksumConfig := c.GetChecksumConfig()
	if err := ValidateHashAlgorithm(checksumConfig.Algorithm); err != nil {
		return fmt.Errorf("checksum.algorithm: %w", err)
	}
	if _, err := ParseHumanSize(checksumConfig.Buffer); err != nil {
		return fmt.Errorf("checksum.buffer: %w", err)
	}

	if c.ini.HasSection("verbose") && c.ini.Section("verbose").HasKey("level") {
		level, err := c.ini.Section("verbose").Key("level").Int()
		if err != nil {
			return fmt.Errorf("verbose.level: %w", err)
		}
		if err := ValidateVerboseLevel(level); err != nil {
			return err
		}
	}

	return nil
}

// Save writes the configuration to disk, creating parent directories
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := c.ini.SaveTo(c.configPath); err != nil {
		return fmt.Errorf("failed to save config %s: %w", c.configPath, err)
	}
	c.loaded = true
	return nil
}

// WriteTo writes the effective configuration in INI form
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	return c.ini.WriteTo(w)
}

// ValidateVerboseLevel validates that a verbose level is valid
func ValidateVerboseLevel(level int) error {
	if level < 0 || level > 3 {
		return fmt.Errorf("invalid verbose level: %d (supported: 0-3)", level)
	}
	return nil
}
