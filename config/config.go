package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents assembler configuration: where output goes by default
// and which memory regions exist when the command line gives none.
type Config struct {
	// Output settings
	Output struct {
		DefaultDir string `toml:"default_dir"`
	} `toml:"output"`

	// Regions pre-declares named memory regions, overridden wholesale (not
	// merged) by any --region flags on the command line.
	Regions []RegionEntry `toml:"regions"`
}

// RegionEntry is one [[regions]] table: a named, inclusive
// address range written with hex strings so config files read the way an
// assembly programmer already thinks about addresses.
type RegionEntry struct {
	Name  string `toml:"name"`
	Start string `toml:"start"` // e.g. "0x0000"
	End   string `toml:"end"`   // e.g. "0x7FFF", inclusive
}

// DefaultConfig returns a configuration with default values: current
// directory output, no pre-declared regions (the assembler falls back to
// one implicit region spanning the full address space).
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Output.DefaultDir = "."
	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\sap2-asm\config.toml
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "sap2-asm")

	case "darwin", "linux":
		// macOS/Linux: ~/.config/sap2-asm/config.toml
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "sap2-asm")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file. A missing config
// file is not an error: configuration is entirely optional, and Load
// returns the zero-region default in that case.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// ParseRegions converts the config file's hex-string region entries into
// ParsedRegion values, which the CLI turns into region.RegionConfig. Kept here rather than in package region so
// that region has no dependency on the config file's string encoding.
func (c *Config) ParseRegions() ([]ParsedRegion, error) {
	parsed := make([]ParsedRegion, 0, len(c.Regions))
	for _, r := range c.Regions {
		start, err := parseHex16(r.Start)
		if err != nil {
			return nil, fmt.Errorf("region %q: invalid start %q: %w", r.Name, r.Start, err)
		}
		end, err := parseHex16(r.End)
		if err != nil {
			return nil, fmt.Errorf("region %q: invalid end %q: %w", r.Name, r.End, err)
		}
		parsed = append(parsed, ParsedRegion{Name: r.Name, Start: start, End: end})
	}
	return parsed, nil
}

// ParsedRegion is a RegionEntry with its bounds resolved to uint16.
type ParsedRegion struct {
	Name  string
	Start uint16
	End   uint16
}

func parseHex16(s string) (uint16, error) {
	s = trimHexPrefix(s)
	var v uint64
	if _, err := fmt.Sscanf(s, "%x", &v); err != nil {
		return 0, err
	}
	if v > 0xFFFF {
		return 0, fmt.Errorf("0x%X exceeds 16-bit range", v)
	}
	return uint16(v), nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
