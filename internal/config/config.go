// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// environment variable pointing at an optional YAML config file
const CONFIG_ENV = "BOOTLOAD_CONFIG"

const DEFAULT_LOG_FILE = "bootload.logs"

var (
	ErrInvalidBaudRate    = errors.New("baud_rate must not be negative")
	ErrInvalidReadTimeout = errors.New("read_timeout_ms must not be negative")
)

type Config struct {
	// 0 keeps the serial library defaults
	BaudRate int `yaml:"baud_rate"`

	// 0 blocks forever waiting for a response byte
	ReadTimeoutMs int `yaml:"read_timeout_ms"`

	// empty disables the log file
	LogFile string `yaml:"log_file"`

	// when false the process exits 0 after any transfer attempt
	ExitOnFailure bool `yaml:"exit_on_failure"`

	// bootloader commands sent before the first line of the file
	ResetEraseMap bool `yaml:"reset_erase_map"`
	EraseAll      bool `yaml:"erase_all"`
}

func Default() *Config {
	return &Config{
		LogFile: DEFAULT_LOG_FILE,
	}
}

// Load reads the YAML file at path on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	// an empty file keeps the defaults
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	return cfg, nil
}

// FromEnv loads the file named by CONFIG_ENV, if any.
func FromEnv() (*Config, error) {
	return Load(os.Getenv(CONFIG_ENV))
}

func Validate(cfg *Config) error {
	if cfg.BaudRate < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBaudRate, cfg.BaudRate)
	}
	if cfg.ReadTimeoutMs < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidReadTimeout, cfg.ReadTimeoutMs)
	}
	return nil
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMs) * time.Millisecond
}
