// Package config loads the service settings.
//
// Values are layered with increasing priority: built-in defaults, an
// optional JSON file (CONFIG env variable or -c flag), environment
// variables, and command-line flags. A .env file in the working directory
// is loaded first when present.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the service settings. Zero durations and sizes from any
// source fall back to the defaults.
type Config struct {
	ConfigFile        string        `env:"CONFIG"`
	RunAddr           string        `env:"SERVER_ADDRESS" validate:"hostname_port"`
	LogLevel          string        `env:"LOG_LEVEL" validate:"loglevel"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" validate:"gte=0"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" validate:"gte=0"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
	MaxBodyBytes      int64         `env:"MAX_BODY_BYTES" validate:"gt=0"`
	CompressionLevel  int           `env:"COMPRESSION_LEVEL" validate:"gte=0,lte=9"`
}

// fileConfig mirrors Config for the JSON file, where durations are strings such as "30s".
type fileConfig struct {
	RunAddr           string `json:"server_address"`
	LogLevel          string `json:"log_level"`
	IdleTimeout       string `json:"idle_timeout"`
	ReadHeaderTimeout string `json:"read_header_timeout"`
	ShutdownTimeout   string `json:"shutdown_timeout"`
	MaxBodyBytes      int64  `json:"max_body_bytes"`
	CompressionLevel  *int   `json:"compression_level"`
}

var defaultConfig = Config{
	RunAddr:           ":3000",
	LogLevel:          "info",
	IdleTimeout:       60 * time.Second,
	ReadHeaderTimeout: 10 * time.Second,
	ShutdownTimeout:   10 * time.Second,
	MaxBodyBytes:      1 << 20,
	CompressionLevel:  5,
}

type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
}

func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	value := fieldLevel.Field().String()

	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	return allowedLogLevels[value]
}

func (c *Config) validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	return validate.Struct(c)
}

// ServerURL is the address announced on startup, e.g. http://localhost:3000.
func (c *Config) ServerURL() string {
	host, port, err := net.SplitHostPort(c.RunAddr)
	if err != nil {
		return "http://" + c.RunAddr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}

	return "http://" + net.JoinHostPort(host, port)
}

func applyDefaults(c *Config, defaults Config) {
	if c.RunAddr == "" {
		c.RunAddr = defaults.RunAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = defaults.IdleTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = defaults.MaxBodyBytes
	}
}

func parseDuration(value string, target *time.Duration) error {
	if value == "" {
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*target = parsed

	return nil
}

func (c *Config) loadFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("in internal/config/config.go/loadFile(): error while `os.ReadFile()` calling: %w", err)
	}

	var fromFile fileConfig
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return fmt.Errorf("in internal/config/config.go/loadFile(): error while `json.Unmarshal()` calling: %w", err)
	}

	if fromFile.RunAddr != "" {
		c.RunAddr = fromFile.RunAddr
	}
	if fromFile.LogLevel != "" {
		c.LogLevel = fromFile.LogLevel
	}
	if err := parseDuration(fromFile.IdleTimeout, &c.IdleTimeout); err != nil {
		return err
	}
	if err := parseDuration(fromFile.ReadHeaderTimeout, &c.ReadHeaderTimeout); err != nil {
		return err
	}
	if err := parseDuration(fromFile.ShutdownTimeout, &c.ShutdownTimeout); err != nil {
		return err
	}
	if fromFile.MaxBodyBytes != 0 {
		c.MaxBodyBytes = fromFile.MaxBodyBytes
	}
	if fromFile.CompressionLevel != nil {
		c.CompressionLevel = *fromFile.CompressionLevel
	}

	return nil
}

func (c *Config) applyEnv(fromEnv Config) {
	if fromEnv.RunAddr != "" {
		c.RunAddr = fromEnv.RunAddr
	}
	if fromEnv.LogLevel != "" {
		c.LogLevel = fromEnv.LogLevel
	}
	if fromEnv.IdleTimeout != 0 {
		c.IdleTimeout = fromEnv.IdleTimeout
	}
	if fromEnv.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = fromEnv.ReadHeaderTimeout
	}
	if fromEnv.ShutdownTimeout != 0 {
		c.ShutdownTimeout = fromEnv.ShutdownTimeout
	}
	if fromEnv.MaxBodyBytes != 0 {
		c.MaxBodyBytes = fromEnv.MaxBodyBytes
	}
}

func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{
		disableFlagsParsing: false,
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Unable to load .env file: %v", err)
	}

	var fromEnv Config
	if err := env.Parse(&fromEnv); err != nil {
		return nil, err
	}
	// COMPRESSION_LEVEL=0 is meaningful, so it is looked up separately.
	compressionLevel, compressionLevelSet := os.LookupEnv("COMPRESSION_LEVEL")

	var flagConfigFile, flagRunAddr, flagLogLevel string
	var flagMaxBodyBytes int64
	if !options.disableFlagsParsing {
		flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
		flags.StringVar(&flagConfigFile, "c", "", "path to a JSON configuration file")
		flags.StringVar(&flagRunAddr, "a", "", "address and port to run server")
		flags.StringVar(&flagLogLevel, "l", "", "logger level")
		flags.Int64Var(&flagMaxBodyBytes, "m", 0, "maximum request body size in bytes")
		if err := flags.Parse(os.Args[1:]); err != nil {
			return nil, err
		}
	}

	cfg := defaultConfig

	configFile := fromEnv.ConfigFile
	if flagConfigFile != "" {
		configFile = flagConfigFile
	}
	if configFile != "" {
		if err := cfg.loadFile(configFile); err != nil {
			return nil, err
		}
		cfg.ConfigFile = configFile
	}

	cfg.applyEnv(fromEnv)
	if compressionLevelSet && compressionLevel != "" {
		cfg.CompressionLevel = fromEnv.CompressionLevel
	}

	if flagRunAddr != "" {
		cfg.RunAddr = flagRunAddr
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagMaxBodyBytes != 0 {
		cfg.MaxBodyBytes = flagMaxBodyBytes
	}

	applyDefaults(&cfg, defaultConfig)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
