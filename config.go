package dynamite

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/truora/dynamite/transport"
	"gopkg.in/yaml.v3"
)

// LoggingConfig controls the logger built by NewLogger.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic"`
	Format  string `yaml:"format" validate:"omitempty,oneof=json console"`
}

// CredentialsConfig holds static credentials. When absent the default AWS
// credential chain is used.
type CredentialsConfig struct {
	AccessKeyID     string `yaml:"access_key_id" validate:"required"`
	SecretAccessKey string `yaml:"secret_access_key" validate:"required"`
	SessionToken    string `yaml:"session_token"`
}

// Config describes how a DB reaches the store.
type Config struct {
	// Endpoint overrides the regional endpoint, e.g. a local emulator.
	Endpoint       string             `yaml:"endpoint" validate:"omitempty,url"`
	Region         string             `yaml:"region" validate:"required"`
	ServiceVersion string             `yaml:"service_version"`
	PlainNumbers   bool               `yaml:"plain_numbers"`
	Credentials    *CredentialsConfig `yaml:"credentials"`
	Logging        LoggingConfig      `yaml:"logging"`
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes and validates YAML configuration.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct tags of the configuration.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", e.Namespace(), e.Tag()))
	}

	return fmt.Errorf("invalid config:\n- %s", strings.Join(msgs, "\n- "))
}

// NewLogger builds a zerolog logger writing to stderr. Disabled logging
// discards every event.
func NewLogger(cfg LoggingConfig) zerolog.Logger {
	return NewLoggerTo(cfg, os.Stderr)
}

// NewLoggerTo is NewLogger writing to out.
func NewLoggerTo(cfg LoggingConfig, out io.Writer) zerolog.Logger {
	if !cfg.Enabled {
		return zerolog.Nop()
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// LoadAWSConfig resolves region and credentials through the AWS default
// configuration chain, preferring the static credentials of cfg.
func LoadAWSConfig(ctx context.Context, cfg *Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	if cfg.Credentials != nil {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Credentials.AccessKeyID,
			cfg.Credentials.SecretAccessKey,
			cfg.Credentials.SessionToken,
		)))
	}

	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

// NewFromConfig builds a DB with an HTTP transport, the configured logger
// and credentials. Missing credentials are not an error here; requests
// fail with ErrNoCredentials until some are set.
func NewFromConfig(ctx context.Context, cfg *Config, opts ...Option) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	awsCfg, err := LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	logger := NewLogger(cfg.Logging)

	base := []Option{
		WithLogger(logger),
		WithTransport(transport.NewHTTP(cfg.Endpoint, awsCfg.Region)),
		WithServiceVersion(cfg.ServiceVersion),
	}

	if cfg.PlainNumbers {
		base = append(base, WithPlainNumbers())
	}

	db := New(append(base, opts...)...)

	if awsCfg.Credentials == nil {
		return db, nil
	}

	if err := db.RefreshCredentials(ctx, awsCfg.Credentials); err != nil {
		if cfg.Credentials != nil {
			return nil, err
		}

		logger.Warn().Err(err).Msg("no credentials resolved from the default chain")
	}

	return db, nil
}
