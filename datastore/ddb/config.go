/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/suparena/slotstore/errors"
)

// DefaultTimeout bounds each DynamoDB request when Config.Timeout is zero
const DefaultTimeout = 5 * time.Second

// Config holds the connection settings for a DynamoDB backed store
type Config struct {
	Region    string        `json:"region" yaml:"region"`
	AccessKey string        `json:"accessKey" yaml:"accessKey"`
	SecretKey string        `json:"-" yaml:"-"`
	Table     string        `json:"table" yaml:"table"`
	Endpoint  string        `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	KeyPrefix string        `json:"keyPrefix,omitempty" yaml:"keyPrefix,omitempty"`
	Timeout   time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// ConfigFromEnv loads .env files (the working directory's .env when none are given) and
// reads AWS_ACCESS_KEY, AWS_SECRET_KEY, AWS_REGION, AWS_DDB_TABLE and AWS_DDB_ENDPOINT.
// Missing files are not an error; the process environment is used as is.
func ConfigFromEnv(files ...string) Config {
	_ = godotenv.Load(files...)

	return Config{
		Region:    os.Getenv("AWS_REGION"),
		AccessKey: os.Getenv("AWS_ACCESS_KEY"),
		SecretKey: os.Getenv("AWS_SECRET_KEY"),
		Table:     os.Getenv("AWS_DDB_TABLE"),
		Endpoint:  os.Getenv("AWS_DDB_ENDPOINT"),
	}
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Table == "" {
		return errors.NewValidationError("table", "required")
	}
	if c.Region == "" {
		return errors.NewValidationError("region", "required")
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return errors.NewValidationError("accessKey", "access key and secret key must be set together")
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}

// NewClient initializes a DynamoDB client. Static credentials are used when the config
// carries them, the default AWS credential chain otherwise.
func NewClient(ctx context.Context, cfg Config) (*sdk.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}
