// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file and
// environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string `json:"address"`

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string `json:"database_dsn"`

	// LogLevel is the minimum zap level that is written.
	LogLevel string `json:"log_level"`

	// Config is the path to the Config file.
	Config string `json:"-"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert"`
	TLSKey  string `json:"tls_key"`
}

// TLSEnabled reports whether a certificate and key were configured.
func (o *Options) TLSEnabled() bool {
	return o.TLSCert != "" && o.TLSKey != ""
}

// Parse loads a .env file from the working directory if there is one, then
// reads the process flags, config file and environment. It exits on error.
func Parse() *Options {
	if err := LoadEnvFile(".env"); err != nil {
		log.Fatalf("error while loading .env: %v", err)
	}
	options, err := ParseArgs(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("error while parsing configuration: %v", err)
	}
	return options
}

// LoadEnvFile exports the variables defined in path without overriding the
// ones already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ParseArgs builds Options from args registered on fs. Values are applied
// in order: flag defaults and flags, the JSON config file, then the
// environment variables SERVER_ADDRESS (or PORT), DATABASE_URL and
// LOG_LEVEL.
func ParseArgs(fs *flag.FlagSet, args []string) (*Options, error) {
	options := &Options{}
	fs.StringVar(&options.Address, "a", ":3000", "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.LogLevel, "l", "info", "log level")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	fs.StringVar(&options.TLSCert, "tls-cert", "", "path to TLS certificate")
	fs.StringVar(&options.TLSKey, "tls-key", "", "path to TLS private key")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		options.Address = ":" + port
	}
	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	if options.DatabaseDSN == "" {
		return nil, errors.New("database DSN is required (-d or DATABASE_URL)")
	}
	if (options.TLSCert == "") != (options.TLSKey == "") {
		return nil, errors.New("tls-cert and tls-key must be set together")
	}
	return options, nil
}
