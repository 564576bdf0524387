// Package config resolves the dev.to credential and API location from flags,
// the process environment and an optional .env file.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/mdpublish/internal/devto"
	"git.home.luguber.info/inful/mdpublish/internal/foundation/errors"
)

// Environment variable names.
const (
	EnvAPIKey = "DEVTO_API_KEY"
	EnvAPIURL = "DEVTO_API_URL"
)

// DefaultEnvFile is read relative to the working directory when present.
const DefaultEnvFile = ".env"

// MissingAPIKeyMessage is printed verbatim when no credential is configured.
const MissingAPIKeyMessage = "Please set the DEVTO_API_KEY environment variable with your dev.to API key."

// ErrMissingAPIKey is returned by Resolve when DEVTO_API_KEY is unset or empty.
var ErrMissingAPIKey = errors.ConfigError(MissingAPIKeyMessage).Build()

// LookupFunc reads one environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Config is the resolved runtime configuration.
type Config struct {
	APIKey string
	APIURL string
	// EnvFile is the .env path that contributed values, or "".
	EnvFile string
}

// ResolveOptions carries flag values that take precedence over every other source.
type ResolveOptions struct {
	EnvFile string
	APIURL  string
}

// Resolve builds the configuration. Sources, highest first: options, the
// lookup function, the .env file, defaults. The .env file never modifies the
// process environment and a missing file is not an error.
func Resolve(lookup LookupFunc, opts ResolveOptions) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	dotenv, loadedFrom, err := readEnvFile(opts.EnvFile)
	if err != nil {
		return nil, err
	}

	get := func(key string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(dotenv[key])
	}

	cfg := &Config{
		APIKey:  get(EnvAPIKey),
		APIURL:  get(EnvAPIURL),
		EnvFile: loadedFrom,
	}
	if u := strings.TrimSpace(opts.APIURL); u != "" {
		cfg.APIURL = u
	}
	if cfg.APIURL == "" {
		cfg.APIURL = devto.DefaultBaseURL
	}

	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return cfg, nil
}

func readEnvFile(path string) (map[string]string, string, error) {
	if path == "" {
		return map[string]string{}, "", nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, "", nil
		}
		return nil, "", errors.ConfigError("failed to read env file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return values, path, nil
}
