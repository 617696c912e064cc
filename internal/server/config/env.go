package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv overlays environment variables onto config. Variables from the
// dotenv file at path fill in only what the process environment lacks; a
// missing file is not an error.
//
// PORT is honored as a shorthand for HTTP_ADDRESS=":$PORT".
func parseEnv(path string, config *Config) error {
	environ := env.ToMap(os.Environ())

	if path != "" {
		dotenv, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", path, err)
		}
		for k, v := range dotenv {
			if _, ok := environ[k]; !ok {
				environ[k] = v
			}
		}
	}

	if port := strings.TrimSpace(environ["PORT"]); port != "" {
		if _, ok := environ["HTTP_ADDRESS"]; !ok {
			environ["HTTP_ADDRESS"] = ":" + port
		}
	}

	if err := env.ParseWithOptions(config, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
