// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

// parseDotEnv reads a dotenv file and maps its variables onto cfg with the
// same tags as [parseEnv]. The process environment is not modified.
//
// When path is empty the default ".env" is tried and silently skipped if it
// does not exist; an explicitly named file must exist.
func parseDotEnv(path string, cfg any) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("error reading dotenv file: %w", err)
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("error parsing dotenv file: %w", err)
	}

	if err = env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return fmt.Errorf("error getting dotenv configs: %w", err)
	}

	return nil
}
