// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Supported database drivers for [DB.Driver].
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported file sink backends for [Files.Backend].
const (
	FilesBackendLocal = "local"
	FilesBackendS3    = "s3"
)

// Supported password hashing algorithms for [App.PasswordHashAlgorithm].
const (
	HashSHA256   = "sha256"
	HashArgon2ID = "argon2id"
	HashBcrypt   = "bcrypt"
)

// StructuredConfig is the top-level configuration container of the
// profile server. It is assembled from defaults, an optional .env file,
// environment variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds password hashing and logging settings.
	App App `envPrefix:"APP_"`

	// Storage holds the database, token store and file sink settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the HTTP listener and session cookie settings.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`

	// EnvFilePath is the optional path to a dotenv file. When empty, ".env"
	// in the working directory is used if it exists.
	// Env: ENV_FILE
	EnvFilePath string `env:"ENV_FILE"`
}

// App holds application-level configuration values.
type App struct {
	// PasswordHashAlgorithm selects H in H(salt || password): one of
	// "sha256", "argon2id" or "bcrypt".
	// Env: APP_PASSWORD_HASH_ALGORITHM
	PasswordHashAlgorithm string `env:"PASSWORD_HASH_ALGORITHM"`

	// SaltLength is the number of alphanumeric characters in a new salt.
	// Env: APP_SALT_LENGTH
	SaltLength int `env:"SALT_LENGTH"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network, timeout and session cookie settings.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// CookieName is the name of the session token cookie.
	// Env: SERVER_COOKIE_NAME
	CookieName string `env:"COOKIE_NAME"`

	// CookieSecure marks the session cookie Secure (HTTPS only).
	// Env: SERVER_COOKIE_SECURE
	CookieSecure bool `env:"COOKIE_SECURE"`

	// CORSOrigins lists origins allowed to call the API with credentials.
	// Env: SERVER_CORS_ORIGINS (comma separated)
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// MaxUploadSize caps multipart request bodies, in bytes.
	// Env: SERVER_MAX_UPLOAD_SIZE
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE"`
}

// Storage groups the configuration of every persistence backend.
type Storage struct {
	// DB holds the relational database settings (accounts and profiles).
	DB DB `envPrefix:"DB_"`

	// Redis holds the session token store settings.
	Redis Redis `envPrefix:"REDIS_"`

	// Files holds the uploaded-files sink settings.
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver is "postgres" or "sqlite".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the connection string: a postgres URL or a sqlite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// QueryTimeout bounds every individual query.
	// Env: STORAGE_DB_QUERY_TIMEOUT
	QueryTimeout time.Duration `env:"QUERY_TIMEOUT"`
}

// Redis holds settings for the external session token store.
type Redis struct {
	// Address is the redis "host:port".
	// Env: STORAGE_REDIS_ADDRESS
	Address string `env:"ADDRESS"`

	// Password is the optional redis AUTH password.
	// Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`

	// DB is the redis logical database index.
	// Env: STORAGE_REDIS_DB
	DB int `env:"DB"`

	// KeyPrefix is prepended to usernames to form token keys.
	// Env: STORAGE_REDIS_KEY_PREFIX
	KeyPrefix string `env:"KEY_PREFIX"`

	// TokenTTL expires session tokens; zero keeps them until overwritten
	// or deleted.
	// Env: STORAGE_REDIS_TOKEN_TTL
	TokenTTL time.Duration `env:"TOKEN_TTL"`

	// Timeout is used as dial, read and write timeout.
	// Env: STORAGE_REDIS_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Files holds the settings of the uploaded-files sink.
type Files struct {
	// Backend is "local" or "s3".
	// Env: STORAGE_FILES_BACKEND
	Backend string `env:"BACKEND"`

	// RootDir is the local directory all avatars and user files live under.
	// Env: STORAGE_FILES_ROOT_DIR
	RootDir string `env:"ROOT_DIR"`

	// S3 configures the S3-compatible backend.
	S3 S3 `envPrefix:"S3_"`
}

// S3 holds settings for an S3-compatible object store (AWS, MinIO).
type S3 struct {
	Bucket    string `env:"BUCKET"`
	Region    string `env:"REGION"`
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SessionSweepInterval is how often the session sweeper evicts cached
	// sessions whose token is no longer current. Zero disables the sweeper.
	// Env: WORKERS_SESSION_SWEEP_INTERVAL
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL"`
}

// Defaults returns the baseline configuration every other source is merged
// on top of.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			PasswordHashAlgorithm: HashArgon2ID,
			SaltLength:            10,
			LogLevel:              "info",
			Version:               "1.0.0",
		},
		Storage: Storage{
			DB: DB{
				Driver:       DriverSQLite,
				DSN:          "profiles.db",
				QueryTimeout: 5 * time.Second,
			},
			Redis: Redis{
				Address:   "localhost:6379",
				KeyPrefix: "token:",
				Timeout:   3 * time.Second,
			},
			Files: Files{
				Backend: FilesBackendLocal,
				RootDir: "static",
			},
		},
		Server: Server{
			HTTPAddress:     "localhost:8022",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CookieName:      "token",
			MaxUploadSize:   32 << 20,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all sources in the following priority order (last source wins for
// non-zero fields):
//  1. Defaults
//  2. .env file
//  3. Environment variables
//  4. Command-line flags
//  5. JSON file (path resolved from sources 2-4)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
