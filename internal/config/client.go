package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"dario.cat/mergo"
)

// ErrInvalidClientConfigs indicates the client cannot reach a server with the
// given settings.
var ErrInvalidClientConfigs = errors.New("invalid client configuration")

// Client configures the command-line client.
type Client struct {
	// ServerAddress is the base URL or "host:port" of the profile server.
	// Env: CLIENT_SERVER_ADDRESS, flag: -s
	ServerAddress string `env:"SERVER_ADDRESS"`

	// RequestTimeout bounds every request.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// CookieName must match the server's session cookie name.
	// Env: CLIENT_COOKIE_NAME
	CookieName string `env:"COOKIE_NAME"`

	// TokenFile keeps the session token between runs.
	// Env: CLIENT_TOKEN_FILE, flag: -token-file
	TokenFile string `env:"TOKEN_FILE"`

	// LogLevel is a zerolog level name.
	// Env: CLIENT_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

type clientEnv struct {
	Client Client `envPrefix:"CLIENT_"`
}

// ClientDefaults returns the baseline client configuration.
func ClientDefaults() *Client {
	return &Client{
		ServerAddress:  "localhost:8022",
		RequestTimeout: 15 * time.Second,
		CookieName:     "token",
		TokenFile:      ".profile-keeper-token",
		LogLevel:       "warn",
	}
}

// GetClientConfig merges defaults, an optional .env file, the environment
// and the recognised flags in args. It returns the remaining positional
// arguments (the command and its operands).
func GetClientConfig(args []string) (*Client, []string, error) {
	fromEnv := &clientEnv{}
	if err := parseDotEnv("", fromEnv); err != nil {
		return nil, nil, err
	}
	if err := parseEnv(fromEnv); err != nil {
		return nil, nil, err
	}

	var fromFlags Client
	fs := flag.NewFlagSet("profile-client", flag.ContinueOnError)
	fs.StringVar(&fromFlags.ServerAddress, "s", "", "Server address")
	fs.StringVar(&fromFlags.TokenFile, "token-file", "", "Session token file")
	fs.DurationVar(&fromFlags.RequestTimeout, "timeout", 0, "Request timeout (e.g., 10s)")
	fs.StringVar(&fromFlags.LogLevel, "log-level", "", "Log level")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg := new(Client)
	for _, c := range []*Client{ClientDefaults(), &fromEnv.Client, &fromFlags} {
		if err := mergo.Merge(cfg, c, mergo.WithOverride); err != nil {
			return nil, nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if strings.TrimSpace(cfg.ServerAddress) == "" || cfg.CookieName == "" || cfg.RequestTimeout < 0 {
		return nil, nil, ErrInvalidClientConfigs
	}

	return cfg, fs.Args(), nil
}
