package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args (usually os.Args[1:]).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-db-driver database driver (postgres, sqlite)
//	-d database DSN
//	-redis redis address in format [host]:[port]
//	-token-ttl session token TTL (e.g., "24h"; 0 disables expiry)
//	-f files root directory
//	-files-backend files backend (local, s3)
//	-hash password hash algorithm (sha256, argon2id, bcrypt)
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sweep-interval session sweeper interval (e.g., "1m")
//	-log-level log level
//	-c/-config json file path with configs
//	-env-file dotenv file path
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var dbDriver, databaseDSN string
	var redisAddress string
	var tokenTTL time.Duration
	var filesRoot, filesBackend string
	var hashAlgorithm string
	var requestTimeout, sweepInterval time.Duration
	var logLevel string
	var jsonConfigPath, envFilePath string

	fs := flag.NewFlagSet("profile-server", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&dbDriver, "db-driver", "", "Database driver (postgres, sqlite)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&redisAddress, "redis", "", "Redis address host:port")
	fs.DurationVar(&tokenTTL, "token-ttl", 0, "Session token TTL (e.g., 24h)")
	fs.StringVar(&filesRoot, "f", "", "Files root directory")
	fs.StringVar(&filesBackend, "files-backend", "", "Files backend (local, s3)")
	fs.StringVar(&hashAlgorithm, "hash", "", "Password hash algorithm (sha256, argon2id, bcrypt)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&sweepInterval, "sweep-interval", 0, "Session sweeper interval (e.g., 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&envFilePath, "env-file", "", "Dotenv file path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			PasswordHashAlgorithm: hashAlgorithm,
			LogLevel:              logLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: dbDriver,
				DSN:    databaseDSN,
			},
			Redis: Redis{
				Address:  redisAddress,
				TokenTTL: tokenTTL,
			},
			Files: Files{
				Backend: filesBackend,
				RootDir: filesRoot,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SessionSweepInterval: sweepInterval,
		},
		JSONFilePath: jsonConfigPath,
		EnvFilePath:  envFilePath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
