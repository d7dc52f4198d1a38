package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON shape of [StructuredConfig].
type StructuredJSONConfig struct {
	App struct {
		PasswordHashAlgorithm string `json:"password_hash_algorithm"`
		SaltLength            int    `json:"salt_length"`
		LogLevel              string `json:"log_level"`
		Version               string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver       string   `json:"driver"`
			DSN          string   `json:"dsn"`
			QueryTimeout Duration `json:"query_timeout"`
		} `json:"db,omitempty"`

		Redis struct {
			Address   string   `json:"address"`
			Password  string   `json:"password"`
			DB        int      `json:"db"`
			KeyPrefix string   `json:"key_prefix"`
			TokenTTL  Duration `json:"token_ttl"`
			Timeout   Duration `json:"timeout"`
		} `json:"redis,omitempty"`

		Files struct {
			Backend string `json:"backend"`
			RootDir string `json:"root_dir"`
			S3      S3JSON `json:"s3,omitempty"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		CookieName      string   `json:"cookie_name"`
		CookieSecure    bool     `json:"cookie_secure"`
		CORSOrigins     []string `json:"cors_origins"`
		MaxUploadSize   int64    `json:"max_upload_size"`
	} `json:"server,omitempty"`

	Workers struct {
		SessionSweepInterval Duration `json:"session_sweep_interval"`
	} `json:"workers,omitempty"`
}

// S3JSON is the JSON shape of [S3].
type S3JSON struct {
	Bucket    string `json:"bucket"`
	Region    string `json:"region"`
	Endpoint  string `json:"endpoint"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			PasswordHashAlgorithm: jsonCfg.App.PasswordHashAlgorithm,
			SaltLength:            jsonCfg.App.SaltLength,
			LogLevel:              jsonCfg.App.LogLevel,
			Version:               jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver:       jsonCfg.Storage.DB.Driver,
				DSN:          jsonCfg.Storage.DB.DSN,
				QueryTimeout: time.Duration(jsonCfg.Storage.DB.QueryTimeout),
			},
			Redis: Redis{
				Address:   jsonCfg.Storage.Redis.Address,
				Password:  jsonCfg.Storage.Redis.Password,
				DB:        jsonCfg.Storage.Redis.DB,
				KeyPrefix: jsonCfg.Storage.Redis.KeyPrefix,
				TokenTTL:  time.Duration(jsonCfg.Storage.Redis.TokenTTL),
				Timeout:   time.Duration(jsonCfg.Storage.Redis.Timeout),
			},
			Files: Files{
				Backend: jsonCfg.Storage.Files.Backend,
				RootDir: jsonCfg.Storage.Files.RootDir,
				S3:      S3(jsonCfg.Storage.Files.S3),
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			CookieName:      jsonCfg.Server.CookieName,
			CookieSecure:    jsonCfg.Server.CookieSecure,
			CORSOrigins:     jsonCfg.Server.CORSOrigins,
			MaxUploadSize:   jsonCfg.Server.MaxUploadSize,
		},
		Workers: Workers{
			SessionSweepInterval: time.Duration(jsonCfg.Workers.SessionSweepInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
