package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the JSON config file.
// Durations accept either Go duration strings ("15m") or nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		HashKey         string `json:"hash_key"`
		Version         string `json:"version"`
		KDFIterations   int    `json:"kdf_iterations"`
		AllowLegacySalt bool   `json:"allow_legacy_salt"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Queue struct {
			Path        string   `json:"path"`
			OpenTimeout Duration `json:"open_timeout"`
		} `json:"queue,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		Token          string   `json:"token"`
	} `json:"adapter,omitempty"`

	Workers struct {
		ProbeInterval Duration `json:"probe_interval"`
		SyncInterval  Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`

	Security struct {
		MaxAttempts   int      `json:"max_attempts"`
		Window        Duration `json:"window"`
		Lockout       Duration `json:"lockout"`
		SweepInterval Duration `json:"sweep_interval"`
	} `json:"security,omitempty"`

	Log struct {
		Level string `json:"level"`
		File  string `json:"file"`
	} `json:"log,omitempty"`
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
			HashKey:         jsonCfg.App.HashKey,
			Version:         jsonCfg.App.Version,
			KDFIterations:   jsonCfg.App.KDFIterations,
			AllowLegacySalt: jsonCfg.App.AllowLegacySalt,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Queue: Queue{
				Path:        jsonCfg.Storage.Queue.Path,
				OpenTimeout: time.Duration(jsonCfg.Storage.Queue.OpenTimeout),
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			Token:          jsonCfg.Adapter.Token,
		},
		Workers: Workers{
			ProbeInterval: time.Duration(jsonCfg.Workers.ProbeInterval),
			SyncInterval:  time.Duration(jsonCfg.Workers.SyncInterval),
		},
		Security: Security{
			MaxAttempts:   jsonCfg.Security.MaxAttempts,
			Window:        time.Duration(jsonCfg.Security.Window),
			Lockout:       time.Duration(jsonCfg.Security.Lockout),
			SweepInterval: time.Duration(jsonCfg.Security.SweepInterval),
		},
		Log: Log{
			Level: jsonCfg.Log.Level,
			File:  jsonCfg.Log.File,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
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
