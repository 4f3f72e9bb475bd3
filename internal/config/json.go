package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Auth struct {
		PasswordHashKey string   `json:"password_hash_key"`
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		TokenDuration   Duration `json:"token_duration"`
	} `json:"auth,omitempty"`

	Security struct {
		HashKey             string            `json:"hash_key"`
		Keys                map[string]string `json:"keys"`
		InvocationSignKeyID string            `json:"invocation_sign_key_id"`
	} `json:"security,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Engine struct {
		Concurrency              int  `json:"concurrency"`
		PageLimit                int  `json:"page_limit"`
		RatePerSecond            int  `json:"rate_per_second"`
		IgnoreCredentialNotFound bool `json:"ignore_credential_not_found"`
	} `json:"engine,omitempty"`
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
			Version:  jsonCfg.App.Version,
			LogLevel: jsonCfg.App.LogLevel,
		},
		Auth: Auth{
			PasswordHashKey: jsonCfg.Auth.PasswordHashKey,
			TokenSignKey:    jsonCfg.Auth.TokenSignKey,
			TokenIssuer:     jsonCfg.Auth.TokenIssuer,
			TokenDuration:   time.Duration(jsonCfg.Auth.TokenDuration),
		},
		Security: Security{
			HashKey:             jsonCfg.Security.HashKey,
			Keys:                jsonCfg.Security.Keys,
			InvocationSignKeyID: jsonCfg.Security.InvocationSignKeyID,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Engine: Engine{
			Concurrency:              jsonCfg.Engine.Concurrency,
			PageLimit:                jsonCfg.Engine.PageLimit,
			RatePerSecond:            jsonCfg.Engine.RatePerSecond,
			IgnoreCredentialNotFound: jsonCfg.Engine.IgnoreCredentialNotFound,
		},
		JSONFilePath: "",
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
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
