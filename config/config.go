// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"encrypted-config-value/internal/substitution"
)

// DefaultKeyPath は鍵ファイルの既定の場所。秘密鍵は同じ場所に ".private" を付けて置く。
const DefaultKeyPath = "var/conf/encrypted-config-value.key"

// KeySource は鍵ペアの読み込み元を表す。
type KeySource string

const (
	KeySourceFile     KeySource = "file"
	KeySourceEnv      KeySource = "env"
	KeySourceKeyring  KeySource = "keyring"
	KeySourceDatabase KeySource = "database"
)

// Config はアプリケーション設定を表す。
type Config struct {
	Port               string
	DatabaseURL        string
	KMSKeyName         string
	GoogleCloudProject string
	LogLevel           string

	OtelEnabled      bool
	OtelEndpoint     string
	OtelInsecure     bool
	OtelServiceName  string
	OtelSamplingRate float64

	KeySource      KeySource
	KeyPath        string
	KeyName        string
	KeyringService string
	ConfigFile     string
}

// Load は環境変数から設定を読み込む。
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		KMSKeyName:         os.Getenv("KMS_KEY_NAME"),
		GoogleCloudProject: os.Getenv("GOOGLE_CLOUD_PROJECT"),
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),

		OtelEnabled:      getEnvBool("OTEL_ENABLED", false),
		OtelEndpoint:     getEnv("OTEL_ENDPOINT", "localhost:4317"),
		OtelInsecure:     getEnvBool("OTEL_INSECURE", false),
		OtelServiceName:  getEnv("OTEL_SERVICE_NAME", "encrypted-config-value"),
		OtelSamplingRate: getEnvFloat("OTEL_SAMPLING_RATE", 1.0),

		KeySource:      KeySource(getEnv("KEY_SOURCE", string(KeySourceFile))),
		KeyPath:        getEnv("KEY_PATH", DefaultKeyPath),
		KeyName:        getEnv("KEY_NAME", "encrypted-config-value"),
		KeyringService: getEnv("KEYRING_SERVICE", "encrypted-config-value"),
		ConfigFile:     os.Getenv("CONFIG_FILE"),
	}
}

// KeyLocation は鍵ソースに応じた鍵の名前を返す。ファイルの場合はパス。
func (c *Config) KeyLocation() string {
	if c.KeySource == KeySourceFile {
		return c.KeyPath
	}
	return c.KeyName
}

func (c *Config) secretFields() []struct {
	env   string
	value *string
} {
	return []struct {
		env   string
		value *string
	}{
		{"DATABASE_URL", &c.DatabaseURL},
		{"KMS_KEY_NAME", &c.KMSKeyName},
		{"GOOGLE_CLOUD_PROJECT", &c.GoogleCloudProject},
		{"OTEL_ENDPOINT", &c.OtelEndpoint},
		{"CONFIG_FILE", &c.ConfigFile},
	}
}

// HasPlaceholders は復号が必要な設定値があるかどうかを返す。
func (c *Config) HasPlaceholders() bool {
	for _, f := range c.secretFields() {
		if substitution.ContainsPlaceholder(*f.value) {
			return true
		}
	}
	return false
}

// Decrypt は文字列設定に含まれる "${enc:...}" を復号した値に置き換える。
func (c *Config) Decrypt(ctx context.Context, s substitution.Substitutor) error {
	for _, f := range c.secretFields() {
		if err := ctx.Err(); err != nil {
			return err
		}
		replaced, err := s.Replace(*f.value)
		if err != nil {
			var sse *substitution.StringSubstitutionError
			if errors.As(err, &sse) {
				return sse.ExtendField(f.env)
			}
			return fmt.Errorf("replacing %s: %w", f.env, err)
		}
		*f.value = replaced
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return val
}

func getEnvFloat(key string, defaultVal float64) float64 {
	val, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultVal
	}
	return val
}
