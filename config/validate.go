package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// settings は検証対象の設定値。
type settings struct {
	Port             string  `validate:"required,numeric"`
	KeySource        string  `validate:"oneof=file env keyring database"`
	KeyPath          string  `validate:"required_if=KeySource file"`
	KeyName          string  `validate:"required_unless=KeySource file"`
	KeyringService   string  `validate:"required_if=KeySource keyring"`
	DatabaseURL      string  `validate:"required_if=KeySource database"`
	KMSKeyName       string  `validate:"required_if=KeySource database"`
	OtelEndpoint     string  `validate:"required_if=OtelEnabled true"`
	OtelEnabled      bool
	OtelSamplingRate float64 `validate:"gte=0,lte=1"`
}

// Validate は設定値の整合性を検証する。
func (c *Config) Validate() error {
	err := validate.Struct(settings{
		Port:             c.Port,
		KeySource:        string(c.KeySource),
		KeyPath:          c.KeyPath,
		KeyName:          c.KeyName,
		KeyringService:   c.KeyringService,
		DatabaseURL:      c.DatabaseURL,
		KMSKeyName:       c.KMSKeyName,
		OtelEndpoint:     c.OtelEndpoint,
		OtelEnabled:      c.OtelEnabled,
		OtelSamplingRate: c.OtelSamplingRate,
	})
	return formatValidationError(err)
}

var envNames = map[string]string{
	"Port":             "PORT",
	"KeySource":        "KEY_SOURCE",
	"KeyPath":          "KEY_PATH",
	"KeyName":          "KEY_NAME",
	"KeyringService":   "KEYRING_SERVICE",
	"DatabaseURL":      "DATABASE_URL",
	"KMSKeyName":       "KMS_KEY_NAME",
	"OtelEndpoint":     "OTEL_ENDPOINT",
	"OtelSamplingRate": "OTEL_SAMPLING_RATE",
}

// formatValidationError は最初の検証エラーを環境変数名で表した形に変換する。
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	e := validationErrs[0]
	name := envNames[e.Field()]
	switch e.Tag() {
	case "required", "required_if", "required_unless":
		return fmt.Errorf("%s is required", name)
	case "numeric":
		return fmt.Errorf("%s must be numeric, got %q", name, e.Value())
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", name, e.Param(), e.Value())
	case "gte", "lte":
		return fmt.Errorf("%s must be between 0 and 1, got %v", name, e.Value())
	default:
		return fmt.Errorf("%s is invalid (%s)", name, e.Tag())
	}
}
