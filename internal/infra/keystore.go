package infra

import (
	"context"
	"fmt"
	"log/slog"

	"encrypted-config-value/config"
	"encrypted-config-value/internal/repository"
	"encrypted-config-value/internal/usecase"
)

// OpenKeyStore はKEY_SOURCEに応じた鍵ストアを開く。返した関数で後始末を行う。
func OpenKeyStore(ctx context.Context, cfg *config.Config) (usecase.SecretStore, func(), error) {
	noop := func() {}

	switch cfg.KeySource {
	case config.KeySourceFile:
		return repository.NewKeyFileStore(), noop, nil
	case config.KeySourceEnv:
		return NewEnvStore(), noop, nil
	case config.KeySourceKeyring:
		return NewKeyringStore(cfg.KeyringService), noop, nil
	case config.KeySourceDatabase:
		return openWrappedStore(ctx, cfg)
	default:
		return nil, noop, fmt.Errorf("unknown KEY_SOURCE %q", cfg.KeySource)
	}
}

func openWrappedStore(ctx context.Context, cfg *config.Config) (usecase.SecretStore, func(), error) {
	noop := func() {}
	if cfg.DatabaseURL == "" {
		return nil, noop, fmt.Errorf("DATABASE_URL is required for the database key source")
	}

	db, err := NewDB(cfg.DatabaseURL, cfg)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to init database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, noop, err
	}

	kmsClient, err := NewKMSClient(ctx, cfg.KMSKeyName)
	if err != nil {
		sqlDB.Close()
		return nil, noop, err
	}

	closeFn := func() {
		if err := kmsClient.Close(); err != nil {
			slog.Error("failed to close KMS client", "error", err)
		}
		sqlDB.Close()
	}
	return usecase.NewWrappedStore(repository.NewStoredKeyRepository(db), kmsClient), closeFn, nil
}
