package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"encrypted-config-value/internal/domain"
)

// KeyringStore はOSのキーチェーンに鍵テキストを保存する。
type KeyringStore struct {
	service string
}

// NewKeyringStore は指定したサービス名でKeyringStoreを生成する。
func NewKeyringStore(service string) *KeyringStore {
	return &KeyringStore{service: service}
}

// Get は鍵テキストを取得する。
func (s *KeyringStore) Get(_ context.Context, name string) (string, error) {
	value, err := keyring.Get(s.service, name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", domain.ErrKeyNotFound, name)
		}
		return "", fmt.Errorf("reading keyring entry %s: %w", name, err)
	}
	return value, nil
}

// Set は鍵テキストを保存する。既に存在する場合は上書きしない。
func (s *KeyringStore) Set(ctx context.Context, name, value string) error {
	if _, err := s.Get(ctx, name); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrKeyAlreadyExists, name)
	} else if !errors.Is(err, domain.ErrKeyNotFound) {
		return err
	}
	if err := keyring.Set(s.service, name, value); err != nil {
		return fmt.Errorf("writing keyring entry %s: %w", name, err)
	}
	return nil
}

// Delete は鍵テキストを削除する。
func (s *KeyringStore) Delete(_ context.Context, name string) error {
	if err := keyring.Delete(s.service, name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrKeyNotFound, name)
		}
		return fmt.Errorf("deleting keyring entry %s: %w", name, err)
	}
	return nil
}
