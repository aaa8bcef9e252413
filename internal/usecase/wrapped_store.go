package usecase

import (
	"context"
	"fmt"

	"encrypted-config-value/internal/domain"
)

// StoredKeyRepository は鍵レコードのデータアクセスのインターフェース。
type StoredKeyRepository interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, key *domain.StoredKey) error
	FindByName(ctx context.Context, name string) (*domain.StoredKey, error)
}

// KMSClient は暗号化/復号のインターフェース。
type KMSClient interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

// WrappedStore は鍵テキストをKMSでラップしてデータベースに保存するSecretStore。
type WrappedStore struct {
	repo      StoredKeyRepository
	kmsClient KMSClient
}

// NewWrappedStore は新しいWrappedStoreを生成する。
func NewWrappedStore(repo StoredKeyRepository, kmsClient KMSClient) *WrappedStore {
	return &WrappedStore{
		repo:      repo,
		kmsClient: kmsClient,
	}
}

// Get は鍵レコードを取得し、KMSでアンラップした鍵テキストを返す。
func (s *WrappedStore) Get(ctx context.Context, name string) (string, error) {
	key, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("finding key: %w", err)
	}
	if key == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrKeyNotFound, name)
	}

	plain, err := s.kmsClient.Decrypt(ctx, key.WrappedKey)
	if err != nil {
		return "", fmt.Errorf("decrypting key: %w", err)
	}
	return string(plain), nil
}

// Set は鍵テキストをKMSでラップして保存する。
func (s *WrappedStore) Set(ctx context.Context, name, value string) error {
	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return fmt.Errorf("checking existing key: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", domain.ErrKeyAlreadyExists, name)
	}

	wrapped, err := s.kmsClient.Encrypt(ctx, []byte(value))
	if err != nil {
		return fmt.Errorf("encrypting key: %w", err)
	}

	if err := s.repo.Create(ctx, &domain.StoredKey{
		Name:       name,
		WrappedKey: wrapped,
	}); err != nil {
		return fmt.Errorf("creating key: %w", err)
	}
	return nil
}
