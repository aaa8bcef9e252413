// Package usecase はアプリケーションのユースケースを実装する。
package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"encrypted-config-value/internal/domain"
	"encrypted-config-value/internal/encryption"
)

// privateSuffix は非対称鍵ペアの復号鍵を置く名前の接尾辞。
const privateSuffix = ".private"

const fingerprintLength = 16

// SecretStore は鍵テキスト（"<TYPE>:<base64>"）の保存先。
// 存在しない名前の Get は domain.ErrKeyNotFound、既存の名前への Set は domain.ErrKeyAlreadyExists を返す。
type SecretStore interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
}

// KeyService は鍵ペアの読み書きと値の暗号化・復号を提供する。
type KeyService struct {
	store SecretStore
	name  string

	mu     sync.Mutex
	cached *domain.KeyPair
}

// NewKeyService は新しいKeyServiceを生成する。
func NewKeyService(store SecretStore, name string) *KeyService {
	return &KeyService{
		store: store,
		name:  name,
	}
}

// Name は暗号化鍵の名前を返す。
func (s *KeyService) Name() string {
	return s.name
}

// PrivateName は復号鍵の名前を返す。
func (s *KeyService) PrivateName() string {
	return s.name + privateSuffix
}

// KeyPair は鍵ペアを読み込む。復号鍵が無い場合は共通鍵として扱う。
// 読み込みに成功した鍵ペアはキャッシュされる。
func (s *KeyService) KeyPair(ctx context.Context) (domain.KeyPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return *s.cached, nil
	}

	pair, err := s.loadKeyPair(ctx)
	if err != nil {
		return domain.KeyPair{}, err
	}
	s.cached = &pair
	return pair, nil
}

func (s *KeyService) loadKeyPair(ctx context.Context) (domain.KeyPair, error) {
	encryptionKey, err := s.readKey(ctx, s.name)
	if err != nil {
		return domain.KeyPair{}, err
	}

	decryptionKey, err := s.readKey(ctx, s.PrivateName())
	if errors.Is(err, domain.ErrKeyNotFound) {
		return domain.SymmetricKeyPair(encryptionKey), nil
	}
	if err != nil {
		return domain.KeyPair{}, err
	}
	return domain.NewKeyPair(encryptionKey, decryptionKey), nil
}

func (s *KeyService) readKey(ctx context.Context, name string) (domain.KeyWithType, error) {
	text, err := s.store.Get(ctx, name)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			slog.ErrorContext(ctx, "failed to read key",
				"operation", "read_key",
				"name", name,
				"error", err,
			)
		}
		return domain.KeyWithType{}, err
	}

	key, err := domain.ParseKeyWithType(text)
	if err != nil {
		return domain.KeyWithType{}, fmt.Errorf("parsing key %s: %w", name, err)
	}
	return key, nil
}

// SaveKeyPair は鍵ペアを保存する。既存の鍵は上書きしない。
func (s *KeyService) SaveKeyPair(ctx context.Context, pair domain.KeyPair) error {
	names := []string{s.name}
	if !pair.IsSymmetric() {
		names = append(names, s.PrivateName())
	}
	for _, name := range names {
		if _, err := s.store.Get(ctx, name); err == nil {
			return fmt.Errorf("%w: %s", domain.ErrKeyAlreadyExists, name)
		} else if !errors.Is(err, domain.ErrKeyNotFound) {
			return fmt.Errorf("checking existing key: %w", err)
		}
	}

	// 復号鍵を先に書き、暗号化鍵だけが残る状態を作らない
	if !pair.IsSymmetric() {
		if err := s.store.Set(ctx, s.PrivateName(), pair.DecryptionKey().String()); err != nil {
			return fmt.Errorf("saving decryption key: %w", err)
		}
	}
	if err := s.store.Set(ctx, s.name, pair.EncryptionKey().String()); err != nil {
		return fmt.Errorf("saving encryption key: %w", err)
	}

	s.mu.Lock()
	s.cached = &pair
	s.mu.Unlock()
	return nil
}

// GenerateKeyPair は指定したアルゴリズムの鍵ペアを生成して保存する。
func (s *KeyService) GenerateKeyPair(ctx context.Context, alg domain.Algorithm) (domain.KeyPair, error) {
	pair, err := encryption.NewKeyPair(alg)
	if err != nil {
		return domain.KeyPair{}, err
	}
	if err := s.SaveKeyPair(ctx, pair); err != nil {
		return domain.KeyPair{}, err
	}
	return pair, nil
}

// EncryptValue は平文を暗号化し "enc:..." 形式の文字列を返す。
func (s *KeyService) EncryptValue(ctx context.Context, plaintext string) (string, error) {
	pair, err := s.KeyPair(ctx)
	if err != nil {
		return "", err
	}
	value, err := encryption.Encrypt(pair.EncryptionKey(), plaintext)
	if err != nil {
		return "", err
	}
	return encryption.Serialize(value), nil
}

// DecryptValue は "enc:..." 形式の文字列を復号する。
func (s *KeyService) DecryptValue(ctx context.Context, token string) (string, error) {
	pair, err := s.KeyPair(ctx)
	if err != nil {
		return "", err
	}
	return encryption.DecryptString(token, pair.DecryptionKey())
}

// Describe は鍵ペアの公開可能な情報を返す。
func (s *KeyService) Describe(ctx context.Context) (*domain.KeyDescription, error) {
	pair, err := s.KeyPair(ctx)
	if err != nil {
		return nil, err
	}

	encryptionKey := pair.EncryptionKey()
	desc := &domain.KeyDescription{
		Type:        encryptionKey.Type(),
		Algorithm:   encryptionKey.Type().Algorithm(),
		Fingerprint: Fingerprint(encryptionKey),
	}
	if !pair.IsSymmetric() {
		desc.PublicKey = encryptionKey.String()
	}
	return desc, nil
}

// Fingerprint は鍵素材のSHA-256ハッシュの先頭を16進数で返す。
func Fingerprint(key domain.KeyWithType) string {
	sum := sha256.Sum256(key.Key().Bytes())
	return hex.EncodeToString(sum[:])[:fingerprintLength]
}
