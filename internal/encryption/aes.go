package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"encrypted-config-value/internal/domain"
)

const (
	aesKeySize = 32 // AES-256

	gcmIVSize       = 12
	legacyGCMIVSize = 32
	gcmTagSize      = 16
	minGCMTagSize   = 12
)

// AESGCMEncrypter はAES-GCMによる暗号化を行う。
type AESGCMEncrypter struct{}

func newAESKeyPair() (domain.KeyPair, error) {
	secret := make([]byte, aesKeySize)
	if _, err := rand.Read(secret); err != nil {
		return domain.KeyPair{}, fmt.Errorf("generating random key: %w", err)
	}
	kwt, err := domain.KeyFromBytes(domain.KeyTypeAES, secret)
	if err != nil {
		return domain.KeyPair{}, err
	}
	return domain.SymmetricKeyPair(kwt), nil
}

// Encrypt は毎回新しい96ビットのIVを生成して平文を暗号化する。
func (AESGCMEncrypter) Encrypt(kwt domain.KeyWithType, plaintext string) (EncryptedValue, error) {
	key, err := domain.CheckKeyArgument[domain.AESKey](kwt, domain.KeyTypeAES)
	if err != nil {
		return nil, err
	}
	gcm, err := newGCM(key, gcmIVSize, gcmTagSize)
	if err != nil {
		return nil, err
	}

	iv := make([]byte, gcmIVSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("generating IV: %w", err)
	}

	// Sealは暗号文の末尾にタグを付与する
	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	split := len(sealed) - gcmTagSize
	return AESValue{
		Mode:       AESModeGCM,
		IV:         iv,
		Ciphertext: sealed[:split],
		Tag:        sealed[split:],
	}, nil
}

func decryptAES(v AESValue, kwt domain.KeyWithType) (string, error) {
	key, err := domain.CheckKeyArgument[domain.AESKey](kwt, domain.KeyTypeAES)
	if err != nil {
		return "", err
	}
	if v.Mode != AESModeGCM {
		return "", fmt.Errorf("%w: unsupported AES mode %q", domain.ErrFormat, v.Mode)
	}
	if len(v.IV) == 0 {
		return "", fmt.Errorf("%w: empty IV", domain.ErrFormat)
	}
	if len(v.Tag) < minGCMTagSize || len(v.Tag) > gcmTagSize {
		return "", fmt.Errorf("%w: tag must be %d to %d bytes, got %d",
			domain.ErrFormat, minGCMTagSize, gcmTagSize, len(v.Tag))
	}

	gcm, err := newGCM(key, len(v.IV), len(v.Tag))
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(v.Ciphertext)+len(v.Tag))
	sealed = append(sealed, v.Ciphertext...)
	sealed = append(sealed, v.Tag...)
	plaintext, err := gcm.Open(nil, v.IV, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAuthenticationFailed, err)
	}
	return string(plaintext), nil
}

func newGCM(key domain.AESKey, ivSize, tagSize int) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKeyFormat, err)
	}
	switch {
	case ivSize == gcmIVSize && tagSize == gcmTagSize:
		return cipher.NewGCM(block)
	case ivSize == gcmIVSize:
		return cipher.NewGCMWithTagSize(block, tagSize)
	case tagSize == gcmTagSize:
		return cipher.NewGCMWithNonceSize(block, ivSize)
	}
	// crypto/cipher は非標準のIV長とタグ長の組み合わせを扱えない
	return nil, fmt.Errorf("%w: %d-byte IV requires a %d-byte tag, got %d",
		domain.ErrFormat, ivSize, gcmTagSize, tagSize)
}

// legacyAESValue は旧形式のバイト列を IV(32バイト) | 暗号文 | タグ(16バイト) として解釈する。
func legacyAESValue(raw []byte) (AESValue, error) {
	if len(raw) < legacyGCMIVSize+gcmTagSize {
		return AESValue{}, fmt.Errorf("%w: legacy AES value too short (%d bytes)", domain.ErrFormat, len(raw))
	}
	tagStart := len(raw) - gcmTagSize
	return AESValue{
		Mode:       AESModeGCM,
		IV:         raw[:legacyGCMIVSize],
		Ciphertext: raw[legacyGCMIVSize:tagStart],
		Tag:        raw[tagStart:],
	}, nil
}
