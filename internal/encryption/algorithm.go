package encryption

import (
	"fmt"
	"strings"

	"encrypted-config-value/internal/domain"
)

// Encrypter は鍵と平文から暗号化値を生成する。
type Encrypter interface {
	Encrypt(key domain.KeyWithType, plaintext string) (EncryptedValue, error)
}

// ParseAlgorithm はアルゴリズム名（大文字小文字を区別しない）を解析する。
func ParseAlgorithm(name string) (domain.Algorithm, error) {
	switch alg := domain.Algorithm(strings.ToUpper(strings.TrimSpace(name))); alg {
	case domain.AlgorithmAES, domain.AlgorithmRSA:
		return alg, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedAlgorithm, name)
}

// NewKeyPair はアルゴリズムに応じた新しい鍵ペアを生成する。
func NewKeyPair(alg domain.Algorithm) (domain.KeyPair, error) {
	switch alg {
	case domain.AlgorithmAES:
		return newAESKeyPair()
	case domain.AlgorithmRSA:
		return newRSAKeyPair()
	}
	return domain.KeyPair{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedAlgorithm, alg)
}

// NewEncrypter はアルゴリズムに応じたEncrypterを返す。
func NewEncrypter(alg domain.Algorithm) (Encrypter, error) {
	switch alg {
	case domain.AlgorithmAES:
		return AESGCMEncrypter{}, nil
	case domain.AlgorithmRSA:
		return RSAOAEPEncrypter{}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedAlgorithm, alg)
}

// Encrypt は鍵の種別からアルゴリズムを選んで平文を暗号化する。
func Encrypt(key domain.KeyWithType, plaintext string) (EncryptedValue, error) {
	encrypter, err := NewEncrypter(key.Type().Algorithm())
	if err != nil {
		return nil, err
	}
	return encrypter.Encrypt(key, plaintext)
}
