package encryption

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"

	"encrypted-config-value/internal/domain"
)

const rsaKeySize = 2048

// RSAOAEPEncrypter はRSA-OAEPによる暗号化を行う。
type RSAOAEPEncrypter struct{}

func newRSAKeyPair() (domain.KeyPair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, rsaKeySize)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("generating RSA key: %w", err)
	}
	privKey, err := domain.NewRSAPrivateKey(priv)
	if err != nil {
		return domain.KeyPair{}, err
	}
	pubKey, err := domain.NewRSAPublicKey(&priv.PublicKey)
	if err != nil {
		return domain.KeyPair{}, err
	}

	encryptionKey, err := domain.NewKeyWithType(domain.KeyTypeRSAPublic, pubKey)
	if err != nil {
		return domain.KeyPair{}, err
	}
	decryptionKey, err := domain.NewKeyWithType(domain.KeyTypeRSAPrivate, privKey)
	if err != nil {
		return domain.KeyPair{}, err
	}
	return domain.NewKeyPair(encryptionKey, decryptionKey), nil
}

// MaxPlaintextSize は公開鍵でSHA-256 OAEPにより暗号化できる平文の最大バイト数を返す。
func MaxPlaintextSize(pub *rsa.PublicKey) int {
	return pub.Size() - 2*sha256.Size - 2
}

// Encrypt はOAEPとMGF1の両方にSHA-256を使って平文を暗号化する。
func (RSAOAEPEncrypter) Encrypt(kwt domain.KeyWithType, plaintext string) (EncryptedValue, error) {
	key, err := domain.CheckKeyArgument[domain.RSAPublicKey](kwt, domain.KeyTypeRSAPublic)
	if err != nil {
		return nil, err
	}
	pub := key.PublicKey()
	if limit := MaxPlaintextSize(pub); len(plaintext) > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", domain.ErrPlaintextTooLarge, len(plaintext), limit)
	}

	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, []byte(plaintext), nil)
	if err != nil {
		return nil, fmt.Errorf("encrypting with RSA-OAEP: %w", err)
	}
	return RSAValue{
		Mode:        RSAModeOAEP,
		Ciphertext:  ciphertext,
		OAEPHashAlg: SHA256,
		MDF1HashAlg: SHA256,
	}, nil
}

func decryptRSA(v RSAValue, kwt domain.KeyWithType) (string, error) {
	key, err := domain.CheckKeyArgument[domain.RSAPrivateKey](kwt, domain.KeyTypeRSAPrivate)
	if err != nil {
		return "", err
	}
	if v.Mode != RSAModeOAEP {
		return "", fmt.Errorf("%w: unsupported RSA mode %q", domain.ErrFormat, v.Mode)
	}
	oaepHash, err := v.OAEPHashAlg.cryptoHash()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}
	mgfHash, err := v.MDF1HashAlg.cryptoHash()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}

	plaintext, err := key.PrivateKey().Decrypt(nil, v.Ciphertext, &rsa.OAEPOptions{
		Hash:    oaepHash,
		MGFHash: mgfHash,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDecryptionFailed, err)
	}
	return string(plaintext), nil
}

// legacyRSAValue は旧形式のRSA暗号文を表す。ハッシュはOAEPがSHA-256、MGF1がSHA-1。
func legacyRSAValue(raw []byte) RSAValue {
	return RSAValue{
		Mode:        RSAModeOAEP,
		Ciphertext:  raw,
		OAEPHashAlg: SHA256,
		MDF1HashAlg: SHA1,
	}
}
