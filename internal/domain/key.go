// Package domain はドメインモデルとビジネスルールを定義する。
package domain

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"strings"
)

// Algorithm は暗号アルゴリズムを表す。
type Algorithm string

const (
	AlgorithmAES Algorithm = "AES"
	AlgorithmRSA Algorithm = "RSA"
)

// KeyType は鍵の種別を表す。
type KeyType string

const (
	// KeyTypeAES はAESの共通鍵。
	KeyTypeAES KeyType = "AES"
	// KeyTypeRSAPublic はX.509形式のRSA公開鍵。
	KeyTypeRSAPublic KeyType = "RSA-PUB"
	// KeyTypeRSAPrivate はPKCS#8形式のRSA秘密鍵。
	KeyTypeRSAPrivate KeyType = "RSA-PRIV"

	// legacyRSAType は公開鍵/秘密鍵の区別がない旧形式の種別名。
	legacyRSAType = "RSA"
)

func (t KeyType) String() string {
	return string(t)
}

// Algorithm は鍵種別に対応するアルゴリズムを返す。
func (t KeyType) Algorithm() Algorithm {
	switch t {
	case KeyTypeRSAPublic, KeyTypeRSAPrivate:
		return AlgorithmRSA
	default:
		return AlgorithmAES
	}
}

// ParseKeyType は種別名からKeyTypeを返す。
func ParseKeyType(name string) (KeyType, error) {
	switch t := KeyType(name); t {
	case KeyTypeAES, KeyTypeRSAPublic, KeyTypeRSAPrivate:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown key type %q", ErrKeyFormat, name)
}

// Key は鍵素材を表す。正規のバイト表現のみを公開する。
type Key interface {
	Bytes() []byte
}

// AESKey はAESの共通鍵。
type AESKey struct {
	secret []byte
}

// Bytes は鍵のバイト列を返す。
func (k AESKey) Bytes() []byte {
	return bytes.Clone(k.secret)
}

// RSAPublicKey はRSA公開鍵。
type RSAPublicKey struct {
	der []byte
	key *rsa.PublicKey
}

// Bytes はX.509 (PKIX) DER表現を返す。
func (k RSAPublicKey) Bytes() []byte {
	return bytes.Clone(k.der)
}

// PublicKey は解析済みの公開鍵を返す。
func (k RSAPublicKey) PublicKey() *rsa.PublicKey {
	return k.key
}

// RSAPrivateKey はRSA秘密鍵。
type RSAPrivateKey struct {
	der []byte
	key *rsa.PrivateKey
}

// Bytes はPKCS#8 DER表現を返す。
func (k RSAPrivateKey) Bytes() []byte {
	return bytes.Clone(k.der)
}

// PrivateKey は解析済みの秘密鍵を返す。
func (k RSAPrivateKey) PrivateKey() *rsa.PrivateKey {
	return k.key
}

func newAESKey(b []byte) (AESKey, error) {
	switch len(b) {
	case 16, 24, 32:
		return AESKey{secret: bytes.Clone(b)}, nil
	}
	return AESKey{}, fmt.Errorf("%w: invalid AES key length %d", ErrKeyFormat, len(b))
}

func newRSAPublicKey(der []byte) (RSAPublicKey, error) {
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return RSAPublicKey{}, fmt.Errorf("%w: parsing X.509 public key: %v", ErrKeyFormat, err)
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return RSAPublicKey{}, fmt.Errorf("%w: public key is %T, not RSA", ErrKeyFormat, pub)
	}
	return RSAPublicKey{der: bytes.Clone(der), key: rsaPub}, nil
}

func newRSAPrivateKey(der []byte) (RSAPrivateKey, error) {
	priv, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return RSAPrivateKey{}, fmt.Errorf("%w: parsing PKCS#8 private key: %v", ErrKeyFormat, err)
	}
	rsaPriv, ok := priv.(*rsa.PrivateKey)
	if !ok {
		return RSAPrivateKey{}, fmt.Errorf("%w: private key is %T, not RSA", ErrKeyFormat, priv)
	}
	return RSAPrivateKey{der: bytes.Clone(der), key: rsaPriv}, nil
}

// NewRSAPublicKey は解析済みの公開鍵からRSAPublicKeyを生成する。
func NewRSAPublicKey(pub *rsa.PublicKey) (RSAPublicKey, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return RSAPublicKey{}, fmt.Errorf("marshaling public key: %w", err)
	}
	return RSAPublicKey{der: der, key: pub}, nil
}

// NewRSAPrivateKey は解析済みの秘密鍵からRSAPrivateKeyを生成する。
func NewRSAPrivateKey(priv *rsa.PrivateKey) (RSAPrivateKey, error) {
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return RSAPrivateKey{}, fmt.Errorf("marshaling private key: %w", err)
	}
	return RSAPrivateKey{der: der, key: priv}, nil
}

// KeyFromBytes は種別に応じて鍵素材を構築する。
func (t KeyType) KeyFromBytes(b []byte) (KeyWithType, error) {
	return KeyFromBytes(t, b)
}

// KeyFromBytes は種別と生のバイト列から型付きの鍵を構築する。
func KeyFromBytes(t KeyType, b []byte) (KeyWithType, error) {
	var (
		key Key
		err error
	)
	switch t {
	case KeyTypeAES:
		key, err = newAESKey(b)
	case KeyTypeRSAPublic:
		key, err = newRSAPublicKey(b)
	case KeyTypeRSAPrivate:
		key, err = newRSAPrivateKey(b)
	default:
		return KeyWithType{}, fmt.Errorf("%w: unknown key type %q", ErrKeyFormat, t)
	}
	if err != nil {
		return KeyWithType{}, err
	}
	return KeyWithType{keyType: t, key: key}, nil
}

// KeyWithType は鍵種別と鍵素材の組。
type KeyWithType struct {
	keyType KeyType
	key     Key
}

// NewKeyWithType は鍵素材と種別の組を生成する。種別と鍵素材の型が一致しない場合はエラーを返す。
func NewKeyWithType(t KeyType, key Key) (KeyWithType, error) {
	kwt := KeyWithType{keyType: t, key: key}
	if !variantMatches(t, key) {
		return KeyWithType{}, &KeyMismatchError{Expected: t.String(), Actual: fmt.Sprintf("%T", key)}
	}
	return kwt, nil
}

// Type は鍵種別を返す。
func (k KeyWithType) Type() KeyType {
	return k.keyType
}

// Key は鍵素材を返す。
func (k KeyWithType) Key() Key {
	return k.key
}

// IsZero は鍵が設定されていない場合にtrueを返す。
func (k KeyWithType) IsZero() bool {
	return k.key == nil
}

// String は "<種別>:<base64>" 形式の文字列を返す。
func (k KeyWithType) String() string {
	if k.key == nil {
		return ""
	}
	return k.keyType.String() + ":" + base64.StdEncoding.EncodeToString(k.key.Bytes())
}

// Equal は種別とバイト表現が一致する場合にtrueを返す。
func (k KeyWithType) Equal(other KeyWithType) bool {
	if k.key == nil || other.key == nil {
		return k.key == nil && other.key == nil
	}
	return k.keyType == other.keyType && bytes.Equal(k.key.Bytes(), other.key.Bytes())
}

// ParseKeyWithType は "<種別>:<base64>" 形式の文字列を解析する。
// 旧形式の "RSA" は秘密鍵、公開鍵の順に解釈を試みる。
func ParseKeyWithType(s string) (KeyWithType, error) {
	typeName, encoded, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return KeyWithType{}, fmt.Errorf("%w: missing key type separator", ErrKeyFormat)
	}
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return KeyWithType{}, fmt.Errorf("%w: decoding key: %v", ErrKeyFormat, err)
	}

	if typeName == legacyRSAType {
		return parseLegacyRSAKey(b)
	}

	t, err := ParseKeyType(typeName)
	if err != nil {
		return KeyWithType{}, err
	}
	return KeyFromBytes(t, b)
}

type keyResult struct {
	key KeyWithType
	err error
}

func tryKeyFromBytes(t KeyType, b []byte) keyResult {
	kwt, err := KeyFromBytes(t, b)
	return keyResult{key: kwt, err: err}
}

func parseLegacyRSAKey(b []byte) (KeyWithType, error) {
	priv := tryKeyFromBytes(KeyTypeRSAPrivate, b)
	if priv.err == nil {
		return priv.key, nil
	}
	pub := tryKeyFromBytes(KeyTypeRSAPublic, b)
	if pub.err == nil {
		return pub.key, nil
	}
	return KeyWithType{}, fmt.Errorf("%w: legacy RSA key is neither private (%v) nor public (%v)",
		ErrKeyFormat, priv.err, pub.err)
}

func variantMatches(t KeyType, key Key) bool {
	switch key.(type) {
	case AESKey:
		return t == KeyTypeAES
	case RSAPublicKey:
		return t == KeyTypeRSAPublic
	case RSAPrivateKey:
		return t == KeyTypeRSAPrivate
	}
	return false
}

// CheckKeyArgument は鍵の種別と鍵素材の型を検証し、期待する型の鍵素材を返す。
// 暗号アルゴリズムは鍵のバイト列を使う前に必ずこれを呼ぶ。
func CheckKeyArgument[K Key](kwt KeyWithType, expected KeyType) (K, error) {
	var zero K
	if kwt.keyType != expected {
		return zero, &KeyMismatchError{Expected: expected.String(), Actual: kwt.keyType.String()}
	}
	k, ok := kwt.key.(K)
	if !ok {
		return zero, &KeyMismatchError{Expected: fmt.Sprintf("%T", zero), Actual: fmt.Sprintf("%T", kwt.key)}
	}
	return k, nil
}
