package domain

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func generateRSA(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	return priv
}

func TestParseKeyWithType_AES(t *testing.T) {
	kwt, err := ParseKeyWithType("AES:rqrvWpLld+wKLOyxJYxQVg==")
	if err != nil {
		t.Fatalf("ParseKeyWithType failed: %v", err)
	}
	if kwt.Type() != KeyTypeAES {
		t.Errorf("want type AES, got %s", kwt.Type())
	}
	if len(kwt.Key().Bytes()) != 16 {
		t.Errorf("want 16 key bytes, got %d", len(kwt.Key().Bytes()))
	}
	if kwt.String() != "AES:rqrvWpLld+wKLOyxJYxQVg==" {
		t.Errorf("want round-tripped text, got %s", kwt.String())
	}
}

func TestParseKeyWithType_TrimsWhitespace(t *testing.T) {
	kwt, err := ParseKeyWithType("AES:rqrvWpLld+wKLOyxJYxQVg==\n")
	if err != nil {
		t.Fatalf("ParseKeyWithType failed: %v", err)
	}
	if kwt.Type() != KeyTypeAES {
		t.Errorf("want type AES, got %s", kwt.Type())
	}
}

func TestParseKeyWithType_RSA(t *testing.T) {
	priv := generateRSA(t)
	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		t.Fatalf("failed to marshal private key: %v", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatalf("failed to marshal public key: %v", err)
	}
	privB64 := base64.StdEncoding.EncodeToString(privDER)
	pubB64 := base64.StdEncoding.EncodeToString(pubDER)

	tests := []struct {
		name     string
		input    string
		wantType KeyType
	}{
		{"private", "RSA-PRIV:" + privB64, KeyTypeRSAPrivate},
		{"public", "RSA-PUB:" + pubB64, KeyTypeRSAPublic},
		{"legacy private", "RSA:" + privB64, KeyTypeRSAPrivate},
		{"legacy public", "RSA:" + pubB64, KeyTypeRSAPublic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kwt, err := ParseKeyWithType(tt.input)
			if err != nil {
				t.Fatalf("ParseKeyWithType failed: %v", err)
			}
			if kwt.Type() != tt.wantType {
				t.Errorf("want type %s, got %s", tt.wantType, kwt.Type())
			}
			if kwt.Type().Algorithm() != AlgorithmRSA {
				t.Errorf("want algorithm RSA, got %s", kwt.Type().Algorithm())
			}
		})
	}
}

func TestParseKeyWithType_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no separator", "AESrqrvWpLld"},
		{"unknown type", "DES:rqrvWpLld+wKLOyxJYxQVg=="},
		{"bad base64", "AES:not base64!!"},
		{"bad AES length", "AES:AAAA"},
		{"corrupt private key", "RSA-PRIV:AAAA"},
		{"corrupt public key", "RSA-PUB:AAAA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKeyWithType(tt.input)
			if !errors.Is(err, ErrKeyFormat) {
				t.Errorf("want ErrKeyFormat, got %v", err)
			}
		})
	}
}

func TestParseKeyWithType_LegacyRSAReportsBothCauses(t *testing.T) {
	_, err := ParseKeyWithType("RSA:AAAA")
	if !errors.Is(err, ErrKeyFormat) {
		t.Fatalf("want ErrKeyFormat, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "PKCS#8") || !strings.Contains(msg, "X.509") {
		t.Errorf("want both parse failures in message, got %q", msg)
	}
}

func TestCheckKeyArgument(t *testing.T) {
	aes, err := ParseKeyWithType("AES:rqrvWpLld+wKLOyxJYxQVg==")
	if err != nil {
		t.Fatalf("ParseKeyWithType failed: %v", err)
	}

	if _, err := CheckKeyArgument[AESKey](aes, KeyTypeAES); err != nil {
		t.Errorf("want no error, got %v", err)
	}

	_, err = CheckKeyArgument[RSAPrivateKey](aes, KeyTypeRSAPrivate)
	if !errors.Is(err, ErrKeyMismatch) {
		t.Fatalf("want ErrKeyMismatch, got %v", err)
	}
	var mismatch *KeyMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("want *KeyMismatchError, got %T", err)
	}
	if mismatch.Expected != "RSA-PRIV" || mismatch.Actual != "AES" {
		t.Errorf("want expected=RSA-PRIV actual=AES, got expected=%s actual=%s", mismatch.Expected, mismatch.Actual)
	}
}

func TestCheckKeyArgument_VariantMismatch(t *testing.T) {
	priv := generateRSA(t)
	pub, err := NewRSAPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatalf("NewRSAPublicKey failed: %v", err)
	}
	// 種別タグは一致するが鍵素材の型が異なる
	kwt := KeyWithType{keyType: KeyTypeRSAPrivate, key: pub}
	if _, err := CheckKeyArgument[RSAPrivateKey](kwt, KeyTypeRSAPrivate); !errors.Is(err, ErrKeyMismatch) {
		t.Errorf("want ErrKeyMismatch, got %v", err)
	}
}

func TestNewKeyWithType_RejectsWrongVariant(t *testing.T) {
	priv := generateRSA(t)
	pub, err := NewRSAPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatalf("NewRSAPublicKey failed: %v", err)
	}
	if _, err := NewKeyWithType(KeyTypeAES, pub); !errors.Is(err, ErrKeyMismatch) {
		t.Errorf("want ErrKeyMismatch, got %v", err)
	}
	if _, err := NewKeyWithType(KeyTypeRSAPublic, pub); err != nil {
		t.Errorf("want no error, got %v", err)
	}
}

func TestKeyPair_IsSymmetric(t *testing.T) {
	aes, err := ParseKeyWithType("AES:rqrvWpLld+wKLOyxJYxQVg==")
	if err != nil {
		t.Fatalf("ParseKeyWithType failed: %v", err)
	}
	if !SymmetricKeyPair(aes).IsSymmetric() {
		t.Error("want symmetric pair")
	}

	priv := generateRSA(t)
	privKey, err := NewRSAPrivateKey(priv)
	if err != nil {
		t.Fatalf("NewRSAPrivateKey failed: %v", err)
	}
	pubKey, err := NewRSAPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatalf("NewRSAPublicKey failed: %v", err)
	}
	enc, _ := NewKeyWithType(KeyTypeRSAPublic, pubKey)
	dec, _ := NewKeyWithType(KeyTypeRSAPrivate, privKey)
	pair := NewKeyPair(enc, dec)
	if pair.IsSymmetric() {
		t.Error("want asymmetric pair")
	}
	if !pair.DecryptionKey().Equal(dec) {
		t.Error("want decryption key to be the private key")
	}
}
