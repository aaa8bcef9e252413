package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"encrypted-config-value/internal/domain"
)

func mustParseKey(t *testing.T, s string) domain.KeyWithType {
	t.Helper()
	kwt, err := domain.ParseKeyWithType(s)
	if err != nil {
		t.Fatalf("failed to parse key: %v", err)
	}
	return kwt
}

func TestDecrypt_CompatibilityFixtures(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"legacy AES", legacyAESKey, legacyAESToken, "my secret. I don't want anyone to know this"},
		{"new AES", newAESKey, newAESToken, "plaintext"},
		{"legacy RSA", legacyRSAKey, legacyRSAToken, "my secret. I don't want anyone to know this"},
		{"new RSA", newRSAKey, newRSAToken, "plaintext"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := mustParseKey(t, tt.key)
			got, err := DecryptString(tt.value, key)
			if err != nil {
				t.Fatalf("DecryptString failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDeserialize_Variants(t *testing.T) {
	legacy, err := Deserialize(legacyAESToken)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if _, ok := legacy.(LegacyValue); !ok {
		t.Errorf("want LegacyValue, got %T", legacy)
	}

	aesValue, err := Deserialize(newAESToken)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	v, ok := aesValue.(AESValue)
	if !ok {
		t.Fatalf("want AESValue, got %T", aesValue)
	}
	if v.Mode != AESModeGCM || len(v.IV) != 12 || len(v.Tag) != 16 {
		t.Errorf("unexpected AES value: mode=%s iv=%d tag=%d", v.Mode, len(v.IV), len(v.Tag))
	}

	rsaValue, err := Deserialize(newRSAToken)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	r, ok := rsaValue.(RSAValue)
	if !ok {
		t.Fatalf("want RSAValue, got %T", rsaValue)
	}
	if r.OAEPHashAlg != SHA256 || r.MDF1HashAlg != SHA256 {
		t.Errorf("want SHA-256/SHA-256, got %s/%s", r.OAEPHashAlg, r.MDF1HashAlg)
	}
}

func TestSerialize_MatchesExistingEncoding(t *testing.T) {
	for _, token := range []string{legacyAESToken, newAESToken, legacyRSAToken, newRSAToken} {
		v, err := Deserialize(token)
		if err != nil {
			t.Fatalf("Deserialize failed: %v", err)
		}
		if got := Serialize(v); got != token {
			t.Errorf("want %s, got %s", token, got)
		}
	}
}

func TestDeserialize_FormatErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"wrong prefix", "anc:" + strings.TrimPrefix(newAESToken, Prefix)},
		{"no prefix", "plaintext"},
		{"invalid base64", "enc:not-base64!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize(tt.input)
			if !errors.Is(err, domain.ErrFormat) {
				t.Errorf("want ErrFormat, got %v", err)
			}
		})
	}
}

func TestDeserialize_FallsBackToLegacy(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "\x00\x01\x02raw bytes"},
		{"json without type", `{"mode":"GCM"}`},
		{"unknown type", `{"type":"DES"}`},
		{"unknown mode", `{"type":"AES","mode":"CBC","ciphertext":"AA==","iv":"AA==","tag":"AA=="}`},
		{"unknown hash", `{"type":"RSA","mode":"OAEP","ciphertext":"AA==","oaep-alg":"MD5","mdf1-alg":"SHA-256"}`},
		{"json array", `[1,2,3]`},
		{"uppercase keys", `{"TYPE":"AES","MODE":"GCM","CIPHERTEXT":"AA==","IV":"AA==","TAG":"AA=="}`},
		{"missing tag", `{"type":"AES","mode":"GCM","ciphertext":"AA==","iv":"AA=="}`},
		{"missing hash", `{"type":"RSA","mode":"OAEP","ciphertext":"AA==","oaep-alg":"SHA-256"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := Prefix + base64.StdEncoding.EncodeToString([]byte(tt.raw))
			v, err := Deserialize(token)
			if err != nil {
				t.Fatalf("Deserialize failed: %v", err)
			}
			legacy, ok := v.(LegacyValue)
			if !ok {
				t.Fatalf("want LegacyValue, got %T", v)
			}
			if string(legacy.Ciphertext) != tt.raw {
				t.Errorf("want raw bytes preserved, got %q", legacy.Ciphertext)
			}
		})
	}
}

func TestIsEncryptedValue(t *testing.T) {
	if !IsEncryptedValue("enc:anything") {
		t.Error("want true for enc: prefix")
	}
	if IsEncryptedValue("${enc:abc}") {
		t.Error("want false for placeholder")
	}
	if IsEncryptedValue("") {
		t.Error("want false for empty string")
	}
}

func TestDecrypt_LegacyWithUnsupportedKey(t *testing.T) {
	pair, err := NewKeyPair(domain.AlgorithmRSA)
	if err != nil {
		t.Fatalf("NewKeyPair failed: %v", err)
	}
	v, err := Deserialize(legacyAESToken)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	_, err = Decrypt(v, pair.EncryptionKey())
	if !errors.Is(err, domain.ErrUnsupportedLegacyKey) {
		t.Errorf("want ErrUnsupportedLegacyKey, got %v", err)
	}
}

func TestDecrypt_LegacyAESTooShort(t *testing.T) {
	key := mustParseKey(t, legacyAESKey)
	_, err := Decrypt(LegacyValue{Ciphertext: make([]byte, 40)}, key)
	if !errors.Is(err, domain.ErrFormat) {
		t.Errorf("want ErrFormat, got %v", err)
	}
}

func TestDecrypt_StructuredFieldChecks(t *testing.T) {
	key := mustParseKey(t, newAESKey)
	tests := []struct {
		name  string
		value AESValue
	}{
		{"empty IV", AESValue{Mode: AESModeGCM, Ciphertext: []byte("x"), Tag: make([]byte, 16)}},
		{"short tag", AESValue{Mode: AESModeGCM, IV: make([]byte, 12), Ciphertext: []byte("x"), Tag: make([]byte, 4)}},
		{"long tag", AESValue{Mode: AESModeGCM, IV: make([]byte, 12), Ciphertext: []byte("x"), Tag: make([]byte, 17)}},
		{"unsupported mode", AESValue{Mode: "CBC", IV: make([]byte, 12), Ciphertext: []byte("x"), Tag: make([]byte, 16)}},
		{"short tag with legacy IV", AESValue{Mode: AESModeGCM, IV: make([]byte, 32), Ciphertext: []byte("x"), Tag: make([]byte, 12)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.value, key)
			if !errors.Is(err, domain.ErrFormat) {
				t.Errorf("want ErrFormat, got %v", err)
			}
		})
	}
}

func TestDecrypt_KeyMismatch(t *testing.T) {
	rsaPair, err := NewKeyPair(domain.AlgorithmRSA)
	if err != nil {
		t.Fatalf("NewKeyPair failed: %v", err)
	}
	v, err := Deserialize(newAESToken)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if _, err := Decrypt(v, rsaPair.DecryptionKey()); !errors.Is(err, domain.ErrKeyMismatch) {
		t.Errorf("want ErrKeyMismatch, got %v", err)
	}

	aesKey := mustParseKey(t, newAESKey)
	r, err := Deserialize(newRSAToken)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if _, err := Decrypt(r, aesKey); !errors.Is(err, domain.ErrKeyMismatch) {
		t.Errorf("want ErrKeyMismatch, got %v", err)
	}
	// 公開鍵では復号できない
	if _, err := Decrypt(r, rsaPair.EncryptionKey()); !errors.Is(err, domain.ErrKeyMismatch) {
		t.Errorf("want ErrKeyMismatch, got %v", err)
	}
}

type tokenConfig struct {
	Password Token `yaml:"password"`
}

func TestToken_UnmarshalYAML(t *testing.T) {
	var cfg tokenConfig
	if err := yaml.Unmarshal([]byte("password: "+newAESToken+"\n"), &cfg); err != nil {
		t.Fatalf("yaml.Unmarshal failed: %v", err)
	}
	got, err := cfg.Password.Decrypt(mustParseKey(t, newAESKey))
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if got != "plaintext" {
		t.Errorf("want plaintext, got %q", got)
	}
	if cfg.Password.String() != newAESToken {
		t.Errorf("want original token text, got %s", cfg.Password.String())
	}
}

func TestToken_UnmarshalYAML_Invalid(t *testing.T) {
	var cfg tokenConfig
	err := yaml.Unmarshal([]byte("password: hunter2\n"), &cfg)
	if !errors.Is(err, domain.ErrFormat) {
		t.Errorf("want ErrFormat, got %v", err)
	}

	err = yaml.Unmarshal([]byte("password: [a, b]\n"), &cfg)
	if !errors.Is(err, domain.ErrFormat) {
		t.Errorf("want ErrFormat for non-scalar, got %v", err)
	}
}

func encodeRecord(t *testing.T, rec map[string]any) string {
	t.Helper()
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	return Prefix + base64.StdEncoding.EncodeToString(b)
}

func TestDecryptString_RecordWithoutMode(t *testing.T) {
	aesPair := newTestKeyPair(t, domain.AlgorithmAES)
	encrypted, err := Encrypt(aesPair.EncryptionKey(), "no mode")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	a := encrypted.(AESValue)
	aesToken := encodeRecord(t, map[string]any{
		"type":       "AES",
		"iv":         a.IV,
		"ciphertext": a.Ciphertext,
		"tag":        a.Tag,
	})

	rsaPair := newTestKeyPair(t, domain.AlgorithmRSA)
	encrypted, err = Encrypt(rsaPair.EncryptionKey(), "no mode")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	r := encrypted.(RSAValue)
	rsaToken := encodeRecord(t, map[string]any{
		"type":       "RSA",
		"ciphertext": r.Ciphertext,
		"oaep-alg":   "SHA-256",
		"mdf1-alg":   "SHA-256",
	})

	tests := []struct {
		name  string
		token string
		key   domain.KeyWithType
	}{
		{"AES defaults to GCM", aesToken, aesPair.DecryptionKey()},
		{"RSA defaults to OAEP", rsaToken, rsaPair.DecryptionKey()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecryptString(tt.token, tt.key)
			if err != nil {
				t.Fatalf("DecryptString failed: %v", err)
			}
			if got != "no mode" {
				t.Errorf("want %q, got %q", "no mode", got)
			}
		})
	}
}

func TestDecrypt_GCMTagSizes(t *testing.T) {
	pair := newTestKeyPair(t, domain.AlgorithmAES)
	key, err := domain.CheckKeyArgument[domain.AESKey](pair.DecryptionKey(), domain.KeyTypeAES)
	if err != nil {
		t.Fatalf("CheckKeyArgument failed: %v", err)
	}
	block, err := aes.NewCipher(key.Bytes())
	if err != nil {
		t.Fatalf("aes.NewCipher failed: %v", err)
	}

	for _, tagSize := range []int{12, 13, 14, 15, 16} {
		gcm, err := cipher.NewGCMWithTagSize(block, tagSize)
		if err != nil {
			t.Fatalf("NewGCMWithTagSize(%d) failed: %v", tagSize, err)
		}
		iv := make([]byte, gcm.NonceSize())
		sealed := gcm.Seal(nil, iv, []byte("short tag"), nil)
		split := len(sealed) - tagSize
		v := AESValue{Mode: AESModeGCM, IV: iv, Ciphertext: sealed[:split], Tag: sealed[split:]}

		got, err := Decrypt(v, pair.DecryptionKey())
		if err != nil {
			t.Errorf("%d-byte tag: Decrypt failed: %v", tagSize, err)
			continue
		}
		if got != "short tag" {
			t.Errorf("%d-byte tag: want %q, got %q", tagSize, "short tag", got)
		}
	}
}
