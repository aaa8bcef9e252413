// Package encryption は暗号化値のエンコード/デコードとアルゴリズム別の暗号化/復号を提供する。
package encryption

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"encrypted-config-value/internal/domain"
)

// Prefix は暗号化値の文字列表現の接頭辞。
const Prefix = "enc:"

// EncryptedValue は暗号化値を表す。LegacyValue, AESValue, RSAValue のいずれか。
type EncryptedValue interface {
	encryptedValue()
}

// LegacyValue はアルゴリズム情報を持たない旧形式の暗号化値。
type LegacyValue struct {
	Ciphertext []byte
}

// AESValue はAES-GCMで暗号化された値。
type AESValue struct {
	Mode       AESMode
	IV         []byte
	Ciphertext []byte
	Tag        []byte
}

// RSAValue はRSA-OAEPで暗号化された値。
type RSAValue struct {
	Mode        RSAMode
	Ciphertext  []byte
	OAEPHashAlg HashAlgorithm
	MDF1HashAlg HashAlgorithm
}

func (LegacyValue) encryptedValue() {}
func (AESValue) encryptedValue()    {}
func (RSAValue) encryptedValue()    {}

// AESMode はAESの暗号利用モード。
type AESMode string

// AESModeGCM はGCMモード。
const AESModeGCM AESMode = "GCM"

// UnmarshalText は既知のモードのみ受け付ける。
func (m *AESMode) UnmarshalText(b []byte) error {
	if AESMode(b) != AESModeGCM {
		return fmt.Errorf("unknown AES mode %q", b)
	}
	*m = AESModeGCM
	return nil
}

// RSAMode はRSAのパディング方式。
type RSAMode string

// RSAModeOAEP はOAEPパディング。
const RSAModeOAEP RSAMode = "OAEP"

// UnmarshalText は既知のモードのみ受け付ける。
func (m *RSAMode) UnmarshalText(b []byte) error {
	if RSAMode(b) != RSAModeOAEP {
		return fmt.Errorf("unknown RSA mode %q", b)
	}
	*m = RSAModeOAEP
	return nil
}

type aesRecord struct {
	Type       domain.Algorithm `json:"type"`
	Mode       AESMode          `json:"mode"`
	Ciphertext []byte           `json:"ciphertext"`
	IV         []byte           `json:"iv"`
	Tag        []byte           `json:"tag"`
}

type rsaRecord struct {
	Type        domain.Algorithm `json:"type"`
	Mode        RSAMode          `json:"mode"`
	Ciphertext  []byte           `json:"ciphertext"`
	OAEPHashAlg HashAlgorithm    `json:"oaep-alg"`
	MDF1HashAlg HashAlgorithm    `json:"mdf1-alg"`
}

// IsEncryptedValue は文字列が暗号化値の接頭辞を持つか判定する。デコードは行わない。
func IsEncryptedValue(s string) bool {
	return strings.HasPrefix(s, Prefix)
}

// Serialize は暗号化値を "enc:" + base64 の文字列に変換する。
func Serialize(v EncryptedValue) string {
	var raw []byte
	switch v := v.(type) {
	case LegacyValue:
		raw = v.Ciphertext
	case AESValue:
		raw = marshalRecord(aesRecord{
			Type:       domain.AlgorithmAES,
			Mode:       v.Mode,
			Ciphertext: v.Ciphertext,
			IV:         v.IV,
			Tag:        v.Tag,
		})
	case RSAValue:
		raw = marshalRecord(rsaRecord{
			Type:        domain.AlgorithmRSA,
			Mode:        v.Mode,
			Ciphertext:  v.Ciphertext,
			OAEPHashAlg: v.OAEPHashAlg,
			MDF1HashAlg: v.MDF1HashAlg,
		})
	}
	return Prefix + base64.StdEncoding.EncodeToString(raw)
}

func marshalRecord(rec any) []byte {
	// 文字列とバイト列のみのレコードなので失敗しない
	b, err := json.Marshal(rec)
	if err != nil {
		panic(fmt.Sprintf("marshaling encrypted value record: %v", err))
	}
	return b
}

// Deserialize は "enc:" + base64 の文字列を暗号化値に変換する。
// 構造化レコードとして解釈できないバイト列はLegacyValueとして扱う。
// modeが省略されたレコードはGCM/OAEPとみなす。
func Deserialize(s string) (EncryptedValue, error) {
	if !IsEncryptedValue(s) {
		return nil, fmt.Errorf("%w: missing %q prefix", domain.ErrFormat, Prefix)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s, Prefix))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding base64: %v", domain.ErrFormat, err)
	}
	if v, ok := parseStructured(raw); ok {
		return v, nil
	}
	return LegacyValue{Ciphertext: raw}, nil
}

// recordFields はJSONレコードのフィールド。名前は大文字小文字を区別して照合する。
type recordFields map[string]json.RawMessage

// decode は指定したフィールドを v に読み込む。フィールドが無ければ v は変更しない。
func (f recordFields) decode(name string, v any) error {
	raw, ok := f[name]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func (f recordFields) require(names ...string) error {
	for _, name := range names {
		if _, ok := f[name]; !ok {
			return fmt.Errorf("missing field %q", name)
		}
	}
	return nil
}

func parseStructured(raw []byte) (EncryptedValue, bool) {
	var fields recordFields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	var alg domain.Algorithm
	if err := fields.decode("type", &alg); err != nil {
		return nil, false
	}

	switch alg {
	case domain.AlgorithmAES:
		v := AESValue{Mode: AESModeGCM}
		err := errors.Join(
			fields.require("iv", "ciphertext", "tag"),
			fields.decode("mode", &v.Mode),
			fields.decode("iv", &v.IV),
			fields.decode("ciphertext", &v.Ciphertext),
			fields.decode("tag", &v.Tag),
		)
		if err != nil {
			return nil, false
		}
		return v, true
	case domain.AlgorithmRSA:
		v := RSAValue{Mode: RSAModeOAEP}
		err := errors.Join(
			fields.require("ciphertext", "oaep-alg", "mdf1-alg"),
			fields.decode("mode", &v.Mode),
			fields.decode("ciphertext", &v.Ciphertext),
			fields.decode("oaep-alg", &v.OAEPHashAlg),
			fields.decode("mdf1-alg", &v.MDF1HashAlg),
		)
		if err != nil {
			return nil, false
		}
		return v, true
	}
	return nil, false
}

// Decrypt は暗号化値を鍵で復号する。レガシー値は鍵の種別に応じて型付きの値に変換してから復号する。
func Decrypt(v EncryptedValue, key domain.KeyWithType) (string, error) {
	switch v := v.(type) {
	case LegacyValue:
		typed, err := translateLegacy(v, key.Type())
		if err != nil {
			return "", err
		}
		return Decrypt(typed, key)
	case AESValue:
		return decryptAES(v, key)
	case RSAValue:
		return decryptRSA(v, key)
	}
	return "", fmt.Errorf("%w: unsupported encrypted value %T", domain.ErrFormat, v)
}

// DecryptString は "enc:" 形式の文字列をデシリアライズして復号する。
func DecryptString(s string, key domain.KeyWithType) (string, error) {
	v, err := Deserialize(s)
	if err != nil {
		return "", err
	}
	return Decrypt(v, key)
}

func translateLegacy(v LegacyValue, keyType domain.KeyType) (EncryptedValue, error) {
	switch keyType {
	case domain.KeyTypeAES:
		return legacyAESValue(v.Ciphertext)
	case domain.KeyTypeRSAPrivate:
		return legacyRSAValue(v.Ciphertext), nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedLegacyKey, keyType)
}
