package encryption

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"encrypted-config-value/internal/domain"
)

// Token は設定ファイルのフィールドとして使える "enc:..." 形式の暗号化値。
// 復号は鍵を渡したときにだけ行う。
type Token struct {
	raw   string
	value EncryptedValue
}

// ParseToken は "enc:..." 形式の文字列を解析する。
func ParseToken(s string) (Token, error) {
	v, err := Deserialize(s)
	if err != nil {
		return Token{}, err
	}
	return Token{raw: s, value: v}, nil
}

// NewToken は暗号化値からTokenを生成する。
func NewToken(v EncryptedValue) Token {
	return Token{raw: Serialize(v), value: v}
}

// Value は解析済みの暗号化値を返す。
func (t Token) Value() EncryptedValue {
	return t.value
}

// Decrypt は鍵で復号した平文を返す。
func (t Token) Decrypt(key domain.KeyWithType) (string, error) {
	if t.value == nil {
		return "", fmt.Errorf("%w: empty token", domain.ErrFormat)
	}
	return Decrypt(t.value, key)
}

func (t Token) String() string {
	return t.raw
}

// MarshalText は元の文字列表現を返す。
func (t Token) MarshalText() ([]byte, error) {
	return []byte(t.raw), nil
}

// UnmarshalText は "enc:..." 形式の文字列を解析する。
func (t *Token) UnmarshalText(b []byte) error {
	parsed, err := ParseToken(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalYAML はスカラー値のみを受け付け、エラーに行番号を含める。
func (t *Token) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w: encrypted value must be a scalar", node.Line, domain.ErrFormat)
	}
	if err := t.UnmarshalText([]byte(node.Value)); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}
