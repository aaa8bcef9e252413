package substitution

import (
	"strings"

	"encrypted-config-value/internal/domain"
	"encrypted-config-value/internal/encryption"
)

const (
	placeholderOpen   = "${"
	placeholderPrefix = placeholderOpen + encryption.Prefix
	placeholderClose  = "}"
)

// Substitutor は文字列中のプレースホルダを置換する。
type Substitutor interface {
	Replace(source string) (string, error)
}

// SubstitutorFunc は関数をSubstitutorとして扱うためのアダプタ。
type SubstitutorFunc func(source string) (string, error)

// Replace はf(source)を呼び出す。
func (f SubstitutorFunc) Replace(source string) (string, error) {
	return f(source)
}

// DecryptingSubstitutor は "${enc:...}" プレースホルダを復号した平文に置換する。
type DecryptingSubstitutor struct {
	key domain.KeyWithType
}

// NewDecryptingSubstitutor は復号鍵を使うDecryptingSubstitutorを生成する。
func NewDecryptingSubstitutor(key domain.KeyWithType) *DecryptingSubstitutor {
	return &DecryptingSubstitutor{key: key}
}

// Replace は左から順にプレースホルダを探して復号する。
// 挿入した平文は再走査しない。"enc:" で始まらない "${...}" はそのまま残す。
func (s *DecryptingSubstitutor) Replace(source string) (string, error) {
	index := strings.Index(source, placeholderPrefix)
	if index < 0 {
		return source, nil
	}

	result := source
	for index >= 0 {
		closeAt := strings.Index(result[index:], placeholderClose)
		if closeAt < 0 {
			break
		}
		end := index + closeAt

		token := result[index+len(placeholderOpen) : end]
		plaintext, err := encryption.DecryptString(token, s.key)
		if err != nil {
			return "", NewStringSubstitutionError(token, err)
		}
		result = result[:index] + plaintext + result[end+len(placeholderClose):]

		resume := index + len(plaintext)
		next := strings.Index(result[resume:], placeholderPrefix)
		if next < 0 {
			break
		}
		index = resume + next
	}
	return result, nil
}

// ContainsPlaceholder は文字列が暗号化プレースホルダを含むか判定する。
func ContainsPlaceholder(s string) bool {
	return strings.Contains(s, placeholderPrefix)
}
