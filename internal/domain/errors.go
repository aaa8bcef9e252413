package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat は暗号化値の文字列表現が不正な場合のエラー。
	ErrFormat = errors.New("invalid encrypted value format")

	// ErrKeyMismatch は鍵の種別が暗号アルゴリズムの要求と一致しない場合のエラー。
	ErrKeyMismatch = errors.New("key type mismatch")

	// ErrKeyFormat は鍵のバイト列が宣言された種別の鍵として解釈できない場合のエラー。
	ErrKeyFormat = errors.New("invalid key format")

	// ErrAuthenticationFailed はAEADの認証タグ検証に失敗した場合のエラー（改ざんまたは鍵違い）。
	ErrAuthenticationFailed = errors.New("authentication tag verification failed")

	// ErrDecryptionFailed は認証タグ以外の理由で復号に失敗した場合のエラー。
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrPlaintextTooLarge はRSA-OAEPで暗号化できる長さを平文が超えている場合のエラー。
	ErrPlaintextTooLarge = errors.New("plaintext too large for key")

	// ErrUnsupportedLegacyKey はレガシー形式の暗号化値に対応していない鍵種別が渡された場合のエラー。
	ErrUnsupportedLegacyKey = errors.New("key type has no legacy interpretation")

	// ErrUnsupportedAlgorithm は未知のアルゴリズム名が指定された場合のエラー。
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrKeyNotFound は指定された名前の鍵が存在しない場合のエラー。
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyAlreadyExists は指定された名前の鍵が既に存在する場合のエラー。
	ErrKeyAlreadyExists = errors.New("key already exists")

	// ErrReadOnlyStore は書き込みに対応していない鍵ストアに保存しようとした場合のエラー。
	ErrReadOnlyStore = errors.New("key store is read-only")

	// ErrMigrationFailed はマイグレーション実行時のエラー。
	ErrMigrationFailed = errors.New("migration failed")

	// ErrInvalidMigrationFile はマイグレーションファイルのフォーマットが不正な場合のエラー。
	ErrInvalidMigrationFile = errors.New("invalid migration file")
)

// KeyMismatchError は期待した鍵種別と実際の鍵種別を保持する。
type KeyMismatchError struct {
	Expected string
	Actual   string
}

func (e *KeyMismatchError) Error() string {
	return fmt.Sprintf("key type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// Unwrap はErrKeyMismatchを返す。
func (e *KeyMismatchError) Unwrap() error {
	return ErrKeyMismatch
}
