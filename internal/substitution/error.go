package substitution

import (
	"fmt"
	"strconv"
)

// StringSubstitutionError は置換できなかった値と、ドキュメント内でのその位置を保持する。
// 位置はエラーが入れ子のコンテナを遡るたびに先頭へ追加される。
type StringSubstitutionError struct {
	value        string
	field        string
	lastWasIndex bool
	cause        error
}

// NewStringSubstitutionError は位置が空のエラーを生成する。
func NewStringSubstitutionError(value string, cause error) *StringSubstitutionError {
	return &StringSubstitutionError{value: value, cause: cause}
}

// ExtendField はフィールド名を位置の先頭に追加した新しいエラーを返す。
func (e *StringSubstitutionError) ExtendField(name string) *StringSubstitutionError {
	return e.extend(name, false)
}

// ExtendIndex は配列の添字を位置の先頭に追加した新しいエラーを返す。
func (e *StringSubstitutionError) ExtendIndex(index int) *StringSubstitutionError {
	return e.extend("["+strconv.Itoa(index)+"]", true)
}

func (e *StringSubstitutionError) extend(segment string, isIndex bool) *StringSubstitutionError {
	field := segment
	if e.field != "" && !e.lastWasIndex {
		field += "."
	}
	field += e.field
	return &StringSubstitutionError{
		value:        e.value,
		field:        field,
		lastWasIndex: isIndex,
		cause:        e.cause,
	}
}

// Value は置換できなかった暗号化値の文字列を返す。
func (e *StringSubstitutionError) Value() string {
	return e.value
}

// Field は値の位置（例: "arrayField[3].nested"）を返す。
func (e *StringSubstitutionError) Field() string {
	return e.field
}

func (e *StringSubstitutionError) Error() string {
	return fmt.Sprintf("the value '%s' for field '%s' could not be replaced: %v", e.value, e.field, e.cause)
}

func (e *StringSubstitutionError) Unwrap() error {
	return e.cause
}
