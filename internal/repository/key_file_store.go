package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"encrypted-config-value/internal/domain"
)

// KeyFileStore は鍵テキストをファイルに保存する。名前はファイルパスとして扱う。
type KeyFileStore struct{}

// NewKeyFileStore は新しいKeyFileStoreを生成する。
func NewKeyFileStore() *KeyFileStore {
	return &KeyFileStore{}
}

// Get はファイルから鍵テキストを読み込む。前後の空白は取り除く。
func (s *KeyFileStore) Get(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrKeyNotFound, path)
		}
		return "", fmt.Errorf("reading key file %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set は鍵テキストを所有者のみ読み書き可能なファイルとして新規作成する。
// 既存のファイルは上書きしない。
func (s *KeyFileStore) Set(_ context.Context, path, value string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating key directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", domain.ErrKeyAlreadyExists, path)
		}
		return fmt.Errorf("creating key file %s: %w", path, err)
	}
	if _, err := f.WriteString(value); err != nil {
		f.Close()
		return fmt.Errorf("writing key file %s: %w", path, err)
	}
	return f.Close()
}
