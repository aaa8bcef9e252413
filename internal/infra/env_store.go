package infra

import (
	"context"
	"fmt"
	"os"
	"strings"

	"encrypted-config-value/internal/domain"
)

// EnvStore は環境変数 ECV_KEY_<NAME> から鍵テキストを読み込む。読み込み専用。
type EnvStore struct {
	lookup func(string) (string, bool)
}

// NewEnvStore はプロセスの環境変数を参照するEnvStoreを生成する。
func NewEnvStore() *EnvStore {
	return &EnvStore{lookup: os.LookupEnv}
}

// EnvVarName は鍵名に対応する環境変数名を返す。英数字以外は "_" に置き換える。
func EnvVarName(name string) string {
	normalized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
	return "ECV_KEY_" + normalized
}

// Get は鍵テキストを取得する。
func (s *EnvStore) Get(_ context.Context, name string) (string, error) {
	value, ok := s.lookup(EnvVarName(name))
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %s is not set", domain.ErrKeyNotFound, EnvVarName(name))
	}
	return value, nil
}

func (s *EnvStore) Set(_ context.Context, name, _ string) error {
	return fmt.Errorf("%w: cannot write %s", domain.ErrReadOnlyStore, EnvVarName(name))
}
