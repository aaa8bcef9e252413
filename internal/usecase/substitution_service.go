package usecase

import (
	"context"
	"errors"

	"gopkg.in/yaml.v3"

	"encrypted-config-value/internal/domain"
	"encrypted-config-value/internal/substitution"
)

// KeyPairProvider は鍵ペアを提供する。
type KeyPairProvider interface {
	KeyPair(ctx context.Context) (domain.KeyPair, error)
}

// SubstitutionService は設定ドキュメント中の "${enc:...}" を復号した値に置き換える。
type SubstitutionService struct {
	keys KeyPairProvider
}

// NewSubstitutionService は新しいSubstitutionServiceを生成する。
func NewSubstitutionService(keys KeyPairProvider) *SubstitutionService {
	return &SubstitutionService{keys: keys}
}

// Substitutor は復号鍵を使うSubstitutorを返す。
func (s *SubstitutionService) Substitutor(ctx context.Context) (substitution.Substitutor, error) {
	pair, err := s.keys.KeyPair(ctx)
	if err != nil {
		return nil, err
	}
	return substitution.NewDecryptingSubstitutor(pair.DecryptionKey()), nil
}

// SubstituteDocument はドキュメントを置換した新しいツリーを返す。元のツリーは変更しない。
func (s *SubstitutionService) SubstituteDocument(ctx context.Context, doc *yaml.Node) (*yaml.Node, error) {
	sub, err := s.Substitutor(ctx)
	if err != nil {
		return nil, err
	}
	return substitution.SubstituteDocument(doc, sub)
}

// CheckResult はドキュメント検証の結果を表す。
type CheckResult struct {
	Placeholders int
	Failure      *substitution.StringSubstitutionError
}

// OK は全てのプレースホルダを復号できた場合にtrueを返す。
func (r CheckResult) OK() bool {
	return r.Failure == nil
}

// CheckDocument は全てのプレースホルダを復号できるか検証する。
// 置換の失敗は CheckResult.Failure に入り、error は鍵の読み込み失敗などに限られる。
func (s *SubstitutionService) CheckDocument(ctx context.Context, doc *yaml.Node) (CheckResult, error) {
	result := CheckResult{Placeholders: substitution.CountPlaceholders(doc)}

	_, err := s.SubstituteDocument(ctx, doc)
	if err == nil {
		return result, nil
	}

	var sse *substitution.StringSubstitutionError
	if errors.As(err, &sse) {
		result.Failure = sse
		return result, nil
	}
	return result, err
}

// ReplaceText はテキスト全体に対して置換を行う。ドキュメントとして解析しない。
func (s *SubstitutionService) ReplaceText(ctx context.Context, text string) (string, error) {
	sub, err := s.Substitutor(ctx)
	if err != nil {
		return "", err
	}
	return sub.Replace(text)
}
