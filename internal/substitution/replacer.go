package substitution

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

// Replacer は文字列ノードをSubstitutorで置換した新しいツリーを生成するVisitor。
// 元のツリーは変更しない。
type Replacer struct {
	substitutor Substitutor
	anchors     map[*yaml.Node]*yaml.Node
}

// NewReplacer は新しいReplacerを生成する。
func NewReplacer(s Substitutor) *Replacer {
	return &Replacer{
		substitutor: s,
		anchors:     make(map[*yaml.Node]*yaml.Node),
	}
}

// VisitObject は各値を文書順に置換する。失敗した場合はフィールド名を位置に追加する。
func (r *Replacer) VisitObject(n *yaml.Node) (*yaml.Node, error) {
	content := make([]*yaml.Node, 0, len(n.Content))
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		replaced, err := Dispatch[*yaml.Node](value, r)
		if err != nil {
			return nil, extendError(err, func(e *StringSubstitutionError) *StringSubstitutionError {
				return e.ExtendField(key.Value)
			})
		}
		content = append(content, key, replaced)
	}

	out := *n
	out.Content = content
	return r.remember(n, &out), nil
}

// VisitArray は各要素を添字順に置換する。失敗した場合は添字を位置に追加する。
func (r *Replacer) VisitArray(n *yaml.Node) (*yaml.Node, error) {
	content := make([]*yaml.Node, 0, len(n.Content))
	for i, element := range n.Content {
		replaced, err := Dispatch[*yaml.Node](element, r)
		if err != nil {
			return nil, extendError(err, func(e *StringSubstitutionError) *StringSubstitutionError {
				return e.ExtendIndex(i)
			})
		}
		content = append(content, replaced)
	}

	out := *n
	out.Content = content
	return r.remember(n, &out), nil
}

// VisitString は文字列をSubstitutorで置換する。
func (r *Replacer) VisitString(n *yaml.Node) (*yaml.Node, error) {
	replaced, err := r.substitutor.Replace(n.Value)
	if err != nil {
		return nil, err
	}
	if replaced == n.Value {
		return r.remember(n, n), nil
	}

	out := *n
	out.Value = replaced
	// 平文が数値などに解釈されないよう文字列タグを明示する
	out.Tag = "!!str"
	if strings.Contains(replaced, "\n") && out.Style == 0 {
		out.Style = yaml.LiteralStyle
	}
	return r.remember(n, &out), nil
}

func (r *Replacer) VisitNumber(n *yaml.Node) (*yaml.Node, error)  { return n, nil }
func (r *Replacer) VisitBoolean(n *yaml.Node) (*yaml.Node, error) { return n, nil }
func (r *Replacer) VisitNull(n *yaml.Node) (*yaml.Node, error)    { return n, nil }
func (r *Replacer) VisitMissing() (*yaml.Node, error)             { return nil, nil }
func (r *Replacer) VisitBinary(n *yaml.Node) (*yaml.Node, error)  { return n, nil }

// VisitForeign はノードをそのまま返す。エイリアスは置換後のアンカーを指すように付け替える。
func (r *Replacer) VisitForeign(n *yaml.Node) (*yaml.Node, error) {
	if n.Kind != yaml.AliasNode || n.Alias == nil {
		return n, nil
	}
	target, ok := r.anchors[n.Alias]
	if !ok {
		var err error
		if target, err = Dispatch[*yaml.Node](n.Alias, r); err != nil {
			return nil, err
		}
	}
	out := *n
	out.Alias = target
	return &out, nil
}

func (r *Replacer) remember(original, replaced *yaml.Node) *yaml.Node {
	if original.Anchor != "" {
		r.anchors[original] = replaced
	}
	return replaced
}

func extendError(err error, extend func(*StringSubstitutionError) *StringSubstitutionError) error {
	var sse *StringSubstitutionError
	if errors.As(err, &sse) {
		return extend(sse)
	}
	return err
}

// SubstituteDocument はドキュメント中のすべての文字列ノードを置換した新しいツリーを返す。
// 1つでも失敗した場合は部分的な結果を返さず、最初のエラーを返す。
func SubstituteDocument(n *yaml.Node, s Substitutor) (*yaml.Node, error) {
	out, err := Dispatch[*yaml.Node](n, NewReplacer(s))
	if err != nil {
		return nil, err
	}
	if n != nil && n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		doc := *n
		doc.Content = []*yaml.Node{out}
		return &doc, nil
	}
	if out == nil {
		return n, nil
	}
	return out, nil
}
