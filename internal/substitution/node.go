// Package substitution は構造化ドキュメントを走査し、文字列中の暗号化プレースホルダを復号する。
package substitution

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind はドキュメントノードの種類を表す。
type Kind int

const (
	KindMissing Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBoolean
	KindNull
	KindBinary
	KindForeign
)

var kindNames = map[Kind]string{
	KindMissing: "missing",
	KindObject:  "object",
	KindArray:   "array",
	KindString:  "string",
	KindNumber:  "number",
	KindBoolean: "boolean",
	KindNull:    "null",
	KindBinary:  "binary",
	KindForeign: "foreign",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindOf はyaml.v3のノードをドキュメントノードの種類に分類する。
// ドキュメントノードは透過的に扱い、その内容を分類する。
func KindOf(n *yaml.Node) Kind {
	n = unwrapDocument(n)
	if n == nil {
		return KindMissing
	}
	switch n.Kind {
	case yaml.MappingNode:
		return KindObject
	case yaml.SequenceNode:
		return KindArray
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str":
			return KindString
		case "!!int", "!!float":
			return KindNumber
		case "!!bool":
			return KindBoolean
		case "!!null":
			return KindNull
		case "!!binary":
			return KindBinary
		}
	}
	return KindForeign
}

func unwrapDocument(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	return n
}

// Visitor はノードの種類ごとに処理を定義する。
type Visitor[T any] interface {
	VisitObject(n *yaml.Node) (T, error)
	VisitArray(n *yaml.Node) (T, error)
	VisitString(n *yaml.Node) (T, error)
	VisitNumber(n *yaml.Node) (T, error)
	VisitBoolean(n *yaml.Node) (T, error)
	VisitNull(n *yaml.Node) (T, error)
	VisitMissing() (T, error)
	VisitBinary(n *yaml.Node) (T, error)
	VisitForeign(n *yaml.Node) (T, error)
}

// Dispatch はノードの種類に対応するVisitorのメソッドを呼び出す。
func Dispatch[T any](n *yaml.Node, v Visitor[T]) (T, error) {
	n = unwrapDocument(n)
	switch KindOf(n) {
	case KindObject:
		return v.VisitObject(n)
	case KindArray:
		return v.VisitArray(n)
	case KindString:
		return v.VisitString(n)
	case KindNumber:
		return v.VisitNumber(n)
	case KindBoolean:
		return v.VisitBoolean(n)
	case KindNull:
		return v.VisitNull(n)
	case KindBinary:
		return v.VisitBinary(n)
	case KindForeign:
		return v.VisitForeign(n)
	default:
		return v.VisitMissing()
	}
}
