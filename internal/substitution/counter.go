package substitution

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// placeholderCounter は文字列ノード中の暗号化プレースホルダを数えるVisitor。
type placeholderCounter struct{}

func (c placeholderCounter) VisitObject(n *yaml.Node) (int, error) {
	total := 0
	for i := 1; i < len(n.Content); i += 2 {
		count, _ := Dispatch[int](n.Content[i], c)
		total += count
	}
	return total, nil
}

func (c placeholderCounter) VisitArray(n *yaml.Node) (int, error) {
	total := 0
	for _, element := range n.Content {
		count, _ := Dispatch[int](element, c)
		total += count
	}
	return total, nil
}

func (placeholderCounter) VisitString(n *yaml.Node) (int, error) {
	return strings.Count(n.Value, placeholderPrefix), nil
}

func (placeholderCounter) VisitNumber(*yaml.Node) (int, error)  { return 0, nil }
func (placeholderCounter) VisitBoolean(*yaml.Node) (int, error) { return 0, nil }
func (placeholderCounter) VisitNull(*yaml.Node) (int, error)    { return 0, nil }
func (placeholderCounter) VisitMissing() (int, error)           { return 0, nil }
func (placeholderCounter) VisitBinary(*yaml.Node) (int, error)  { return 0, nil }
func (placeholderCounter) VisitForeign(*yaml.Node) (int, error) { return 0, nil }

// CountPlaceholders はドキュメント中の暗号化プレースホルダの数を返す。エイリアスは数えない。
func CountPlaceholders(n *yaml.Node) int {
	count, _ := Dispatch[int](n, placeholderCounter{})
	return count
}
