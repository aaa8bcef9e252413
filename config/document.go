package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"encrypted-config-value/internal/substitution"
)

// DocumentError は設定ファイル内の置換できなかった値を表す。
type DocumentError struct {
	Path string
	Err  *substitution.StringSubstitutionError
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s has an error: The value '%s' for field '%s' could not be replaced",
		e.Path, e.Err.Value(), e.Err.Field())
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// ParseDocument はYAMLまたはJSONのバイト列をノードツリーに解析する。
func ParseDocument(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &doc, nil
}

// LoadDocument は設定ファイルを読み込み、暗号化プレースホルダを置換したツリーを返す。
func LoadDocument(path string, s substitution.Substitutor) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	replaced, err := substitution.SubstituteDocument(doc, s)
	if err != nil {
		var sse *substitution.StringSubstitutionError
		if errors.As(err, &sse) {
			return nil, &DocumentError{Path: path, Err: sse}
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return replaced, nil
}
