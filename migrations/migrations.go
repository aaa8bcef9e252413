// Package migrations はバイナリに埋め込まれたスキーママイグレーションを提供する。
package migrations

import "embed"

// FS は {version}_{name}.sql 形式のマイグレーションファイルを含む。
//
//go:embed *.sql
var FS embed.FS
