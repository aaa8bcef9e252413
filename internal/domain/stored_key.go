package domain

import "time"

// StoredKey はデータベースに保存された鍵エンティティを表す。鍵素材はKMSで暗号化済み。
type StoredKey struct {
	ID         string
	Name       string
	WrappedKey []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// KeyDescription は鍵ペアの公開可能な情報を表す（秘密の鍵素材を含まない）。
type KeyDescription struct {
	Type        KeyType
	Algorithm   Algorithm
	Fingerprint string
	PublicKey   string // 非対称鍵の場合のみ
}
