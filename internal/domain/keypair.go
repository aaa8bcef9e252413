package domain

// KeyPair は暗号化鍵と復号鍵の組を表す。共通鍵方式では両者は同一になる。
type KeyPair struct {
	encryptionKey KeyWithType
	decryptionKey KeyWithType
}

// NewKeyPair は暗号化鍵と復号鍵から鍵ペアを生成する。
func NewKeyPair(encryptionKey, decryptionKey KeyWithType) KeyPair {
	return KeyPair{encryptionKey: encryptionKey, decryptionKey: decryptionKey}
}

// SymmetricKeyPair は単一の鍵を暗号化と復号の両方に使う鍵ペアを生成する。
func SymmetricKeyPair(key KeyWithType) KeyPair {
	return KeyPair{encryptionKey: key, decryptionKey: key}
}

// EncryptionKey は暗号化に使う鍵を返す。
func (p KeyPair) EncryptionKey() KeyWithType {
	return p.encryptionKey
}

// DecryptionKey は復号に使う鍵を返す。
func (p KeyPair) DecryptionKey() KeyWithType {
	return p.decryptionKey
}

// IsSymmetric は暗号化鍵と復号鍵が同一の場合にtrueを返す。
func (p KeyPair) IsSymmetric() bool {
	return p.encryptionKey.Equal(p.decryptionKey)
}
