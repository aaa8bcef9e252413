package encryption

import (
	"crypto"
	_ "crypto/sha1"
	_ "crypto/sha256"
	"fmt"
)

// HashAlgorithm はRSA-OAEPのダイジェストとMGF1に使うハッシュアルゴリズム。
type HashAlgorithm string

const (
	SHA1   HashAlgorithm = "SHA-1"
	SHA256 HashAlgorithm = "SHA-256"
)

// UnmarshalText は既知のハッシュ名のみ受け付ける。
func (h *HashAlgorithm) UnmarshalText(b []byte) error {
	switch alg := HashAlgorithm(b); alg {
	case SHA1, SHA256:
		*h = alg
		return nil
	}
	return fmt.Errorf("unknown hash algorithm %q", b)
}

func (h HashAlgorithm) cryptoHash() (crypto.Hash, error) {
	switch h {
	case SHA1:
		return crypto.SHA1, nil
	case SHA256:
		return crypto.SHA256, nil
	}
	return 0, fmt.Errorf("unknown hash algorithm %q", string(h))
}
