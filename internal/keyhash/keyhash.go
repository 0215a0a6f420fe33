// Package keyhash derives fixed-length storage keys from encoded key
// material.
package keyhash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key returns a deterministic storage key: prefix plus a short hash of
// the encoded key bytes.
func Key(prefix string, encoded []byte) string {
	sum := sha256.Sum256(encoded)
	return prefix + ":" + hex.EncodeToString(sum[:8])
}
