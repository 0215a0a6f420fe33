package memo

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// KeyCodec serializes key values to bytes for hashing. Encodings must
// be deterministic: equal keys must produce equal bytes.
type KeyCodec interface {
	EncodeKey(v any) ([]byte, error)
}

// CBORKey encodes keys with RFC 8949 Core Deterministic encoding,
// giving byte-for-byte stable output for hashing. The zero value is
// NOT ready to use. Construct with NewCBORKey or MustCBORKey.
type CBORKey struct {
	enc cbor.EncMode
}

var _ KeyCodec = CBORKey{}

func NewCBORKey() (CBORKey, error) {
	eo := cbor.CoreDetEncOptions()
	eo.Time = cbor.TimeRFC3339Nano
	em, err := eo.EncMode()
	if err != nil {
		return CBORKey{}, err
	}
	return CBORKey{enc: em}, nil
}

// MustCBORKey is NewCBORKey that panics on error.
func MustCBORKey() CBORKey {
	c, err := NewCBORKey()
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBORKey) EncodeKey(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

// MsgpackKey encodes keys with msgpack. Compact and fast; map-typed
// keys are not order-stable under msgpack, so prefer CBORKey for keys
// containing maps. The zero value is ready to use.
type MsgpackKey struct{}

var _ KeyCodec = MsgpackKey{}

func (MsgpackKey) EncodeKey(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}
