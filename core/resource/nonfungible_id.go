package resource

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// NonFungibleIdKind is the closed set of local-id shapes a non-fungible
// resource is pinned to at creation.
type NonFungibleIdKind int

const (
	NonFungibleIdInteger NonFungibleIdKind = iota
	NonFungibleIdString
	NonFungibleIdBytes
	NonFungibleIdRUID
)

const (
	maxStringIdLen = 64
	maxBytesIdLen  = 64
)

// stringIdAlphabet is the restricted charset: ASCII alphanumerics plus
// underscore. Validation checks only membership and length; where the
// underscores appear is not checked.
const stringIdAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_"

// NonFungibleLocalId is one of the four wire shapes, stored canonically so
// two ids of the same kind compare equal iff Bytes() are equal.
type NonFungibleLocalId struct {
	kind    NonFungibleIdKind
	integer uint64
	str     string
	bytes   []byte
	ruid    [32]byte
}

func NewIntegerLocalId(n uint64) NonFungibleLocalId {
	return NonFungibleLocalId{kind: NonFungibleIdInteger, integer: n}
}

func NewStringLocalId(s string) (NonFungibleLocalId, error) {
	if len(s) == 0 || len(s) > maxStringIdLen {
		return NonFungibleLocalId{}, ErrStringIdInvalid
	}
	for _, r := range s {
		if r > 0x7f || !containsRune(stringIdAlphabet, byte(r)) {
			return NonFungibleLocalId{}, ErrStringIdInvalid
		}
	}
	return NonFungibleLocalId{kind: NonFungibleIdString, str: s}, nil
}

func containsRune(alphabet string, b byte) bool {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == b {
			return true
		}
	}
	return false
}

func NewBytesLocalId(b []byte) (NonFungibleLocalId, error) {
	if len(b) == 0 || len(b) > maxBytesIdLen {
		return NonFungibleLocalId{}, ErrBytesIdInvalid
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return NonFungibleLocalId{kind: NonFungibleIdBytes, bytes: cp}, nil
}

// NewRUID generates a fresh 32-byte random local id. Two uuid.New() draws
// back it, since a RUID is twice a UUID's width.
func NewRUID() NonFungibleLocalId {
	var id NonFungibleLocalId
	id.kind = NonFungibleIdRUID
	a, b := uuid.New(), uuid.New()
	copy(id.ruid[0:16], a[:])
	copy(id.ruid[16:32], b[:])
	return id
}

func (id NonFungibleLocalId) Kind() NonFungibleIdKind { return id.kind }

// Bytes returns the canonical byte encoding used both for SBOR custom-value
// bodies and as a map/sorted-index key.
func (id NonFungibleLocalId) Bytes() []byte {
	switch id.kind {
	case NonFungibleIdInteger:
		b := make([]byte, 8)
		for i := 0; i < 8; i++ {
			b[7-i] = byte(id.integer >> (8 * i))
		}
		return b
	case NonFungibleIdString:
		return []byte(id.str)
	case NonFungibleIdBytes:
		return id.bytes
	case NonFungibleIdRUID:
		out := make([]byte, 32)
		copy(out, id.ruid[:])
		return out
	default:
		return nil
	}
}

func (id NonFungibleLocalId) Equal(o NonFungibleLocalId) bool {
	if id.kind != o.kind {
		return false
	}
	switch id.kind {
	case NonFungibleIdInteger:
		return id.integer == o.integer
	case NonFungibleIdString:
		return id.str == o.str
	case NonFungibleIdBytes:
		return string(id.bytes) == string(o.bytes)
	case NonFungibleIdRUID:
		return id.ruid == o.ruid
	default:
		return false
	}
}

func (id NonFungibleLocalId) String() string {
	switch id.kind {
	case NonFungibleIdInteger:
		return fmt.Sprintf("#%d#", id.integer)
	case NonFungibleIdString:
		return fmt.Sprintf("<%s>", id.str)
	case NonFungibleIdBytes:
		return fmt.Sprintf("[%s]", hex.EncodeToString(id.bytes))
	case NonFungibleIdRUID:
		return fmt.Sprintf("{%s}", hex.EncodeToString(id.ruid[:]))
	default:
		return "<invalid>"
	}
}

// MarshalJSON renders the id in its display string form, not its internal
// field layout.
func (id NonFungibleLocalId) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}
