// Package sbor implements the canonical binary value format used throughout
// the runtime: a self-describing, value-kind tagged encoding with a
// streaming, allocation-light traversal model (core/manifest is its main
// consumer).
package sbor

import "fmt"

// Kind identifies the shape of an encoded SBOR value. Codes are stable across
// releases; never renumber an existing constant.
type Kind byte

const (
	KindBool Kind = iota
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindString
	KindArray
	KindTuple
	KindEnum
	KindMap
)

// FirstCustomKind is the lowest value-kind code reserved for extension-defined
// custom values (manifest bucket/proof/reservation references, expressions,
// …). Kinds below it are the fixed built-in vocabulary above.
const FirstCustomKind Kind = 0x80

// IsCustom reports whether k is an extension-defined kind.
func (k Kind) IsCustom() bool { return k >= FirstCustomKind }

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindI8:
		return "I8"
	case KindI16:
		return "I16"
	case KindI32:
		return "I32"
	case KindI64:
		return "I64"
	case KindI128:
		return "I128"
	case KindU8:
		return "U8"
	case KindU16:
		return "U16"
	case KindU32:
		return "U32"
	case KindU64:
		return "U64"
	case KindU128:
		return "U128"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindTuple:
		return "Tuple"
	case KindEnum:
		return "Enum"
	case KindMap:
		return "Map"
	default:
		if k.IsCustom() {
			return fmt.Sprintf("Custom(0x%02x)", byte(k))
		}
		return fmt.Sprintf("Unknown(0x%02x)", byte(k))
	}
}

// FixedWidth returns the encoded body size in bytes for fixed-width
// primitive kinds, and ok=false for variable-length or container kinds.
func (k Kind) FixedWidth() (n int, ok bool) {
	switch k {
	case KindBool, KindI8, KindU8:
		return 1, true
	case KindI16, KindU16:
		return 2, true
	case KindI32, KindU32:
		return 4, true
	case KindI64, KindU64:
		return 8, true
	case KindI128, KindU128:
		return 16, true
	default:
		return 0, false
	}
}

// Canonical payload prefixes, distinct per encoding domain so payloads from
// one domain can never be mistaken for the other.
const (
	PrefixManifestPayload byte = 0x4d // 'M'
	PrefixScryptoPayload  byte = 0x5c
)
