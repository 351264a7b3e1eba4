package sbor

// Value is the closed set of SBOR value shapes. Rather than an
// open-ended interface hierarchy, every concrete shape below implements
// Value with a dense, statically known type switch — the dispatch style
// used for the manifest instruction set (see core/manifest) applies here
// too.
type Value interface {
	ValueKind() Kind
	isValue()
}

type BoolValue bool

func (BoolValue) ValueKind() Kind { return KindBool }
func (BoolValue) isValue()        {}

type I8Value int8

func (I8Value) ValueKind() Kind { return KindI8 }
func (I8Value) isValue()        {}

type I16Value int16

func (I16Value) ValueKind() Kind { return KindI16 }
func (I16Value) isValue()        {}

type I32Value int32

func (I32Value) ValueKind() Kind { return KindI32 }
func (I32Value) isValue()        {}

type I64Value int64

func (I64Value) ValueKind() Kind { return KindI64 }
func (I64Value) isValue()        {}

// I128Value holds a signed 128-bit integer as two's-complement little-endian
// bytes, matching the wire body exactly (no big.Int round trip needed).
type I128Value [16]byte

func (I128Value) ValueKind() Kind { return KindI128 }
func (I128Value) isValue()        {}

type U8Value uint8

func (U8Value) ValueKind() Kind { return KindU8 }
func (U8Value) isValue()        {}

type U16Value uint16

func (U16Value) ValueKind() Kind { return KindU16 }
func (U16Value) isValue()        {}

type U32Value uint32

func (U32Value) ValueKind() Kind { return KindU32 }
func (U32Value) isValue()        {}

type U64Value uint64

func (U64Value) ValueKind() Kind { return KindU64 }
func (U64Value) isValue()        {}

type U128Value [16]byte

func (U128Value) ValueKind() Kind { return KindU128 }
func (U128Value) isValue()        {}

type StringValue string

func (StringValue) ValueKind() Kind { return KindString }
func (StringValue) isValue()        {}

// ArrayValue is a homogeneous sequence; ElementKind is the declared kind of
// every element (omitted per-element on the wire).
type ArrayValue struct {
	ElementKind Kind
	Elements    []Value
}

func (ArrayValue) ValueKind() Kind { return KindArray }
func (ArrayValue) isValue()        {}

// TupleValue is a heterogeneous fixed-length sequence; each child carries
// its own kind byte on the wire.
type TupleValue struct {
	Elements []Value
}

func (TupleValue) ValueKind() Kind { return KindTuple }
func (TupleValue) isValue()        {}

// EnumValue is a single variant of a closed, wire-stable discriminator
// space; Fields are the variant's payload, each carrying its own kind byte.
type EnumValue struct {
	Discriminator byte
	Fields        []Value
}

func (EnumValue) ValueKind() Kind { return KindEnum }
func (EnumValue) isValue()        {}

// MapEntry is one K,V pair of a MapValue. Insertion order is preserved; the
// codec never reorders entries.
type MapEntry struct {
	Key   Value
	Value Value
}

type MapValue struct {
	KeyKind Kind
	ValKind Kind
	Entries []MapEntry
}

func (MapValue) ValueKind() Kind { return KindMap }
func (MapValue) isValue()        {}

// CustomValue carries an extension-defined payload (manifest bucket/proof/
// address-reservation references, the EntireWorktop expression, …). The
// extension owns encode/decode of Payload via the Codec it registers.
type CustomValue struct {
	CustomKind Kind
	Payload    CustomPayload
}

func (c CustomValue) ValueKind() Kind { return c.CustomKind }
func (CustomValue) isValue()          {}

// CustomPayload is implemented by every extension-defined custom value type.
// Encode writes the payload body (no kind byte — the caller already wrote
// it); Decode is provided per-kind by a CustomCodec (see decoder.go).
type CustomPayload interface {
	EncodeBody(enc *Encoder) error
}
