package sbor

import (
	"bytes"
	"encoding/binary"
)

// Encoder produces the canonical byte encoding of a Value tree. There is
// exactly one legal encoding per logical value; Encoder never makes a
// choice that would admit a second one (e.g. it never reorders map entries).
type Encoder struct {
	buf      bytes.Buffer
	maxDepth int
	depth    int
	maxSize  int
}

// NewEncoder creates an Encoder bounding container nesting at maxDepth and
// any single size prefix at maxSize (use DefaultMaxSize unless a tighter
// budget is configured — see pkg/config Kernel.MaxSborDepth/MaxSizeBytes).
func NewEncoder(maxDepth, maxSize int) *Encoder {
	return &Encoder{maxDepth: maxDepth, maxSize: maxSize}
}

// Bytes returns the encoded payload produced so far.
func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

// EncodePayloadPrefix writes the single leading domain-prefix byte.
func (e *Encoder) EncodePayloadPrefix(prefix byte) {
	e.buf.WriteByte(prefix)
}

func (e *Encoder) pushDepth() error {
	if e.depth >= e.maxDepth {
		return ErrMaxDepthExceeded
	}
	e.depth++
	return nil
}

func (e *Encoder) popDepth() { e.depth-- }

// EncodeValue writes a value preceded by its kind byte. Use EncodeValueBody
// to omit the kind byte where context already implies it (array elements,
// map keys/values).
func (e *Encoder) EncodeValue(v Value) error {
	e.buf.WriteByte(byte(v.ValueKind()))
	return e.EncodeValueBody(v)
}

// EncodeValueBody writes the body only, no kind byte.
func (e *Encoder) EncodeValueBody(v Value) error {
	switch val := v.(type) {
	case BoolValue:
		if val {
			e.buf.WriteByte(1)
		} else {
			e.buf.WriteByte(0)
		}
	case I8Value:
		e.buf.WriteByte(byte(val))
	case I16Value:
		e.writeFixed(2, func(b []byte) { binary.LittleEndian.PutUint16(b, uint16(val)) })
	case I32Value:
		e.writeFixed(4, func(b []byte) { binary.LittleEndian.PutUint32(b, uint32(val)) })
	case I64Value:
		e.writeFixed(8, func(b []byte) { binary.LittleEndian.PutUint64(b, uint64(val)) })
	case I128Value:
		e.buf.Write(val[:])
	case U8Value:
		e.buf.WriteByte(byte(val))
	case U16Value:
		e.writeFixed(2, func(b []byte) { binary.LittleEndian.PutUint16(b, uint16(val)) })
	case U32Value:
		e.writeFixed(4, func(b []byte) { binary.LittleEndian.PutUint32(b, uint32(val)) })
	case U64Value:
		e.writeFixed(8, func(b []byte) { binary.LittleEndian.PutUint64(b, uint64(val)) })
	case U128Value:
		e.buf.Write(val[:])
	case StringValue:
		return e.encodeSizePrefixed([]byte(val))
	case ArrayValue:
		return e.encodeArray(val)
	case TupleValue:
		return e.encodeTuple(val)
	case EnumValue:
		return e.encodeEnum(val)
	case MapValue:
		return e.encodeMap(val)
	case CustomValue:
		return val.Payload.EncodeBody(e)
	default:
		return ErrCustomValue
	}
	return nil
}

func (e *Encoder) writeFixed(n int, fill func([]byte)) {
	b := make([]byte, n)
	fill(b)
	e.buf.Write(b)
}

func (e *Encoder) encodeSizePrefixed(data []byte) error {
	sz, err := encodeSize(len(data), e.maxSize)
	if err != nil {
		return err
	}
	e.buf.Write(sz)
	e.buf.Write(data)
	return nil
}

func (e *Encoder) encodeArray(a ArrayValue) error {
	if err := e.pushDepth(); err != nil {
		return err
	}
	defer e.popDepth()
	e.buf.WriteByte(byte(a.ElementKind))
	sz, err := encodeSize(len(a.Elements), e.maxSize)
	if err != nil {
		return err
	}
	e.buf.Write(sz)
	// Byte-array fast path still goes through EncodeValueBody uniformly;
	// canonicality only cares about the resulting bytes, not how we got
	// there.
	for _, el := range a.Elements {
		if el.ValueKind() != a.ElementKind {
			return &ErrUnexpectedValueKind{Expected: a.ElementKind, Actual: el.ValueKind()}
		}
		if err := e.EncodeValueBody(el); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeTuple(t TupleValue) error {
	if err := e.pushDepth(); err != nil {
		return err
	}
	defer e.popDepth()
	sz, err := encodeSize(len(t.Elements), e.maxSize)
	if err != nil {
		return err
	}
	e.buf.Write(sz)
	for _, el := range t.Elements {
		if err := e.EncodeValue(el); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeEnum(v EnumValue) error {
	if err := e.pushDepth(); err != nil {
		return err
	}
	defer e.popDepth()
	e.buf.WriteByte(v.Discriminator)
	sz, err := encodeSize(len(v.Fields), e.maxSize)
	if err != nil {
		return err
	}
	e.buf.Write(sz)
	for _, f := range v.Fields {
		if err := e.EncodeValue(f); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeMap(m MapValue) error {
	if err := e.pushDepth(); err != nil {
		return err
	}
	defer e.popDepth()
	e.buf.WriteByte(byte(m.KeyKind))
	e.buf.WriteByte(byte(m.ValKind))
	sz, err := encodeSize(len(m.Entries), e.maxSize)
	if err != nil {
		return err
	}
	e.buf.Write(sz)
	for _, ent := range m.Entries {
		if ent.Key.ValueKind() != m.KeyKind {
			return &ErrUnexpectedValueKind{Expected: m.KeyKind, Actual: ent.Key.ValueKind()}
		}
		if ent.Value.ValueKind() != m.ValKind {
			return &ErrUnexpectedValueKind{Expected: m.ValKind, Actual: ent.Value.ValueKind()}
		}
		if err := e.EncodeValueBody(ent.Key); err != nil {
			return err
		}
		if err := e.EncodeValueBody(ent.Value); err != nil {
			return err
		}
	}
	return nil
}

// Encode is the one-shot convenience entry point: payload prefix + value.
func Encode(prefix byte, v Value, maxDepth, maxSize int) ([]byte, error) {
	enc := NewEncoder(maxDepth, maxSize)
	enc.EncodePayloadPrefix(prefix)
	if err := enc.EncodeValue(v); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}
