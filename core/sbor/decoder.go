package sbor

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// CustomCodec decodes extension-defined custom values. A domain registers
// exactly one codec with the Decoder (e.g. the manifest package's codec for
// bucket/proof/reservation references and EntireWorktop).
type CustomCodec interface {
	DecodeBody(dec *Decoder, kind Kind) (CustomPayload, error)
}

// Decoder reads a canonical SBOR payload left to right. It never seeks
// backward and tracks depth so a maliciously or accidentally deep payload
// fails fast with ErrMaxDepthExceeded instead of blowing the Go stack.
type Decoder struct {
	data     []byte
	offset   int
	maxDepth int
	depth    int
	maxSize  int
	custom   CustomCodec
}

// NewDecoder wraps data for decoding. custom may be nil if the payload is
// known not to contain extension-defined values.
func NewDecoder(data []byte, maxDepth, maxSize int, custom CustomCodec) *Decoder {
	return &Decoder{data: data, maxDepth: maxDepth, maxSize: maxSize, custom: custom}
}

// Offset returns the current read position, useful for error reporting and
// for the traverser which shares this decoder's primitives.
func (d *Decoder) Offset() int { return d.offset }

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.data) - d.offset }

// dataSlice borrows data[start:end] without copying; used by the traverser to
// report the raw extent of a custom value it decoded but doesn't interpret.
func (d *Decoder) dataSlice(start, end int) ([]byte, error) {
	if start < 0 || end > len(d.data) || start > end {
		return nil, ErrUnexpectedEof
	}
	return d.data[start:end], nil
}

func (d *Decoder) readByte() (byte, error) {
	if d.offset >= len(d.data) {
		return 0, ErrUnexpectedEof
	}
	b := d.data[d.offset]
	d.offset++
	return b, nil
}

// ReadBytes reads exactly n bytes and returns a slice borrowed from the
// underlying input (not copied).
func (d *Decoder) ReadBytes(n int) ([]byte, error) {
	if n < 0 || d.offset+n > len(d.data) {
		return nil, ErrUnexpectedEof
	}
	b := d.data[d.offset : d.offset+n]
	d.offset += n
	return b, nil
}

// ReadSize reads an LEB128-style size prefix, capped at maxSize.
func (d *Decoder) ReadSize() (int, error) {
	return decodeSize(d.readByte, d.maxSize)
}

// ReadValueKind reads a single kind byte.
func (d *Decoder) ReadValueKind() (Kind, error) {
	b, err := d.readByte()
	if err != nil {
		return 0, err
	}
	return Kind(b), nil
}

// CheckPrefix verifies and consumes the leading payload-domain byte.
func (d *Decoder) CheckPrefix(expected byte) error {
	b, err := d.readByte()
	if err != nil {
		return err
	}
	if b != expected {
		return ErrInvalidPrefix
	}
	return nil
}

// CheckEnd fails with ErrExtraTrailingBytes unless every input byte has been
// consumed.
func (d *Decoder) CheckEnd() error {
	if d.offset != len(d.data) {
		return ErrExtraTrailingBytes
	}
	return nil
}

func (d *Decoder) pushDepth() error {
	if d.depth >= d.maxDepth {
		return ErrMaxDepthExceeded
	}
	d.depth++
	return nil
}

func (d *Decoder) popDepth() { d.depth-- }

// DecodeValue reads a kind byte then the matching body.
func (d *Decoder) DecodeValue() (Value, error) {
	kind, err := d.ReadValueKind()
	if err != nil {
		return nil, err
	}
	return d.DecodeValueBody(kind)
}

// ExpectValue reads a kind byte, checks it equals expected, then decodes the
// body — the common "I know what I want next" path used by typed decoders
// built on top of sbor (e.g. manifest argument decoding).
func (d *Decoder) ExpectValue(expected Kind) (Value, error) {
	kind, err := d.ReadValueKind()
	if err != nil {
		return nil, err
	}
	if kind != expected {
		return nil, &ErrUnexpectedValueKind{Expected: expected, Actual: kind}
	}
	return d.DecodeValueBody(kind)
}

// DecodeValueBody decodes a body whose kind is already known (no kind byte
// to read) — used for array elements and map keys/values.
func (d *Decoder) DecodeValueBody(kind Kind) (Value, error) {
	if n, ok := kind.FixedWidth(); ok {
		b, err := d.ReadBytes(n)
		if err != nil {
			return nil, err
		}
		return decodeFixed(kind, b)
	}
	switch kind {
	case KindString:
		return d.decodeString()
	case KindArray:
		return d.decodeArray()
	case KindTuple:
		return d.decodeTuple()
	case KindEnum:
		return d.decodeEnum()
	case KindMap:
		return d.decodeMap()
	default:
		if kind.IsCustom() {
			if d.custom == nil {
				return nil, fmt.Errorf("%w: no codec registered for kind %s", ErrCustomValue, kind)
			}
			payload, err := d.custom.DecodeBody(d, kind)
			if err != nil {
				return nil, err
			}
			return CustomValue{CustomKind: kind, Payload: payload}, nil
		}
		return nil, fmt.Errorf("%w: unknown kind %s", ErrCustomValue, kind)
	}
}

func decodeFixed(kind Kind, b []byte) (Value, error) {
	switch kind {
	case KindBool:
		switch b[0] {
		case 0:
			return BoolValue(false), nil
		case 1:
			return BoolValue(true), nil
		default:
			return nil, fmt.Errorf("%w: bool body %d", ErrCustomValue, b[0])
		}
	case KindI8:
		return I8Value(int8(b[0])), nil
	case KindI16:
		return I16Value(int16(binary.LittleEndian.Uint16(b))), nil
	case KindI32:
		return I32Value(int32(binary.LittleEndian.Uint32(b))), nil
	case KindI64:
		return I64Value(int64(binary.LittleEndian.Uint64(b))), nil
	case KindI128:
		var v I128Value
		copy(v[:], b)
		return v, nil
	case KindU8:
		return U8Value(b[0]), nil
	case KindU16:
		return U16Value(binary.LittleEndian.Uint16(b)), nil
	case KindU32:
		return U32Value(binary.LittleEndian.Uint32(b)), nil
	case KindU64:
		return U64Value(binary.LittleEndian.Uint64(b)), nil
	case KindU128:
		var v U128Value
		copy(v[:], b)
		return v, nil
	default:
		return nil, fmt.Errorf("%w: not a fixed-width kind %s", ErrCustomValue, kind)
	}
}

func (d *Decoder) decodeString() (Value, error) {
	n, err := d.ReadSize()
	if err != nil {
		return nil, err
	}
	b, err := d.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, ErrInvalidUtf8
	}
	return StringValue(string(b)), nil
}

func (d *Decoder) decodeArray() (Value, error) {
	if err := d.pushDepth(); err != nil {
		return nil, err
	}
	defer d.popDepth()
	elemKind, err := d.ReadValueKind()
	if err != nil {
		return nil, err
	}
	n, err := d.ReadSize()
	if err != nil {
		return nil, err
	}
	elems := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := d.DecodeValueBody(elemKind)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return ArrayValue{ElementKind: elemKind, Elements: elems}, nil
}

func (d *Decoder) decodeTuple() (Value, error) {
	if err := d.pushDepth(); err != nil {
		return nil, err
	}
	defer d.popDepth()
	n, err := d.ReadSize()
	if err != nil {
		return nil, err
	}
	elems := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := d.DecodeValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return TupleValue{Elements: elems}, nil
}

func (d *Decoder) decodeEnum() (Value, error) {
	if err := d.pushDepth(); err != nil {
		return nil, err
	}
	defer d.popDepth()
	disc, err := d.readByte()
	if err != nil {
		return nil, err
	}
	n, err := d.ReadSize()
	if err != nil {
		return nil, err
	}
	fields := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := d.DecodeValue()
		if err != nil {
			return nil, err
		}
		fields = append(fields, v)
	}
	return EnumValue{Discriminator: disc, Fields: fields}, nil
}

func (d *Decoder) decodeMap() (Value, error) {
	if err := d.pushDepth(); err != nil {
		return nil, err
	}
	defer d.popDepth()
	keyKind, err := d.ReadValueKind()
	if err != nil {
		return nil, err
	}
	valKind, err := d.ReadValueKind()
	if err != nil {
		return nil, err
	}
	n, err := d.ReadSize()
	if err != nil {
		return nil, err
	}
	entries := make([]MapEntry, 0, n)
	for i := 0; i < n; i++ {
		k, err := d.DecodeValueBody(keyKind)
		if err != nil {
			return nil, err
		}
		v, err := d.DecodeValueBody(valKind)
		if err != nil {
			return nil, err
		}
		entries = append(entries, MapEntry{Key: k, Value: v})
	}
	return MapValue{KeyKind: keyKind, ValKind: valKind, Entries: entries}, nil
}

// Decode is the one-shot convenience entry point: check prefix, decode one
// value, assert end-of-input.
func Decode(data []byte, prefix byte, maxDepth, maxSize int, custom CustomCodec) (Value, error) {
	d := NewDecoder(data, maxDepth, maxSize, custom)
	if err := d.CheckPrefix(prefix); err != nil {
		return nil, err
	}
	v, err := d.DecodeValue()
	if err != nil {
		return nil, err
	}
	if err := d.CheckEnd(); err != nil {
		return nil, err
	}
	return v, nil
}
