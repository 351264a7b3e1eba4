package sbor

import (
	"bytes"
	"testing"
)

const testMaxDepth = 32
const testMaxSize = DefaultMaxSize

func roundTrip(t *testing.T, v Value) Value {
	t.Helper()
	payload, err := Encode(PrefixScryptoPayload, v, testMaxDepth, testMaxSize)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(payload, PrefixScryptoPayload, testMaxDepth, testMaxSize, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return got
}

func TestRoundTripPrimitives(t *testing.T) {
	tests := []struct {
		name string
		v    Value
	}{
		{"bool true", BoolValue(true)},
		{"bool false", BoolValue(false)},
		{"i8", I8Value(-5)},
		{"i64 min", I64Value(-9223372036854775808)},
		{"u8", U8Value(255)},
		{"u64 max", U64Value(18446744073709551615)},
		{"string empty", StringValue("")},
		{"string utf8", StringValue("radé")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := roundTrip(t, tc.v)
			if got != tc.v {
				t.Fatalf("got %#v, want %#v", got, tc.v)
			}
		})
	}
}

// TestRoundTripTuple is the S1 scenario: a tuple of {U8, String, Array<U8>}
// must encode and decode back to exactly itself, byte-array children
// included.
func TestRoundTripTuple(t *testing.T) {
	original := TupleValue{Elements: []Value{
		U8Value(7),
		StringValue("pool"),
		ArrayValue{ElementKind: KindU8, Elements: []Value{U8Value(1), U8Value(2), U8Value(3)}},
	}}
	got := roundTrip(t, original)
	tup, ok := got.(TupleValue)
	if !ok {
		t.Fatalf("got %T, want TupleValue", got)
	}
	if len(tup.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(tup.Elements))
	}
	if tup.Elements[0] != U8Value(7) {
		t.Fatalf("element 0: got %#v", tup.Elements[0])
	}
	if tup.Elements[1] != StringValue("pool") {
		t.Fatalf("element 1: got %#v", tup.Elements[1])
	}
	arr, ok := tup.Elements[2].(ArrayValue)
	if !ok || arr.ElementKind != KindU8 || len(arr.Elements) != 3 {
		t.Fatalf("element 2: got %#v", tup.Elements[2])
	}
}

func TestRoundTripNestedContainers(t *testing.T) {
	original := MapValue{
		KeyKind: KindString,
		ValKind: KindArray,
		Entries: []MapEntry{
			{Key: StringValue("a"), Value: ArrayValue{ElementKind: KindU32, Elements: []Value{U32Value(1), U32Value(2)}}},
			{Key: StringValue("b"), Value: ArrayValue{ElementKind: KindU32, Elements: nil}},
		},
	}
	got := roundTrip(t, original)
	m, ok := got.(MapValue)
	if !ok || len(m.Entries) != 2 {
		t.Fatalf("got %#v", got)
	}
}

func TestDecodeInvalidPrefix(t *testing.T) {
	payload, _ := Encode(PrefixScryptoPayload, BoolValue(true), testMaxDepth, testMaxSize)
	_, err := Decode(payload, PrefixManifestPayload, testMaxDepth, testMaxSize, nil)
	if err != ErrInvalidPrefix {
		t.Fatalf("got %v, want ErrInvalidPrefix", err)
	}
}

func TestDecodeExtraTrailingBytes(t *testing.T) {
	payload, _ := Encode(PrefixScryptoPayload, BoolValue(true), testMaxDepth, testMaxSize)
	payload = append(payload, 0xff)
	_, err := Decode(payload, PrefixScryptoPayload, testMaxDepth, testMaxSize, nil)
	if err != ErrExtraTrailingBytes {
		t.Fatalf("got %v, want ErrExtraTrailingBytes", err)
	}
}

func TestDecodeInvalidUtf8(t *testing.T) {
	enc := NewEncoder(testMaxDepth, testMaxSize)
	enc.EncodePayloadPrefix(PrefixScryptoPayload)
	enc.buf.WriteByte(byte(KindString))
	sz, _ := encodeSize(2, testMaxSize)
	enc.buf.Write(sz)
	enc.buf.Write([]byte{0xff, 0xfe})
	_, err := Decode(enc.Bytes(), PrefixScryptoPayload, testMaxDepth, testMaxSize, nil)
	if err != ErrInvalidUtf8 {
		t.Fatalf("got %v, want ErrInvalidUtf8", err)
	}
}

func TestEncodeMaxDepthExceeded(t *testing.T) {
	var v Value = TupleValue{}
	for i := 0; i < 5; i++ {
		v = TupleValue{Elements: []Value{v}}
	}
	_, err := Encode(PrefixScryptoPayload, v, 3, testMaxSize)
	if err != ErrMaxDepthExceeded {
		t.Fatalf("got %v, want ErrMaxDepthExceeded", err)
	}
}

func TestArrayElementKindMismatch(t *testing.T) {
	v := ArrayValue{ElementKind: KindU8, Elements: []Value{U8Value(1), U32Value(2)}}
	_, err := Encode(PrefixScryptoPayload, v, testMaxDepth, testMaxSize)
	var mismatch *ErrUnexpectedValueKind
	if err == nil {
		t.Fatalf("expected error")
	}
	if !bytes.Contains([]byte(err.Error()), []byte("unexpected value kind")) {
		t.Fatalf("got %v, want ErrUnexpectedValueKind, err type %T", err, mismatch)
	}
}
