package manifest

import (
	"github.com/synnergy-labs/asset-runtime/core/resource"
	"github.com/synnergy-labs/asset-runtime/core/sbor"
)

// Invocation arguments are built from this small vocabulary: the fixed SBOR
// kinds for primitives, plus the five manifest-local reference kinds in
// refs.go. Decimal and resource addresses round-trip through their existing
// canonical string/byte forms rather than inventing yet more custom kinds —
// only the bucket/proof/reservation/named-address references and the
// EntireWorktop expression need to be extension values.

func DecimalArg(d resource.Decimal) sbor.Value { return sbor.StringValue(d.String()) }

func DecodeDecimalArg(v sbor.Value) (resource.Decimal, error) {
	s, ok := v.(sbor.StringValue)
	if !ok {
		return resource.Decimal{}, ErrArgsDecodeError
	}
	d, err := resource.ParseDecimal(string(s))
	if err != nil {
		return resource.Decimal{}, ErrArgsDecodeError
	}
	return d, nil
}

func ResourceArg(r resource.ResourceId) sbor.Value {
	elems := make([]sbor.Value, len(r))
	for i, b := range r {
		elems[i] = sbor.U8Value(b)
	}
	return sbor.ArrayValue{ElementKind: sbor.KindU8, Elements: elems}
}

func DecodeResourceArg(v sbor.Value) (resource.ResourceId, error) {
	a, ok := v.(sbor.ArrayValue)
	if !ok || len(a.Elements) != 30 {
		return resource.ResourceId{}, ErrArgsDecodeError
	}
	var r resource.ResourceId
	for i, el := range a.Elements {
		b, ok := el.(sbor.U8Value)
		if !ok {
			return resource.ResourceId{}, ErrArgsDecodeError
		}
		r[i] = byte(b)
	}
	return r, nil
}

// NonFungibleIdsArg encodes a set of local ids as Array<Tuple(kind, bytes)>.
func NonFungibleIdsArg(ids []resource.NonFungibleLocalId) sbor.Value {
	elems := make([]sbor.Value, len(ids))
	for i, id := range ids {
		bodyElems := make([]sbor.Value, len(id.Bytes()))
		for j, b := range id.Bytes() {
			bodyElems[j] = sbor.U8Value(b)
		}
		elems[i] = sbor.TupleValue{Elements: []sbor.Value{
			sbor.U8Value(id.Kind()),
			sbor.ArrayValue{ElementKind: sbor.KindU8, Elements: bodyElems},
		}}
	}
	return sbor.ArrayValue{ElementKind: sbor.KindTuple, Elements: elems}
}

func DecodeNonFungibleIdsArg(v sbor.Value) ([]resource.NonFungibleLocalId, error) {
	a, ok := v.(sbor.ArrayValue)
	if !ok {
		return nil, ErrArgsDecodeError
	}
	out := make([]resource.NonFungibleLocalId, 0, len(a.Elements))
	for _, el := range a.Elements {
		t, ok := el.(sbor.TupleValue)
		if !ok || len(t.Elements) != 2 {
			return nil, ErrArgsDecodeError
		}
		kindByte, ok := t.Elements[0].(sbor.U8Value)
		if !ok {
			return nil, ErrArgsDecodeError
		}
		bytesArr, ok := t.Elements[1].(sbor.ArrayValue)
		if !ok {
			return nil, ErrArgsDecodeError
		}
		raw := make([]byte, len(bytesArr.Elements))
		for i, be := range bytesArr.Elements {
			b, ok := be.(sbor.U8Value)
			if !ok {
				return nil, ErrArgsDecodeError
			}
			raw[i] = byte(b)
		}
		id, err := decodeLocalId(resource.NonFungibleIdKind(kindByte), raw)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func decodeLocalId(kind resource.NonFungibleIdKind, raw []byte) (resource.NonFungibleLocalId, error) {
	switch kind {
	case resource.NonFungibleIdInteger:
		var n uint64
		for _, b := range raw {
			n = n<<8 | uint64(b)
		}
		return resource.NewIntegerLocalId(n), nil
	case resource.NonFungibleIdString:
		return resource.NewStringLocalId(string(raw))
	case resource.NonFungibleIdBytes:
		return resource.NewBytesLocalId(raw)
	case resource.NonFungibleIdRUID:
		if len(raw) != 32 {
			return resource.NonFungibleLocalId{}, ErrArgsDecodeError
		}
		// RUIDs are generated, never parsed back into a fresh random draw;
		// a manifest argument only ever names one produced elsewhere, so
		// round-tripping its 32 bytes through NewRUID would silently
		// fabricate a different id. Manifest args never carry RUIDs for
		// this reason — reaching here is an encode-side bug.
		return resource.NonFungibleLocalId{}, ErrArgsDecodeError
	default:
		return resource.NonFungibleLocalId{}, ErrArgsDecodeError
	}
}

func BucketArg(h BucketHandle) sbor.Value {
	return sbor.CustomValue{CustomKind: KindBucketRef, Payload: BucketRefValue{Handle: h}}
}

func ProofArg(h ProofHandle) sbor.Value {
	return sbor.CustomValue{CustomKind: KindProofRef, Payload: ProofRefValue{Handle: h}}
}

func AddressReservationArg(h AddressReservationHandle) sbor.Value {
	return sbor.CustomValue{CustomKind: KindAddressReservationRef, Payload: AddressReservationRefValue{Handle: h}}
}

func NamedAddressArg(h NamedAddressHandle) sbor.Value {
	return sbor.CustomValue{CustomKind: KindNamedAddressRef, Payload: NamedAddressRefValue{Handle: h}}
}

func EntireWorktopArg() sbor.Value {
	return sbor.CustomValue{CustomKind: KindExpression, Payload: ExpressionValue{Expression: ExpressionEntireWorktop}}
}
