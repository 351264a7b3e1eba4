package manifest

import (
	"encoding/binary"

	"github.com/synnergy-labs/asset-runtime/core/sbor"
)

// Custom SBOR kinds an instruction's argument tree may embed, on top of the
// fixed built-in vocabulary. Each is a manifest-local reference,
// resolved against the handle namespaces the manifest itself allocates.
const (
	KindBucketRef             sbor.Kind = sbor.FirstCustomKind
	KindProofRef              sbor.Kind = sbor.FirstCustomKind + 1
	KindAddressReservationRef sbor.Kind = sbor.FirstCustomKind + 2
	KindNamedAddressRef       sbor.Kind = sbor.FirstCustomKind + 3
	KindExpression            sbor.Kind = sbor.FirstCustomKind + 4
)

// Expression is the closed set of manifest expressions; only EntireWorktop
// is valid, and only inside invocation arguments.
type Expression byte

const ExpressionEntireWorktop Expression = 0

type BucketRefValue struct{ Handle BucketHandle }

func (v BucketRefValue) EncodeBody(enc *sbor.Encoder) error {
	return enc.EncodeValueBody(sbor.U32Value(v.Handle))
}

type ProofRefValue struct{ Handle ProofHandle }

func (v ProofRefValue) EncodeBody(enc *sbor.Encoder) error {
	return enc.EncodeValueBody(sbor.U32Value(v.Handle))
}

type AddressReservationRefValue struct{ Handle AddressReservationHandle }

func (v AddressReservationRefValue) EncodeBody(enc *sbor.Encoder) error {
	return enc.EncodeValueBody(sbor.U32Value(v.Handle))
}

type NamedAddressRefValue struct{ Handle NamedAddressHandle }

func (v NamedAddressRefValue) EncodeBody(enc *sbor.Encoder) error {
	return enc.EncodeValueBody(sbor.U32Value(v.Handle))
}

type ExpressionValue struct{ Expression Expression }

func (v ExpressionValue) EncodeBody(enc *sbor.Encoder) error {
	return enc.EncodeValueBody(sbor.U8Value(v.Expression))
}

// Codec decodes the manifest's extension values; it is the sbor.CustomCodec
// registered with every Decoder/Traverser built over manifest argument
// payloads.
type Codec struct{}

func (Codec) DecodeBody(dec *sbor.Decoder, kind sbor.Kind) (sbor.CustomPayload, error) {
	switch kind {
	case KindBucketRef:
		n, err := readU32(dec)
		if err != nil {
			return nil, err
		}
		return BucketRefValue{Handle: BucketHandle(n)}, nil
	case KindProofRef:
		n, err := readU32(dec)
		if err != nil {
			return nil, err
		}
		return ProofRefValue{Handle: ProofHandle(n)}, nil
	case KindAddressReservationRef:
		n, err := readU32(dec)
		if err != nil {
			return nil, err
		}
		return AddressReservationRefValue{Handle: AddressReservationHandle(n)}, nil
	case KindNamedAddressRef:
		n, err := readU32(dec)
		if err != nil {
			return nil, err
		}
		return NamedAddressRefValue{Handle: NamedAddressHandle(n)}, nil
	case KindExpression:
		b, err := dec.ReadBytes(1)
		if err != nil {
			return nil, err
		}
		return ExpressionValue{Expression: Expression(b[0])}, nil
	default:
		return nil, ErrArgsDecodeError
	}
}

func readU32(dec *sbor.Decoder) (uint32, error) {
	b, err := dec.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
