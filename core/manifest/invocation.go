package manifest

import (
	"github.com/synnergy-labs/asset-runtime/core/resource"
	"github.com/synnergy-labs/asset-runtime/core/sbor"
)

// gatherInvocationInputs walks an invocation's argument tree collecting
// every bucket reference (consumed from the worktop's tracked
// buckets) and EntireWorktop expression (draining the whole worktop) it
// finds, however deeply nested inside arrays/tuples/enums/maps.
func (a *Analyzer) gatherInvocationInputs(args sbor.TupleValue) ([]InvocationIo, error) {
	var refs []sbor.CustomValue
	collectCustomValues(args, &refs)

	var inputs []InvocationIo
	for _, ref := range refs {
		switch p := ref.Payload.(type) {
		case BucketRefValue:
			content, ok := a.buckets[p.Handle]
			if !ok {
				return nil, ErrBucketDoesntExist
			}
			delete(a.buckets, p.Handle)
			if content.Fungible {
				inputs = append(inputs, InvocationIo{Kind: IoFungible, Resource: content.Resource, Amount: content.Amount})
			} else {
				inputs = append(inputs, InvocationIo{Kind: IoNonFungible, Resource: content.Resource, NonFungible: content.NonFungible})
			}
		case ExpressionValue:
			if p.Expression != ExpressionEntireWorktop {
				continue
			}
			for r, bound := range a.fungible {
				inputs = append(inputs, InvocationIo{Kind: IoFungible, Resource: r, Amount: bound})
			}
			for r, bound := range a.nonFungible {
				inputs = append(inputs, InvocationIo{Kind: IoNonFungible, Resource: r, NonFungible: bound})
			}
			a.fungible = make(map[resource.ResourceId]AmountBound)
			a.nonFungible = make(map[resource.ResourceId]NonFungibleBounds)
		}
	}
	return inputs, nil
}

// collectCustomValues recurses through v's container structure, appending
// every extension-defined (manifest-reference or expression) value found.
func collectCustomValues(v sbor.Value, out *[]sbor.CustomValue) {
	switch val := v.(type) {
	case sbor.CustomValue:
		*out = append(*out, val)
	case sbor.ArrayValue:
		for _, el := range val.Elements {
			collectCustomValues(el, out)
		}
	case sbor.TupleValue:
		for _, el := range val.Elements {
			collectCustomValues(el, out)
		}
	case sbor.EnumValue:
		for _, el := range val.Fields {
			collectCustomValues(el, out)
		}
	case sbor.MapValue:
		for _, ent := range val.Entries {
			collectCustomValues(ent.Key, out)
			collectCustomValues(ent.Value, out)
		}
	}
}

// interpretTypedInvocation recognizes a fixed set of native blueprint calls
// and computes their output bounds deterministically where possible: account
// withdraw/deposit (exact and batched) and the authorized-depositor-guarded
// try_deposit_or_refund/try_deposit_or_abort entry points, fungible/
// non-fungible mint/burn, and pool contribute/redeem. A call can be
// recognized (its shape matches a known native method) yet still have an
// outputUnknown result, when the output amount depends on state the
// manifest itself does not encode (a pool's live reserves, an account's
// deposit-rule/authorized-depositor state at execution time). Anything
// unrecognized is also reported outputUnknown, so the caller always emits
// a single Unknown output rather than silently assuming zero outputs.
func interpretTypedInvocation(target invocationTarget, args sbor.TupleValue) (recognized, outputUnknown bool, outputs []InvocationIo) {
	switch target.Blueprint {
	case "Account":
		switch target.Method {
		case "withdraw":
			if len(args.Elements) != 2 {
				return false, true, nil
			}
			r, err := DecodeResourceArg(args.Elements[0])
			if err != nil {
				return false, true, nil
			}
			amt, err := DecodeDecimalArg(args.Elements[1])
			if err != nil {
				return false, true, nil
			}
			return true, false, []InvocationIo{{Kind: IoFungible, Resource: r, Amount: ExactBound(amt)}}
		case "withdraw_non_fungibles":
			if len(args.Elements) != 2 {
				return false, true, nil
			}
			r, err := DecodeResourceArg(args.Elements[0])
			if err != nil {
				return false, true, nil
			}
			ids, err := DecodeNonFungibleIdsArg(args.Elements[1])
			if err != nil {
				return false, true, nil
			}
			return true, false, []InvocationIo{{Kind: IoNonFungible, Resource: r, NonFungible: ExactNonFungibleBounds(ids)}}
		case "deposit", "deposit_batch":
			// Consumes bucket(s) already gathered as inputs; produces
			// nothing onto the worktop.
			return true, false, nil
		case "try_deposit_or_refund", "try_deposit_batch_or_refund", "try_deposit_or_abort", "try_deposit_batch_or_abort":
			// Whether the bucket(s) land in the vault or come back to the
			// worktop depends on the account's deposit rule and
			// authorized-depositor badge set at execution time (see
			// core/account) — not statically computable here.
			return true, true, nil
		}
	case "FungibleResourceManager":
		switch target.Method {
		case "mint":
			if len(args.Elements) != 2 {
				return false, true, nil
			}
			r, err := DecodeResourceArg(args.Elements[0])
			if err != nil {
				return false, true, nil
			}
			amt, err := DecodeDecimalArg(args.Elements[1])
			if err != nil {
				return false, true, nil
			}
			return true, false, []InvocationIo{{Kind: IoFungible, Resource: r, Amount: ExactBound(amt)}}
		case "burn":
			return true, false, nil
		}
	case "NonFungibleResourceManager":
		switch target.Method {
		case "mint":
			if len(args.Elements) != 2 {
				return false, true, nil
			}
			r, err := DecodeResourceArg(args.Elements[0])
			if err != nil {
				return false, true, nil
			}
			ids, err := DecodeNonFungibleIdsArg(args.Elements[1])
			if err != nil {
				return false, true, nil
			}
			return true, false, []InvocationIo{{Kind: IoNonFungible, Resource: r, NonFungible: ExactNonFungibleBounds(ids)}}
		case "mint_ruid":
			if len(args.Elements) != 1 {
				return false, true, nil
			}
			r, err := DecodeResourceArg(args.Elements[0])
			if err != nil {
				return false, true, nil
			}
			// RUIDs are generated at mint time; the count is whatever the
			// caller asked for but the ids themselves are not statically
			// known.
			return true, true, []InvocationIo{{Kind: IoNonFungible, Resource: r, NonFungible: UnknownNonFungibleBounds()}}
		case "burn":
			return true, false, nil
		}
	case "OneResourcePool", "TwoResourcePool", "MultiResourcePool":
		switch target.Method {
		case "contribute", "redeem":
			// The minted/redeemed amount depends on the pool's current
			// reserves, not on anything visible in the manifest itself —
			// recognized enough to know the call consumes its bucket
			// inputs, but its output is not statically computable.
			return true, true, nil
		case "protected_deposit":
			return true, true, nil
		case "protected_withdraw":
			if len(args.Elements) != 2 {
				return false, true, nil
			}
			r, err := DecodeResourceArg(args.Elements[0])
			if err != nil {
				return false, true, nil
			}
			amt, err := DecodeDecimalArg(args.Elements[1])
			if err != nil {
				return false, true, nil
			}
			return true, false, []InvocationIo{{Kind: IoFungible, Resource: r, Amount: ExactBound(amt)}}
		}
	}
	return false, true, nil
}
