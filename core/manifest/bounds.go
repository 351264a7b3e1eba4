package manifest

import "github.com/synnergy-labs/asset-runtime/core/resource"

// LowerBoundKind and UpperBoundKind classify what is statically known about
// the low/high end of a fungible amount the analyzer is tracking — never
// the amount itself when it isn't pinned down.
type LowerBoundKind int

const (
	LowerZero LowerBoundKind = iota
	LowerNonZero
	LowerExact
)

type UpperBoundKind int

const (
	UpperUnbounded UpperBoundKind = iota
	UpperExact
)

// AmountBound is what the analyzer knows about a fungible quantity at a
// given instruction index: a closed lower bound and an open-or-closed upper
// bound, never the exact value unless both collapse to the same Exact
// amount.
type AmountBound struct {
	Lower       LowerBoundKind
	LowerAmount resource.Decimal
	Upper       UpperBoundKind
	UpperAmount resource.Decimal
}

func ZeroBound() AmountBound {
	return AmountBound{Lower: LowerZero, Upper: UpperExact, UpperAmount: resource.DecimalZero}
}

func ExactBound(amount resource.Decimal) AmountBound {
	return AmountBound{Lower: LowerExact, LowerAmount: amount, Upper: UpperExact, UpperAmount: amount}
}

func UnknownNonZeroBound() AmountBound {
	return AmountBound{Lower: LowerNonZero, Upper: UpperUnbounded}
}

func (b AmountBound) IsExact() bool {
	return b.Lower == LowerExact && b.Upper == UpperExact && b.LowerAmount.Cmp(b.UpperAmount) == 0
}

// add combines two independently-held amounts of the same resource into one
// bound covering their sum (ReturnToWorktop's merge rule).
func (b AmountBound) add(o AmountBound) (AmountBound, error) {
	out := AmountBound{}
	switch {
	case b.Lower == LowerExact && o.Lower == LowerExact:
		sum, err := b.LowerAmount.Add(o.LowerAmount)
		if err != nil {
			return AmountBound{}, ErrDecimalOverflow
		}
		out.Lower, out.LowerAmount = LowerExact, sum
	case b.Lower == LowerZero && o.Lower == LowerZero:
		out.Lower = LowerZero
	default:
		out.Lower = LowerNonZero
	}
	if b.Upper == UpperExact && o.Upper == UpperExact {
		sum, err := b.UpperAmount.Add(o.UpperAmount)
		if err != nil {
			return AmountBound{}, ErrDecimalOverflow
		}
		out.Upper, out.UpperAmount = UpperExact, sum
	} else {
		out.Upper = UpperUnbounded
	}
	return out, nil
}

// subtractAtMost lowers b by exactly `amount` (TakeFromWorktop's rule):
// both the lower and upper bound drop by amount, floored at zero.
func (b AmountBound) subtractAtMost(amount resource.Decimal) (AmountBound, error) {
	out := b
	if b.Lower == LowerExact {
		diff, err := b.LowerAmount.Sub(amount)
		if err != nil {
			return AmountBound{}, ErrDecimalOverflow
		}
		if diff.IsNegative() {
			diff = resource.DecimalZero
		}
		out.LowerAmount = diff
	}
	if b.Upper == UpperExact {
		diff, err := b.UpperAmount.Sub(amount)
		if err != nil {
			return AmountBound{}, ErrDecimalOverflow
		}
		if diff.IsNegative() {
			diff = resource.DecimalZero
		}
		out.UpperAmount = diff
	}
	return out, nil
}

// raiseLower raises b's lower bound to at least `amount` (AssertWorktopContains
// with an explicit amount): amount_lower := max(amount_lower, a).
func (b AmountBound) raiseLower(amount resource.Decimal) AmountBound {
	out := b
	out.Lower = LowerExact
	if b.Lower == LowerExact && b.LowerAmount.Cmp(amount) > 0 {
		out.LowerAmount = b.LowerAmount
	} else {
		out.LowerAmount = amount
	}
	return out
}

// NonFungibleIdBoundKind classifies how precisely the analyzer knows the id
// set behind a non-fungible quantity.
type NonFungibleIdBoundKind int

const (
	IdsUnknown NonFungibleIdBoundKind = iota
	IdsFullyKnown
	IdsPartiallyKnown
)

type NonFungibleIdBound struct {
	Kind NonFungibleIdBoundKind
	Ids  map[string]resource.NonFungibleLocalId
}

func UnknownIdBound() NonFungibleIdBound { return NonFungibleIdBound{Kind: IdsUnknown} }

func FullyKnownIdBound(ids []resource.NonFungibleLocalId) NonFungibleIdBound {
	set := make(map[string]resource.NonFungibleLocalId, len(ids))
	for _, id := range ids {
		set[string(id.Bytes())] = id
	}
	return NonFungibleIdBound{Kind: IdsFullyKnown, Ids: set}
}

// union merges o into b (ReturnToWorktop's non-fungible merge rule): the
// result is FullyKnown only if both sides were; otherwise
// PartiallyKnown if either side carried any known ids, else Unknown.
func (b NonFungibleIdBound) union(o NonFungibleIdBound) NonFungibleIdBound {
	if b.Kind == IdsUnknown && o.Kind == IdsUnknown {
		return UnknownIdBound()
	}
	merged := make(map[string]resource.NonFungibleLocalId, len(b.Ids)+len(o.Ids))
	for k, v := range b.Ids {
		merged[k] = v
	}
	for k, v := range o.Ids {
		merged[k] = v
	}
	kind := IdsPartiallyKnown
	if b.Kind == IdsFullyKnown && o.Kind == IdsFullyKnown {
		kind = IdsFullyKnown
	}
	return NonFungibleIdBound{Kind: kind, Ids: merged}
}

// removeAtMost drops the given ids (TakeNonFungiblesFromWorktop): removing
// named ids from a FullyKnown or PartiallyKnown set keeps it in
// the same category; from Unknown it stays Unknown.
func (b NonFungibleIdBound) removeAtMost(ids []resource.NonFungibleLocalId) NonFungibleIdBound {
	if b.Kind == IdsUnknown {
		return b
	}
	out := NonFungibleIdBound{Kind: b.Kind, Ids: make(map[string]resource.NonFungibleLocalId, len(b.Ids))}
	for k, v := range b.Ids {
		out.Ids[k] = v
	}
	for _, id := range ids {
		delete(out.Ids, string(id.Bytes()))
	}
	return out
}

// NonFungibleBounds pairs a count bound with whatever is known about the
// underlying id set; the two can diverge (e.g. an amount-based take leaves
// the count certain but the remaining ids unknown).
type NonFungibleBounds struct {
	Amount AmountBound
	Ids    NonFungibleIdBound
}

func UnknownNonFungibleBounds() NonFungibleBounds {
	return NonFungibleBounds{Amount: UnknownNonZeroBound(), Ids: UnknownIdBound()}
}

func ExactNonFungibleBounds(ids []resource.NonFungibleLocalId) NonFungibleBounds {
	return NonFungibleBounds{
		Amount: ExactBound(resource.NewDecimalFromInt64(int64(len(ids)))),
		Ids:    FullyKnownIdBound(ids),
	}
}

func (b NonFungibleBounds) merge(o NonFungibleBounds) (NonFungibleBounds, error) {
	amt, err := b.Amount.add(o.Amount)
	if err != nil {
		return NonFungibleBounds{}, err
	}
	return NonFungibleBounds{Amount: amt, Ids: b.Ids.union(o.Ids)}, nil
}

// extend folds newly-asserted ids into b, transitioning FullyKnown to
// PartiallyKnown if any of them were not already present.
func (b NonFungibleIdBound) extend(ids []resource.NonFungibleLocalId) NonFungibleIdBound {
	out := NonFungibleIdBound{Kind: b.Kind, Ids: make(map[string]resource.NonFungibleLocalId)}
	for k, v := range b.Ids {
		out.Ids[k] = v
	}
	if out.Kind == IdsUnknown {
		out.Kind = IdsPartiallyKnown
	}
	for _, id := range ids {
		key := string(id.Bytes())
		if _, known := out.Ids[key]; !known && out.Kind == IdsFullyKnown {
			out.Kind = IdsPartiallyKnown
		}
		out.Ids[key] = id
	}
	return out
}
