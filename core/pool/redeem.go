package pool

import "github.com/synnergy-labs/asset-runtime/core/resource"

// GetRedemptionValue computes, without mutating the pool, what burning
// poolUnits would return for each reserve — the same arithmetic Redeem
// performs, kept pure so callers can preview a redemption.
func (p *Pool) GetRedemptionValue(poolUnits resource.Decimal) (map[resource.ResourceId]resource.Decimal, error) {
	if p.poolUnitSupply.IsZero() {
		out := make(map[resource.ResourceId]resource.Decimal, len(p.reserves))
		for _, r := range p.reserves {
			out[r.resource] = resource.DecimalZero
		}
		return out, nil
	}
	units := poolUnits.ToPrecise()
	supply := p.poolUnitSupply.ToPrecise()
	out := make(map[resource.ResourceId]resource.Decimal, len(p.reserves))
	for _, r := range p.reserves {
		reserves := r.vault.Amount().ToPrecise()
		ratio, err := units.Div(supply)
		if err != nil {
			return nil, err
		}
		owed, err := ratio.Mul(reserves)
		if err != nil {
			return nil, err
		}
		asDecimal, err := owed.ToDecimal(resource.Rounded(resource.RoundToNegativeInfinity))
		if err != nil {
			return nil, err
		}
		rounded, err := asDecimal.Round(resource.Rounded(resource.RoundToNegativeInfinity), r.divisibility)
		if err != nil {
			return nil, err
		}
		out[r.resource] = rounded
	}
	return out, nil
}

// Redeem burns poolUnits from the supply and takes the corresponding
// amount out of each reserve vault, returning the per-resource amounts
// withdrawn plus the event to emit.
func (p *Pool) Redeem(poolUnits resource.Decimal) (map[resource.ResourceId]*resource.FungibleBucket, RedemptionEvent, error) {
	owed, err := p.GetRedemptionValue(poolUnits)
	if err != nil {
		return nil, RedemptionEvent{}, err
	}
	allZero := true
	for _, v := range owed {
		if !v.IsZero() {
			allZero = false
			break
		}
	}
	if allZero {
		return nil, RedemptionEvent{}, ErrRedeemedZeroTokens
	}

	newSupply, err := p.poolUnitSupply.Sub(poolUnits)
	if err != nil {
		return nil, RedemptionEvent{}, err
	}

	out := make(map[resource.ResourceId]*resource.FungibleBucket, len(p.reserves))
	for _, r := range p.reserves {
		amount := owed[r.resource]
		if amount.IsZero() {
			continue
		}
		b, err := r.vault.Take(amount)
		if err != nil {
			return nil, RedemptionEvent{}, err
		}
		out[r.resource] = b
	}
	p.poolUnitSupply = newSupply

	event := RedemptionEvent{PoolUnitTokensRedeemed: poolUnits, RedeemedResources: owed}
	return out, event, nil
}
