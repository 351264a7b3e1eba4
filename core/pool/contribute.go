package pool

import "github.com/synnergy-labs/asset-runtime/core/resource"

// Contribute runs the pool's state machine against a contribution
// keyed by reserve resource; any pool resource missing from contributions
// is treated as a zero contribution. It returns the pool units minted, a
// per-resource change amount to hand back to the caller, and the event to
// emit after the vault/supply mutations are applied.
func (p *Pool) Contribute(contributions map[resource.ResourceId]resource.Decimal) (resource.Decimal, map[resource.ResourceId]resource.Decimal, ContributionEvent, error) {
	for r := range contributions {
		if _, ok := p.byResource[r]; !ok {
			return resource.Decimal{}, nil, ContributionEvent{}, ErrUnknownPoolResource
		}
	}

	n := len(p.reserves)
	contribution := make([]resource.PreciseDecimal, n)
	reserves := make([]resource.PreciseDecimal, n)
	for i, r := range p.reserves {
		// a missing entry in contributions naturally reads back as the
		// zero-value Decimal, i.e. a zero contribution.
		contribution[i] = contributions[r.resource].ToPrecise()
		reserves[i] = r.vault.Amount().ToPrecise()
	}

	supply := p.poolUnitSupply.ToPrecise()
	isPoolUnitsInCirculation := supply.Cmp(resource.PreciseDecimalZero) > 0

	var amounts []resource.PreciseDecimal
	var mint resource.PreciseDecimal
	var mintRounding = resource.Rounded(resource.RoundToNegativeInfinity)
	var err error

	if !isPoolUnitsInCirculation {
		amounts, mint, err = newPoolContribution(contribution)
		mintRounding = resource.Rounded(resource.RoundToPositiveInfinity)
	} else {
		emptyCount := 0
		for _, rv := range reserves {
			if rv.Cmp(resource.PreciseDecimalZero) == 0 {
				emptyCount++
			}
		}
		if emptyCount == n {
			return resource.Decimal{}, nil, ContributionEvent{}, ErrNonZeroPoolUnitSupplyButZeroReserves
		}
		amounts, mint, err = ratioContribution(contribution, reserves, supply, emptyCount > 0)
	}
	if err != nil {
		return resource.Decimal{}, nil, ContributionEvent{}, err
	}

	roundedAmounts := make([]resource.Decimal, n)
	contributed := make(map[resource.ResourceId]resource.Decimal, n)
	change := make(map[resource.ResourceId]resource.Decimal, n)
	for i, r := range p.reserves {
		asDecimal, err := amounts[i].ToDecimal(resource.Rounded(resource.RoundToNegativeInfinity))
		if err != nil {
			return resource.Decimal{}, nil, ContributionEvent{}, err
		}
		rounded, err := asDecimal.Round(resource.Rounded(resource.RoundToNegativeInfinity), r.divisibility)
		if err != nil {
			return resource.Decimal{}, nil, ContributionEvent{}, err
		}
		if rounded.IsZero() && reserves[i].Cmp(resource.PreciseDecimalZero) != 0 {
			return resource.Decimal{}, nil, ContributionEvent{}, ErrLargerContributionRequiredToMeetRatio
		}
		roundedAmounts[i] = rounded
		contributed[r.resource] = rounded
		leftover, err := contributions[r.resource].Sub(rounded)
		if err != nil {
			return resource.Decimal{}, nil, ContributionEvent{}, err
		}
		change[r.resource] = leftover
	}

	mintedDecimal, err := mint.ToDecimal(mintRounding)
	if err != nil {
		return resource.Decimal{}, nil, ContributionEvent{}, err
	}
	if mintedDecimal.IsZero() {
		return resource.Decimal{}, nil, ContributionEvent{}, ErrZeroPoolUnitsMinted
	}

	for i, r := range p.reserves {
		if roundedAmounts[i].IsZero() {
			continue
		}
		b, err := resource.NewFungibleBucket(r.divisibility, roundedAmounts[i])
		if err != nil {
			return resource.Decimal{}, nil, ContributionEvent{}, err
		}
		if err := r.vault.Put(b); err != nil {
			return resource.Decimal{}, nil, ContributionEvent{}, err
		}
	}
	newSupply, err := p.poolUnitSupply.Add(mintedDecimal)
	if err != nil {
		return resource.Decimal{}, nil, ContributionEvent{}, err
	}
	p.poolUnitSupply = newSupply

	event := ContributionEvent{ContributedResources: contributed, PoolUnitsMinted: mintedDecimal}
	return mintedDecimal, change, event, nil
}

// newPoolContribution handles the "new" state: any amount may be
// contributed; pool units minted equal the geometric mean (n-th root of
// the product) of the contributions, or the largest single contribution
// if any of them is zero — avoiding a zero mint on the very first
// contribution. The caller applies ToPositiveInfinity rounding to the
// returned mint value, the one place pool math rounds up rather than down.
func newPoolContribution(contribution []resource.PreciseDecimal) ([]resource.PreciseDecimal, resource.PreciseDecimal, error) {
	hasZero := false
	product := resource.PreciseDecimalZero
	first := true
	max := resource.PreciseDecimalZero
	for _, c := range contribution {
		if c.Cmp(resource.PreciseDecimalZero) == 0 {
			hasZero = true
		}
		if c.Cmp(max) > 0 {
			max = c
		}
		if first {
			product = c
			first = false
		} else {
			var err error
			product, err = product.Mul(c)
			if err != nil {
				return nil, resource.PreciseDecimal{}, err
			}
		}
	}
	var mint resource.PreciseDecimal
	if hasZero {
		mint = max
	} else {
		var err error
		mint, err = product.NthRoot(len(contribution))
		if err != nil {
			return nil, resource.PreciseDecimal{}, err
		}
	}
	return contribution, mint, nil
}

// ratioContribution handles both the one-sided case (oneSided==true, some
// reserve is zero) and the normal case: for each resource i with a
// non-empty reserve, compute what every other resource's contribution
// would need to be to preserve resource i's ratio; keep only candidates
// that fit within what was actually provided, and mint the one yielding
// the largest pool-unit amount.
func ratioContribution(contribution, reserves []resource.PreciseDecimal, supply resource.PreciseDecimal, oneSided bool) ([]resource.PreciseDecimal, resource.PreciseDecimal, error) {
	n := len(contribution)
	var bestAmounts []resource.PreciseDecimal
	var bestMint resource.PreciseDecimal
	found := false

	for i := 0; i < n; i++ {
		if reserves[i].Cmp(resource.PreciseDecimalZero) == 0 {
			continue
		}
		ratio, err := contribution[i].Div(reserves[i])
		if err != nil {
			return nil, resource.PreciseDecimal{}, err
		}
		candidate := make([]resource.PreciseDecimal, n)
		valid := true
		for j := 0; j < n; j++ {
			if reserves[j].Cmp(resource.PreciseDecimalZero) == 0 {
				candidate[j] = resource.PreciseDecimalZero
				if oneSided {
					continue
				}
				valid = false
				break
			}
			if j == i {
				// The anchor's own amount is its contribution exactly —
				// recomputing it as ratio*reserve would reintroduce the
				// rounding error Div just incurred computing that ratio.
				candidate[j] = contribution[j]
				continue
			}
			required, err := ratio.Mul(reserves[j])
			if err != nil {
				return nil, resource.PreciseDecimal{}, err
			}
			if required.Cmp(contribution[j]) > 0 {
				valid = false
				break
			}
			candidate[j] = required
		}
		if !valid {
			continue
		}
		mint, err := ratio.Mul(supply)
		if err != nil {
			return nil, resource.PreciseDecimal{}, err
		}
		if !found || mint.Cmp(bestMint) > 0 {
			bestAmounts = candidate
			bestMint = mint
			found = true
		}
	}
	if !found {
		return nil, resource.PreciseDecimal{}, ErrLargerContributionRequiredToMeetRatio
	}
	return bestAmounts, bestMint, nil
}
