// Package pool implements one/two/multi-resource pool blueprints:
// contribution and redemption math over a set of fungible vaults plus a
// pool-unit supply the pool exclusively mints and burns.
package pool

import (
	"sort"

	"github.com/synnergy-labs/asset-runtime/core/resource"
)

// PoolUnitDivisibility matches the divisibility XRD and most pool-unit
// resources use; pools mint/burn their unit resource at this precision.
const PoolUnitDivisibility = 18

// ReserveSpec describes one resource a pool will hold a vault for.
type ReserveSpec struct {
	Resource     resource.ResourceId
	Divisibility int
	Fungible     bool
}

type reserve struct {
	resource     resource.ResourceId
	divisibility int
	vault        *resource.FungibleVault
}

// Pool holds one vault per reserve resource plus the pool-unit supply it
// exclusively mints and burns. Reserves are kept sorted in descending
// order by resource id so contribute/redeem never depend on call-site
// argument order.
type Pool struct {
	reserves       []*reserve
	byResource     map[resource.ResourceId]*reserve
	poolUnitSupply resource.Decimal
}

func New(specs []ReserveSpec) (*Pool, error) {
	if len(specs) == 0 {
		return nil, ErrWrongResourceCount
	}
	seen := make(map[resource.ResourceId]bool, len(specs))
	for _, s := range specs {
		if !s.Fungible {
			return nil, ErrNonFungibleNotAccepted
		}
		if seen[s.Resource] {
			return nil, ErrPoolSameResource
		}
		seen[s.Resource] = true
	}
	sorted := append([]ReserveSpec(nil), specs...)
	sort.Slice(sorted, func(i, j int) bool {
		return resourceGreater(sorted[i].Resource, sorted[j].Resource)
	})

	p := &Pool{byResource: make(map[resource.ResourceId]*reserve, len(specs))}
	for _, s := range sorted {
		v, err := resource.NewFungibleVault(s.Divisibility)
		if err != nil {
			return nil, err
		}
		r := &reserve{resource: s.Resource, divisibility: s.Divisibility, vault: v}
		p.reserves = append(p.reserves, r)
		p.byResource[s.Resource] = r
	}
	p.poolUnitSupply = resource.DecimalZero
	return p, nil
}

func resourceGreater(a, b resource.ResourceId) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

func (p *Pool) PoolUnitSupply() resource.Decimal { return p.poolUnitSupply }

func (p *Pool) ReserveAmount(r resource.ResourceId) (resource.Decimal, error) {
	rv, ok := p.byResource[r]
	if !ok {
		return resource.Decimal{}, ErrUnknownPoolResource
	}
	return rv.vault.Amount(), nil
}

// ContributionEvent is emitted once the contributed resources have been
// deposited and pool units minted — after all state changes, before
// Contribute returns.
type ContributionEvent struct {
	ContributedResources map[resource.ResourceId]resource.Decimal
	PoolUnitsMinted      resource.Decimal
}

type RedemptionEvent struct {
	PoolUnitTokensRedeemed resource.Decimal
	RedeemedResources      map[resource.ResourceId]resource.Decimal
}

type DepositEvent struct {
	Resource resource.ResourceId
	Amount   resource.Decimal
}

type WithdrawEvent struct {
	Resource resource.ResourceId
	Amount   resource.Decimal
}
