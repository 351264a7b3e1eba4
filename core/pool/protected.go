package pool

import "github.com/synnergy-labs/asset-runtime/core/resource"

// ProtectedDeposit and ProtectedWithdraw bypass the ratio state machine
// entirely — used by an operator holding the PoolManager role to seed
// initial liquidity or collect fees. managerAuthorized reflects the
// caller's role resolution, performed by the kernel before reaching here;
// this package has no auth zone of its own to check.
func (p *Pool) ProtectedDeposit(managerAuthorized bool, r resource.ResourceId, bucket *resource.FungibleBucket) (DepositEvent, error) {
	if !managerAuthorized {
		return DepositEvent{}, ErrNotPoolManager
	}
	rv, ok := p.byResource[r]
	if !ok {
		return DepositEvent{}, ErrUnknownPoolResource
	}
	amount := bucket.Amount()
	if err := rv.vault.Put(bucket); err != nil {
		return DepositEvent{}, err
	}
	return DepositEvent{Resource: r, Amount: amount}, nil
}

func (p *Pool) ProtectedWithdraw(managerAuthorized bool, r resource.ResourceId, amount resource.Decimal, strategy resource.RoundingStrategy) (*resource.FungibleBucket, WithdrawEvent, error) {
	if !managerAuthorized {
		return nil, WithdrawEvent{}, ErrNotPoolManager
	}
	rv, ok := p.byResource[r]
	if !ok {
		return nil, WithdrawEvent{}, ErrUnknownPoolResource
	}
	b, err := rv.vault.TakeAdvanced(amount, strategy)
	if err != nil {
		return nil, WithdrawEvent{}, err
	}
	return b, WithdrawEvent{Resource: r, Amount: b.Amount()}, nil
}
