// Package account implements the account blueprint's deposit-rule
// refinement: a default accept/reject/allow-existing rule per account, plus
// an owner-managed allow-list of "authorized depositor" badges that can
// override a Reject default for deposits accompanied by a matching proof.
// Like core/pool, this package carries no auth zone of its own — callers
// pass in booleans/badges reflecting auth resolution already performed by
// the kernel.
package account

import "github.com/synnergy-labs/asset-runtime/core/resource"

// DefaultDepositRule governs what happens to a deposit of a resource the
// account holds no authorized-depositor entry for.
type DefaultDepositRule int

const (
	// DepositRuleAccept takes any resource unconditionally. New accounts
	// start here.
	DepositRuleAccept DefaultDepositRule = iota
	// DepositRuleReject takes nothing unless an authorized depositor badge
	// is presented for the resource.
	DepositRuleReject
	// DepositRuleAllowExisting accepts a resource the account already holds
	// a vault for, and otherwise falls back to the authorized-depositor
	// check like Reject.
	DepositRuleAllowExisting
)

// Account holds one fungible vault per resource it has ever accepted, plus
// its deposit-rule configuration.
type Account struct {
	defaultRule DefaultDepositRule
	depositors  map[resource.ResourceId]bool
	vaults      map[resource.ResourceId]*resource.FungibleVault
}

func New() *Account {
	return &Account{
		defaultRule: DepositRuleAccept,
		depositors:  make(map[resource.ResourceId]bool),
		vaults:      make(map[resource.ResourceId]*resource.FungibleVault),
	}
}

// DepositEvent is emitted once a deposit has actually landed in a vault.
type DepositEvent struct {
	Resource resource.ResourceId
	Amount   resource.Decimal
}

// WithdrawEvent is emitted once a withdrawal has left its vault.
type WithdrawEvent struct {
	Resource resource.ResourceId
	Amount   resource.Decimal
}

// SetDefaultDepositRule is owner-gated: ownerAuthorized reflects the
// caller's role resolution, performed by the kernel before reaching here.
func (a *Account) SetDefaultDepositRule(ownerAuthorized bool, rule DefaultDepositRule) error {
	if !ownerAuthorized {
		return ErrNotAccountOwner
	}
	a.defaultRule = rule
	return nil
}

func (a *Account) AddAuthorizedDepositor(ownerAuthorized bool, badge resource.ResourceId) error {
	if !ownerAuthorized {
		return ErrNotAccountOwner
	}
	a.depositors[badge] = true
	return nil
}

func (a *Account) RemoveAuthorizedDepositor(ownerAuthorized bool, badge resource.ResourceId) error {
	if !ownerAuthorized {
		return ErrNotAccountOwner
	}
	delete(a.depositors, badge)
	return nil
}

// canAccept decides whether a deposit of r is let through the account's
// deposit rule. presentedBadge is the resource id of a proof the caller
// actually holds in its auth zone, or nil if none was presented; it is
// checked against the authorized-depositor allow-list only when the
// default rule itself would not already accept.
func (a *Account) canAccept(r resource.ResourceId, presentedBadge *resource.ResourceId) bool {
	switch a.defaultRule {
	case DepositRuleAccept:
		return true
	case DepositRuleAllowExisting:
		if _, ok := a.vaults[r]; ok {
			return true
		}
	}
	return presentedBadge != nil && a.depositors[*presentedBadge]
}

func (a *Account) depositInto(r resource.ResourceId, bucket *resource.FungibleBucket) error {
	v, ok := a.vaults[r]
	if !ok {
		nv, err := resource.NewFungibleVault(bucket.Divisibility())
		if err != nil {
			return err
		}
		a.vaults[r] = nv
		v = nv
	}
	return v.Put(bucket)
}

// Deposit puts bucket into the account's vault for r, erroring if the
// deposit rule rejects it.
func (a *Account) Deposit(r resource.ResourceId, presentedBadge *resource.ResourceId, bucket *resource.FungibleBucket) (DepositEvent, error) {
	if !a.canAccept(r, presentedBadge) {
		return DepositEvent{}, ErrNotAnAuthorizedDepositor
	}
	amount := bucket.Amount()
	if err := a.depositInto(r, bucket); err != nil {
		return DepositEvent{}, err
	}
	return DepositEvent{Resource: r, Amount: amount}, nil
}

// TryDepositOrAbort behaves like Deposit; it exists as a distinct entry
// point because manifest instructions name it separately from deposit.
func (a *Account) TryDepositOrAbort(r resource.ResourceId, presentedBadge *resource.ResourceId, bucket *resource.FungibleBucket) (DepositEvent, error) {
	return a.Deposit(r, presentedBadge, bucket)
}

// TryDepositOrRefund puts bucket into the account's vault for r if the
// deposit rule accepts it; otherwise bucket is handed back unchanged
// instead of erroring, so a caller can recover its resources from a
// rejected deposit.
func (a *Account) TryDepositOrRefund(r resource.ResourceId, presentedBadge *resource.ResourceId, bucket *resource.FungibleBucket) (refunded *resource.FungibleBucket, event *DepositEvent, err error) {
	if !a.canAccept(r, presentedBadge) {
		return bucket, nil, nil
	}
	amount := bucket.Amount()
	if err := a.depositInto(r, bucket); err != nil {
		return nil, nil, err
	}
	return nil, &DepositEvent{Resource: r, Amount: amount}, nil
}

func (a *Account) Balance(r resource.ResourceId) resource.Decimal {
	v, ok := a.vaults[r]
	if !ok {
		return resource.DecimalZero
	}
	return v.Amount()
}

func (a *Account) Withdraw(ownerAuthorized bool, r resource.ResourceId, amount resource.Decimal) (*resource.FungibleBucket, WithdrawEvent, error) {
	if !ownerAuthorized {
		return nil, WithdrawEvent{}, ErrNotAccountOwner
	}
	v, ok := a.vaults[r]
	if !ok {
		return nil, WithdrawEvent{}, ErrNoVaultForResource
	}
	b, err := v.Take(amount)
	if err != nil {
		return nil, WithdrawEvent{}, err
	}
	return b, WithdrawEvent{Resource: r, Amount: b.Amount()}, nil
}
