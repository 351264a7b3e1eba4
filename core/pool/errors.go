package pool

import "errors"

var (
	ErrPoolSameResource            = errors.New("pool: resources must be distinct")
	ErrNonFungibleNotAccepted      = errors.New("pool: pool reserves must be fungible resources")
	ErrWrongResourceCount          = errors.New("pool: a pool needs at least one reserve resource")
	ErrUnknownPoolResource         = errors.New("pool: contributed resource is not one of the pool's reserves")
	ErrNonZeroPoolUnitSupplyButZeroReserves = errors.New("pool: non-zero pool unit supply but all reserves are zero")
	ErrLargerContributionRequiredToMeetRatio = errors.New("pool: contribution rounds to zero for a non-empty reserve")
	ErrZeroPoolUnitsMinted          = errors.New("pool: contribution would mint zero pool units")
	ErrRedeemedZeroTokens           = errors.New("pool: redemption would return zero of every resource")
	ErrNotPoolManager               = errors.New("pool: caller lacks the PoolManager role")
)
