package kernel

import "errors"

// Kernel errors: invariant violations the kernel itself detects and
// refuses to proceed past, regardless of blueprint logic.
var (
	ErrDanglingNode          = errors.New("kernel: frame ended with an unconsumed heap node")
	ErrSubstateLockedForRead = errors.New("kernel: substate has live read-only handles, cannot open mutable")
	ErrSubstateLockedForWrite = errors.New("kernel: substate has a live mutable handle, cannot open")
	ErrHandleClosed         = errors.New("kernel: handle already closed")
	ErrHandleNotMutable     = errors.New("kernel: write attempted through a read-only handle")
	ErrReservationConsumed  = errors.New("kernel: address reservation already consumed")
	ErrNodeNotFound         = errors.New("kernel: node not found")
	ErrNodeNotHeapOwned     = errors.New("kernel: operation requires a heap-owned node")
)

// System errors: auth, feature, and schema-shape violations.
var (
	ErrAuthFailed       = errors.New("kernel: auth zone does not satisfy role requirement")
	ErrImmutableSubstate = errors.New("kernel: substate is immutable")
	ErrSchemaMismatch   = errors.New("kernel: value is not schema-compatible with the field being written")
)

// CostingError unwinds every open frame when the cost-unit meter is
// exhausted — the only cancellation mechanism the kernel recognizes.
var ErrCostingExhausted = errors.New("kernel: cost units exhausted")
