// Package resource implements the fixed-point Decimal/PreciseDecimal types
// and the fungible/non-fungible vault, bucket, and proof primitives that
// pool blueprints (core/pool) are built on.
package resource

import "errors"

var (
	ErrDecimalOverflow     = errors.New("resource: decimal overflow")
	ErrDecimalParse        = errors.New("resource: invalid decimal string")
	ErrNegativeAmount      = errors.New("resource: amount must be non-negative")
	ErrInsufficientBalance = errors.New("resource: insufficient balance")
	ErrDivisibilityRange   = errors.New("resource: divisibility out of range 0..18")
	ErrDivideByZero        = errors.New("resource: divide by zero")

	ErrNonFungibleIdShapeMismatch = errors.New("resource: non-fungible id shape mismatch for resource")
	ErrNonFungibleIdNotFound      = errors.New("resource: non-fungible local id not present")
	ErrNonFungibleIdAlreadyExists = errors.New("resource: non-fungible local id already present")
	ErrStringIdInvalid            = errors.New("resource: string local id violates bounds or alphabet")
	ErrBytesIdInvalid             = errors.New("resource: bytes local id violates bounds")

	ErrProofSourceLocked  = errors.New("resource: proof source amount is locked")
	ErrProofResourceMismatch = errors.New("resource: cannot compose proofs of different resources")
)
