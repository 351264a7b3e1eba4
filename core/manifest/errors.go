package manifest

import "errors"

var (
	ErrBucketDoesntExist                       = errors.New("manifest: bucket handle does not exist")
	ErrProofDoesntExist                        = errors.New("manifest: proof handle does not exist")
	ErrNonFungibleIdsTakeOnFungibleResource     = errors.New("manifest: non-fungible id take on a fungible resource")
	ErrNonFungibleIdsAssertionOnFungibleResource = errors.New("manifest: non-fungible id assertion on a fungible resource")
	ErrDecimalOverflow                         = errors.New("manifest: decimal overflow tracking worktop bounds")
	ErrArgsEncodeError                         = errors.New("manifest: invocation argument encode error")
	ErrArgsDecodeError                         = errors.New("manifest: invocation argument decode error")
	ErrWorktopAssertionFailed                   = errors.New("manifest: worktop assertion failed")
	ErrWorktopNotEmpty                          = errors.New("manifest: worktop not empty at AssertWorktopIsEmpty")
	ErrUnknownNamedAddress                      = errors.New("manifest: named address handle not yet allocated")
)
