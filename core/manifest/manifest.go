// Package manifest implements the transaction manifest model and the
// static worktop analyzer: a declarative instruction list that moves
// resources through a transient worktop, invokes package functions or
// component methods, and is checked for resource-movement correctness
// before anything runs.
package manifest

import "github.com/synnergy-labs/asset-runtime/core/resource"

// Hash identifies a blob referenced from manifest instructions (large binary
// payloads, e.g. package code, kept out of the instruction stream itself).
type Hash [32]byte

// Manifest is the wire shape Tuple(version, instructions, blobs).
type Manifest struct {
	Version      uint8
	Instructions []Instruction
	Blobs        map[Hash][]byte
}

// BucketHandle, ProofHandle, AddressReservationHandle and NamedAddressHandle
// are indices into the handle namespaces a manifest allocates as it runs —
// assigned in instruction order, starting at zero, never reused.
type BucketHandle uint32
type ProofHandle uint32
type AddressReservationHandle uint32
type NamedAddressHandle uint32

// Address is either a concrete resolved address or a named-address
// reservation produced earlier in the same manifest by AllocateGlobalAddress.
// Exactly one of the two is set.
type Address struct {
	Resolved *resource.ResourceId
	Named    *NamedAddressHandle
}

func ResolvedAddress(id resource.ResourceId) Address { return Address{Resolved: &id} }
func NamedAddress(h NamedAddressHandle) Address       { return Address{Named: &h} }

func (a Address) IsNamed() bool { return a.Named != nil }
