// Package substate models the node/partition/substate address space that
// the kernel operates over, and the stores (in-memory and Badger-backed)
// that hold substate bytes keyed by that address.
package substate

import (
	"encoding/hex"
	"errors"
)

var ErrInvalidNodeId = errors.New("substate: node id must be exactly 30 bytes")

// EntityType is the leading byte of a NodeId, distinguishing global entities
// (accounts, components, resources, packages, pools — addressable from
// manifests) from internal entities (vaults, key-value store partitions —
// reachable only by traversing an owning object's fields).
type EntityType byte

const (
	EntityGlobalPackage EntityType = iota
	EntityGlobalFungibleResource
	EntityGlobalNonFungibleResource
	EntityGlobalAccount
	EntityGlobalComponent
	EntityGlobalPool
	EntityInternalFungibleVault
	EntityInternalNonFungibleVault
	EntityInternalKeyValueStore
)

func (e EntityType) IsGlobal() bool {
	return e <= EntityGlobalPool
}

// NodeId is the 30-byte address of an object in the substate store. The
// first byte is its EntityType; the remaining 29 bytes are random or
// derived, depending on how the node was allocated.
type NodeId [30]byte

func NewNodeId(entityType EntityType, tail []byte) (NodeId, error) {
	var id NodeId
	if len(tail) != 29 {
		return id, ErrInvalidNodeId
	}
	id[0] = byte(entityType)
	copy(id[1:], tail)
	return id, nil
}

func (n NodeId) EntityType() EntityType { return EntityType(n[0]) }
func (n NodeId) String() string         { return hex.EncodeToString(n[:]) }

// PartitionNumber groups substates within a node, e.g. separating an
// object's fields from a collection it owns.
type PartitionNumber uint8

// SubstateKeyKind distinguishes the three substate addressing shapes a
// partition can hold.
type SubstateKeyKind int

const (
	SubstateKeyField SubstateKeyKind = iota
	SubstateKeyMap
	SubstateKeySorted
)

// SubstateKey addresses a single substate within a (NodeId, PartitionNumber)
// pair. Exactly one of Field/MapKey/SortedKey is meaningful, selected by
// Kind — mirroring the closed set of ways the kernel indexes a partition.
type SubstateKey struct {
	Kind      SubstateKeyKind
	Field     uint8
	MapKey    []byte
	SortedKey SortedKey
}

// SortedKey orders entries within a sorted-index partition by a sort prefix
// followed by a tiebreaking key, e.g. for iterable collections that must be
// walked in a deterministic order.
type SortedKey struct {
	SortPrefix [2]byte
	Key        []byte
}

func FieldKey(field uint8) SubstateKey {
	return SubstateKey{Kind: SubstateKeyField, Field: field}
}

func MapKey(key []byte) SubstateKey {
	return SubstateKey{Kind: SubstateKeyMap, MapKey: key}
}

func SortedIndexKey(prefix [2]byte, key []byte) SubstateKey {
	return SubstateKey{Kind: SubstateKeySorted, SortedKey: SortedKey{SortPrefix: prefix, Key: key}}
}

// encode renders a SubstateKey as a flat byte string suitable for use as a
// map key or a Badger key suffix; the Kind tag keeps the three shapes from
// colliding with each other.
func (k SubstateKey) encode() string {
	switch k.Kind {
	case SubstateKeyField:
		return string([]byte{0x00, k.Field})
	case SubstateKeyMap:
		return string(append([]byte{0x01}, k.MapKey...))
	case SubstateKeySorted:
		b := append([]byte{0x02}, k.SortedKey.SortPrefix[:]...)
		b = append(b, k.SortedKey.Key...)
		return string(b)
	default:
		return ""
	}
}
