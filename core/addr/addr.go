// Package addr is the Bech32m address encode/decode boundary. The
// runtime core never holds addresses in this form — NodeId bytes flow
// through core/substate and core/kernel raw; encode/decode happens only
// here, at the human-facing edge, parameterized by an explicit
// NetworkDefinition rather than any process-global "current network".
package addr

import (
	"errors"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
)

var (
	ErrUnknownEntityType = errors.New("addr: unknown entity type byte")
	ErrWrongNetwork       = errors.New("addr: address human-readable part does not match network")
	ErrWrongLength        = errors.New("addr: decoded address is not 30 bytes")
)

// EntityType is the leading byte of a NodeId, duplicated here (rather than
// imported from core/substate) so this package has no dependency on the
// kernel's node model — it only needs the byte value to pick a prefix.
type EntityType byte

const (
	EntityGlobalPackage EntityType = iota
	EntityFungibleResource
	EntityNonFungibleResource
	EntityGlobalAccount
	EntityGlobalComponent
	EntityGlobalPool
	EntityInternalFungibleVault
	EntityInternalNonFungibleVault
	EntityInternalKeyValueStore
)

var entityPrefixes = map[EntityType]string{
	EntityFungibleResource:         "resource",
	EntityNonFungibleResource:      "resource",
	EntityGlobalAccount:            "account",
	EntityGlobalComponent:          "component",
	EntityGlobalPackage:            "package",
	EntityInternalKeyValueStore:    "internal_keyvaluestore",
	EntityInternalFungibleVault:    "internal_vault",
	EntityInternalNonFungibleVault: "internal_vault",
	EntityGlobalPool:               "pool",
}

// NetworkDefinition names a network's address suffix, passed explicitly
// through every boundary call rather than read from a global.
type NetworkDefinition struct {
	// HrpSuffix distinguishes networks sharing the same entity prefixes,
	// e.g. "" for mainnet, "_stokenet" for a test network.
	HrpSuffix string
}

var Mainnet = NetworkDefinition{HrpSuffix: ""}

func humanReadablePart(et EntityType, net NetworkDefinition) (string, error) {
	prefix, ok := entityPrefixes[et]
	if !ok {
		return "", ErrUnknownEntityType
	}
	return prefix + net.HrpSuffix + "_rdx", nil
}

// Encode renders a 30-byte NodeId as a Bech32m string under net, with the
// human-readable part selected by entityType.
func Encode(net NetworkDefinition, entityType EntityType, raw [30]byte) (string, error) {
	hrp, err := humanReadablePart(entityType, net)
	if err != nil {
		return "", err
	}
	converted, err := bech32.ConvertBits(raw[:], 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.EncodeM(hrp, converted)
}

// Decode parses a Bech32m address string, verifying it belongs to net, and
// returns the entity type implied by its human-readable part plus the raw
// 30-byte NodeId.
func Decode(net NetworkDefinition, s string) (EntityType, [30]byte, error) {
	var out [30]byte
	hrp, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return 0, out, err
	}
	et, ok := entityTypeForHrp(hrp, net)
	if !ok {
		return 0, out, ErrWrongNetwork
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return 0, out, err
	}
	if len(raw) != 30 {
		return 0, out, ErrWrongLength
	}
	copy(out[:], raw)
	return et, out, nil
}

func entityTypeForHrp(hrp string, net NetworkDefinition) (EntityType, bool) {
	suffix := net.HrpSuffix + "_rdx"
	if !strings.HasSuffix(hrp, suffix) {
		return 0, false
	}
	prefix := strings.TrimSuffix(hrp, suffix)
	for et, p := range entityPrefixes {
		if p == prefix {
			return et, true
		}
	}
	return 0, false
}
