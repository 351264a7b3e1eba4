package manifest

import (
	"github.com/synnergy-labs/asset-runtime/core/resource"
	"github.com/synnergy-labs/asset-runtime/core/sbor"
)

// InstructionKind discriminates the closed instruction set. Values
// are stable small integers matching the manifest wire encoding.
type InstructionKind byte

const (
	KindTakeAllFromWorktop InstructionKind = iota
	KindTakeFromWorktop
	KindTakeNonFungiblesFromWorktop
	KindReturnToWorktop
	KindAssertWorktopContains
	KindAssertWorktopContainsNonFungibles
	KindAssertWorktopIsEmpty
	KindPushToAuthZone
	KindPopFromAuthZone
	KindClearAuthZone
	KindCreateProofFromAuthZoneOfAmount
	KindCreateProofFromAuthZoneOfNonFungibles
	KindCreateProofFromAuthZoneOfAll
	KindDropProof
	KindDropAllProofs
	KindCallFunction
	KindCallMethod
	KindCallDirectVaultMethod
	KindCallMetadataMethod
	KindCallRoyaltyMethod
	KindCallRoleAssignmentMethod
	KindAllocateGlobalAddress
)

// Instruction is the closed sum type of manifest instructions.
type Instruction interface {
	InstructionKind() InstructionKind
}

type TakeAllFromWorktop struct {
	Resource resource.ResourceId
	Into     BucketHandle
}

func (TakeAllFromWorktop) InstructionKind() InstructionKind { return KindTakeAllFromWorktop }

type TakeFromWorktop struct {
	Resource resource.ResourceId
	Amount   resource.Decimal
	Into     BucketHandle
}

func (TakeFromWorktop) InstructionKind() InstructionKind { return KindTakeFromWorktop }

type TakeNonFungiblesFromWorktop struct {
	Resource resource.ResourceId
	Ids      []resource.NonFungibleLocalId
	Into     BucketHandle
}

func (TakeNonFungiblesFromWorktop) InstructionKind() InstructionKind {
	return KindTakeNonFungiblesFromWorktop
}

type ReturnToWorktop struct {
	Bucket BucketHandle
}

func (ReturnToWorktop) InstructionKind() InstructionKind { return KindReturnToWorktop }

// AssertWorktopContains: Amount nil means "assert non-zero presence only".
type AssertWorktopContains struct {
	Resource resource.ResourceId
	Amount   *resource.Decimal
}

func (AssertWorktopContains) InstructionKind() InstructionKind { return KindAssertWorktopContains }

type AssertWorktopContainsNonFungibles struct {
	Resource resource.ResourceId
	Ids      []resource.NonFungibleLocalId
}

func (AssertWorktopContainsNonFungibles) InstructionKind() InstructionKind {
	return KindAssertWorktopContainsNonFungibles
}

type AssertWorktopIsEmpty struct{}

func (AssertWorktopIsEmpty) InstructionKind() InstructionKind { return KindAssertWorktopIsEmpty }

type PushToAuthZone struct{ Proof ProofHandle }

func (PushToAuthZone) InstructionKind() InstructionKind { return KindPushToAuthZone }

type PopFromAuthZone struct{ Into ProofHandle }

func (PopFromAuthZone) InstructionKind() InstructionKind { return KindPopFromAuthZone }

type ClearAuthZone struct{}

func (ClearAuthZone) InstructionKind() InstructionKind { return KindClearAuthZone }

type CreateProofFromAuthZoneOfAmount struct {
	Resource resource.ResourceId
	Amount   resource.Decimal
	Into     ProofHandle
}

func (CreateProofFromAuthZoneOfAmount) InstructionKind() InstructionKind {
	return KindCreateProofFromAuthZoneOfAmount
}

type CreateProofFromAuthZoneOfNonFungibles struct {
	Resource resource.ResourceId
	Ids      []resource.NonFungibleLocalId
	Into     ProofHandle
}

func (CreateProofFromAuthZoneOfNonFungibles) InstructionKind() InstructionKind {
	return KindCreateProofFromAuthZoneOfNonFungibles
}

type CreateProofFromAuthZoneOfAll struct {
	Resource resource.ResourceId
	Into     ProofHandle
}

func (CreateProofFromAuthZoneOfAll) InstructionKind() InstructionKind {
	return KindCreateProofFromAuthZoneOfAll
}

type DropProof struct{ Proof ProofHandle }

func (DropProof) InstructionKind() InstructionKind { return KindDropProof }

type DropAllProofs struct{}

func (DropAllProofs) InstructionKind() InstructionKind { return KindDropAllProofs }

// CallFunction invokes a blueprint function by package/blueprint/function
// name; CallMethod invokes a method on an already-instantiated component.
// Args is the Tuple of SBOR values passed to the call, which may embed
// bucket/proof/address-reservation/named-address references and
// EntireWorktop.
type CallFunction struct {
	Package   Address
	Blueprint string
	Function  string
	Args      sbor.TupleValue
}

func (CallFunction) InstructionKind() InstructionKind { return KindCallFunction }

type CallMethod struct {
	Address Address
	Method  string
	Args    sbor.TupleValue
}

func (CallMethod) InstructionKind() InstructionKind { return KindCallMethod }

type CallDirectVaultMethod struct {
	Vault  resource.ResourceId
	Method string
	Args   sbor.TupleValue
}

func (CallDirectVaultMethod) InstructionKind() InstructionKind { return KindCallDirectVaultMethod }

type CallMetadataMethod struct {
	Address Address
	Method  string
	Args    sbor.TupleValue
}

func (CallMetadataMethod) InstructionKind() InstructionKind { return KindCallMetadataMethod }

type CallRoyaltyMethod struct {
	Address Address
	Method  string
	Args    sbor.TupleValue
}

func (CallRoyaltyMethod) InstructionKind() InstructionKind { return KindCallRoyaltyMethod }

type CallRoleAssignmentMethod struct {
	Address Address
	Method  string
	Args    sbor.TupleValue
}

func (CallRoleAssignmentMethod) InstructionKind() InstructionKind {
	return KindCallRoleAssignmentMethod
}

type AllocateGlobalAddress struct {
	Package   Address
	Blueprint string
	Into      NamedAddressHandle
}

func (AllocateGlobalAddress) InstructionKind() InstructionKind { return KindAllocateGlobalAddress }
