package manifest

import (
	"github.com/synnergy-labs/asset-runtime/core/resource"
	"github.com/synnergy-labs/asset-runtime/core/sbor"
)

// UncertaintySource records an instruction index where the analyzer lost
// precision it could not recover — e.g. an amount-based take on a
// non-fungible resource, whose specific ids the worktop can no longer name.
type UncertaintySource struct {
	InstructionIndex int
	Reason           string
}

// BucketContent is what the analyzer knows a named bucket holds.
type BucketContent struct {
	Resource    resource.ResourceId
	Fungible    bool
	Amount      AmountBound       // meaningful if Fungible
	NonFungible NonFungibleBounds // meaningful if !Fungible
}

// InvocationIoKind classifies one resolved input/output item of an
// invocation instruction.
type InvocationIoKind int

const (
	IoFungible InvocationIoKind = iota
	IoNonFungible
	IoEntireWorktop
)

type InvocationIo struct {
	Kind        InvocationIoKind
	Resource    resource.ResourceId
	Amount      AmountBound
	NonFungible NonFungibleBounds
}

// InvocationStaticInformation is recorded per invocation instruction index:
// the resolved inputs, and whether the call was recognized
// as a typed native invocation with statically computable outputs.
type InvocationStaticInformation struct {
	Inputs        []InvocationIo
	Recognized    bool
	OutputUnknown bool
}

// ResourceKinds resolves whether a resource address is fungible, the one
// piece of external metadata the analyzer needs that isn't derivable from
// the manifest bytes alone (a resource's kind is fixed at creation, outside
// this analysis).
type ResourceKinds interface {
	IsFungible(r resource.ResourceId) bool
}

type staticResourceKinds map[resource.ResourceId]bool

func (m staticResourceKinds) IsFungible(r resource.ResourceId) bool { return m[r] }

// StaticResourceKinds builds a ResourceKinds from a fixed table, the normal
// case for a manifest analyzed against a known set of resources.
func StaticResourceKinds(kinds map[resource.ResourceId]bool) ResourceKinds {
	return staticResourceKinds(kinds)
}

// ComponentBlueprints resolves the blueprint instantiated at a statically
// known (not manifest-allocated) component address — external metadata, the
// same way ResourceKinds is, needed to recognize a typed native invocation
// by CallMethod on a pre-existing component.
type ComponentBlueprints interface {
	BlueprintOf(addr resource.ResourceId) (string, bool)
}

type staticComponentBlueprints map[resource.ResourceId]string

func (m staticComponentBlueprints) BlueprintOf(addr resource.ResourceId) (string, bool) {
	b, ok := m[addr]
	return b, ok
}

func StaticComponentBlueprints(m map[resource.ResourceId]string) ComponentBlueprints {
	return staticComponentBlueprints(m)
}

// Analyzer runs the worktop state machine over a manifest's instructions,
// maintaining five pieces of state (known fungible/non-fungible worktop
// contents, tracked buckets, per-invocation static information, and
// accumulated uncertainty). It errors out on statically invalid
// instructions: an unknown bucket, a non-fungible id take/assertion on a
// fungible resource, or a bound overflow.
type Analyzer struct {
	kinds          ResourceKinds
	components     ComponentBlueprints
	fungible       map[resource.ResourceId]AmountBound
	nonFungible    map[resource.ResourceId]NonFungibleBounds
	uncertainty    []UncertaintySource
	buckets        map[BucketHandle]BucketContent
	invocationInfo map[int]InvocationStaticInformation
	namedAddrs     map[NamedAddressHandle]bool
	namedBlueprint map[NamedAddressHandle]string
}

func NewAnalyzer(kinds ResourceKinds, components ComponentBlueprints) *Analyzer {
	if components == nil {
		components = StaticComponentBlueprints(nil)
	}
	return &Analyzer{
		kinds:          kinds,
		components:     components,
		fungible:       make(map[resource.ResourceId]AmountBound),
		nonFungible:    make(map[resource.ResourceId]NonFungibleBounds),
		buckets:        make(map[BucketHandle]BucketContent),
		invocationInfo: make(map[int]InvocationStaticInformation),
		namedAddrs:     make(map[NamedAddressHandle]bool),
		namedBlueprint: make(map[NamedAddressHandle]string),
	}
}

func (a *Analyzer) WorktopFungible() map[resource.ResourceId]AmountBound { return a.fungible }
func (a *Analyzer) WorktopNonFungible() map[resource.ResourceId]NonFungibleBounds {
	return a.nonFungible
}
func (a *Analyzer) Uncertainty() []UncertaintySource { return a.uncertainty }
func (a *Analyzer) TrackedBuckets() map[BucketHandle]BucketContent { return a.buckets }
func (a *Analyzer) InvocationInformation() map[int]InvocationStaticInformation {
	return a.invocationInfo
}

// WorktopIsEmpty reports whether every tracked resource's bound is
// provably zero and no uncertainty remains — the invariant a fully-balanced
// manifest (every take matched by a deposit) should leave intact.
func (a *Analyzer) WorktopIsEmpty() bool {
	if len(a.uncertainty) > 0 {
		return false
	}
	for _, b := range a.fungible {
		if !(b.Lower == LowerZero && b.Upper == UpperExact && b.UpperAmount.IsZero()) {
			return false
		}
	}
	for _, b := range a.nonFungible {
		if !(b.Amount.Lower == LowerZero && b.Amount.Upper == UpperExact && b.Amount.UpperAmount.IsZero()) {
			return false
		}
	}
	return true
}

// Analyze runs every instruction through the state machine in order.
func (a *Analyzer) Analyze(instructions []Instruction) error {
	for idx, ins := range instructions {
		if err := a.step(idx, ins); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) step(idx int, ins Instruction) error {
	switch v := ins.(type) {
	case TakeAllFromWorktop:
		return a.takeAll(v)
	case TakeFromWorktop:
		return a.takeAmount(idx, v)
	case TakeNonFungiblesFromWorktop:
		return a.takeIds(v)
	case ReturnToWorktop:
		return a.returnToWorktop(v)
	case AssertWorktopContains:
		return a.assertContains(v)
	case AssertWorktopContainsNonFungibles:
		return a.assertContainsIds(v)
	case AssertWorktopIsEmpty:
		a.fungible = make(map[resource.ResourceId]AmountBound)
		a.nonFungible = make(map[resource.ResourceId]NonFungibleBounds)
		a.uncertainty = nil
		return nil
	case AllocateGlobalAddress:
		a.namedAddrs[v.Into] = true
		a.namedBlueprint[v.Into] = v.Blueprint
		return nil
	default:
		if target, args, ok := invocationTargetOf(ins); ok {
			if m, isMethod := ins.(CallMethod); isMethod {
				if bp, ok := a.blueprintOf(m.Address); ok {
					target.Blueprint = bp
				}
			}
			return a.invocation(idx, target, args)
		}
		// Auth-zone-only instructions (push/pop/clear/create-proof/drop) do
		// not touch the worktop.
		return nil
	}
}

// invocationTarget names the blueprint and method/function an Invocation
// instruction resolves to, when known.
type invocationTarget struct {
	Blueprint string
	Method    string
}

func invocationTargetOf(ins Instruction) (invocationTarget, sbor.TupleValue, bool) {
	switch v := ins.(type) {
	case CallFunction:
		return invocationTarget{Blueprint: v.Blueprint, Method: v.Function}, v.Args, true
	case CallMethod:
		return invocationTarget{Method: v.Method}, v.Args, true
	case CallDirectVaultMethod:
		return invocationTarget{Blueprint: "Vault", Method: v.Method}, v.Args, true
	case CallMetadataMethod:
		return invocationTarget{Blueprint: "Metadata", Method: v.Method}, v.Args, true
	case CallRoyaltyMethod:
		return invocationTarget{Blueprint: "Royalty", Method: v.Method}, v.Args, true
	case CallRoleAssignmentMethod:
		return invocationTarget{Blueprint: "RoleAssignment", Method: v.Method}, v.Args, true
	default:
		return invocationTarget{}, sbor.TupleValue{}, false
	}
}

// blueprintOf resolves a CallMethod's target blueprint: named addresses
// carry it from their AllocateGlobalAddress instruction earlier in the same
// manifest; resolved addresses go through the external ComponentBlueprints
// table.
func (a *Analyzer) blueprintOf(addr Address) (string, bool) {
	if addr.IsNamed() {
		bp, ok := a.namedBlueprint[*addr.Named]
		return bp, ok
	}
	if addr.Resolved == nil {
		return "", false
	}
	return a.components.BlueprintOf(*addr.Resolved)
}

func (a *Analyzer) takeAll(v TakeAllFromWorktop) error {
	if a.kinds.IsFungible(v.Resource) {
		bound, ok := a.fungible[v.Resource]
		if !ok {
			bound = UnknownNonZeroBound()
		}
		delete(a.fungible, v.Resource)
		a.buckets[v.Into] = BucketContent{Resource: v.Resource, Fungible: true, Amount: bound}
		return nil
	}
	nb, ok := a.nonFungible[v.Resource]
	if !ok {
		nb = UnknownNonFungibleBounds()
	}
	delete(a.nonFungible, v.Resource)
	a.buckets[v.Into] = BucketContent{Resource: v.Resource, Fungible: false, NonFungible: nb}
	return nil
}

func (a *Analyzer) takeAmount(idx int, v TakeFromWorktop) error {
	if a.kinds.IsFungible(v.Resource) {
		if bound, ok := a.fungible[v.Resource]; ok {
			reduced, err := bound.subtractAtMost(v.Amount)
			if err != nil {
				return err
			}
			a.fungible[v.Resource] = reduced
		}
		a.buckets[v.Into] = BucketContent{Resource: v.Resource, Fungible: true, Amount: ExactBound(v.Amount)}
		return nil
	}
	// Amount-based take on a non-fungible resource: the count is known, but
	// which specific ids left the worktop is not.
	if nb, ok := a.nonFungible[v.Resource]; ok {
		reducedAmount, err := nb.Amount.subtractAtMost(v.Amount)
		if err != nil {
			return err
		}
		a.nonFungible[v.Resource] = NonFungibleBounds{Amount: reducedAmount, Ids: UnknownIdBound()}
		a.uncertainty = append(a.uncertainty, UncertaintySource{
			InstructionIndex: idx,
			Reason:           "TakeFromWorktop by amount on a non-fungible resource: remaining id set unknown",
		})
	}
	a.buckets[v.Into] = BucketContent{
		Resource:    v.Resource,
		Fungible:    false,
		NonFungible: NonFungibleBounds{Amount: ExactBound(v.Amount), Ids: UnknownIdBound()},
	}
	return nil
}

func (a *Analyzer) takeIds(v TakeNonFungiblesFromWorktop) error {
	if a.kinds.IsFungible(v.Resource) {
		return ErrNonFungibleIdsTakeOnFungibleResource
	}
	if nb, ok := a.nonFungible[v.Resource]; ok {
		a.nonFungible[v.Resource] = NonFungibleBounds{
			Amount: mustSubtractCount(nb.Amount, len(v.Ids)),
			Ids:    nb.Ids.removeAtMost(v.Ids),
		}
	}
	a.buckets[v.Into] = BucketContent{
		Resource:    v.Resource,
		Fungible:    false,
		NonFungible: ExactNonFungibleBounds(v.Ids),
	}
	return nil
}

func mustSubtractCount(b AmountBound, n int) AmountBound {
	reduced, err := b.subtractAtMost(resource.NewDecimalFromInt64(int64(n)))
	if err != nil {
		return b
	}
	return reduced
}

func (a *Analyzer) returnToWorktop(v ReturnToWorktop) error {
	bucket, ok := a.buckets[v.Bucket]
	if !ok {
		return ErrBucketDoesntExist
	}
	delete(a.buckets, v.Bucket)
	if bucket.Fungible {
		existing, ok := a.fungible[bucket.Resource]
		if !ok {
			a.fungible[bucket.Resource] = bucket.Amount
			return nil
		}
		merged, err := existing.add(bucket.Amount)
		if err != nil {
			return err
		}
		a.fungible[bucket.Resource] = merged
		return nil
	}
	existing, ok := a.nonFungible[bucket.Resource]
	if !ok {
		a.nonFungible[bucket.Resource] = bucket.NonFungible
		return nil
	}
	merged, err := existing.merge(bucket.NonFungible)
	if err != nil {
		return err
	}
	a.nonFungible[bucket.Resource] = merged
	return nil
}

func (a *Analyzer) assertContains(v AssertWorktopContains) error {
	if v.Amount == nil {
		if a.kinds.IsFungible(v.Resource) {
			b := a.fungible[v.Resource]
			if b.Lower != LowerExact {
				b.Lower = LowerNonZero
			}
			a.fungible[v.Resource] = b
			return nil
		}
		b := a.nonFungible[v.Resource]
		if b.Amount.Lower != LowerExact {
			b.Amount.Lower = LowerNonZero
		}
		a.nonFungible[v.Resource] = b
		return nil
	}
	if a.kinds.IsFungible(v.Resource) {
		a.fungible[v.Resource] = a.fungible[v.Resource].raiseLower(*v.Amount)
		return nil
	}
	b := a.nonFungible[v.Resource]
	b.Amount = b.Amount.raiseLower(*v.Amount)
	a.nonFungible[v.Resource] = b
	return nil
}

func (a *Analyzer) assertContainsIds(v AssertWorktopContainsNonFungibles) error {
	if a.kinds.IsFungible(v.Resource) {
		return ErrNonFungibleIdsAssertionOnFungibleResource
	}
	existing := a.nonFungible[v.Resource]
	existing.Ids = existing.Ids.extend(v.Ids)
	a.nonFungible[v.Resource] = existing
	return nil
}

func (a *Analyzer) invocation(idx int, target invocationTarget, args sbor.TupleValue) error {
	inputs, err := a.gatherInvocationInputs(args)
	if err != nil {
		return err
	}
	recognized, outputUnknown, outputs := interpretTypedInvocation(target, args)
	a.invocationInfo[idx] = InvocationStaticInformation{
		Inputs:        inputs,
		Recognized:    recognized,
		OutputUnknown: outputUnknown,
	}
	for _, out := range outputs {
		if err := a.applyInvocationOutput(out); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) applyInvocationOutput(out InvocationIo) error {
	switch out.Kind {
	case IoFungible:
		existing, ok := a.fungible[out.Resource]
		if !ok {
			a.fungible[out.Resource] = out.Amount
			return nil
		}
		merged, err := existing.add(out.Amount)
		if err != nil {
			return err
		}
		a.fungible[out.Resource] = merged
		return nil
	case IoNonFungible:
		existing, ok := a.nonFungible[out.Resource]
		if !ok {
			a.nonFungible[out.Resource] = out.NonFungible
			return nil
		}
		merged, err := existing.merge(out.NonFungible)
		if err != nil {
			return err
		}
		a.nonFungible[out.Resource] = merged
		return nil
	}
	return nil
}
