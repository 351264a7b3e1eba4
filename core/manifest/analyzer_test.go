package manifest

import (
	"testing"

	"github.com/synnergy-labs/asset-runtime/core/resource"
	"github.com/synnergy-labs/asset-runtime/core/sbor"
)

func mustDecimal(t *testing.T, s string) resource.Decimal {
	t.Helper()
	d, err := resource.ParseDecimal(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func resourceId(b byte) resource.ResourceId {
	var r resource.ResourceId
	r[0] = b
	return r
}

func newTestAnalyzer(fungible map[resource.ResourceId]bool, components map[resource.ResourceId]string) *Analyzer {
	return NewAnalyzer(StaticResourceKinds(fungible), StaticComponentBlueprints(components))
}

// Rule 1: TakeAllFromWorktop drains whatever was tracked for the resource,
// leaving nothing behind.
func TestTakeAllFromWorktop(t *testing.T) {
	xrd := resourceId(1)
	a := newTestAnalyzer(map[resource.ResourceId]bool{xrd: true}, nil)
	five := mustDecimal(t, "5")
	if err := a.Analyze([]Instruction{
		AssertWorktopContains{Resource: xrd, Amount: &five}, // force a lower bound to exist first
	}); err != nil {
		t.Fatalf("seed assert: %v", err)
	}
	if err := a.step(1, TakeAllFromWorktop{Resource: xrd, Into: 0}); err != nil {
		t.Fatalf("take all: %v", err)
	}
	if _, ok := a.fungible[xrd]; ok {
		t.Fatalf("resource still tracked on worktop after TakeAllFromWorktop")
	}
	content, ok := a.buckets[0]
	if !ok || !content.Fungible || content.Amount.Lower != LowerExact || content.Amount.LowerAmount.Cmp(five) != 0 {
		t.Fatalf("bucket 0 = %+v, want exact 5", content)
	}
}

// Rule 2: TakeFromWorktop on a non-fungible resource degrades the remaining
// id set to Unknown while keeping the count exact, and records an
// uncertainty entry.
func TestTakeFromWorktopNonFungibleDegradesIds(t *testing.T) {
	nft := resourceId(2)
	a := newTestAnalyzer(map[resource.ResourceId]bool{nft: false}, nil)
	ids := []resource.NonFungibleLocalId{resource.NewIntegerLocalId(1), resource.NewIntegerLocalId(2), resource.NewIntegerLocalId(3)}
	if err := a.Analyze([]Instruction{
		AssertWorktopContainsNonFungibles{Resource: nft, Ids: ids},
	}); err != nil {
		t.Fatalf("seed assert ids: %v", err)
	}
	if err := a.step(1, TakeFromWorktop{Resource: nft, Amount: mustDecimal(t, "1"), Into: 0}); err != nil {
		t.Fatalf("take: %v", err)
	}
	remaining, ok := a.nonFungible[nft]
	if !ok {
		t.Fatalf("resource dropped entirely, want a remaining bound")
	}
	if remaining.Ids.Kind != IdsUnknown {
		t.Fatalf("remaining ids kind = %v, want IdsUnknown", remaining.Ids.Kind)
	}
	if len(a.uncertainty) != 1 {
		t.Fatalf("uncertainty = %+v, want exactly one entry", a.uncertainty)
	}
}

// Rule 3: TakeNonFungiblesFromWorktop removes the named ids from a known set
// without degrading it.
func TestTakeNonFungiblesFromWorktopKeepsIdsKnown(t *testing.T) {
	nft := resourceId(2)
	a := newTestAnalyzer(map[resource.ResourceId]bool{nft: false}, nil)
	all := []resource.NonFungibleLocalId{resource.NewIntegerLocalId(1), resource.NewIntegerLocalId(2)}
	a.nonFungible[nft] = ExactNonFungibleBounds(all)

	took := []resource.NonFungibleLocalId{resource.NewIntegerLocalId(1)}
	if err := a.step(0, TakeNonFungiblesFromWorktop{Resource: nft, Ids: took, Into: 0}); err != nil {
		t.Fatalf("take ids: %v", err)
	}
	remaining := a.nonFungible[nft]
	if remaining.Ids.Kind != IdsFullyKnown {
		t.Fatalf("remaining ids kind = %v, want IdsFullyKnown", remaining.Ids.Kind)
	}
	if len(remaining.Ids.Ids) != 1 {
		t.Fatalf("remaining ids = %+v, want exactly 1", remaining.Ids.Ids)
	}
	bucket := a.buckets[0]
	if bucket.NonFungible.Ids.Kind != IdsFullyKnown || len(bucket.NonFungible.Ids.Ids) != 1 {
		t.Fatalf("bucket ids = %+v, want the one taken id", bucket.NonFungible)
	}
}

// Rule 4: ReturnToWorktop merges a bucket back in, taking the union of what
// was already there and what came back.
func TestReturnToWorktopMergesFungible(t *testing.T) {
	xrd := resourceId(1)
	a := newTestAnalyzer(map[resource.ResourceId]bool{xrd: true}, nil)
	a.fungible[xrd] = ExactBound(mustDecimal(t, "2"))
	a.buckets[0] = BucketContent{Resource: xrd, Fungible: true, Amount: ExactBound(mustDecimal(t, "3"))}

	if err := a.step(0, ReturnToWorktop{Bucket: 0}); err != nil {
		t.Fatalf("return: %v", err)
	}
	merged, ok := a.fungible[xrd]
	if !ok || !merged.IsExact() || merged.LowerAmount.Cmp(mustDecimal(t, "5")) != 0 {
		t.Fatalf("merged bound = %+v, want exact 5", merged)
	}
	if _, ok := a.buckets[0]; ok {
		t.Fatalf("bucket 0 still tracked after ReturnToWorktop")
	}
}

func TestReturnToWorktopUnknownBucket(t *testing.T) {
	a := newTestAnalyzer(nil, nil)
	if err := a.step(0, ReturnToWorktop{Bucket: 99}); err != ErrBucketDoesntExist {
		t.Fatalf("err = %v, want ErrBucketDoesntExist", err)
	}
}

// Rule 5: AssertWorktopContains raises the lower bound, never lowering it.
func TestAssertWorktopContainsRaisesLower(t *testing.T) {
	xrd := resourceId(1)
	a := newTestAnalyzer(map[resource.ResourceId]bool{xrd: true}, nil)
	a.fungible[xrd] = ExactBound(mustDecimal(t, "10"))

	small := mustDecimal(t, "3")
	if err := a.step(0, AssertWorktopContains{Resource: xrd, Amount: &small}); err != nil {
		t.Fatalf("assert: %v", err)
	}
	got := a.fungible[xrd]
	if got.Lower != LowerExact || got.LowerAmount.Cmp(mustDecimal(t, "10")) != 0 {
		t.Fatalf("lower bound = %+v, want unchanged exact 10 (raise must not lower)", got)
	}

	large := mustDecimal(t, "20")
	if err := a.step(1, AssertWorktopContains{Resource: xrd, Amount: &large}); err != nil {
		t.Fatalf("assert: %v", err)
	}
	got = a.fungible[xrd]
	if got.LowerAmount.Cmp(mustDecimal(t, "20")) != 0 {
		t.Fatalf("lower bound = %+v, want raised to 20", got)
	}
}

// Rule 6: AssertWorktopIsEmpty wipes all tracked state and uncertainty.
func TestAssertWorktopIsEmptyClearsState(t *testing.T) {
	xrd := resourceId(1)
	a := newTestAnalyzer(map[resource.ResourceId]bool{xrd: true}, nil)
	a.fungible[xrd] = ExactBound(mustDecimal(t, "1"))
	a.uncertainty = append(a.uncertainty, UncertaintySource{InstructionIndex: 0, Reason: "test"})

	if err := a.step(1, AssertWorktopIsEmpty{}); err != nil {
		t.Fatalf("assert empty: %v", err)
	}
	if len(a.fungible) != 0 || len(a.nonFungible) != 0 || len(a.uncertainty) != 0 {
		t.Fatalf("state not cleared: fungible=%+v nonFungible=%+v uncertainty=%+v", a.fungible, a.nonFungible, a.uncertainty)
	}
}

// Rule 7: an invocation consumes bucket/EntireWorktop arguments as inputs
// and, when recognized, applies its statically known outputs.
func TestInvocationGathersBucketInputAndRecognizedOutput(t *testing.T) {
	account := resourceId(10)
	xrd := resourceId(1)
	a := newTestAnalyzer(map[resource.ResourceId]bool{xrd: true}, map[resource.ResourceId]string{account: "Account"})

	amount := mustDecimal(t, "5")
	withdrawArgs := sbor.TupleValue{Elements: []sbor.Value{ResourceArg(xrd), DecimalArg(amount)}}
	if err := a.step(0, CallMethod{Address: ResolvedAddress(account), Method: "withdraw", Args: withdrawArgs}); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	bound, ok := a.fungible[xrd]
	if !ok || !bound.IsExact() || bound.LowerAmount.Cmp(amount) != 0 {
		t.Fatalf("post-withdraw worktop bound = %+v, want exact 5", bound)
	}
	info, ok := a.invocationInfo[0]
	if !ok || !info.Recognized {
		t.Fatalf("invocation 0 info = %+v, want recognized", info)
	}

	if err := a.step(1, TakeAllFromWorktop{Resource: xrd, Into: 0}); err != nil {
		t.Fatalf("take all: %v", err)
	}
	depositArgs := sbor.TupleValue{Elements: []sbor.Value{BucketArg(0)}}
	if err := a.step(2, CallMethod{Address: ResolvedAddress(account), Method: "deposit", Args: depositArgs}); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	depositInfo := a.invocationInfo[2]
	if len(depositInfo.Inputs) != 1 || depositInfo.Inputs[0].Kind != IoFungible || depositInfo.Inputs[0].Resource != xrd {
		t.Fatalf("deposit inputs = %+v, want one fungible XRD input", depositInfo.Inputs)
	}
	if depositInfo.Inputs[0].Amount.LowerAmount.Cmp(amount) != 0 {
		t.Fatalf("deposit input amount = %+v, want 5", depositInfo.Inputs[0].Amount)
	}
	if _, tracked := a.buckets[0]; tracked {
		t.Fatalf("bucket 0 still tracked after being consumed by deposit")
	}
}

// S6 — withdraw from an account, take the whole worktop into a bucket, and
// deposit it into another account: the deposit's resolved input is exactly
// the withdrawn amount, no uncertainty accrues, and the worktop ends empty.
func TestWithdrawTakeAllDepositLeavesWorktopEmpty(t *testing.T) {
	accountA := resourceId(10)
	accountB := resourceId(11)
	xrd := resourceId(1)
	a := newTestAnalyzer(
		map[resource.ResourceId]bool{xrd: true},
		map[resource.ResourceId]string{accountA: "Account", accountB: "Account"},
	)

	five := mustDecimal(t, "5")
	instructions := []Instruction{
		CallMethod{
			Address: ResolvedAddress(accountA),
			Method:  "withdraw",
			Args:    sbor.TupleValue{Elements: []sbor.Value{ResourceArg(xrd), DecimalArg(five)}},
		},
		TakeAllFromWorktop{Resource: xrd, Into: 0},
		CallMethod{
			Address: ResolvedAddress(accountB),
			Method:  "deposit",
			Args:    sbor.TupleValue{Elements: []sbor.Value{BucketArg(0)}},
		},
	}
	if err := a.Analyze(instructions); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	depositInfo := a.invocationInfo[2]
	if len(depositInfo.Inputs) != 1 {
		t.Fatalf("deposit inputs = %+v, want exactly one", depositInfo.Inputs)
	}
	in := depositInfo.Inputs[0]
	if in.Kind != IoFungible || in.Resource != xrd || !in.Amount.IsExact() || in.Amount.LowerAmount.Cmp(five) != 0 {
		t.Fatalf("deposit input = %+v, want exact 5 XRD", in)
	}
	if len(a.uncertainty) != 0 {
		t.Fatalf("uncertainty = %+v, want none", a.uncertainty)
	}
	if !a.WorktopIsEmpty() {
		t.Fatalf("worktop not empty: fungible=%+v nonFungible=%+v", a.fungible, a.nonFungible)
	}
}

// EntireWorktop as an invocation argument drains every tracked resource as
// inputs and empties the worktop.
func TestEntireWorktopExpressionDrainsWorktop(t *testing.T) {
	accountB := resourceId(11)
	xrd := resourceId(1)
	a := newTestAnalyzer(map[resource.ResourceId]bool{xrd: true}, map[resource.ResourceId]string{accountB: "Account"})
	a.fungible[xrd] = ExactBound(mustDecimal(t, "7"))

	args := sbor.TupleValue{Elements: []sbor.Value{EntireWorktopArg()}}
	if err := a.step(0, CallMethod{Address: ResolvedAddress(accountB), Method: "deposit_batch", Args: args}); err != nil {
		t.Fatalf("deposit_batch: %v", err)
	}
	info := a.invocationInfo[0]
	if len(info.Inputs) != 1 || info.Inputs[0].Resource != xrd {
		t.Fatalf("inputs = %+v, want the drained XRD bound", info.Inputs)
	}
	if !a.WorktopIsEmpty() {
		t.Fatalf("worktop not drained by EntireWorktop expression")
	}
}

// TakeNonFungiblesFromWorktop on a fungible resource is a static error.
func TestTakeNonFungiblesFromWorktopOnFungibleResourceErrors(t *testing.T) {
	xrd := resourceId(1)
	a := newTestAnalyzer(map[resource.ResourceId]bool{xrd: true}, nil)
	err := a.step(0, TakeNonFungiblesFromWorktop{Resource: xrd, Ids: []resource.NonFungibleLocalId{resource.NewIntegerLocalId(1)}, Into: 0})
	if err != ErrNonFungibleIdsTakeOnFungibleResource {
		t.Fatalf("err = %v, want ErrNonFungibleIdsTakeOnFungibleResource", err)
	}
}

// AssertWorktopContainsNonFungibles on a fungible resource is a static error.
func TestAssertWorktopContainsNonFungiblesOnFungibleResourceErrors(t *testing.T) {
	xrd := resourceId(1)
	a := newTestAnalyzer(map[resource.ResourceId]bool{xrd: true}, nil)
	err := a.step(0, AssertWorktopContainsNonFungibles{Resource: xrd, Ids: []resource.NonFungibleLocalId{resource.NewIntegerLocalId(1)}})
	if err != ErrNonFungibleIdsAssertionOnFungibleResource {
		t.Fatalf("err = %v, want ErrNonFungibleIdsAssertionOnFungibleResource", err)
	}
}

// AllocateGlobalAddress lets a later CallMethod on that named address resolve
// its blueprint for typed-invocation recognition.
func TestAllocateGlobalAddressResolvesNamedBlueprint(t *testing.T) {
	xrd := resourceId(1)
	a := newTestAnalyzer(map[resource.ResourceId]bool{xrd: true}, nil)
	handle := NamedAddressHandle(0)

	if err := a.step(0, AllocateGlobalAddress{Blueprint: "Account", Into: handle}); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	amount := mustDecimal(t, "1")
	args := sbor.TupleValue{Elements: []sbor.Value{ResourceArg(xrd), DecimalArg(amount)}}
	if err := a.step(1, CallMethod{Address: NamedAddress(handle), Method: "withdraw", Args: args}); err != nil {
		t.Fatalf("withdraw on named address: %v", err)
	}
	if !a.invocationInfo[1].Recognized {
		t.Fatalf("withdraw via named address not recognized, blueprint resolution failed")
	}
}
