package kernel

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/synnergy-labs/asset-runtime/core/substate"
)

func testKernel() *Kernel {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return New(substate.NewMemStore(), NewCostMeter(10_000_000, logger), logger)
}

func testNode(t *testing.T) substate.NodeId {
	t.Helper()
	tail := make([]byte, 29)
	id, err := substate.NewNodeId(substate.EntityGlobalComponent, tail)
	if err != nil {
		t.Fatalf("new node id: %v", err)
	}
	return id
}

func TestHandleDisciplineSecondMutableBlocked(t *testing.T) {
	k := testKernel()
	f := k.CurrentFrame()
	node := testNode(t)

	h1, err := f.openField(node, 0, Mutable)
	if err != nil {
		t.Fatalf("open first mutable: %v", err)
	}
	if _, err := f.openField(node, 0, Mutable); err != ErrSubstateLockedForWrite {
		t.Fatalf("got %v, want ErrSubstateLockedForWrite", err)
	}
	if err := f.closeHandle(h1); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := f.openField(node, 0, Mutable); err != nil {
		t.Fatalf("open after close: %v", err)
	}
}

func TestHandleDisciplineMutableBlockedByReaders(t *testing.T) {
	k := testKernel()
	f := k.CurrentFrame()
	node := testNode(t)

	r1, err := f.openField(node, 1, ReadOnly)
	if err != nil {
		t.Fatalf("open reader: %v", err)
	}
	if _, err := f.openField(node, 1, ReadOnly); err != nil {
		t.Fatalf("second reader should be allowed: %v", err)
	}
	if _, err := f.openField(node, 1, Mutable); err != ErrSubstateLockedForRead {
		t.Fatalf("got %v, want ErrSubstateLockedForRead", err)
	}
	if err := f.closeHandle(r1); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestWriteThroughReadOnlyHandleRejected(t *testing.T) {
	k := testKernel()
	f := k.CurrentFrame()
	node := testNode(t)

	h, err := f.openField(node, 2, ReadOnly)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := f.writeHandle(node, 0, h, []byte("x")); err != ErrHandleNotMutable {
		t.Fatalf("got %v, want ErrHandleNotMutable", err)
	}
}

func TestFrameEndClosesOpenHandles(t *testing.T) {
	k := testKernel()
	root := k.CurrentFrame()
	node := testNode(t)
	child := root.child()
	if _, err := child.openField(node, 0, Mutable); err != nil {
		t.Fatalf("open in child: %v", err)
	}
	if err := child.end(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if _, err := root.openField(node, 0, Mutable); err != nil {
		t.Fatalf("lock should be released after child ends: %v", err)
	}
}

func TestDanglingNodeDetected(t *testing.T) {
	k := testKernel()
	f := k.CurrentFrame()
	if _, err := k.NewObject(f, substate.EntityInternalFungibleVault, "Vault", map[uint8][]byte{0: []byte("1")}); err != nil {
		t.Fatalf("new object: %v", err)
	}
	if err := f.end(); err != ErrDanglingNode {
		t.Fatalf("got %v, want ErrDanglingNode", err)
	}
}

func TestDropObjectSatisfiesFrameEnd(t *testing.T) {
	k := testKernel()
	f := k.CurrentFrame()
	obj, err := k.NewObject(f, substate.EntityInternalFungibleVault, "Vault", map[uint8][]byte{0: []byte("1")})
	if err != nil {
		t.Fatalf("new object: %v", err)
	}
	if _, err := k.DropObject(f, obj); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if err := f.end(); err != nil {
		t.Fatalf("end after drop: %v", err)
	}
}

func TestGlobalizeConsumesReservation(t *testing.T) {
	k := testKernel()
	f := k.CurrentFrame()
	reservation, _, err := k.AllocateGlobalAddress(substate.EntityGlobalComponent)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	obj, err := k.NewObject(f, substate.EntityGlobalComponent, "Account", map[uint8][]byte{0: []byte("v")})
	if err != nil {
		t.Fatalf("new object: %v", err)
	}
	addr, err := k.Globalize(f, obj, reservation)
	if err != nil {
		t.Fatalf("globalize: %v", err)
	}
	if addr != reservation.Address() {
		t.Fatalf("globalized address mismatch")
	}
	if _, err := k.Globalize(f, obj, reservation); err != ErrReservationConsumed {
		t.Fatalf("got %v, want ErrReservationConsumed", err)
	}
	if err := f.end(); err != nil {
		t.Fatalf("end after globalize: %v", err)
	}
}

func TestResolveAuthRequiresBadge(t *testing.T) {
	var xrd [30]byte
	xrd[0] = 1
	req := RequireBadge(xrd)
	if err := ResolveAuth(nil, req); err != ErrAuthFailed {
		t.Fatalf("got %v, want ErrAuthFailed with empty auth zone", err)
	}
	zone := []ProofRef{{Resource: xrd}}
	if err := ResolveAuth(zone, req); err != nil {
		t.Fatalf("expected auth to pass: %v", err)
	}
}

func TestCostMeterExhaustion(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	m := NewCostMeter(60_000, logger)
	if err := m.Charge(CostCallFrame); err != nil {
		t.Fatalf("first charge: %v", err)
	}
	if err := m.Charge(CostCallFrame); err != ErrCostingExhausted {
		t.Fatalf("got %v, want ErrCostingExhausted", err)
	}
}
