package kernel

import (
	"github.com/sirupsen/logrus"

	"github.com/synnergy-labs/asset-runtime/core/substate"
)

// Kernel is the execution engine's entry point: it owns the root substate
// track for a transaction and drives the call-frame stack that every
// invocation pushes and pops.
type Kernel struct {
	store  substate.Store
	meter  *CostMeter
	logger *logrus.Logger
	root   *Frame
	frames []*Frame
}

func New(store substate.Store, meter *CostMeter, logger *logrus.Logger) *Kernel {
	root := newRootFrame(store)
	return &Kernel{
		store:  store,
		meter:  meter,
		logger: logger,
		root:   root,
		frames: []*Frame{root},
	}
}

// CurrentFrame returns the innermost open call frame.
func (k *Kernel) CurrentFrame() *Frame {
	return k.frames[len(k.frames)-1]
}

// Commit flushes the root frame's track to the underlying store. Called
// only once all nested frames have ended cleanly and the transaction is
// ready to commit atomically.
func (k *Kernel) Commit() error {
	return k.root.track.Commit()
}

// InvocationKind distinguishes the four ways a call frame can be opened;
// each maps to a distinct dispatch path in the real runtime
// (blueprint function table, object method table, direct-access method
// table restricted to a fixed set of vault operations, or an attached
// module's own method table) but shares identical frame bookkeeping.
type InvocationKind int

const (
	CallFunction InvocationKind = iota
	CallMethod
	CallDirectAccessMethod
	CallModuleMethod
)

// Invocation describes one call_* request: a target, a method or
// function name, and SBOR-encoded arguments. Handler resolves it to an
// SBOR-encoded return value; the kernel's job is frame setup/teardown and
// cost accounting around that resolution, not the handler's own logic.
type Invocation struct {
	Kind    InvocationKind
	Target  substate.NodeId
	Method  string
	Args    []byte
	CostTag string
}

type InvocationHandler func(f *Frame, inv Invocation) ([]byte, error)

// Invoke pushes a new call frame, resolves role requirements against the
// auth zone, runs handler, and pops the frame — raising DanglingNode if
// the callee leaves heap nodes unconsumed. All frames in a transaction
// share the same track; a frame failure propagates as a Go error up to
// the transaction boundary, where the caller decides whether to call
// Commit at all — substate writes are never partially visible outside
// the transaction regardless of which nested frame produced them.
func (k *Kernel) Invoke(inv Invocation, requirement RoleRequirement, handler InvocationHandler) ([]byte, error) {
	if err := k.meter.Charge(CostCallFrame); err != nil {
		return nil, err
	}
	caller := k.CurrentFrame()
	if err := ResolveAuth(caller.authZone, requirement); err != nil {
		return nil, ErrAuthFailed
	}
	child := caller.child()
	k.frames = append(k.frames, child)
	out, handlerErr := handler(child, inv)
	k.frames = k.frames[:len(k.frames)-1]
	if endErr := child.end(); endErr != nil {
		return nil, endErr
	}
	if handlerErr != nil {
		return nil, handlerErr
	}
	return out, nil
}
