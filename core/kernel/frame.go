package kernel

import (
	"github.com/synnergy-labs/asset-runtime/core/substate"
)

// Frame is one call frame: the unit the kernel pushes for call_function /
// call_method / call_direct_access_method / call_module_method, and pops
// when the invocation returns. Every heap node the frame creates must be
// consumed — dropped, returned to the caller, or globalized — before the
// frame ends, or the kernel raises DanglingNode.
type Frame struct {
	track   *substate.Track
	locks   *lockTable
	handles map[Handle]*openHandle
	nextH   Handle

	heapNodes map[substate.NodeId]bool
	authZone  []ProofRef

	parent *Frame
}

// ProofRef names a proof currently pushed into this frame's auth zone,
// by the resource it attests to — enough for role-requirement resolution
// without the kernel needing to know about resource.Proof's concrete type.
type ProofRef struct {
	Resource [30]byte
}

func newRootFrame(base substate.Store) *Frame {
	return &Frame{
		track:     substate.NewTrack(base),
		locks:     newLockTable(),
		handles:   make(map[Handle]*openHandle),
		heapNodes: make(map[substate.NodeId]bool),
	}
}

// child opens a nested frame for an invocation, sharing the same track and
// lock table (so cross-frame lock conflicts are still caught) but with its
// own handle namespace and heap-node bookkeeping.
func (f *Frame) child() *Frame {
	return &Frame{
		track:     f.track,
		locks:     f.locks,
		handles:   make(map[Handle]*openHandle),
		heapNodes: make(map[substate.NodeId]bool),
		parent:    f,
	}
}

// allocateHeapNode registers a newly created heap node as owned by this
// frame; it must be consumed before the frame ends.
func (f *Frame) allocateHeapNode(id substate.NodeId) {
	f.heapNodes[id] = true
}

// consumeHeapNode marks a heap node as accounted for — dropped, returned
// in the invocation's output, or globalized into a global root.
func (f *Frame) consumeHeapNode(id substate.NodeId) {
	delete(f.heapNodes, id)
}

// end closes every handle still open in this frame and checks that no
// heap node it owns remains unconsumed.
func (f *Frame) end() error {
	for h, oh := range f.handles {
		if oh.open {
			f.locks.release(oh.addr, oh.flags)
			oh.open = false
		}
		delete(f.handles, h)
	}
	if len(f.heapNodes) > 0 {
		return ErrDanglingNode
	}
	return nil
}

func (f *Frame) openField(node substate.NodeId, field uint8, flags LockFlags) (Handle, error) {
	return f.open(node, 0, substate.FieldKey(field), flags)
}

func (f *Frame) openKeyValueEntry(node substate.NodeId, partition substate.PartitionNumber, key []byte, flags LockFlags) (Handle, error) {
	return f.open(node, partition, substate.MapKey(key), flags)
}

func (f *Frame) open(node substate.NodeId, partition substate.PartitionNumber, key substate.SubstateKey, flags LockFlags) (Handle, error) {
	addr := substateAddr{node: node, partition: partition, key: string(keyEncodeForLock(key))}
	if err := f.locks.acquire(addr, flags); err != nil {
		return 0, err
	}
	f.nextH++
	h := f.nextH
	f.handles[h] = &openHandle{addr: addr, sKey: key, flags: flags, open: true}
	return h, nil
}

func (f *Frame) readHandle(node substate.NodeId, partition substate.PartitionNumber, h Handle) ([]byte, error) {
	oh, ok := f.handles[h]
	if !ok || !oh.open {
		return nil, ErrHandleClosed
	}
	return f.track.Get(node, partition, oh.sKey)
}

func (f *Frame) writeHandle(node substate.NodeId, partition substate.PartitionNumber, h Handle, value []byte) error {
	oh, ok := f.handles[h]
	if !ok || !oh.open {
		return ErrHandleClosed
	}
	if oh.flags != Mutable {
		return ErrHandleNotMutable
	}
	return f.track.Set(node, partition, oh.sKey, value)
}

func (f *Frame) closeHandle(h Handle) error {
	oh, ok := f.handles[h]
	if !ok || !oh.open {
		return ErrHandleClosed
	}
	f.locks.release(oh.addr, oh.flags)
	oh.open = false
	delete(f.handles, h)
	return nil
}

func keyEncodeForLock(key substate.SubstateKey) []byte {
	switch key.Kind {
	case substate.SubstateKeyField:
		return []byte{0, key.Field}
	case substate.SubstateKeyMap:
		return append([]byte{1}, key.MapKey...)
	default:
		b := append([]byte{2}, key.SortedKey.SortPrefix[:]...)
		return append(b, key.SortedKey.Key...)
	}
}
