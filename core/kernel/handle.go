package kernel

import "github.com/synnergy-labs/asset-runtime/core/substate"

// LockFlags selects a field or KV-entry handle's access mode. A frame may
// hold many ReadOnly handles on a substate, or exactly one Mutable handle,
// never both at once — the single-writer-multi-reader contract.
type LockFlags int

const (
	ReadOnly LockFlags = iota
	Mutable
)

// Handle is the integer token returned by an open_* call. It is scoped to
// the frame that opened it and becomes invalid once that frame ends or the
// handle is explicitly closed.
type Handle uint32

type substateAddr struct {
	node      substate.NodeId
	partition substate.PartitionNumber
	key       string
}

type openHandle struct {
	addr  substateAddr
	sKey  substate.SubstateKey
	flags LockFlags
	open  bool
}

// lockTable tracks, per substate address, which handles are currently
// open and in what mode, so the kernel can enforce the locking discipline
// across every frame sharing the same track.
type lockTable struct {
	readers map[substateAddr]int
	writer  map[substateAddr]bool
}

func newLockTable() *lockTable {
	return &lockTable{
		readers: make(map[substateAddr]int),
		writer:  make(map[substateAddr]bool),
	}
}

func (l *lockTable) acquire(addr substateAddr, flags LockFlags) error {
	if l.writer[addr] {
		return ErrSubstateLockedForWrite
	}
	if flags == Mutable {
		if l.readers[addr] > 0 {
			return ErrSubstateLockedForRead
		}
		l.writer[addr] = true
		return nil
	}
	l.readers[addr]++
	return nil
}

func (l *lockTable) release(addr substateAddr, flags LockFlags) {
	if flags == Mutable {
		delete(l.writer, addr)
		return
	}
	if l.readers[addr] > 0 {
		l.readers[addr]--
		if l.readers[addr] == 0 {
			delete(l.readers, addr)
		}
	}
}
