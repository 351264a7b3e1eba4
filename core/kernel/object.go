package kernel

import (
	"crypto/rand"

	"github.com/synnergy-labs/asset-runtime/core/substate"
)

// Reservation is the single-use capability returned by allocate_global_address
// and consumed by a later Globalize call. Baking the reservation's address
// into an object's own init data before the object is globalized is how the
// runtime breaks the resource-manager/metadata cyclic-reference problem
// the address is known before the node that will own it exists.
type Reservation struct {
	address  substate.NodeId
	consumed bool
}

func (r *Reservation) Address() substate.NodeId { return r.address }

// AllocateGlobalAddress reserves a global address for entityType before the
// node that will occupy it is created.
func (k *Kernel) AllocateGlobalAddress(entityType substate.EntityType) (*Reservation, substate.NodeId, error) {
	tail := make([]byte, 29)
	if _, err := rand.Read(tail); err != nil {
		return nil, substate.NodeId{}, err
	}
	id, err := substate.NewNodeId(entityType, tail)
	if err != nil {
		return nil, substate.NodeId{}, err
	}
	return &Reservation{address: id}, id, nil
}

// Object is a heap node's materialized fields, prior to being globalized or
// consumed.
type Object struct {
	id        substate.NodeId
	blueprint string
	fields    map[uint8][]byte
}

// NewObject allocates a heap-owned node, writing its initial field values
// into the frame's track. The node is owned by frame and must be
// globalized, dropped, or returned before frame ends.
func (k *Kernel) NewObject(f *Frame, entityType substate.EntityType, blueprint string, fields map[uint8][]byte) (*Object, error) {
	tail := make([]byte, 29)
	if _, err := rand.Read(tail); err != nil {
		return nil, err
	}
	id, err := substate.NewNodeId(entityType, tail)
	if err != nil {
		return nil, err
	}
	for field, value := range fields {
		if err := f.track.Set(id, 0, substate.FieldKey(field), value); err != nil {
			return nil, err
		}
	}
	f.allocateHeapNode(id)
	return &Object{id: id, blueprint: blueprint, fields: fields}, nil
}

// Globalize promotes a heap object to a global root using reservation's
// pre-allocated address, consuming the reservation. The node outlives the
// frame that created it from this point on.
func (k *Kernel) Globalize(f *Frame, obj *Object, reservation *Reservation) (substate.NodeId, error) {
	if reservation.consumed {
		return substate.NodeId{}, ErrReservationConsumed
	}
	for field, value := range obj.fields {
		if err := f.track.Set(reservation.address, 0, substate.FieldKey(field), value); err != nil {
			return substate.NodeId{}, err
		}
	}
	reservation.consumed = true
	f.consumeHeapNode(obj.id)
	obj.id = reservation.address
	return reservation.address, nil
}

// DropObject consumes a heap node, returning its field blobs — used, e.g.,
// when a transient bucket is torn down at frame end.
func (k *Kernel) DropObject(f *Frame, obj *Object) (map[uint8][]byte, error) {
	out := make(map[uint8][]byte, len(obj.fields))
	for field := range obj.fields {
		v, err := f.track.Get(obj.id, 0, substate.FieldKey(field))
		if err != nil && err != substate.ErrNotFound {
			return nil, err
		}
		out[field] = v
		_ = f.track.Delete(obj.id, 0, substate.FieldKey(field))
	}
	f.consumeHeapNode(obj.id)
	return out, nil
}
