package resource

// NonFungibleBucket holds an ordered set of local ids of one resource,
// transient within a call frame. Insertion order is preserved so
// "take the first N" is well defined.
type NonFungibleBucket struct {
	idKind NonFungibleIdKind
	order  []NonFungibleLocalId
	set    map[string]struct{}
}

func NewNonFungibleBucket(idKind NonFungibleIdKind, ids []NonFungibleLocalId) (*NonFungibleBucket, error) {
	b := &NonFungibleBucket{idKind: idKind, set: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id.Kind() != idKind {
			return nil, ErrNonFungibleIdShapeMismatch
		}
		key := string(id.Bytes())
		if _, exists := b.set[key]; exists {
			return nil, ErrNonFungibleIdAlreadyExists
		}
		b.set[key] = struct{}{}
		b.order = append(b.order, id)
	}
	return b, nil
}

func (b *NonFungibleBucket) Ids() []NonFungibleLocalId {
	out := make([]NonFungibleLocalId, len(b.order))
	copy(out, b.order)
	return out
}

func (b *NonFungibleBucket) Amount() Decimal { return NewDecimalFromInt64(int64(len(b.order))) }

func (b *NonFungibleBucket) Contains(id NonFungibleLocalId) bool {
	_, ok := b.set[string(id.Bytes())]
	return ok
}

// Put merges o into b, consuming o. Duplicate ids are a structural error —
// the same non-fungible cannot exist in two buckets at once.
func (b *NonFungibleBucket) Put(o *NonFungibleBucket) error {
	if o.idKind != b.idKind {
		return ErrNonFungibleIdShapeMismatch
	}
	for _, id := range o.order {
		key := string(id.Bytes())
		if _, exists := b.set[key]; exists {
			return ErrNonFungibleIdAlreadyExists
		}
	}
	for _, id := range o.order {
		b.set[string(id.Bytes())] = struct{}{}
		b.order = append(b.order, id)
	}
	o.order = nil
	o.set = map[string]struct{}{}
	return nil
}

// TakeAmount removes the first n ids in insertion order.
func (b *NonFungibleBucket) TakeAmount(n int) (*NonFungibleBucket, error) {
	if n < 0 || n > len(b.order) {
		return nil, ErrInsufficientBalance
	}
	taken := b.order[:n]
	out, err := NewNonFungibleBucket(b.idKind, taken)
	if err != nil {
		return nil, err
	}
	for _, id := range taken {
		delete(b.set, string(id.Bytes()))
	}
	b.order = append([]NonFungibleLocalId{}, b.order[n:]...)
	return out, nil
}

// TakeIds removes exactly the given ids; every one must be present.
func (b *NonFungibleBucket) TakeIds(ids []NonFungibleLocalId) (*NonFungibleBucket, error) {
	for _, id := range ids {
		if !b.Contains(id) {
			return nil, ErrNonFungibleIdNotFound
		}
	}
	out, err := NewNonFungibleBucket(b.idKind, ids)
	if err != nil {
		return nil, err
	}
	remaining := b.order[:0:0]
	for _, existing := range b.order {
		keep := true
		for _, id := range ids {
			if existing.Equal(id) {
				keep = false
				break
			}
		}
		if keep {
			remaining = append(remaining, existing)
		} else {
			delete(b.set, string(existing.Bytes()))
		}
	}
	b.order = remaining
	return out, nil
}

// NonFungibleVault is a bucket's persistent counterpart. lockedIds counts
// outstanding proof locks per id (see proof.go); a locked id cannot be taken
// out of the vault while any lock on it is live.
type NonFungibleVault struct {
	idKind    NonFungibleIdKind
	order     []NonFungibleLocalId
	set       map[string]struct{}
	lockedIds map[string]int
}

func NewNonFungibleVault(idKind NonFungibleIdKind) *NonFungibleVault {
	return &NonFungibleVault{idKind: idKind, set: make(map[string]struct{}), lockedIds: make(map[string]int)}
}

func (v *NonFungibleVault) Ids() []NonFungibleLocalId {
	out := make([]NonFungibleLocalId, len(v.order))
	copy(out, v.order)
	return out
}

func (v *NonFungibleVault) Amount() Decimal { return NewDecimalFromInt64(int64(len(v.order))) }

func (v *NonFungibleVault) Put(b *NonFungibleBucket) error {
	if b.idKind != v.idKind {
		return ErrNonFungibleIdShapeMismatch
	}
	for _, id := range b.order {
		if _, exists := v.set[string(id.Bytes())]; exists {
			return ErrNonFungibleIdAlreadyExists
		}
	}
	for _, id := range b.order {
		v.set[string(id.Bytes())] = struct{}{}
		v.order = append(v.order, id)
	}
	b.order = nil
	b.set = map[string]struct{}{}
	return nil
}

func (v *NonFungibleVault) TakeAmount(n int) (*NonFungibleBucket, error) {
	if n < 0 || n > len(v.order)-len(v.lockedIds) {
		return nil, ErrInsufficientBalance
	}
	taken := make([]NonFungibleLocalId, 0, n)
	for _, id := range v.order {
		if len(taken) == n {
			break
		}
		if v.lockedIds[string(id.Bytes())] > 0 {
			continue
		}
		taken = append(taken, id)
	}
	if len(taken) != n {
		return nil, ErrInsufficientBalance
	}
	out, err := NewNonFungibleBucket(v.idKind, taken)
	if err != nil {
		return nil, err
	}
	takenKeys := make(map[string]struct{}, len(taken))
	for _, id := range taken {
		delete(v.set, string(id.Bytes()))
		takenKeys[string(id.Bytes())] = struct{}{}
	}
	remaining := v.order[:0:0]
	for _, existing := range v.order {
		if _, gone := takenKeys[string(existing.Bytes())]; !gone {
			remaining = append(remaining, existing)
		}
	}
	v.order = remaining
	return out, nil
}

func (v *NonFungibleVault) TakeIds(ids []NonFungibleLocalId) (*NonFungibleBucket, error) {
	for _, id := range ids {
		if _, ok := v.set[string(id.Bytes())]; !ok {
			return nil, ErrNonFungibleIdNotFound
		}
		if v.lockedIds[string(id.Bytes())] > 0 {
			return nil, ErrProofSourceLocked
		}
	}
	out, err := NewNonFungibleBucket(v.idKind, ids)
	if err != nil {
		return nil, err
	}
	remaining := v.order[:0:0]
	for _, existing := range v.order {
		keep := true
		for _, id := range ids {
			if existing.Equal(id) {
				keep = false
				break
			}
		}
		if keep {
			remaining = append(remaining, existing)
		} else {
			delete(v.set, string(existing.Bytes()))
		}
	}
	v.order = remaining
	return out, nil
}
