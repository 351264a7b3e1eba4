package resource

// ProofSourceKind identifies where a proof's attestation was locked from —
// an auth zone, a bucket, or a vault — for diagnostics and unlock bookkeeping.
type ProofSourceKind int

const (
	ProofSourceAuthZone ProofSourceKind = iota
	ProofSourceBucket
	ProofSourceVault
)

// ResourceId opaquely identifies which resource a proof/bucket/vault belongs
// to; core/kernel and core/pool supply the concrete NodeId-derived value.
type ResourceId [30]byte

// FungibleProof is a non-consuming attestation of a fungible amount. It
// locks its snapshot against each source vault so the source cannot drop
// below what's attested while the proof is live; Drop releases the locks.
type FungibleProof struct {
	resource   ResourceId
	amount     Decimal
	sourceKind ProofSourceKind
	locks      []*fungibleLock
}

type fungibleLock struct {
	vault  *FungibleVault
	amount Decimal
}

// NewFungibleVaultProof locks amount against v and returns a proof
// attesting it.
func NewFungibleVaultProof(resource ResourceId, v *FungibleVault, amount Decimal) (*FungibleProof, error) {
	available, err := v.amount.Sub(v.locked)
	if err != nil {
		return nil, err
	}
	if amount.Cmp(available) > 0 {
		return nil, ErrProofSourceLocked
	}
	sum, err := v.locked.Add(amount)
	if err != nil {
		return nil, err
	}
	v.locked = sum
	return &FungibleProof{
		resource:   resource,
		amount:     amount,
		sourceKind: ProofSourceVault,
		locks:      []*fungibleLock{{vault: v, amount: amount}},
	}, nil
}

func (p *FungibleProof) Amount() Decimal         { return p.amount }
func (p *FungibleProof) Resource() ResourceId    { return p.resource }
func (p *FungibleProof) Source() ProofSourceKind { return p.sourceKind }

// Compose unions p and o into a single proof of the combined amount; both
// must be proofs of the same resource. The source locks of both are carried
// forward so Drop releases everything.
func (p *FungibleProof) Compose(o *FungibleProof) (*FungibleProof, error) {
	if p.resource != o.resource {
		return nil, ErrProofResourceMismatch
	}
	sum, err := p.amount.Add(o.amount)
	if err != nil {
		return nil, err
	}
	return &FungibleProof{
		resource:   p.resource,
		amount:     sum,
		sourceKind: p.sourceKind,
		locks:      append(append([]*fungibleLock{}, p.locks...), o.locks...),
	}, nil
}

// Drop releases every lock this proof holds on its source(s).
func (p *FungibleProof) Drop() {
	for _, l := range p.locks {
		remaining, err := l.vault.locked.Sub(l.amount)
		if err != nil {
			remaining = DecimalZero
		}
		l.vault.locked = remaining
	}
	p.locks = nil
}

// NonFungibleProof is a non-consuming attestation of an id set.
type NonFungibleProof struct {
	resource   ResourceId
	idKind     NonFungibleIdKind
	ids        map[string]NonFungibleLocalId
	sourceKind ProofSourceKind
	locks      []*nonFungibleLock
}

type nonFungibleLock struct {
	vault *NonFungibleVault
	ids   []NonFungibleLocalId
}

// Contains reports whether id is currently held by v (ignoring locks).
func (v *NonFungibleVault) Contains(id NonFungibleLocalId) bool {
	_, ok := v.set[string(id.Bytes())]
	return ok
}

func NewNonFungibleVaultProof(resource ResourceId, v *NonFungibleVault, ids []NonFungibleLocalId) (*NonFungibleProof, error) {
	for _, id := range ids {
		if !v.Contains(id) {
			return nil, ErrNonFungibleIdNotFound
		}
	}
	for _, id := range ids {
		v.lockedIds[string(id.Bytes())]++
	}
	p := &NonFungibleProof{
		resource:   resource,
		idKind:     v.idKind,
		ids:        make(map[string]NonFungibleLocalId, len(ids)),
		sourceKind: ProofSourceVault,
		locks:      []*nonFungibleLock{{vault: v, ids: append([]NonFungibleLocalId{}, ids...)}},
	}
	for _, id := range ids {
		p.ids[string(id.Bytes())] = id
	}
	return p, nil
}

func (p *NonFungibleProof) Ids() []NonFungibleLocalId {
	out := make([]NonFungibleLocalId, 0, len(p.ids))
	for _, id := range p.ids {
		out = append(out, id)
	}
	return out
}

func (p *NonFungibleProof) Amount() Decimal { return NewDecimalFromInt64(int64(len(p.ids))) }

// Compose unions the id sets of p and o; both must attest the same resource.
func (p *NonFungibleProof) Compose(o *NonFungibleProof) (*NonFungibleProof, error) {
	if p.resource != o.resource {
		return nil, ErrProofResourceMismatch
	}
	merged := make(map[string]NonFungibleLocalId, len(p.ids)+len(o.ids))
	for k, v := range p.ids {
		merged[k] = v
	}
	for k, v := range o.ids {
		merged[k] = v
	}
	return &NonFungibleProof{
		resource:   p.resource,
		idKind:     p.idKind,
		ids:        merged,
		sourceKind: p.sourceKind,
		locks:      append(append([]*nonFungibleLock{}, p.locks...), o.locks...),
	}, nil
}

// Drop releases every lock this proof holds on its source(s).
func (p *NonFungibleProof) Drop() {
	for _, l := range p.locks {
		for _, id := range l.ids {
			key := string(id.Bytes())
			l.vault.lockedIds[key]--
			if l.vault.lockedIds[key] <= 0 {
				delete(l.vault.lockedIds, key)
			}
		}
	}
	p.locks = nil
}
