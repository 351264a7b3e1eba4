package substate

// Track is a journaled overlay over a base Store: reads fall through to the
// base when the overlay has nothing cached, writes and deletes stay local
// until Commit flushes them. A kernel call frame opens one Track per nested
// invocation so a callee's writes can be discarded wholesale on failure
// without touching the caller's view.
type Track struct {
	base    Store
	over    map[partitionKey]map[string]memEntry
	order   map[partitionKey][]string
	deleted map[partitionKey]map[string]bool
}

func NewTrack(base Store) *Track {
	return &Track{
		base:    base,
		over:    make(map[partitionKey]map[string]memEntry),
		order:   make(map[partitionKey][]string),
		deleted: make(map[partitionKey]map[string]bool),
	}
}

func (t *Track) Get(node NodeId, partition PartitionNumber, key SubstateKey) ([]byte, error) {
	pk := partitionKey{node, partition}
	enc := key.encode()
	if del := t.deleted[pk]; del != nil && del[enc] {
		return nil, ErrNotFound
	}
	if m, ok := t.over[pk]; ok {
		if e, ok := m[enc]; ok {
			return e.value, nil
		}
	}
	return t.base.Get(node, partition, key)
}

func (t *Track) Set(node NodeId, partition PartitionNumber, key SubstateKey, value []byte) error {
	pk := partitionKey{node, partition}
	enc := key.encode()
	if del := t.deleted[pk]; del != nil {
		delete(del, enc)
	}
	m, ok := t.over[pk]
	if !ok {
		m = make(map[string]memEntry)
		t.over[pk] = m
	}
	if _, exists := m[enc]; !exists {
		t.order[pk] = append(t.order[pk], enc)
	}
	m[enc] = memEntry{key: key, value: value}
	return nil
}

func (t *Track) Delete(node NodeId, partition PartitionNumber, key SubstateKey) error {
	pk := partitionKey{node, partition}
	enc := key.encode()
	if m, ok := t.over[pk]; ok {
		delete(m, enc)
	}
	del, ok := t.deleted[pk]
	if !ok {
		del = make(map[string]bool)
		t.deleted[pk] = del
	}
	del[enc] = true
	return nil
}

// List merges the overlay's pending writes over the base store's existing
// keys, honoring local deletes, preserving base order with overlay
// insertions appended.
func (t *Track) List(node NodeId, partition PartitionNumber) ([]SubstateKey, error) {
	pk := partitionKey{node, partition}
	base, err := t.base.List(node, partition)
	if err != nil {
		return nil, err
	}
	del := t.deleted[pk]
	seen := make(map[string]bool, len(base))
	out := make([]SubstateKey, 0, len(base))
	for _, k := range base {
		enc := k.encode()
		seen[enc] = true
		if del != nil && del[enc] {
			continue
		}
		if m, ok := t.over[pk]; ok {
			if e, ok := m[enc]; ok {
				out = append(out, e.key)
				continue
			}
		}
		out = append(out, k)
	}
	for _, enc := range t.order[pk] {
		if seen[enc] {
			continue
		}
		out = append(out, t.over[pk][enc].key)
	}
	return out, nil
}

// Commit flushes every pending write and delete down into the base store.
// Callers discard the Track instead of calling Commit to roll an invocation
// back cleanly.
func (t *Track) Commit() error {
	for pk, del := range t.deleted {
		for enc := range del {
			if m, ok := t.over[pk]; ok {
				if _, stillWritten := m[enc]; stillWritten {
					continue
				}
			}
			key := t.decodeKeyFor(pk, enc)
			if err := t.base.Delete(pk.node, pk.partition, key); err != nil {
				return err
			}
		}
	}
	for pk, m := range t.over {
		for _, enc := range t.order[pk] {
			e, ok := m[enc]
			if !ok {
				continue
			}
			if err := t.base.Set(pk.node, pk.partition, e.key, e.value); err != nil {
				return err
			}
		}
	}
	return nil
}

// decodeKeyFor recovers a SubstateKey for a pure-delete entry that was
// never re-written in this track, by asking the base store for its key
// listing. Substate keys deleted without ever being read through this
// track still need their original Kind/Field/MapKey to call base.Delete.
func (t *Track) decodeKeyFor(pk partitionKey, enc string) SubstateKey {
	keys, err := t.base.List(pk.node, pk.partition)
	if err != nil {
		return SubstateKey{}
	}
	for _, k := range keys {
		if k.encode() == enc {
			return k
		}
	}
	return SubstateKey{}
}
