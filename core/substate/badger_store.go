package substate

import (
	"bytes"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// BadgerStore is a Store backed by an on-disk Badger LSM tree, for
// persisting substates across process restarts. Keys are the node id, the
// partition number, and the encoded SubstateKey concatenated in that
// order, which keeps a partition's entries contiguous for List's prefix
// scan.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (creating if absent) a Badger database at dir,
// routing its internal logging through logger at a reduced verbosity —
// Badger's own INFO level is noisy for a per-transaction substate store.
func OpenBadgerStore(dir string, logger *logrus.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(&badgerLogAdapter{logger}).
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func partitionPrefix(node NodeId, partition PartitionNumber) []byte {
	b := make([]byte, 0, 31)
	b = append(b, node[:]...)
	b = append(b, byte(partition))
	return b
}

func storageKey(node NodeId, partition PartitionNumber, key SubstateKey) []byte {
	return append(partitionPrefix(node, partition), []byte(key.encode())...)
}

func (s *BadgerStore) Get(node NodeId, partition PartitionNumber, key SubstateKey) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(storageKey(node, partition, key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return ErrNotFound
			}
			return err
		}
		return item.Value(func(v []byte) error {
			out = append([]byte{}, v...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) Set(node NodeId, partition PartitionNumber, key SubstateKey, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(storageKey(node, partition, key), value)
	})
}

func (s *BadgerStore) Delete(node NodeId, partition PartitionNumber, key SubstateKey) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(storageKey(node, partition, key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

func (s *BadgerStore) List(node NodeId, partition PartitionNumber) ([]SubstateKey, error) {
	prefix := partitionPrefix(node, partition)
	var out []SubstateKey
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			raw := it.Item().KeyCopy(nil)
			key, ok := decodeSubstateKey(bytes.TrimPrefix(raw, prefix))
			if !ok {
				continue
			}
			out = append(out, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeSubstateKey(enc []byte) (SubstateKey, bool) {
	if len(enc) == 0 {
		return SubstateKey{}, false
	}
	switch enc[0] {
	case 0x00:
		if len(enc) != 2 {
			return SubstateKey{}, false
		}
		return FieldKey(enc[1]), true
	case 0x01:
		return MapKey(append([]byte{}, enc[1:]...)), true
	case 0x02:
		if len(enc) < 3 {
			return SubstateKey{}, false
		}
		var prefix [2]byte
		copy(prefix[:], enc[1:3])
		return SortedIndexKey(prefix, append([]byte{}, enc[3:]...)), true
	default:
		return SubstateKey{}, false
	}
}

// badgerLogAdapter gives logrus.Logger the method set badger.Logger expects.
type badgerLogAdapter struct {
	*logrus.Logger
}

func (a *badgerLogAdapter) Warningf(format string, args ...interface{}) {
	a.Logger.Warnf(format, args...)
}
