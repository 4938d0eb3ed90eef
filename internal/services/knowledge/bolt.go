package knowledge

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

var documentsBucket = []byte("documents")

// BoltStore keeps documents in a local bbolt file, keyed by insertion sequence.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(documentsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create documents bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (bs *BoltStore) Add(_ context.Context, doc Document) (int, error) {
	var total int
	err := bs.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(documentsBucket)

		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}

		v, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}

		if err := b.Put(sequenceKey(seq), v); err != nil {
			return err
		}
		total = countKeys(b)
		return nil
	})
	return total, err
}

func (bs *BoltStore) Put(ctx context.Context, doc Document) (int, error) {
	var (
		total    int
		replaced bool
	)
	err := bs.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(documentsBucket)

		var key []byte
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var existing Document
			if err := json.Unmarshal(v, &existing); err != nil {
				return fmt.Errorf("failed to unmarshal document: %w", err)
			}
			if existing.Name == doc.Name {
				key = append([]byte(nil), k...)
				break
			}
		}
		if key == nil {
			return nil
		}

		v, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		if err := b.Put(key, v); err != nil {
			return err
		}
		replaced = true
		total = countKeys(b)
		return nil
	})
	if err != nil || replaced {
		return total, err
	}
	return bs.Add(ctx, doc)
}

func (bs *BoltStore) All(_ context.Context) ([]Document, error) {
	var docs []Document
	err := bs.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(documentsBucket).ForEach(func(_, v []byte) error {
			var doc Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("failed to unmarshal document: %w", err)
			}
			docs = append(docs, doc)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (bs *BoltStore) Count(_ context.Context) (int, error) {
	var n int
	err := bs.db.View(func(tx *bolt.Tx) error {
		n = countKeys(tx.Bucket(documentsBucket))
		return nil
	})
	return n, err
}

func (bs *BoltStore) Close() error {
	return bs.db.Close()
}

func countKeys(b *bolt.Bucket) int {
	n := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	return n
}

// sequenceKey encodes seq big-endian so ForEach walks documents in insertion order.
func sequenceKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
