package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m-zajac/contribreport/internal/app"
	"go.etcd.io/bbolt"
)

// BoltStore is an app.Cache saved in a boltdb file.
// Entries older than ttl are treated as missing. Zero ttl means entries never expire.
type BoltStore struct {
	db         *bbolt.DB
	bucketName []byte
	ttl        time.Duration
	now        func() time.Time
}

var _ app.Cache = &BoltStore{}

// NewBoltStore creates new BoltStore instance.
func NewBoltStore(dbPath string, bucketName string, ttl time.Duration) (*BoltStore, error) {
	db, err := bbolt.Open(dbPath, 0666, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketName)); err != nil {
			return err
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating database bucket: %w", err)
	}

	return &BoltStore{
		db:         db,
		bucketName: []byte(bucketName),
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

// Get returns hash saved for given key.
func (s *BoltStore) Get(_ context.Context, key string) (app.Hash, bool, error) {
	var data []byte
	if err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucketName)
		// Returned slice is only valid inside the transaction.
		if v := b.Get([]byte(key)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return nil, false, fmt.Errorf("reading from db: %w", err)
	}
	if data == nil {
		return nil, false, nil
	}

	var entry boltEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("unmarshalling entry %s: %w", key, err)
	}
	if len(entry.Fields) == 0 || s.expired(entry) {
		return nil, false, nil
	}

	return entry.hash(), true, nil
}

// Set stores given hash under given key. Empty hashes are ignored.
func (s *BoltStore) Set(_ context.Context, key string, h app.Hash) error {
	if len(h) == 0 {
		return nil
	}

	data, err := json.Marshal(newBoltEntry(s.now(), h))
	if err != nil {
		return fmt.Errorf("marshalling entry %s: %w", key, err)
	}

	if err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucketName)
		return b.Put([]byte(key), data)
	}); err != nil {
		return fmt.Errorf("writing to db: %w", err)
	}

	return nil
}

// Close closes database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) expired(e boltEntry) bool {
	if s.ttl <= 0 {
		return false
	}
	return time.Unix(e.Created, 0).Add(s.ttl).Before(s.now())
}

type boltEntry struct {
	Created int64
	Fields  [][2]string
}

func newBoltEntry(created time.Time, h app.Hash) boltEntry {
	fields := make([][2]string, 0, len(h))
	for _, f := range h {
		fields = append(fields, [2]string{f.Key, f.Value})
	}

	return boltEntry{
		Created: created.Unix(),
		Fields:  fields,
	}
}

func (e boltEntry) hash() app.Hash {
	h := make(app.Hash, 0, len(e.Fields))
	for _, f := range e.Fields {
		h = append(h, app.Field{Key: f[0], Value: f[1]})
	}

	return h
}
