// Package store caches evaluated configurations in a bbolt database.
//
// An entry maps the absolute URL of a file to its evaluated root object,
// along with the content hashes of every file read while evaluating it. An
// entry is only returned while all those files still have the same content.
package store

import (
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tconf/tconf/pkg/logutil"
)

var logger = logutil.GetLogger("store")

const (
	bucketRoots = "roots"
	bucketDeps  = "deps"
)

var initDB = map[string](func(*bolt.Tx) error){
	"initialize roots table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketRoots))
		return err
	},
	"initialize dependencies table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketDeps))
		return err
	},
}

// Store is a cache of evaluated configurations. It is safe for concurrent use,
// and the database file can be shared by several processes; opening it blocks
// for up to one second while another process writes to it.
type Store struct {
	db *bolt.DB
}

// Open opens the database at path, creating it if it doesn't exist.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				logger.Error().Err(err).Str("step", name).Msg("failed to initialize database")
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug().Str("path", path).Msg("opened cache")
	return &Store{db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
