package store

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/tconf/tconf/pkg/eval"
	"github.com/tconf/tconf/pkg/eval/vals"
	"github.com/tconf/tconf/pkg/fsutil"
	"github.com/tconf/tconf/pkg/url"
)

// Entry describes a cached configuration.
type Entry struct {
	URL   url.URL
	Files []eval.File
	// The working directory cwd() returned while evaluating, or the zero URL
	// if cwd() was not called.
	Wd url.URL
}

type deps struct {
	Files []dep  `json:"files"`
	Wd    string `json:"wd,omitempty"`
}

type dep struct {
	URL  string `json:"url"`
	Hash string `json:"sha256"`
}

// Get returns the cached root object of the file named by u. It reports a miss
// when there is no entry, when any file the entry depends on has changed or
// can no longer be read, or when the entry used cwd() and getwd now returns a
// different directory. A nil getwd means fsutil.Getwd.
func (s *Store) Get(u url.URL, getwd func() (url.URL, error)) (*vals.Map, bool, error) {
	key := []byte(absolute(u).String())
	var rootData, depsData []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// Values are only valid during the transaction.
		rootData = clone(tx.Bucket([]byte(bucketRoots)).Get(key))
		depsData = clone(tx.Bucket([]byte(bucketDeps)).Get(key))
		return nil
	})
	if err != nil || rootData == nil {
		return nil, false, err
	}
	files, wd, err := unmarshalDeps(depsData)
	if err != nil {
		return nil, false, err
	}
	if !wd.IsZero() {
		if getwd == nil {
			getwd = fsutil.Getwd
		}
		cur, err := getwd()
		if err != nil || !cur.Equal(wd) {
			logger.Debug().Stringer("url", u).Stringer("wd", wd).Msg("cache entry is for another working directory")
			return nil, false, nil
		}
	}
	for _, f := range files {
		if !isFresh(f) {
			logger.Debug().Stringer("url", u).Stringer("dep", f.URL).Msg("cache entry is stale")
			return nil, false, nil
		}
	}
	v, err := vals.UnmarshalTagged(rootData)
	if err != nil {
		return nil, false, err
	}
	root, ok := v.(*vals.Map)
	if !ok {
		return nil, false, fmt.Errorf("cached value for %s is %s, not a map", key, vals.KindOf(v))
	}
	return root, true, nil
}

// Put caches the root object of the file named by u, along with the files
// read while evaluating it and the working directory returned by cwd(). Pass
// the zero URL as wd if cwd() was not called.
func (s *Store) Put(u url.URL, root *vals.Map, files []eval.File, wd url.URL) error {
	rootData, err := vals.MarshalTagged(root)
	if err != nil {
		return err
	}
	d := deps{Files: make([]dep, len(files))}
	for i, f := range files {
		d.Files[i] = dep{absolute(f.URL).String(), f.Hash}
	}
	if !wd.IsZero() {
		d.Wd = wd.String()
	}
	depsData, err := json.Marshal(d)
	if err != nil {
		return err
	}
	key := []byte(absolute(u).String())
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketRoots)).Put(key, rootData); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketDeps)).Put(key, depsData)
	})
}

// Delete removes the entry for the file named by u, if any.
func (s *Store) Delete(u url.URL) error {
	key := []byte(absolute(u).String())
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketRoots)).Delete(key); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketDeps)).Delete(key)
	})
}

// Purge removes all entries.
func (s *Store) Purge() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bucketRoots, bucketDeps} {
			if err := tx.DeleteBucket([]byte(name)); err != nil {
				return err
			}
			if _, err := tx.CreateBucket([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Entries lists all entries, ordered by URL.
func (s *Store) Entries() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDeps)).ForEach(func(k, v []byte) error {
			files, wd, err := unmarshalDeps(v)
			if err != nil {
				return err
			}
			entries = append(entries, Entry{url.Parse(string(k)), files, wd})
			return nil
		})
	})
	return entries, err
}

func unmarshalDeps(data []byte) ([]eval.File, url.URL, error) {
	var d deps
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, url.URL{}, fmt.Errorf("corrupt dependency list: %w", err)
	}
	files := make([]eval.File, len(d.Files))
	for i, f := range d.Files {
		files[i] = eval.File{URL: url.Parse(f.URL), Hash: f.Hash}
	}
	var wd url.URL
	if d.Wd != "" {
		wd = url.Parse(d.Wd)
	}
	return files, wd, nil
}

// Only local files can be checked.
func isFresh(f eval.File) bool {
	if f.URL.Scheme() != "file" {
		return false
	}
	hash, err := fsutil.HashFile(f.URL.Filename())
	return err == nil && hash == f.Hash
}

// Resolves a relative URL against the working directory, so that entries
// don't depend on where they were created.
func absolute(u url.URL) url.URL {
	if !u.IsRelative() {
		return u
	}
	wd, err := fsutil.Getwd()
	if err != nil {
		return u
	}
	return wd.Join(u)
}

func clone(data []byte) []byte {
	if data == nil {
		return nil
	}
	return append([]byte(nil), data...)
}
