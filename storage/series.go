package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Serdnad/rtdb/block"
	"github.com/Serdnad/rtdb/errs"
	"github.com/Serdnad/rtdb/internal/collision"
	"github.com/Serdnad/rtdb/internal/hash"
	"github.com/Serdnad/rtdb/internal/log"
	"github.com/Serdnad/rtdb/value"
)

// DefaultDataRoot is the directory new series are created under when the
// caller does not supply one explicitly.
const DefaultDataRoot = "./data"

// Entry is one (field=value) pair recorded at a particular time within a
// series insertion.
type Entry struct {
	Field string
	Value value.DataValue
}

// Insertion is a single write: a timestamp and one-or-more field values,
// all under one series.
type Insertion struct {
	Fields []string
	Values []value.DataValue
	Time   int64
}

// SeriesStore owns every field store discovered (or created) under one
// series directory. Field stores are bucketed by the xxHash64 of their
// name, and a lookup compares names only within that bucket; a
// collision.Tracker flags the rare case of two distinct
// field names sharing a hash so it can be logged, and each hash bucket
// holds every field store that landed in it.
type SeriesStore struct {
	Name string
	dir  string

	// byHash buckets field stores by the xxHash64 of their field name. Each
	// bucket holds exactly one field store except on a genuine hash
	// collision (two distinct field names, same hash), in which case it
	// holds one per colliding name.
	byHash    map[uint64][]*FieldStore
	collision *collision.Tracker
}

// NewSeriesStore creates a fresh series directory under root (DefaultDataRoot
// if root is empty) with no fields.
func NewSeriesStore(root, name string) (*SeriesStore, error) {
	if root == "" {
		root = DefaultDataRoot
	}

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating series directory %s: %v", errs.ErrIoFailure, dir, err)
	}

	return &SeriesStore{Name: name, dir: dir, byHash: make(map[uint64][]*FieldStore), collision: collision.NewTracker()}, nil
}

// LoadSeriesStore scans root/name for field files (anything not ending in
// the reserved index suffix names a field) and opens a field store for
// each. If the directory does not exist, it behaves like NewSeriesStore.
//
// kindOf resolves a field's value.Kind by name; callers that cannot
// recover a field's type across a restart (spec.md's Open Question 3) may
// pass a function that always returns value.KindFloat, matching the
// original implementation's behavior of defaulting every recovered field to
// float.
func LoadSeriesStore(root, name string, kindOf func(field string) value.Kind) (*SeriesStore, error) {
	if root == "" {
		root = DefaultDataRoot
	}

	dir := filepath.Join(root, name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSeriesStore(root, name)
		}

		return nil, fmt.Errorf("%w: reading series directory %s: %v", errs.ErrIoFailure, dir, err)
	}

	ss := &SeriesStore{Name: name, dir: dir, byHash: make(map[uint64][]*FieldStore), collision: collision.NewTracker()}

	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), indexSuffix) {
			continue
		}

		fs, err := LoadFieldStore(dir, name, e.Name(), kindOf(e.Name()))
		if err != nil {
			return nil, err
		}

		ss.register(e.Name(), fs)
	}

	return ss, nil
}

// register adds fs to ss's hash bucket for name, logging if name's hash
// collides with an already-tracked, differently-named field.
func (ss *SeriesStore) register(name string, fs *FieldStore) {
	h := hash.ID(name)
	if ss.collision.Track(name, h) {
		log.Warn("field name hash collision in series " + ss.Name + ": " + name)
	}

	ss.byHash[h] = append(ss.byHash[h], fs)
}

// field returns the field store named name, or nil if none exists.
func (ss *SeriesStore) field(name string) *FieldStore {
	for _, candidate := range ss.byHash[hash.ID(name)] {
		if candidate.FieldName == name {
			return candidate
		}
	}

	return nil
}

// Fields returns every field store currently tracked, in no particular
// order.
func (ss *SeriesStore) Fields() []*FieldStore {
	out := make([]*FieldStore, 0, len(ss.byHash))
	for _, bucket := range ss.byHash {
		out = append(out, bucket...)
	}

	return out
}

// Insert writes ins to each named field's store, creating a field store on
// first use of a field name.
func (ss *SeriesStore) Insert(ins Insertion) error {
	for i, name := range ins.Fields {
		fs := ss.field(name)
		if fs == nil {
			kind := value.KindFloat
			if ins.Values[i].Kind() == value.KindBool {
				kind = value.KindBool
			}

			created, err := LoadFieldStore(ss.dir, ss.Name, name, kind)
			if err != nil {
				return err
			}

			ss.register(name, created)
			fs = created
		}

		if err := fs.Insert(block.Entry{Time: ins.Time, Value: ins.Values[i]}); err != nil {
			return err
		}
	}

	return nil
}
