// Package rtdb provides a convenient top-level wrapper around the query
// package, for callers embedding rtdb as a library rather than talking to it
// over the wire protocol.
//
// This is the recommended entry point for embedded use. For fine-grained
// control over a single field store or series store, use the storage
// package directly.
package rtdb

import (
	"github.com/Serdnad/rtdb/lang"
	"github.com/Serdnad/rtdb/merge"
	"github.com/Serdnad/rtdb/query"
	"github.com/Serdnad/rtdb/storage"
)

// DB is an embeddable rtdb instance rooted at one data directory.
type DB struct {
	engine *query.Engine
}

// Open creates a DB rooted at dataDir (storage.DefaultDataRoot if empty).
// The directory is created lazily when a series is first queried or
// written, not at Open time.
func Open(dataDir string) *DB {
	return &DB{engine: query.NewEngine(dataDir)}
}

// Query parses and executes a SELECT statement, returning its merged
// records.
func (db *DB) Query(statement string) (merge.RecordCollection, error) {
	action, err := lang.Parse([]byte(statement))
	if err != nil {
		return merge.RecordCollection{}, err
	}

	result, err := db.engine.Execute(action)
	if err != nil {
		return merge.RecordCollection{}, err
	}

	return result.Query.Records, nil
}

// Insert parses and executes an INSERT statement.
func (db *DB) Insert(statement string) error {
	action, err := lang.Parse([]byte(statement))
	if err != nil {
		return err
	}

	_, err = db.engine.Execute(action)

	return err
}

// DataRoot is the default on-disk location a DB opened with an empty
// dataDir writes to.
const DataRoot = storage.DefaultDataRoot
